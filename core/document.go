package core

import (
	"fmt"

	"github.com/ionut-t/gotext/internal/log"
)

// Document is an ordered sequence of lines backed by an optional file.
type Document struct {
	lines    []*Line
	dirty    bool
	fileInfo FileInfo
	storage  Storage
}

// NewDocument creates an empty, unnamed document.
func NewDocument(storage Storage) *Document {
	return &Document{storage: storage}
}

// LoadDocument reads path through storage. The document is bound to path
// even when loading fails, so a later save creates the file.
func LoadDocument(storage Storage, path string) (*Document, error) {
	d := &Document{
		storage:  storage,
		fileInfo: NewFileInfo(path),
	}

	contents, err := storage.Load(path)
	if err != nil {
		return d, err
	}

	d.lines = make([]*Line, 0, len(contents))
	for _, content := range contents {
		d.lines = append(d.lines, NewLine(content))
	}
	return d, nil
}

func (d *Document) IsDirty() bool {
	return d.dirty
}

func (d *Document) FileInfo() FileInfo {
	return d.fileInfo
}

func (d *Document) IsFileLoaded() bool {
	return d.fileInfo.HasPath()
}

func (d *Document) IsEmpty() bool {
	return len(d.lines) == 0
}

// Height returns the number of lines.
func (d *Document) Height() int {
	return len(d.lines)
}

// Line returns the line at idx, or nil when idx is out of range.
func (d *Document) Line(idx int) *Line {
	if idx < 0 || idx >= len(d.lines) {
		return nil
	}
	return d.lines[idx]
}

// Lines returns the raw text of every line.
func (d *Document) Lines() []string {
	lines := make([]string, len(d.lines))
	for i, line := range d.lines {
		lines[i] = line.String()
	}
	return lines
}

// GraphemeCount returns the number of graphemes on line idx, 0 if absent.
func (d *Document) GraphemeCount(idx int) int {
	if line := d.Line(idx); line != nil {
		return line.GraphemeCount()
	}
	return 0
}

// WidthUntil returns the rendered column of grapheme until on line idx.
func (d *Document) WidthUntil(idx, until int) int {
	if line := d.Line(idx); line != nil {
		return line.WidthUntil(until)
	}
	return 0
}

// Highlight runs h over line idx.
func (d *Document) Highlight(idx int, h *Highlighter) {
	if line := d.Line(idx); line != nil {
		h.Highlight(idx, line)
	}
}

// HighlightedSubstring returns the visible part of line idx with the
// annotations h computed for it. ok is false when the line does not exist.
func (d *Document) HighlightedSubstring(idx int, cols ColumnRange, h *Highlighter) (*AnnotatedString, bool) {
	line := d.Line(idx)
	if line == nil {
		return nil, false
	}
	return line.AnnotatedVisibleSubstr(cols, h.Annotations(idx)), true
}

// Save writes the document to its file.
func (d *Document) Save() error {
	if !d.fileInfo.HasPath() {
		return ErrNoFileName
	}
	if err := d.storage.Save(d.fileInfo.Path(), d.Lines()); err != nil {
		return fmt.Errorf("save %s: %w", d.fileInfo.Path(), err)
	}
	d.dirty = false
	return nil
}

// SaveAs writes the document to path and binds it to that file.
func (d *Document) SaveAs(path string) error {
	if path == "" {
		return ErrNoFileName
	}
	if err := d.storage.Save(path, d.Lines()); err != nil {
		return fmt.Errorf("save as %s: %w", path, err)
	}
	d.fileInfo = NewFileInfo(path)
	d.dirty = false
	return nil
}

// InsertChar inserts ch at the location. Inserting one line past the end
// appends a new line.
func (d *Document) InsertChar(ch rune, at Location) {
	switch {
	case at.LineIdx == d.Height():
		d.lines = append(d.lines, NewLine(string(ch)))
		d.dirty = true
	case at.LineIdx >= 0 && at.LineIdx < d.Height():
		d.lines[at.LineIdx].InsertChar(ch, at.GraphemeIdx)
		d.dirty = true
	default:
		log.Warn(log.CatEditor, "insert ignored", "error", ErrInvalidPosition, "line", at.LineIdx, "height", d.Height())
	}
}

// Delete removes the grapheme at the location. At the end of a line that
// has a successor, the next line is joined onto it.
func (d *Document) Delete(at Location) {
	line := d.Line(at.LineIdx)
	if line == nil {
		return
	}

	count := line.GraphemeCount()
	switch {
	case at.GraphemeIdx >= count && at.LineIdx+1 < d.Height():
		next := d.lines[at.LineIdx+1]
		d.lines = append(d.lines[:at.LineIdx+1], d.lines[at.LineIdx+2:]...)
		line.Append(next)
		d.dirty = true
	case at.GraphemeIdx >= 0 && at.GraphemeIdx < count:
		line.Delete(at.GraphemeIdx)
		d.dirty = true
	}
}

// InsertNewline splits the line at the location. At one line past the end
// an empty line is appended.
func (d *Document) InsertNewline(at Location) {
	switch {
	case at.LineIdx == d.Height():
		d.lines = append(d.lines, NewLine(""))
		d.dirty = true
	case at.LineIdx >= 0 && at.LineIdx < d.Height():
		remainder := d.lines[at.LineIdx].Split(at.GraphemeIdx)
		d.lines = append(d.lines, nil)
		copy(d.lines[at.LineIdx+2:], d.lines[at.LineIdx+1:])
		d.lines[at.LineIdx+1] = remainder
		d.dirty = true
	}
}

// SearchForward finds the next occurrence of query at or after from,
// wrapping around the end of the document. The line of from is visited a
// second time at the end of the scan to find matches before from.
func (d *Document) SearchForward(query string, from Location) (Location, bool) {
	if query == "" || d.IsEmpty() {
		return Location{}, false
	}

	height := d.Height()
	for i := range height + 1 {
		lineIdx := (from.LineIdx + i) % height
		fromGrapheme := 0
		if i == 0 && lineIdx == from.LineIdx {
			fromGrapheme = from.GraphemeIdx
		}
		if graphemeIdx, ok := d.lines[lineIdx].SearchForward(query, fromGrapheme); ok {
			return Location{LineIdx: lineIdx, GraphemeIdx: graphemeIdx}, true
		}
	}
	return Location{}, false
}

// SearchBackward finds the previous occurrence of query before from,
// wrapping around the start of the document.
func (d *Document) SearchBackward(query string, from Location) (Location, bool) {
	if query == "" || d.IsEmpty() {
		return Location{}, false
	}

	height := d.Height()
	first := min(max(from.LineIdx, 0), height-1)
	for i := range height + 1 {
		lineIdx := ((first-i)%height + height) % height
		line := d.lines[lineIdx]
		fromGrapheme := line.GraphemeCount()
		if i == 0 && lineIdx == from.LineIdx {
			fromGrapheme = from.GraphemeIdx
		}
		if graphemeIdx, ok := line.SearchBackward(query, fromGrapheme); ok {
			return Location{LineIdx: lineIdx, GraphemeIdx: graphemeIdx}, true
		}
	}
	return Location{}, false
}
