package core

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// GraphemeWidth is the number of terminal columns a grapheme occupies.
type GraphemeWidth int

const (
	GraphemeWidthHalf GraphemeWidth = 1
	GraphemeWidthFull GraphemeWidth = 2
)

// Columns returns the width in terminal cells.
func (w GraphemeWidth) Columns() int {
	return int(w)
}

const (
	tabReplacement        = ' '
	whitespaceReplacement = '·'
	controlReplacement    = '▯'
	zeroWidthReplacement  = '·'
	ellipsis              = "⋯"
)

// TextFragment is a single grapheme cluster of a line together with its
// byte offset, rendered width and optional replacement glyph.
type TextFragment struct {
	Grapheme    string
	Start       int           // Byte offset of the cluster in the line
	Width       GraphemeWidth // Rendered width
	Replacement rune          // Glyph rendered instead of the cluster, 0 if none
}

// End returns the byte offset one past the cluster.
func (f TextFragment) End() int {
	return f.Start + len(f.Grapheme)
}

// HasReplacement reports whether the cluster is rendered as a substitute glyph.
func (f TextFragment) HasReplacement() bool {
	return f.Replacement != 0
}

// Line is a single line of text segmented into grapheme clusters.
// The fragment list is rebuilt from the backing string after every edit,
// so grapheme indices are not stable across mutations.
type Line struct {
	fragments []TextFragment
	text      string
}

// NewLine creates a line from a string that contains no line terminator.
func NewLine(text string) *Line {
	return &Line{
		fragments: strToFragments(text),
		text:      text,
	}
}

func strToFragments(text string) []TextFragment {
	if text == "" {
		return nil
	}

	fragments := make([]TextFragment, 0, len(text))
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		start, _ := g.Positions()
		fragments = append(fragments, newTextFragment(g.Str(), start))
	}
	return fragments
}

func newTextFragment(cluster string, start int) TextFragment {
	width := clusterWidth(cluster)
	fragment := TextFragment{
		Grapheme:    cluster,
		Start:       start,
		Width:       GraphemeWidthHalf,
		Replacement: replacementFor(cluster, width),
	}
	if !fragment.HasReplacement() && width > 1 {
		fragment.Width = GraphemeWidthFull
	}
	return fragment
}

func clusterWidth(cluster string) int {
	w := runewidth.StringWidth(cluster)
	if w == 0 {
		w = uniseg.StringWidth(cluster)
	}
	return max(w, 0)
}

func replacementFor(cluster string, width int) rune {
	switch {
	case cluster == " ":
		return 0
	case cluster == "\t":
		return tabReplacement
	case width > 0 && strings.TrimSpace(cluster) == "":
		return whitespaceReplacement
	case width == 0:
		r, size := utf8.DecodeRuneInString(cluster)
		if size == len(cluster) && unicode.IsControl(r) {
			return controlReplacement
		}
		return zeroWidthReplacement
	}
	return 0
}

func (l *Line) rebuildFragments() {
	l.fragments = strToFragments(l.text)
}

// String returns the raw text of the line.
func (l *Line) String() string {
	return l.text
}

// Len returns the length of the line in bytes.
func (l *Line) Len() int {
	return len(l.text)
}

// IsEmpty reports whether the line has no text.
func (l *Line) IsEmpty() bool {
	return l.text == ""
}

// Fragments returns a copy of the line's fragments.
func (l *Line) Fragments() []TextFragment {
	return slices.Clone(l.fragments)
}

// GraphemeCount returns the number of grapheme clusters in the line.
func (l *Line) GraphemeCount() int {
	return len(l.fragments)
}

// WidthUntil returns the rendered column of the grapheme at graphemeIdx,
// i.e. the sum of the widths of all graphemes before it.
func (l *Line) WidthUntil(graphemeIdx int) int {
	width := 0
	for _, fragment := range l.fragments[:clampInt(graphemeIdx, 0, len(l.fragments))] {
		width += fragment.Width.Columns()
	}
	return width
}

// Width returns the rendered width of the whole line.
func (l *Line) Width() int {
	return l.WidthUntil(l.GraphemeCount())
}

// InsertChar inserts ch before the grapheme at index at, or appends it when
// at is past the last grapheme.
func (l *Line) InsertChar(ch rune, at int) {
	if at >= 0 && at < len(l.fragments) {
		start := l.fragments[at].Start
		l.text = l.text[:start] + string(ch) + l.text[start:]
	} else {
		l.text += string(ch)
	}
	l.rebuildFragments()
}

// AppendChar appends ch to the end of the line.
func (l *Line) AppendChar(ch rune) {
	l.InsertChar(ch, l.GraphemeCount())
}

// Delete removes the grapheme at index at. Out of range indices are ignored.
func (l *Line) Delete(at int) {
	if at < 0 || at >= len(l.fragments) {
		return
	}
	fragment := l.fragments[at]
	l.text = l.text[:fragment.Start] + l.text[fragment.End():]
	l.rebuildFragments()
}

// DeleteLast removes the last grapheme of the line.
func (l *Line) DeleteLast() {
	l.Delete(l.GraphemeCount() - 1)
}

// Append concatenates other to the end of the line.
func (l *Line) Append(other *Line) {
	l.text += other.text
	l.rebuildFragments()
}

// Split truncates the line before the grapheme at index at and returns the
// removed suffix as a new line. Splitting at or past the end returns an
// empty line and leaves the receiver untouched.
func (l *Line) Split(at int) *Line {
	if at < 0 || at >= len(l.fragments) {
		return NewLine("")
	}
	start := l.fragments[at].Start
	remainder := l.text[start:]
	l.text = l.text[:start]
	l.rebuildFragments()
	return NewLine(remainder)
}

// ByteToGraphemeIdx maps a byte offset to the index of the grapheme starting
// there. ok is false when the offset does not fall on a grapheme boundary.
// The offset one past the end maps to GraphemeCount.
func (l *Line) ByteToGraphemeIdx(byteIdx int) (int, bool) {
	if byteIdx == len(l.text) {
		return len(l.fragments), true
	}
	idx, found := slices.BinarySearchFunc(l.fragments, byteIdx, func(f TextFragment, target int) int {
		return cmp.Compare(f.Start, target)
	})
	if !found {
		return 0, false
	}
	return idx, true
}

// GraphemeToByteIdx maps a grapheme index to the byte offset where it starts.
// Indices at or past the end map to the length of the line.
func (l *Line) GraphemeToByteIdx(graphemeIdx int) int {
	if graphemeIdx <= 0 || len(l.fragments) == 0 {
		return 0
	}
	if graphemeIdx >= len(l.fragments) {
		return len(l.text)
	}
	return l.fragments[graphemeIdx].Start
}

// VisibleGraphemes returns the rendered text for the given column range.
func (l *Line) VisibleGraphemes(cols ColumnRange) string {
	return l.AnnotatedVisibleSubstr(cols, nil).String()
}

// AnnotatedVisibleSubstr returns the part of the line visible in the given
// column range with annotations applied. Clusters with a replacement glyph
// are substituted, and a full-width cluster cut by either edge of the range
// is rendered as an ellipsis.
func (l *Line) AnnotatedVisibleSubstr(cols ColumnRange, annotations []Annotation) *AnnotatedString {
	if cols.Empty() {
		return NewAnnotatedString("")
	}

	result := NewAnnotatedString(l.text)
	for _, annotation := range annotations {
		result.AddAnnotation(annotation.Type, annotation.Start, annotation.End)
	}

	// Walk backwards so byte offsets of the fragments still to be visited
	// are not shifted by replacements made to their right.
	fragmentStart := l.Width()
	for i := len(l.fragments) - 1; i >= 0; i-- {
		fragment := l.fragments[i]
		fragmentEnd := fragmentStart
		fragmentStart -= fragment.Width.Columns()

		if fragmentStart > cols.End {
			continue
		}

		if fragmentStart < cols.End && fragmentEnd > cols.End {
			result.Replace(fragment.Start, len(l.text), ellipsis)
			continue
		} else if fragmentStart == cols.End {
			result.TruncateRightFrom(fragment.Start)
			continue
		}

		if fragmentEnd <= cols.Start {
			result.TruncateLeftUntil(fragment.End())
			break
		} else if fragmentStart < cols.Start && fragmentEnd > cols.Start {
			result.Replace(0, fragment.End(), ellipsis)
			break
		}

		if fragment.HasReplacement() {
			result.Replace(fragment.Start, fragment.End(), string(fragment.Replacement))
		}
	}
	return result
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
