package core

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/ionut-t/gotext/internal/log"
)

const emptyRowSymbol = "~"

// DocumentStatus is the information the status bar shows.
type DocumentStatus struct {
	TotalLines     int
	CurrentLineIdx int
	FileName       string
	IsModified     bool
	FileType       FileType
}

// ModifiedIndicator returns "(modified)" for a dirty document.
func (s DocumentStatus) ModifiedIndicator() string {
	if s.IsModified {
		return "(modified)"
	}
	return ""
}

// LineCount returns the "<n> lines" text.
func (s DocumentStatus) LineCount() string {
	return fmt.Sprintf("%d lines", s.TotalLines)
}

// PositionIndicator returns the one-based current line over the total.
func (s DocumentStatus) PositionIndicator() string {
	return fmt.Sprintf("%d/%d", s.CurrentLineIdx+1, s.TotalLines)
}

// View shows a window of a document and tracks the caret within it.
type View struct {
	component

	document       *Document
	textLocation   Location
	scrollOffset   Position
	search         *searchSession
	highlighters   SyntaxHighlighterFactory
	syntax         SyntaxHighlighter
	welcomeMessage string
}

// NewView creates a view over an empty document.
func NewView(storage Storage, highlighters SyntaxHighlighterFactory, welcomeMessage string) *View {
	if highlighters == nil {
		highlighters = DefaultSyntaxHighlighterFactory
	}
	v := &View{
		highlighters:   highlighters,
		welcomeMessage: welcomeMessage,
	}
	v.component.name = "view"
	v.component.draw = v.draw
	v.component.setSize = func(Size) { v.scrollTextLocationIntoView() }
	v.setDocument(NewDocument(storage))
	return v
}

func (v *View) setDocument(document *Document) {
	v.document = document
	v.syntax = v.highlighters(document.FileInfo())
	v.textLocation = Location{}
	v.scrollOffset = Position{}
	v.SetNeedsRedraw(true)
}

// Document returns the document shown by the view.
func (v *View) Document() *Document {
	return v.document
}

// TextLocation returns the caret location in the document.
func (v *View) TextLocation() Location {
	return v.textLocation
}

// ScrollOffset returns the rendered position of the top-left visible cell.
func (v *View) ScrollOffset() Position {
	return v.scrollOffset
}

// Status reports the document state for the status bar.
func (v *View) Status() DocumentStatus {
	info := v.document.FileInfo()
	return DocumentStatus{
		TotalLines:     v.document.Height(),
		CurrentLineIdx: v.textLocation.LineIdx,
		FileName:       info.String(),
		IsModified:     v.document.IsDirty(),
		FileType:       info.FileType(),
	}
}

func (v *View) IsFileLoaded() bool {
	return v.document.IsFileLoaded()
}

// Load replaces the document with the file at path. On failure the view
// keeps an empty document bound to path.
func (v *View) Load(path string) error {
	document, err := LoadDocument(v.document.storage, path)
	v.setDocument(document)
	if err != nil {
		return err
	}
	log.Info(log.CatView, "document loaded", "path", path, "lines", document.Height())
	return nil
}

func (v *View) Save() error {
	return v.document.Save()
}

// SaveAs saves to path and picks a highlighter for the new file type.
func (v *View) SaveAs(path string) error {
	if err := v.document.SaveAs(path); err != nil {
		return err
	}
	v.syntax = v.highlighters(v.document.FileInfo())
	v.SetNeedsRedraw(true)
	return nil
}

// CurrentLine returns the text of the line under the caret.
func (v *View) CurrentLine() string {
	if line := v.document.Line(v.textLocation.LineIdx); line != nil {
		return line.String()
	}
	return ""
}

// HandleEdit applies an edit at the caret.
func (v *View) HandleEdit(edit Edit) {
	switch edit.Kind {
	case EditInsert:
		v.insertChar(edit.Char)
	case EditInsertNewline:
		v.insertNewline()
	case EditDelete:
		v.delete()
	case EditDeleteBackward:
		v.deleteBackward()
	}
}

// HandleMove moves the caret and scrolls it into view.
func (v *View) HandleMove(move Move) {
	height := v.size.Height
	switch move {
	case MoveUp:
		v.moveUp(1)
	case MoveDown:
		v.moveDown(1)
	case MoveLeft:
		v.moveLeft()
	case MoveRight:
		v.moveRight()
	case MovePageUp:
		v.moveUp(max(height-1, 0))
	case MovePageDown:
		v.moveDown(max(height-1, 0))
	case MoveStartOfLine:
		v.moveToStartOfLine()
	case MoveEndOfLine:
		v.moveToEndOfLine()
	}
	v.scrollTextLocationIntoView()
}

// InsertText inserts text at the caret one rune at a time. Line breaks
// split the line.
func (v *View) InsertText(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, r := range text {
		if r == '\n' {
			v.insertNewline()
			continue
		}
		v.insertChar(r)
	}
}

func (v *View) insertNewline() {
	v.document.InsertNewline(v.textLocation)
	v.HandleMove(MoveRight)
	v.SetNeedsRedraw(true)
}

func (v *View) deleteBackward() {
	if v.textLocation.LineIdx != 0 || v.textLocation.GraphemeIdx != 0 {
		v.HandleMove(MoveLeft)
		v.delete()
	}
}

func (v *View) delete() {
	v.document.Delete(v.textLocation)
	v.SetNeedsRedraw(true)
}

// insertChar moves right only if the grapheme count grew, since a combining
// mark joins the previous cluster.
func (v *View) insertChar(ch rune) {
	oldLen := v.document.GraphemeCount(v.textLocation.LineIdx)
	v.document.InsertChar(ch, v.textLocation)
	newLen := v.document.GraphemeCount(v.textLocation.LineIdx)
	if newLen > oldLen {
		v.HandleMove(MoveRight)
	}
	v.SetNeedsRedraw(true)
}

func (v *View) scrollVertically(to int) {
	height := v.size.Height
	switch {
	case to < v.scrollOffset.Row:
		v.scrollOffset.Row = to
	case to >= v.scrollOffset.Row+height:
		v.scrollOffset.Row = max(to-height+1, 0)
	default:
		return
	}
	v.SetNeedsRedraw(true)
}

func (v *View) scrollHorizontally(to int) {
	width := v.size.Width
	switch {
	case to < v.scrollOffset.Col:
		v.scrollOffset.Col = to
	case to >= v.scrollOffset.Col+width:
		v.scrollOffset.Col = max(to-width+1, 0)
	default:
		return
	}
	v.SetNeedsRedraw(true)
}

func (v *View) scrollTextLocationIntoView() {
	pos := v.TextLocationToPosition()
	v.scrollVertically(pos.Row)
	v.scrollHorizontally(pos.Col)
}

// centerTextLocation places the caret in the middle of the view.
func (v *View) centerTextLocation() {
	pos := v.TextLocationToPosition()
	verticalMid := (v.size.Height + 1) / 2
	horizontalMid := (v.size.Width + 1) / 2
	v.scrollOffset.Row = max(pos.Row-verticalMid, 0)
	v.scrollOffset.Col = max(pos.Col-horizontalMid, 0)
	v.SetNeedsRedraw(true)
}

// CaretPosition returns the caret position relative to the view.
func (v *View) CaretPosition() Position {
	return v.TextLocationToPosition().SaturatingSub(v.scrollOffset)
}

// TextLocationToPosition returns the rendered position of the caret in the
// whole document.
func (v *View) TextLocationToPosition() Position {
	row := v.textLocation.LineIdx
	return Position{
		Row: row,
		Col: v.document.WidthUntil(row, v.textLocation.GraphemeIdx),
	}
}

func (v *View) moveUp(step int) {
	v.textLocation.LineIdx = max(v.textLocation.LineIdx-step, 0)
	v.snapToValidGrapheme()
}

func (v *View) moveDown(step int) {
	v.textLocation.LineIdx += step
	v.snapToValidGrapheme()
	v.snapToValidLine()
}

func (v *View) moveRight() {
	if v.textLocation.GraphemeIdx < v.document.GraphemeCount(v.textLocation.LineIdx) {
		v.textLocation.GraphemeIdx++
		return
	}
	v.moveToStartOfLine()
	v.moveDown(1)
}

func (v *View) moveLeft() {
	if v.textLocation.GraphemeIdx > 0 {
		v.textLocation.GraphemeIdx--
	} else if v.textLocation.LineIdx > 0 {
		v.moveUp(1)
		v.moveToEndOfLine()
	}
}

func (v *View) moveToStartOfLine() {
	v.textLocation.GraphemeIdx = 0
}

func (v *View) moveToEndOfLine() {
	v.textLocation.GraphemeIdx = v.document.GraphemeCount(v.textLocation.LineIdx)
}

// snapToValidGrapheme clamps the grapheme index to the current line.
// It does not scroll.
func (v *View) snapToValidGrapheme() {
	v.textLocation.GraphemeIdx = min(v.textLocation.GraphemeIdx, v.document.GraphemeCount(v.textLocation.LineIdx))
}

// snapToValidLine clamps the line index to one past the last line.
// It does not scroll.
func (v *View) snapToValidLine() {
	v.textLocation.LineIdx = min(v.textLocation.LineIdx, v.document.Height())
}

func (v *View) draw(term Terminal, originRow int) error {
	height, width := v.size.Height, v.size.Width
	endRow := originRow + height
	bottomThird := 2 * ((height + 2) / 3)
	scrollTop := v.scrollOffset.Row

	highlighter := v.newHighlighter()
	for idx := range scrollTop + height {
		v.document.Highlight(idx, highlighter)
	}

	cols := ColumnRange{Start: v.scrollOffset.Col, End: v.scrollOffset.Col + width}
	for row := originRow; row < endRow; row++ {
		lineIdx := row - originRow + scrollTop
		if text, ok := v.document.HighlightedSubstring(lineIdx, cols, highlighter); ok {
			if err := term.PrintAnnotatedRow(row, text); err != nil {
				return err
			}
			continue
		}

		text := emptyRowSymbol
		if row == bottomThird && v.document.IsEmpty() {
			text = v.buildWelcomeMessage(width)
		}
		if err := term.PrintRow(row, text); err != nil {
			return err
		}
	}
	return nil
}

func (v *View) newHighlighter() *Highlighter {
	if v.search == nil || v.search.query == nil {
		return NewHighlighter(nil, nil, v.syntax)
	}
	selected := v.textLocation
	return NewHighlighter(v.search.query, &selected, v.syntax)
}

// buildWelcomeMessage centres the message after the row symbol, or returns
// the symbol alone when the message does not fit.
func (v *View) buildWelcomeMessage(width int) string {
	if width <= 0 || v.welcomeMessage == "" {
		return emptyRowSymbol
	}
	remaining := width - 1
	msgWidth := uniseg.StringWidth(v.welcomeMessage)
	if remaining < msgWidth {
		return emptyRowSymbol
	}
	padLeft := (remaining - msgWidth) / 2
	padRight := remaining - msgWidth - padLeft
	return emptyRowSymbol + strings.Repeat(" ", padLeft) + v.welcomeMessage + strings.Repeat(" ", padRight)
}
