package core

import (
	"errors"
	"strings"
)

var errTerminalBroken = errors.New("terminal broken")

// recordingTerminal keeps the last text printed on every row.
type recordingTerminal struct {
	size         Size
	rows         map[int]string
	parts        map[int][]AnnotatedStringPart
	inverted     map[int]bool
	caret        Position
	caretVisible bool
	flushes      int
	broken       bool
}

func newRecordingTerminal(height, width int) *recordingTerminal {
	return &recordingTerminal{
		size:     Size{Height: height, Width: width},
		rows:     make(map[int]string),
		parts:    make(map[int][]AnnotatedStringPart),
		inverted: make(map[int]bool),
	}
}

func (t *recordingTerminal) Size() Size {
	return t.size
}

func (t *recordingTerminal) print(row int, text string, parts []AnnotatedStringPart, inverted bool) error {
	if t.broken {
		return errTerminalBroken
	}
	t.rows[row] = text
	t.parts[row] = parts
	t.inverted[row] = inverted
	return nil
}

func (t *recordingTerminal) PrintRow(row int, text string) error {
	return t.print(row, text, nil, false)
}

func (t *recordingTerminal) PrintAnnotatedRow(row int, text *AnnotatedString) error {
	return t.print(row, text.String(), text.Parts(), false)
}

func (t *recordingTerminal) PrintInvertedRow(row int, text string) error {
	return t.print(row, text, nil, true)
}

func (t *recordingTerminal) MoveCaretTo(pos Position) error {
	t.caret = pos
	return nil
}

func (t *recordingTerminal) HideCaret() error {
	t.caretVisible = false
	return nil
}

func (t *recordingTerminal) ShowCaret() error {
	t.caretVisible = true
	return nil
}

func (t *recordingTerminal) Flush() error {
	t.flushes++
	return nil
}

// screen returns rows [0, height) joined by newlines.
func (t *recordingTerminal) screen() string {
	lines := make([]string, t.size.Height)
	for i := range lines {
		lines[i] = t.rows[i]
	}
	return strings.Join(lines, "\n")
}
