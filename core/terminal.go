package core

// Terminal is the output device the editor draws onto. Rows are absolute
// screen rows. Implementations may buffer output until Flush.
type Terminal interface {
	Size() Size
	PrintRow(row int, text string) error
	PrintAnnotatedRow(row int, text *AnnotatedString) error
	PrintInvertedRow(row int, text string) error
	MoveCaretTo(pos Position) error
	HideCaret() error
	ShowCaret() error
	Flush() error
}
