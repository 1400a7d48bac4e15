package core

// Location is a logical position in the document: a line and a grapheme
// within that line. GraphemeIdx may be one past the last grapheme, which is
// the "insert here" position at the end of a line.
type Location struct {
	LineIdx     int
	GraphemeIdx int
}

// Position is a rendered position in terminal cells.
type Position struct {
	Row int // Zero-indexed row
	Col int // Zero-indexed column (cells, not graphemes)
}

// SaturatingSub subtracts other from p component-wise, stopping at zero.
func (p Position) SaturatingSub(other Position) Position {
	return Position{
		Row: max(p.Row-other.Row, 0),
		Col: max(p.Col-other.Col, 0),
	}
}

// Size is the area available to a component.
type Size struct {
	Height int
	Width  int
}

// ColumnRange is a half-open range of rendered columns [Start, End).
type ColumnRange struct {
	Start int
	End   int
}

// Empty reports whether the range contains no columns.
func (r ColumnRange) Empty() bool {
	return r.Start >= r.End
}
