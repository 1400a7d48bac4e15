package core

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// StatusBar shows the file name, line count and caret line in reverse video.
type StatusBar struct {
	component
	status DocumentStatus
}

func NewStatusBar() *StatusBar {
	s := &StatusBar{}
	s.component.name = "status bar"
	s.component.draw = s.draw
	return s
}

// UpdateStatus requests a redraw when the status changed.
func (s *StatusBar) UpdateStatus(status DocumentStatus) {
	if status != s.status {
		s.status = status
		s.SetNeedsRedraw(true)
	}
}

// Text returns the status line for the given width, or "" when the left
// and right parts do not fit.
func (s *StatusBar) Text(width int) string {
	left := fmt.Sprintf("%s - %s", s.status.FileName, s.status.LineCount())
	if indicator := s.status.ModifiedIndicator(); indicator != "" {
		left += " " + indicator
	}
	right := fmt.Sprintf("%s | %s", s.status.FileType, s.status.PositionIndicator())

	padding := width - uniseg.StringWidth(left) - uniseg.StringWidth(right)
	if padding < 0 {
		return ""
	}
	return left + strings.Repeat(" ", padding) + right
}

func (s *StatusBar) draw(term Terminal, originRow int) error {
	return term.PrintInvertedRow(originRow, s.Text(s.size.Width))
}
