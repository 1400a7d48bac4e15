package adapter_bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	editor "github.com/ionut-t/gotext/core"
	"github.com/rivo/uniseg"
)

type segment struct {
	text  string
	style lipgloss.Style
}

// frameTerminal implements editor.Terminal on top of an in-memory frame.
// Rows keep their content between renders like a real screen, and Flush
// publishes the frame that View returns.
type frameTerminal struct {
	theme        Theme
	size         editor.Size
	rows         [][]segment
	caret        editor.Position
	caretVisible bool
	screen       string
}

func newFrameTerminal(theme Theme, size editor.Size) *frameTerminal {
	t := &frameTerminal{theme: theme}
	t.resize(size)
	return t
}

func (t *frameTerminal) resize(size editor.Size) {
	rows := make([][]segment, max(size.Height, 0))
	copy(rows, t.rows)
	t.rows = rows
	t.size = size
}

func (t *frameTerminal) Size() editor.Size {
	return t.size
}

func (t *frameTerminal) setRow(row int, segments []segment) error {
	if row < 0 || row >= len(t.rows) {
		return editor.ErrInvalidPosition
	}
	t.rows[row] = segments
	return nil
}

func (t *frameTerminal) PrintRow(row int, text string) error {
	style := t.theme.MessageStyle
	if strings.HasPrefix(text, "~") {
		style = t.theme.TildeStyle
	}
	return t.setRow(row, []segment{{text: text, style: style}})
}

func (t *frameTerminal) PrintAnnotatedRow(row int, text *editor.AnnotatedString) error {
	var segments []segment
	for part := range text.All() {
		segments = append(segments, segment{text: part.Text, style: t.theme.StyleFor(part.Type)})
	}
	return t.setRow(row, segments)
}

func (t *frameTerminal) PrintInvertedRow(row int, text string) error {
	padding := max(t.size.Width-uniseg.StringWidth(text), 0)
	return t.setRow(row, []segment{{text: text + strings.Repeat(" ", padding), style: t.theme.StatusLineStyle}})
}

func (t *frameTerminal) MoveCaretTo(pos editor.Position) error {
	t.caret = pos
	return nil
}

func (t *frameTerminal) HideCaret() error {
	t.caretVisible = false
	return nil
}

func (t *frameTerminal) ShowCaret() error {
	t.caretVisible = true
	return nil
}

func (t *frameTerminal) Flush() error {
	lines := make([]string, len(t.rows))
	for i, row := range t.rows {
		if t.caretVisible && i == t.caret.Row {
			lines[i] = t.renderWithCaret(row)
			continue
		}
		lines[i] = renderSegments(row)
	}
	t.screen = strings.Join(lines, "\n")
	return nil
}

func (t *frameTerminal) View() string {
	return t.screen
}

func renderSegments(segments []segment) string {
	var sb strings.Builder
	for _, s := range segments {
		sb.WriteString(s.style.Render(s.text))
	}
	return sb.String()
}

// renderWithCaret renders the row with the grapheme under the caret in the
// caret style. Past the end of the row the caret is drawn as a space.
func (t *frameTerminal) renderWithCaret(row []segment) string {
	var sb strings.Builder
	col := 0
	placed := false

	for _, s := range row {
		width := uniseg.StringWidth(s.text)
		if placed || col+width <= t.caret.Col {
			sb.WriteString(s.style.Render(s.text))
			col += width
			continue
		}

		var before, after strings.Builder
		g := uniseg.NewGraphemes(s.text)
		for g.Next() {
			switch {
			case placed:
				after.WriteString(g.Str())
			case col+g.Width() <= t.caret.Col:
				before.WriteString(g.Str())
			default:
				sb.WriteString(s.style.Render(before.String()))
				sb.WriteString(t.theme.CaretStyle.Render(g.Str()))
				placed = true
			}
			col += g.Width()
		}
		sb.WriteString(s.style.Render(after.String()))
	}

	if !placed {
		if gap := t.caret.Col - col; gap > 0 {
			sb.WriteString(strings.Repeat(" ", gap))
		}
		sb.WriteString(t.theme.CaretStyle.Render(" "))
	}
	return sb.String()
}
