package core

import "github.com/rivo/uniseg"

// CommandBar reads a single line of input after a prompt, such as a file
// name or a search query.
type CommandBar struct {
	component
	prompt string
	value  *Line
}

func NewCommandBar() *CommandBar {
	c := &CommandBar{value: NewLine("")}
	c.component.name = "command bar"
	c.component.draw = c.draw
	return c
}

// HandleEdit edits the value. Newlines and forward deletes are ignored.
func (c *CommandBar) HandleEdit(edit Edit) {
	switch edit.Kind {
	case EditInsert:
		c.value.AppendChar(edit.Char)
	case EditDeleteBackward:
		c.value.DeleteLast()
	case EditDelete, EditInsertNewline:
	}
	c.SetNeedsRedraw(true)
}

// InsertText appends text up to the first line break.
func (c *CommandBar) InsertText(text string) {
	for _, r := range text {
		if r == '\n' || r == '\r' {
			break
		}
		c.value.AppendChar(r)
	}
	c.SetNeedsRedraw(true)
}

// CaretCol returns the caret column, capped at the bar width.
func (c *CommandBar) CaretCol() int {
	return min(uniseg.StringWidth(c.prompt)+c.value.Width(), c.size.Width)
}

func (c *CommandBar) Value() string {
	return c.value.String()
}

func (c *CommandBar) SetPrompt(prompt string) {
	c.prompt = prompt
	c.SetNeedsRedraw(true)
}

// ClearValue resets the input.
func (c *CommandBar) ClearValue() {
	c.value = NewLine("")
	c.SetNeedsRedraw(true)
}

// Text returns the row to print: the prompt followed by the tail of the
// value that fits. Nothing is shown when even the prompt does not fit.
func (c *CommandBar) Text() string {
	promptWidth := uniseg.StringWidth(c.prompt)
	available := max(c.size.Width-promptWidth, 0)
	valueEnd := c.value.Width()
	valueStart := max(valueEnd-available, 0)

	message := c.prompt + c.value.VisibleGraphemes(ColumnRange{Start: valueStart, End: valueEnd})
	if uniseg.StringWidth(message) > c.size.Width {
		return ""
	}
	return message
}

func (c *CommandBar) draw(term Terminal, originRow int) error {
	return term.PrintRow(originRow, c.Text())
}
