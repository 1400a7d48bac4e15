package core

import "time"

const messageDuration = 5 * time.Second

// MessageBar shows the most recent message until it expires.
type MessageBar struct {
	component
	message      string
	setAt        time.Time
	clearedAfter bool
	now          func() time.Time
}

func NewMessageBar() *MessageBar {
	m := &MessageBar{now: time.Now}
	m.component.name = "message bar"
	m.component.draw = m.draw
	return m
}

// UpdateMessage replaces the current message.
func (m *MessageBar) UpdateMessage(message string) {
	m.message = message
	m.setAt = m.now()
	m.clearedAfter = false
	m.SetNeedsRedraw(true)
}

// Message returns the message while it has not expired.
func (m *MessageBar) Message() string {
	if m.expired() {
		return ""
	}
	return m.message
}

func (m *MessageBar) expired() bool {
	return m.now().Sub(m.setAt) > messageDuration
}

// NeedsRedraw also reports an expired message that is still on screen.
func (m *MessageBar) NeedsRedraw() bool {
	return (m.expired() && !m.clearedAfter) || m.needsRedraw
}

// Render is overridden so the expiry check in NeedsRedraw is honoured.
func (m *MessageBar) Render(term Terminal, originRow int) {
	if m.NeedsRedraw() {
		m.SetNeedsRedraw(true)
	}
	m.component.Render(term, originRow)
}

func (m *MessageBar) draw(term Terminal, originRow int) error {
	if m.expired() {
		m.clearedAfter = true
	}
	return term.PrintRow(originRow, m.Message())
}
