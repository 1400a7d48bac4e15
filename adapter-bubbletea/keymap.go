package adapter_bubbletea

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	editor "github.com/ionut-t/gotext/core"
)

// KeyMap binds terminal keys to the editor's control commands.
type KeyMap struct {
	Find     key.Binding
	Save     key.Binding
	Quit     key.Binding
	Paste    key.Binding
	CopyLine key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Find:     key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("Ctrl-F", "find")),
		Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("Ctrl-S", "save")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("Ctrl-Q", "quit")),
		Paste:    key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("Ctrl-V", "paste")),
		CopyLine: key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("Ctrl-K", "copy line")),
	}
}

// ShortHelp returns the bindings shown in the startup help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Find, k.Save, k.Quit}
}

// FullHelp returns every binding.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Paste, k.CopyLine}}
}

// HelpText renders bindings as "HELP: Ctrl-F = find | ...".
func HelpText(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		help := b.Help()
		parts = append(parts, help.Key+" = "+help.Desc)
	}
	return "HELP: " + strings.Join(parts, " | ")
}

// controlKey maps a bound control key to the editor's Ctrl event.
func (k KeyMap) controlKey(msg tea.KeyMsg) (editor.KeyEvent, bool) {
	switch {
	case key.Matches(msg, k.Find):
		return editor.CtrlKey('f'), true
	case key.Matches(msg, k.Save):
		return editor.CtrlKey('s'), true
	case key.Matches(msg, k.Quit):
		return editor.CtrlKey('q'), true
	case key.Matches(msg, k.Paste):
		return editor.CtrlKey('v'), true
	case key.Matches(msg, k.CopyLine):
		return editor.CtrlKey('k'), true
	}
	return editor.KeyEvent{}, false
}

// isTextInput reports runes that must be inserted as a whole: bracketed
// pastes and multi-rune input such as a letter with its combining mark.
func isTextInput(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyRunes && (msg.Paste || len(msg.Runes) > 1)
}

// Convert Bubbletea key to editor.KeyEvent
func convertBubbleKey(msg tea.KeyMsg, keyMap KeyMap) editor.KeyEvent {
	if event, ok := keyMap.controlKey(msg); ok {
		return event
	}

	key := editor.KeyEvent{}

	if len(msg.Runes) > 0 {
		key.Rune = msg.Runes[0]
	}

	if msg.Alt {
		key.Modifiers |= editor.ModAlt
	}

	switch msg.Type {
	case tea.KeyEnter:
		key.Key = editor.KeyEnter
	case tea.KeySpace:
		key.Key = editor.KeySpace
		key.Rune = ' '
	case tea.KeyEsc:
		key.Key = editor.KeyEscape
	case tea.KeyBackspace:
		key.Key = editor.KeyBackspace
	case tea.KeyTab:
		key.Key = editor.KeyTab
		key.Rune = '\t'
	case tea.KeyUp:
		key.Key = editor.KeyUp
	case tea.KeyDown:
		key.Key = editor.KeyDown
	case tea.KeyLeft:
		key.Key = editor.KeyLeft
	case tea.KeyRight:
		key.Key = editor.KeyRight
	case tea.KeyHome:
		key.Key = editor.KeyHome
	case tea.KeyEnd:
		key.Key = editor.KeyEnd
	case tea.KeyDelete:
		key.Key = editor.KeyDelete
	case tea.KeyInsert:
		key.Key = editor.KeyInsert
	case tea.KeyPgUp:
		key.Key = editor.KeyPageUp
	case tea.KeyPgDown:
		key.Key = editor.KeyPageDown
	}

	return key
}
