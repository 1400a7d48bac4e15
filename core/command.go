package core

// Command is a decoded editor action.
type Command interface {
	command()
}

// Move moves the caret.
type Move int

const (
	MoveUp Move = iota
	MoveDown
	MoveLeft
	MoveRight
	MovePageUp
	MovePageDown
	MoveStartOfLine
	MoveEndOfLine
)

// EditKind selects the kind of Edit.
type EditKind int

const (
	EditInsert EditKind = iota
	EditInsertNewline
	EditDelete
	EditDeleteBackward
)

// Edit changes the text at the caret. Char is only used by EditInsert.
type Edit struct {
	Kind EditKind
	Char rune
}

// System is an editor level action.
type System int

const (
	SystemSave System = iota
	SystemQuit
	SystemSearch
	SystemDismiss
	SystemPaste
	SystemCopyLine
)

// Resize reports a new terminal size.
type Resize struct {
	Size Size
}

func (Move) command()   {}
func (Edit) command()   {}
func (System) command() {}
func (Resize) command() {}

var moveKeys = map[KeyCode]Move{
	KeyUp:       MoveUp,
	KeyDown:     MoveDown,
	KeyLeft:     MoveLeft,
	KeyRight:    MoveRight,
	KeyPageUp:   MovePageUp,
	KeyPageDown: MovePageDown,
	KeyHome:     MoveStartOfLine,
	KeyEnd:      MoveEndOfLine,
}

var ctrlKeys = map[rune]System{
	'q': SystemQuit,
	's': SystemSave,
	'f': SystemSearch,
	'v': SystemPaste,
	'k': SystemCopyLine,
}

// CommandFromKey decodes a key event. ok is false for keys without a
// binding.
func CommandFromKey(key KeyEvent) (cmd Command, ok bool) {
	if key.Modifiers&ModCtrl != 0 {
		system, ok := ctrlKeys[key.Rune]
		return system, ok
	}

	if move, ok := moveKeys[key.Key]; ok {
		return move, true
	}

	switch key.Key {
	case KeyEnter:
		return Edit{Kind: EditInsertNewline}, true
	case KeyBackspace:
		return Edit{Kind: EditDeleteBackward}, true
	case KeyDelete:
		return Edit{Kind: EditDelete}, true
	case KeyTab:
		return Edit{Kind: EditInsert, Char: '\t'}, true
	case KeySpace:
		return Edit{Kind: EditInsert, Char: ' '}, true
	case KeyEscape:
		return SystemDismiss, true
	}

	if key.Rune != 0 && key.Modifiers&ModAlt == 0 {
		return Edit{Kind: EditInsert, Char: key.Rune}, true
	}
	return nil, false
}
