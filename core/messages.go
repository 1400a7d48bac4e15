package core

import (
	"fmt"

	"github.com/ionut-t/gotext/internal/log"
)

var (
	EmptyMessage        = ""
	HelpMessage         = "HELP: Ctrl-F = find | Ctrl-S = save | Ctrl-Q = quit"
	FileSavedMessage    = "File saved successfully."
	SaveFailedMessage   = "Error writing file!"
	SaveAbortedMessage  = "Save aborted."
	LineCopiedMessage   = "Line copied."
	ClipboardMessage    = "Clipboard unavailable."
	FileChangedMessage  = "File changed on disk."
	SaveAsPrompt        = "Save as: "
	SearchPrompt        = "Search (Esc to cancel, Arrows to navigate): "
	openFailedMessage   = "ERR: Could not open file: %s"
	unsavedQuitMessage  = "WARNING! File has unsaved changes. Press Ctrl-Q %d more times to quit."
	unsavedQuitMessage1 = "WARNING! File has unsaved changes. Press Ctrl-Q 1 more time to quit."
)

func openFailed(path string) string {
	return fmt.Sprintf(openFailedMessage, path)
}

func unsavedQuit(remaining int) string {
	if remaining == 1 {
		return unsavedQuitMessage1
	}
	return fmt.Sprintf(unsavedQuitMessage, remaining)
}

func (e *Editor) DispatchMessage(args ...string) {
	id := args[0]
	value := id
	if len(args) > 1 {
		value = args[1]
	}
	select {
	case e.updateSignal <- MessageSignal{id, value}:
	default:
		log.Debug(log.CatEditor, "signal channel full, dropping message", "message", value)
	}
}
