package core

import (
	"fmt"

	"github.com/ionut-t/gotext/internal/log"
)

const DefaultQuitTimes = 3

type Clipboard interface {
	Write(text string) error
	Read() (string, error)
}

type promptType int

const (
	promptNone promptType = iota
	promptSave
	promptSearch
)

// Options configures an Editor. Zero values select the defaults.
type Options struct {
	Storage        Storage
	Highlighters   SyntaxHighlighterFactory
	Clipboard      Clipboard
	QuitTimes      int
	WelcomeMessage string
	Name           string
}

// Editor ties the view, the bars and the terminal together. It processes
// one command at a time and is not safe for concurrent use.
type Editor struct {
	terminal   Terminal
	view       *View
	statusBar  *StatusBar
	messageBar *MessageBar
	commandBar *CommandBar
	clipboard  Clipboard

	prompt      promptType
	size        Size
	name        string
	title       string
	quitTimes   int
	quitPresses int
	shouldQuit  bool

	updateSignal chan Signal
}

func New(term Terminal, opts Options) *Editor {
	if opts.Storage == nil {
		opts.Storage = NewOSStorage()
	}
	if opts.QuitTimes <= 0 {
		opts.QuitTimes = DefaultQuitTimes
	}
	if opts.Name == "" {
		opts.Name = "gotext"
	}

	e := &Editor{
		terminal:     term,
		view:         NewView(opts.Storage, opts.Highlighters, opts.WelcomeMessage),
		statusBar:    NewStatusBar(),
		messageBar:   NewMessageBar(),
		commandBar:   NewCommandBar(),
		clipboard:    opts.Clipboard,
		name:         opts.Name,
		quitTimes:    opts.QuitTimes,
		updateSignal: make(chan Signal, 20),
	}

	e.Resize(term.Size())
	e.updateMessage(HelpMessage)
	return e
}

// Load opens path. A failure is reported on the message bar and the editor
// continues with an empty document.
func (e *Editor) Load(path string) {
	if err := e.view.Load(path); err != nil {
		log.ErrorErr(log.CatEditor, "could not open file", err, "path", path)
		e.updateMessage(openFailed(path))
		e.DispatchError(ErrFileLoadId, err)
		return
	}
	e.DispatchSignal(LoadSignal{path})
}

func (e *Editor) View() *View {
	return e.view
}

func (e *Editor) GetUpdateSignalChan() <-chan Signal {
	return e.updateSignal
}

func (e *Editor) ShouldQuit() bool {
	return e.shouldQuit
}

// Title is the window title, derived from the file name.
func (e *Editor) Title() string {
	return e.title
}

// Message returns the current message bar text.
func (e *Editor) Message() string {
	return e.messageBar.Message()
}

// Notify shows message on the message bar.
func (e *Editor) Notify(message string) {
	e.updateMessage(message)
}

// HandleKey decodes key and processes the resulting command. Keys without
// a binding are ignored.
func (e *Editor) HandleKey(key KeyEvent) {
	cmd, ok := CommandFromKey(key)
	if !ok {
		log.Debug(log.CatEditor, "unbound key", "key", key.String())
		return
	}
	e.Process(cmd)
}

// InsertText inserts text as typed: into the document, or into the prompt
// value while a prompt is shown. Used for pastes and for input that arrives
// as several runes at once, like a letter followed by a combining mark.
func (e *Editor) InsertText(text string) {
	if text == "" {
		return
	}
	switch e.prompt {
	case promptSearch:
		e.commandBar.InsertText(text)
		e.view.Search(e.commandBar.Value())
	case promptSave:
		e.commandBar.InsertText(text)
	default:
		e.resetQuitTimes()
		e.view.InsertText(text)
	}
}

// Resize lays the components out: the view on top, the status bar and the
// message or command bar at the bottom.
func (e *Editor) Resize(size Size) {
	e.size = size
	e.view.Resize(Size{Height: max(size.Height-2, 0), Width: size.Width})
	bar := Size{Height: 1, Width: size.Width}
	e.messageBar.Resize(bar)
	e.statusBar.Resize(bar)
	e.commandBar.Resize(bar)
}

// Process executes a single command.
func (e *Editor) Process(cmd Command) {
	if resize, ok := cmd.(Resize); ok {
		e.Resize(resize.Size)
		return
	}

	switch e.prompt {
	case promptSearch:
		e.processDuringSearch(cmd)
	case promptSave:
		e.processDuringSave(cmd)
	default:
		e.processNoPrompt(cmd)
	}
}

func (e *Editor) processNoPrompt(cmd Command) {
	if cmd == SystemQuit {
		e.handleQuit()
		return
	}
	e.resetQuitTimes()

	switch cmd := cmd.(type) {
	case System:
		switch cmd {
		case SystemSearch:
			e.setPrompt(promptSearch)
		case SystemSave:
			e.handleSave()
		case SystemPaste:
			if text, ok := e.readClipboard(); ok {
				e.InsertText(text)
			}
		case SystemCopyLine:
			e.copyLine()
		}
	case Edit:
		e.view.HandleEdit(cmd)
	case Move:
		e.view.HandleMove(cmd)
	}
}

func (e *Editor) processDuringSave(cmd Command) {
	switch cmd := cmd.(type) {
	case System:
		switch cmd {
		case SystemDismiss:
			e.setPrompt(promptNone)
			e.updateMessage(SaveAbortedMessage)
		case SystemPaste:
			if text, ok := e.readClipboard(); ok {
				e.InsertText(text)
			}
		}
	case Edit:
		if cmd.Kind == EditInsertNewline {
			path := e.commandBar.Value()
			e.save(path)
			e.setPrompt(promptNone)
			return
		}
		e.commandBar.HandleEdit(cmd)
	}
}

func (e *Editor) processDuringSearch(cmd Command) {
	switch cmd := cmd.(type) {
	case System:
		switch cmd {
		case SystemDismiss:
			e.setPrompt(promptNone)
			e.view.DismissSearch()
		case SystemPaste:
			if text, ok := e.readClipboard(); ok {
				e.InsertText(text)
			}
		}
	case Edit:
		if cmd.Kind == EditInsertNewline {
			e.setPrompt(promptNone)
			e.view.ExitSearch()
			return
		}
		e.commandBar.HandleEdit(cmd)
		e.view.Search(e.commandBar.Value())
	case Move:
		switch cmd {
		case MoveRight, MoveDown:
			e.view.SearchNext()
		case MoveLeft, MoveUp:
			e.view.SearchPrev()
		}
	}
}

func (e *Editor) handleQuit() {
	if !e.view.Status().IsModified || e.quitPresses+1 >= e.quitTimes {
		e.shouldQuit = true
		e.DispatchSignal(QuitSignal{})
		return
	}
	e.quitPresses++
	e.updateMessage(unsavedQuit(e.quitTimes - e.quitPresses))
}

func (e *Editor) resetQuitTimes() {
	if e.quitPresses > 0 {
		e.quitPresses = 0
		e.updateMessage(EmptyMessage)
	}
}

func (e *Editor) handleSave() {
	if e.view.IsFileLoaded() {
		e.save("")
		return
	}
	e.setPrompt(promptSave)
}

// save writes the document, to path when it is not empty. Failures leave
// the document dirty.
func (e *Editor) save(path string) {
	var err error
	if path == "" {
		err = e.view.Save()
	} else {
		err = e.view.SaveAs(path)
	}

	if err != nil {
		log.ErrorErr(log.CatEditor, "save failed", err, "path", path)
		e.updateMessage(SaveFailedMessage)
		e.DispatchError(ErrFileSaveId, err)
		return
	}

	e.updateMessage(FileSavedMessage)
	e.DispatchSignal(SaveSignal{e.view.Document().FileInfo().Path()})
}

func (e *Editor) copyLine() {
	if e.clipboard == nil {
		e.updateMessage(ClipboardMessage)
		return
	}
	if err := e.clipboard.Write(e.view.CurrentLine()); err != nil {
		log.ErrorErr(log.CatEditor, "copy failed", err)
		e.updateMessage(ClipboardMessage)
		e.DispatchError(ErrClipboardId, fmt.Errorf("%w: %w", ErrClipboard, err))
		return
	}
	e.updateMessage(LineCopiedMessage)
}

func (e *Editor) readClipboard() (string, bool) {
	if e.clipboard == nil {
		e.updateMessage(ClipboardMessage)
		return "", false
	}
	text, err := e.clipboard.Read()
	if err != nil {
		log.ErrorErr(log.CatEditor, "paste failed", err)
		e.updateMessage(ClipboardMessage)
		e.DispatchError(ErrClipboardId, fmt.Errorf("%w: %w", ErrClipboard, err))
		return "", false
	}
	return text, true
}

func (e *Editor) setPrompt(prompt promptType) {
	switch prompt {
	case promptNone:
		// The message bar is hidden while a prompt is shown.
		e.messageBar.SetNeedsRedraw(true)
	case promptSave:
		e.commandBar.SetPrompt(SaveAsPrompt)
	case promptSearch:
		e.view.EnterSearch()
		e.commandBar.SetPrompt(SearchPrompt)
	}
	e.commandBar.ClearValue()
	e.prompt = prompt
	log.Debug(log.CatEditor, "prompt changed", "prompt", prompt)
}

func (e *Editor) inPrompt() bool {
	return e.prompt != promptNone
}

func (e *Editor) updateMessage(message string) {
	e.messageBar.UpdateMessage(message)
	if message != EmptyMessage {
		e.DispatchMessage(message)
	}
}

// Render draws every component that needs it and places the caret.
func (e *Editor) Render() error {
	if e.size.Height == 0 || e.size.Width == 0 {
		return nil
	}

	status := e.view.Status()
	e.title = fmt.Sprintf("%s - %s", status.FileName, e.name)
	e.statusBar.UpdateStatus(status)

	bottomBarRow := e.size.Height - 1
	if err := e.terminal.HideCaret(); err != nil {
		return err
	}

	if e.inPrompt() {
		e.commandBar.Render(e.terminal, bottomBarRow)
	} else {
		e.messageBar.Render(e.terminal, bottomBarRow)
	}
	if e.size.Height > 1 {
		e.statusBar.Render(e.terminal, e.size.Height-2)
	}
	if e.size.Height > 2 {
		e.view.Render(e.terminal, 0)
	}

	caret := e.view.CaretPosition()
	if e.inPrompt() {
		caret = Position{Row: bottomBarRow, Col: e.commandBar.CaretCol()}
	}
	if err := e.terminal.MoveCaretTo(caret); err != nil {
		return err
	}
	if err := e.terminal.ShowCaret(); err != nil {
		return err
	}
	return e.terminal.Flush()
}
