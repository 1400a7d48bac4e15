package adapter_bubbletea

import (
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ionut-t/gotext/adapter-bubbletea/highlighter"
	editor "github.com/ionut-t/gotext/core"
	"github.com/ionut-t/gotext/internal/log"
	"github.com/ionut-t/gotext/internal/watcher"
)

const (
	// How long file events are ignored after the editor saved the file.
	saveEchoWindow = time.Second
	// How often the message bar is checked for an expired message.
	messageTick = time.Second
)

type MessageMsg string

type ErrorMsg error

type SaveMsg string

type QuitMsg struct{}

// FileChangedMsg reports that the open file was modified by another process.
type FileChangedMsg string

type tickMsg time.Time

type atottoClipboard struct{}

func (c *atottoClipboard) Write(text string) error {
	return clipboard.WriteAll(text)
}

func (c *atottoClipboard) Read() (string, error) {
	return clipboard.ReadAll()
}

// Options configures the bubbletea model.
type Options struct {
	Storage        editor.Storage
	Theme          Theme
	KeyMap         KeyMap
	QuitTimes      int
	WelcomeMessage string
	WatchFile      bool
}

type Model struct {
	editor    *editor.Editor
	terminal  *frameTerminal
	keyMap    KeyMap
	watcher   *watcher.Watcher
	onChange  <-chan string
	watchFile bool
	err       error
}

// New creates a model of the given size editing an empty document.
func New(width, height int, opts Options) *Model {
	if opts.KeyMap.Quit.Keys() == nil {
		opts.KeyMap = DefaultKeyMap()
	}
	if opts.Theme.Syntax == nil {
		opts.Theme = DefaultTheme
	}

	term := newFrameTerminal(opts.Theme, editor.Size{Height: height, Width: width})
	e := editor.New(term, editor.Options{
		Storage:        opts.Storage,
		Highlighters:   highlighter.Factory(),
		Clipboard:      &atottoClipboard{},
		QuitTimes:      opts.QuitTimes,
		WelcomeMessage: opts.WelcomeMessage,
	})
	e.Notify(HelpText(opts.KeyMap.ShortHelp()))

	return &Model{
		editor:    e,
		terminal:  term,
		keyMap:    opts.KeyMap,
		watchFile: opts.WatchFile,
	}
}

// Open loads path into the editor and starts watching it.
func (m *Model) Open(path string) {
	m.editor.Load(path)
	if m.watchFile && m.editor.View().IsFileLoaded() {
		m.watch(path)
	}
}

func (m *Model) watch(path string) {
	m.stopWatching()

	w, err := watcher.New(watcher.DefaultConfig(path))
	if err != nil {
		log.ErrorErr(log.CatWatcher, "could not create watcher", err, "path", path)
		return
	}
	onChange, err := w.Start()
	if err != nil {
		log.ErrorErr(log.CatWatcher, "could not start watcher", err, "path", path)
		_ = w.Stop()
		return
	}
	m.watcher = w
	m.onChange = onChange
}

func (m *Model) isWatching(path string) bool {
	if m.watcher == nil {
		return false
	}
	abs, err := filepath.Abs(path)
	return err == nil && abs == m.watcher.Path()
}

func (m *Model) stopWatching() {
	if m.watcher != nil {
		_ = m.watcher.Stop()
		m.watcher = nil
		m.onChange = nil
	}
}

// Close releases the file watcher.
func (m *Model) Close() {
	m.stopWatching()
}

func (m *Model) GetEditor() *editor.Editor {
	return m.editor
}

func (m *Model) SetSize(width, height int) {
	size := editor.Size{Height: height, Width: width}
	m.terminal.resize(size)
	m.editor.Process(editor.Resize{Size: size})
}

func (m *Model) Init() tea.Cmd {
	m.render()
	return tea.Batch(
		m.listenForEditorUpdate(),
		m.listenForFileChanges(),
		tick(),
		tea.SetWindowTitle(m.editor.Title()),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if isTextInput(msg) {
			m.editor.InsertText(string(msg.Runes))
		} else {
			m.editor.HandleKey(convertBubbleKey(msg, m.keyMap))
		}
		if m.editor.ShouldQuit() {
			m.Close()
			return m, tea.Quit
		}

	case ErrorMsg:
		m.err = msg
		cmds = append(cmds, m.listenForEditorUpdate())

	case MessageMsg:
		cmds = append(cmds, m.listenForEditorUpdate())

	case SaveMsg:
		if m.watchFile && !m.isWatching(string(msg)) {
			m.watch(string(msg))
			cmds = append(cmds, m.listenForFileChanges())
		}
		if m.watcher != nil {
			m.watcher.IgnoreFor(saveEchoWindow)
		}
		cmds = append(cmds, m.listenForEditorUpdate())

	case FileChangedMsg:
		log.Info(log.CatWatcher, "file changed on disk", "path", string(msg))
		m.editor.Notify(editor.FileChangedMessage)
		cmds = append(cmds, m.listenForFileChanges())

	case tickMsg:
		cmds = append(cmds, tick())

	case QuitMsg:
		m.Close()
		return m, tea.Quit
	}

	m.render()
	cmds = append(cmds, tea.SetWindowTitle(m.editor.Title()))
	return m, tea.Batch(cmds...)
}

func (m *Model) render() {
	if err := m.editor.Render(); err != nil {
		log.ErrorErr(log.CatUI, "render failed", err)
		m.err = err
	}
}

func (m *Model) View() string {
	return m.terminal.View()
}

func tick() tea.Cmd {
	return tea.Tick(messageTick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) listenForFileChanges() tea.Cmd {
	onChange := m.onChange
	if onChange == nil {
		return nil
	}
	return func() tea.Msg {
		path, ok := <-onChange
		if !ok {
			return nil
		}
		return FileChangedMsg(path)
	}
}

func (m *Model) listenForEditorUpdate() tea.Cmd {
	return func() tea.Msg {
		editorChan := m.editor.GetUpdateSignalChan()
		signal := <-editorChan

		switch signal := signal.(type) {
		case editor.MessageSignal:
			_, message := signal.Value()
			return MessageMsg(message)

		case editor.ErrorSignal:
			_, err := signal.Value()
			return ErrorMsg(err)

		case editor.SaveSignal:
			return SaveMsg(signal.Value())

		case editor.LoadSignal:
			return MessageMsg("")

		case editor.QuitSignal:
			return QuitMsg{}
		}

		return nil
	}
}

// Err returns the last error reported by the editor, if any.
func (m *Model) Err() error {
	return m.err
}
