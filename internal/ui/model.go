package ui

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"sreader/internal/action"
	"sreader/internal/dispatch"
	"sreader/internal/reader"
	"sreader/internal/ui/input"
	"sreader/internal/ui/input/types"
	"sreader/internal/ui/views"
)

// maxLastKeys bounds the key trail shown in the status line.
const maxLastKeys = 10

// LogSource supplies the recorded session log.
type LogSource interface {
	Reader() io.Reader
}

// Model represents the UI state
type Model struct {
	reader *reader.Reader
	sink   dispatch.Sink
	logs   LogSource
	logger *slog.Logger

	// UI-specific state not owned by the reader
	width       int
	height      int
	help        help.Model
	showHelp    bool
	lastKeys    []string
	inPagerMode bool // tracks if we're currently in pager mode

	renderer     *views.Renderer
	inputHandler *input.Handler
	pager        *PagerOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model. Key presses become actions pushed to
// sink; dispatched actions arrive back through a Bridge.
func NewModel(r *reader.Reader, sink dispatch.Sink, bindings map[string]action.Action, logs LogSource, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	return &Model{
		reader:       r,
		sink:         sink,
		logs:         logs,
		logger:       logger,
		help:         help.New(),
		renderer:     views.NewRenderer(),
		inputHandler: input.New(bindings),
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager = NewPagerOps(p)
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case actionMsg:
		return m, m.apply(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.push(action.Resize{Width: msg.Width, Height: msg.Height})
		return m, nil

	case tea.ResumeMsg:
		m.push(action.Resume{})
		return m, nil

	case tea.KeyMsg:
		if m.inPagerMode {
			return m, nil
		}
		m.recordKey(msg)

		actions, cmd := m.inputHandler.HandleKey(msg, m.reader.Mode(), m.reader)
		m.push(actions...)
		return m, cmd

	case pagerMsg:
		if msg.err != nil {
			m.logger.Warn("pager failed", "pager", msg.title, "error", msg.err)
			m.push(action.Error{Message: fmt.Sprintf("%s: %v", msg.title, msg.err)})
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	default:
		// Cursor blink and other text input messages
		return m, m.inputHandler.Update(msg)
	}
}

// apply hands a dispatched action to the reader, performs its presentation
// side effects and answers the bridge.
func (m *Model) apply(msg actionMsg) tea.Cmd {
	derived, err := m.reader.Handle(msg.action)

	var cmds []tea.Cmd
	switch msg.action.(type) {
	case action.Tick:
		m.lastKeys = m.lastKeys[:0]
	case action.ToggleShowHelp:
		m.showHelp = !m.showHelp
	case action.Help:
		cmds = append(cmds, m.openPager("help", renderHelpContent(m.inputHandler.KeyMap())))
	case action.ShowLog:
		var logs io.Reader
		if m.logs != nil {
			logs = m.logs.Reader()
		}
		content, logErr := renderSessionLog(logs, m.reader.Inputs())
		if logErr != nil {
			derived = append(derived, action.Error{Message: logErr.Error()})
			break
		}
		cmds = append(cmds, m.openPager("session log", content))
	case action.Suspend:
		cmds = append(cmds, tea.Suspend)
	case action.Refresh:
		cmds = append(cmds, tea.ClearScreen)
	case action.Quit:
		cmds = append(cmds, tea.Quit)
	}
	cmds = append(cmds, m.inputHandler.SyncMode(m.reader.Mode()))

	msg.reply <- handled{derived: derived, err: err}
	return tea.Batch(cmds...)
}

// openPager returns a command that shows content in the ov pager, pausing
// rendering while it runs
func (m *Model) openPager(title, content string) tea.Cmd {
	return func() tea.Msg {
		if m.program == nil || m.pager == nil {
			return pagerMsg{title: title, err: errors.New("program not set")}
		}

		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.pager.ShowInPager(content)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return pagerMsg{title: title, err: err}
	}
}

func (m *Model) push(actions ...action.Action) {
	if err := m.sink.Push(actions...); err != nil && !errors.Is(err, dispatch.ErrQueueClosed) {
		m.logger.Warn("dropping input actions", "error", err)
	}
}

func (m *Model) recordKey(msg tea.KeyMsg) {
	m.lastKeys = append(m.lastKeys, types.KeyName(msg))
	if len(m.lastKeys) > maxLastKeys {
		m.lastKeys = m.lastKeys[len(m.lastKeys)-maxLastKeys:]
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	index, total := m.reader.Position()
	return m.renderer.Render(views.ViewState{
		Width:     m.width,
		Height:    m.height,
		Corpus:    m.reader.Corpus(),
		Word:      m.reader.Word(),
		Index:     index,
		Total:     total,
		Mode:      m.reader.Mode(),
		Playing:   m.reader.Playing(),
		Rate:      m.reader.Rate(),
		Status:    m.reader.Status(),
		TextInput: m.inputHandler.TextInput().View(),
		Inputs:    m.reader.Inputs(),
		LastKeys:  m.lastKeys,
		Ticks:     m.reader.Ticks(),
		Renders:   m.reader.Renders(),
		ShowHelp:  m.showHelp,
		HelpModel: m.help,
		KeyMap:    m.inputHandler.KeyMap(),
	})
}
