package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"sreader/internal/action"
	"sreader/internal/ui/input/types"
)

// InsertMode accumulates typed text in the shared text input
type InsertMode struct {
	textInput *textinput.Model
}

func NewInsertMode(ti *textinput.Model) *InsertMode {
	return &InsertMode{textInput: ti}
}

func (m *InsertMode) Name() string {
	return "insert"
}

func (m *InsertMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]action.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []action.Action{action.Quit{}}, true
	case "esc":
		// Leave without submitting
		m.textInput.Reset()
		return []action.Action{action.EnterNormal{}}, true
	case "enter":
		text := m.textInput.Value()
		m.textInput.Reset()
		return []action.Action{action.CompleteInput{Text: text}}, true
	default:
		// Let the main handler update the text input
		return nil, false
	}
}

// ProcessingMode drops every key while background work is in flight
type ProcessingMode struct{}

func NewProcessingMode() *ProcessingMode {
	return &ProcessingMode{}
}

func (m *ProcessingMode) Name() string {
	return "processing"
}

func (m *ProcessingMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]action.Action, bool) {
	return nil, true
}
