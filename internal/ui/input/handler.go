package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"sreader/internal/action"
	"sreader/internal/mode"
	"sreader/internal/ui/input/modes"
	"sreader/internal/ui/input/types"
)

type Handler struct {
	modes     map[mode.Mode]types.ModeHandler
	textInput *textinput.Model // Shared text input for insert mode
	keyMap    KeyMap
}

func New(bindings map[string]action.Action) *Handler {
	ti := textinput.New()
	ti.Prompt = "" // Prompt is handled in the view
	ti.CharLimit = 256

	h := &Handler{
		textInput: &ti,
		modes:     make(map[mode.Mode]types.ModeHandler),
		keyMap:    NewKeyMap(bindings),
	}

	// Register all mode handlers
	h.modes[mode.Normal] = modes.NewNormalMode(bindings)
	h.modes[mode.Insert] = modes.NewInsertMode(h.textInput)
	h.modes[mode.Processing] = modes.NewProcessingMode()

	return h
}

// HandleKey interprets msg in the current mode. Keys the insert mode does not
// consume are typed into the text input.
func (h *Handler) HandleKey(msg tea.KeyMsg, current mode.Mode, ctx types.Context) ([]action.Action, tea.Cmd) {
	handler := h.modes[current]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)
	if consumed || current != mode.Insert {
		return actions, nil
	}

	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	return []action.Action{action.Update{}}, cmd
}

// SyncMode focuses the text input in insert mode and blurs it in normal
// mode. Processing leaves it as it was.
func (h *Handler) SyncMode(current mode.Mode) tea.Cmd {
	switch current {
	case mode.Insert:
		if !h.textInput.Focused() {
			return h.textInput.Focus()
		}
	case mode.Normal:
		if h.textInput.Focused() {
			h.textInput.Blur()
			h.textInput.Reset()
		}
	}
	return nil
}

// Update handles non-keyboard messages for the text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if !h.textInput.Focused() {
		return nil
	}
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	return cmd
}

// ModeName returns the display name of the handler for current
func (h *Handler) ModeName(current mode.Mode) string {
	if m := h.modes[current]; m != nil {
		return m.Name()
	}
	return current.String()
}

// TextInput returns the shared text input model
func (h *Handler) TextInput() *textinput.Model {
	return h.textInput
}

// KeyMap returns the normal-mode bindings for help rendering
func (h *Handler) KeyMap() KeyMap {
	return h.keyMap
}
