package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"sreader/internal/action"
	"sreader/internal/ui/input/types"
)

// RateStep is how much + and - change the playback delay.
const RateStep = 25 * time.Millisecond

type NormalMode struct {
	bindings map[string]action.Action
}

func NewNormalMode(bindings map[string]action.Action) *NormalMode {
	return &NormalMode{bindings: bindings}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]action.Action, bool) {
	if a, ok := m.bindings[types.KeyName(msg)]; ok {
		return []action.Action{a}, true
	}

	// Rate keys are relative to the current rate, so they cannot be bindings
	switch msg.String() {
	case "+", "=":
		return []action.Action{action.SetRate{Rate: max(ctx.Rate()-RateStep, RateStep)}}, true
	case "-", "_":
		return []action.Action{action.SetRate{Rate: ctx.Rate() + RateStep}}, true
	}

	return nil, false
}
