package types

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"sreader/internal/action"
)

// Context provides read-only access to state needed for input handling
type Context interface {
	Rate() time.Duration
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]action.Action, bool)

	// Name returns the mode name for display
	Name() string
}

// KeyName returns the binding name for a key message. Space is spelled out
// so it can be written as a TOML key.
func KeyName(msg tea.KeyMsg) string {
	if msg.Type == tea.KeySpace {
		return "space"
	}
	return msg.String()
}
