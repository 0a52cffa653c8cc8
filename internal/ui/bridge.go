package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"sreader/internal/action"
	"sreader/internal/dispatch"
)

// Bridge is the dispatch.Handler used by the running program. Each action
// is handed to the Bubble Tea goroutine, which is then the only goroutine
// touching reader state, and the dispatch loop waits for the derived
// actions before popping the next one.
type Bridge struct {
	send func(tea.Msg)
	done <-chan struct{}
}

// NewBridge creates a bridge that delivers with send, usually
// (*tea.Program).Send. done must be closed once the program has exited.
func NewBridge(send func(tea.Msg), done <-chan struct{}) *Bridge {
	return &Bridge{send: send, done: done}
}

// Handle implements dispatch.Handler.
func (b *Bridge) Handle(a action.Action) ([]action.Action, error) {
	select {
	case <-b.done:
		return nil, dispatch.ErrStopped
	default:
	}

	reply := make(chan handled, 1)
	b.send(actionMsg{action: a, reply: reply})

	select {
	case h := <-reply:
		return h.derived, h.err
	case <-b.done:
		return nil, dispatch.ErrStopped
	}
}
