package ui

import (
	"sreader/internal/action"
)

// actionMsg carries one dispatched action into the program. The model
// applies it and answers on reply.
type actionMsg struct {
	action action.Action
	reply  chan<- handled
}

// handled is the outcome of applying an actionMsg
type handled struct {
	derived []action.Action
	err     error
}

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	title string
	err   error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
