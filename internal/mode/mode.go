// Package mode implements the input mode state machine. Transitions are
// driven only by mode actions applied from the dispatch consumer.
package mode

import "sreader/internal/action"

// Mode represents an input mode
type Mode int

const (
	Normal Mode = iota
	Insert
	Processing
)

func (m Mode) String() string {
	switch m {
	case Insert:
		return "insert"
	case Processing:
		return "processing"
	default:
		return "normal"
	}
}

// Machine tracks the current mode. Processing is reference-counted per
// operation id: it is left when the last open bracket closes, and the mode
// that was active before the first bracket is restored.
type Machine struct {
	current Mode
	resume  Mode
	open    map[string]int
	pending int
}

// NewMachine starts in Normal.
func NewMachine() *Machine {
	return &Machine{
		current: Normal,
		open:    make(map[string]int),
	}
}

// Current returns the active mode.
func (m *Machine) Current() Mode {
	return m.current
}

// Effective returns the mode input is interpreted in: the mode to resume
// while processing, otherwise the current one.
func (m *Machine) Effective() Mode {
	if m.pending > 0 {
		return m.resume
	}
	return m.current
}

// Busy reports how many processing brackets are open.
func (m *Machine) Busy() int {
	return m.pending
}

// Apply handles a mode action. It returns false when a is not a mode action
// or is an ExitProcessing without a matching open bracket.
func (m *Machine) Apply(a action.Action) bool {
	switch a := a.(type) {
	case action.EnterNormal:
		m.set(Normal)
	case action.EnterInsert:
		m.set(Insert)
	case action.EnterProcessing:
		if m.pending == 0 {
			m.resume = m.current
			m.current = Processing
		}
		m.open[a.Op]++
		m.pending++
	case action.ExitProcessing:
		if m.open[a.Op] == 0 {
			return false
		}
		m.open[a.Op]--
		if m.open[a.Op] == 0 {
			delete(m.open, a.Op)
		}
		m.pending--
		if m.pending == 0 {
			m.current = m.resume
		}
	default:
		return false
	}
	return true
}

// set switches mode, or records the target to resume when busy.
func (m *Machine) set(target Mode) {
	if m.pending > 0 {
		m.resume = target
		return
	}
	m.current = target
}
