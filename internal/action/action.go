// Package action defines the closed set of events and commands that flow
// through the dispatch queue.
package action

import (
	"fmt"
	"time"
)

// Action is an immutable event or command value. Type returns the variant
// name; String returns the serialized form understood by Parse.
type Action interface {
	Type() string
	String() string
	isAction()
}

// Direction is the sense of a scheduled advance.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "Backward"
	}
	return "Forward"
}

// Sign returns +1 for Forward and -1 for Backward.
func (d Direction) Sign() int {
	if d == Backward {
		return -1
	}
	return 1
}

// Lifecycle and terminal actions

type Tick struct{}

func (Tick) Type() string { return "Tick" }
func (a Tick) String() string { return a.Type() }
func (Tick) isAction() {}

type Render struct{}

func (Render) Type() string { return "Render" }
func (a Render) String() string { return a.Type() }
func (Render) isAction() {}

// Resize reports new terminal dimensions.
type Resize struct {
	Width  int
	Height int
}

func (Resize) Type() string { return "Resize" }
func (a Resize) String() string {
	return fmt.Sprintf("Resize(%d, %d)", a.Width, a.Height)
}
func (Resize) isAction() {}

type Suspend struct{}

func (Suspend) Type() string { return "Suspend" }
func (a Suspend) String() string { return a.Type() }
func (Suspend) isAction() {}

type Resume struct{}

func (Resume) Type() string { return "Resume" }
func (a Resume) String() string { return a.Type() }
func (Resume) isAction() {}

type Quit struct{}

func (Quit) Type() string { return "Quit" }
func (a Quit) String() string { return a.Type() }
func (Quit) isAction() {}

type Refresh struct{}

func (Refresh) Type() string { return "Refresh" }
func (a Refresh) String() string { return a.Type() }
func (Refresh) isAction() {}

// Error carries a user-visible message.
type Error struct {
	Message string
}

func (Error) Type() string { return "Error" }
func (a Error) String() string { return fmt.Sprintf("Error(%s)", a.Message) }
func (Error) isAction() {}

// Help opens the full help text in a pager.
type Help struct{}

func (Help) Type() string { return "Help" }
func (a Help) String() string { return a.Type() }
func (Help) isAction() {}

type ToggleShowHelp struct{}

func (ToggleShowHelp) Type() string { return "ToggleShowHelp" }
func (a ToggleShowHelp) String() string { return a.Type() }
func (ToggleShowHelp) isAction() {}

// ShowLog opens the session log in a pager.
type ShowLog struct{}

func (ShowLog) Type() string { return "ShowLog" }
func (a ShowLog) String() string { return a.Type() }
func (ShowLog) isAction() {}

// Reading actions

// ScheduleAdvance asks for a bracketed advance to run as a background task.
type ScheduleAdvance struct {
	Direction Direction
	Amount    int
}

func (ScheduleAdvance) Type() string { return "ScheduleAdvance" }
func (a ScheduleAdvance) String() string {
	return fmt.Sprintf("ScheduleAdvance(%s, %d)", a.Direction, a.Amount)
}
func (ScheduleAdvance) isAction() {}

// Delta returns the signed word offset.
func (a ScheduleAdvance) Delta() int {
	return a.Direction.Sign() * a.Amount
}

// Advance moves the current word by Amount; negative moves backward.
type Advance struct {
	Amount int
}

func (Advance) Type() string { return "Advance" }
func (a Advance) String() string { return fmt.Sprintf("Advance(%d)", a.Amount) }
func (Advance) isAction() {}

type TogglePlayback struct{}

func (TogglePlayback) Type() string { return "TogglePlayback" }
func (a TogglePlayback) String() string { return a.Type() }
func (TogglePlayback) isAction() {}

// PlaybackStopped is emitted by a playback task that ran out of words.
type PlaybackStopped struct {
	ID string
}

func (PlaybackStopped) Type() string { return "PlaybackStopped" }
func (a PlaybackStopped) String() string { return fmt.Sprintf("PlaybackStopped(%s)", a.ID) }
func (PlaybackStopped) isAction() {}

// SetRate changes the delay between playback steps.
type SetRate struct {
	Rate time.Duration
}

func (SetRate) Type() string { return "SetRate" }
func (a SetRate) String() string { return fmt.Sprintf("SetRate(%s)", a.Rate) }
func (SetRate) isAction() {}

type LoadText struct{}

func (LoadText) Type() string { return "LoadText" }
func (a LoadText) String() string { return a.Type() }
func (LoadText) isAction() {}

// CorpusLoaded delivers the raw text read by the load task. Its serialized
// form names only the source; it cannot be decoded.
type CorpusLoaded struct {
	Path string
	Text string
}

func (CorpusLoaded) Type() string { return "CorpusLoaded" }
func (a CorpusLoaded) String() string { return fmt.Sprintf("CorpusLoaded(%s)", a.Path) }
func (CorpusLoaded) isAction() {}

// CompleteInput submits the insert-mode buffer.
type CompleteInput struct {
	Text string
}

func (CompleteInput) Type() string { return "CompleteInput" }
func (a CompleteInput) String() string { return fmt.Sprintf("CompleteInput(%s)", a.Text) }
func (CompleteInput) isAction() {}

// Mode actions

type EnterNormal struct{}

func (EnterNormal) Type() string { return "EnterNormal" }
func (a EnterNormal) String() string { return a.Type() }
func (EnterNormal) isAction() {}

type EnterInsert struct{}

func (EnterInsert) Type() string { return "EnterInsert" }
func (a EnterInsert) String() string { return a.Type() }
func (EnterInsert) isAction() {}

// EnterProcessing opens a busy bracket. Op correlates it with the matching
// ExitProcessing; empty is allowed.
type EnterProcessing struct {
	Op string
}

func (EnterProcessing) Type() string { return "EnterProcessing" }
func (a EnterProcessing) String() string {
	if a.Op == "" {
		return a.Type()
	}
	return fmt.Sprintf("EnterProcessing(%s)", a.Op)
}
func (EnterProcessing) isAction() {}

// ExitProcessing closes the bracket opened with the same Op.
type ExitProcessing struct {
	Op string
}

func (ExitProcessing) Type() string { return "ExitProcessing" }
func (a ExitProcessing) String() string {
	if a.Op == "" {
		return a.Type()
	}
	return fmt.Sprintf("ExitProcessing(%s)", a.Op)
}
func (ExitProcessing) isAction() {}

// Update is a no-op redraw request.
type Update struct{}

func (Update) Type() string { return "Update" }
func (a Update) String() string { return a.Type() }
func (Update) isAction() {}

// Variants returns a zero value of every variant, in declaration order.
func Variants() []Action {
	return []Action{
		Tick{}, Render{}, Resize{}, Suspend{}, Resume{}, Quit{}, Refresh{},
		Error{}, Help{}, ToggleShowHelp{}, ShowLog{},
		ScheduleAdvance{}, Advance{}, TogglePlayback{}, PlaybackStopped{},
		SetRate{}, LoadText{}, CorpusLoaded{}, CompleteInput{},
		EnterNormal{}, EnterInsert{}, EnterProcessing{}, ExitProcessing{},
		Update{},
	}
}
