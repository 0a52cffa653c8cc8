package action

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrUnknownVariant is wrapped by DecodeError when the tag is not recognised.
var ErrUnknownVariant = errors.New("unknown action variant")

// DecodeError reports a serialized action that could not be parsed.
type DecodeError struct {
	Input   string
	Variant string // empty when the tag itself was not recognised
	Field   string // payload field that failed, if any
	Err     error
}

func (e *DecodeError) Error() string {
	switch {
	case e.Variant == "":
		return fmt.Sprintf("decode action %q: %v", e.Input, e.Err)
	case e.Field == "":
		return fmt.Sprintf("decode action %q: %s: %v", e.Input, e.Variant, e.Err)
	default:
		return fmt.Sprintf("decode action %q: %s.%s: %v", e.Input, e.Variant, e.Field, e.Err)
	}
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Parse decodes the string form produced by Action.String. Surrounding
// whitespace is ignored.
func Parse(s string) (Action, error) {
	input := s
	s = strings.TrimSpace(s)

	name, payload, hasPayload, err := splitCall(s)
	if err != nil {
		return nil, &DecodeError{Input: input, Variant: name, Err: err}
	}

	fail := func(field string, err error) (Action, error) {
		return nil, &DecodeError{Input: input, Variant: name, Field: field, Err: err}
	}
	noPayload := func(a Action) (Action, error) {
		if hasPayload {
			return fail("", errors.New("takes no payload"))
		}
		return a, nil
	}

	switch name {
	case "Tick":
		return noPayload(Tick{})
	case "Render":
		return noPayload(Render{})
	case "Suspend":
		return noPayload(Suspend{})
	case "Resume":
		return noPayload(Resume{})
	case "Quit":
		return noPayload(Quit{})
	case "Refresh":
		return noPayload(Refresh{})
	case "Help":
		return noPayload(Help{})
	case "ToggleShowHelp":
		return noPayload(ToggleShowHelp{})
	case "ShowLog":
		return noPayload(ShowLog{})
	case "TogglePlayback":
		return noPayload(TogglePlayback{})
	case "LoadText":
		return noPayload(LoadText{})
	case "EnterNormal":
		return noPayload(EnterNormal{})
	case "EnterInsert":
		return noPayload(EnterInsert{})
	case "Update":
		return noPayload(Update{})

	case "EnterProcessing":
		return EnterProcessing{Op: strings.TrimSpace(payload)}, nil
	case "ExitProcessing":
		return ExitProcessing{Op: strings.TrimSpace(payload)}, nil

	case "Error":
		if !hasPayload {
			return fail("Message", errors.New("missing payload"))
		}
		return Error{Message: payload}, nil

	case "CompleteInput":
		if !hasPayload {
			return fail("Text", errors.New("missing payload"))
		}
		return CompleteInput{Text: payload}, nil

	case "PlaybackStopped":
		id := strings.TrimSpace(payload)
		if id == "" {
			return fail("ID", errors.New("missing payload"))
		}
		return PlaybackStopped{ID: id}, nil

	case "Resize":
		parts := strings.Split(payload, ",")
		if !hasPayload || len(parts) != 2 {
			return fail("", fmt.Errorf("want 2 integers, got %q", payload))
		}
		w, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 16)
		if err != nil {
			return fail("Width", err)
		}
		h, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 16)
		if err != nil {
			return fail("Height", err)
		}
		return Resize{Width: int(w), Height: int(h)}, nil

	case "Advance":
		n, err := strconv.Atoi(strings.TrimSpace(payload))
		if err != nil {
			return fail("Amount", err)
		}
		return Advance{Amount: n}, nil

	case "ScheduleAdvance":
		parts := strings.Split(payload, ",")
		if !hasPayload || len(parts) != 2 {
			return fail("", fmt.Errorf("want direction and amount, got %q", payload))
		}
		dir, err := parseDirection(strings.TrimSpace(parts[0]))
		if err != nil {
			return fail("Direction", err)
		}
		n, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return fail("Amount", err)
		}
		if n < 0 {
			return fail("Amount", errors.New("must not be negative"))
		}
		return ScheduleAdvance{Direction: dir, Amount: n}, nil

	case "SetRate":
		d, err := time.ParseDuration(strings.TrimSpace(payload))
		if err != nil {
			return fail("Rate", err)
		}
		if d <= 0 {
			return fail("Rate", errors.New("must be positive"))
		}
		return SetRate{Rate: d}, nil

	case "CorpusLoaded":
		return fail("", errors.New("carries a corpus body and cannot be decoded"))
	}

	return nil, &DecodeError{Input: input, Err: ErrUnknownVariant}
}

// splitCall splits "Name(payload)" into its parts. A bare "Name" has no
// payload.
func splitCall(s string) (name, payload string, hasPayload bool, err error) {
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return s, "", false, nil
	}
	name = strings.TrimSpace(s[:open])
	if !strings.HasSuffix(s, ")") {
		return name, "", false, errors.New("unterminated payload")
	}
	return name, s[open+1 : len(s)-1], true, nil
}

func parseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "forward", "+":
		return Forward, nil
	case "backward", "-":
		return Backward, nil
	}
	return Forward, fmt.Errorf("unknown direction %q", s)
}
