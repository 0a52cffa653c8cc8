package input

import (
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"sreader/internal/action"
)

// KeyMap groups the configured bindings for help rendering. It implements
// help.KeyMap.
type KeyMap struct {
	Reading []key.Binding
	Input   []key.Binding
	Other   []key.Binding
}

// NewKeyMap builds help entries from the normal-mode bindings. Keys bound to
// the same action share one entry.
func NewKeyMap(bindings map[string]action.Action) KeyMap {
	byAction := make(map[string][]string)
	actions := make(map[string]action.Action)
	for _, k := range slices.Sorted(maps.Keys(bindings)) {
		a := bindings[k]
		byAction[a.String()] = append(byAction[a.String()], k)
		actions[a.String()] = a
	}

	var km KeyMap
	for _, name := range slices.Sorted(maps.Keys(byAction)) {
		a := actions[name]
		keys := byAction[name]
		b := key.NewBinding(key.WithKeys(keys...), key.WithHelp(strings.Join(keys, "/"), Describe(a)))
		switch a.(type) {
		case action.ScheduleAdvance, action.TogglePlayback, action.LoadText, action.SetRate, action.Advance:
			km.Reading = append(km.Reading, b)
		case action.EnterInsert, action.EnterNormal, action.CompleteInput:
			km.Input = append(km.Input, b)
		default:
			km.Other = append(km.Other, b)
		}
	}
	km.Reading = append(km.Reading,
		key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "Faster/slower")),
	)
	km.Input = append(km.Input,
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "Exit input")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "Submit input")),
	)
	return km
}

func (k KeyMap) ShortHelp() []key.Binding {
	short := append([]key.Binding(nil), k.Reading...)
	for _, b := range k.Other {
		if b.Help().Desc == "Toggle help" || b.Help().Desc == "Quit" {
			short = append(short, b)
		}
	}
	return short
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.Reading, k.Input, k.Other}
}

// Describe returns a short human description of what a bound action does.
func Describe(a action.Action) string {
	switch a := a.(type) {
	case action.ScheduleAdvance:
		if a.Direction == action.Backward {
			return "Previous word"
		}
		return "Next word"
	case action.Advance:
		if a.Amount < 0 {
			return "Previous word"
		}
		return "Next word"
	case action.TogglePlayback:
		return "Play/pause"
	case action.LoadText:
		return "Load text"
	case action.SetRate:
		return "Set rate " + a.Rate.String()
	case action.EnterInsert:
		return "Enter input"
	case action.EnterNormal:
		return "Exit input"
	case action.ToggleShowHelp:
		return "Toggle help"
	case action.Help:
		return "Help in pager"
	case action.ShowLog:
		return "Session log"
	case action.Suspend:
		return "Suspend"
	case action.Refresh:
		return "Redraw"
	case action.Quit:
		return "Quit"
	}
	return a.String()
}

