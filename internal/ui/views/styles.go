package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title          lipgloss.Style
	Dim            lipgloss.Style
	Status         lipgloss.Style
	Word           lipgloss.Style
	Reader         lipgloss.Style
	ReaderBusy     lipgloss.Style
	InputBox       lipgloss.Style
	InputBoxActive lipgloss.Style
	LogEntry       lipgloss.Style
	Keys           lipgloss.Style
	Help           lipgloss.Style
	HelpBox        lipgloss.Style
	HelpKey        lipgloss.Style
	HelpDesc       lipgloss.Style
	Section        lipgloss.Style
	StatusPlaying  lipgloss.Style
	StatusPaused   lipgloss.Style
	ModeNormal     lipgloss.Style
	ModeInsert     lipgloss.Style
	ModeProcessing lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Word: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")),
		Reader: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Align(lipgloss.Center, lipgloss.Center),
		ReaderBusy: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")). // yellow
			Align(lipgloss.Center, lipgloss.Center),
		InputBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		InputBoxActive: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1),
		LogEntry: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Keys:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Help:     lipgloss.NewStyle().Faint(true),
		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(1, 2),
		HelpKey:        lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		HelpDesc:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Section:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		StatusPlaying:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		StatusPaused:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		ModeNormal:     lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		ModeInsert:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		ModeProcessing: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
}
