package views

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"sreader/internal/mode"
	"sreader/internal/ui/input"
)

// maxInputLines bounds how many completed inputs are listed.
const maxInputLines = 5

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width     int
	Height    int
	Corpus    string
	Word      string
	Index     int
	Total     int
	Mode      mode.Mode
	Playing   bool
	Rate      time.Duration
	Status    string
	TextInput string // rendered text input
	Inputs    []string
	LastKeys  []string
	Ticks     uint64
	Renders   uint64
	ShowHelp  bool
	HelpModel help.Model
	KeyMap    input.KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	width := max(state.Width, 20)

	sections := []string{
		r.renderTitle(state, width),
		r.renderReader(state, width),
		r.renderInput(state, width),
	}
	if inputs := r.renderInputs(state); inputs != "" {
		sections = append(sections, inputs)
	}
	sections = append(sections,
		r.renderStatus(state, width),
		r.styles.Help.Render(state.HelpModel.ShortHelpView(state.KeyMap.ShortHelp())),
	)
	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if state.ShowHelp {
		return r.popupRender.RenderHelp(state.KeyMap, width, max(state.Height, lipgloss.Height(content)))
	}
	return content
}

func (r *Renderer) renderTitle(state ViewState, width int) string {
	logo := r.styles.Title.Render("sreader")
	corpus := "no corpus"
	if state.Corpus != "" {
		corpus = filepath.Base(state.Corpus)
	}
	right := r.styles.Dim.Render(corpus)
	gap := max(width-lipgloss.Width(logo)-lipgloss.Width(right), 1)
	return logo + strings.Repeat(" ", gap) + right
}

func (r *Renderer) renderReader(state ViewState, width int) string {
	style := r.styles.Reader
	if state.Mode == mode.Processing {
		style = r.styles.ReaderBusy
	}

	word := state.Word
	if state.Total == 0 {
		word = r.styles.Dim.Render("press l to load text")
	} else {
		word = r.styles.Word.Render(word)
	}

	progress := ""
	if state.Total > 0 {
		progress = r.styles.Dim.Render(fmt.Sprintf("%d / %d", state.Index+1, state.Total))
	}

	body := lipgloss.JoinVertical(lipgloss.Center, word, "", progress)
	height := max(state.Height-14, 5)
	return style.Width(width - 2).Height(height).Render(body)
}

func (r *Renderer) renderInput(state ViewState, width int) string {
	style := r.styles.InputBox
	if state.Mode == mode.Insert {
		style = r.styles.InputBoxActive
	}
	return style.Width(width - 2).Render("> " + state.TextInput)
}

func (r *Renderer) renderInputs(state ViewState) string {
	if len(state.Inputs) == 0 {
		return ""
	}
	inputs := state.Inputs
	if len(inputs) > maxInputLines {
		inputs = inputs[len(inputs)-maxInputLines:]
	}
	lines := make([]string, len(inputs))
	for i, s := range inputs {
		lines[i] = r.styles.LogEntry.Render("  " + s)
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderStatus(state ViewState, width int) string {
	var modeStyle lipgloss.Style
	switch state.Mode {
	case mode.Insert:
		modeStyle = r.styles.ModeInsert
	case mode.Processing:
		modeStyle = r.styles.ModeProcessing
	default:
		modeStyle = r.styles.ModeNormal
	}

	playback := r.styles.StatusPaused.Render("paused")
	if state.Playing {
		playback = r.styles.StatusPlaying.Render(fmt.Sprintf("playing %s", state.Rate))
	}

	left := strings.Join([]string{
		modeStyle.Render(strings.ToUpper(state.Mode.String())),
		playback,
		r.styles.Status.Render(state.Status),
	}, "  ")

	right := r.styles.Keys.Render(fmt.Sprintf("%v  ticks %d  frames %d", state.LastKeys, state.Ticks, state.Renders))
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}
