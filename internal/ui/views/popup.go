package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"sreader/internal/ui/input"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderHelp renders the key binding table centred in a width x height area
func (pr *PopupRenderer) RenderHelp(km input.KeyMap, width, height int) string {
	table := HelpTable(pr.styles, km)
	popup := pr.styles.HelpBox.Render(table)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, popup)
}

// HelpTable renders the bindings as a titled two-column table
func HelpTable(styles *Styles, km input.KeyMap) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Key Bindings"))
	b.WriteString("\n")

	sections := []struct {
		name     string
		bindings []key.Binding
	}{
		{"Reading", km.Reading},
		{"Input", km.Input},
		{"Other", km.Other},
	}

	keyWidth := 0
	for _, s := range sections {
		for _, bnd := range s.bindings {
			keyWidth = max(keyWidth, lipgloss.Width(bnd.Help().Key))
		}
	}

	for _, s := range sections {
		if len(s.bindings) == 0 {
			continue
		}
		b.WriteString("\n")
		b.WriteString(styles.Section.Render(s.name))
		b.WriteString("\n")
		for _, bnd := range s.bindings {
			h := bnd.Help()
			pad := strings.Repeat(" ", keyWidth-lipgloss.Width(h.Key))
			b.WriteString(fmt.Sprintf("  %s%s  %s\n", styles.HelpKey.Render(h.Key), pad, styles.HelpDesc.Render(h.Desc)))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
