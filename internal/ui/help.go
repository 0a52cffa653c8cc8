package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"

	"sreader/internal/ui/input"
	"sreader/internal/ui/views"
)

// renderHelpContent renders the full help text shown in the pager
func renderHelpContent(km input.KeyMap) string {
	styles := views.NewStyles()

	var help strings.Builder
	help.WriteString(views.HelpTable(styles, km))
	help.WriteString("\n\n")
	help.WriteString(styles.Section.Render("Modes"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s  %s\n", styles.HelpKey.Render("NORMAL    "), styles.HelpDesc.Render("keys are commands")))
	help.WriteString(fmt.Sprintf("  %s  %s\n", styles.HelpKey.Render("INSERT    "), styles.HelpDesc.Render("keys are typed into the input box")))
	help.WriteString(fmt.Sprintf("  %s  %s", styles.HelpKey.Render("PROCESSING"), styles.HelpDesc.Render("background work running, keys are ignored")))
	return help.String()
}

// renderSessionLog renders the recorded log lines and completed inputs
func renderSessionLog(logs io.Reader, inputs []string) (string, error) {
	var b strings.Builder
	b.WriteString("Inputs\n")
	if len(inputs) == 0 {
		b.WriteString("  (none)\n")
	}
	for i, s := range inputs {
		b.WriteString(fmt.Sprintf("  %3d  %s\n", i+1, s))
	}
	b.WriteString("\nLog\n")
	if logs != nil {
		if _, err := io.Copy(&b, logs); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// PagerOps runs the ov pager on behalf of the program
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{
		program: program,
	}
}

// ShowInPager shows content using ov pager
func (h *PagerOps) ShowInPager(content string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal() // Ignore error as we're in defer context
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	// Run the oviewer (this will take over the terminal)
	return root.Run()
}
