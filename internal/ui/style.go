package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	easyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	mediumStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	hardStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	solvedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	urgentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
)

// ColorEnabled reports whether stdout should receive ANSI styling.
func ColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return IsTerminal(os.Stdout)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Styler applies styles only when color is enabled.
type Styler struct {
	Enabled bool
}

// NewStyler returns a styler for stdout.
func NewStyler() Styler {
	return Styler{Enabled: ColorEnabled()}
}

func (s Styler) render(style lipgloss.Style, value string) string {
	if !s.Enabled {
		return value
	}
	return style.Render(value)
}

// Difficulty colors a difficulty label.
func (s Styler) Difficulty(value string) string {
	switch value {
	case "Easy":
		return s.render(easyStyle, value)
	case "Medium":
		return s.render(mediumStyle, value)
	case "Hard":
		return s.render(hardStyle, value)
	}
	return value
}

// Solved styles an accepted marker.
func (s Styler) Solved(value string) string {
	return s.render(solvedStyle, value)
}

// Pending styles an unsolved marker.
func (s Styler) Pending(value string) string {
	return s.render(pendingStyle, value)
}

// Countdown styles the countdown, in red when urgent.
func (s Styler) Countdown(value string, urgent bool) string {
	if urgent {
		return s.render(urgentStyle, value)
	}
	return value
}

// Header styles a section heading.
func (s Styler) Header(value string) string {
	return s.render(headerStyle, value)
}
