package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Spinner is a small loading indicator for in-flight fetches.
type Spinner struct {
	frames []string
	frame  int
}

// NewSpinner creates a new spinner.
func NewSpinner() *Spinner {
	return &Spinner{
		frames: []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"},
	}
}

// Next advances the spinner to the next frame.
func (s *Spinner) Next() {
	s.frame = (s.frame + 1) % len(s.frames)
}

// View returns the current spinner frame.
func (s *Spinner) View() string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	return style.Render(s.frames[s.frame])
}

// spinnerTickMsg drives the spinner animation.
type spinnerTickMsg time.Time

// spinnerTickCmd schedules the next spinner frame.
func spinnerTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
