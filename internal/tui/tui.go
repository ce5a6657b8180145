package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adilkhann/dayrep/internal/models"
	"github.com/adilkhann/dayrep/internal/session"
)

// RunReportList starts the interactive paged report list.
func RunReportList(queries ReportLister, user models.User, pageSize int) error {
	model := NewReportListModel(queries, user, pageSize)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RunSearch starts the interactive search view, pre-seeded with term when
// one was given on the command line.
func RunSearch(queries ReportSearcher, user models.User, term string, pageSize int) error {
	model := NewSearchModel(queries, user, term, pageSize)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RunAddReport starts the report creation wizard and reports the outcome
// after the TUI closes.
func RunAddReport(creator ReportCreator, user models.User, prefill models.Report) error {
	model := NewAddReportModel(creator, user, prefill)
	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(AddReportModel); ok {
		if m.cancelled {
			fmt.Println("Report creation cancelled.")
		} else if m.completed && m.created != nil {
			fmt.Printf("Created report #%d: %s\n", m.created.ID, m.created.Title)
		} else if m.err != nil {
			fmt.Printf("Error: %v\n", m.err)
		}
	}

	return nil
}

// RunLogin starts the login (or register) form and returns the server
// payload on success, or nil when the user cancelled.
func RunLogin(store *session.Store, auth session.Authenticator, register bool) (*models.AuthResponse, error) {
	model := NewLoginModel(store, auth, register)
	p := tea.NewProgram(model)
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	if m, ok := finalModel.(LoginModel); ok && m.completed {
		return m.response, nil
	}
	return nil, nil
}
