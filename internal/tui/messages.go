package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adilkhann/dayrep/internal/models"
	"github.com/adilkhann/dayrep/internal/session"
)

// ReportLister is the slice of the API client the list view uses.
type ReportLister interface {
	ReportsPaged(ctx context.Context, userID int64, page, size int, date string, tagID int64, sortBy, sortDir string) (models.PagedResponse, error)
	DeleteReport(ctx context.Context, id int64) error
	Tags(ctx context.Context) ([]models.Tag, error)
}

// ReportSearcher is the slice of the API client the search view uses.
type ReportSearcher interface {
	SearchReportsPaged(ctx context.Context, userID int64, term string, page, size int) (models.PagedResponse, error)
}

// ReportCreator is the slice of the API client the add wizard uses.
type ReportCreator interface {
	CreateReport(ctx context.Context, report models.Report) (*models.Report, error)
	Tags(ctx context.Context) ([]models.Tag, error)
}

// Message types for async operations
type (
	// reportsPageMsg carries one loaded page of the report list. Gen is
	// the fetch generation the request was issued under; stale pages are
	// discarded.
	reportsPageMsg struct {
		Gen  int
		Page models.PagedResponse
	}

	// searchPageMsg carries one loaded page of search results.
	searchPageMsg struct {
		Gen   int
		Page  models.PagedResponse
		Error error
	}

	// tagsMsg carries the loaded tag list.
	tagsMsg struct {
		Tags  []models.Tag
		Error error
	}

	// deleteDoneMsg reports the outcome of a delete.
	deleteDoneMsg struct {
		ID    int64
		Error error
	}

	// createDoneMsg reports the outcome of a create.
	createDoneMsg struct {
		Report *models.Report
		Error  error
	}

	// authDoneMsg reports the outcome of a login or register call.
	authDoneMsg struct {
		Response *models.AuthResponse
		Error    error
	}
)

// loadReportsPageCmd fetches one page of the filtered list asynchronously.
// The fetch itself never fails: the client degrades to an empty page.
func loadReportsPageCmd(queries ReportLister, gen int, userID int64, page, size int, date string, tagID int64) tea.Cmd {
	return func() tea.Msg {
		res, _ := queries.ReportsPaged(context.Background(), userID, page, size, date, tagID, "", "")
		return reportsPageMsg{Gen: gen, Page: res}
	}
}

// loadSearchPageCmd runs one paged search asynchronously.
func loadSearchPageCmd(queries ReportSearcher, gen int, userID int64, term string, page, size int) tea.Cmd {
	return func() tea.Msg {
		res, err := queries.SearchReportsPaged(context.Background(), userID, term, page, size)
		return searchPageMsg{Gen: gen, Page: res, Error: err}
	}
}

// loadTagsCmd fetches the tag list asynchronously.
func loadTagsCmd(queries interface {
	Tags(ctx context.Context) ([]models.Tag, error)
}) tea.Cmd {
	return func() tea.Msg {
		tags, err := queries.Tags(context.Background())
		return tagsMsg{Tags: tags, Error: err}
	}
}

// deleteReportCmd deletes one report asynchronously.
func deleteReportCmd(queries ReportLister, id int64) tea.Cmd {
	return func() tea.Msg {
		err := queries.DeleteReport(context.Background(), id)
		return deleteDoneMsg{ID: id, Error: err}
	}
}

// createReportCmd submits a new report asynchronously.
func createReportCmd(creator ReportCreator, report models.Report) tea.Cmd {
	return func() tea.Msg {
		created, err := creator.CreateReport(context.Background(), report)
		return createDoneMsg{Report: created, Error: err}
	}
}

// authCmd runs the credential exchange through the session store.
func authCmd(store *session.Store, auth session.Authenticator, register bool, email, password string) tea.Cmd {
	return func() tea.Msg {
		var res *models.AuthResponse
		var err error
		if register {
			res, err = store.Register(context.Background(), auth, email, password)
		} else {
			res, err = store.Login(context.Background(), auth, email, password)
		}
		return authDoneMsg{Response: res, Error: err}
	}
}
