package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adilkhann/dayrep/internal/models"
	"github.com/adilkhann/dayrep/internal/parser"
)

// stubQueries records the last fetch parameters and serves canned data.
type stubQueries struct {
	page    models.PagedResponse
	tags    []models.Tag
	deleted []int64

	fetches  int
	lastPage int
	lastDate string
	lastTag  int64
}

func (s *stubQueries) ReportsPaged(ctx context.Context, userID int64, page, size int, date string, tagID int64, sortBy, sortDir string) (models.PagedResponse, error) {
	s.fetches++
	s.lastPage = page
	s.lastDate = date
	s.lastTag = tagID
	return s.page, nil
}

func (s *stubQueries) DeleteReport(ctx context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubQueries) Tags(ctx context.Context) ([]models.Tag, error) {
	return s.tags, nil
}

func testUser() models.User {
	return models.User{UserID: 7, Email: "dev@example.com"}
}

// drainCmds invokes a command tree and collects the produced messages,
// skipping timer ticks.
func drainCmds(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	var msgs []tea.Msg
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			if sub == nil {
				continue
			}
			msgs = append(msgs, sub())
		}
	default:
		msgs = append(msgs, msg)
	}
	return msgs
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestStalePageIsDiscarded(t *testing.T) {
	stub := &stubQueries{}
	m := NewReportListModel(stub, testUser(), 5)
	(&m).startFetch()
	(&m).startFetch() // Second fetch supersedes the first

	stale := models.PagedResponse{
		Reports:    []models.Report{{ID: 1, Title: "old"}},
		TotalItems: 1, TotalPages: 1,
	}
	updated, _ := m.Update(reportsPageMsg{Gen: m.fetchGen - 1, Page: stale})
	m = updated.(ReportListModel)

	if !m.loading {
		t.Error("stale page cleared the loading flag")
	}
	if len(m.page.Reports) != 0 {
		t.Errorf("stale page was applied: %+v", m.page.Reports)
	}

	fresh := models.PagedResponse{
		Reports:    []models.Report{{ID: 2, Title: "new"}},
		TotalItems: 1, TotalPages: 1,
	}
	updated, _ = m.Update(reportsPageMsg{Gen: m.fetchGen, Page: fresh})
	m = updated.(ReportListModel)

	if m.loading {
		t.Error("current page did not clear the loading flag")
	}
	if len(m.page.Reports) != 1 || m.page.Reports[0].ID != 2 {
		t.Errorf("page = %+v, want the current fetch's page", m.page.Reports)
	}
}

func TestInitFetchIsApplied(t *testing.T) {
	stub := &stubQueries{
		page: models.PagedResponse{
			Reports:    []models.Report{{ID: 1, Title: "first", Date: "2024-01-15"}},
			TotalItems: 1, TotalPages: 1,
		},
		tags: []models.Tag{{ID: 1, Name: "backend"}},
	}
	m := NewReportListModel(stub, testUser(), 5)

	if !m.loading {
		t.Error("model not loading before the initial fetch resolves")
	}

	// Run Init's commands and feed the results back, the way the runtime
	// does. Init runs on a copy, so the page must still land on this model.
	for _, msg := range drainCmds(t, m.Init()) {
		updated, _ := m.Update(msg)
		m = updated.(ReportListModel)
	}

	if stub.fetches != 1 {
		t.Fatalf("fetches = %d, want 1", stub.fetches)
	}
	if len(m.page.Reports) != 1 || m.page.Reports[0].ID != 1 {
		t.Errorf("page = %+v, want the initial fetch's page", m.page.Reports)
	}
	if m.loading {
		t.Error("loading still set after the initial page arrived")
	}
	if len(m.tags) != 1 {
		t.Errorf("tags = %v, want the loaded tag list", m.tags)
	}
}

func TestDateFilterResetsPage(t *testing.T) {
	stub := &stubQueries{}
	m := NewReportListModel(stub, testUser(), 5)
	m.currentPage = 3

	updated, cmd := m.applyDateInput("yesterday")
	m = updated.(ReportListModel)

	if m.currentPage != 0 {
		t.Errorf("currentPage = %d, want 0 after filter change", m.currentPage)
	}
	if cmd == nil {
		t.Fatal("no fetch issued after filter change")
	}
	drainCmds(t, cmd)
	if stub.lastPage != 0 {
		t.Errorf("fetched page %d, want 0", stub.lastPage)
	}
}

func TestFutureDateClampedToToday(t *testing.T) {
	stub := &stubQueries{}
	m := NewReportListModel(stub, testUser(), 5)

	updated, cmd := m.applyDateInput("2099-12-31")
	m = updated.(ReportListModel)

	today := parser.Today()
	if m.selectedDate != today {
		t.Errorf("selectedDate = %q, want clamped to %q", m.selectedDate, today)
	}

	drainCmds(t, cmd)
	if stub.lastDate != today {
		t.Errorf("fetched date %q, want %q", stub.lastDate, today)
	}
}

func TestInvalidDateLeavesFilterUntouched(t *testing.T) {
	stub := &stubQueries{}
	m := NewReportListModel(stub, testUser(), 5)
	m.currentPage = 2
	before := m.selectedDate

	updated, cmd := m.applyDateInput("not a date")
	m = updated.(ReportListModel)

	if m.status == "" {
		t.Error("no status message for invalid date")
	}
	if m.selectedDate != before {
		t.Errorf("selectedDate = %q, want unchanged %q", m.selectedDate, before)
	}
	if m.currentPage != 2 {
		t.Errorf("currentPage = %d, want unchanged 2", m.currentPage)
	}
	if cmd != nil {
		t.Error("fetch issued for an invalid date")
	}
}

func TestEmptyDateInputClearsFilter(t *testing.T) {
	stub := &stubQueries{}
	m := NewReportListModel(stub, testUser(), 5)
	m.currentPage = 1

	updated, cmd := m.applyDateInput("  ")
	m = updated.(ReportListModel)

	if m.selectedDate != "" {
		t.Errorf("selectedDate = %q, want cleared", m.selectedDate)
	}
	if m.currentPage != 0 {
		t.Errorf("currentPage = %d, want 0", m.currentPage)
	}
	drainCmds(t, cmd)
	if stub.lastDate != "" {
		t.Errorf("fetched date %q, want no filter", stub.lastDate)
	}
}

func TestDeleteSoleReportOnLaterPageStepsBack(t *testing.T) {
	stub := &stubQueries{}
	m := NewReportListModel(stub, testUser(), 5)
	m.currentPage = 2
	m.page = models.PagedResponse{
		Reports:     []models.Report{{ID: 9, Title: "last one here"}},
		CurrentPage: 2, TotalItems: 11, TotalPages: 3,
	}

	updated, cmd := m.handleDeleted(deleteDoneMsg{ID: 9})
	m = updated.(ReportListModel)

	if m.currentPage != 1 {
		t.Errorf("currentPage = %d, want 1 after deleting the page's only report", m.currentPage)
	}
	drainCmds(t, cmd)
	if stub.lastPage != 1 {
		t.Errorf("refetched page %d, want 1", stub.lastPage)
	}
}

func TestDeleteKeepsPageWhenOthersRemain(t *testing.T) {
	stub := &stubQueries{}
	m := NewReportListModel(stub, testUser(), 5)
	m.currentPage = 2
	m.page = models.PagedResponse{
		Reports: []models.Report{
			{ID: 9, Title: "one"},
			{ID: 10, Title: "two"},
		},
		CurrentPage: 2, TotalItems: 12, TotalPages: 3,
	}

	updated, _ := m.handleDeleted(deleteDoneMsg{ID: 9})
	m = updated.(ReportListModel)

	if m.currentPage != 2 {
		t.Errorf("currentPage = %d, want unchanged 2", m.currentPage)
	}
}

func TestDeleteOnFirstPageNeverGoesNegative(t *testing.T) {
	stub := &stubQueries{}
	m := NewReportListModel(stub, testUser(), 5)
	m.page = models.PagedResponse{
		Reports:     []models.Report{{ID: 9, Title: "only"}},
		TotalItems:  1,
		TotalPages:  1,
	}

	updated, _ := m.handleDeleted(deleteDoneMsg{ID: 9})
	m = updated.(ReportListModel)

	if m.currentPage != 0 {
		t.Errorf("currentPage = %d, want 0", m.currentPage)
	}
}

func TestDeleteErrorKeepsView(t *testing.T) {
	stub := &stubQueries{}
	m := NewReportListModel(stub, testUser(), 5)
	m.currentPage = 2
	m.page = models.PagedResponse{
		Reports:     []models.Report{{ID: 9, Title: "kept"}},
		CurrentPage: 2, TotalItems: 11, TotalPages: 3,
	}

	updated, cmd := m.handleDeleted(deleteDoneMsg{ID: 9, Error: fmt.Errorf("boom")})
	m = updated.(ReportListModel)

	if m.currentPage != 2 {
		t.Errorf("currentPage = %d, want unchanged 2", m.currentPage)
	}
	if m.status == "" {
		t.Error("no status message for failed delete")
	}
	if cmd != nil {
		t.Error("refetch issued after failed delete")
	}
}

func TestTagFilterCycleResetsPage(t *testing.T) {
	stub := &stubQueries{}
	m := NewReportListModel(stub, testUser(), 5)
	m.tags = []models.Tag{{ID: 1, Name: "backend"}, {ID: 2, Name: "frontend"}}
	m.currentPage = 2

	updated, cmd := m.Update(keyMsg("t"))
	m = updated.(ReportListModel)

	if m.selectedTagID != 1 {
		t.Errorf("selectedTagID = %d, want first tag", m.selectedTagID)
	}
	if m.currentPage != 0 {
		t.Errorf("currentPage = %d, want 0", m.currentPage)
	}
	drainCmds(t, cmd)
	if stub.lastTag != 1 {
		t.Errorf("fetched tagId %d, want 1", stub.lastTag)
	}
}

func TestCycleTagFilterWrapsToNoFilter(t *testing.T) {
	m := NewReportListModel(&stubQueries{}, testUser(), 5)
	m.tags = []models.Tag{{ID: 1, Name: "backend"}, {ID: 2, Name: "frontend"}}

	want := []int64{1, 2, 0, 1}
	for i, wantID := range want {
		(&m).cycleTagFilter()
		if m.selectedTagID != wantID {
			t.Fatalf("step %d: selectedTagID = %d, want %d", i, m.selectedTagID, wantID)
		}
	}
}

func TestTruncateIsRuneSafe(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"fits", "short", 10, "short"},
		{"ascii cut", "a long report title", 10, "a long ..."},
		{"multibyte cut", "日本語のレポートのタイトル", 8, "日本語のレ..."},
		{"tiny max", "report", 3, "rep"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.max)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncate(%q, %d) produced invalid UTF-8", tt.input, tt.max)
			}
		})
	}
}

func TestPaginationHiddenForSinglePage(t *testing.T) {
	m := NewReportListModel(&stubQueries{}, testUser(), 5)
	m.width = 120
	m.height = 40
	m.page = models.PagedResponse{
		Reports:    []models.Report{{ID: 1, Title: "only page", Date: "2024-01-15"}},
		TotalItems: 1, TotalPages: 1,
	}

	if view := m.View(); strings.Contains(view, "Page 1/1") {
		t.Error("pagination shown for a single-page result")
	}

	m.page.TotalItems = 12
	m.page.TotalPages = 3
	if view := m.View(); !strings.Contains(view, "Page 1/3") {
		t.Error("pagination missing for a multi-page result")
	}
}
