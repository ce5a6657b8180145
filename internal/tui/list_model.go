package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adilkhann/dayrep/internal/models"
	"github.com/adilkhann/dayrep/internal/parser"
)

// listFocus represents what UI element has focus.
type listFocus int

const (
	focusTable listFocus = iota
	focusDateFilter
	focusConfirmDelete
)

// ReportListModel is the paged report list view. It translates filter and
// pagination intent into query calls and holds the resulting page.
type ReportListModel struct {
	queries ReportLister
	user    models.User

	width  int
	height int

	// Filter state
	selectedDate  string // ISO date, empty means no date filter
	selectedTagID int64  // 0 means no tag filter
	currentPage   int
	pageSize      int

	// Loaded data
	page     models.PagedResponse
	tags     []models.Tag
	selected int // index into page.Reports

	// In-flight fetch tracking. Responses carrying a generation older
	// than fetchGen are discarded.
	fetchGen int
	loading  bool
	spinner  *Spinner

	focus     listFocus
	dateInput textinput.Model
	status    string
}

// NewReportListModel creates the list view for the given user. The initial
// date filter is today, matching the daily-report workflow.
func NewReportListModel(queries ReportLister, user models.User, pageSize int) ReportListModel {
	dateInput := textinput.New()
	dateInput.Placeholder = "today, yesterday, yyyy-mm-dd (empty clears)"
	dateInput.Width = 40
	dateInput.CharLimit = 30
	dateInput.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	dateInput.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))

	// The initial fetch is issued from Init, which runs on a copy of the
	// model. The generation and loading flag are set here so the copy the
	// runtime keeps agrees with the command Init returns.
	return ReportListModel{
		queries:      queries,
		user:         user,
		selectedDate: parser.Today(),
		pageSize:     pageSize,
		page:         models.EmptyPage(),
		spinner:      NewSpinner(),
		dateInput:    dateInput,
		fetchGen:     1,
		loading:      true,
	}
}

// Init starts the first page fetch and the tag load.
func (m ReportListModel) Init() tea.Cmd {
	fetch := loadReportsPageCmd(m.queries, m.fetchGen, m.user.UserID, m.currentPage, m.pageSize, m.selectedDate, m.selectedTagID)
	return tea.Batch(fetch, loadTagsCmd(m.queries), spinnerTickCmd())
}

// startFetch bumps the fetch generation and returns the load command for
// the current filter and page state.
func (m *ReportListModel) startFetch() tea.Cmd {
	m.fetchGen++
	m.loading = true
	return loadReportsPageCmd(m.queries, m.fetchGen, m.user.UserID, m.currentPage, m.pageSize, m.selectedDate, m.selectedTagID)
}

// Update handles messages.
func (m ReportListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTickMsg:
		if m.loading {
			m.spinner.Next()
			return m, spinnerTickCmd()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tagsMsg:
		if msg.Error == nil {
			m.tags = msg.Tags
		}
		return m, nil

	case reportsPageMsg:
		if msg.Gen != m.fetchGen {
			// A newer fetch is in flight; this page is stale.
			return m, nil
		}
		m.loading = false
		m.page = msg.Page
		if m.selected >= len(m.page.Reports) {
			m.selected = len(m.page.Reports) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		return m, nil

	case deleteDoneMsg:
		return m.handleDeleted(msg)

	case tea.KeyMsg:
		switch m.focus {
		case focusDateFilter:
			return m.handleDateFilterKeys(msg)
		case focusConfirmDelete:
			return m.handleConfirmKeys(msg)
		default:
			return m.handleTableKeys(msg)
		}
	}

	return m, nil
}

// handleTableKeys handles key input while the table has focus.
func (m ReportListModel) handleTableKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case "down", "j":
		if m.selected < len(m.page.Reports)-1 {
			m.selected++
		}
		return m, nil

	case "left", "h":
		if m.currentPage > 0 {
			m.currentPage--
			m.selected = 0
			fetch := (&m).startFetch()
			return m, tea.Batch(fetch, spinnerTickCmd())
		}
		return m, nil

	case "right", "l":
		if m.currentPage < m.page.TotalPages-1 {
			m.currentPage++
			m.selected = 0
			fetch := (&m).startFetch()
			return m, tea.Batch(fetch, spinnerTickCmd())
		}
		return m, nil

	case "f":
		m.focus = focusDateFilter
		m.dateInput.SetValue("")
		m.dateInput.Focus()
		return m, textinput.Blink

	case "t":
		m.cycleTagFilter()
		m.currentPage = 0
		m.selected = 0
		fetch := (&m).startFetch()
		return m, tea.Batch(fetch, spinnerTickCmd())

	case "a":
		// Show everything: drop both filters.
		if m.selectedDate != "" || m.selectedTagID != 0 {
			m.selectedDate = ""
			m.selectedTagID = 0
			m.currentPage = 0
			m.selected = 0
			fetch := (&m).startFetch()
			return m, tea.Batch(fetch, spinnerTickCmd())
		}
		return m, nil

	case "d":
		if len(m.page.Reports) > 0 {
			m.focus = focusConfirmDelete
		}
		return m, nil

	case "r":
		fetch := (&m).startFetch()
		return m, tea.Batch(fetch, spinnerTickCmd())
	}

	return m, nil
}

// handleDateFilterKeys handles key input while the date filter is focused.
func (m ReportListModel) handleDateFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = focusTable
		m.dateInput.Blur()
		return m, nil

	case "enter":
		m.focus = focusTable
		m.dateInput.Blur()
		return m.applyDateInput(m.dateInput.Value())

	default:
		var cmd tea.Cmd
		m.dateInput, cmd = m.dateInput.Update(msg)
		return m, cmd
	}
}

// applyDateInput applies a new date filter. Any filter change resets the
// page to 0. A future date is silently clamped to today, so no request is
// ever issued for the out-of-range value.
func (m ReportListModel) applyDateInput(value string) (tea.Model, tea.Cmd) {
	value = strings.TrimSpace(value)
	if value == "" {
		m.selectedDate = ""
		m.currentPage = 0
		m.selected = 0
		m.status = ""
		fetch := (&m).startFetch()
		return m, tea.Batch(fetch, spinnerTickCmd())
	}

	date, err := parser.ParseDate(value)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.After(today) {
		date = today
	}

	m.selectedDate = parser.FormatISO(date)
	m.currentPage = 0
	m.selected = 0
	m.status = ""
	fetch := (&m).startFetch()
	return m, tea.Batch(fetch, spinnerTickCmd())
}

// cycleTagFilter steps the tag filter through no-filter and each known tag.
func (m *ReportListModel) cycleTagFilter() {
	if len(m.tags) == 0 {
		return
	}
	if m.selectedTagID == 0 {
		m.selectedTagID = m.tags[0].ID
		return
	}
	for i, tag := range m.tags {
		if tag.ID == m.selectedTagID {
			if i+1 < len(m.tags) {
				m.selectedTagID = m.tags[i+1].ID
			} else {
				m.selectedTagID = 0
			}
			return
		}
	}
	m.selectedTagID = 0
}

// handleConfirmKeys handles the delete confirmation prompt.
func (m ReportListModel) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.focus = focusTable
		if m.selected < len(m.page.Reports) {
			report := m.page.Reports[m.selected]
			return m, deleteReportCmd(m.queries, report.ID)
		}
		return m, nil

	case "n", "N", "esc":
		m.focus = focusTable
		return m, nil
	}
	return m, nil
}

// handleDeleted refetches after a delete. Deleting the last report on a
// later page steps back one page so the view never points past the end.
func (m ReportListModel) handleDeleted(msg deleteDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Error != nil {
		m.status = "delete failed: " + msg.Error.Error()
		return m, nil
	}

	m.status = fmt.Sprintf("deleted report #%d", msg.ID)
	if len(m.page.Reports) == 1 && m.currentPage > 0 {
		m.currentPage--
	}
	m.selected = 0
	fetch := (&m).startFetch()
	return m, tea.Batch(fetch, spinnerTickCmd())
}

// truncate shortens s to at most max characters, ellipsized. Slicing by
// runes so multibyte titles never get cut mid-sequence.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max > 3 {
		return string(runes[:max-3]) + "..."
	}
	return string(runes[:max])
}

// tagName resolves a tag id against the loaded tag list.
func (m ReportListModel) tagName(tagID int64) string {
	for _, tag := range m.tags {
		if tag.ID == tagID {
			return tag.Name
		}
	}
	return "unknown"
}

// View renders the TUI.
func (m ReportListModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	leftWidth := m.width * 55 / 100
	rightWidth := m.width - leftWidth - 1

	leftPanel := m.renderReportTable(leftWidth)
	rightPanel := m.renderReportDetails(rightWidth)

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftPanel,
		" ",
		rightPanel,
	)

	var footer string
	switch m.focus {
	case focusDateFilter:
		footer = m.renderDateBar()
	case focusConfirmDelete:
		footer = m.renderConfirmBar()
	default:
		footer = m.renderHelpBar()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		"",
		content,
		"",
		footer,
	)
}

// renderReportTable renders the left panel with the report table.
func (m ReportListModel) renderReportTable(width int) string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))

	title := "Reports"
	if m.loading {
		title = "Reports " + m.spinner.View()
	}
	b.WriteString(headerStyle.Render(title))
	b.WriteString("  ")
	b.WriteString(m.renderFilterSummary())
	b.WriteString("\n\n")

	if len(m.page.Reports) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true)
		b.WriteString(emptyStyle.Render("No reports found"))
	} else {
		columnHeaderStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorAccentBright)).
			Padding(0, 1)

		availableWidth := width - 4
		idWidth := 5
		dateWidth := 10
		progWidth := 5
		titleWidth := availableWidth - idWidth - dateWidth - progWidth - 6
		if titleWidth < 16 {
			titleWidth = 16
		}

		headers := fmt.Sprintf("%-*s %-*s %-*s %-*s",
			idWidth, "ID",
			dateWidth, "DATE",
			titleWidth, "TITLE",
			progWidth, "PROG")
		b.WriteString(columnHeaderStyle.Render(headers))
		b.WriteString("\n\n")

		for i, report := range m.page.Reports {
			isSelected := i == m.selected

			id := fmt.Sprintf("#%d", report.ID)
			rowTitle := truncate(report.Title, titleWidth-1)

			progText := fmt.Sprintf("%d%%", report.Progress)
			var coloredProg string
			switch {
			case report.Progress >= 100:
				coloredProg = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Render(progText)
			case report.Progress >= 50:
				coloredProg = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning)).Render(progText)
			default:
				coloredProg = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render(progText)
			}

			rowContent := fmt.Sprintf("%-*s %-*s %-*s %-*s",
				idWidth, id,
				dateWidth, report.Date,
				titleWidth, rowTitle,
				progWidth, coloredProg)

			if isSelected {
				selectedBorder := lipgloss.NewStyle().
					Border(lipgloss.RoundedBorder()).
					BorderForeground(lipgloss.Color(ColorAccentMain)).
					Bold(true).
					Padding(0, 1)
				b.WriteString(selectedBorder.Render(rowContent))
			} else {
				b.WriteString(" " + rowContent)
			}
			b.WriteString("\n")
		}
	}

	// Pagination info, hidden for single-page results
	if m.page.TotalPages > 1 {
		pageInfo := fmt.Sprintf("Page %d/%d (%d reports)", m.currentPage+1, m.page.TotalPages, m.page.TotalItems)
		pageStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorHelpText)).
			Align(lipgloss.Center).
			Width(width - 2).
			MarginTop(1)
		b.WriteString(pageStyle.Render(pageInfo))
	}

	outerBorderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Width(width)

	return outerBorderStyle.Render(b.String())
}

// renderFilterSummary describes the active filters.
func (m ReportListModel) renderFilterSummary() string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))

	parts := []string{}
	if m.selectedDate != "" {
		parts = append(parts, m.selectedDate)
	}
	if m.selectedTagID != 0 {
		parts = append(parts, "#"+m.tagName(m.selectedTagID))
	}
	if len(parts) == 0 {
		return style.Render("all reports")
	}
	return style.Render(strings.Join(parts, " · "))
}

// renderReportDetails renders the right panel with the selected report.
func (m ReportListModel) renderReportDetails(width int) string {
	var b strings.Builder

	if len(m.page.Reports) == 0 || m.selected >= len(m.page.Reports) {
		logoStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAccentMain)).
			Bold(true).
			Align(lipgloss.Center).
			Width(width)
		b.WriteString(logoStyle.Render("dayrep"))

		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true).
			Align(lipgloss.Center).
			Width(width).
			MarginTop(2)
		b.WriteString("\n")
		b.WriteString(emptyStyle.Render("Select a report to view details"))
	} else {
		report := m.page.Reports[m.selected]

		titleStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorPrimaryText)).
			Width(width)
		b.WriteString(titleStyle.Render(report.Title))
		b.WriteString("\n\n")

		label := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
		value := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

		b.WriteString(label.Render("Date: "))
		b.WriteString(value.Render(report.Date))
		b.WriteString("\n")

		b.WriteString(label.Render("Tag: "))
		b.WriteString(value.Render(m.tagName(report.TagID)))
		b.WriteString("\n")

		b.WriteString(label.Render("Progress: "))
		b.WriteString(value.Render(fmt.Sprintf("%d%%", report.Progress)))
		b.WriteString("\n")

		b.WriteString(label.Render("Remaining: "))
		b.WriteString(value.Render(fmt.Sprintf("%.1fh", report.RemainingHours)))
		b.WriteString("\n\n")

		contentStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPrimaryText)).
			Width(width - 2)
		b.WriteString(contentStyle.Render(report.Content))

		if report.Issue != "" {
			b.WriteString("\n\n")
			b.WriteString(label.Render("Issue:"))
			b.WriteString("\n")
			issueStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorWarning)).
				Width(width - 2)
			b.WriteString(issueStyle.Render(report.Issue))
		}

		if report.Solution != "" {
			b.WriteString("\n\n")
			b.WriteString(label.Render("Solution:"))
			b.WriteString("\n")
			solutionStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorSuccess)).
				Width(width - 2)
			b.WriteString(solutionStyle.Render(report.Solution))
		}
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Width(width)

	return borderStyle.Render(b.String())
}

// renderDateBar renders the date filter input.
func (m ReportListModel) renderDateBar() string {
	barStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Padding(0, 1).
		Width(m.width - 2)
	return barStyle.Render("Date filter: " + m.dateInput.View())
}

// renderConfirmBar renders the delete confirmation prompt.
func (m ReportListModel) renderConfirmBar() string {
	confirmStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorError)).
		Bold(true).
		Padding(0, 1).
		Width(m.width - 2)

	title := ""
	if m.selected < len(m.page.Reports) {
		title = m.page.Reports[m.selected].Title
	}
	return confirmStyle.Render(fmt.Sprintf("Delete report %q? (y/n)", title))
}

// renderHelpBar renders the help bar with hotkey hints.
func (m ReportListModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)

	helpText := "↑/↓ nav · ←/→ page · f date · t tag · a all · d delete · r reload · q quit"
	if m.status != "" {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning))
		return lipgloss.JoinVertical(lipgloss.Left,
			statusStyle.Render(" "+m.status),
			helpStyle.Render(helpText))
	}
	return helpStyle.Render(helpText)
}
