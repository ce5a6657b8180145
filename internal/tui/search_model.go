package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adilkhann/dayrep/internal/models"
)

// SearchModel is the paged free-text search view.
type SearchModel struct {
	queries ReportSearcher
	user    models.User

	width  int
	height int

	term        string
	currentPage int
	pageSize    int

	page     models.PagedResponse
	selected int
	searched bool

	fetchGen int
	loading  bool
	spinner  *Spinner

	input      textinput.Model
	inputFocus bool
	errText    string
}

// NewSearchModel creates the search view, optionally pre-seeded with a
// term from the command line.
func NewSearchModel(queries ReportSearcher, user models.User, term string, pageSize int) SearchModel {
	input := textinput.New()
	input.Placeholder = "Search title, content, issue, solution..."
	input.Width = 50
	input.CharLimit = 100
	input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	input.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
	input.SetValue(term)

	m := SearchModel{
		queries:  queries,
		user:     user,
		term:     term,
		pageSize: pageSize,
		page:     models.EmptyPage(),
		spinner:  NewSpinner(),
		input:    input,
	}
	if term == "" {
		m.inputFocus = true
		m.input.Focus()
	} else {
		// The seeded search is issued from Init, which runs on a copy of
		// the model, so the generation and loading flag are set here.
		m.fetchGen = 1
		m.loading = true
	}
	return m
}

// Init fires the initial search when a term was supplied.
func (m SearchModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.term != "" {
		cmds = append(cmds, loadSearchPageCmd(m.queries, m.fetchGen, m.user.UserID, m.term, m.currentPage, m.pageSize), spinnerTickCmd())
	}
	return tea.Batch(cmds...)
}

// startSearch bumps the fetch generation and returns the search command.
func (m *SearchModel) startSearch() tea.Cmd {
	m.fetchGen++
	m.loading = true
	return loadSearchPageCmd(m.queries, m.fetchGen, m.user.UserID, m.term, m.currentPage, m.pageSize)
}

// Update handles messages.
func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	case searchPageMsg:
		if msg.Gen != m.fetchGen {
			return m, nil
		}
		m.loading = false
		m.searched = true
		if msg.Error != nil {
			m.errText = msg.Error.Error()
			m.page = models.EmptyPage()
			m.selected = 0
			return m, nil
		}
		m.errText = ""
		m.page = msg.Page
		if m.selected >= len(m.page.Reports) {
			m.selected = 0
		}
		return m, nil

	case tea.KeyMsg:
		if m.inputFocus {
			return m.handleInputKeys(msg)
		}
		return m.handleResultKeys(msg)
	}

	return m, nil
}

// handleInputKeys handles keys while the search input is focused.
func (m SearchModel) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.searched {
			m.inputFocus = false
			m.input.Blur()
			return m, nil
		}
		return m, tea.Quit

	case "enter":
		term := strings.TrimSpace(m.input.Value())
		if term == "" {
			return m, nil
		}
		// A new term starts over at the first page.
		m.term = term
		m.currentPage = 0
		m.selected = 0
		m.inputFocus = false
		m.input.Blur()
		search := (&m).startSearch()
		return m, tea.Batch(search, spinnerTickCmd())

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// handleResultKeys handles keys while the result table has focus.
func (m SearchModel) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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
			search := (&m).startSearch()
			return m, tea.Batch(search, spinnerTickCmd())
		}
		return m, nil

	case "right", "l":
		if m.currentPage < m.page.TotalPages-1 {
			m.currentPage++
			m.selected = 0
			search := (&m).startSearch()
			return m, tea.Batch(search, spinnerTickCmd())
		}
		return m, nil

	case "/":
		m.inputFocus = true
		m.input.Focus()
		return m, textinput.Blink
	}

	return m, nil
}

// View renders the TUI.
func (m SearchModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var b strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))
	header := "Search"
	if m.loading {
		header = "Search " + m.spinner.View()
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n\n")

	b.WriteString("  " + m.input.View())
	b.WriteString("\n\n")

	if m.errText != "" {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
		b.WriteString(errStyle.Render("  " + m.errText))
		b.WriteString("\n")
	} else if m.searched {
		b.WriteString(m.renderResults())
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true)
	b.WriteString("\n")
	if m.inputFocus {
		b.WriteString(helpStyle.Render("  enter search · esc back"))
	} else {
		b.WriteString(helpStyle.Render("  ↑/↓ nav · ←/→ page · / edit term · q quit"))
	}

	outerStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Width(m.width - 2)
	return outerStyle.Render(b.String())
}

// renderResults renders the result rows plus pagination.
func (m SearchModel) renderResults() string {
	var b strings.Builder

	if len(m.page.Reports) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true)
		b.WriteString(emptyStyle.Render(fmt.Sprintf("  No reports matching %q", m.term)))
		b.WriteString("\n")
		return b.String()
	}

	countStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	b.WriteString(countStyle.Render(fmt.Sprintf("  %d results for %q", m.page.TotalItems, m.term)))
	b.WriteString("\n\n")

	titleWidth := m.width - 30
	if titleWidth < 20 {
		titleWidth = 20
	}

	for i, report := range m.page.Reports {
		title := truncate(report.Title, titleWidth)

		row := fmt.Sprintf("#%-5d %-10s %s", report.ID, report.Date, title)
		if i == m.selected {
			selectedStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorAccentBright)).
				Bold(true)
			b.WriteString(selectedStyle.Render("  > " + row))
		} else {
			b.WriteString("    " + row)
		}
		b.WriteString("\n")
	}

	if m.page.TotalPages > 1 {
		pageStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorHelpText)).
			MarginTop(1)
		b.WriteString(pageStyle.Render(fmt.Sprintf("  Page %d/%d", m.currentPage+1, m.page.TotalPages)))
		b.WriteString("\n")
	}

	return b.String()
}
