package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adilkhann/dayrep/internal/models"
	"github.com/adilkhann/dayrep/internal/parser"
)

// step represents the current step in the report wizard.
type step int

const (
	stepTitle step = iota
	stepContent
	stepDate
	stepTag
	stepProgress
	stepRemaining
	stepIssue
	stepSolution
	stepSave
	stepComplete
)

var stepLabels = []string{
	"Title", "Content", "Date", "Tag", "Progress", "Remaining hours",
	"Issue", "Solution", "Save",
}

// AddReportModel is the interactive report creation wizard.
type AddReportModel struct {
	creator ReportCreator
	user    models.User

	currentStep step
	inputs      []textinput.Model
	width       int
	height      int

	tags   []models.Tag
	report models.Report

	err           error
	completed     bool
	cancelled     bool
	validationErr string
	created       *models.Report
	submitting    bool
}

// NewAddReportModel creates the wizard, optionally pre-filled from flags or
// quick-entry parsing.
func NewAddReportModel(creator ReportCreator, user models.User, prefill models.Report) AddReportModel {
	inputs := make([]textinput.Model, 8)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 60
		inputs[i].TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	}

	inputs[stepTitle].Placeholder = "What did you work on? (required)"
	inputs[stepTitle].Focus()
	inputs[stepTitle].CharLimit = 200

	inputs[stepContent].Placeholder = "Describe the work... (required)"
	inputs[stepContent].CharLimit = 2000

	inputs[stepDate].Placeholder = "today, yesterday, yyyy-mm-dd (Enter for today)"
	inputs[stepDate].CharLimit = 30

	inputs[stepTag].Placeholder = "Tag name or number from the list above"
	inputs[stepTag].CharLimit = 50

	inputs[stepProgress].Placeholder = "Progress 0-100 (Enter for 0)"
	inputs[stepProgress].CharLimit = 3

	inputs[stepRemaining].Placeholder = "Remaining hours, e.g. 2.5 (Enter for 0)"
	inputs[stepRemaining].CharLimit = 6

	inputs[stepIssue].Placeholder = "Any blocker or issue (Enter to skip)"
	inputs[stepIssue].CharLimit = 1000

	inputs[stepSolution].Placeholder = "How it was or will be solved (Enter to skip)"
	inputs[stepSolution].CharLimit = 1000

	report := prefill
	report.UserID = user.UserID

	m := AddReportModel{
		creator:     creator,
		user:        user,
		currentStep: stepTitle,
		inputs:      inputs,
		report:      report,
	}

	if report.Title != "" {
		m.inputs[stepTitle].SetValue(report.Title)
	}
	if report.Content != "" {
		m.inputs[stepContent].SetValue(report.Content)
	}
	if report.Date != "" {
		m.inputs[stepDate].SetValue(report.Date)
	}
	if report.Progress > 0 {
		m.inputs[stepProgress].SetValue(strconv.Itoa(report.Progress))
	}
	if report.RemainingHours > 0 {
		m.inputs[stepRemaining].SetValue(strconv.FormatFloat(report.RemainingHours, 'f', -1, 64))
	}
	if report.Issue != "" {
		m.inputs[stepIssue].SetValue(report.Issue)
	}
	if report.Solution != "" {
		m.inputs[stepSolution].SetValue(report.Solution)
	}

	return m
}

// Init loads the tag list for the tag step.
func (m AddReportModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, loadTagsCmd(m.creator))
}

// Update handles messages.
func (m AddReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tagsMsg:
		if msg.Error == nil {
			m.tags = msg.Tags
			// Resolve a prefilled tag against the list when possible.
			if m.report.TagID != 0 && m.inputs[stepTag].Value() == "" {
				for _, tag := range m.tags {
					if tag.ID == m.report.TagID {
						m.inputs[stepTag].SetValue(tag.Name)
					}
				}
			}
		}
		return m, nil

	case createDoneMsg:
		m.submitting = false
		if msg.Error != nil {
			m.err = msg.Error
			m.currentStep = stepSave
			return m, nil
		}
		m.created = msg.Report
		m.completed = true
		m.currentStep = stepComplete
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancelled = true
			return m, tea.Quit

		case "esc":
			if m.currentStep == stepTitle {
				m.cancelled = true
				return m, tea.Quit
			}
			return m.prevStep()

		case "enter":
			return m.handleEnter()

		case "shift+tab":
			return m.prevStep()

		default:
			if m.currentStep < stepSave {
				var cmd tea.Cmd
				m.inputs[m.currentStep], cmd = m.inputs[m.currentStep].Update(msg)
				return m, cmd
			}
			return m, nil
		}
	}

	return m, nil
}

// handleEnter validates the current step and advances.
func (m AddReportModel) handleEnter() (AddReportModel, tea.Cmd) {
	m.validationErr = ""

	switch m.currentStep {
	case stepTitle:
		title := strings.TrimSpace(m.inputs[stepTitle].Value())
		if title == "" {
			m.validationErr = "Title is required"
			return m, nil
		}
		m.report.Title = title
		return m.nextStep()

	case stepContent:
		content := strings.TrimSpace(m.inputs[stepContent].Value())
		if content == "" {
			m.validationErr = "Content is required"
			return m, nil
		}
		m.report.Content = content
		return m.nextStep()

	case stepDate:
		value := strings.TrimSpace(m.inputs[stepDate].Value())
		if value == "" {
			m.report.Date = parser.Today()
			return m.nextStep()
		}
		date, err := parser.ParseDate(value)
		if err != nil {
			m.validationErr = err.Error()
			return m, nil
		}
		iso := parser.FormatISO(date)
		if iso > parser.Today() {
			m.validationErr = "Report date cannot be in the future"
			return m, nil
		}
		m.report.Date = iso
		return m.nextStep()

	case stepTag:
		value := strings.TrimSpace(m.inputs[stepTag].Value())
		if value == "" {
			m.validationErr = "Pick a tag for the report"
			return m, nil
		}
		tagID, ok := m.resolveTag(value)
		if !ok {
			m.validationErr = fmt.Sprintf("Unknown tag %q", value)
			return m, nil
		}
		m.report.TagID = tagID
		return m.nextStep()

	case stepProgress:
		value := strings.TrimSpace(m.inputs[stepProgress].Value())
		if value == "" {
			m.report.Progress = 0
			return m.nextStep()
		}
		progress, err := strconv.Atoi(value)
		if err != nil || progress < 0 || progress > 100 {
			m.validationErr = "Progress must be a number between 0 and 100"
			return m, nil
		}
		m.report.Progress = progress
		return m.nextStep()

	case stepRemaining:
		value := strings.TrimSpace(m.inputs[stepRemaining].Value())
		if value == "" {
			m.report.RemainingHours = 0
			return m.nextStep()
		}
		hours, err := strconv.ParseFloat(value, 64)
		if err != nil || hours < 0 {
			m.validationErr = "Remaining hours must be a non-negative number"
			return m, nil
		}
		m.report.RemainingHours = hours
		return m.nextStep()

	case stepIssue:
		m.report.Issue = strings.TrimSpace(m.inputs[stepIssue].Value())
		return m.nextStep()

	case stepSolution:
		m.report.Solution = strings.TrimSpace(m.inputs[stepSolution].Value())
		return m.nextStep()

	case stepSave:
		if m.submitting {
			return m, nil
		}
		if err := m.report.Validate(); err != nil {
			m.validationErr = err.Error()
			return m, nil
		}
		m.submitting = true
		m.err = nil
		return m, createReportCmd(m.creator, m.report)
	}

	return m, nil
}

// resolveTag matches user input against the fetched tag list, by name
// (case insensitive) or by id.
func (m AddReportModel) resolveTag(value string) (int64, bool) {
	for _, tag := range m.tags {
		if strings.EqualFold(tag.Name, value) {
			return tag.ID, true
		}
	}
	if id, err := strconv.ParseInt(value, 10, 64); err == nil {
		for _, tag := range m.tags {
			if tag.ID == id {
				return tag.ID, true
			}
		}
	}
	return 0, false
}

// nextStep moves to the next step.
func (m AddReportModel) nextStep() (AddReportModel, tea.Cmd) {
	if m.currentStep < stepSave {
		m.inputs[m.currentStep].Blur()
		m.currentStep++
		if m.currentStep < stepSave {
			m.inputs[m.currentStep].Focus()
		}
	}
	return m, textinput.Blink
}

// prevStep moves to the previous step.
func (m AddReportModel) prevStep() (AddReportModel, tea.Cmd) {
	if m.currentStep > stepTitle {
		if m.currentStep < stepSave {
			m.inputs[m.currentStep].Blur()
		}
		m.currentStep--
		m.inputs[m.currentStep].Focus()
	}
	return m, textinput.Blink
}

// View renders the wizard.
func (m AddReportModel) View() string {
	if m.completed || m.cancelled {
		return ""
	}

	var b strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentMain))
	b.WriteString(headerStyle.Render("dayrep · new report"))
	b.WriteString("\n\n")

	// Step indicator
	for i, label := range stepLabels {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))
		if step(i) == m.currentStep {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
		} else if step(i) < m.currentStep {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
		}
		b.WriteString(style.Render(label))
		if i < len(stepLabels)-1 {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).Render(" › "))
		}
	}
	b.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorPrimaryText))

	switch {
	case m.currentStep == stepTag:
		b.WriteString(labelStyle.Render("Tag"))
		b.WriteString("\n")
		if len(m.tags) == 0 {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render("(loading tags...)"))
		} else {
			tagStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
			names := make([]string, 0, len(m.tags))
			for _, tag := range m.tags {
				names = append(names, fmt.Sprintf("%d:%s", tag.ID, tag.Name))
			}
			b.WriteString(tagStyle.Render(strings.Join(names, "  ")))
		}
		b.WriteString("\n")
		b.WriteString(m.inputs[stepTag].View())

	case m.currentStep < stepSave:
		b.WriteString(labelStyle.Render(stepLabels[m.currentStep]))
		b.WriteString("\n")
		b.WriteString(m.inputs[m.currentStep].View())

	default:
		b.WriteString(labelStyle.Render("Save report?"))
		b.WriteString("\n")
		b.WriteString(m.renderSummary())
		b.WriteString("\n")
		saveStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Bold(true)
		if m.submitting {
			b.WriteString(saveStyle.Render("Saving..."))
		} else {
			b.WriteString(saveStyle.Render("Press Enter to save, Esc to go back"))
		}
	}

	if m.validationErr != "" {
		b.WriteString("\n\n")
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
		b.WriteString(errStyle.Render("✗ " + m.validationErr))
	}
	if m.err != nil {
		b.WriteString("\n\n")
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
		b.WriteString(errStyle.Render("✗ " + m.err.Error()))
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true)
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter next · esc back · ctrl+c cancel"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1, 2)
	return boxStyle.Render(b.String())
}

// renderSummary shows the collected report before saving.
func (m AddReportModel) renderSummary() string {
	label := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	value := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))

	var b strings.Builder
	write := func(name, v string) {
		if v == "" {
			return
		}
		b.WriteString(label.Render(name + ": "))
		b.WriteString(value.Render(v))
		b.WriteString("\n")
	}

	write("Title", m.report.Title)
	write("Date", m.report.Date)
	tagValue := strings.TrimSpace(m.inputs[stepTag].Value())
	write("Tag", tagValue)
	write("Progress", fmt.Sprintf("%d%%", m.report.Progress))
	write("Remaining", fmt.Sprintf("%.1fh", m.report.RemainingHours))
	write("Issue", m.report.Issue)
	write("Solution", m.report.Solution)
	return b.String()
}
