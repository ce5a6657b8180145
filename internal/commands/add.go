package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adilkhann/dayrep/internal/models"
	"github.com/adilkhann/dayrep/internal/parser"
	"github.com/adilkhann/dayrep/internal/tui"
)

var addCmd = &cobra.Command{
	Use:   "add [report title]",
	Short: "Create a new report",
	Long: `Create a new daily report.

Modes:
  Interactive: dayrep add -i (or just 'dayrep add' with no arguments)
  Quick: dayrep add "Shipped the importer" --content "..." (with optional flags)
  Smart parsing: dayrep add "Fix importer #backend +80% 2h date:today"

Smart parsing syntax:
  #tag        - Tag name or numeric tag id
  +NN%        - Progress percentage (0-100)
  Nh          - Remaining hours (e.g. 2h, 1.5h)
  date:VALUE  - Report date (yyyy-mm-dd, dd/mm/yyyy, today, yesterday, X days ago)`,
	Args: cobra.ArbitraryArgs,
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		user, err := a.requireUser()
		if err != nil {
			return err
		}

		interactive, _ := cmd.Flags().GetBool("interactive")
		if len(args) == 0 && !interactive {
			interactive = true
		}

		parsed := parser.ParseEntry(strings.Join(args, " "))
		prefill, err := buildReport(a, cmd, user, parsed)
		if err != nil {
			return err
		}

		if len(parsed.Errors) > 0 {
			fmt.Printf("Found issues with parsing: %s\n", strings.Join(parsed.Errors, ", "))
			fmt.Println("Opening interactive mode for confirmation...")
			interactive = true
		}

		if interactive {
			return tui.RunAddReport(a.client, user, prefill)
		}

		if prefill.Date == "" {
			prefill.Date = parser.Today()
		}
		created, err := a.client.CreateReport(context.Background(), prefill)
		if err != nil {
			return err
		}

		fmt.Printf("Created report #%d: %s\n", created.ID, created.Title)
		fmt.Printf("  Date: %s\n", created.Date)
		if created.TagID != 0 {
			fmt.Printf("  Tag: #%d\n", created.TagID)
		}
		fmt.Printf("  Progress: %d%%, %.1fh remaining\n", created.Progress, created.RemainingHours)
		return nil
	}),
}

// buildReport merges parsed metadata and explicit flags into a report, with
// flags taking precedence.
func buildReport(a *app, cmd *cobra.Command, user models.User, parsed parser.ParsedEntry) (models.Report, error) {
	report := models.Report{
		Title:  parsed.Title,
		UserID: user.UserID,
		Date:   parsed.Date,
	}
	if parsed.Progress >= 0 {
		report.Progress = parsed.Progress
	}
	if parsed.RemainingHours >= 0 {
		report.RemainingHours = parsed.RemainingHours
	}

	tagName := parsed.TagName
	if flagTitle, _ := cmd.Flags().GetString("title"); flagTitle != "" {
		report.Title = flagTitle
	}
	if flagContent, _ := cmd.Flags().GetString("content"); flagContent != "" {
		report.Content = flagContent
	}
	if flagDate, _ := cmd.Flags().GetString("date"); flagDate != "" {
		day, err := parser.ParseDate(flagDate)
		if err != nil {
			return models.Report{}, fmt.Errorf("parsing date: %w", err)
		}
		report.Date = parser.FormatISO(day)
	}
	if flagTag, _ := cmd.Flags().GetString("tag"); flagTag != "" {
		tagName = flagTag
	}
	if cmd.Flags().Changed("progress") {
		report.Progress, _ = cmd.Flags().GetInt("progress")
	}
	if cmd.Flags().Changed("remaining") {
		report.RemainingHours, _ = cmd.Flags().GetFloat64("remaining")
	}
	if flagIssue, _ := cmd.Flags().GetString("issue"); flagIssue != "" {
		report.Issue = flagIssue
	}
	if flagSolution, _ := cmd.Flags().GetString("solution"); flagSolution != "" {
		report.Solution = flagSolution
	}

	if tagName != "" {
		tagID, err := resolveTagName(a, tagName)
		if err != nil {
			return models.Report{}, err
		}
		report.TagID = tagID
	}
	return report, nil
}

// resolveTagName matches a tag by name (case-insensitive) against the
// server's tag list. A purely numeric value is taken as a tag id.
func resolveTagName(a *app, name string) (int64, error) {
	if id, err := strconv.ParseInt(name, 10, 64); err == nil {
		return id, nil
	}

	tags, err := a.client.Tags(context.Background())
	if err != nil {
		return 0, fmt.Errorf("loading tags: %w", err)
	}
	for _, tag := range tags {
		if strings.EqualFold(tag.Name, name) {
			return tag.ID, nil
		}
	}
	return 0, fmt.Errorf("unknown tag %q", name)
}

func init() {
	addCmd.Flags().BoolP("interactive", "i", false, "Interactive mode with TUI")
	addCmd.Flags().StringP("title", "", "", "Report title")
	addCmd.Flags().StringP("content", "c", "", "Report content")
	addCmd.Flags().StringP("date", "d", "", "Report date: yyyy-mm-dd, dd/mm/yyyy, today, yesterday, X days ago")
	addCmd.Flags().StringP("tag", "t", "", "Tag name or id")
	addCmd.Flags().IntP("progress", "", 0, "Progress percentage (0-100)")
	addCmd.Flags().Float64P("remaining", "", 0, "Remaining hours")
	addCmd.Flags().StringP("issue", "", "", "Issue encountered")
	addCmd.Flags().StringP("solution", "", "", "Solution applied")
}
