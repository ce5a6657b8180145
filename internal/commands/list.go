package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adilkhann/dayrep/internal/models"
	"github.com/adilkhann/dayrep/internal/parser"
	"github.com/adilkhann/dayrep/internal/tui"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List reports",
	Long:    "Browse your reports in an interactive paged view, or print them with --plain or --json",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		user, err := a.requireUser()
		if err != nil {
			return err
		}

		date, _ := cmd.Flags().GetString("date")
		if date != "" {
			day, err := parser.ParseDate(date)
			if err != nil {
				return fmt.Errorf("parsing date: %w", err)
			}
			date = parser.FormatISO(day)
		}
		tagID, _ := cmd.Flags().GetInt64("tag")
		page, _ := cmd.Flags().GetInt("page")
		size, _ := cmd.Flags().GetInt("size")
		if size <= 0 {
			size = a.cfg.PageSize
		}

		plain, _ := cmd.Flags().GetBool("plain")
		asJSON, _ := cmd.Flags().GetBool("json")
		all, _ := cmd.Flags().GetBool("all")
		if !plain && !asJSON && !all {
			return tui.RunReportList(a.client, user, size)
		}

		if all {
			reports, err := a.client.Reports(context.Background(), user.UserID, date, tagID)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(reports)
			}
			printReportTable(reports)
			return nil
		}

		result, err := a.client.ReportsPaged(context.Background(), user.UserID, page, size, date, tagID, "", "")
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		printReportTable(result.Reports)
		if result.TotalPages > 1 {
			fmt.Printf("\nPage %d of %d (%d reports)\n", result.CurrentPage+1, result.TotalPages, result.TotalItems)
		}
		return nil
	}),
}

// printReportTable prints reports in a fixed-width table.
func printReportTable(reports []models.Report) {
	if len(reports) == 0 {
		fmt.Println("No reports found. Use 'dayrep add \"report title\"' to create your first report.")
		return
	}

	fmt.Printf("%-6s %-12s %-40s %-10s %s\n", "ID", "DATE", "TITLE", "PROGRESS", "REMAINING")
	fmt.Println(strings.Repeat("-", 80))

	for _, report := range reports {
		title := report.Title
		if runes := []rune(title); len(runes) > 38 {
			title = string(runes[:35]) + "..."
		}

		fmt.Printf("%-6d %-12s %-40s %-10s %.1fh\n",
			report.ID,
			report.Date,
			title,
			fmt.Sprintf("%d%%", report.Progress),
			report.RemainingHours)
	}
}

func init() {
	listCmd.Flags().StringP("date", "d", "", "Filter by date: yyyy-mm-dd, today, yesterday, X days ago")
	listCmd.Flags().Int64P("tag", "t", 0, "Filter by tag id")
	listCmd.Flags().IntP("page", "p", 0, "Page number (0-based, with --plain or --json)")
	listCmd.Flags().IntP("size", "s", 0, "Page size")
	listCmd.Flags().BoolP("all", "a", false, "Fetch every matching report without paging")
	listCmd.Flags().BoolP("plain", "", false, "Print a plain table instead of the interactive view")
	listCmd.Flags().BoolP("json", "", false, "Print the page as JSON")
}
