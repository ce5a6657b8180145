package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single report",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		if _, err := a.requireUser(); err != nil {
			return err
		}

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid report id %q", args[0])
		}

		report, err := a.client.ReportByID(context.Background(), id)
		if err != nil {
			return err
		}

		fmt.Printf("Report #%d: %s\n", report.ID, report.Title)
		fmt.Printf("  Date: %s\n", report.Date)
		if report.TagID != 0 {
			if tag, err := a.client.TagByID(context.Background(), report.TagID); err == nil {
				fmt.Printf("  Tag: %s\n", tag.Name)
			} else {
				fmt.Printf("  Tag: #%d\n", report.TagID)
			}
		}
		fmt.Printf("  Progress: %d%%, %.1fh remaining\n", report.Progress, report.RemainingHours)
		fmt.Printf("\n%s\n", report.Content)
		if report.Issue != "" {
			fmt.Printf("\nIssue: %s\n", report.Issue)
		}
		if report.Solution != "" {
			fmt.Printf("Solution: %s\n", report.Solution)
		}
		return nil
	}),
}
