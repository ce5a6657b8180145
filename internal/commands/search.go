package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adilkhann/dayrep/internal/tui"
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search reports by title or content",
	Args:  cobra.MinimumNArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		user, err := a.requireUser()
		if err != nil {
			return err
		}
		term := strings.Join(args, " ")

		plain, _ := cmd.Flags().GetBool("plain")
		asJSON, _ := cmd.Flags().GetBool("json")
		all, _ := cmd.Flags().GetBool("all")

		if !plain && !asJSON && !all {
			return tui.RunSearch(a.client, user, term, a.cfg.PageSize)
		}

		if all {
			reports, err := a.client.SearchReports(context.Background(), user.UserID, term)
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

		page, _ := cmd.Flags().GetInt("page")
		size, _ := cmd.Flags().GetInt("size")
		if size <= 0 {
			size = a.cfg.PageSize
		}

		result, err := a.client.SearchReportsPaged(context.Background(), user.UserID, term, page, size)
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
			fmt.Printf("\nPage %d of %d (%d matches)\n", result.CurrentPage+1, result.TotalPages, result.TotalItems)
		}
		return nil
	}),
}

func init() {
	searchCmd.Flags().IntP("page", "p", 0, "Page number (0-based)")
	searchCmd.Flags().IntP("size", "s", 0, "Page size")
	searchCmd.Flags().BoolP("all", "a", false, "Fetch all matches without paging")
	searchCmd.Flags().BoolP("plain", "", false, "Print a plain table instead of the interactive view")
	searchCmd.Flags().BoolP("json", "", false, "Print results as JSON")
}
