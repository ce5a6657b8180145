package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a report",
	Args:    cobra.ExactArgs(1),
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

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Printf("Delete report #%d %q (%s)? [y/N] ", report.ID, report.Title, report.Date)
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			answer := strings.ToLower(strings.TrimSpace(line))
			if answer != "y" && answer != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := a.client.DeleteReport(context.Background(), id); err != nil {
			return err
		}
		fmt.Printf("Deleted report #%d: %s\n", report.ID, report.Title)
		return nil
	}),
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
