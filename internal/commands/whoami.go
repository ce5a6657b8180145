package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		user, err := a.requireUser()
		if err != nil {
			return err
		}

		fmt.Printf("%s (user #%d)\n", user.Email, user.UserID)

		count, err := a.client.CountReports(context.Background(), user.UserID)
		if err != nil {
			return err
		}
		fmt.Printf("%d reports\n", count)
		return nil
	}),
}
