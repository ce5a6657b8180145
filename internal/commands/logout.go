package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adilkhann/dayrep/internal/session"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored session",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		if a.store.State() != session.StateAuthenticated {
			fmt.Println("Not logged in.")
			return nil
		}
		user := a.store.CurrentUser()
		if err := a.store.Logout(); err != nil {
			return err
		}
		fmt.Printf("Logged out %s.\n", user.Email)
		return nil
	}),
}
