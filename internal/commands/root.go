package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adilkhann/dayrep/internal/api"
	"github.com/adilkhann/dayrep/internal/config"
	"github.com/adilkhann/dayrep/internal/models"
	"github.com/adilkhann/dayrep/internal/session"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "dayrep",
	Short: "A terminal client for the daily report service",
	Long: `dayrep is a command-line frontend for the daily work-report service.
Log in once, then create, browse, search, and delete your dated progress
reports from the terminal.`,
}

// app bundles what every command needs: config, the session store, and the
// API client with its unauthorized signal wired to the store.
type app struct {
	cfg    *config.Config
	store  *session.Store
	client *api.Client
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	store, err := session.Open(cfg.DBPath, cfg.TokenKey, cfg.UserKey)
	if err != nil {
		return nil, err
	}
	if err := store.Init(); err != nil {
		store.Close()
		return nil, err
	}

	client := api.New(cfg, store)
	client.OnUnauthorized(store.HandleUnauthorized)

	return &app{cfg: cfg, store: store, client: client}, nil
}

// withApp wraps a command function with app construction and teardown. A
// session invalidated by a 401 during the command routes the user back to
// login.
func withApp(fn func(*app, *cobra.Command, []string) error) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		a, err := newApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}

		runErr := fn(a, cmd, args)
		expired := a.store.Expired()
		_ = a.store.Close()

		if expired {
			if runErr != nil {
				fmt.Fprintln(os.Stderr, "Error:", runErr)
			}
			fmt.Fprintln(os.Stderr, "Session expired. Run 'dayrep login' to sign in again.")
			os.Exit(1)
		}
		if runErr != nil {
			fmt.Fprintln(os.Stderr, "Error:", runErr)
			os.Exit(1)
		}
	}
}

// requireUser returns the authenticated user, or an error pointing at the
// login entry point.
func (a *app) requireUser() (models.User, error) {
	if a.store.State() != session.StateAuthenticated {
		return models.User{}, fmt.Errorf("not logged in. Run 'dayrep login' first")
	}
	return *a.store.CurrentUser(), nil
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(forgotPasswordCmd)
	rootCmd.AddCommand(resetPasswordCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
