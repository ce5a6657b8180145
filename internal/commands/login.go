package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adilkhann/dayrep/internal/models"
	"github.com/adilkhann/dayrep/internal/tui"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the report service",
	Long: `Sign in with your email and password. Without flags an interactive
form opens; with --email and --password the login runs directly.`,
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		return runAuth(a, false)
	}),
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		return runAuth(a, true)
	}),
}

func runAuth(a *app, register bool) error {
	var res *models.AuthResponse
	var err error

	if loginEmail != "" || loginPassword != "" {
		if !strings.Contains(loginEmail, "@") {
			return fmt.Errorf("invalid email address: %q", loginEmail)
		}
		if loginPassword == "" {
			return fmt.Errorf("password cannot be empty")
		}
		if register {
			res, err = a.store.Register(context.Background(), a.client, loginEmail, loginPassword)
		} else {
			res, err = a.store.Login(context.Background(), a.client, loginEmail, loginPassword)
		}
	} else {
		res, err = tui.RunLogin(a.store, a.client, register)
	}
	if err != nil {
		return err
	}
	if res == nil {
		fmt.Println("Cancelled.")
		return nil
	}

	if res.Message != "" {
		fmt.Println(res.Message)
	}
	fmt.Printf("Logged in as %s (user #%d)\n", res.Email, res.UserID)
	return nil
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "email address")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password")
	registerCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "email address")
	registerCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password")
}
