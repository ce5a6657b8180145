package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password <email>",
	Short: "Request a password reset email",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		res, err := a.client.ForgotPassword(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(res.Message)
		return nil
	}),
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password <token> <new-password>",
	Short: "Set a new password using a reset token",
	Args:  cobra.ExactArgs(2),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		res, err := a.client.ResetPassword(context.Background(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Println(res.Message)
		return nil
	}),
}
