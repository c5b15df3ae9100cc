package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	PasswordCommand.AddCommand(&PasswordForgotCommand)
	PasswordCommand.AddCommand(&PasswordResetCommand)
	RootCmd.AddCommand(&PasswordCommand)
}

var PasswordCommand = cobra.Command{
	Use:   "password",
	Short: "Reset a forgotten password",
}

var PasswordForgotCommand = cobra.Command{
	Use:   "forgot <email>",
	Short: "Send a reset token by email",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := userService.RequestPasswordReset(context.Background(), args[0]); err != nil {
			logger.Fatal("error requesting password reset:", err)
		}
		fmt.Println("if an account exists for that email, a reset token is on its way")
	},
}

var PasswordResetCommand = cobra.Command{
	Use:   "reset <token>",
	Short: "Choose a new password with a reset token",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		password, err := readPassword("New password: ")
		if err != nil {
			logger.Fatal("could not read password:", err)
		}

		if err := userService.ResetPassword(args[0], password); err != nil {
			logger.Fatal("error resetting password:", err)
		}
		fmt.Println("password updated")
	},
}
