package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bobinette/bookshelf/services"
)

var username string

func init() {
	UserRegisterCommand.Flags().StringVar(&username, "username", "", "username, 2 to 20 characters")
	UserRegisterCommand.Flags().StringVar(&email, "email", "", "email of the new user")
	UserLoginCommand.Flags().StringVar(&email, "email", "", "email of the user")

	UserCommand.AddCommand(&UserRegisterCommand)
	UserCommand.AddCommand(&UserLoginCommand)
	UserCommand.AddCommand(&UserPromoteCommand)
	UserCommand.AddCommand(&UserListCommand)
	RootCmd.AddCommand(&UserCommand)
}

var UserCommand = cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var UserRegisterCommand = cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Run: func(cmd *cobra.Command, args []string) {
		password, err := readPassword("Password: ")
		if err != nil {
			logger.Fatal("could not read password:", err)
		}

		user, err := userService.Register(services.Registration{
			Username: username,
			Email:    email,
			Password: password,
		})
		if err != nil {
			logger.Fatal("error registering user:", err)
		}

		data, err := formatUser(user)
		if err != nil {
			logger.Fatal(err)
		}
		fmt.Println(data)
	},
}

var UserLoginCommand = cobra.Command{
	Use:   "login",
	Short: "Check credentials",
	Run: func(cmd *cobra.Command, args []string) {
		actor := login()
		fmt.Printf("logged in as %s (%s)\n", actor.ID, actor.Role)
	},
}

var UserPromoteCommand = cobra.Command{
	Use:   "promote <email>",
	Short: "Give the admin role to a user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := userService.Promote(args[0]); err != nil {
			logger.Fatal("error promoting user:", err)
		}
		fmt.Printf("%s is now an admin\n", args[0])
	},
}

var UserListCommand = cobra.Command{
	Use:   "list",
	Short: "List all the users",
	Run: func(cmd *cobra.Command, args []string) {
		users, err := userService.List()
		if err != nil {
			logger.Fatal("error listing users:", err)
		}

		for _, user := range users {
			data, err := formatUser(user)
			if err != nil {
				logger.Fatal(err)
			}
			fmt.Println(data)
		}
	},
}
