package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	for _, cmd := range []*cobra.Command{
		&LibrarySaveCommand,
		&LibraryRemoveCommand,
		&LibraryShowCommand,
	} {
		cmd.Flags().StringVar(&email, "email", "", "email of the user running the command")
	}

	LibraryCommand.AddCommand(&LibrarySaveCommand)
	LibraryCommand.AddCommand(&LibraryRemoveCommand)
	LibraryCommand.AddCommand(&LibraryShowCommand)
	RootCmd.AddCommand(&LibraryCommand)
}

var LibraryCommand = cobra.Command{
	Use:   "library",
	Short: "Manage your reading list",
}

var LibrarySaveCommand = cobra.Command{
	Use:   "save <id>",
	Short: "Save a book to your reading list",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		actor := login()
		if err := catalogService.Save(actor.ID, parseID(args[0])); err != nil {
			logger.Fatal("error saving book:", err)
		}
		fmt.Println("saved")
	},
}

var LibraryRemoveCommand = cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a book from your reading list",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		actor := login()
		if err := catalogService.Remove(actor.ID, parseID(args[0])); err != nil {
			logger.Fatal("error removing book:", err)
		}
		fmt.Println("removed")
	},
}

var LibraryShowCommand = cobra.Command{
	Use:   "show",
	Short: "Show your reading list and recommendations",
	Run: func(cmd *cobra.Command, args []string) {
		actor := login()
		library, err := libraryService.Library(actor.ID)
		if err != nil {
			logger.Fatal("error retrieving library:", err)
		}

		fmt.Println("Saved books:")
		printBooks(library.Books)
		fmt.Printf("\nRecommended (%s):\n", library.Path)
		printBooks(library.Recommendations)
	},
}
