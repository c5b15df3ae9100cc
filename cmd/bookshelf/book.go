package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bobinette/bookshelf"
	"github.com/bobinette/bookshelf/services"
)

var (
	submission  services.Submission
	contentFile string
	searchLimit int
)

func init() {
	BookSubmitCommand.Flags().StringVar(&submission.Title, "title", "", "title of the book")
	BookSubmitCommand.Flags().StringVar(&submission.Author, "author", "", "author of the book")
	BookSubmitCommand.Flags().StringVar(&submission.Genre, "genre", "", "one of "+strings.Join(bookshelf.Genres, ", "))
	BookSubmitCommand.Flags().StringVar(&submission.CustomGenre, "custom-genre", "", "genre used when --genre is Other")
	BookSubmitCommand.Flags().StringVar(&submission.Description, "description", "", "short description")
	BookSubmitCommand.Flags().StringVar(&submission.CoverImage, "cover", "", "location of the cover image")
	BookSubmitCommand.Flags().StringVar(&submission.File, "file", "", "location of the book file, or a link")
	BookSubmitCommand.Flags().StringVar(&contentFile, "content", "", "text file with the extracted content of the book")

	BookSearchCommand.Flags().IntVar(&searchLimit, "limit", 0, "stop after that many books, 0 for all")

	for _, cmd := range []*cobra.Command{
		&BookSubmitCommand,
		&BookApproveCommand,
		&BookRejectCommand,
		&BookDeleteCommand,
		&BookPendingCommand,
	} {
		cmd.Flags().StringVar(&email, "email", "", "email of the user running the command")
	}

	BookCommand.AddCommand(&BookSubmitCommand)
	BookCommand.AddCommand(&BookShowCommand)
	BookCommand.AddCommand(&BookApproveCommand)
	BookCommand.AddCommand(&BookRejectCommand)
	BookCommand.AddCommand(&BookDeleteCommand)
	BookCommand.AddCommand(&BookPendingCommand)
	BookCommand.AddCommand(&BookSearchCommand)
	BookCommand.AddCommand(&BookSummarizeCommand)
	RootCmd.AddCommand(&BookCommand)
}

func parseID(arg string) int {
	id, err := strconv.Atoi(arg)
	if err != nil {
		logger.Fatal("error converting book id:", err)
	}
	return id
}

var BookCommand = cobra.Command{
	Use:   "book",
	Short: "Submit, moderate and search books",
}

var BookSubmitCommand = cobra.Command{
	Use:   "submit",
	Short: "Submit a book for approval",
	Run: func(cmd *cobra.Command, args []string) {
		actor := login()

		if contentFile != "" {
			content, err := os.ReadFile(contentFile)
			if err != nil {
				logger.Fatal("error reading content:", err)
			}
			submission.Content = string(content)
		}

		id, err := catalogService.Submit(submission, actor.ID)
		if err != nil {
			logger.Fatal("error submitting book:", err)
		}
		fmt.Printf("book %d submitted, waiting for approval\n", id)
	},
}

var BookShowCommand = cobra.Command{
	Use:   "show <id>",
	Short: "Show a book",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		book, err := catalogService.Get(parseID(args[0]))
		if err != nil {
			logger.Fatal("error retrieving book:", err)
		}

		data, err := json.MarshalIndent(book, "", "  ")
		if err != nil {
			logger.Fatal(err)
		}
		fmt.Println(string(data))
	},
}

var BookApproveCommand = cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a pending book",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		actor := login()
		if err := catalogService.Approve(actor, parseID(args[0])); err != nil {
			logger.Fatal("error approving book:", err)
		}
		fmt.Println("approved")
	},
}

var BookRejectCommand = cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a pending book",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		actor := login()
		if err := catalogService.Reject(actor, parseID(args[0])); err != nil {
			logger.Fatal("error rejecting book:", err)
		}
		fmt.Println("rejected")
	},
}

var BookDeleteCommand = cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a book",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		actor := login()
		if err := catalogService.Delete(actor, parseID(args[0])); err != nil {
			logger.Fatal("error deleting book:", err)
		}
		fmt.Println("deleted")
	},
}

var BookPendingCommand = cobra.Command{
	Use:   "pending",
	Short: "List the books waiting for approval",
	Run: func(cmd *cobra.Command, args []string) {
		actor := login()
		books, err := catalogService.Pending(actor)
		if err != nil {
			logger.Fatal("error listing pending books:", err)
		}
		printBooks(books)
	},
}

var BookSearchCommand = cobra.Command{
	Use:   "search [query]",
	Short: "Search the approved books, newest first",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		q := ""
		if len(args) == 1 {
			q = args[0]
		}

		count := 0
		for book, err := range catalogService.Search(q) {
			if err != nil {
				logger.Fatal("error searching books:", err)
			}

			fmt.Println(formatBook(book))
			count++
			if count == searchLimit {
				break
			}
		}
	},
}

var BookSummarizeCommand = cobra.Command{
	Use:   "summarize <id>",
	Short: "Generate the summary of a book",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		summary, err := catalogService.GenerateSummary(context.Background(), parseID(args[0]))
		if err != nil {
			logger.Fatal("error summarizing book:", err)
		}
		fmt.Println(summary)
	},
}
