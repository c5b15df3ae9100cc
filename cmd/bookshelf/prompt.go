package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/bobinette/bookshelf"
)

// email of the user running a command, set by the commands that need one.
var email string

// readPassword reads a password without echo from a terminal, or a line from
// a piped stdin.
func readPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(password), nil
}

// login authenticates the user given by --email.
func login() bookshelf.Actor {
	if email == "" {
		logger.Fatal("this command needs the --email of the user running it")
	}

	password, err := readPassword("Password: ")
	if err != nil {
		logger.Fatal("could not read password:", err)
	}

	actor, err := userService.Authenticate(email, password)
	if err != nil {
		logger.Fatal(err)
	}
	return actor
}

// userView is what the commands show of a user.
type userView struct {
	ID         string         `json:"id"`
	Username   string         `json:"username"`
	Email      string         `json:"email"`
	Role       bookshelf.Role `json:"role"`
	SavedBooks []int          `json:"savedBooks"`
}

func formatUser(user bookshelf.User) (string, error) {
	data, err := json.MarshalIndent(userView{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		Role:       user.Role,
		SavedBooks: user.SavedBooks,
	}, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func formatBook(book bookshelf.Book) string {
	return fmt.Sprintf("%d\t%s\t%s\t%s\t%s", book.ID, book.Title, book.Author, book.Genre, book.Status)
}

func printBooks(books []bookshelf.Book) {
	for _, book := range books {
		fmt.Println(formatBook(book))
	}
}
