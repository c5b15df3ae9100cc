package services

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/bobinette/bookshelf"
	"github.com/bobinette/bookshelf/errors"
	"github.com/bobinette/bookshelf/log"
	"github.com/bobinette/bookshelf/summarize"
)

// Submission holds the fields of a book upload. Form level checks (file
// types, sizes) are done before reaching the catalog.
type Submission struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	Genre       string `json:"genre"`
	CustomGenre string `json:"customGenre"`
	Description string `json:"description"`

	// Content is the extracted text, empty for books given as links.
	Content    string `json:"content"`
	CoverImage string `json:"coverImage"`
	File       string `json:"file"`
}

// CatalogService owns the moderation of books: users submit books, admins
// approve or reject them, and only approved books are listed.
type CatalogService struct {
	books bookshelf.BookRepository
	users bookshelf.UserRepository

	summarizer *summarize.Service
	validate   *validator.Validate
	logger     log.Logger
}

func NewCatalogService(
	books bookshelf.BookRepository,
	users bookshelf.UserRepository,
	summarizer *summarize.Service,
	logger log.Logger,
) *CatalogService {
	return &CatalogService{
		books: books,
		users: users,

		summarizer: summarizer,
		validate:   newValidator(),
		logger:     logger,
	}
}

// CanModerate is the only authorization check of the catalog.
func (s *CatalogService) CanModerate(actor bookshelf.Actor) bool {
	return actor.Role == bookshelf.RoleAdmin
}

func (s *CatalogService) authorize(actor bookshelf.Actor, action string) error {
	if !s.CanModerate(actor) {
		s.logger.Warnf("user %q tried to %s", actor.ID, action)
		return errAdminOnly(action)
	}
	return nil
}

// Submit creates a pending book owned by ownerID and returns its id. Every
// call creates a new book.
func (s *CatalogService) Submit(sub Submission, ownerID string) (int, error) {
	sub.Title = strings.TrimSpace(sub.Title)
	sub.Author = strings.TrimSpace(sub.Author)
	if err := validate(s.validate, sub); err != nil {
		return 0, err
	}

	if strings.TrimSpace(ownerID) == "" {
		return 0, errors.New("owner is required", errors.BadRequest())
	}

	genre := strings.TrimSpace(sub.Genre)
	if custom := strings.TrimSpace(sub.CustomGenre); genre == bookshelf.GenreOther && custom != "" {
		genre = custom
	}

	content := sub.Content
	if strings.TrimSpace(content) == "" {
		content = bookshelf.ContentUnavailable
	}

	book := bookshelf.Book{
		Title:       sub.Title,
		Author:      sub.Author,
		Genre:       genre,
		Description: strings.TrimSpace(sub.Description),

		Content: content,
		Summary: bookshelf.DefaultSummary,
		Status:  bookshelf.StatusPending,

		CoverImage: sub.CoverImage,
		File:       sub.File,

		OwnerID: ownerID,
	}

	if err := s.books.Insert(&book); err != nil {
		return 0, err
	}

	s.logger.Printf("book %d submitted by %s, pending approval", book.ID, ownerID)
	return book.ID, nil
}

// Get returns a book whatever its status.
func (s *CatalogService) Get(id int) (bookshelf.Book, error) {
	books, err := s.books.Get(id)
	if err != nil {
		return bookshelf.Book{}, err
	} else if len(books) != 1 {
		return bookshelf.Book{}, errBookNotFound(id)
	}

	return books[0], nil
}

// Approve makes a pending book visible in the catalog. Approving an approved
// book does nothing.
func (s *CatalogService) Approve(actor bookshelf.Actor, id int) error {
	if err := s.authorize(actor, "approve books"); err != nil {
		return err
	}

	found, err := s.books.SetStatus(id, bookshelf.StatusApproved)
	if err != nil {
		return err
	} else if !found {
		return errBookNotFound(id)
	}

	s.logger.Printf("book %d approved by %s", id, actor.ID)
	return nil
}

// Reject removes a book during moderation.
func (s *CatalogService) Reject(actor bookshelf.Actor, id int) error {
	return s.remove(actor, id, "reject books", "rejected")
}

// Delete removes a book from the catalog.
func (s *CatalogService) Delete(actor bookshelf.Actor, id int) error {
	return s.remove(actor, id, "delete books", "deleted")
}

// remove deletes the book for good. Unknown ids are ignored, and users who
// saved the book keep its id.
func (s *CatalogService) remove(actor bookshelf.Actor, id int, action, done string) error {
	if err := s.authorize(actor, action); err != nil {
		return err
	}

	if err := s.books.Delete(id); err != nil {
		return err
	}

	s.logger.Printf("book %d %s by %s", id, done, actor.ID)
	return nil
}

// Pending lists the books waiting for moderation.
func (s *CatalogService) Pending(actor bookshelf.Actor) ([]bookshelf.Book, error) {
	if err := s.authorize(actor, "list pending books"); err != nil {
		return nil, err
	}

	return s.books.ListByStatus(bookshelf.StatusPending)
}

// Approved lists the approved books in catalog order, oldest first.
func (s *CatalogService) Approved() ([]bookshelf.Book, error) {
	return s.books.ListByStatus(bookshelf.StatusApproved)
}

// Search iterates over the approved books, newest first. A non empty q keeps
// the books whose title, author or genre contains q, ignoring case. Ranging
// over the sequence again runs the search again.
func (s *CatalogService) Search(q string) iter.Seq2[bookshelf.Book, error] {
	q = strings.ToLower(strings.TrimSpace(q))

	return func(yield func(bookshelf.Book, error) bool) {
		for book, err := range s.books.All(true) {
			if err != nil {
				yield(bookshelf.Book{}, err)
				return
			}

			if book.Status != bookshelf.StatusApproved || !matches(book, q) {
				continue
			}

			if !yield(book, nil) {
				return
			}
		}
	}
}

func matches(book bookshelf.Book, q string) bool {
	if q == "" {
		return true
	}

	for _, field := range []string{book.Title, book.Author, book.Genre} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Save adds a book to the reading list of a user. The book must exist.
func (s *CatalogService) Save(userID string, bookID int) error {
	if _, err := s.Get(bookID); err != nil {
		return err
	}

	found, err := s.users.AddSavedBook(userID, bookID)
	if err != nil {
		return err
	} else if !found {
		return errUserNotFound(userID)
	}

	return nil
}

// Remove takes a book out of the reading list of a user. The book does not
// need to exist anymore.
func (s *CatalogService) Remove(userID string, bookID int) error {
	found, err := s.users.RemoveSavedBook(userID, bookID)
	if err != nil {
		return err
	} else if !found {
		return errUserNotFound(userID)
	}

	return nil
}

// GenerateSummary summarizes the content of a book and stores the result,
// replacing the previous summary. Books without enough text are refused.
func (s *CatalogService) GenerateSummary(ctx context.Context, id int) (string, error) {
	book, err := s.Get(id)
	if err != nil {
		return "", err
	}

	if !book.HasContent() {
		return "", errors.New(
			fmt.Sprintf("summary cannot be generated for book %d: text unavailable", id),
			errors.Unsupported(),
		)
	}
	if utf8.RuneCountInString(book.Content) < summarize.MinTextLength {
		return "", errors.New(
			fmt.Sprintf("summary cannot be generated for book %d: not enough text", id),
			errors.Unsupported(),
		)
	}

	summary := s.summarizer.Summarize(ctx, book.Content)

	found, err := s.books.SetSummary(id, summary)
	if err != nil {
		return "", err
	} else if !found {
		return "", errBookNotFound(id)
	}

	return summary, nil
}
