package bookshelf

import (
	"iter"
	"time"
)

const (
	// ContentUnavailable is stored as the content of books that were submitted as
	// external links: their text cannot be extracted.
	ContentUnavailable = "Text content not available for linked PDFs."

	// DefaultSummary is the summary of a book until one is generated.
	DefaultSummary = "No summary yet"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

// Genres lists the genres offered on submission. GenreOther means the
// submitter gave a custom genre.
var Genres = []string{
	"Fiction",
	"Non-Fiction",
	"Sci-Fi",
	"Fantasy",
	"Mystery",
	"Thriller",
	"Romance",
	"Horror",
	"Biography",
	"History",
	"Self-Help",
	"Tech",
	GenreOther,
}

const GenreOther = "Other"

type Book struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       string `json:"genre"`
	Description string `json:"description"`

	Content string `json:"content"`
	Summary string `json:"summary"`
	Status  Status `json:"status"`

	// Locators resolved by the asset storage, never by this package.
	CoverImage string `json:"coverImage"`
	File       string `json:"file"`

	OwnerID string `json:"ownerId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasContent returns true if the book carries extracted text.
func (b Book) HasContent() bool {
	return b.Content != "" && b.Content != ContentUnavailable
}

// BookRepository is the storage of books. Get and the single document updates
// return a zero Book or false when the id is unknown, it is up to the caller
// to decide whether that is an error.
type BookRepository interface {
	Get(...int) ([]Book, error)
	Insert(*Book) error
	Delete(int) error

	// SetStatus and SetSummary are atomic single document updates.
	SetStatus(id int, status Status) (bool, error)
	SetSummary(id int, summary string) (bool, error)

	// All iterates over every book, newest first when reverse is true.
	All(reverse bool) iter.Seq2[Book, error]
	ListByStatus(Status) ([]Book, error)
}
