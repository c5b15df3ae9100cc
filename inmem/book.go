package inmem

import (
	"iter"
	"slices"
	"sync"
	"time"

	"github.com/bobinette/bookshelf"
)

// BookRepository keeps books in memory. It mirrors the bolt repository and is
// meant for tests and throwaway setups.
type BookRepository struct {
	mu    sync.Locker
	books map[int]bookshelf.Book
	maxID int
}

func NewBookRepository() *BookRepository {
	return &BookRepository{
		mu:    &sync.Mutex{},
		books: make(map[int]bookshelf.Book),
		maxID: 0,
	}
}

func (r *BookRepository) Get(ids ...int) ([]bookshelf.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	books := make([]bookshelf.Book, 0, len(ids))
	for _, id := range ids {
		if book, ok := r.books[id]; ok {
			books = append(books, book)
		}
	}
	return books, nil
}

func (r *BookRepository) Insert(book *bookshelf.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.maxID++
	book.ID = r.maxID
	book.CreatedAt = time.Now()
	book.UpdatedAt = book.CreatedAt

	r.books[book.ID] = *book
	return nil
}

func (r *BookRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.books, id)
	return nil
}

func (r *BookRepository) SetStatus(id int, status bookshelf.Status) (bool, error) {
	return r.update(id, func(book *bookshelf.Book) {
		book.Status = status
	}), nil
}

func (r *BookRepository) SetSummary(id int, summary string) (bool, error) {
	return r.update(id, func(book *bookshelf.Book) {
		book.Summary = summary
	}), nil
}

func (r *BookRepository) update(id int, f func(*bookshelf.Book)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	book, ok := r.books[id]
	if !ok {
		return false
	}

	f(&book)
	book.UpdatedAt = time.Now()
	r.books[id] = book
	return true
}

// All takes a snapshot of the ids when the iteration starts. Books deleted
// in the meantime are skipped.
func (r *BookRepository) All(reverse bool) iter.Seq2[bookshelf.Book, error] {
	return func(yield func(bookshelf.Book, error) bool) {
		r.mu.Lock()
		ids := make([]int, 0, len(r.books))
		for id := range r.books {
			ids = append(ids, id)
		}
		r.mu.Unlock()

		slices.Sort(ids)
		if reverse {
			slices.Reverse(ids)
		}

		for _, id := range ids {
			r.mu.Lock()
			book, ok := r.books[id]
			r.mu.Unlock()

			if !ok {
				continue
			}
			if !yield(book, nil) {
				return
			}
		}
	}
}

func (r *BookRepository) ListByStatus(status bookshelf.Status) ([]bookshelf.Book, error) {
	books := make([]bookshelf.Book, 0)
	for book := range r.All(false) {
		if book.Status == status {
			books = append(books, book)
		}
	}
	return books, nil
}
