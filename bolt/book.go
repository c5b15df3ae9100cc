package bolt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"time"

	"github.com/boltdb/bolt"

	"github.com/bobinette/bookshelf"
)

var bookBucket = []byte("books")

// BookRepository stores books in a bolt database, keyed by their id. Ids come
// from the bucket sequence so the key order is the creation order.
type BookRepository struct {
	Driver *Driver
}

// Get retrieves the books defined by ids. Unknown ids are skipped.
func (r *BookRepository) Get(ids ...int) ([]bookshelf.Book, error) {
	books := make([]bookshelf.Book, 0, len(ids))
	err := r.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bookBucket)

		for _, id := range ids {
			data := bucket.Get(itob(id))
			if data == nil {
				continue
			}

			var book bookshelf.Book
			if err := json.Unmarshal(data, &book); err != nil {
				return err
			}
			books = append(books, book)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return books, nil
}

// Insert always creates a new book, whatever book.ID is.
func (r *BookRepository) Insert(book *bookshelf.Book) error {
	return r.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bookBucket)

		id, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("error incrementing id: %v", err)
		}
		book.ID = int(id)
		book.CreatedAt = time.Now()
		book.UpdatedAt = book.CreatedAt

		data, err := json.Marshal(book)
		if err != nil {
			return err
		}

		return bucket.Put(itob(book.ID), data)
	})
}

// Delete removes the book. Deleting an unknown id is not an error.
func (r *BookRepository) Delete(id int) error {
	return r.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bookBucket)
		return bucket.Delete(itob(id))
	})
}

func (r *BookRepository) SetStatus(id int, status bookshelf.Status) (bool, error) {
	return r.update(id, func(book *bookshelf.Book) bool {
		if book.Status == status {
			return false
		}
		book.Status = status
		return true
	})
}

func (r *BookRepository) SetSummary(id int, summary string) (bool, error) {
	return r.update(id, func(book *bookshelf.Book) bool {
		book.Summary = summary
		return true
	})
}

// update reads, modifies and writes back a book in a single transaction. f
// returns false when there is nothing to write.
func (r *BookRepository) update(id int, f func(*bookshelf.Book) bool) (bool, error) {
	found := false
	err := r.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bookBucket)

		data := bucket.Get(itob(id))
		if data == nil {
			return nil
		}
		found = true

		var book bookshelf.Book
		if err := json.Unmarshal(data, &book); err != nil {
			return err
		}

		if !f(&book) {
			return nil
		}
		book.UpdatedAt = time.Now()

		data, err := json.Marshal(book)
		if err != nil {
			return err
		}
		return bucket.Put(itob(id), data)
	})
	if err != nil {
		return false, err
	}

	return found, nil
}

// All iterates over the books in key order, or reverse key order. Each step
// runs in its own read transaction so the caller is free to write to the
// database while iterating.
func (r *BookRepository) All(reverse bool) iter.Seq2[bookshelf.Book, error] {
	return func(yield func(bookshelf.Book, error) bool) {
		var last []byte
		for {
			var book bookshelf.Book
			found := false

			err := r.Driver.store.View(func(tx *bolt.Tx) error {
				c := tx.Bucket(bookBucket).Cursor()

				k, data := step(c, last, reverse)
				if k == nil {
					return nil
				}
				found = true
				// k is only valid for the life of the transaction
				last = append(last[:0], k...)

				return json.Unmarshal(data, &book)
			})
			if err != nil {
				yield(bookshelf.Book{}, err)
				return
			}

			if !found || !yield(book, nil) {
				return
			}
		}
	}
}

func (r *BookRepository) ListByStatus(status bookshelf.Status) ([]bookshelf.Book, error) {
	books := make([]bookshelf.Book, 0)

	err := r.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bookBucket)

		c := bucket.Cursor()
		for id, data := c.First(); id != nil; id, data = c.Next() {
			var book bookshelf.Book
			if err := json.Unmarshal(data, &book); err != nil {
				return err
			}

			if book.Status == status {
				books = append(books, book)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return books, nil
}

// step moves c to the key following after, in the requested direction. A nil
// after means starting from the first (or last) key. after may have been
// deleted since the previous step.
func step(c *bolt.Cursor, after []byte, reverse bool) ([]byte, []byte) {
	if after == nil {
		if reverse {
			return c.Last()
		}
		return c.First()
	}

	k, v := c.Seek(after)
	if reverse {
		if k == nil {
			return c.Last()
		}
		return c.Prev()
	}

	if k != nil && bytes.Equal(k, after) {
		return c.Next()
	}
	return k, v
}
