package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/bookshelf"
)

// TestBookRepository runs the behaviour every book repository must share.
// repo must be empty.
func TestBookRepository(t *testing.T, repo bookshelf.BookRepository) {
	books := []*bookshelf.Book{
		{Title: "Dune", Author: "Frank Herbert", Genre: "Sci-Fi", Status: bookshelf.StatusApproved},
		{Title: "Emma", Author: "Jane Austen", Genre: "Romance", Status: bookshelf.StatusPending},
		{Title: "Hyperion", Author: "Dan Simmons", Genre: "Sci-Fi", Status: bookshelf.StatusApproved},
	}

	testInsertBooks(t, repo, books)

	retrieved, err := repo.Get(books[0].ID, books[2].ID, books[2].ID+100)
	require.NoError(t, err, "get should not fail")
	require.Len(t, retrieved, 2, "unknown ids should be skipped")
	assertBook(t, *books[0], retrieved[0], "get")
	assertBook(t, *books[2], retrieved[1], "get")

	// Iteration order
	assertOrder(t, repo, false, []int{books[0].ID, books[1].ID, books[2].ID}, "all")
	assertOrder(t, repo, true, []int{books[2].ID, books[1].ID, books[0].ID}, "all reversed")

	// Early break
	n := 0
	for _, err := range repo.All(true) {
		require.NoError(t, err)
		n++
		break
	}
	assert.Equal(t, 1, n, "breaking should stop the iteration")

	// Status
	pending, err := repo.ListByStatus(bookshelf.StatusPending)
	require.NoError(t, err, "list by status should not fail")
	if assert.Len(t, pending, 1) {
		assert.Equal(t, books[1].ID, pending[0].ID)
	}

	found, err := repo.SetStatus(books[1].ID, bookshelf.StatusApproved)
	require.NoError(t, err, "set status should not fail")
	assert.True(t, found, "set status should find the book")

	pending, err = repo.ListByStatus(bookshelf.StatusPending)
	require.NoError(t, err)
	assert.Empty(t, pending, "no book should be pending anymore")

	found, err = repo.SetStatus(books[1].ID+100, bookshelf.StatusApproved)
	require.NoError(t, err, "set status on an unknown id should not fail")
	assert.False(t, found, "set status should not find an unknown book")

	// Summary
	found, err = repo.SetSummary(books[0].ID, "A desert planet.")
	require.NoError(t, err, "set summary should not fail")
	assert.True(t, found)

	retrieved, err = repo.Get(books[0].ID)
	require.NoError(t, err)
	require.Len(t, retrieved, 1)
	assert.Equal(t, "A desert planet.", retrieved[0].Summary)

	// Delete, twice
	for i := 0; i < 2; i++ {
		require.NoError(t, repo.Delete(books[1].ID), "delete %d should not fail", i)
	}
	retrieved, err = repo.Get(books[1].ID)
	require.NoError(t, err)
	assert.Empty(t, retrieved, "deleted book should not be retrieved")
	assertOrder(t, repo, true, []int{books[2].ID, books[0].ID}, "all after delete")

	// Deleting while iterating
	var seen []int
	for book, err := range repo.All(false) {
		require.NoError(t, err)
		seen = append(seen, book.ID)
		if book.ID == books[0].ID {
			require.NoError(t, repo.Delete(books[2].ID))
		}
	}
	assert.Equal(t, []int{books[0].ID}, seen, "books deleted during iteration should be skipped")
}

func testInsertBooks(t *testing.T, repo bookshelf.BookRepository, books []*bookshelf.Book) {
	for i, book := range books {
		err := repo.Insert(book)
		require.NoError(t, err, "insert %s must not fail", book.Title)
		require.NotEqual(t, 0, book.ID, "id must be set by insert")
		require.False(t, book.CreatedAt.IsZero(), "created at must be set by insert")
		if i > 0 {
			require.Greater(t, book.ID, books[i-1].ID, "ids must follow the creation order")
		}
	}
}

func assertOrder(t *testing.T, repo bookshelf.BookRepository, reverse bool, expected []int, name string) {
	ids := make([]int, 0, len(expected))
	for book, err := range repo.All(reverse) {
		require.NoError(t, err, "%s - iteration should not fail", name)
		ids = append(ids, book.ID)
	}
	assert.Equal(t, expected, ids, "%s - incorrect order", name)
}

func assertBook(t *testing.T, expected, actual bookshelf.Book, name string) {
	assert.Equal(t, expected.ID, actual.ID, "%s - ids should be equal", name)
	assert.Equal(t, expected.Title, actual.Title, "%s - titles should be equal", name)
	assert.Equal(t, expected.Author, actual.Author, "%s - authors should be equal", name)
	assert.Equal(t, expected.Genre, actual.Genre, "%s - genres should be equal", name)
	assert.Equal(t, expected.Status, actual.Status, "%s - statuses should be equal", name)
}
