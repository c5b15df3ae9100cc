package bolt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/bookshelf"
	"github.com/bobinette/bookshelf/testutil"
)

func TestBookRepository(t *testing.T) {
	driver, f := createDriver(t)
	defer f()

	testutil.TestBookRepository(t, &BookRepository{Driver: driver})
}

func TestBookRepository_InsertIgnoresID(t *testing.T) {
	driver, f := createDriver(t)
	defer f()
	repo := BookRepository{Driver: driver}

	first := bookshelf.Book{Title: "First"}
	require.NoError(t, repo.Insert(&first))

	// Retrying a submission creates another record
	second := first
	require.NoError(t, repo.Insert(&second))
	assert.NotEqual(t, first.ID, second.ID, "insert should always create a new book")

	books, err := repo.Get(first.ID, second.ID)
	require.NoError(t, err)
	assert.Len(t, books, 2)
}

func TestBookRepository_ReverseAfterDeletingLast(t *testing.T) {
	driver, f := createDriver(t)
	defer f()
	repo := BookRepository{Driver: driver}

	books := []*bookshelf.Book{{Title: "1"}, {Title: "2"}, {Title: "3"}}
	for _, book := range books {
		require.NoError(t, repo.Insert(book))
	}

	var titles []string
	for book, err := range repo.All(true) {
		require.NoError(t, err)
		titles = append(titles, book.Title)
		if book.Title == "3" {
			// The cursor must recover from the key it stands on disappearing
			require.NoError(t, repo.Delete(book.ID))
		}
	}
	assert.Equal(t, []string{"3", "2", "1"}, titles)
}
