package services

import (
	"context"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/bookshelf"
	"github.com/bobinette/bookshelf/errors"
	"github.com/bobinette/bookshelf/inmem"
	"github.com/bobinette/bookshelf/log"
	"github.com/bobinette/bookshelf/summarize"
)

const longText = "Paul Atreides follows his family to the desert planet Arrakis, the only source of spice."

var (
	admin = bookshelf.Actor{ID: "admin", Role: bookshelf.RoleAdmin}
	alice = bookshelf.Actor{ID: "alice", Role: bookshelf.RoleUser}
)

type fakeSummarizer struct {
	summary string
	calls   int
}

func (*fakeSummarizer) Available() bool { return true }

func (s *fakeSummarizer) Summarize(context.Context, string) (string, error) {
	s.calls++
	return s.summary, nil
}

type catalogFixture struct {
	service    *CatalogService
	books      *inmem.BookRepository
	users      *inmem.UserRepository
	summarizer *fakeSummarizer
}

func createCatalog(t *testing.T) catalogFixture {
	books := inmem.NewBookRepository()
	users := inmem.NewUserRepository()
	summarizer := &fakeSummarizer{summary: "A boy on a desert planet."}

	service := NewCatalogService(books, users, summarize.NewService(summarizer, log.Discard()), log.Discard())
	return catalogFixture{
		service:    service,
		books:      books,
		users:      users,
		summarizer: summarizer,
	}
}

func submit(t *testing.T, service *CatalogService, sub Submission) int {
	id, err := service.Submit(sub, alice.ID)
	require.NoError(t, err, "submitting %q should not fail", sub.Title)
	return id
}

func approved(t *testing.T, service *CatalogService, sub Submission) int {
	id := submit(t, service, sub)
	require.NoError(t, service.Approve(admin, id))
	return id
}

func insertUser(t *testing.T, users *inmem.UserRepository, username string) bookshelf.User {
	user := bookshelf.User{Username: username, Email: username + "@example.com", Role: bookshelf.RoleUser}
	require.NoError(t, users.Insert(&user))
	return user
}

func TestCatalogService_CanModerate(t *testing.T) {
	f := createCatalog(t)

	assert.True(t, f.service.CanModerate(admin))
	assert.False(t, f.service.CanModerate(alice))
	assert.False(t, f.service.CanModerate(bookshelf.Actor{}))
}

func TestCatalogService_Submit(t *testing.T) {
	f := createCatalog(t)

	id := submit(t, f.service, Submission{
		Title:       "  Dune ",
		Author:      "Frank Herbert",
		Genre:       "Sci-Fi",
		Description: "desert planet",
		Content:     longText,
	})

	book, err := f.service.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, bookshelf.StatusPending, book.Status)
	assert.Equal(t, bookshelf.DefaultSummary, book.Summary)
	assert.Equal(t, alice.ID, book.OwnerID)
	assert.Equal(t, longText, book.Content)

	other := submit(t, f.service, Submission{Title: "Dune", Author: "Frank Herbert"})
	assert.NotEqual(t, id, other, "every submission creates a new book")
}

func TestCatalogService_Submit_Genre(t *testing.T) {
	f := createCatalog(t)

	tts := map[string]struct {
		genre    string
		custom   string
		expected string
	}{
		"listed genre":              {genre: "Fantasy", custom: "ignored", expected: "Fantasy"},
		"other with a custom genre": {genre: bookshelf.GenreOther, custom: " Cyberpunk ", expected: "Cyberpunk"},
		"other without custom":      {genre: bookshelf.GenreOther, expected: bookshelf.GenreOther},
	}

	for name, tt := range tts {
		id := submit(t, f.service, Submission{Title: name, Author: "someone", Genre: tt.genre, CustomGenre: tt.custom})
		book, err := f.service.Get(id)
		require.NoError(t, err, name)
		assert.Equal(t, tt.expected, book.Genre, name)
	}
}

func TestCatalogService_Submit_Link(t *testing.T) {
	f := createCatalog(t)

	id := submit(t, f.service, Submission{Title: "Linked", Author: "someone", File: "https://example.com/book.pdf"})
	book, err := f.service.Get(id)
	require.NoError(t, err)
	assert.Equal(t, bookshelf.ContentUnavailable, book.Content)
	assert.False(t, book.HasContent())
}

func TestCatalogService_Submit_Invalid(t *testing.T) {
	f := createCatalog(t)

	tts := map[string]struct {
		sub   Submission
		owner string
	}{
		"no title":     {sub: Submission{Author: "someone"}, owner: alice.ID},
		"blank title":  {sub: Submission{Title: "   ", Author: "someone"}, owner: alice.ID},
		"no author":    {sub: Submission{Title: "Dune"}, owner: alice.ID},
		"no owner":     {sub: Submission{Title: "Dune", Author: "someone"}},
		"missing all":  {sub: Submission{}},
		"blank author": {sub: Submission{Title: "Dune", Author: "\t"}, owner: alice.ID},
		"blank owner":  {sub: Submission{Title: "Dune", Author: "someone"}, owner: " "},
	}

	for name, tt := range tts {
		_, err := f.service.Submit(tt.sub, tt.owner)
		errors.AssertCode(t, err, errors.CodeValidation, name)
	}

	books, err := f.books.ListByStatus(bookshelf.StatusPending)
	require.NoError(t, err)
	assert.Empty(t, books, "invalid submissions should not be stored")
}

func TestCatalogService_Approve(t *testing.T) {
	f := createCatalog(t)
	id := submit(t, f.service, Submission{Title: "Dune", Author: "Frank Herbert"})

	err := f.service.Approve(alice, id)
	errors.AssertCode(t, err, errors.CodePermission)
	book, err := f.service.Get(id)
	require.NoError(t, err)
	assert.Equal(t, bookshelf.StatusPending, book.Status, "a refused approval should not change the book")

	require.NoError(t, f.service.Approve(admin, id))
	book, err = f.service.Get(id)
	require.NoError(t, err)
	assert.Equal(t, bookshelf.StatusApproved, book.Status)

	require.NoError(t, f.service.Approve(admin, id), "approving twice should be a no-op")

	err = f.service.Approve(admin, 42)
	errors.AssertCode(t, err, errors.CodeNotFound)
}

func TestCatalogService_RejectDelete(t *testing.T) {
	f := createCatalog(t)

	for name, remove := range map[string]func(bookshelf.Actor, int) error{
		"reject": f.service.Reject,
		"delete": f.service.Delete,
	} {
		id := submit(t, f.service, Submission{Title: name, Author: "someone"})

		err := remove(alice, id)
		errors.AssertCode(t, err, errors.CodePermission, name)
		_, err = f.service.Get(id)
		require.NoError(t, err, "%s: a refused removal should keep the book", name)

		require.NoError(t, remove(admin, id), name)
		_, err = f.service.Get(id)
		errors.AssertCode(t, err, errors.CodeNotFound, name)

		assert.NoError(t, remove(admin, id), "%s: removing a missing book is a no-op", name)
	}
}

func TestCatalogService_Pending(t *testing.T) {
	f := createCatalog(t)

	first := submit(t, f.service, Submission{Title: "First", Author: "someone"})
	approved(t, f.service, Submission{Title: "Approved", Author: "someone"})
	third := submit(t, f.service, Submission{Title: "Third", Author: "someone"})

	_, err := f.service.Pending(alice)
	errors.AssertCode(t, err, errors.CodePermission)

	books, err := f.service.Pending(admin)
	require.NoError(t, err)
	assert.Equal(t, []int{first, third}, bookIDs(books))
}

func TestCatalogService_Search(t *testing.T) {
	f := createCatalog(t)

	dune := approved(t, f.service, Submission{Title: "Dune", Author: "Frank Herbert", Genre: "Sci-Fi"})
	submit(t, f.service, Submission{Title: "Dune Messiah", Author: "Frank Herbert", Genre: "Sci-Fi"})
	emma := approved(t, f.service, Submission{Title: "Emma", Author: "Jane Austen", Genre: "Romance"})
	hyperion := approved(t, f.service, Submission{Title: "Hyperion", Author: "Dan Simmons", Genre: "Sci-Fi"})

	tts := map[string]struct {
		q        string
		expected []int
	}{
		"everything, newest first": {q: "", expected: []int{hyperion, emma, dune}},
		"title":                    {q: "dune", expected: []int{dune}},
		"author, any case":         {q: "AUSTEN", expected: []int{emma}},
		"genre":                    {q: "sci-fi", expected: []int{hyperion, dune}},
		"trimmed":                  {q: "  emma ", expected: []int{emma}},
		"no match":                 {q: "cooking", expected: []int{}},
	}

	for name, tt := range tts {
		books, err := collect(f.service.Search(tt.q))
		require.NoError(t, err, name)
		assert.Equal(t, tt.expected, bookIDs(books), name)
	}
}

func TestCatalogService_Search_Restartable(t *testing.T) {
	f := createCatalog(t)

	for _, title := range []string{"One", "Two", "Three"} {
		approved(t, f.service, Submission{Title: title, Author: "someone"})
	}

	seq := f.service.Search("")

	count := 0
	for _, err := range seq {
		require.NoError(t, err)
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count, "breaking early should stop the search")

	books, err := collect(seq)
	require.NoError(t, err)
	assert.Len(t, books, 3, "ranging again should run the search again")

	approved(t, f.service, Submission{Title: "Four", Author: "someone"})
	books, err = collect(seq)
	require.NoError(t, err)
	assert.Len(t, books, 4, "a new search should see new books")
}

func TestCatalogService_SaveRemove(t *testing.T) {
	f := createCatalog(t)
	user := insertUser(t, f.users, "alice")
	id := approved(t, f.service, Submission{Title: "Dune", Author: "Frank Herbert"})

	require.NoError(t, f.service.Save(user.ID, id))
	require.NoError(t, f.service.Save(user.ID, id), "saving twice should be a no-op")

	stored, err := f.users.Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{id}, stored.SavedBooks)

	require.NoError(t, f.service.Remove(user.ID, id))
	require.NoError(t, f.service.Remove(user.ID, id), "removing twice should be a no-op")

	stored, err = f.users.Get(user.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.SavedBooks)

	errors.AssertCode(t, f.service.Save(user.ID, 42), errors.CodeNotFound, "unknown book")
	errors.AssertCode(t, f.service.Save("nobody", id), errors.CodeNotFound, "unknown user")
	errors.AssertCode(t, f.service.Remove("nobody", id), errors.CodeNotFound, "unknown user")
}

func TestCatalogService_GenerateSummary(t *testing.T) {
	f := createCatalog(t)
	id := approved(t, f.service, Submission{Title: "Dune", Author: "Frank Herbert", Content: longText})

	summary, err := f.service.GenerateSummary(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "A boy on a desert planet.", summary)

	book, err := f.service.Get(id)
	require.NoError(t, err)
	assert.Equal(t, summary, book.Summary)

	f.summarizer.summary = "Spice and sand."
	summary, err = f.service.GenerateSummary(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Spice and sand.", summary, "a new summary replaces the previous one")

	_, err = f.service.GenerateSummary(context.Background(), 42)
	errors.AssertCode(t, err, errors.CodeNotFound)
}

func TestCatalogService_GenerateSummary_Unsupported(t *testing.T) {
	f := createCatalog(t)

	linked := submit(t, f.service, Submission{Title: "Linked", Author: "someone"})
	short := submit(t, f.service, Submission{Title: "Short", Author: "someone", Content: "Too short."})

	for name, id := range map[string]int{"linked": linked, "short": short} {
		_, err := f.service.GenerateSummary(context.Background(), id)
		errors.AssertCode(t, err, errors.CodeUnsupported, name)

		book, err := f.service.Get(id)
		require.NoError(t, err, name)
		assert.Equal(t, bookshelf.DefaultSummary, book.Summary, "%s: the summary should not change", name)
	}
	assert.Equal(t, 0, f.summarizer.calls, "the summarizer should not be called")
}

func TestCatalogService_GenerateSummary_Unavailable(t *testing.T) {
	books := inmem.NewBookRepository()
	service := NewCatalogService(books, inmem.NewUserRepository(), summarize.NewService(nil, log.Discard()), log.Discard())

	id, err := service.Submit(Submission{Title: "Dune", Author: "Frank Herbert", Content: longText}, alice.ID)
	require.NoError(t, err)

	summary, err := service.GenerateSummary(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, summarize.MessageUnavailable, summary)
}

func collect(seq iter.Seq2[bookshelf.Book, error]) ([]bookshelf.Book, error) {
	books := make([]bookshelf.Book, 0)
	for book, err := range seq {
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, nil
}

func bookIDs(books []bookshelf.Book) []int {
	ids := make([]int, len(books))
	for i, book := range books {
		ids[i] = book.ID
	}
	return ids
}
