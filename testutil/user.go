package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/bookshelf"
)

// TestUserRepository runs the behaviour every user repository must share.
// repo must be empty.
func TestUserRepository(t *testing.T, repo bookshelf.UserRepository) {
	users := []*bookshelf.User{
		{Username: "pizza", Email: "pizza@bookshelf.io", PasswordHash: "hash", Role: bookshelf.RoleAdmin},
		{Username: "yolo", Email: "yolo@bookshelf.io", PasswordHash: "hash", Role: bookshelf.RoleUser},
	}

	for _, user := range users {
		require.NoError(t, repo.Insert(user), "insert %s must not fail", user.Username)
		require.NotEmpty(t, user.ID, "id must be set by insert")
	}
	require.NotEqual(t, users[0].ID, users[1].ID, "all ids must be different")

	// Uniqueness
	err := repo.Insert(&bookshelf.User{Username: "Pizza", Email: "other@bookshelf.io"})
	assert.Equal(t, bookshelf.ErrUsernameTaken, err, "usernames are unique")
	err = repo.Insert(&bookshelf.User{Username: "other", Email: "YOLO@bookshelf.io"})
	assert.Equal(t, bookshelf.ErrEmailTaken, err, "emails are unique")

	// Lookups
	user, err := repo.Get(users[1].ID)
	require.NoError(t, err)
	assertUser(t, *users[1], user, "get")

	user, err = repo.GetByEmail("pizza@bookshelf.io")
	require.NoError(t, err)
	assertUser(t, *users[0], user, "get by email")

	user, err = repo.GetByUsername("yolo")
	require.NoError(t, err)
	assertUser(t, *users[1], user, "get by username")

	user, err = repo.Get("unknown")
	require.NoError(t, err, "unknown id should not fail")
	assert.Empty(t, user.ID, "unknown id should give a zero user")

	all, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Saved books: set semantics
	for _, bookID := range []int{1, 2, 2, 3} {
		found, err := repo.AddSavedBook(users[1].ID, bookID)
		require.NoError(t, err)
		assert.True(t, found)
	}
	user, err = repo.Get(users[1].ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 2, 3}, user.SavedBooks, "saved books should be deduplicated")

	for _, bookID := range []int{2, 2, 10} {
		found, err := repo.RemoveSavedBook(users[1].ID, bookID)
		require.NoError(t, err)
		assert.True(t, found)
	}
	user, err = repo.Get(users[1].ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 3}, user.SavedBooks)

	found, err := repo.AddSavedBook("unknown", 1)
	require.NoError(t, err)
	assert.False(t, found, "unknown user should not be found")

	// Role and password
	found, err = repo.SetRole(users[1].ID, bookshelf.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, found)
	found, err = repo.SetPasswordHash(users[1].ID, "new hash")
	require.NoError(t, err)
	assert.True(t, found)

	user, err = repo.Get(users[1].ID)
	require.NoError(t, err)
	assert.Equal(t, bookshelf.RoleAdmin, user.Role)
	assert.Equal(t, "new hash", user.PasswordHash)
	assert.ElementsMatch(t, []int{1, 3}, user.SavedBooks, "updates should keep the saved books")
}

func assertUser(t *testing.T, expected, actual bookshelf.User, name string) {
	assert.Equal(t, expected.ID, actual.ID, "%s - ids should be equal", name)
	assert.Equal(t, expected.Username, actual.Username, "%s - usernames should be equal", name)
	assert.Equal(t, expected.Email, actual.Email, "%s - emails should be equal", name)
	assert.Equal(t, expected.Role, actual.Role, "%s - roles should be equal", name)
	assert.ElementsMatch(t, expected.SavedBooks, actual.SavedBooks, "%s - saved books should be equal", name)
}
