package inmem

import (
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/bobinette/bookshelf"
)

type UserRepository struct {
	mu    sync.Locker
	users []bookshelf.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		mu:    &sync.Mutex{},
		users: make([]bookshelf.User, 0),
	}
}

func (r *UserRepository) Get(id string) (bookshelf.User, error) {
	return r.find(func(u bookshelf.User) bool { return u.ID == id }), nil
}

func (r *UserRepository) GetByEmail(email string) (bookshelf.User, error) {
	return r.find(func(u bookshelf.User) bool { return sameKey(u.Email, email) }), nil
}

func (r *UserRepository) GetByUsername(username string) (bookshelf.User, error) {
	return r.find(func(u bookshelf.User) bool { return sameKey(u.Username, username) }), nil
}

func (r *UserRepository) find(match func(bookshelf.User) bool) bookshelf.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if match(user) {
			return clone(user)
		}
	}
	return bookshelf.User{}
}

func (r *UserRepository) List() ([]bookshelf.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]bookshelf.User, len(r.users))
	for i, user := range r.users {
		users[i] = clone(user)
	}
	return users, nil
}

func (r *UserRepository) Insert(user *bookshelf.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if sameKey(u.Username, user.Username) {
			return bookshelf.ErrUsernameTaken
		}
		if sameKey(u.Email, user.Email) {
			return bookshelf.ErrEmailTaken
		}
	}

	user.ID = uuid.NewString()
	if user.SavedBooks == nil {
		user.SavedBooks = make([]int, 0)
	}
	r.users = append(r.users, clone(*user))
	return nil
}

func (r *UserRepository) AddSavedBook(userID string, bookID int) (bool, error) {
	return r.update(userID, func(user *bookshelf.User) {
		if !slices.Contains(user.SavedBooks, bookID) {
			user.SavedBooks = append(user.SavedBooks, bookID)
		}
	}), nil
}

func (r *UserRepository) RemoveSavedBook(userID string, bookID int) (bool, error) {
	return r.update(userID, func(user *bookshelf.User) {
		if i := slices.Index(user.SavedBooks, bookID); i != -1 {
			user.SavedBooks = slices.Delete(user.SavedBooks, i, i+1)
		}
	}), nil
}

func (r *UserRepository) SetRole(userID string, role bookshelf.Role) (bool, error) {
	return r.update(userID, func(user *bookshelf.User) {
		user.Role = role
	}), nil
}

func (r *UserRepository) SetPasswordHash(userID string, hash string) (bool, error) {
	return r.update(userID, func(user *bookshelf.User) {
		user.PasswordHash = hash
	}), nil
}

func (r *UserRepository) update(userID string, f func(*bookshelf.User)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID == userID {
			f(&r.users[i])
			return true
		}
	}
	return false
}

// clone copies the saved books so that callers never share the slice with
// the repository.
func clone(user bookshelf.User) bookshelf.User {
	user.SavedBooks = slices.Clone(user.SavedBooks)
	return user
}

func sameKey(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
