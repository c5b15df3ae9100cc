package bolt

import (
	"encoding/json"
	"strings"

	"github.com/boltdb/bolt"
	"github.com/google/uuid"

	"github.com/bobinette/bookshelf"
)

var (
	userBucket = []byte("users")

	// Unique indices, lower cased value -> user id
	usernameBucket = []byte("usernames")
	emailBucket    = []byte("emails")
)

type UserRepository struct {
	Driver *Driver
}

func (r *UserRepository) Get(id string) (bookshelf.User, error) {
	var user bookshelf.User
	err := r.Driver.store.View(func(tx *bolt.Tx) error {
		return getUser(tx, []byte(id), &user)
	})
	if err != nil {
		return bookshelf.User{}, err
	}

	return user, nil
}

func (r *UserRepository) GetByEmail(email string) (bookshelf.User, error) {
	return r.getByIndex(emailBucket, email)
}

func (r *UserRepository) GetByUsername(username string) (bookshelf.User, error) {
	return r.getByIndex(usernameBucket, username)
}

func (r *UserRepository) getByIndex(index []byte, value string) (bookshelf.User, error) {
	var user bookshelf.User
	err := r.Driver.store.View(func(tx *bolt.Tx) error {
		id := tx.Bucket(index).Get(indexKey(value))
		if id == nil {
			return nil
		}

		return getUser(tx, id, &user)
	})
	if err != nil {
		return bookshelf.User{}, err
	}

	return user, nil
}

func (r *UserRepository) List() ([]bookshelf.User, error) {
	users := make([]bookshelf.User, 0)

	err := r.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(userBucket)

		c := bucket.Cursor()
		for id, data := c.First(); id != nil; id, data = c.Next() {
			var user bookshelf.User
			if err := json.Unmarshal(data, &user); err != nil {
				return err
			}
			users = append(users, user)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

// Insert stores a new user with a fresh id. The username and email indices
// are checked and written in the same transaction.
func (r *UserRepository) Insert(user *bookshelf.User) error {
	return r.Driver.store.Update(func(tx *bolt.Tx) error {
		usernames := tx.Bucket(usernameBucket)
		emails := tx.Bucket(emailBucket)

		if usernames.Get(indexKey(user.Username)) != nil {
			return bookshelf.ErrUsernameTaken
		}
		if emails.Get(indexKey(user.Email)) != nil {
			return bookshelf.ErrEmailTaken
		}

		user.ID = uuid.NewString()
		if user.SavedBooks == nil {
			user.SavedBooks = make([]int, 0)
		}

		data, err := json.Marshal(user)
		if err != nil {
			return err
		}

		id := []byte(user.ID)
		if err := tx.Bucket(userBucket).Put(id, data); err != nil {
			return err
		}
		if err := usernames.Put(indexKey(user.Username), id); err != nil {
			return err
		}
		return emails.Put(indexKey(user.Email), id)
	})
}

func (r *UserRepository) AddSavedBook(userID string, bookID int) (bool, error) {
	return r.update(userID, func(user *bookshelf.User) bool {
		for _, id := range user.SavedBooks {
			if id == bookID {
				return false
			}
		}
		user.SavedBooks = append(user.SavedBooks, bookID)
		return true
	})
}

func (r *UserRepository) RemoveSavedBook(userID string, bookID int) (bool, error) {
	return r.update(userID, func(user *bookshelf.User) bool {
		for i, id := range user.SavedBooks {
			if id == bookID {
				user.SavedBooks = append(user.SavedBooks[:i], user.SavedBooks[i+1:]...)
				return true
			}
		}
		return false
	})
}

func (r *UserRepository) SetRole(userID string, role bookshelf.Role) (bool, error) {
	return r.update(userID, func(user *bookshelf.User) bool {
		user.Role = role
		return true
	})
}

func (r *UserRepository) SetPasswordHash(userID string, hash string) (bool, error) {
	return r.update(userID, func(user *bookshelf.User) bool {
		user.PasswordHash = hash
		return true
	})
}

func (r *UserRepository) update(userID string, f func(*bookshelf.User) bool) (bool, error) {
	found := false
	err := r.Driver.store.Update(func(tx *bolt.Tx) error {
		var user bookshelf.User
		if err := getUser(tx, []byte(userID), &user); err != nil {
			return err
		} else if user.ID == "" {
			return nil
		}
		found = true

		if !f(&user) {
			return nil
		}

		data, err := json.Marshal(user)
		if err != nil {
			return err
		}
		return tx.Bucket(userBucket).Put([]byte(userID), data)
	})
	if err != nil {
		return false, err
	}

	return found, nil
}

// getUser leaves user untouched when there is no user for id.
func getUser(tx *bolt.Tx, id []byte, user *bookshelf.User) error {
	data := tx.Bucket(userBucket).Get(id)
	if data == nil {
		return nil
	}

	return json.Unmarshal(data, user)
}

func indexKey(value string) []byte {
	return []byte(strings.ToLower(strings.TrimSpace(value)))
}
