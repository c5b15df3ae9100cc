package services

import (
	"github.com/bobinette/bookshelf"
	"github.com/bobinette/bookshelf/log"
	"github.com/bobinette/bookshelf/recommend"
)

// Library is the reading list of a user along with the books recommended
// from it.
type Library struct {
	Books           []bookshelf.Book `json:"books"`
	Recommendations []bookshelf.Book `json:"recommendations"`

	// Path tells whether the recommendations come from text similarity or
	// from the catalog order.
	Path recommend.Path `json:"path"`
}

type LibraryService struct {
	books bookshelf.BookRepository
	users bookshelf.UserRepository

	engine *recommend.Engine
	k      int

	logger log.Logger
}

func NewLibraryService(
	books bookshelf.BookRepository,
	users bookshelf.UserRepository,
	engine *recommend.Engine,
	k int,
	logger log.Logger,
) *LibraryService {
	return &LibraryService{
		books: books,
		users: users,

		engine: engine,
		k:      k,

		logger: logger,
	}
}

// Library resolves the saved books of a user. Saved ids of deleted books are
// skipped.
func (s *LibraryService) Library(userID string) (Library, error) {
	user, err := s.users.Get(userID)
	if err != nil {
		return Library{}, err
	} else if user.ID == "" {
		return Library{}, errUserNotFound(userID)
	}

	saved, err := s.books.Get(user.SavedBooks...)
	if err != nil {
		return Library{}, err
	}
	if missing := len(user.SavedBooks) - len(saved); missing > 0 {
		s.logger.Debugf("user %s has %d saved books that no longer exist", userID, missing)
	}

	approved, err := s.books.ListByStatus(bookshelf.StatusApproved)
	if err != nil {
		return Library{}, err
	}

	recommendations, path := s.engine.Recommend(saved, approved, s.k)
	s.logger.WithField("path", path).Debugf("%d recommendations for user %s", len(recommendations), userID)

	return Library{
		Books:           saved,
		Recommendations: recommendations,
		Path:            path,
	}, nil
}
