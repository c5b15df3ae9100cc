package bookshelf

import (
	"github.com/bobinette/bookshelf/errors"
)

// Returned by UserRepository.Insert. Compare with ==.
var (
	ErrUsernameTaken = errors.New("that username is taken, please choose a different one", errors.BadRequest())
	ErrEmailTaken    = errors.New("that email is already registered", errors.BadRequest())
)
