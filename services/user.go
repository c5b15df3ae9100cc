package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/bobinette/bookshelf"
	"github.com/bobinette/bookshelf/errors"
	"github.com/bobinette/bookshelf/log"
	"github.com/bobinette/bookshelf/notify"
)

// bcryptCost is lowered in tests.
var bcryptCost = bcrypt.DefaultCost

var errBadCredentials = errors.New("email or password incorrect", errors.BadRequest())

type Registration struct {
	Username string `json:"username" validate:"required,min=2,max=20"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenEncodeDecoder signs the password reset tokens.
type TokenEncodeDecoder interface {
	Encode(userID string) (string, error)
	Decode(token string) (string, error)
}

type UserService struct {
	repository bookshelf.UserRepository

	tokens   TokenEncodeDecoder
	notifier notify.Notifier

	validate *validator.Validate
	logger   log.Logger
}

func NewUserService(
	repo bookshelf.UserRepository,
	tokens TokenEncodeDecoder,
	notifier notify.Notifier,
	logger log.Logger,
) *UserService {
	return &UserService{
		repository: repo,

		tokens:   tokens,
		notifier: notifier,

		validate: newValidator(),
		logger:   logger,
	}
}

func (s *UserService) Register(r Registration) (bookshelf.User, error) {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	if err := validate(s.validate, r); err != nil {
		return bookshelf.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(r.Password), bcryptCost)
	if err != nil {
		return bookshelf.User{}, err
	}

	user := bookshelf.User{
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: string(hash),
		Role:         bookshelf.RoleUser,
		SavedBooks:   make([]int, 0),
	}
	if err := s.repository.Insert(&user); err != nil {
		return bookshelf.User{}, err
	}

	s.logger.Printf("user %s registered as %s", user.ID, user.Username)
	return user, nil
}

// Authenticate checks the credentials of a user and returns who they act as.
func (s *UserService) Authenticate(email, password string) (bookshelf.Actor, error) {
	user, err := s.repository.GetByEmail(email)
	if err != nil {
		return bookshelf.Actor{}, err
	} else if user.ID == "" {
		return bookshelf.Actor{}, errBadCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return bookshelf.Actor{}, errBadCredentials
	}

	return user.Actor(), nil
}

func (s *UserService) Get(id string) (bookshelf.User, error) {
	user, err := s.repository.Get(id)
	if err != nil {
		return bookshelf.User{}, err
	} else if user.ID == "" {
		return bookshelf.User{}, errUserNotFound(id)
	}

	return user, nil
}

func (s *UserService) List() ([]bookshelf.User, error) {
	return s.repository.List()
}

// Promote gives the admin role to the user with that email.
func (s *UserService) Promote(email string) error {
	user, err := s.getByEmail(email)
	if err != nil {
		return err
	}

	if _, err := s.repository.SetRole(user.ID, bookshelf.RoleAdmin); err != nil {
		return err
	}

	s.logger.Printf("user %s is now an admin", user.ID)
	return nil
}

func (s *UserService) getByEmail(email string) (bookshelf.User, error) {
	user, err := s.repository.GetByEmail(email)
	if err != nil {
		return bookshelf.User{}, err
	} else if user.ID == "" {
		return bookshelf.User{}, errors.New(fmt.Sprintf("no user for email %s", email), errors.NotFound())
	}

	return user, nil
}

// RequestPasswordReset sends a reset token to the user with that email.
// Unknown emails are ignored so that accounts cannot be probed.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.repository.GetByEmail(email)
	if err != nil {
		return err
	} else if user.ID == "" {
		s.logger.Debugf("password reset asked for unknown email %s", email)
		return nil
	}

	token, err := s.tokens.Encode(user.ID)
	if err != nil {
		return err
	}

	msg := notify.Message{
		To:      []string{user.Email},
		Subject: "Password Reset Request",
		Body: fmt.Sprintf(
			"Hello %s,\n\nUse the following token to reset your password, it expires in 30 minutes:\n\n%s\n\n"+
				"If you did not ask for a password reset, ignore this email.\n",
			user.Username, token,
		),
	}
	return s.notifier.Notify(ctx, msg)
}

func (s *UserService) ResetPassword(token, password string) error {
	if password == "" {
		return errors.New("password is required", errors.BadRequest())
	}

	userID, err := s.tokens.Decode(token)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	found, err := s.repository.SetPasswordHash(userID, string(hash))
	if err != nil {
		return err
	} else if !found {
		return errUserNotFound(userID)
	}

	s.logger.Printf("password of user %s reset", userID)
	return nil
}
