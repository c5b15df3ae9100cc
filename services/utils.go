package services

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/bobinette/bookshelf/errors"
)

// errBookNotFound returns a 404 for when a book could not be found.
func errBookNotFound(id int) error {
	return errors.New(fmt.Sprintf("no book for id %d", id), errors.NotFound())
}

// errUserNotFound returns a 404 for when a user could not be found.
func errUserNotFound(id string) error {
	return errors.New(fmt.Sprintf("no user for id %s", id), errors.NotFound())
}

// errAdminOnly returns a 403 for when an action needs the admin role.
func errAdminOnly(action string) error {
	return errors.New(fmt.Sprintf("access denied: only admins can %s", action), errors.Forbidden())
}

// newValidator reports fields under their json name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validate turns validation failures into a single bad request error.
func validate(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !stderrors.As(err, &fieldErrors) {
		return err
	}

	msgs := make([]string, len(fieldErrors))
	for i, fe := range fieldErrors {
		switch fe.Tag() {
		case "required":
			msgs[i] = fmt.Sprintf("%s is required", fe.Field())
		case "email":
			msgs[i] = fmt.Sprintf("%s must be a valid email", fe.Field())
		case "min":
			msgs[i] = fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
		case "max":
			msgs[i] = fmt.Sprintf("%s must be at most %s characters long", fe.Field(), fe.Param())
		default:
			msgs[i] = fmt.Sprintf("%s is invalid", fe.Field())
		}
	}
	return errors.New(strings.Join(msgs, ", "), errors.BadRequest())
}
