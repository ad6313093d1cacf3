package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrMissingCredentials = errors.New("missing email or password")
	ErrInvalidRole        = errors.New("role must be researcher or enthusiast")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyWatched     = errors.New("already in watchlist")
	ErrNotWatched         = errors.New("item not in watchlist")
	ErrAlertNotFound      = errors.New("alert not found")
	ErrInvalidInput       = errors.New("invalid input")
)

// ValidationError lists the fields that failed validation. It matches
// ErrInvalidInput under errors.Is.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// MissingOnly reports whether every problem is an absent required field.
func (e *ValidationError) MissingOnly() bool {
	for _, p := range e.Problems {
		if !strings.HasSuffix(p, " is required") {
			return false
		}
	}
	return true
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			problems = append(problems, fe.Field()+" is required")
		case "oneof":
			problems = append(problems, fe.Field()+" must be one of "+fe.Param())
		default:
			problems = append(problems, fe.Field()+" is invalid")
		}
	}
	return &ValidationError{Problems: problems}
}
