package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrArtistNotFound       = errors.New("artist not found")
	ErrRequestNotFound      = errors.New("booking request not found")
	ErrOfferNotFound        = errors.New("offer not found")
	ErrAdminOfferNotFound   = errors.New("admin offer not found")
	ErrAvailabilityNotFound = errors.New("availability not found")
	ErrAvailabilityExists   = errors.New("availability already exists")
	ErrDisciplineNotFound   = errors.New("discipline not found")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidInput         = errors.New("invalid input")
	ErrRateLimited          = errors.New("rate limit exceeded")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInternalServerError  = errors.New("internal server error")
)

// ValidationError describes a rejected input field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is lets errors.Is(err, ErrInvalidInput) match every validation error.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
