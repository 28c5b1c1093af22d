package service

import "errors"

// ErrDuplicateEmail is returned by Register when the email is already
// taken by an existing identity.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrInvalidCredentials is returned by Login for both an unknown email
// and a wrong password. The message is deliberately identical in both
// cases so callers cannot enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrNotFound is returned when an owner-scoped row does not exist for
// the calling user.
var ErrNotFound = errors.New("not found")

// ValidationError reports malformed or missing input. It is always
// raised before any store call is made.
type ValidationError struct {
	// Message describes what was wrong with the input.
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
