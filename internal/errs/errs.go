// Package errs defines the error kinds exposed by the controllers.
// Controllers wrap one of these sentinels with a message, e.g.
//
//	fmt.Errorf("stars must be between 1 and 5: %w", errs.ErrValidation)
//
// and the boundary maps the kind to a status code with errors.Is.
package errs

import "errors"

var (
	// ErrValidation marks malformed or missing input.
	ErrValidation = errors.New("invalid input")
	// ErrNotFound marks a reference to an id that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden marks a caller that is not the owning user.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict marks a uniqueness violation.
	ErrConflict = errors.New("conflict")
	// ErrUnavailable marks an unexpected storage failure.
	ErrUnavailable = errors.New("unavailable")
)
