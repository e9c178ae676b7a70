package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// row does not exist or lies outside the caller's ownership scope.
// Handlers map this to the 404 page.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails a business
// rule that the form layer did not already catch.
var ErrValidation = errors.New("validation error")

// ErrForbidden is returned when an authenticated user attempts an admin-only
// operation.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidCredentials is returned by authentication for any failure:
// unknown username, wrong password and inactive account look the same.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Registration conflicts. The form package turns these into field messages.
var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrDuplicateEmail    = errors.New("duplicate email")
	ErrPasswordMismatch  = errors.New("password mismatch")
)
