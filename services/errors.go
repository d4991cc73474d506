// Package services holds the session-authenticated CRUD core: credential
// storage, authentication, admin elevation and post storage. Handlers stay
// thin; every outcome is one of the sentinel errors below or a wrapped
// ErrStorage for unexpected persistence failures.
package services

import "errors"

var (
	// ErrInvalidInput signals a missing required field.
	ErrInvalidInput = errors.New("username and password are required")
	// ErrDuplicateUsername signals a username uniqueness violation.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrUserNotFound signals that no user matched the given username.
	// Reported distinctly from ErrInvalidPassword, matching the upstream
	// behavior; the username enumeration this enables is part of the
	// vulnerable surface this app demonstrates.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidPassword signals a bcrypt verification failure.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrInvalidSecret signals an admin-elevation secret mismatch.
	ErrInvalidSecret = errors.New("invalid admin secret")
	// ErrNotAdmin signals that the elevation target lacks the admin flag.
	ErrNotAdmin = errors.New("not an admin or invalid username")
	// ErrStorage wraps unexpected persistence failures.
	ErrStorage = errors.New("storage failure")
)
