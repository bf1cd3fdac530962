package services

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password, so
	// callers cannot tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken is returned when registering with an email that is
	// already in use.
	ErrEmailTaken = errors.New("email already registered")

	// ErrEmailRequired is returned when registering without an email.
	ErrEmailRequired = errors.New("email is required")

	// ErrInvalidReference is returned when a payload names tag or
	// ingredient IDs that do not exist.
	ErrInvalidReference = errors.New("referenced entity does not exist")
)
