package usecase

import "errors"

var (
	// ErrContactNotFound is returned when no contact matches the given ID
	// within the requesting user's records.
	ErrContactNotFound = errors.New("contact not found")

	// ErrContactEmailExists is returned when the user already has a contact
	// with the same email address.
	ErrContactEmailExists = errors.New("contact email already exists")
)
