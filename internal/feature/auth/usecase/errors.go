package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUsernameAlreadyExists is returned when attempting to create a user with a username that already exists.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrInvalidCredentials is returned on login when the email is unknown or the
	// password does not match. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthenticated is returned when a presented bearer token cannot be
	// resolved to a user, regardless of the underlying cause.
	ErrUnauthenticated = errors.New("could not validate credentials")

	// ErrAvatarStorageUnavailable is returned when avatar uploads are requested
	// but no object storage is configured.
	ErrAvatarStorageUnavailable = errors.New("avatar storage is not configured")
)
