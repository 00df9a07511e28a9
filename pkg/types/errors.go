package types

import "errors"

var (
	// ErrUnauthenticated is returned when an authenticated call is
	// attempted with no stored session token. No network call is made.
	ErrUnauthenticated = errors.New("no session token found")

	ErrProjectNotFound    = errors.New("project not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidContributor = errors.New("contribution ledger key is not a valid uuid")
)
