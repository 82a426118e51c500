// Package session owns authentication state: account lookup, token
// minting and validation, and session persistence across restarts.
package session

import "errors"

var (
	// ErrNotFound indicates no account exists for the email.
	ErrNotFound = errors.New("account not found")

	// ErrDuplicate indicates an account already exists for the email.
	ErrDuplicate = errors.New("account already exists")

	// ErrInvalidToken indicates a token failed signature or expiry
	// checks. Callers outside this package normally see it folded into
	// a boolean via Manager.CheckAuth.
	ErrInvalidToken = errors.New("invalid token")
)
