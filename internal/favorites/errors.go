// Package favorites stores each user's saved movies.
package favorites

import "errors"

var (
	// ErrNotFound indicates the favorite doesn't exist for the user.
	ErrNotFound = errors.New("favorite not found")

	// ErrDuplicate indicates the movie is already saved for the user.
	ErrDuplicate = errors.New("favorite already exists")
)
