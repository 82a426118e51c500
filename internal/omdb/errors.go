package omdb

import "errors"

var (
	// ErrNotFound indicates OMDB has no record for the query.
	ErrNotFound = errors.New("movie not found")

	// ErrInvalidAPIKey indicates the OMDB API key was rejected upstream.
	ErrInvalidAPIKey = errors.New("invalid omdb api key")

	// ErrUnavailable indicates the fetch failed: transport error,
	// non-2xx status, or an undecodable body. Never cached, never retried.
	ErrUnavailable = errors.New("omdb unavailable")
)
