// Package state provides durable key-value storage for client session
// state, the Go counterpart of the browser local storage the web front
// end persists into.
package state

import (
	"context"
	"errors"
)

// ErrNotFound indicates no value is stored under the key.
var ErrNotFound = errors.New("state key not found")

// Store persists JSON blobs under namespace keys. Values are read once
// at process start to rehydrate, and written on every mutation.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
