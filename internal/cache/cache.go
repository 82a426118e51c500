// Package cache provides TTL caching for API response payloads.
//
// Two backends implement the same contract: an in-memory map for
// process-lifetime caching and a SQLite table that survives restarts,
// mirroring the durable client storage of the app front ends.
package cache

import (
	"context"
	"time"
)

// Cache stores raw payloads under normalized keys with per-entry TTLs.
// Expiry is lazy: stale entries are skipped on read, never evicted
// proactively, and a racing writer simply overwrites (last write wins).
type Cache interface {
	// Get returns the payload for key, or false if absent or expired.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key for the given TTL, replacing any
	// previous entry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
