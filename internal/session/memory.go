package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory AccountStore. It stands in for a real
// account backend in development and tests, and can simulate the
// latency of a network round trip so callers exercise their loading
// states.
type MemoryStore struct {
	delay    time.Duration
	mu       sync.RWMutex
	accounts map[string]*Account // keyed by case-folded email
}

// NewMemoryStore creates an empty in-memory account store. delay is
// applied to every operation; pass 0 for instant resolution.
func NewMemoryStore(delay time.Duration) *MemoryStore {
	return &MemoryStore{
		delay:    delay,
		accounts: make(map[string]*Account),
	}
}

// wait simulates the network round trip, honoring ctx cancellation.
func (s *MemoryStore) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	select {
	case <-time.After(s.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Create inserts a new account.
// Returns ErrDuplicate if the email is already registered.
func (s *MemoryStore) Create(ctx context.Context, account *Account) error {
	if err := s.wait(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := FoldEmail(account.Email)
	if _, exists := s.accounts[key]; exists {
		return ErrDuplicate
	}

	copied := *account
	s.accounts[key] = &copied
	return nil
}

// GetByEmail looks up an account by email.
// Returns ErrNotFound if no account exists.
func (s *MemoryStore) GetByEmail(ctx context.Context, email string) (*Account, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[FoldEmail(email)]
	if !ok {
		return nil, ErrNotFound
	}

	copied := *account
	return &copied, nil
}
