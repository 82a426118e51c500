package session

import (
	"context"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Account is a stored user record. The password is kept only as a
// bcrypt hash.
type Account struct {
	ID           string
	Email        string // case-folded, unique
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
}

// AccountStore persists accounts keyed by case-folded email.
type AccountStore interface {
	// Create inserts a new account.
	// Returns ErrDuplicate if the email is already registered.
	Create(ctx context.Context, account *Account) error

	// GetByEmail looks up an account by case-folded email.
	// Returns ErrNotFound if no account exists.
	GetByEmail(ctx context.Context, email string) (*Account, error)
}

// FoldEmail canonicalizes an email address for storage and lookup.
// Unicode case folding rather than plain lowercasing, so lookups stay
// case-insensitive for non-ASCII mailboxes too.
func FoldEmail(email string) string {
	return cases.Fold().String(strings.TrimSpace(email))
}
