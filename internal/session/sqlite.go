package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLiteStore is an AccountStore backed by the accounts table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates an account store over an open database. The
// accounts table must exist (see internal/migrations).
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// mapSQLiteError converts SQLite errors to package sentinels.
func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	// modernc.org/sqlite wraps errors; check error message for constraint violations
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicate
	}
	return err
}

// Create inserts a new account.
// Returns ErrDuplicate if the email is already registered.
func (s *SQLiteStore) Create(ctx context.Context, account *Account) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, email, display_name, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		account.ID, FoldEmail(account.Email), account.DisplayName, account.PasswordHash, account.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert account: %w", mapSQLiteError(err))
	}
	return nil
}

// GetByEmail looks up an account by email.
// Returns ErrNotFound if no account exists.
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (*Account, error) {
	a := &Account{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, display_name, password_hash, created_at
		FROM accounts WHERE email = ?`, FoldEmail(email),
	).Scan(&a.ID, &a.Email, &a.DisplayName, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", mapSQLiteError(err))
	}
	return a, nil
}
