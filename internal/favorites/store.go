package favorites

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Favorite is one saved movie for one user. Enough display fields are
// denormalized from the search result to render a list without
// re-contacting OMDB.
type Favorite struct {
	UserID  string    `json:"-"`
	IMDBID  string    `json:"imdbID"`
	Title   string    `json:"title"`
	Year    string    `json:"year"`
	Type    string    `json:"type"`
	Poster  string    `json:"poster"`
	AddedAt time.Time `json:"addedAt"`
}

// Store provides access to saved favorites.
type Store struct {
	db *sql.DB
}

// NewStore creates a favorites store over an open database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
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
	errStr := err.Error()
	if strings.Contains(errStr, "UNIQUE constraint failed") ||
		strings.Contains(errStr, "PRIMARY KEY constraint failed") {
		return ErrDuplicate
	}
	return err
}

// Add saves a movie for the user.
// Returns ErrDuplicate if it is already saved.
func (s *Store) Add(ctx context.Context, f *Favorite) error {
	now := time.Now()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO favorites (user_id, imdb_id, title, year, type, poster, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.UserID, f.IMDBID, f.Title, f.Year, f.Type, f.Poster, now,
	)
	if err != nil {
		return fmt.Errorf("insert favorite: %w", mapSQLiteError(err))
	}
	f.AddedAt = now
	return nil
}

// List returns the user's favorites, most recently added first.
func (s *Store) List(ctx context.Context, userID string) ([]Favorite, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, imdb_id, title, year, type, poster, added_at
		FROM favorites WHERE user_id = ?
		ORDER BY added_at DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	var favorites []Favorite
	for rows.Next() {
		var f Favorite
		if err := rows.Scan(&f.UserID, &f.IMDBID, &f.Title, &f.Year, &f.Type, &f.Poster, &f.AddedAt); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

// Remove deletes a saved movie for the user.
// Returns ErrNotFound if it wasn't saved.
func (s *Store) Remove(ctx context.Context, userID, imdbID string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM favorites WHERE user_id = ? AND imdb_id = ?", userID, imdbID,
	)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
