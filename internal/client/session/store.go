// Package session persists CLI state between runs in a local sqlite
// database: the token pair, the login email, and the currently opened album.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/vacayhq/vacay/internal/client/models"
	"github.com/vacayhq/vacay/internal/client/session/migrations"
	"github.com/vacayhq/vacay/internal/dbx"
)

const (
	keyTokens       = "tokens"
	keyEmail        = "email"
	keyCurrentAlbum = "current_album"
)

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the session database and applies
// migrations. The sqlite driver must be registered by the caller's main.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) get(ctx context.Context, db dbx.DBTX, key string) ([]byte, error) {
	var value []byte
	err := db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, nil
}

func (s *Store) set(ctx context.Context, db dbx.DBTX, key string, value []byte) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

func (s *Store) delete(ctx context.Context, db dbx.DBTX, key string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM session WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete session[%s]: %w", key, err)
	}
	return nil
}

// SaveTokens stores the token pair for the next run.
func (s *Store) SaveTokens(ctx context.Context, pair models.TokenPair) error {
	data, err := json.Marshal(pair)
	if err != nil {
		return err
	}
	return s.set(ctx, s.db, keyTokens, data)
}

// LoadTokens returns the stored token pair, or (nil, nil) when absent.
func (s *Store) LoadTokens(ctx context.Context) (*models.TokenPair, error) {
	data, err := s.get(ctx, s.db, keyTokens)
	if err != nil || data == nil {
		return nil, err
	}
	var pair models.TokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// ClearTokens logs the session out.
func (s *Store) ClearTokens(ctx context.Context) error {
	return s.delete(ctx, s.db, keyTokens)
}

// SaveEmail remembers who is logged in, for the prompt on the next run.
func (s *Store) SaveEmail(ctx context.Context, email string) error {
	return s.set(ctx, s.db, keyEmail, []byte(email))
}

// Email returns the stored login email, or "" when absent.
func (s *Store) Email(ctx context.Context) (string, error) {
	data, err := s.get(ctx, s.db, keyEmail)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ClearEmail forgets the stored login email.
func (s *Store) ClearEmail(ctx context.Context) error {
	return s.delete(ctx, s.db, keyEmail)
}

// SaveCurrentAlbum remembers the album the user has opened.
func (s *Store) SaveCurrentAlbum(ctx context.Context, albumID string) error {
	return s.set(ctx, s.db, keyCurrentAlbum, []byte(albumID))
}

// CurrentAlbum returns the opened album id, or "" when none is open.
func (s *Store) CurrentAlbum(ctx context.Context) (string, error) {
	data, err := s.get(ctx, s.db, keyCurrentAlbum)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ClearCurrentAlbum forgets the opened album.
func (s *Store) ClearCurrentAlbum(ctx context.Context) error {
	return s.delete(ctx, s.db, keyCurrentAlbum)
}
