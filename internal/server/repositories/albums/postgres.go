// Package albums provides the PostgreSQL-backed album repository.
package albums

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/vacayhq/vacay/internal/common"
	"github.com/vacayhq/vacay/internal/dbx"
	"github.com/vacayhq/vacay/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const albumColumns = `id, title, description, share_id, is_public, creator_id, created_at, updated_at`

func scanAlbum(row interface{ Scan(...any) error }, a *models.Album) error {
	return row.Scan(&a.ID, &a.Title, &a.Description, &a.ShareID, &a.IsPublic,
		&a.CreatorID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *PostgresRepository) Create(ctx context.Context, album *models.Album) (*models.Album, error) {
	query :=
		`INSERT INTO albums (title, description, share_id, is_public, creator_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		album.Title, album.Description, album.ShareID, album.IsPublic, album.CreatorID).
		Scan(&album.ID, &album.CreatedAt, &album.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return album, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Album, error) {
	query := `SELECT ` + albumColumns + ` FROM albums WHERE id = $1`

	a := &models.Album{}
	if err := scanAlbum(r.db.QueryRowContext(ctx, query, id), a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) GetByShareID(ctx context.Context, shareID string) (*models.Album, error) {
	query := `SELECT ` + albumColumns + ` FROM albums WHERE share_id = $1`

	a := &models.Album{}
	if err := scanAlbum(r.db.QueryRowContext(ctx, query, shareID), a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) ListCreatedBy(ctx context.Context, userID string) ([]*models.Album, error) {
	query := `SELECT ` + albumColumns + ` FROM albums
		 WHERE creator_id = $1
		 ORDER BY created_at DESC`

	return r.list(ctx, query, userID)
}

// ListCollaboratedBy returns albums the given email was invited to,
// newest first.
func (r *PostgresRepository) ListCollaboratedBy(ctx context.Context, email string) ([]*models.Album, error) {
	query := `SELECT a.id, a.title, a.description, a.share_id, a.is_public, a.creator_id, a.created_at, a.updated_at
		 FROM albums a
		 JOIN album_members m ON m.album_id = a.id
		 WHERE m.allowed_email = $1
		 ORDER BY a.created_at DESC`

	return r.list(ctx, query, strings.ToLower(email))
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Album, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Album
	for rows.Next() {
		a := &models.Album{}
		if err := scanAlbum(rows, a); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, album *models.Album) error {
	query :=
		`UPDATE albums SET title = $1, description = $2, is_public = $3, updated_at = now()
		 WHERE id = $4`

	res, err := r.db.ExecContext(ctx, query,
		album.Title, album.Description, album.IsPublic, album.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if ra == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM albums WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if ra == 0 {
		return common.ErrorNotFound
	}
	return nil
}
