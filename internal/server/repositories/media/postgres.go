// Package media provides the PostgreSQL-backed media-metadata repository.
// Rows are written once at registration time and never updated.
package media

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

const mediaColumns = `id, album_id, uploader_id, storage_key, original_name, mime_type, size_bytes, blob_url, width, height, duration, uploaded_at`

func scanMedia(row interface{ Scan(...any) error }, m *models.Media) error {
	return row.Scan(&m.ID, &m.AlbumID, &m.UploaderID, &m.StorageKey, &m.OriginalName,
		&m.MimeType, &m.SizeBytes, &m.BlobURL, &m.Width, &m.Height, &m.Duration, &m.UploadedAt)
}

func (r *PostgresRepository) Create(ctx context.Context, m *models.Media) (*models.Media, error) {
	query :=
		`INSERT INTO media (album_id, uploader_id, storage_key, original_name, mime_type, size_bytes, blob_url, width, height, duration)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, uploaded_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		m.AlbumID, m.UploaderID, m.StorageKey, m.OriginalName, m.MimeType,
		m.SizeBytes, m.BlobURL, m.Width, m.Height, m.Duration).
		Scan(&m.ID, &m.UploadedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Media, error) {
	query := `SELECT ` + mediaColumns + ` FROM media WHERE id = $1`

	m := &models.Media{}
	if err := scanMedia(r.db.QueryRowContext(ctx, query, id), m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

// ListByAlbum returns the album's media newest first.
func (r *PostgresRepository) ListByAlbum(ctx context.Context, albumID string) ([]*models.Media, error) {
	query := `SELECT ` + mediaColumns + ` FROM media
		 WHERE album_id = $1
		 ORDER BY uploaded_at DESC`

	rows, err := r.db.QueryContext(ctx, query, albumID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Media
	for rows.Next() {
		m := &models.Media{}
		if err := scanMedia(rows, m); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM media WHERE id = $1`, id)
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
