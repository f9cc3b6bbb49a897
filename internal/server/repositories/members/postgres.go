// Package members provides the PostgreSQL-backed album-membership repository.
// Membership is keyed on the invited email address.
package members

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

func (r *PostgresRepository) Add(ctx context.Context, member *models.AlbumMember) (*models.AlbumMember, error) {
	query :=
		`INSERT INTO album_members (album_id, allowed_email, role)
		 VALUES ($1, $2, $3)
		 RETURNING id, added_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		member.AlbumID, strings.ToLower(member.AllowedEmail), member.Role).
		Scan(&member.ID, &member.AddedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return member, nil
}

func (r *PostgresRepository) ListByAlbum(ctx context.Context, albumID string) ([]*models.AlbumMember, error) {
	query :=
		`SELECT id, album_id, allowed_email, role, added_at FROM album_members
		 WHERE album_id = $1
		 ORDER BY added_at ASC`

	rows, err := r.db.QueryContext(ctx, query, albumID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.AlbumMember
	for rows.Next() {
		m := &models.AlbumMember{}
		if err := rows.Scan(&m.ID, &m.AlbumID, &m.AllowedEmail, &m.Role, &m.AddedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) GetByAlbumAndEmail(ctx context.Context, albumID string, email string) (*models.AlbumMember, error) {
	query :=
		`SELECT id, album_id, allowed_email, role, added_at FROM album_members
		 WHERE album_id = $1 AND allowed_email = $2`

	m := &models.AlbumMember{}
	err := r.db.QueryRowContext(ctx, query, albumID, strings.ToLower(email)).
		Scan(&m.ID, &m.AlbumID, &m.AllowedEmail, &m.Role, &m.AddedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, albumID string, memberID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM album_members WHERE id = $1 AND album_id = $2`, memberID, albumID)
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
