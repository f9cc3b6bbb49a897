package members

import (
	"context"

	"github.com/vacayhq/vacay/internal/server/models"
)

type Repository interface {
	Add(ctx context.Context, member *models.AlbumMember) (*models.AlbumMember, error)
	ListByAlbum(ctx context.Context, albumID string) ([]*models.AlbumMember, error)
	GetByAlbumAndEmail(ctx context.Context, albumID string, email string) (*models.AlbumMember, error)
	Delete(ctx context.Context, albumID string, memberID string) error
}
