package media

import (
	"context"

	"github.com/vacayhq/vacay/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, m *models.Media) (*models.Media, error)
	GetByID(ctx context.Context, id string) (*models.Media, error)
	ListByAlbum(ctx context.Context, albumID string) ([]*models.Media, error)
	Delete(ctx context.Context, id string) error
}
