package albums

import (
	"context"

	"github.com/vacayhq/vacay/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, album *models.Album) (*models.Album, error)
	GetByID(ctx context.Context, id string) (*models.Album, error)
	GetByShareID(ctx context.Context, shareID string) (*models.Album, error)
	ListCreatedBy(ctx context.Context, userID string) ([]*models.Album, error)
	ListCollaboratedBy(ctx context.Context, email string) ([]*models.Album, error)
	Update(ctx context.Context, album *models.Album) error
	Delete(ctx context.Context, id string) error
}
