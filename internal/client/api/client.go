// Package api implements the HTTP client for the Vacay backend. It carries
// the bearer token, transparently refreshes it once on 401, and maps error
// statuses back to the shared sentinel errors.
package api

import (
	"context"

	"github.com/vacayhq/vacay/internal/client/models"
)

// RegisterMediaParams is the metadata reported after a finished blob
// transfer.
type RegisterMediaParams struct {
	StorageKey   string   `json:"storage_key"`
	OriginalName string   `json:"original_name"`
	MimeType     string   `json:"mime_type"`
	SizeBytes    int64    `json:"size_bytes"`
	Width        *int     `json:"width,omitempty"`
	Height       *int     `json:"height,omitempty"`
	Duration     *float64 `json:"duration,omitempty"`
}

// Client is the surface the CLI and the upload/export pipelines talk to.
type Client interface {
	Ping(ctx context.Context) error

	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.TokenPair, error)

	CreateAlbum(ctx context.Context, title, description string, isPublic bool) (*models.Album, error)
	ListAlbums(ctx context.Context) ([]models.Album, error)
	GetAlbum(ctx context.Context, albumID string) (*models.Album, error)
	UpdateAlbum(ctx context.Context, albumID, title, description string, isPublic bool) (*models.Album, error)
	DeleteAlbum(ctx context.Context, albumID string) error

	AddMember(ctx context.Context, albumID, email, role string) (*models.AlbumMember, error)
	ListMembers(ctx context.Context, albumID string) ([]models.AlbumMember, error)
	RemoveMember(ctx context.Context, albumID, memberID string) error

	GetShared(ctx context.Context, shareID string) (*models.SharedAlbum, error)

	AuthorizeUpload(ctx context.Context, albumID, filename, contentType string, size int64) (*models.UploadGrant, error)
	UploadBlob(ctx context.Context, uploadURL, contentType string, data []byte) error
	RegisterMedia(ctx context.Context, albumID string, p RegisterMediaParams) (*models.Media, error)
	ListMedia(ctx context.Context, albumID string) ([]models.Media, error)
	DeleteMedia(ctx context.Context, mediaID string) error

	FetchBlob(ctx context.Context, url string) ([]byte, string, error)
}
