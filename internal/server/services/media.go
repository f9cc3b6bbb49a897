package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/vacayhq/vacay/internal/common"
	"github.com/vacayhq/vacay/internal/logging"
	"github.com/vacayhq/vacay/internal/mediatype"
	"github.com/vacayhq/vacay/internal/server/models"
	"github.com/vacayhq/vacay/internal/server/repositories/repomanager"
	"github.com/vacayhq/vacay/internal/server/storage"
)

// MaxUploadBytes caps single-file uploads at 200 MiB. The same limit is
// enforced client-side before any bytes move; this check is the authority.
const MaxUploadBytes = 200 << 20

// nowUnixMilli is a seam for deterministic storage keys in tests.
var nowUnixMilli = func() int64 { return time.Now().UnixMilli() }

// UploadGrant is the server's answer to an authorized upload request: where
// to PUT the bytes and the key under which to register them afterwards.
type UploadGrant struct {
	UploadURL  string
	StorageKey string
	BlobURL    string
}

// RegisterParams carries the metadata the client reports after a completed
// blob transfer.
type RegisterParams struct {
	StorageKey   string
	OriginalName string
	MimeType     string
	SizeBytes    int64
	Width        *int
	Height       *int
	Duration     *float64
}

// MediaService brokers uploads into the object store and maintains the media
// rows that describe stored blobs. Upload authorization fails closed: an
// unknown content type, an oversized file, or a failed access check all deny.
type MediaService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	albums      *AlbumService
	store       storage.Client
	logger      logging.Logger
}

func NewMediaService(db *sql.DB, m repomanager.RepositoryManager, albums *AlbumService, store storage.Client, logger logging.Logger) *MediaService {
	return &MediaService{db: db, repomanager: m, albums: albums, store: store, logger: logger}
}

// AuthorizeUpload validates the announced file against the album's access
// rules and the media whitelist, then issues a presigned PUT grant.
func (s *MediaService) AuthorizeUpload(ctx context.Context, userID string, albumID string, filename string, contentType string, size int64) (*UploadGrant, error) {
	album, err := s.repomanager.Albums(s.db).GetByID(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if err := s.albums.CheckAccess(ctx, album, userID); err != nil {
		return nil, err
	}

	if size <= 0 || size > MaxUploadBytes {
		return nil, common.ErrorUnsupportedMediaType
	}

	res := mediatype.Classify(filename, contentType)
	if !res.Valid {
		return nil, common.ErrorUnsupportedMediaType
	}

	key := StorageKey(albumID, filename)
	url, err := s.store.PresignPut(ctx, key, res.MIME)
	if err != nil {
		return nil, fmt.Errorf("error presigning upload: %v", err)
	}

	return &UploadGrant{
		UploadURL:  url,
		StorageKey: key,
		BlobURL:    s.store.PublicURL(key),
	}, nil
}

// Register records a completed blob transfer as a media row. The storage key
// must belong to the target album, and the reported type must classify as an
// allowed media type.
func (s *MediaService) Register(ctx context.Context, userID string, albumID string, p RegisterParams) (*models.Media, error) {
	album, err := s.repomanager.Albums(s.db).GetByID(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if err := s.albums.CheckAccess(ctx, album, userID); err != nil {
		return nil, err
	}

	if !strings.HasPrefix(p.StorageKey, "albums/"+albumID+"/") {
		return nil, common.ErrorAlbumMismatch
	}

	res := mediatype.Classify(p.OriginalName, p.MimeType)
	if !res.Valid {
		return nil, common.ErrorUnsupportedMediaType
	}

	m := &models.Media{
		AlbumID:      albumID,
		UploaderID:   userID,
		StorageKey:   p.StorageKey,
		OriginalName: p.OriginalName,
		MimeType:     res.MIME,
		SizeBytes:    p.SizeBytes,
		BlobURL:      s.store.PublicURL(p.StorageKey),
		Width:        p.Width,
		Height:       p.Height,
		Duration:     p.Duration,
	}

	created, err := s.repomanager.Media(s.db).Create(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("error registering media: %v", err)
	}
	return created, nil
}

// List returns the album's media, newest first, for the creator or a
// collaborator.
func (s *MediaService) List(ctx context.Context, userID string, albumID string) ([]*models.Media, error) {
	album, err := s.repomanager.Albums(s.db).GetByID(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if err := s.albums.CheckAccess(ctx, album, userID); err != nil {
		return nil, err
	}
	return s.repomanager.Media(s.db).ListByAlbum(ctx, albumID)
}

// ListForShare returns media behind a public share link without requiring
// authentication. Private albums resolve to ErrorForbidden.
func (s *MediaService) ListForShare(ctx context.Context, shareID string) ([]*models.Media, error) {
	album, err := s.repomanager.Albums(s.db).GetByShareID(ctx, shareID)
	if err != nil {
		return nil, err
	}
	if !album.IsPublic {
		return nil, common.ErrorForbidden
	}
	return s.repomanager.Media(s.db).ListByAlbum(ctx, album.ID)
}

// Delete removes a media row. Allowed for the album creator or the original
// uploader. The stored blob is deleted best-effort: a storage failure is
// logged but the row is gone either way.
func (s *MediaService) Delete(ctx context.Context, userID string, mediaID string) error {
	m, err := s.repomanager.Media(s.db).GetByID(ctx, mediaID)
	if err != nil {
		return err
	}

	album, err := s.repomanager.Albums(s.db).GetByID(ctx, m.AlbumID)
	if err != nil {
		return err
	}
	if userID != album.CreatorID && userID != m.UploaderID {
		return common.ErrorForbidden
	}

	if err := s.repomanager.Media(s.db).Delete(ctx, mediaID); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, m.StorageKey); err != nil {
		s.logger.Warn(ctx, "error deleting stored object", "key", m.StorageKey, "error", err)
	}
	return nil
}

// StorageKey derives the object key for a file in an album. The original
// filename is sanitized to alphanumerics, dots, and dashes and prefixed with
// a millisecond timestamp so repeated names never collide.
func StorageKey(albumID string, filename string) string {
	return fmt.Sprintf("albums/%s/%d_%s", albumID, nowUnixMilli(), sanitizeFilename(filename))
}

func sanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if r > unicode.MaxASCII {
			b.WriteByte('_')
			continue
		}
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
