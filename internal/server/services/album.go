package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/vacayhq/vacay/internal/common"
	"github.com/vacayhq/vacay/internal/server/models"
	"github.com/vacayhq/vacay/internal/server/repositories/repomanager"
)

// shareIDBytes sizes the random share token (hex-encoded, so 2x characters).
const shareIDBytes = 16

// AlbumService implements album CRUD, collaborator membership, and public
// share-link resolution. Membership is advisory data for the authorization
// checks performed here and by MediaService; the checks always fail closed.
type AlbumService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewAlbumService(db *sql.DB, m repomanager.RepositoryManager) *AlbumService {
	return &AlbumService{db: db, repomanager: m}
}

// Create persists a new album owned by userID with a fresh share id.
func (s *AlbumService) Create(ctx context.Context, userID string, title, description string, isPublic bool) (*models.Album, error) {
	shareID, err := common.MakeRandHexString(shareIDBytes)
	if err != nil {
		return nil, common.ErrorInternal
	}

	album := &models.Album{
		Title:       title,
		Description: description,
		ShareID:     shareID,
		IsPublic:    isPublic,
		CreatorID:   userID,
	}

	repo := s.repomanager.Albums(s.db)
	a, err := repo.Create(ctx, album)
	if err != nil {
		return nil, fmt.Errorf("error creating album: %v", err)
	}
	return a, nil
}

// ListForUser returns albums the user created plus albums shared with the
// user's email, deduplicated and sorted newest first.
func (s *AlbumService) ListForUser(ctx context.Context, userID string) ([]*models.Album, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading user: %v", err)
	}

	repo := s.repomanager.Albums(s.db)

	created, err := repo.ListCreatedBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing albums: %v", err)
	}
	collaborated, err := repo.ListCollaboratedBy(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("error listing shared albums: %v", err)
	}

	seen := make(map[string]struct{}, len(created)+len(collaborated))
	var all []*models.Album
	for _, a := range append(created, collaborated...) {
		if _, ok := seen[a.ID]; ok {
			continue
		}
		seen[a.ID] = struct{}{}
		all = append(all, a)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	return all, nil
}

// Get returns the album if userID is its creator or a collaborator.
func (s *AlbumService) Get(ctx context.Context, userID string, albumID string) (*models.Album, error) {
	album, err := s.repomanager.Albums(s.db).GetByID(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if err := s.CheckAccess(ctx, album, userID); err != nil {
		return nil, err
	}
	return album, nil
}

// Update modifies title/description/visibility. Only the creator may update.
func (s *AlbumService) Update(ctx context.Context, userID string, albumID string, title, description string, isPublic bool) (*models.Album, error) {
	repo := s.repomanager.Albums(s.db)

	album, err := repo.GetByID(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if album.CreatorID != userID {
		return nil, common.ErrorForbidden
	}

	album.Title = title
	album.Description = description
	album.IsPublic = isPublic

	if err := repo.Update(ctx, album); err != nil {
		return nil, fmt.Errorf("error updating album: %v", err)
	}
	return album, nil
}

// Delete removes the album and, via FK cascade, its membership and media
// rows. Only the creator may delete.
func (s *AlbumService) Delete(ctx context.Context, userID string, albumID string) error {
	repo := s.repomanager.Albums(s.db)

	album, err := repo.GetByID(ctx, albumID)
	if err != nil {
		return err
	}
	if album.CreatorID != userID {
		return common.ErrorForbidden
	}
	return repo.Delete(ctx, albumID)
}

// ResolveShare returns the album behind a public share link. Private albums
// resolve to ErrorForbidden so the link does not leak their contents.
func (s *AlbumService) ResolveShare(ctx context.Context, shareID string) (*models.Album, error) {
	album, err := s.repomanager.Albums(s.db).GetByShareID(ctx, shareID)
	if err != nil {
		return nil, err
	}
	if !album.IsPublic {
		return nil, common.ErrorForbidden
	}
	return album, nil
}

// AddMember invites an email to the album. Only the creator manages members.
func (s *AlbumService) AddMember(ctx context.Context, userID string, albumID string, email string, role string) (*models.AlbumMember, error) {
	album, err := s.repomanager.Albums(s.db).GetByID(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if album.CreatorID != userID {
		return nil, common.ErrorForbidden
	}

	if role == "" {
		role = models.RoleMember
	}

	member := &models.AlbumMember{
		AlbumID:      albumID,
		AllowedEmail: strings.ToLower(email),
		Role:         role,
	}
	return s.repomanager.Members(s.db).Add(ctx, member)
}

// ListMembers lists the album's invited emails. Creator or collaborator only.
func (s *AlbumService) ListMembers(ctx context.Context, userID string, albumID string) ([]*models.AlbumMember, error) {
	album, err := s.repomanager.Albums(s.db).GetByID(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if err := s.CheckAccess(ctx, album, userID); err != nil {
		return nil, err
	}
	return s.repomanager.Members(s.db).ListByAlbum(ctx, albumID)
}

// RemoveMember revokes an invitation. Only the creator manages members.
func (s *AlbumService) RemoveMember(ctx context.Context, userID string, albumID string, memberID string) error {
	album, err := s.repomanager.Albums(s.db).GetByID(ctx, albumID)
	if err != nil {
		return err
	}
	if album.CreatorID != userID {
		return common.ErrorForbidden
	}
	return s.repomanager.Members(s.db).Delete(ctx, albumID, memberID)
}

// CheckAccess verifies that userID is the album's creator or that the
// user's email appears in the member list. Any lookup failure denies
// access: authorization must fail closed.
func (s *AlbumService) CheckAccess(ctx context.Context, album *models.Album, userID string) error {
	if album.CreatorID == userID {
		return nil
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return common.ErrorForbidden
	}

	if _, err := s.repomanager.Members(s.db).GetByAlbumAndEmail(ctx, album.ID, user.Email); err != nil {
		return common.ErrorForbidden
	}
	return nil
}
