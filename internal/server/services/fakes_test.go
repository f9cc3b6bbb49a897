package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/vacayhq/vacay/internal/dbx"
	"github.com/vacayhq/vacay/internal/logging"
	"github.com/vacayhq/vacay/internal/server/models"
	albumsrepo "github.com/vacayhq/vacay/internal/server/repositories/albums"
	mediarepo "github.com/vacayhq/vacay/internal/server/repositories/media"
	membersrepo "github.com/vacayhq/vacay/internal/server/repositories/members"
	refreshtokensrepo "github.com/vacayhq/vacay/internal/server/repositories/refreshtokens"
	usersrepo "github.com/vacayhq/vacay/internal/server/repositories/users"
)

// --- shared fakes ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byEmailOut *models.User
	byEmailErr error

	byIDOut *models.User
	byIDErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}
func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmailOut, nil
}
func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}

type fakeRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error

	delErr    error
	createErr error
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	return f.createErr
}
func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}
func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	return f.delErr
}

type fakeAlbumsRepo struct {
	createErr error

	byIDOut *models.Album
	byIDErr error

	byShareOut *models.Album
	byShareErr error

	createdOut      []*models.Album
	collaboratedOut []*models.Album
	listErr         error

	updateErr error
	updated   *models.Album

	deleteErr error
	deletedID string
}

func (f *fakeAlbumsRepo) Create(ctx context.Context, a *models.Album) (*models.Album, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *a
	out.ID = "new-album"
	out.CreatedAt = time.Now()
	return &out, nil
}
func (f *fakeAlbumsRepo) GetByID(ctx context.Context, id string) (*models.Album, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}
func (f *fakeAlbumsRepo) GetByShareID(ctx context.Context, shareID string) (*models.Album, error) {
	if f.byShareErr != nil {
		return nil, f.byShareErr
	}
	return f.byShareOut, nil
}
func (f *fakeAlbumsRepo) ListCreatedBy(ctx context.Context, userID string) ([]*models.Album, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.createdOut, nil
}
func (f *fakeAlbumsRepo) ListCollaboratedBy(ctx context.Context, email string) ([]*models.Album, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.collaboratedOut, nil
}
func (f *fakeAlbumsRepo) Update(ctx context.Context, a *models.Album) error {
	f.updated = a
	return f.updateErr
}
func (f *fakeAlbumsRepo) Delete(ctx context.Context, id string) error {
	f.deletedID = id
	return f.deleteErr
}

type fakeMembersRepo struct {
	addOut *models.AlbumMember
	addErr error

	listOut []*models.AlbumMember
	listErr error

	getOut *models.AlbumMember
	getErr error

	delErr error
}

func (f *fakeMembersRepo) Add(ctx context.Context, m *models.AlbumMember) (*models.AlbumMember, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	if f.addOut != nil {
		return f.addOut, nil
	}
	out := *m
	out.ID = "new-member"
	return &out, nil
}
func (f *fakeMembersRepo) ListByAlbum(ctx context.Context, albumID string) ([]*models.AlbumMember, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}
func (f *fakeMembersRepo) GetByAlbumAndEmail(ctx context.Context, albumID string, email string) (*models.AlbumMember, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeMembersRepo) Delete(ctx context.Context, albumID string, memberID string) error {
	return f.delErr
}

type fakeMediaRepo struct {
	createOut *models.Media
	createErr error

	byIDOut *models.Media
	byIDErr error

	listOut []*models.Media
	listErr error

	delErr    error
	deletedID string
}

func (f *fakeMediaRepo) Create(ctx context.Context, m *models.Media) (*models.Media, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	out := *m
	out.ID = "new-media"
	return &out, nil
}
func (f *fakeMediaRepo) GetByID(ctx context.Context, id string) (*models.Media, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}
func (f *fakeMediaRepo) ListByAlbum(ctx context.Context, albumID string) ([]*models.Media, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}
func (f *fakeMediaRepo) Delete(ctx context.Context, id string) error {
	f.deletedID = id
	return f.delErr
}

type fakeRepoManager struct {
	u  *fakeUsersRepo
	r  *fakeRefreshRepo
	a  *fakeAlbumsRepo
	mm *fakeMembersRepo
	md *fakeMediaRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error          { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository                { return m.u }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository {
	return m.r
}
func (m *fakeRepoManager) Albums(db dbx.DBTX) albumsrepo.Repository   { return m.a }
func (m *fakeRepoManager) Members(db dbx.DBTX) membersrepo.Repository { return m.mm }
func (m *fakeRepoManager) Media(db dbx.DBTX) mediarepo.Repository     { return m.md }

type fakeStore struct {
	putURL string
	putErr error

	getURL string
	getErr error

	delErr     error
	deletedKey string

	base string
}

func (f *fakeStore) PresignPut(ctx context.Context, key string, contentType string) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	if f.putURL != "" {
		return f.putURL, nil
	}
	return "https://blob.test/put/" + key, nil
}
func (f *fakeStore) PresignGet(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.getURL, nil
}
func (f *fakeStore) Delete(ctx context.Context, key string) error {
	f.deletedKey = key
	return f.delErr
}
func (f *fakeStore) PublicURL(key string) string {
	if f.base == "" {
		return "https://blob.test/" + key
	}
	return f.base + "/" + key
}

type fakeLogger struct {
	warns int
}

func (l *fakeLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (l *fakeLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (l *fakeLogger) Warn(ctx context.Context, msg string, args ...any)  { l.warns++ }
func (l *fakeLogger) Error(ctx context.Context, msg string, args ...any) {}
func (l *fakeLogger) With(args ...any) logging.Logger                    { return l }
