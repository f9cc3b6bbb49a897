package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vacayhq/vacay/internal/common"
	"github.com/vacayhq/vacay/internal/server/models"
)

func newMediaService(t *testing.T, rm *fakeRepoManager, store *fakeStore) (*MediaService, func()) {
	t.Helper()
	db, _ := newSQLMockDB(t)
	albums := NewAlbumService(db, rm)
	s := NewMediaService(db, rm, albums, store, &fakeLogger{})
	return s, func() { db.Close() }
}

func TestAuthorizeUpload_Success(t *testing.T) {
	restore := nowUnixMilli
	nowUnixMilli = func() int64 { return 1700000000000 }
	defer func() { nowUnixMilli = restore }()

	rm := &fakeRepoManager{
		a: &fakeAlbumsRepo{byIDOut: &models.Album{ID: "a1", CreatorID: "u1"}},
	}
	store := &fakeStore{}
	s, done := newMediaService(t, rm, store)
	defer done()

	grant, err := s.AuthorizeUpload(context.Background(), "u1", "a1", "beach day.jpg", "image/jpeg", 1024)
	if err != nil {
		t.Fatalf("AuthorizeUpload error: %v", err)
	}
	if grant.StorageKey != "albums/a1/1700000000000_beach_day.jpg" {
		t.Fatalf("unexpected key %q", grant.StorageKey)
	}
	if grant.UploadURL == "" || grant.BlobURL == "" {
		t.Fatal("expected upload and blob URLs")
	}
}

func TestAuthorizeUpload_RejectsUnknownType(t *testing.T) {
	rm := &fakeRepoManager{
		a: &fakeAlbumsRepo{byIDOut: &models.Album{ID: "a1", CreatorID: "u1"}},
	}
	s, done := newMediaService(t, rm, &fakeStore{})
	defer done()

	if _, err := s.AuthorizeUpload(context.Background(), "u1", "a1", "notes.txt", "text/plain", 10); !errors.Is(err, common.ErrorUnsupportedMediaType) {
		t.Fatalf("expected ErrorUnsupportedMediaType, got %v", err)
	}
}

func TestAuthorizeUpload_RejectsOversized(t *testing.T) {
	rm := &fakeRepoManager{
		a: &fakeAlbumsRepo{byIDOut: &models.Album{ID: "a1", CreatorID: "u1"}},
	}
	s, done := newMediaService(t, rm, &fakeStore{})
	defer done()

	if _, err := s.AuthorizeUpload(context.Background(), "u1", "a1", "big.mp4", "video/mp4", MaxUploadBytes+1); !errors.Is(err, common.ErrorUnsupportedMediaType) {
		t.Fatalf("expected ErrorUnsupportedMediaType, got %v", err)
	}
}

func TestAuthorizeUpload_DeniesOutsider(t *testing.T) {
	rm := &fakeRepoManager{
		u:  &fakeUsersRepo{byIDOut: &models.User{ID: "u2", Email: "x@y.z"}},
		a:  &fakeAlbumsRepo{byIDOut: &models.Album{ID: "a1", CreatorID: "u1"}},
		mm: &fakeMembersRepo{getErr: common.ErrorNotFound},
	}
	s, done := newMediaService(t, rm, &fakeStore{})
	defer done()

	if _, err := s.AuthorizeUpload(context.Background(), "u2", "a1", "a.jpg", "image/jpeg", 10); !errors.Is(err, common.ErrorForbidden) {
		t.Fatalf("expected ErrorForbidden, got %v", err)
	}
}

func TestAuthorizeUpload_MovWithEmptyType(t *testing.T) {
	rm := &fakeRepoManager{
		a: &fakeAlbumsRepo{byIDOut: &models.Album{ID: "a1", CreatorID: "u1"}},
	}
	s, done := newMediaService(t, rm, &fakeStore{})
	defer done()

	grant, err := s.AuthorizeUpload(context.Background(), "u1", "a1", "clip.MOV", "", 10)
	if err != nil {
		t.Fatalf("AuthorizeUpload error: %v", err)
	}
	if !strings.HasSuffix(grant.StorageKey, "_clip.MOV") {
		t.Fatalf("unexpected key %q", grant.StorageKey)
	}
}

func TestRegister_AlbumMismatch(t *testing.T) {
	rm := &fakeRepoManager{
		a: &fakeAlbumsRepo{byIDOut: &models.Album{ID: "a1", CreatorID: "u1"}},
	}
	s, done := newMediaService(t, rm, &fakeStore{})
	defer done()

	p := RegisterParams{
		StorageKey:   "albums/other/1_a.jpg",
		OriginalName: "a.jpg",
		MimeType:     "image/jpeg",
		SizeBytes:    10,
	}
	if _, err := s.Register(context.Background(), "u1", "a1", p); !errors.Is(err, common.ErrorAlbumMismatch) {
		t.Fatalf("expected ErrorAlbumMismatch, got %v", err)
	}
}

func TestRegister_NormalizesMime(t *testing.T) {
	rm := &fakeRepoManager{
		a:  &fakeAlbumsRepo{byIDOut: &models.Album{ID: "a1", CreatorID: "u1"}},
		md: &fakeMediaRepo{},
	}
	s, done := newMediaService(t, rm, &fakeStore{})
	defer done()

	p := RegisterParams{
		StorageKey:   "albums/a1/1_clip.mov",
		OriginalName: "clip.mov",
		MimeType:     "application/octet-stream",
		SizeBytes:    10,
	}
	m, err := s.Register(context.Background(), "u1", "a1", p)
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if m.MimeType != "video/mov" {
		t.Fatalf("expected video/mov, got %q", m.MimeType)
	}
	if m.BlobURL != "https://blob.test/albums/a1/1_clip.mov" {
		t.Fatalf("unexpected blob url %q", m.BlobURL)
	}
}

func TestMediaDelete_UploaderAllowed(t *testing.T) {
	md := &fakeMediaRepo{byIDOut: &models.Media{ID: "m1", AlbumID: "a1", UploaderID: "u2", StorageKey: "albums/a1/1_a.jpg"}}
	rm := &fakeRepoManager{
		a:  &fakeAlbumsRepo{byIDOut: &models.Album{ID: "a1", CreatorID: "u1"}},
		md: md,
	}
	store := &fakeStore{}
	s, done := newMediaService(t, rm, store)
	defer done()

	if err := s.Delete(context.Background(), "u2", "m1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if md.deletedID != "m1" {
		t.Fatalf("expected row delete, got %q", md.deletedID)
	}
	if store.deletedKey != "albums/a1/1_a.jpg" {
		t.Fatalf("expected blob delete, got %q", store.deletedKey)
	}
}

func TestMediaDelete_StorageFailureLoggedNotReturned(t *testing.T) {
	md := &fakeMediaRepo{byIDOut: &models.Media{ID: "m1", AlbumID: "a1", UploaderID: "u1", StorageKey: "albums/a1/1_a.jpg"}}
	rm := &fakeRepoManager{
		a:  &fakeAlbumsRepo{byIDOut: &models.Album{ID: "a1", CreatorID: "u1"}},
		md: md,
	}
	store := &fakeStore{delErr: errors.New("boom")}

	db, _ := newSQLMockDB(t)
	defer db.Close()
	logger := &fakeLogger{}
	s := NewMediaService(db, rm, NewAlbumService(db, rm), store, logger)

	if err := s.Delete(context.Background(), "u1", "m1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if logger.warns != 1 {
		t.Fatalf("expected one warning, got %d", logger.warns)
	}
}

func TestMediaDelete_OtherMemberForbidden(t *testing.T) {
	md := &fakeMediaRepo{byIDOut: &models.Media{ID: "m1", AlbumID: "a1", UploaderID: "u2"}}
	rm := &fakeRepoManager{
		a:  &fakeAlbumsRepo{byIDOut: &models.Album{ID: "a1", CreatorID: "u1"}},
		md: md,
	}
	s, done := newMediaService(t, rm, &fakeStore{})
	defer done()

	if err := s.Delete(context.Background(), "u3", "m1"); !errors.Is(err, common.ErrorForbidden) {
		t.Fatalf("expected ErrorForbidden, got %v", err)
	}
}

func TestListForShare_PrivateForbidden(t *testing.T) {
	rm := &fakeRepoManager{
		a: &fakeAlbumsRepo{byShareOut: &models.Album{ID: "a1", IsPublic: false}},
	}
	s, done := newMediaService(t, rm, &fakeStore{})
	defer done()

	if _, err := s.ListForShare(context.Background(), "sh"); !errors.Is(err, common.ErrorForbidden) {
		t.Fatalf("expected ErrorForbidden, got %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"beach day.jpg", "beach_day.jpg"},
		{"IMG_0001.HEIC", "IMG_0001.HEIC"},
		{"côte d'azur.png", "c_te_d_azur.png"},
		{"a/b\\c.jpg", "a_b_c.jpg"},
		{"clean-name.mp4", "clean-name.mp4"},
	}
	for _, tc := range tests {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
