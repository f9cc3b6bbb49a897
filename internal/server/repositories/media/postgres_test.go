package media

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/vacayhq/vacay/internal/common"
	"github.com/vacayhq/vacay/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const colsRe = `id,\s*album_id,\s*uploader_id,\s*storage_key,\s*original_name,\s*mime_type,\s*size_bytes,\s*blob_url,\s*width,\s*height,\s*duration,\s*uploaded_at`

func mediaRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "album_id", "uploader_id", "storage_key", "original_name",
		"mime_type", "size_bytes", "blob_url", "width", "height", "duration", "uploaded_at"})
}

const createQ = `(?s)^\s*INSERT\s+INTO\s+media\s*\(album_id,\s*uploader_id,\s*storage_key,\s*original_name,\s*mime_type,\s*size_bytes,\s*blob_url,\s*width,\s*height,\s*duration\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6,\s*\$7,\s*\$8,\s*\$9,\s*\$10\)\s*RETURNING\s+id,\s*uploaded_at\s*$`

func TestCreate_NilDimensions(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "uploaded_at"}).AddRow("med-1", time.Now())
	mock.ExpectQuery(createQ).
		WithArgs("a-1", "u-1", "albums/a-1/1700_trip.jpg", "trip.jpg", "image/jpeg",
			int64(1024), "https://blob/albums/a-1/1700_trip.jpg", nil, nil, nil).
		WillReturnRows(rows)

	m := &models.Media{
		AlbumID:      "a-1",
		UploaderID:   "u-1",
		StorageKey:   "albums/a-1/1700_trip.jpg",
		OriginalName: "trip.jpg",
		MimeType:     "image/jpeg",
		SizeBytes:    1024,
		BlobURL:      "https://blob/albums/a-1/1700_trip.jpg",
	}
	got, err := repo.Create(context.Background(), m)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "med-1" || got.UploadedAt.IsZero() {
		t.Fatalf("unexpected media: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreate_WithDimensions(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	w, h := 1920, 1080
	dur := 12.5
	rows := sqlmock.NewRows([]string{"id", "uploaded_at"}).AddRow("med-2", time.Now())
	mock.ExpectQuery(createQ).
		WithArgs("a-1", "u-1", "albums/a-1/1700_clip.mov", "clip.mov", "video/mov",
			int64(2048), "https://blob/albums/a-1/1700_clip.mov", int64(1920), int64(1080), 12.5).
		WillReturnRows(rows)

	m := &models.Media{
		AlbumID:      "a-1",
		UploaderID:   "u-1",
		StorageKey:   "albums/a-1/1700_clip.mov",
		OriginalName: "clip.mov",
		MimeType:     "video/mov",
		SizeBytes:    2048,
		BlobURL:      "https://blob/albums/a-1/1700_clip.mov",
		Width:        &w,
		Height:       &h,
		Duration:     &dur,
	}
	if _, err := repo.Create(context.Background(), m); err != nil {
		t.Fatalf("Create error: %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+` + colsRe + `\s+FROM\s+media\s+WHERE\s+id\s*=\s*\$1\s*$`

	mock.ExpectQuery(q).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestListByAlbum_NewestFirstAndNullableScan(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+` + colsRe + `\s+FROM\s+media\s+WHERE\s+album_id\s*=\s*\$1\s+ORDER\s+BY\s+uploaded_at\s+DESC\s*$`

	now := time.Now()
	mock.ExpectQuery(q).
		WithArgs("a-1").
		WillReturnRows(mediaRows().
			AddRow("med-2", "a-1", "u-1", "k2", "clip.mov", "video/mov", int64(2048), "https://blob/k2", nil, nil, 12.5, now).
			AddRow("med-1", "a-1", "u-1", "k1", "trip.jpg", "image/jpeg", int64(1024), "https://blob/k1", 640, 480, nil, now.Add(-time.Minute)))

	got, err := repo.ListByAlbum(context.Background(), "a-1")
	if err != nil {
		t.Fatalf("ListByAlbum error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "med-2" || got[1].ID != "med-1" {
		t.Fatalf("unexpected media: %+v", got)
	}
	if got[0].Width != nil || got[0].Duration == nil || *got[0].Duration != 12.5 {
		t.Fatalf("nullable scan mismatch: %+v", got[0])
	}
	if got[1].Width == nil || *got[1].Width != 640 || got[1].Duration != nil {
		t.Fatalf("nullable scan mismatch: %+v", got[1])
	}
}

const deleteQ = `(?s)^\s*DELETE\s+FROM\s+media\s+WHERE\s+id\s*=\s*\$1\s*$`

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteQ).
		WithArgs("med-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "med-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_NoRowsIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteQ).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
