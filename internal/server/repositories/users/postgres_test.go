package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
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

const createQ = `(?s)^\s*INSERT\s+INTO\s+users\s*\(email,\s*password_hash\)\s*VALUES\s*\(\$1,\s*\$2\)\s*RETURNING\s+id,\s*created_at\s*$`

func TestCreate_LowercasesEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow("u-1", time.Now())
	mock.ExpectQuery(createQ).
		WithArgs("alice@example.com", "hash").
		WillReturnRows(rows)

	u := &models.User{Email: "Alice@Example.COM", PasswordHash: "hash"}
	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "u-1" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreate_Duplicate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(createQ).
		WithArgs("alice@example.com", "hash").
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "users_email_key"`))

	_, err := repo.Create(context.Background(), &models.User{Email: "alice@example.com", PasswordHash: "hash"})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(createQ).
		WithArgs("alice@example.com", "hash").
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{Email: "alice@example.com", PasswordHash: "hash"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

const getByEmailQ = `(?s)^\s*SELECT\s+id,\s*email,\s*password_hash,\s*created_at\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`

func TestGetByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
		AddRow("u-1", "alice@example.com", "hash", time.Now())
	mock.ExpectQuery(getByEmailQ).
		WithArgs("alice@example.com").
		WillReturnRows(rows)

	got, err := repo.GetByEmail(context.Background(), "Alice@Example.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.ID != "u-1" || got.Email != "alice@example.com" || got.PasswordHash != "hash" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(getByEmailQ).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

const getByIDQ = `(?s)^\s*SELECT\s+id,\s*email,\s*password_hash,\s*created_at\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
		AddRow("u-1", "alice@example.com", "hash", time.Now())
	mock.ExpectQuery(getByIDQ).
		WithArgs("u-1").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Email != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByID_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(getByIDQ).
		WithArgs("u-1").
		WillReturnError(errors.New("db err"))

	_, err := repo.GetByID(context.Background(), "u-1")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
