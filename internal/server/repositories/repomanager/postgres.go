// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/vacayhq/vacay/internal/dbx"
	"github.com/vacayhq/vacay/internal/server/migrations"
	"github.com/vacayhq/vacay/internal/server/repositories/albums"
	"github.com/vacayhq/vacay/internal/server/repositories/media"
	"github.com/vacayhq/vacay/internal/server/repositories/members"
	"github.com/vacayhq/vacay/internal/server/repositories/refreshtokens"
	"github.com/vacayhq/vacay/internal/server/repositories/users"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// RefreshTokens returns a refreshtokens.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

// Albums returns an albums.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Albums(db dbx.DBTX) albums.Repository {
	return albums.NewPostgresRepository(db)
}

// Members returns a members.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Members(db dbx.DBTX) members.Repository {
	return members.NewPostgresRepository(db)
}

// Media returns a media.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Media(db dbx.DBTX) media.Repository {
	return media.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}
