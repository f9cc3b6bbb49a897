package repomanager

import (
	"context"
	"database/sql"

	"github.com/vacayhq/vacay/internal/dbx"
	"github.com/vacayhq/vacay/internal/server/repositories/albums"
	"github.com/vacayhq/vacay/internal/server/repositories/media"
	"github.com/vacayhq/vacay/internal/server/repositories/members"
	"github.com/vacayhq/vacay/internal/server/repositories/refreshtokens"
	"github.com/vacayhq/vacay/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Albums(db dbx.DBTX) albums.Repository
	Members(db dbx.DBTX) members.Repository
	Media(db dbx.DBTX) media.Repository
}
