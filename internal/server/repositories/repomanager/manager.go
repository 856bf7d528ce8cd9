package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/bucketlist/internal/dbx"
	"github.com/dmitrijs2005/bucketlist/internal/server/repositories/buckets"
	"github.com/dmitrijs2005/bucketlist/internal/server/repositories/items"
	"github.com/dmitrijs2005/bucketlist/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Buckets(db dbx.DBTX) buckets.Repository
	Items(db dbx.DBTX) items.Repository
}
