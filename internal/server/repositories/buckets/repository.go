package buckets

import (
	"context"

	"github.com/dmitrijs2005/bucketlist/internal/server/models"
)

// Repository gives access to bucket rows. Every read and write is filtered
// by the owning user id; an ownership miss is indistinguishable from an
// absent row.
type Repository interface {
	Create(ctx context.Context, bucket *models.Bucket) (*models.Bucket, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Bucket, error)
	GetByOwner(ctx context.Context, ownerID, id int64) (*models.Bucket, error)
	Update(ctx context.Context, ownerID, id int64, name, description string) error
	Delete(ctx context.Context, ownerID, id int64) error
}
