package items

import (
	"context"

	"github.com/dmitrijs2005/bucketlist/internal/server/models"
)

// Repository gives access to bucket item rows, always scoped to the owning
// bucket. Ownership of the bucket itself is the caller's concern.
type Repository interface {
	Create(ctx context.Context, item *models.BucketItem) (*models.BucketItem, error)
	ListByBucket(ctx context.Context, bucketID int64) ([]*models.BucketItem, error)
	GetByBucket(ctx context.Context, bucketID, id int64) (*models.BucketItem, error)
	Update(ctx context.Context, item *models.BucketItem) error
	Delete(ctx context.Context, bucketID, id int64) error
}
