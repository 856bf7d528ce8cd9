package models

import "time"

// Bucket is a named collection of items owned by exactly one user. The
// owner is fixed at creation.
type Bucket struct {
	ID          int64
	Name        string
	Description string
	UserID      int64
	CreatedAt   time.Time

	// Items is populated by the service layer when the bucket is rendered
	// with its contents.
	Items []*BucketItem
}
