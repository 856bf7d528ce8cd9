package models

import "time"

// BucketItem is a dated action item belonging to exactly one bucket. The
// owning bucket never changes after creation.
type BucketItem struct {
	ID          int64
	Title       string
	Description string
	IsComplete  bool
	DueDate     time.Time
	BucketID    int64
	CreatedAt   time.Time
}
