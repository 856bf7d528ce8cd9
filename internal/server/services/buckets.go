package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/bucketlist/internal/common"
	"github.com/dmitrijs2005/bucketlist/internal/dbx"
	"github.com/dmitrijs2005/bucketlist/internal/server/models"
	"github.com/dmitrijs2005/bucketlist/internal/server/repositories/repomanager"
)

// ItemUpdate carries the optional fields of a partial item update. Nil
// pointers mean "leave unchanged". IsComplete holds the raw request value
// and is coerced with parseLooseBool when present.
type ItemUpdate struct {
	Title       *string
	Description *string
	DueDate     *string
	IsComplete  any
}

// BucketService is the ownership-scoped CRUD store for buckets and their
// items. Every operation takes the authenticated owner's id and filters by
// it; a resource owned by someone else is reported as not found.
type BucketService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewBucketService(db *sql.DB, m repomanager.RepositoryManager) *BucketService {
	return &BucketService{db: db, repomanager: m}
}

// CreateBucket persists a new bucket for the owner. No field validation
// beyond presence of the owner; an absent name is tolerated.
func (s *BucketService) CreateBucket(ctx context.Context, ownerID int64, name, description string) (*models.Bucket, error) {

	bucket := &models.Bucket{
		Name:        name,
		Description: description,
		UserID:      ownerID,
	}

	bucket, err := s.repomanager.Buckets(s.db).Create(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("error creating bucket: %w", err)
	}

	return bucket, nil
}

// ListBuckets returns the owner's buckets, each with its full item list.
// Ordering is storage order.
func (s *BucketService) ListBuckets(ctx context.Context, ownerID int64) ([]*models.Bucket, error) {

	bucketList, err := s.repomanager.Buckets(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing buckets: %w", err)
	}

	itemRepo := s.repomanager.Items(s.db)
	for _, bucket := range bucketList {
		items, err := itemRepo.ListByBucket(ctx, bucket.ID)
		if err != nil {
			return nil, fmt.Errorf("error listing items: %w", err)
		}
		bucket.Items = items
	}

	return bucketList, nil
}

// GetBucket returns the owner's bucket with its items.
func (s *BucketService) GetBucket(ctx context.Context, ownerID, id int64) (*models.Bucket, error) {

	bucket, err := s.repomanager.Buckets(s.db).GetByOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	items, err := s.repomanager.Items(s.db).ListByBucket(ctx, bucket.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing items: %w", err)
	}
	bucket.Items = items

	return bucket, nil
}

// UpdateBucket overwrites name and description wholesale (not a partial
// patch) and returns the updated bucket with its items.
func (s *BucketService) UpdateBucket(ctx context.Context, ownerID, id int64, name, description string) (*models.Bucket, error) {

	var bucket *models.Bucket

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Buckets(tx).Update(ctx, ownerID, id, name, description); err != nil {
			return err
		}

		var err error
		bucket, err = s.repomanager.Buckets(tx).GetByOwner(ctx, ownerID, id)
		if err != nil {
			return err
		}

		bucket.Items, err = s.repomanager.Items(tx).ListByBucket(ctx, bucket.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return bucket, nil
}

// DeleteBucket removes the owner's bucket. Items go with it via the
// schema-level cascade.
func (s *BucketService) DeleteBucket(ctx context.Context, ownerID, id int64) error {
	return s.repomanager.Buckets(s.db).Delete(ctx, ownerID, id)
}

// AddItem creates an item in the owner's bucket. The bucket is resolved
// first (not found if absent or owned by someone else); then title,
// description and due_date are each required, reported per-field in
// request order. is_complete starts false.
func (s *BucketService) AddItem(ctx context.Context, ownerID, bucketID int64, title, description, dueDate string) (*models.BucketItem, error) {

	var item *models.BucketItem

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		bucket, err := s.repomanager.Buckets(tx).GetByOwner(ctx, ownerID, bucketID)
		if err != nil {
			return err
		}

		if title == "" {
			return &common.ValidationError{Field: "title"}
		}
		if description == "" {
			return &common.ValidationError{Field: "description"}
		}
		if dueDate == "" {
			return &common.ValidationError{Field: "due_date"}
		}

		due, ok := parseDueDate(dueDate)
		if !ok {
			return &common.ValidationError{Field: "due_date"}
		}

		item = &models.BucketItem{
			Title:       title,
			Description: description,
			DueDate:     due,
			BucketID:    bucket.ID,
		}

		item, err = s.repomanager.Items(tx).Create(ctx, item)
		return err
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// UpdateItem applies a partial update: each field is touched only if
// present in the request. is_complete goes through parseLooseBool.
func (s *BucketService) UpdateItem(ctx context.Context, ownerID, bucketID, itemID int64, upd ItemUpdate) (*models.BucketItem, error) {

	var item *models.BucketItem

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		bucket, err := s.repomanager.Buckets(tx).GetByOwner(ctx, ownerID, bucketID)
		if err != nil {
			return err
		}

		itemRepo := s.repomanager.Items(tx)

		item, err = itemRepo.GetByBucket(ctx, bucket.ID, itemID)
		if err != nil {
			return err
		}

		if upd.Title != nil {
			item.Title = *upd.Title
		}
		if upd.Description != nil {
			item.Description = *upd.Description
		}
		if upd.DueDate != nil {
			due, ok := parseDueDate(*upd.DueDate)
			if !ok {
				return &common.ValidationError{Field: "due_date"}
			}
			item.DueDate = due
		}
		if upd.IsComplete != nil {
			item.IsComplete = parseLooseBool(upd.IsComplete)
		}

		return itemRepo.Update(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// DeleteItem removes an item after resolving the owner's bucket.
func (s *BucketService) DeleteItem(ctx context.Context, ownerID, bucketID, itemID int64) error {

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		bucket, err := s.repomanager.Buckets(tx).GetByOwner(ctx, ownerID, bucketID)
		if err != nil {
			return err
		}

		return s.repomanager.Items(tx).Delete(ctx, bucket.ID, itemID)
	})
}
