package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/bucketlist/internal/common"
	"github.com/dmitrijs2005/bucketlist/internal/server/models"
)

type fakeBucketsRepo struct {
	buckets []*models.Bucket
	nextID  int64
}

func (f *fakeBucketsRepo) Create(ctx context.Context, b *models.Bucket) (*models.Bucket, error) {
	f.nextID++
	b.ID = f.nextID
	b.CreatedAt = time.Now().UTC()
	stored := *b
	f.buckets = append(f.buckets, &stored)
	return b, nil
}

func (f *fakeBucketsRepo) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Bucket, error) {
	var result []*models.Bucket
	for _, b := range f.buckets {
		if b.UserID == ownerID {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeBucketsRepo) GetByOwner(ctx context.Context, ownerID, id int64) (*models.Bucket, error) {
	for _, b := range f.buckets {
		if b.UserID == ownerID && b.ID == id {
			copied := *b
			return &copied, nil
		}
	}
	return nil, &common.NotFoundError{Resource: "Bucket"}
}

func (f *fakeBucketsRepo) Update(ctx context.Context, ownerID, id int64, name, description string) error {
	for _, b := range f.buckets {
		if b.UserID == ownerID && b.ID == id {
			b.Name = name
			b.Description = description
			return nil
		}
	}
	return &common.NotFoundError{Resource: "Bucket"}
}

func (f *fakeBucketsRepo) Delete(ctx context.Context, ownerID, id int64) error {
	for i, b := range f.buckets {
		if b.UserID == ownerID && b.ID == id {
			f.buckets = append(f.buckets[:i], f.buckets[i+1:]...)
			return nil
		}
	}
	return &common.NotFoundError{Resource: "Bucket"}
}

type fakeItemsRepo struct {
	items  []*models.BucketItem
	nextID int64
}

func (f *fakeItemsRepo) Create(ctx context.Context, item *models.BucketItem) (*models.BucketItem, error) {
	f.nextID++
	item.ID = f.nextID
	item.CreatedAt = time.Now().UTC()
	stored := *item
	f.items = append(f.items, &stored)
	return item, nil
}

func (f *fakeItemsRepo) ListByBucket(ctx context.Context, bucketID int64) ([]*models.BucketItem, error) {
	var result []*models.BucketItem
	for _, item := range f.items {
		if item.BucketID == bucketID {
			copied := *item
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeItemsRepo) GetByBucket(ctx context.Context, bucketID, id int64) (*models.BucketItem, error) {
	for _, item := range f.items {
		if item.BucketID == bucketID && item.ID == id {
			copied := *item
			return &copied, nil
		}
	}
	return nil, &common.NotFoundError{Resource: "BucketItem"}
}

func (f *fakeItemsRepo) Update(ctx context.Context, item *models.BucketItem) error {
	for i, stored := range f.items {
		if stored.BucketID == item.BucketID && stored.ID == item.ID {
			copied := *item
			f.items[i] = &copied
			return nil
		}
	}
	return &common.NotFoundError{Resource: "BucketItem"}
}

func (f *fakeItemsRepo) Delete(ctx context.Context, bucketID, id int64) error {
	for i, item := range f.items {
		if item.BucketID == bucketID && item.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return &common.NotFoundError{Resource: "BucketItem"}
}

func newBucketService(t *testing.T) *BucketService {
	t.Helper()
	db, mock := newSQLMockDB(t)
	t.Cleanup(func() { _ = db.Close() })
	// mutations run inside a transaction; prime enough expectations for
	// any mix of commits and rollbacks
	mock.MatchExpectationsInOrder(false)
	for n := 0; n < 12; n++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
		mock.ExpectRollback()
	}
	return NewBucketService(db, &fakeRepoManager{b: &fakeBucketsRepo{}, i: &fakeItemsRepo{}})
}

func TestCreateBucket_ToleratesEmptyName(t *testing.T) {
	s := newBucketService(t)

	bucket, err := s.CreateBucket(context.Background(), 1, "", "")
	if err != nil {
		t.Fatalf("CreateBucket error: %v", err)
	}
	if bucket.ID == 0 || bucket.UserID != 1 {
		t.Fatalf("unexpected bucket: %+v", bucket)
	}
}

func TestListBuckets_NestsItemsAndScopesToOwner(t *testing.T) {
	s := newBucketService(t)

	mine, err := s.CreateBucket(context.Background(), 1, "Trip", "around the world")
	if err != nil {
		t.Fatalf("CreateBucket error: %v", err)
	}
	if _, err := s.CreateBucket(context.Background(), 2, "Other", ""); err != nil {
		t.Fatalf("CreateBucket error: %v", err)
	}
	if _, err := s.AddItem(context.Background(), 1, mine.ID, "Pack", "bags", "2030-01-01"); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}

	list, err := s.ListBuckets(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListBuckets error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected exactly the owner's bucket, got %d", len(list))
	}
	if len(list[0].Items) != 1 || list[0].Items[0].Title != "Pack" {
		t.Fatalf("expected nested item, got %+v", list[0].Items)
	}
	if list[0].Items[0].IsComplete {
		t.Fatal("new item must default to incomplete")
	}
}

func TestGetBucket_OtherOwnerIsNotFound(t *testing.T) {
	s := newBucketService(t)

	bucket, err := s.CreateBucket(context.Background(), 1, "Trip", "")
	if err != nil {
		t.Fatalf("CreateBucket error: %v", err)
	}

	// user 2 guessing user 1's id must see a plain not-found
	_, err = s.GetBucket(context.Background(), 2, bucket.ID)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestUpdateBucket_OverwritesWholesale(t *testing.T) {
	s := newBucketService(t)

	bucket, err := s.CreateBucket(context.Background(), 1, "Trip", "around the world")
	if err != nil {
		t.Fatalf("CreateBucket error: %v", err)
	}

	updated, err := s.UpdateBucket(context.Background(), 1, bucket.ID, "Renamed", "")
	if err != nil {
		t.Fatalf("UpdateBucket error: %v", err)
	}
	if updated.Name != "Renamed" || updated.Description != "" {
		t.Fatalf("expected full overwrite, got %+v", updated)
	}
}

func TestAddItem_MissingFieldsReportedInOrder(t *testing.T) {
	s := newBucketService(t)

	bucket, err := s.CreateBucket(context.Background(), 1, "Trip", "")
	if err != nil {
		t.Fatalf("CreateBucket error: %v", err)
	}

	tests := []struct {
		name                        string
		title, description, dueDate string
		wantField                   string
	}{
		{"no title", "", "bags", "2030-01-01", "title"},
		{"no description", "Pack", "", "2030-01-01", "description"},
		{"no due date", "Pack", "bags", "", "due_date"},
		{"bad due date", "Pack", "bags", "someday", "due_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.AddItem(context.Background(), 1, bucket.ID, tt.title, tt.description, tt.dueDate)
			var invalid *common.ValidationError
			if !errors.As(err, &invalid) || invalid.Field != tt.wantField {
				t.Fatalf("want ValidationError(%s), got %v", tt.wantField, err)
			}
		})
	}

	items, err := s.ListBuckets(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListBuckets error: %v", err)
	}
	if len(items[0].Items) != 0 {
		t.Fatal("no item must be persisted on validation failure")
	}
}

func TestAddItem_UnknownBucketIsNotFound(t *testing.T) {
	s := newBucketService(t)

	_, err := s.AddItem(context.Background(), 1, 99, "Pack", "bags", "2030-01-01")
	var nf *common.NotFoundError
	if !errors.As(err, &nf) || nf.Resource != "Bucket" {
		t.Fatalf("want NotFoundError(Bucket), got %v", err)
	}
}

func TestUpdateItem_PartialLeavesOtherFieldsUnchanged(t *testing.T) {
	s := newBucketService(t)

	bucket, err := s.CreateBucket(context.Background(), 1, "Trip", "")
	if err != nil {
		t.Fatalf("CreateBucket error: %v", err)
	}
	item, err := s.AddItem(context.Background(), 1, bucket.ID, "Pack", "bags", "2030-01-01")
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}

	title := "Repack"
	updated, err := s.UpdateItem(context.Background(), 1, bucket.ID, item.ID, ItemUpdate{Title: &title})
	if err != nil {
		t.Fatalf("UpdateItem error: %v", err)
	}
	if updated.Title != "Repack" {
		t.Fatalf("title not applied: %+v", updated)
	}
	if updated.Description != "bags" || updated.IsComplete || !updated.DueDate.Equal(item.DueDate) {
		t.Fatalf("unspecified fields must be unchanged: %+v", updated)
	}
}

func TestUpdateItem_LooseIsCompleteCoercion(t *testing.T) {
	s := newBucketService(t)

	bucket, _ := s.CreateBucket(context.Background(), 1, "Trip", "")
	item, err := s.AddItem(context.Background(), 1, bucket.ID, "Pack", "bags", "2030-01-01")
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}

	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"json number one", float64(1), true},
		{"json number zero", float64(0), false},
		{"numeric string", "1", true},
		{"non-numeric string defaults false", "yes", false},
		{"bool passthrough", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, err := s.UpdateItem(context.Background(), 1, bucket.ID, item.ID, ItemUpdate{IsComplete: tt.value})
			if err != nil {
				t.Fatalf("UpdateItem error: %v", err)
			}
			if updated.IsComplete != tt.want {
				t.Fatalf("is_complete = %v, want %v", updated.IsComplete, tt.want)
			}
		})
	}
}

func TestDeleteItem_ThenMissing(t *testing.T) {
	s := newBucketService(t)

	bucket, _ := s.CreateBucket(context.Background(), 1, "Trip", "")
	item, err := s.AddItem(context.Background(), 1, bucket.ID, "Pack", "bags", "2030-01-01")
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}

	if err := s.DeleteItem(context.Background(), 1, bucket.ID, item.ID); err != nil {
		t.Fatalf("DeleteItem error: %v", err)
	}

	err = s.DeleteItem(context.Background(), 1, bucket.ID, item.ID)
	var nf *common.NotFoundError
	if !errors.As(err, &nf) || nf.Resource != "BucketItem" {
		t.Fatalf("want NotFoundError(BucketItem), got %v", err)
	}
}

func TestDeleteBucket_OtherOwnerIsNotFound(t *testing.T) {
	s := newBucketService(t)

	bucket, _ := s.CreateBucket(context.Background(), 1, "Trip", "")

	if err := s.DeleteBucket(context.Background(), 2, bucket.ID); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
	if err := s.DeleteBucket(context.Background(), 1, bucket.ID); err != nil {
		t.Fatalf("DeleteBucket error: %v", err)
	}
}
