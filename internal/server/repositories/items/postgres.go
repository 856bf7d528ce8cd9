// Package items provides the PostgreSQL-backed repository for bucket items.
package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bucketlist/internal/common"
	"github.com/dmitrijs2005/bucketlist/internal/dbx"
	"github.com/dmitrijs2005/bucketlist/internal/server/models"
)

// PostgresRepository implements item storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, item *models.BucketItem) (*models.BucketItem, error) {

	query :=
		`INSERT INTO bucket_items (title, description, due_date, bucket_id)
         VALUES ($1, $2, $3, $4)
		 RETURNING id, is_complete, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		item.Title, item.Description, item.DueDate, item.BucketID).
		Scan(&item.ID, &item.IsComplete, &item.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

func (r *PostgresRepository) ListByBucket(ctx context.Context, bucketID int64) ([]*models.BucketItem, error) {
	query := `SELECT id, title, description, is_complete, due_date, bucket_id, created_at
		 FROM bucket_items
		 WHERE bucket_id = $1
		 `

	rows, err := r.db.QueryContext(ctx, query, bucketID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.BucketItem
	for rows.Next() {
		var item models.BucketItem
		if err := rows.Scan(&item.ID, &item.Title, &item.Description,
			&item.IsComplete, &item.DueDate, &item.BucketID, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetByBucket(ctx context.Context, bucketID, id int64) (*models.BucketItem, error) {
	query := `SELECT id, title, description, is_complete, due_date, bucket_id, created_at
		 FROM bucket_items
		 WHERE bucket_id = $1 AND id = $2
		 `

	item := &models.BucketItem{}
	err := r.db.QueryRowContext(ctx, query, bucketID, id).
		Scan(&item.ID, &item.Title, &item.Description, &item.IsComplete,
			&item.DueDate, &item.BucketID, &item.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &common.NotFoundError{Resource: "BucketItem"}
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

func (r *PostgresRepository) Update(ctx context.Context, item *models.BucketItem) error {
	query := `UPDATE bucket_items SET title = $1, description = $2, is_complete = $3, due_date = $4
		 WHERE bucket_id = $5 AND id = $6
		 `

	res, err := r.db.ExecContext(ctx, query,
		item.Title, item.Description, item.IsComplete, item.DueDate, item.BucketID, item.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return expectOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, bucketID, id int64) error {
	query := `DELETE FROM bucket_items WHERE bucket_id = $1 AND id = $2`

	res, err := r.db.ExecContext(ctx, query, bucketID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return &common.NotFoundError{Resource: "BucketItem"}
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
