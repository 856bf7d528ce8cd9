// Package buckets provides the PostgreSQL-backed repository for buckets,
// always scoped to the owning user.
package buckets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bucketlist/internal/common"
	"github.com/dmitrijs2005/bucketlist/internal/dbx"
	"github.com/dmitrijs2005/bucketlist/internal/server/models"
)

// PostgresRepository implements bucket storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, bucket *models.Bucket) (*models.Bucket, error) {

	query :=
		`INSERT INTO buckets (name, description, user_id)
         VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		bucket.Name, bucket.Description, bucket.UserID).Scan(&bucket.ID, &bucket.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return bucket, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Bucket, error) {
	query := `SELECT id, name, description, user_id, created_at FROM buckets
		 WHERE user_id = $1
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Bucket
	for rows.Next() {
		var b models.Bucket
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.UserID, &b.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetByOwner(ctx context.Context, ownerID, id int64) (*models.Bucket, error) {
	query := `SELECT id, name, description, user_id, created_at FROM buckets
		 WHERE user_id = $1 AND id = $2
		 `

	b := &models.Bucket{}
	err := r.db.QueryRowContext(ctx, query, ownerID, id).
		Scan(&b.ID, &b.Name, &b.Description, &b.UserID, &b.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &common.NotFoundError{Resource: "Bucket"}
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return b, nil
}

func (r *PostgresRepository) Update(ctx context.Context, ownerID, id int64, name, description string) error {
	query := `UPDATE buckets SET name = $1, description = $2
		 WHERE user_id = $3 AND id = $4
		 `

	res, err := r.db.ExecContext(ctx, query, name, description, ownerID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return expectOneRow(res, "Bucket")
}

// Delete removes the bucket; its items go with it via the schema-level
// cascade.
func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id int64) error {
	query := `DELETE FROM buckets WHERE user_id = $1 AND id = $2`

	res, err := r.db.ExecContext(ctx, query, ownerID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return expectOneRow(res, "Bucket")
}

func expectOneRow(res sql.Result, resource string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return &common.NotFoundError{Resource: resource}
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
