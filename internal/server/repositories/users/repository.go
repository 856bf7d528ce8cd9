package users

import (
	"context"

	"github.com/dmitrijs2005/bucketlist/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUserName(ctx context.Context, userName string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	HasEmail(ctx context.Context, email string) (bool, error)
	HasUserName(ctx context.Context, userName string) (bool, error)
	UpdateSession(ctx context.Context, id int64, session models.Session) error
	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error
}
