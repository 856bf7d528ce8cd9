// Package httpapi exposes the bucketlist service over a REST API. Routing
// and request handling are built on echo; authentication is a middleware
// that resolves the session token into a user before protected handlers
// run.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/bucketlist/internal/logging"
	"github.com/dmitrijs2005/bucketlist/internal/server/config"
	"github.com/dmitrijs2005/bucketlist/internal/server/models"
	"github.com/dmitrijs2005/bucketlist/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type userService interface {
	Register(ctx context.Context, firstName, lastName, userName, email, password string) (int64, error)
	Login(ctx context.Context, identifier, password string) (string, error)
	Logout(ctx context.Context, user *models.User) error
	ResetPassword(ctx context.Context, user *models.User, oldPassword, newPassword string) error
	Authenticate(ctx context.Context, presentedToken string) (*models.User, error)
}

type bucketService interface {
	CreateBucket(ctx context.Context, ownerID int64, name, description string) (*models.Bucket, error)
	ListBuckets(ctx context.Context, ownerID int64) ([]*models.Bucket, error)
	GetBucket(ctx context.Context, ownerID, id int64) (*models.Bucket, error)
	UpdateBucket(ctx context.Context, ownerID, id int64, name, description string) (*models.Bucket, error)
	DeleteBucket(ctx context.Context, ownerID, id int64) error
	AddItem(ctx context.Context, ownerID, bucketID int64, title, description, dueDate string) (*models.BucketItem, error)
	UpdateItem(ctx context.Context, ownerID, bucketID, itemID int64, upd services.ItemUpdate) (*models.BucketItem, error)
	DeleteItem(ctx context.Context, ownerID, bucketID, itemID int64) error
}

type Server struct {
	address     string
	tokenHeader string
	logger      logging.Logger
	users       userService
	buckets     bucketService
	echo        *echo.Echo
}

func NewServer(cfg *config.Config, l logging.Logger, us userService, bs bucketService) *Server {
	s := &Server{
		address:     cfg.EndpointAddr,
		tokenHeader: cfg.TokenHeaderName,
		logger:      l.With("module", "http_server"),
		users:       us,
		buckets:     bs,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(s.requestLogger)

	e.POST("/auth/register", s.register)
	e.POST("/auth/login", s.login)

	protected := e.Group("", s.authenticate)
	protected.POST("/auth/logout", s.logout)
	protected.POST("/auth/reset-password", s.resetPassword)

	protected.GET("/bucketlists", s.listBuckets)
	protected.POST("/bucketlists", s.createBucket)
	protected.GET("/bucketlists/:id", s.getBucket)
	protected.PUT("/bucketlists/:id", s.updateBucket)
	protected.DELETE("/bucketlists/:id", s.deleteBucket)

	protected.POST("/bucketlists/:id/items", s.addItem)
	protected.PUT("/bucketlists/:bucket_id/items/:item_id", s.updateItem)
	protected.DELETE("/bucketlists/:bucket_id/items/:item_id", s.deleteItem)

	s.echo = e
	return s
}

func (s *Server) Run(ctx context.Context) error {

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
