// Package services contains the domain services of the bucketlist server:
// credentials and sessions (UserService) and ownership-scoped CRUD for
// buckets and items (BucketService).
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/bucketlist/internal/common"
	"github.com/dmitrijs2005/bucketlist/internal/dbx"
	"github.com/dmitrijs2005/bucketlist/internal/server/auth"
	"github.com/dmitrijs2005/bucketlist/internal/server/config"
	"github.com/dmitrijs2005/bucketlist/internal/server/models"
	"github.com/dmitrijs2005/bucketlist/internal/server/repositories/repomanager"
)

// logoutBackdate is how far into the past logout moves the stored expiry.
const logoutBackdate = 20 * time.Minute

// UserService owns user identity and the single live session per user. A
// successful login replaces the stored session wholesale, invalidating any
// previously issued token.
type UserService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:            db,
		repomanager:   m,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
	}
}

// Register creates a new user with a bcrypt-hashed password and no session.
// Email uniqueness is checked before username; the first duplicate wins and
// is reported as a ConflictError naming the field.
func (s *UserService) Register(ctx context.Context, firstName, lastName, userName, email, password string) (int64, error) {

	repo := s.repomanager.Users(s.db)

	emailExists, err := repo.HasEmail(ctx, email)
	if err != nil {
		return 0, fmt.Errorf("error checking email: %w", err)
	}
	if emailExists {
		return 0, &common.ConflictError{Field: "email"}
	}

	userNameExists, err := repo.HasUserName(ctx, userName)
	if err != nil {
		return 0, fmt.Errorf("error checking username: %w", err)
	}
	if userNameExists {
		return 0, &common.ConflictError{Field: "username"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		FirstName:    firstName,
		LastName:     lastName,
		UserName:     userName,
		Email:        email,
		PasswordHash: string(hash),
	}

	user, err = repo.Create(ctx, user)
	if err != nil {
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return user.ID, nil
}

// checkPassword verifies a candidate against the stored bcrypt hash.
// bcrypt's comparison is constant-time over the digest.
func (s *UserService) checkPassword(passwordHash, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(candidate)) == nil
}

// Login authenticates by username or email (username checked first),
// issues a signed token embedding the user id, and persists the new
// session on the user row. Two concurrent logins race benignly: the last
// commit wins and the other token fails the stored-token check on first use.
func (s *UserService) Login(ctx context.Context, identifier, password string) (string, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUserName(ctx, identifier)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorInternal
		}
		user, err = repo.GetByEmail(ctx, identifier)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return "", common.ErrorUnauthorized
			}
			return "", common.ErrorInternal
		}
	}

	if !s.checkPassword(user.PasswordHash, password) {
		return "", common.ErrorUnauthorized
	}

	token, expiry, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", common.ErrorInternal
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Users(tx).UpdateSession(ctx, user.ID, models.Session{
			Token:     token,
			ExpiresAt: expiry,
		})
	})
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// Logout invalidates the current session by backdating its expiry. The
// token value is kept; it simply stops passing the expiry check.
func (s *UserService) Logout(ctx context.Context, user *models.User) error {

	session := models.Session{
		Token:     user.Session.Token,
		ExpiresAt: time.Now().UTC().Add(-logoutBackdate),
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Users(tx).UpdateSession(ctx, user.ID, session)
	})
	if err != nil {
		return common.ErrorInternal
	}

	return nil
}

// ResetPassword rehashes and overwrites the password after verifying the
// old one. The session is left untouched. A wrong old password is reported
// as ErrWrongOldPassword, which the HTTP layer renders as a 200 with a
// message body (a preserved quirk of the public contract).
func (s *UserService) ResetPassword(ctx context.Context, user *models.User, oldPassword, newPassword string) error {

	if !s.checkPassword(user.PasswordHash, oldPassword) {
		return common.ErrWrongOldPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return common.ErrorInternal
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Users(tx).UpdatePasswordHash(ctx, user.ID, string(hash))
	})
	if err != nil {
		return common.ErrorInternal
	}

	return nil
}

// Authenticate resolves a presented token to its user. The checks run in
// order: verify the signature and decode, resolve the embedded user id,
// require equality with the stored token (this is what invalidates a
// superseded login), and finally require the stored expiry to be in the
// future. Signature failure is indistinguishable from any other invalid
// token.
func (s *UserService) Authenticate(ctx context.Context, presentedToken string) (*models.User, error) {

	if presentedToken == "" {
		return nil, common.ErrMissingToken
	}

	userID, err := auth.GetUserIDFromToken(presentedToken, s.jwtSecret)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, common.ErrorInternal
	}

	if user.Session.Token == "" || presentedToken != user.Session.Token {
		return nil, common.ErrInvalidToken
	}

	if !time.Now().UTC().Before(user.Session.ExpiresAt) {
		return nil, common.ErrTokenExpired
	}

	return user, nil
}
