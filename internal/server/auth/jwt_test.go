package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/bucketlist/internal/common"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	var userID int64 = 123

	tok, expiry, err := GenerateToken(userID, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	if !expiry.After(time.Now().UTC().Add(59 * time.Minute)) {
		t.Fatalf("expiry too early: %v", expiry)
	}

	gotUserID, err := GetUserIDFromToken(tok, secret)
	if err != nil {
		t.Fatalf("GetUserIDFromToken error: %v", err)
	}
	if gotUserID != userID {
		t.Fatalf("userID mismatch: got %d want %d", gotUserID, userID)
	}
}

func TestGetUserIDFromToken_ExpiredStillParses(t *testing.T) {
	t.Parallel()

	// Expiry is enforced against the stored session, not the claim, so a
	// correctly signed token with a past expiry must still decode.
	secret := []byte("secret")
	tok, _, err := GenerateToken(1, secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	gotUserID, err := GetUserIDFromToken(tok, secret)
	if err != nil {
		t.Fatalf("expected expired token to decode, got %v", err)
	}
	if gotUserID != 1 {
		t.Fatalf("userID mismatch: got %d", gotUserID)
	}
}

func TestGetUserIDFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, _, err := GenerateToken(2, []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetUserIDFromToken(tok, []byte("wrong-secret"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestGetUserIDFromToken_Garbage(t *testing.T) {
	t.Parallel()

	_, err := GetUserIDFromToken("not-a-jwt", []byte("secret"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
