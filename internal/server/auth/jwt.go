package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/bucketlist/internal/common"
)

// Claims carries the authenticated user id plus the registered expiry
// claim.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

// GenerateToken signs a token for userID with an expiry of now+validity
// (HS256). The expiry instant is returned alongside the token so the
// caller can persist it with the session.
func GenerateToken(userID int64, secretKey []byte, validityDuration time.Duration) (string, time.Time, error) {
	expiry := time.Now().UTC().Add(validityDuration)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiry, nil
}

// GetUserIDFromToken verifies the signature and returns the embedded user
// id. Claim validation is skipped: expiry is enforced against the session
// persisted on the user row, which is authoritative. Any parse or
// signature failure maps to common.ErrInvalidToken.
func GetUserIDFromToken(tokenString string, secretKey []byte) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return 0, common.ErrInvalidToken
	}

	if !token.Valid {
		return 0, common.ErrInvalidToken
	}

	return claims.UserID, nil
}
