package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the identity a token asserts: registered claims plus
// the fields the front ends read back out of the payload segment.
type Claims struct {
	jwt.RegisteredClaims
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// MintToken signs an HS256 token for the account, expiring after ttl.
func MintToken(account *Account, secret []byte, ttl time.Duration, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:      account.ID,
		Email:       account.Email,
		DisplayName: account.DisplayName,
	})

	return token.SignedString(secret)
}

// ParseToken verifies signature and expiry and returns the claims.
// Malformed, tampered, and expired tokens all return ErrInvalidToken;
// the caller never has to distinguish.
func ParseToken(tokenString string, secret []byte, now func() time.Time) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(now))
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
