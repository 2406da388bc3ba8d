// Package auth issues and validates the access tokens carried in the
// access_token cookie.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/adminconsole/internal/common"
	"github.com/dmitrijs2005/adminconsole/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the registered claims plus the user's id and role.
// Subject mirrors UserID so generic JWT tooling can read it.
type Claims struct {
	jwt.RegisteredClaims
	UserID string          `json:"uid"`
	Role   models.UserRole `json:"role"`
}

// GenerateToken signs an HS256 token for the user valid for validity.
func GenerateToken(userID string, role models.UserRole, secretKey []byte, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		UserID: userID,
		Role:   role,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// ParseToken validates tokenString and returns its claims. An expired token
// yields common.ErrTokenExpired, anything else unusable common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	if !token.Valid || claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}
