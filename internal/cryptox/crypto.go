// Package cryptox wraps password hashing for stored admin credentials.
package cryptox

import (
	"errors"

	"github.com/dmitrijs2005/adminconsole/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor used for new hashes.
var Cost = bcrypt.DefaultCost

// HashPassword returns the bcrypt hash of password.
func HashPassword(password []byte) (string, error) {
	h, err := bcrypt.GenerateFromPassword(password, Cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// CheckPassword compares password with a stored hash. A mismatch yields
// common.ErrInvalidCredentials; a malformed hash is returned as is.
func CheckPassword(hash string, password []byte) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), password)
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return common.ErrInvalidCredentials
	}
	return err
}
