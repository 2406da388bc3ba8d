// Package metadata stores small key/value facts about the local console
// session, such as the email used for the last login.
package metadata

import (
	"context"
)

const KeyLastEmail = "last_email"

type Repository interface {
	// Get returns ok=false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
