// Package cookies persists the console's session cookies.
package cookies

import (
	"context"
	"time"
)

// Cookie is one stored cookie together with the origin it was set for.
type Cookie struct {
	Origin   string
	Name     string
	Value    string
	Path     string
	Domain   string
	Expires  time.Time
	Secure   bool
	HTTPOnly bool
}

type Repository interface {
	Save(ctx context.Context, c Cookie) error
	Delete(ctx context.Context, origin, name string) error
	List(ctx context.Context) ([]Cookie, error)
	Clear(ctx context.Context) error
}
