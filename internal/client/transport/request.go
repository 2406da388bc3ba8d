package transport

import (
	"context"
	"net/http"
	"net/url"
)

// Request describes one API call. Path is relative to the /api root.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	// SkipAuthRecovery sends the request without the refresh-and-replay
	// cycle; used by the auth endpoints themselves.
	SkipAuthRecovery bool
}

// Doer is implemented by *Client.
type Doer interface {
	Do(ctx context.Context, req Request, out any) error
}

func Get[T any](ctx context.Context, d Doer, path string, query url.Values) (T, error) {
	var out T
	err := d.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, &out)
	return out, err
}

func Post[T any](ctx context.Context, d Doer, path string, body any) (T, error) {
	var out T
	err := d.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, &out)
	return out, err
}

func Put[T any](ctx context.Context, d Doer, path string, body any) (T, error) {
	var out T
	err := d.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body}, &out)
	return out, err
}

func Patch[T any](ctx context.Context, d Doer, path string, body any) (T, error) {
	var out T
	err := d.Do(ctx, Request{Method: http.MethodPatch, Path: path, Body: body}, &out)
	return out, err
}

func Delete[T any](ctx context.Context, d Doer, path string) (T, error) {
	var out T
	err := d.Do(ctx, Request{Method: http.MethodDelete, Path: path}, &out)
	return out, err
}

// PathJoin builds an API path from escaped segments.
func PathJoin(segments ...string) string {
	p := ""
	for _, s := range segments {
		p += "/" + url.PathEscape(s)
	}
	return p
}
