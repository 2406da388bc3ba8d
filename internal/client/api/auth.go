package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/adminconsole/internal/client/transport"
	"github.com/dmitrijs2005/adminconsole/internal/models"
)

// Auth endpoints bypass the refresh cycle: a 401 here is final.
type Auth struct {
	d transport.Doer
}

func (a *Auth) Login(ctx context.Context, email, password string) (models.CurrentUser, error) {
	var u models.CurrentUser
	err := a.d.Do(ctx, transport.Request{
		Method:           http.MethodPost,
		Path:             "/auth/login",
		Body:             models.LoginRequest{Email: email, Password: password},
		SkipAuthRecovery: true,
	}, &u)
	return u, err
}

func (a *Auth) Logout(ctx context.Context) error {
	return a.d.Do(ctx, transport.Request{Method: http.MethodPost, Path: "/auth/logout", SkipAuthRecovery: true}, nil)
}

func (a *Auth) Refresh(ctx context.Context) error {
	return a.d.Do(ctx, transport.Request{Method: http.MethodPost, Path: "/auth/refresh", SkipAuthRecovery: true}, nil)
}

// Check returns the user behind the current session cookie.
func (a *Auth) Check(ctx context.Context) (models.CurrentUser, error) {
	var u models.CurrentUser
	err := a.d.Do(ctx, transport.Request{Method: http.MethodGet, Path: "/auth/check", SkipAuthRecovery: true}, &u)
	return u, err
}
