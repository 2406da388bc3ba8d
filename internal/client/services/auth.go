package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/adminconsole/internal/client/transport"
	"github.com/dmitrijs2005/adminconsole/internal/logging"
	"github.com/dmitrijs2005/adminconsole/internal/models"
	"github.com/sethvargo/go-retry"
)

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (models.CurrentUser, error)
	Logout(ctx context.Context) error
	Check(ctx context.Context) (models.CurrentUser, error)
}

// SessionStore remembers who logged in last.
type SessionStore interface {
	LastEmail(ctx context.Context) (string, error)
	SetLastEmail(ctx context.Context, email string) error
}

// CookieStore drops the session cookies on logout.
type CookieStore interface {
	Clear(ctx context.Context) error
}

type AuthService struct {
	api      AuthAPI
	store    SessionStore
	cookies  CookieStore
	log      logging.Logger
	attempts uint64
	interval time.Duration
}

func NewAuthService(api AuthAPI, store SessionStore, cookies CookieStore, log logging.Logger, attempts int, interval time.Duration) *AuthService {
	if attempts < 1 {
		attempts = 1
	}
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	if log == nil {
		log = logging.Nop()
	}
	return &AuthService{
		api:      api,
		store:    store,
		cookies:  cookies,
		log:      log,
		attempts: uint64(attempts),
		interval: interval,
	}
}

// Login signs in and rejects accounts without the admin role.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.CurrentUser, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.CurrentUser{}, fmt.Errorf("email and password: %w", ErrEmptyField)
	}

	u, err := s.api.Login(ctx, email, password)
	if err != nil {
		return models.CurrentUser{}, err
	}
	if err := s.store.SetLastEmail(ctx, email); err != nil {
		s.log.Warn(ctx, "failed to remember login email", "error", err)
	}
	if u.Role != models.RoleAdmin {
		_ = s.Logout(ctx)
		return models.CurrentUser{}, ErrNotAdmin
	}
	return u, nil
}

// Logout ends the session on the server (best effort) and forgets the
// local cookies.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.api.Logout(ctx); err != nil {
		s.log.Warn(ctx, "server logout failed", "error", err)
	}
	return s.cookies.Clear(ctx)
}

func (s *AuthService) Check(ctx context.Context) (models.CurrentUser, error) {
	return s.api.Check(ctx)
}

func (s *AuthService) LastEmail(ctx context.Context) string {
	v, err := s.store.LastEmail(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to read last login email", "error", err)
	}
	return v
}

// AwaitSession polls the auth-check endpoint until it confirms a session,
// up to the configured number of attempts. Only 401s and transport
// failures are retried.
func (s *AuthService) AwaitSession(ctx context.Context) (models.CurrentUser, error) {
	var u models.CurrentUser
	backoff := retry.WithMaxRetries(s.attempts-1, retry.NewConstant(s.interval))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		u, err = s.api.Check(ctx)
		if err == nil {
			return nil
		}
		if errors.Is(err, transport.ErrUnauthorized) || errors.Is(err, transport.ErrNetwork) ||
			errors.Is(err, transport.ErrTimeout) {
			s.log.Debug(ctx, "session not ready yet", "error", err)
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		if errors.Is(err, transport.ErrUnauthorized) {
			return models.CurrentUser{}, fmt.Errorf("%w: %w", ErrSessionNotReady, err)
		}
		return models.CurrentUser{}, err
	}
	if u.Role != models.RoleAdmin {
		return models.CurrentUser{}, ErrNotAdmin
	}
	return u, nil
}
