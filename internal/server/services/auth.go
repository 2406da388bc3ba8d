// Package services contains the admin API business logic. This file
// implements AuthService, which checks credentials, issues JWT access
// tokens and rotates server-stored refresh tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/adminconsole/internal/common"
	"github.com/dmitrijs2005/adminconsole/internal/cryptox"
	"github.com/dmitrijs2005/adminconsole/internal/dbx"
	"github.com/dmitrijs2005/adminconsole/internal/models"
	"github.com/dmitrijs2005/adminconsole/internal/server/auth"
	"github.com/dmitrijs2005/adminconsole/internal/server/config"
	smodels "github.com/dmitrijs2005/adminconsole/internal/server/models"
	"github.com/dmitrijs2005/adminconsole/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// dummyHash is compared against when the email is unknown, so a miss costs
// about as much as a wrong password.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3XLZr6AqTUPDvD4n6Cy9Bya"

type AuthService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	audit                        *AuditService
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, audit *AuditService, cfg *config.Config) *AuthService {
	return &AuthService{
		db:                           db,
		repomanager:                  m,
		audit:                        audit,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Login verifies email and password and returns the principal with a fresh
// token pair. Unknown emails and wrong passwords both yield
// common.ErrInvalidCredentials; banned or pending accounts common.ErrorForbidden.
func (s *AuthService) Login(ctx context.Context, email, password string, meta RequestMeta) (*models.CurrentUser, *TokenPair, error) {
	repo := s.repomanager.Users(s.db)
	acc, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = cryptox.CheckPassword(dummyHash, []byte(password))
			return nil, nil, common.ErrInvalidCredentials
		}
		return nil, nil, common.ErrorInternal
	}
	if err := cryptox.CheckPassword(acc.PasswordHash, []byte(password)); err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			return nil, nil, err
		}
		return nil, nil, common.ErrorInternal
	}
	if acc.Status != models.UserActive {
		return nil, nil, common.ErrorForbidden
	}

	var pair *TokenPair
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).TouchLastLogin(ctx, acc.ID); err != nil {
			return err
		}
		var genErr error
		if pair, genErr = s.generateTokenPair(ctx, acc.ID, acc.Role, tx); genErr != nil {
			return genErr
		}
		return s.audit.Record(ctx, tx, Actor{ID: acc.ID, Email: acc.Email, RequestMeta: meta}, "auth.login", "user", acc.ID, "")
	})
	if err != nil {
		return nil, nil, fmt.Errorf("error signing in: %w", err)
	}

	u := acc.CurrentUser()
	return &u, pair, nil
}

// Refresh redeems a refresh token and returns a new pair. The old token is
// consumed in the same transaction that stores its replacement. An expired
// token is still consumed, so it does not linger in storage.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, common.ErrInvalidToken
	}

	var pair *TokenPair
	expired := false
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		token, err := s.repomanager.RefreshTokens(tx).Consume(ctx, refreshToken)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidToken
			}
			return fmt.Errorf("error consuming refresh token: %w", err)
		}
		if token.Expired(time.Now()) {
			expired = true
			return nil
		}

		user, err := s.repomanager.Users(tx).Get(ctx, token.UserID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidToken
			}
			return err
		}
		if user.Status != models.UserActive {
			return common.ErrorForbidden
		}

		var genErr error
		pair, genErr = s.generateTokenPair(ctx, user.ID, user.Role, tx)
		return genErr
	})
	if err != nil {
		return nil, err
	}
	if expired {
		return nil, common.ErrRefreshTokenExpired
	}
	return pair, nil
}

// Logout revokes the refresh token, if any.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.repomanager.RefreshTokens(s.db).Delete(ctx, refreshToken)
}

// Authenticate resolves an access token to the current user. The account is
// re-read so bans and deletions take effect before the token expires.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*models.CurrentUser, error) {
	claims, err := auth.ParseToken(accessToken, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	user, err := s.repomanager.Users(s.db).Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, err
	}
	if user.Status != models.UserActive {
		return nil, common.ErrorForbidden
	}
	return &models.CurrentUser{ID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role}, nil
}

// EnsureAdmin creates an active admin account for email unless one exists.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	repo := s.repomanager.Users(s.db)
	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, common.ErrorNotFound) {
		return err
	}

	hash, err := cryptox.HashPassword([]byte(password))
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	_, err = repo.Create(ctx, &smodels.Account{
		User: models.User{
			Email:    email,
			Name:     "Administrator",
			Role:     models.RoleAdmin,
			Status:   models.UserActive,
			Provider: "local",
		},
		PasswordHash: hash,
	})
	if err != nil && !errors.Is(err, common.ErrorConflict) {
		return fmt.Errorf("error creating admin: %w", err)
	}
	return nil
}

// AccessTokenValidity is the lifetime of issued access tokens.
func (s *AuthService) AccessTokenValidity() time.Duration { return s.accessTokenValidityDuration }

// RefreshTokenValidity is the lifetime of issued refresh tokens.
func (s *AuthService) RefreshTokenValidity() time.Duration { return s.refreshTokenValidityDuration }

func (s *AuthService) generateTokenPair(ctx context.Context, userID string, role models.UserRole, tx dbx.DBTX) (*TokenPair, error) {
	access, err := auth.GenerateToken(userID, role, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := s.repomanager.RefreshTokens(tx).Create(ctx, userID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
