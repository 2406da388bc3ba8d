package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/adminconsole/internal/common"
	"github.com/dmitrijs2005/adminconsole/internal/dbx"
	"github.com/dmitrijs2005/adminconsole/internal/models"
	"github.com/dmitrijs2005/adminconsole/internal/server/repositories/repomanager"
)

// UserService manages end-user accounts.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	audit       *AuditService
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, audit *AuditService) *UserService {
	return &UserService{db: db, repomanager: m, audit: audit}
}

func (s *UserService) List(ctx context.Context, p models.PageRequest, f models.UserFilter) (*models.Page[models.User], error) {
	items, total, err := s.repomanager.Users(s.db).List(ctx, p, f)
	if err != nil {
		return nil, err
	}
	page := models.NewPage(items, p, total)
	return &page, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.repomanager.Users(s.db).Get(ctx, id)
}

// SetStatus bans, activates or suspends a user. Admins cannot change their
// own status.
func (s *UserService) SetStatus(ctx context.Context, actor Actor, id string, status models.UserStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", common.ErrorValidation, status)
	}
	if id == actor.ID {
		return fmt.Errorf("%w: cannot change your own status", common.ErrorValidation)
	}
	return s.audit.record(ctx, actor, "user.status", "user", id, string(status), func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Users(tx).SetStatus(ctx, id, status)
	})
}

func (s *UserService) Delete(ctx context.Context, actor Actor, id string) error {
	if id == actor.ID {
		return fmt.Errorf("%w: cannot delete your own account", common.ErrorValidation)
	}
	return s.audit.record(ctx, actor, "user.delete", "user", id, "", func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Users(tx).Delete(ctx, id)
	})
}
