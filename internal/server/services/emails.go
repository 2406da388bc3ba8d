package services

import (
	"context"
	"database/sql"
	"fmt"
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/adminconsole/internal/common"
	"github.com/dmitrijs2005/adminconsole/internal/dbx"
	"github.com/dmitrijs2005/adminconsole/internal/models"
	"github.com/dmitrijs2005/adminconsole/internal/server/repositories/repomanager"
)

// EmailService backs the admin mailbox. Reading and starring are not
// audited; deleting and sending are.
type EmailService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	audit       *AuditService
}

func NewEmailService(db *sql.DB, m repomanager.RepositoryManager, audit *AuditService) *EmailService {
	return &EmailService{db: db, repomanager: m, audit: audit}
}

func (s *EmailService) List(ctx context.Context, p models.PageRequest, f models.EmailFilter) (*models.Page[models.Email], error) {
	items, total, err := s.repomanager.Emails(s.db).List(ctx, p, f)
	if err != nil {
		return nil, err
	}
	page := models.NewPage(items, p, total)
	return &page, nil
}

func (s *EmailService) Get(ctx context.Context, id string) (*models.Email, error) {
	return s.repomanager.Emails(s.db).Get(ctx, id)
}

func (s *EmailService) MarkRead(ctx context.Context, id string) error {
	return s.repomanager.Emails(s.db).MarkRead(ctx, id)
}

func (s *EmailService) SetStarred(ctx context.Context, id string, starred bool) error {
	return s.repomanager.Emails(s.db).SetStarred(ctx, id, starred)
}

func (s *EmailService) Delete(ctx context.Context, actor Actor, id string) error {
	return s.audit.record(ctx, actor, "email.delete", "email", id, "", func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Emails(tx).Delete(ctx, id)
	})
}

// Send stores an outgoing message in the sent folder, from the acting admin.
func (s *EmailService) Send(ctx context.Context, actor Actor, req models.SendEmailRequest) (*models.Email, error) {
	to := strings.TrimSpace(req.To)
	if _, err := mail.ParseAddress(to); err != nil {
		return nil, fmt.Errorf("%w: invalid recipient %q", common.ErrorValidation, req.To)
	}
	if strings.TrimSpace(req.Subject) == "" && strings.TrimSpace(req.Body) == "" {
		return nil, fmt.Errorf("%w: empty message", common.ErrorValidation)
	}

	e := &models.Email{
		Folder:  models.FolderSent,
		From:    actor.Email,
		To:      to,
		Subject: req.Subject,
		Body:    req.Body,
		Read:    true,
	}
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Emails(tx).Create(ctx, e); err != nil {
			return err
		}
		return s.audit.Record(ctx, tx, actor, "email.send", "email", e.ID, to)
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}
