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

// PostService moderates user posts.
type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	audit       *AuditService
}

func NewPostService(db *sql.DB, m repomanager.RepositoryManager, audit *AuditService) *PostService {
	return &PostService{db: db, repomanager: m, audit: audit}
}

func (s *PostService) List(ctx context.Context, p models.PageRequest, f models.PostFilter) (*models.Page[models.Post], error) {
	items, total, err := s.repomanager.Posts(s.db).List(ctx, p, f)
	if err != nil {
		return nil, err
	}
	page := models.NewPage(items, p, total)
	return &page, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	return s.repomanager.Posts(s.db).Get(ctx, id)
}

func (s *PostService) SetStatus(ctx context.Context, actor Actor, id string, status models.PostStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", common.ErrorValidation, status)
	}
	return s.audit.record(ctx, actor, "post.status", "post", id, string(status), func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Posts(tx).SetStatus(ctx, id, status)
	})
}

func (s *PostService) Delete(ctx context.Context, actor Actor, id string) error {
	return s.audit.record(ctx, actor, "post.delete", "post", id, "", func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Posts(tx).Delete(ctx, id)
	})
}
