// Package posts provides the PostgreSQL-backed post repository.
package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/adminconsole/internal/common"
	"github.com/dmitrijs2005/adminconsole/internal/dbx"
	"github.com/dmitrijs2005/adminconsole/internal/models"
)

const selectPosts = `SELECT p.id, p.author_id, u.name, p.title, p.content, p.status, p.likes, p.comments, p.created_at, p.updated_at
	FROM posts p JOIN users u ON u.id = p.author_id`

var sortColumns = map[string]string{
	"title":     "p.title",
	"status":    "p.status",
	"likes":     "p.likes",
	"comments":  "p.comments",
	"createdAt": "p.created_at",
	"updatedAt": "p.updated_at",
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanPost(s dbx.Scanner) (models.Post, error) {
	var p models.Post
	err := s.Scan(&p.ID, &p.AuthorID, &p.AuthorName, &p.Title, &p.Content, &p.Status, &p.Likes, &p.Comments, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PostgresRepository) List(ctx context.Context, p models.PageRequest, f models.PostFilter) ([]models.Post, int64, error) {
	q := dbx.NewListQuery()
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		q.Where("(p.title ILIKE ? OR p.content ILIKE ?)", like, like)
	}
	q.WhereIf(f.Status != "", "p.status = ?", string(f.Status))
	q.WhereIf(f.AuthorID != "", "p.author_id = ?", f.AuthorID)

	total, err := q.Count(ctx, r.db, "posts p")
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := selectPosts + q.WhereClause() + q.OrderBy(sortColumns, p.SortBy, "p.created_at", p.Desc()) + q.Page(p.Page, p.Size)
	rows, err := r.db.QueryContext(ctx, query, q.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	items, err := dbx.CollectRows(rows, scanPost)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return items, total, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Post, error) {
	p, err := scanPost(r.db.QueryRowContext(ctx, selectPosts+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &p, nil
}

func (r *PostgresRepository) SetStatus(ctx context.Context, id string, status models.PostStatus) error {
	return r.exec(ctx, `UPDATE posts SET status = $2, updated_at = now() WHERE id = $1`, id, string(status))
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("db error: %w", err)
	} else if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
