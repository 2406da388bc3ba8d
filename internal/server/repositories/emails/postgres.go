// Package emails provides the PostgreSQL-backed admin mailbox.
package emails

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

const emailColumns = `id, folder, from_addr, to_addr, subject, body, is_read, starred, received_at`

var sortColumns = map[string]string{
	"from":       "from_addr",
	"to":         "to_addr",
	"subject":    "subject",
	"receivedAt": "received_at",
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanEmail(s dbx.Scanner) (models.Email, error) {
	var e models.Email
	err := s.Scan(&e.ID, &e.Folder, &e.From, &e.To, &e.Subject, &e.Body, &e.Read, &e.Starred, &e.ReceivedAt)
	return e, err
}

func (r *PostgresRepository) List(ctx context.Context, p models.PageRequest, f models.EmailFilter) ([]models.Email, int64, error) {
	q := dbx.NewListQuery()
	q.WhereIf(f.Folder != "", "folder = ?", string(f.Folder))
	q.WhereIf(f.UnreadOnly, "is_read = false")
	q.WhereIf(f.Starred, "starred = true")
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		q.Where("(subject ILIKE ? OR from_addr ILIKE ? OR to_addr ILIKE ? OR body ILIKE ?)", like, like, like, like)
	}

	total, err := q.Count(ctx, r.db, "emails")
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := `SELECT ` + emailColumns + ` FROM emails` + q.WhereClause() +
		q.OrderBy(sortColumns, p.SortBy, "received_at", p.Desc()) + q.Page(p.Page, p.Size)
	rows, err := r.db.QueryContext(ctx, query, q.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	items, err := dbx.CollectRows(rows, scanEmail)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return items, total, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Email, error) {
	e, err := scanEmail(r.db.QueryRowContext(ctx, `SELECT `+emailColumns+` FROM emails WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &e, nil
}

// MarkRead is idempotent: marking a read email again still matches its row.
func (r *PostgresRepository) MarkRead(ctx context.Context, id string) error {
	return r.exec(ctx, `UPDATE emails SET is_read = true WHERE id = $1`, id)
}

func (r *PostgresRepository) SetStarred(ctx context.Context, id string, starred bool) error {
	return r.exec(ctx, `UPDATE emails SET starred = $2 WHERE id = $1`, id, starred)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.exec(ctx, `DELETE FROM emails WHERE id = $1`, id)
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.Email) (*models.Email, error) {
	query :=
		`INSERT INTO emails (folder, from_addr, to_addr, subject, body, is_read)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, received_at`

	err := r.db.QueryRowContext(ctx, query, string(e.Folder), e.From, e.To, e.Subject, e.Body, e.Read).
		Scan(&e.ID, &e.ReceivedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
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
