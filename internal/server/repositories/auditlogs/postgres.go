// Package auditlogs provides the PostgreSQL-backed audit trail.
package auditlogs

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

const auditColumns = `id, actor_id, actor_email, action, resource_type, resource_id, details, ip_address, user_agent, created_at`

var sortColumns = map[string]string{
	"action":       "action",
	"actorEmail":   "actor_email",
	"resourceType": "resource_type",
	"createdAt":    "created_at",
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanAuditLog(s dbx.Scanner) (models.AuditLog, error) {
	var a models.AuditLog
	err := s.Scan(&a.ID, &a.ActorID, &a.ActorEmail, &a.Action, &a.ResourceType, &a.ResourceID,
		&a.Details, &a.IPAddress, &a.UserAgent, &a.CreatedAt)
	return a, err
}

func filterQuery(f models.AuditLogFilter) *dbx.ListQuery {
	q := dbx.NewListQuery()
	q.WhereIf(f.Action != "", "action = ?", f.Action)
	if s := strings.TrimSpace(f.Actor); s != "" {
		q.Where("(actor_id = ? OR actor_email ILIKE ?)", s, "%"+s+"%")
	}
	q.WhereIf(f.ResourceType != "", "resource_type = ?", f.ResourceType)
	q.WhereIf(!f.From.IsZero(), "created_at >= ?", f.From)
	q.WhereIf(!f.To.IsZero(), "created_at <= ?", f.To)
	return q
}

func (r *PostgresRepository) List(ctx context.Context, p models.PageRequest, f models.AuditLogFilter) ([]models.AuditLog, int64, error) {
	q := filterQuery(f)

	total, err := q.Count(ctx, r.db, "audit_logs")
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := `SELECT ` + auditColumns + ` FROM audit_logs` + q.WhereClause() +
		q.OrderBy(sortColumns, p.SortBy, "created_at", p.Desc()) + q.Page(p.Page, p.Size)
	rows, err := r.db.QueryContext(ctx, query, q.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	items, err := dbx.CollectRows(rows, scanAuditLog)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return items, total, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.AuditLog, error) {
	a, err := scanAuditLog(r.db.QueryRowContext(ctx, `SELECT `+auditColumns+` FROM audit_logs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &a, nil
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.AuditLog) error {
	query :=
		`INSERT INTO audit_logs (actor_id, actor_email, action, resource_type, resource_id, details, ip_address, user_agent)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, e.ActorID, e.ActorEmail, e.Action, e.ResourceType, e.ResourceID,
		e.Details, e.IPAddress, e.UserAgent).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Each(ctx context.Context, f models.AuditLogFilter, fn func(models.AuditLog) error) error {
	q := filterQuery(f)

	rows, err := r.db.QueryContext(ctx, `SELECT `+auditColumns+` FROM audit_logs`+q.WhereClause()+` ORDER BY created_at ASC`, q.Args()...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		a, err := scanAuditLog(rows)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if err := fn(a); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
