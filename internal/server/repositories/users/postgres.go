// Package users provides the PostgreSQL-backed user repository.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/adminconsole/internal/common"
	"github.com/dmitrijs2005/adminconsole/internal/dbx"
	"github.com/dmitrijs2005/adminconsole/internal/models"
	smodels "github.com/dmitrijs2005/adminconsole/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const userColumns = `id, email, name, role, status, provider, avatar_url, created_at, last_login_at`

// sortColumns maps API sort keys to columns.
var sortColumns = map[string]string{
	"email":       "email",
	"name":        "name",
	"role":        "role",
	"status":      "status",
	"createdAt":   "created_at",
	"lastLoginAt": "last_login_at",
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanUser(s dbx.Scanner, extra ...any) (*models.User, error) {
	u := &models.User{}
	var lastLogin sql.NullTime
	dest := append([]any{&u.ID, &u.Email, &u.Name, &u.Role, &u.Status, &u.Provider, &u.AvatarURL, &u.CreatedAt, &lastLogin}, extra...)
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLoginAt = &t
	}
	return u, nil
}

func filterQuery(f models.UserFilter) *dbx.ListQuery {
	q := dbx.NewListQuery()
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		q.Where("(email ILIKE ? OR name ILIKE ?)", like, like)
	}
	q.WhereIf(f.Role != "", "role = ?", string(f.Role))
	q.WhereIf(f.Status != "", "status = ?", string(f.Status))
	return q
}

// List returns one page of users matching f and the total number of matches.
func (r *PostgresRepository) List(ctx context.Context, p models.PageRequest, f models.UserFilter) ([]models.User, int64, error) {
	q := filterQuery(f)

	total, err := q.Count(ctx, r.db, "users")
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := `SELECT ` + userColumns + ` FROM users` + q.WhereClause() +
		q.OrderBy(sortColumns, p.SortBy, "created_at", p.Desc()) + q.Page(p.Page, p.Size)

	rows, err := r.db.QueryContext(ctx, query, q.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	items, err := dbx.CollectRows(rows, func(s dbx.Scanner) (models.User, error) {
		u, err := scanUser(s)
		if err != nil {
			return models.User{}, err
		}
		return *u, nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return items, total, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

// GetByEmail looks an account up by its (case-insensitive) email, including
// the password hash.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*smodels.Account, error) {
	query := `SELECT ` + userColumns + `, password_hash FROM users WHERE lower(email) = lower($1)`

	var hash string
	u, err := scanUser(r.db.QueryRowContext(ctx, query, email), &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &smodels.Account{User: *u, PasswordHash: hash}, nil
}

// Create inserts a new account. A duplicate email yields common.ErrorConflict.
func (r *PostgresRepository) Create(ctx context.Context, a *smodels.Account) (*smodels.Account, error) {
	query :=
		`INSERT INTO users (email, name, password_hash, role, status, provider)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		a.Email, a.Name, a.PasswordHash, string(a.Role), string(a.Status), a.Provider).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) SetStatus(ctx context.Context, id string, status models.UserStatus) error {
	return r.exec(ctx, `UPDATE users SET status = $2 WHERE id = $1`, id, string(status))
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.exec(ctx, `DELETE FROM users WHERE id = $1`, id)
}

func (r *PostgresRepository) TouchLastLogin(ctx context.Context, id string) error {
	return r.exec(ctx, `UPDATE users SET last_login_at = now() WHERE id = $1`, id)
}

// exec runs a single-row statement; no affected row means the id is unknown.
func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
