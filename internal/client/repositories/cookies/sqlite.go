package cookies

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/adminconsole/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, c Cookie) error {
	var expires sql.NullInt64
	if !c.Expires.IsZero() {
		expires = sql.NullInt64{Int64: c.Expires.Unix(), Valid: true}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cookies (origin, name, value, path, domain, expires_at, secure, http_only)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(origin, name) DO UPDATE SET
			value = excluded.value,
			path = excluded.path,
			domain = excluded.domain,
			expires_at = excluded.expires_at,
			secure = excluded.secure,
			http_only = excluded.http_only
	`, c.Origin, c.Name, c.Value, c.Path, c.Domain, expires, c.Secure, c.HTTPOnly)
	if err != nil {
		return fmt.Errorf("failed to save cookie %s: %w", c.Name, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, origin, name string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cookies WHERE origin = ? AND name = ?`, origin, name)
	if err != nil {
		return fmt.Errorf("failed to delete cookie %s: %w", name, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]Cookie, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT origin, name, value, path, domain, expires_at, secure, http_only
		FROM cookies ORDER BY origin, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cookies: %w", err)
	}
	defer rows.Close()

	var result []Cookie
	for rows.Next() {
		var c Cookie
		var expires sql.NullInt64
		if err := rows.Scan(&c.Origin, &c.Name, &c.Value, &c.Path, &c.Domain, &expires, &c.Secure, &c.HTTPOnly); err != nil {
			return nil, fmt.Errorf("failed to scan cookie row: %w", err)
		}
		if expires.Valid {
			c.Expires = time.Unix(expires.Int64, 0)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cookie rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cookies`); err != nil {
		return fmt.Errorf("failed to clear cookies: %w", err)
	}
	return nil
}
