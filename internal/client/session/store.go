// Package session keeps the console's login session across restarts: the
// cookies set by the admin API and a few metadata values, stored in a local
// SQLite database.
package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/adminconsole/internal/client/migrations"
	"github.com/dmitrijs2005/adminconsole/internal/client/repositories/cookies"
	"github.com/dmitrijs2005/adminconsole/internal/client/repositories/metadata"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Store owns the session database.
type Store struct {
	db       *sql.DB
	Cookies  cookies.Repository
	Metadata metadata.Repository
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = goose.UpContext

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return gooseUpContext(ctx, db, ".")
}

// Open opens (creating if needed) the session database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// a single connection keeps :memory: databases coherent
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("session migrations: %w", err)
	}

	return &Store{
		db:       db,
		Cookies:  cookies.NewSQLiteRepository(db),
		Metadata: metadata.NewSQLiteRepository(db),
	}, nil
}

func (s *Store) LastEmail(ctx context.Context) (string, error) {
	v, _, err := s.Metadata.Get(ctx, metadata.KeyLastEmail)
	return v, err
}

func (s *Store) SetLastEmail(ctx context.Context, email string) error {
	return s.Metadata.Set(ctx, metadata.KeyLastEmail, email)
}

func (s *Store) Close() error {
	return s.db.Close()
}
