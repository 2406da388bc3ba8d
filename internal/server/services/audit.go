package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/adminconsole/internal/dbx"
	"github.com/dmitrijs2005/adminconsole/internal/models"
	"github.com/dmitrijs2005/adminconsole/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/adminconsole/internal/server/storage"
)

// RequestMeta is what the audit trail records about the caller's client.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// Actor is the admin on whose behalf a mutation runs.
type Actor struct {
	ID    string
	Email string
	RequestMeta
}

// ObjectStore is where exports are uploaded.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

var auditCSVHeader = []string{"id", "created_at", "actor_id", "actor_email", "action", "resource_type", "resource_id", "details", "ip_address", "user_agent"}

type AuditService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       ObjectStore
	linkTTL     time.Duration
	now         func() time.Time
}

func NewAuditService(db *sql.DB, m repomanager.RepositoryManager, store ObjectStore, linkTTL time.Duration) *AuditService {
	return &AuditService{db: db, repomanager: m, store: store, linkTTL: linkTTL, now: time.Now}
}

// Record appends an audit row through tx, so it commits or rolls back with
// the change it describes.
func (s *AuditService) Record(ctx context.Context, tx dbx.DBTX, actor Actor, action, resourceType, resourceID, details string) error {
	entry := &models.AuditLog{
		ActorID:      actor.ID,
		ActorEmail:   actor.Email,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      details,
		IPAddress:    actor.IP,
		UserAgent:    actor.UserAgent,
	}
	if err := s.repomanager.AuditLogs(tx).Create(ctx, entry); err != nil {
		return fmt.Errorf("error writing audit log: %w", err)
	}
	return nil
}

// record runs change and its audit row in one transaction.
func (s *AuditService) record(ctx context.Context, actor Actor, action, resourceType, resourceID, details string, change func(ctx context.Context, tx dbx.DBTX) error) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := change(ctx, tx); err != nil {
			return err
		}
		return s.Record(ctx, tx, actor, action, resourceType, resourceID, details)
	})
}

func (s *AuditService) List(ctx context.Context, p models.PageRequest, f models.AuditLogFilter) (*models.Page[models.AuditLog], error) {
	items, total, err := s.repomanager.AuditLogs(s.db).List(ctx, p, f)
	if err != nil {
		return nil, err
	}
	page := models.NewPage(items, p, total)
	return &page, nil
}

func (s *AuditService) Get(ctx context.Context, id string) (*models.AuditLog, error) {
	return s.repomanager.AuditLogs(s.db).Get(ctx, id)
}

// Export renders every entry matching f as CSV, uploads it and returns a
// presigned download link. The export itself is audited.
func (s *AuditService) Export(ctx context.Context, actor Actor, f models.AuditLogFilter) (*models.ExportResult, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(auditCSVHeader); err != nil {
		return nil, err
	}

	rows := 0
	err := s.repomanager.AuditLogs(s.db).Each(ctx, f, func(a models.AuditLog) error {
		rows++
		return w.Write([]string{
			a.ID, a.CreatedAt.UTC().Format(time.RFC3339), a.ActorID, a.ActorEmail, a.Action,
			a.ResourceType, a.ResourceID, a.Details, a.IPAddress, a.UserAgent,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("error reading audit logs: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("error writing csv: %w", err)
	}

	key := storage.ExportKey("audit-logs", "csv", s.now())
	if err := s.store.Put(ctx, key, "text/csv", &buf); err != nil {
		return nil, err
	}
	url, err := s.store.PresignGet(ctx, key, s.linkTTL)
	if err != nil {
		return nil, err
	}

	if err := s.Record(ctx, s.db, actor, "audit.export", "audit_log", key, fmt.Sprintf("%d rows", rows)); err != nil {
		return nil, err
	}
	return &models.ExportResult{Success: true, Message: fmt.Sprintf("Exported %d entries", rows), URL: url}, nil
}
