package api

import (
	"context"

	"github.com/dmitrijs2005/adminconsole/internal/client/transport"
	"github.com/dmitrijs2005/adminconsole/internal/models"
)

type AuditLogs struct {
	d transport.Doer
}

func (a *AuditLogs) List(ctx context.Context, p models.PageRequest, f models.AuditLogFilter) (models.Page[models.AuditLog], error) {
	return transport.Get[models.Page[models.AuditLog]](ctx, a.d, "/audit-logs", listQuery(p, f))
}

func (a *AuditLogs) Get(ctx context.Context, id string) (models.AuditLog, error) {
	return transport.Get[models.AuditLog](ctx, a.d, transport.PathJoin("audit-logs", id), nil)
}

// Export asks the server to render the filtered logs as CSV and returns a
// time-limited download URL.
func (a *AuditLogs) Export(ctx context.Context, f models.AuditLogFilter) (models.ExportResult, error) {
	body := models.AuditExportRequest{
		Action:       f.Action,
		Actor:        f.Actor,
		ResourceType: f.ResourceType,
		From:         f.From,
		To:           f.To,
	}
	return transport.Post[models.ExportResult](ctx, a.d, "/audit-logs/export", body)
}
