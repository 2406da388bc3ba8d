package services

import (
	"context"

	"github.com/dmitrijs2005/adminconsole/internal/client/resource"
	"github.com/dmitrijs2005/adminconsole/internal/models"
)

type AuditLogsAPI interface {
	List(ctx context.Context, p models.PageRequest, f models.AuditLogFilter) (models.Page[models.AuditLog], error)
	Get(ctx context.Context, id string) (models.AuditLog, error)
	Export(ctx context.Context, f models.AuditLogFilter) (models.ExportResult, error)
}

type AuditLogsView struct {
	*resource.Paginated[models.AuditLog, models.AuditLogFilter]
	api AuditLogsAPI
}

func NewAuditLogsView(api AuditLogsAPI, pageSize int) *AuditLogsView {
	fetch := func(ctx context.Context, q resource.Query[models.AuditLogFilter]) (models.Page[models.AuditLog], error) {
		return api.List(ctx, q.PageRequest(), q.Filters)
	}
	p := resource.New(fetch, pageSize)
	return &AuditLogsView{Paginated: p, api: api}
}

func (v *AuditLogsView) Get(ctx context.Context, id string) (models.AuditLog, error) {
	return v.api.Get(ctx, id)
}

// Export exports the logs matching the view's current filters and returns
// the download URL.
func (v *AuditLogsView) Export(ctx context.Context) (string, error) {
	res, err := v.api.Export(ctx, v.Snapshot().Query.Filters)
	if err != nil {
		return "", err
	}
	if err := checkResult(models.ActionResult{Success: res.Success, Message: res.Message}); err != nil {
		return "", err
	}
	return res.URL, nil
}
