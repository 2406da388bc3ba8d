package auditlogs

import (
	"context"

	"github.com/dmitrijs2005/adminconsole/internal/models"
)

type Repository interface {
	List(ctx context.Context, p models.PageRequest, f models.AuditLogFilter) ([]models.AuditLog, int64, error)
	Get(ctx context.Context, id string) (*models.AuditLog, error)
	Create(ctx context.Context, e *models.AuditLog) error
	// Each calls fn for every entry matching f, oldest first, stopping at
	// the first error fn returns.
	Each(ctx context.Context, f models.AuditLogFilter, fn func(models.AuditLog) error) error
}
