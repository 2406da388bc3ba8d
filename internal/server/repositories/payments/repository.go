package payments

import (
	"context"

	"github.com/dmitrijs2005/adminconsole/internal/models"
)

type Repository interface {
	List(ctx context.Context, p models.PageRequest, f models.PaymentFilter) ([]models.Payment, int64, error)
	Summary(ctx context.Context, r models.DateRange) (*models.PaymentSummary, error)
	Usage(ctx context.Context, r models.DateRange, g models.Granularity) ([]models.UsagePoint, error)
}
