package services

import (
	"context"

	"github.com/dmitrijs2005/adminconsole/internal/client/resource"
	"github.com/dmitrijs2005/adminconsole/internal/models"
)

type AnalyticsAPI interface {
	PaymentSummary(ctx context.Context, r models.DateRange) (models.PaymentSummary, error)
	Payments(ctx context.Context, p models.PageRequest, f models.PaymentFilter) (models.Page[models.Payment], error)
	Usage(ctx context.Context, r models.DateRange, g models.Granularity) (models.UsageStats, error)
}

type PaymentsView struct {
	*resource.Paginated[models.Payment, models.PaymentFilter]
	api AnalyticsAPI
}

func NewPaymentsView(api AnalyticsAPI, pageSize int) *PaymentsView {
	fetch := func(ctx context.Context, q resource.Query[models.PaymentFilter]) (models.Page[models.Payment], error) {
		return api.Payments(ctx, q.PageRequest(), q.Filters)
	}
	return &PaymentsView{Paginated: resource.New(fetch, pageSize), api: api}
}

// Summary covers the same date range as the payment list filters.
func (v *PaymentsView) Summary(ctx context.Context) (models.PaymentSummary, error) {
	f := v.Snapshot().Query.Filters
	return v.api.PaymentSummary(ctx, models.DateRange{From: f.From, To: f.To})
}

func (v *PaymentsView) Usage(ctx context.Context, r models.DateRange, g models.Granularity) (models.UsageStats, error) {
	if g == "" {
		g = models.GranularityDay
	}
	return v.api.Usage(ctx, r, g)
}
