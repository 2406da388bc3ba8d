package api

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/adminconsole/internal/client/transport"
	"github.com/dmitrijs2005/adminconsole/internal/models"
)

type Analytics struct {
	d transport.Doer
}

func (a *Analytics) PaymentSummary(ctx context.Context, r models.DateRange) (models.PaymentSummary, error) {
	return transport.Get[models.PaymentSummary](ctx, a.d, "/analytics/payments/summary", r.Apply(url.Values{}))
}

func (a *Analytics) Payments(ctx context.Context, p models.PageRequest, f models.PaymentFilter) (models.Page[models.Payment], error) {
	return transport.Get[models.Page[models.Payment]](ctx, a.d, "/analytics/payments", listQuery(p, f))
}

func (a *Analytics) Usage(ctx context.Context, r models.DateRange, g models.Granularity) (models.UsageStats, error) {
	q := r.Apply(url.Values{})
	if g != "" {
		q.Set("granularity", string(g))
	}
	return transport.Get[models.UsageStats](ctx, a.d, "/analytics/usage", q)
}
