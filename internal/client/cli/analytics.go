package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/adminconsole/internal/client/router"
	"github.com/dmitrijs2005/adminconsole/internal/models"
)

// Payments prints the revenue summary and the payment list for the filter,
// e.g. "payments status=failed from=2024-05-01".
func (a *App) Payments(ctx context.Context, args []string) error {
	f := models.ParsePaymentFilter(parseArgs(args))
	if err := a.openList(ctx, router.Analytics, func() error { return a.payments.SetFilters(ctx, f) }); err != nil {
		return err
	}
	s, err := a.payments.Summary(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out)
	renderSummary(a.out, s)
	return nil
}

// Usage prints usage statistics, e.g. "usage granularity=week from=2024-01-01".
func (a *App) Usage(ctx context.Context, args []string) error {
	v := parseArgs(args)
	g := models.Granularity(v.Get("granularity"))
	if g != "" && !g.Valid() {
		return fmt.Errorf("%w: usage [granularity=day|week|month] [from=..] [to=..]", errUsage)
	}
	u, err := a.payments.Usage(ctx, models.ParseDateRange(v), g)
	if err != nil {
		return err
	}
	renderUsage(a.out, u)
	return nil
}
