package services

import (
	"context"

	"github.com/dmitrijs2005/adminconsole/internal/models"
	"golang.org/x/sync/errgroup"
)

// Overview is the dashboard landing data.
type Overview struct {
	Payments     models.PaymentSummary
	Usage        models.UsageStats
	Users        models.Page[models.User]
	UnreadEmails int64
}

// LoadOverview fetches every overview block concurrently and fails on the
// first error.
func LoadOverview(ctx context.Context, analytics AnalyticsAPI, users UsersAPI, emails EmailsAPI, pageSize int) (Overview, error) {
	var o Overview
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		o.Payments, err = analytics.PaymentSummary(ctx, models.DateRange{})
		return err
	})
	g.Go(func() error {
		var err error
		o.Usage, err = analytics.Usage(ctx, models.DateRange{}, models.GranularityDay)
		return err
	})
	g.Go(func() error {
		var err error
		o.Users, err = users.List(ctx, models.PageRequest{Size: pageSize, SortBy: "createdAt", SortDir: models.SortDesc}, models.UserFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		o.UnreadEmails, err = UnreadCount(ctx, emails)
		return err
	})

	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	return o, nil
}
