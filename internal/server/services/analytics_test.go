package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/adminconsole/internal/common"
	"github.com/dmitrijs2005/adminconsole/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsService_Payments(t *testing.T) {
	m := newFakeRepoManager()
	m.payments.items = []models.Payment{{ID: "pay1", Amount: 1999, Currency: "USD"}}
	s := NewAnalyticsService(nil, m)

	page, err := s.Payments(context.Background(), models.PageRequest{Size: 10}, models.PaymentFilter{})
	require.NoError(t, err)
	if diff := cmp.Diff(m.payments.items, page.Content); diff != "" {
		t.Errorf("payments mismatch (-want +got):\n%s", diff)
	}

	m.payments.err = errBoom
	_, err = s.Payments(context.Background(), models.PageRequest{}, models.PaymentFilter{})
	assert.ErrorIs(t, err, errBoom)
}

func TestAnalyticsService_PaymentSummary(t *testing.T) {
	ctx := context.Background()
	m := newFakeRepoManager()
	m.payments.summary = &models.PaymentSummary{TotalRevenue: 500, Currency: "USD"}
	s := NewAnalyticsService(nil, m)

	r := models.DateRange{From: t0, To: t0.Add(24 * time.Hour)}
	sum, err := s.PaymentSummary(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, int64(500), sum.TotalRevenue)
	assert.NotNil(t, sum.ByPlan)
	assert.Equal(t, r, m.payments.gotRange)

	_, err = s.PaymentSummary(ctx, models.DateRange{From: t0, To: t0.Add(-time.Hour)})
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestAnalyticsService_Usage(t *testing.T) {
	ctx := context.Background()
	m := newFakeRepoManager()
	s := NewAnalyticsService(nil, m)

	stats, err := s.Usage(ctx, models.DateRange{}, "")
	require.NoError(t, err)
	assert.Equal(t, models.GranularityDay, stats.Granularity)
	assert.Equal(t, models.GranularityDay, m.payments.gotGran)
	assert.NotNil(t, stats.Points)

	m.payments.points = []models.UsagePoint{{Bucket: t0, ActiveUsers: 3}}
	stats, err = s.Usage(ctx, models.DateRange{From: t0}, models.GranularityMonth)
	require.NoError(t, err)
	assert.Equal(t, models.GranularityMonth, stats.Granularity)
	assert.Len(t, stats.Points, 1)

	_, err = s.Usage(ctx, models.DateRange{}, "hour")
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.Usage(ctx, models.DateRange{From: t0, To: t0.Add(-time.Hour)}, models.GranularityWeek)
	assert.ErrorIs(t, err, common.ErrorValidation)
}
