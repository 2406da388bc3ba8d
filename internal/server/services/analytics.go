package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/adminconsole/internal/common"
	"github.com/dmitrijs2005/adminconsole/internal/models"
	"github.com/dmitrijs2005/adminconsole/internal/server/repositories/repomanager"
)

type AnalyticsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewAnalyticsService(db *sql.DB, m repomanager.RepositoryManager) *AnalyticsService {
	return &AnalyticsService{db: db, repomanager: m}
}

func (s *AnalyticsService) Payments(ctx context.Context, p models.PageRequest, f models.PaymentFilter) (*models.Page[models.Payment], error) {
	items, total, err := s.repomanager.Payments(s.db).List(ctx, p, f)
	if err != nil {
		return nil, err
	}
	page := models.NewPage(items, p, total)
	return &page, nil
}

func (s *AnalyticsService) PaymentSummary(ctx context.Context, r models.DateRange) (*models.PaymentSummary, error) {
	if err := checkRange(r); err != nil {
		return nil, err
	}
	sum, err := s.repomanager.Payments(s.db).Summary(ctx, r)
	if err != nil {
		return nil, err
	}
	if sum.ByPlan == nil {
		sum.ByPlan = []models.PlanRevenue{}
	}
	return sum, nil
}

// Usage defaults to daily buckets.
func (s *AnalyticsService) Usage(ctx context.Context, r models.DateRange, g models.Granularity) (*models.UsageStats, error) {
	if g == "" {
		g = models.GranularityDay
	}
	if !g.Valid() {
		return nil, fmt.Errorf("%w: unknown granularity %q", common.ErrorValidation, g)
	}
	if err := checkRange(r); err != nil {
		return nil, err
	}
	points, err := s.repomanager.Payments(s.db).Usage(ctx, r, g)
	if err != nil {
		return nil, err
	}
	if points == nil {
		points = []models.UsagePoint{}
	}
	return &models.UsageStats{Granularity: g, Points: points}, nil
}

func checkRange(r models.DateRange) error {
	if !r.From.IsZero() && !r.To.IsZero() && r.To.Before(r.From) {
		return fmt.Errorf("%w: 'to' is before 'from'", common.ErrorValidation)
	}
	return nil
}
