// Package payments provides the PostgreSQL-backed payment and usage
// analytics queries.
package payments

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/adminconsole/internal/common"
	"github.com/dmitrijs2005/adminconsole/internal/dbx"
	"github.com/dmitrijs2005/adminconsole/internal/models"
)

const (
	fromPayments   = `payments p JOIN users u ON u.id = p.user_id`
	selectPayments = `SELECT p.id, p.user_id, u.email, p.amount, p.currency, p.status, p.plan, p.created_at FROM ` + fromPayments

	defaultCurrency = "USD"
)

var sortColumns = map[string]string{
	"amount":    "p.amount",
	"status":    "p.status",
	"plan":      "p.plan",
	"userEmail": "u.email",
	"createdAt": "p.created_at",
}

// truncUnits maps a granularity to its date_trunc field.
var truncUnits = map[models.Granularity]string{
	models.GranularityDay:   "day",
	models.GranularityWeek:  "week",
	models.GranularityMonth: "month",
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanPayment(s dbx.Scanner) (models.Payment, error) {
	var p models.Payment
	err := s.Scan(&p.ID, &p.UserID, &p.UserEmail, &p.Amount, &p.Currency, &p.Status, &p.Plan, &p.CreatedAt)
	return p, err
}

func rangeQuery(column string, r models.DateRange) *dbx.ListQuery {
	q := dbx.NewListQuery()
	q.WhereIf(!r.From.IsZero(), column+" >= ?", r.From)
	q.WhereIf(!r.To.IsZero(), column+" <= ?", r.To)
	return q
}

func (r *PostgresRepository) List(ctx context.Context, p models.PageRequest, f models.PaymentFilter) ([]models.Payment, int64, error) {
	q := rangeQuery("p.created_at", models.DateRange{From: f.From, To: f.To})
	q.WhereIf(f.Status != "", "p.status = ?", string(f.Status))
	q.WhereIf(f.Plan != "", "p.plan = ?", f.Plan)

	total, err := q.Count(ctx, r.db, fromPayments)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := selectPayments + q.WhereClause() + q.OrderBy(sortColumns, p.SortBy, "p.created_at", p.Desc()) + q.Page(p.Page, p.Size)
	rows, err := r.db.QueryContext(ctx, query, q.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	items, err := dbx.CollectRows(rows, scanPayment)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return items, total, nil
}

// Summary totals succeeded revenue and counts payments per status within dr.
func (r *PostgresRepository) Summary(ctx context.Context, dr models.DateRange) (*models.PaymentSummary, error) {
	q := rangeQuery("created_at", dr)
	query := `SELECT
		COALESCE(SUM(amount) FILTER (WHERE status = 'succeeded'), 0),
		COUNT(*) FILTER (WHERE status = 'succeeded'),
		COUNT(*) FILTER (WHERE status = 'failed'),
		COUNT(*) FILTER (WHERE status = 'refunded'),
		COALESCE(MAX(currency), '` + defaultCurrency + `')
	FROM payments` + q.WhereClause()

	s := &models.PaymentSummary{}
	if err := r.db.QueryRowContext(ctx, query, q.Args()...).
		Scan(&s.TotalRevenue, &s.SuccessfulCount, &s.FailedCount, &s.RefundedCount, &s.Currency); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	pq := rangeQuery("created_at", dr).Where("status = 'succeeded'")
	rows, err := r.db.QueryContext(ctx,
		`SELECT plan, SUM(amount), COUNT(*) FROM payments`+pq.WhereClause()+` GROUP BY plan ORDER BY 2 DESC, plan ASC`,
		pq.Args()...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	s.ByPlan, err = dbx.CollectRows(rows, func(sc dbx.Scanner) (models.PlanRevenue, error) {
		var pr models.PlanRevenue
		err := sc.Scan(&pr.Plan, &pr.Revenue, &pr.Count)
		return pr, err
	})
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

// Usage buckets usage events by g within dr, oldest bucket first.
func (r *PostgresRepository) Usage(ctx context.Context, dr models.DateRange, g models.Granularity) ([]models.UsagePoint, error) {
	unit, ok := truncUnits[g]
	if !ok {
		return nil, common.ErrorValidation
	}

	q := rangeQuery("occurred_at", dr)
	query := `SELECT date_trunc('` + unit + `', occurred_at) AS bucket,
		COUNT(DISTINCT user_id), COALESCE(SUM(requests), 0), COALESCE(SUM(tokens), 0)
	FROM usage_events` + q.WhereClause() + ` GROUP BY bucket ORDER BY bucket ASC`

	rows, err := r.db.QueryContext(ctx, query, q.Args()...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	points, err := dbx.CollectRows(rows, func(s dbx.Scanner) (models.UsagePoint, error) {
		var p models.UsagePoint
		err := s.Scan(&p.Bucket, &p.ActiveUsers, &p.Requests, &p.Tokens)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return points, nil
}
