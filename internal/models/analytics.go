package models

import (
	"net/url"
	"time"
)

type PaymentStatus string

const (
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Payment amounts are in minor units (cents).
type Payment struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	UserEmail string        `json:"userEmail"`
	Amount    int64         `json:"amount"`
	Currency  string        `json:"currency"`
	Status    PaymentStatus `json:"status"`
	Plan      string        `json:"plan"`
	CreatedAt time.Time     `json:"createdAt"`
}

type PaymentFilter struct {
	Status PaymentStatus
	Plan   string
	From   time.Time
	To     time.Time
}

func (f PaymentFilter) Apply(v url.Values) url.Values {
	setIf(v, "status", string(f.Status))
	setIf(v, "plan", f.Plan)
	setTimeIf(v, "from", f.From)
	setTimeIf(v, "to", f.To)
	return v
}

func ParsePaymentFilter(v url.Values) PaymentFilter {
	return PaymentFilter{
		Status: PaymentStatus(v.Get("status")),
		Plan:   v.Get("plan"),
		From:   parseTime(v.Get("from")),
		To:     parseTime(v.Get("to")),
	}
}

type PlanRevenue struct {
	Plan    string `json:"plan"`
	Revenue int64  `json:"revenue"`
	Count   int    `json:"count"`
}

type PaymentSummary struct {
	TotalRevenue    int64         `json:"totalRevenue"`
	Currency        string        `json:"currency"`
	SuccessfulCount int           `json:"successfulCount"`
	FailedCount     int           `json:"failedCount"`
	RefundedCount   int           `json:"refundedCount"`
	ByPlan          []PlanRevenue `json:"byPlan"`
}

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

func (g Granularity) Valid() bool {
	return g == GranularityDay || g == GranularityWeek || g == GranularityMonth
}

type UsagePoint struct {
	Bucket      time.Time `json:"bucket"`
	ActiveUsers int       `json:"activeUsers"`
	Requests    int64     `json:"requests"`
	Tokens      int64     `json:"tokens"`
}

type UsageStats struct {
	Granularity Granularity  `json:"granularity"`
	Points      []UsagePoint `json:"points"`
}

// DateRange bounds analytics queries; zero values mean "open".
type DateRange struct {
	From time.Time
	To   time.Time
}

func (r DateRange) Apply(v url.Values) url.Values {
	setTimeIf(v, "from", r.From)
	setTimeIf(v, "to", r.To)
	return v
}

func ParseDateRange(v url.Values) DateRange {
	return DateRange{From: parseTime(v.Get("from")), To: parseTime(v.Get("to"))}
}
