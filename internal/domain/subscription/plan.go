package subscription

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Interval is a billing period unit.
type Interval string

const (
	IntervalDay   Interval = "day"
	IntervalWeek  Interval = "week"
	IntervalMonth Interval = "month"
	IntervalYear  Interval = "year"
)

const (
	daysPerWeek  = 7
	daysPerMonth = 30
	daysPerYear  = 365
)

// Plan is the price and billing period of one provider variant.
type Plan struct {
	VariantID     string
	Name          string
	Price         decimal.Decimal
	Interval      Interval
	IntervalCount int
}

// CycleDays returns the length of one billing cycle in days. Months count as
// 30 days and years as 365; an unknown interval counts as 30 days.
func (p Plan) CycleDays() int {
	count := p.IntervalCount
	if count < 1 {
		count = 1
	}

	switch Interval(strings.ToLower(string(p.Interval))) {
	case IntervalDay:
		return count
	case IntervalWeek:
		return count * daysPerWeek
	case IntervalMonth:
		return count * daysPerMonth
	case IntervalYear:
		return count * daysPerYear
	default:
		return daysPerMonth
	}
}

// PlanCatalog resolves variant IDs to plans.
type PlanCatalog struct {
	plans map[string]Plan
}

// NewPlanCatalog indexes plans by variant ID. Later duplicates win.
func NewPlanCatalog(plans []Plan) *PlanCatalog {
	index := make(map[string]Plan, len(plans))
	for _, p := range plans {
		index[p.VariantID] = p
	}
	return &PlanCatalog{plans: index}
}

// Get returns the plan for variantID.
func (c *PlanCatalog) Get(variantID string) (Plan, bool) {
	p, ok := c.plans[variantID]
	return p, ok
}
