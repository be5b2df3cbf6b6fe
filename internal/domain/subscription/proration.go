package subscription

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const moneyPlaces = 2

// ProrationResult is the advisory cost of switching plans mid-cycle.
type ProrationResult struct {
	Charge        decimal.Decimal
	Credit        decimal.Decimal
	NewPlanCost   decimal.Decimal
	DaysRemaining int
	IsUpgrade     bool
}

// CalculateProration computes what switching from current to next costs at
// now, for a current cycle that renews at renewsAt.
//
// The unused part of the current cycle becomes a credit at the current
// plan's daily rate. The new plan starts a full cycle and is billed at its
// full price minus that credit, never below zero. This mirrors the provider's
// invoice-immediately behavior; it is not a blend of the two daily rates.
func CalculateProration(current, next Plan, renewsAt, now time.Time) ProrationResult {
	daysRemaining := DaysRemaining(renewsAt, now)

	dailyRate := current.Price.Div(decimal.NewFromInt(int64(current.CycleDays())))
	credit := roundMoney(dailyRate.Mul(decimal.NewFromInt(int64(daysRemaining))))

	// charge uses the rounded credit so that charge + credit adds up to the
	// displayed new plan cost
	charge := next.Price.Sub(credit)
	if charge.IsNegative() {
		charge = decimal.Zero
	}

	return ProrationResult{
		Charge:        roundMoney(charge),
		Credit:        credit,
		NewPlanCost:   roundMoney(next.Price),
		DaysRemaining: daysRemaining,
		IsUpgrade:     next.Price.GreaterThan(current.Price),
	}
}

// DaysRemaining is the number of started days between now and renewsAt,
// or zero when renewsAt is not in the future.
func DaysRemaining(renewsAt, now time.Time) int {
	remaining := renewsAt.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Hours() / 24))
}

// roundMoney rounds half-up to cents. Inputs are never negative, where
// decimal's half-away-from-zero rounding is the same thing.
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}
