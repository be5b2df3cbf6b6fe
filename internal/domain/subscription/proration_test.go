package subscription

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func plan(price string, interval Interval, count int) Plan {
	return Plan{Price: decimal.RequireFromString(price), Interval: interval, IntervalCount: count}
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
	assert.LessOrEqual(t, -got.Exponent(), int32(2), "more than 2 decimal places: %s", got)
}

func TestCalculateProration_MonthlyToYearly(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	renewsAt := now.Add(15 * 24 * time.Hour)

	got := CalculateProration(plan("9.99", IntervalMonth, 1), plan("99", IntervalYear, 1), renewsAt, now)

	assert.Equal(t, 15, got.DaysRemaining)
	// 9.99 / 30 * 15 = 4.995, rounded half-up
	assertMoney(t, "5.00", got.Credit)
	assertMoney(t, "94.00", got.Charge)
	assertMoney(t, "99.00", got.NewPlanCost)
	assert.True(t, got.IsUpgrade)
}

func TestCalculateProration(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		current     Plan
		next        Plan
		renewsAt    time.Time
		wantDays    int
		wantCredit  string
		wantCharge  string
		wantUpgrade bool
	}{
		{
			name:        "partial day counts as a full day",
			current:     plan("30", IntervalMonth, 1),
			next:        plan("60", IntervalMonth, 1),
			renewsAt:    now.Add(36 * time.Hour),
			wantDays:    2,
			wantCredit:  "2.00",
			wantCharge:  "58.00",
			wantUpgrade: true,
		},
		{
			name:        "renewal in the past gives no credit",
			current:     plan("30", IntervalMonth, 1),
			next:        plan("10", IntervalMonth, 1),
			renewsAt:    now.Add(-time.Hour),
			wantDays:    0,
			wantCredit:  "0.00",
			wantCharge:  "10.00",
			wantUpgrade: false,
		},
		{
			name:        "downgrade with credit above new price clamps to zero",
			current:     plan("365", IntervalYear, 1),
			next:        plan("9.99", IntervalMonth, 1),
			renewsAt:    now.Add(200 * 24 * time.Hour),
			wantDays:    200,
			wantCredit:  "200.00",
			wantCharge:  "0.00",
			wantUpgrade: false,
		},
		{
			name:        "weekly plan",
			current:     plan("7", IntervalWeek, 1),
			next:        plan("7", IntervalWeek, 2),
			renewsAt:    now.Add(3 * 24 * time.Hour),
			wantDays:    3,
			wantCredit:  "3.00",
			wantCharge:  "4.00",
			wantUpgrade: false,
		},
		{
			name:        "unknown interval counts as 30 days",
			current:     plan("10", "quarterly", 1),
			next:        plan("20", IntervalMonth, 1),
			renewsAt:    now.Add(10 * 24 * time.Hour),
			wantDays:    10,
			wantCredit:  "3.33",
			wantCharge:  "16.67",
			wantUpgrade: true,
		},
		{
			name:        "half cent rounds up",
			current:     plan("0.30", IntervalDay, 4),
			next:        plan("1", IntervalMonth, 1),
			renewsAt:    now.Add(24 * time.Hour),
			wantDays:    1,
			wantCredit:  "0.08",
			wantCharge:  "0.92",
			wantUpgrade: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateProration(tt.current, tt.next, tt.renewsAt, now)
			assert.Equal(t, tt.wantDays, got.DaysRemaining)
			assertMoney(t, tt.wantCredit, got.Credit)
			assertMoney(t, tt.wantCharge, got.Charge)
			assert.Equal(t, tt.wantUpgrade, got.IsUpgrade)
		})
	}
}

func TestCalculateProration_NeverNegative(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	prices := []string{"0", "0.01", "4.99", "9.99", "19", "99", "199.99"}
	intervals := []Interval{IntervalDay, IntervalWeek, IntervalMonth, IntervalYear, "bogus"}

	for _, cp := range prices {
		for _, np := range prices {
			for _, iv := range intervals {
				for _, days := range []int{-5, 0, 1, 14, 30, 400} {
					got := CalculateProration(plan(cp, iv, 1), plan(np, IntervalMonth, 1), now.AddDate(0, 0, days), now)
					assert.False(t, got.Charge.IsNegative())
					assert.False(t, got.Credit.IsNegative())
					assert.GreaterOrEqual(t, got.DaysRemaining, 0)
					assert.LessOrEqual(t, -got.Charge.Exponent(), int32(2))
					assert.LessOrEqual(t, -got.Credit.Exponent(), int32(2))
				}
			}
		}
	}
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, DaysRemaining(now, now))
	assert.Equal(t, 1, DaysRemaining(now.Add(time.Second), now))
	assert.Equal(t, 1, DaysRemaining(now.Add(24*time.Hour), now))
	assert.Equal(t, 2, DaysRemaining(now.Add(24*time.Hour+time.Second), now))
}
