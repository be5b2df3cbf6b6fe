package subscription

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPlan_CycleDays(t *testing.T) {
	tests := []struct {
		interval Interval
		count    int
		want     int
	}{
		{IntervalDay, 3, 3},
		{IntervalWeek, 2, 14},
		{IntervalMonth, 1, 30},
		{IntervalMonth, 3, 90},
		{IntervalYear, 1, 365},
		{"Month", 1, 30},
		{"fortnight", 4, 30},
		{"", 1, 30},
		{IntervalWeek, 0, 7},
	}

	for _, tt := range tests {
		t.Run(string(tt.interval), func(t *testing.T) {
			p := Plan{Interval: tt.interval, IntervalCount: tt.count}
			assert.Equal(t, tt.want, p.CycleDays())
		})
	}
}

func TestPlanCatalog_Get(t *testing.T) {
	catalog := NewPlanCatalog([]Plan{
		{VariantID: "1", Price: decimal.RequireFromString("9.99"), Interval: IntervalMonth, IntervalCount: 1},
		{VariantID: "2", Price: decimal.RequireFromString("99"), Interval: IntervalYear, IntervalCount: 1},
	})

	p, ok := catalog.Get("2")
	assert.True(t, ok)
	assert.Equal(t, IntervalYear, p.Interval)

	_, ok = catalog.Get("3")
	assert.False(t, ok)
}
