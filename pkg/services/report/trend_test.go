package report

import (
	"testing"

	"github.com/hm-tools/stay-atlas/pkg/models/domain"
	"github.com/hm-tools/stay-atlas/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevenueTrend_MonthlyForLongWindows(t *testing.T) {
	w := domain.NewWindow(day(2026, 1, 15), day(2026, 3, 20))
	payments := []store.Payment{
		{ID: 1, Amount: 100, PaidAt: day(2026, 1, 20)},
		{ID: 2, Amount: 50, PaidAt: day(2026, 3, 2)},
		{ID: 3, Amount: 25, PaidAt: day(2026, 3, 15)},
	}

	series := revenueTrend(w, payments)

	assert.Equal(t, []domain.RevenuePoint{
		{Label: "2026-01", Revenue: 100},
		{Label: "2026-02", Revenue: 0},
		{Label: "2026-03", Revenue: 75},
	}, series)
}

func TestRevenueTrend_DailyUpToAMonth(t *testing.T) {
	w := domain.NewWindow(day(2026, 3, 1), day(2026, 4, 1))
	payments := []store.Payment{
		{ID: 1, Amount: 80, PaidAt: day(2026, 3, 1)},
		{ID: 2, Amount: 20, PaidAt: day(2026, 3, 31)},
	}

	series := revenueTrend(w, payments)

	require.Len(t, series, 31)
	assert.Equal(t, domain.RevenuePoint{Label: "2026-03-01", Revenue: 80}, series[0])
	assert.Equal(t, domain.RevenuePoint{Label: "2026-03-16", Revenue: 0}, series[15])
	assert.Equal(t, domain.RevenuePoint{Label: "2026-03-31", Revenue: 20}, series[30])
}

func TestRevenueTrend_SumsToTotal(t *testing.T) {
	w := domain.NewWindow(day(2026, 2, 1), day(2026, 2, 15))
	payments := []store.Payment{
		{ID: 1, Amount: 12.5, PaidAt: day(2026, 2, 1)},
		{ID: 2, Amount: 37.5, PaidAt: day(2026, 2, 1)},
		{ID: 3, Amount: 200, PaidAt: day(2026, 2, 14)},
	}

	series := revenueTrend(w, payments)

	var sum float64
	for _, p := range series {
		sum += p.Revenue
	}
	assert.Equal(t, totalRevenue(payments), sum)
}

func TestRevenueTrend_Empty(t *testing.T) {
	t.Run("all time without payments", func(t *testing.T) {
		assert.Empty(t, revenueTrend(domain.AllTimeWindow(), nil))
	})

	t.Run("zero-day window", func(t *testing.T) {
		w := domain.NewWindow(day(2026, 3, 5), day(2026, 3, 5))
		assert.Empty(t, revenueTrend(w, nil))
	})
}
