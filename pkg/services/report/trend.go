package report

import (
	"time"

	"github.com/hm-tools/stay-atlas/pkg/models/domain"
	"github.com/hm-tools/stay-atlas/pkg/models/store"
)

const (
	dailyLabel   = "2006-01-02"
	monthlyLabel = "2006-01"

	// Windows longer than this are bucketed by month.
	maxDailyBucketDays = 31
)

// revenueTrend buckets payment revenue chronologically: by day for
// windows up to a month, by month otherwise. All-time windows are always
// monthly, spanning from the first to the last observed payment. Buckets
// with no payments are present with a zero sum, so the series has no
// gaps and its bucket sums always add up to the window's revenue total.
func revenueTrend(w domain.Window, payments []store.Payment) []domain.RevenuePoint {
	var start, last time.Time
	var monthly bool

	if w.AllTime {
		if len(payments) == 0 {
			return []domain.RevenuePoint{}
		}
		monthly = true
		start, last = payments[0].PaidAt, payments[0].PaidAt
		for _, p := range payments[1:] {
			if p.PaidAt.Before(start) {
				start = p.PaidAt
			}
			if p.PaidAt.After(last) {
				last = p.PaidAt
			}
		}
	} else {
		if w.Days() == 0 {
			return []domain.RevenuePoint{}
		}
		monthly = w.Days() > maxDailyBucketDays
		start = w.Start
		// End is exclusive; the last bucket belongs to the day before.
		last = w.End.AddDate(0, 0, -1)
	}

	layout := dailyLabel
	if monthly {
		layout = monthlyLabel
	}

	sums := make(map[string]float64)
	for _, p := range payments {
		sums[p.PaidAt.Format(layout)] += p.Amount
	}

	var series []domain.RevenuePoint
	if monthly {
		for m := monthOf(start); !m.After(monthOf(last)); m = m.AddDate(0, 1, 0) {
			label := m.Format(layout)
			series = append(series, domain.RevenuePoint{Label: label, Revenue: sums[label]})
		}
	} else {
		for d := dayOf(start); !d.After(dayOf(last)); d = d.AddDate(0, 0, 1) {
			label := d.Format(layout)
			series = append(series, domain.RevenuePoint{Label: label, Revenue: sums[label]})
		}
	}
	return series
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
