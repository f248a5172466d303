package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/hm-tools/stay-atlas/pkg/models/domain"
	"github.com/hm-tools/stay-atlas/pkg/models/store"
)

const DefaultTopN = 5

var (
	// ErrInvalidWindow means the caller asked for a window whose start
	// falls after its end.
	ErrInvalidWindow = errors.New("invalid window: start after end")
	// ErrDataUnavailable means the persistence layer could not be
	// reached. It is propagated as-is; retrying is the caller's call.
	ErrDataUnavailable = errors.New("report data unavailable")
)

// Store is the read-only record access the engine needs. Bounded windows
// are half-open [start, end); all-time windows fetch everything.
type Store interface {
	Payments(ctx context.Context, w domain.Window) ([]store.Payment, error)
	Reservations(ctx context.Context, w domain.Window) ([]store.Reservation, error)
	Rooms(ctx context.Context) ([]store.Room, error)
	Ratings(ctx context.Context, w domain.Window) ([]store.Rating, error)
	ServiceBookings(ctx context.Context, w domain.Window) ([]store.ServiceBooking, error)
}

// Generator computes analytics reports over booking records.
type Generator interface {
	GenerateReport(ctx context.Context, w domain.Window) (*domain.Report, error)
}

type generator struct {
	store Store
	topN  int
}

// NewGenerator creates a report generator reading from s. topN bounds the
// top-rooms and top-services lists; values below 1 fall back to DefaultTopN.
func NewGenerator(s Store, topN int) Generator {
	if topN < 1 {
		topN = DefaultTopN
	}
	return &generator{store: s, topN: topN}
}

// GenerateReport builds the report for w. Each metric section is computed
// independently over the records relevant to it: a window with no
// payments still yields a zero revenue total, and a window with no
// ratings yields a nil average rather than a misleading zero. Only a
// storage failure aborts the report.
//
// The five fetches below are not one transaction; a payment recorded
// mid-generation may show up in some sections and not others. That skew
// is accepted for analytics.
func (g *generator) GenerateReport(ctx context.Context, w domain.Window) (*domain.Report, error) {
	if !w.AllTime && w.Start.After(w.End) {
		return nil, ErrInvalidWindow
	}

	payments, err := g.store.Payments(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("%w: payments: %v", ErrDataUnavailable, err)
	}
	reservations, err := g.store.Reservations(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("%w: reservations: %v", ErrDataUnavailable, err)
	}
	rooms, err := g.store.Rooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: rooms: %v", ErrDataUnavailable, err)
	}
	ratings, err := g.store.Ratings(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("%w: ratings: %v", ErrDataUnavailable, err)
	}
	serviceBookings, err := g.store.ServiceBookings(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("%w: service bookings: %v", ErrDataUnavailable, err)
	}

	return &domain.Report{
		Window:           w,
		TotalRevenue:     totalRevenue(payments),
		ReservationCount: reservationCount(reservations, w),
		OccupancyRate:    occupancyRate(reservations, len(rooms), w),
		AverageRating:    averageRating(ratings),
		RevenueTrend:     revenueTrend(w, payments),
		TopRooms:         topRooms(payments, g.topN),
		TopServices:      topServices(serviceBookings, g.topN),
		GuestStatuses:    guestStatuses(reservations, w),
	}, nil
}
