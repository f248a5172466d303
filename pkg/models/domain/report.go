package domain

import "time"

// Window is the date range a report is computed over. Start is inclusive,
// End exclusive; both are whole calendar days. AllTime reports carry the
// zero value for both bounds.
type Window struct {
	Start   time.Time
	End     time.Time
	AllTime bool
}

// AllTimeWindow returns the unbounded window.
func AllTimeWindow() Window {
	return Window{AllTime: true}
}

// NewWindow builds a bounded [start, end) window over whole days.
func NewWindow(start, end time.Time) Window {
	return Window{Start: startOfDay(start), End: startOfDay(end)}
}

// Days is the window length in whole days. Zero for all-time windows,
// whose span depends on the underlying records.
func (w Window) Days() int {
	if w.AllTime {
		return 0
	}
	return int(w.End.Sub(w.Start).Hours() / 24)
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if w.AllTime {
		return true
	}
	return !t.Before(w.Start) && t.Before(w.End)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Report is the analytics snapshot produced for a window. It is built
// fresh on every request, never persisted, and not mutated after return.
type Report struct {
	Window           Window
	TotalRevenue     float64
	ReservationCount int
	// OccupancyRate is booked room-nights over available room-nights,
	// always within [0, 1]. Zero when the window has no days or the
	// hotel has no rooms.
	OccupancyRate float64
	// AverageRating is nil when no ratings fall inside the window; an
	// empty window must not read as a zero-star hotel.
	AverageRating *float64
	RevenueTrend  []RevenuePoint
	TopRooms      []RoomRank
	TopServices   []ServiceRank
	GuestStatuses []StatusCount
}

// RevenuePoint is one bucket of the revenue trend series. Buckets are
// chronological and gap-free; a bucket with no payments carries zero.
type RevenuePoint struct {
	Label   string
	Revenue float64
}

// RoomRank is one entry of the top-rooms list, ordered by revenue
// descending with ties broken by ascending room ID.
type RoomRank struct {
	RoomID   int64
	Name     string
	Bookings int
	Revenue  float64
}

// ServiceRank mirrors RoomRank for add-on services.
type ServiceRank struct {
	ServiceID int64
	Name      string
	Bookings  int
	Revenue   float64
}

// StatusCount is the number of distinct guests whose most recent
// reservation in the window carries Status. Statuses with no guests are
// omitted from the breakdown.
type StatusCount struct {
	Status string
	Guests int
}
