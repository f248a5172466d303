package report

import (
	"sort"
	"time"

	"github.com/hm-tools/stay-atlas/pkg/models/domain"
	"github.com/hm-tools/stay-atlas/pkg/models/store"
)

func totalRevenue(payments []store.Payment) float64 {
	var total float64
	for _, p := range payments {
		total += p.Amount
	}
	return total
}

// reservationCount counts non-cancelled reservations checking in within
// the window. The store fetches every reservation overlapping the window
// (occupancy needs those), so the check-in filter is re-applied here.
func reservationCount(reservations []store.Reservation, w domain.Window) int {
	count := 0
	for _, r := range reservations {
		if r.Status == store.StatusCancelled {
			continue
		}
		if w.Contains(r.CheckIn) {
			count++
		}
	}
	return count
}

// occupancyRate is booked nights over available room-nights. For bounded
// windows the denominator is rooms x window days; for all-time it is
// rooms x the span from the earliest check-in to the latest check-out on
// record. Nights are clamped to the window, and the rate to [0, 1] so
// overbooked data cannot report more than full occupancy.
func occupancyRate(reservations []store.Reservation, roomCount int, w domain.Window) float64 {
	if roomCount == 0 {
		return 0
	}

	start, end := w.Start, w.End
	if w.AllTime {
		first := true
		for _, r := range reservations {
			if r.Status == store.StatusCancelled {
				continue
			}
			if first || r.CheckIn.Before(start) {
				start = r.CheckIn
			}
			if first || r.CheckOut.After(end) {
				end = r.CheckOut
			}
			first = false
		}
		if first {
			return 0
		}
	}

	days := int(end.Sub(start).Hours() / 24)
	if days <= 0 {
		return 0
	}

	nights := 0
	for _, r := range reservations {
		if r.Status == store.StatusCancelled {
			continue
		}
		nights += nightsWithin(r, start, end)
	}

	rate := float64(nights) / float64(roomCount*days)
	if rate > 1 {
		rate = 1
	}
	return rate
}

// nightsWithin is the overlap of [CheckIn, CheckOut) with [start, end)
// in whole days.
func nightsWithin(r store.Reservation, start, end time.Time) int {
	s, e := r.CheckIn, r.CheckOut
	if s.Before(start) {
		s = start
	}
	if e.After(end) {
		e = end
	}
	if !e.After(s) {
		return 0
	}
	return int(e.Sub(s).Hours() / 24)
}

// averageRating is the mean overall score of room and service ratings
// combined. Nil when no ratings exist in the window: averaging nothing
// must never read as a zero rating.
func averageRating(ratings []store.Rating) *float64 {
	if len(ratings) == 0 {
		return nil
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Overall
	}
	avg := float64(sum) / float64(len(ratings))
	return &avg
}

func topRooms(payments []store.Payment, n int) []domain.RoomRank {
	type acc struct {
		name         string
		revenue      float64
		reservations map[int64]struct{}
	}
	byRoom := make(map[int64]*acc)
	for _, p := range payments {
		a, ok := byRoom[p.RoomID]
		if !ok {
			a = &acc{name: p.RoomName, reservations: make(map[int64]struct{})}
			byRoom[p.RoomID] = a
		}
		a.revenue += p.Amount
		a.reservations[p.ReservationID] = struct{}{}
	}

	ranks := make([]domain.RoomRank, 0, len(byRoom))
	for id, a := range byRoom {
		ranks = append(ranks, domain.RoomRank{
			RoomID:   id,
			Name:     a.name,
			Bookings: len(a.reservations),
			Revenue:  a.revenue,
		})
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Revenue != ranks[j].Revenue {
			return ranks[i].Revenue > ranks[j].Revenue
		}
		return ranks[i].RoomID < ranks[j].RoomID
	})
	if len(ranks) > n {
		ranks = ranks[:n]
	}
	return ranks
}

func topServices(bookings []store.ServiceBooking, n int) []domain.ServiceRank {
	type acc struct {
		name     string
		revenue  float64
		bookings int
	}
	byService := make(map[int64]*acc)
	for _, b := range bookings {
		a, ok := byService[b.ServiceID]
		if !ok {
			a = &acc{name: b.ServiceName}
			byService[b.ServiceID] = a
		}
		a.revenue += b.Amount
		a.bookings++
	}

	ranks := make([]domain.ServiceRank, 0, len(byService))
	for id, a := range byService {
		ranks = append(ranks, domain.ServiceRank{
			ServiceID: id,
			Name:      a.name,
			Bookings:  a.bookings,
			Revenue:   a.revenue,
		})
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Revenue != ranks[j].Revenue {
			return ranks[i].Revenue > ranks[j].Revenue
		}
		return ranks[i].ServiceID < ranks[j].ServiceID
	})
	if len(ranks) > n {
		ranks = ranks[:n]
	}
	return ranks
}

// guestStatuses groups distinct guests by the status of their most
// recent reservation checking in within the window (latest check-in,
// ties resolved by the higher reservation ID). Cancelled counts as a
// status of its own here: a guest whose last action was a cancellation
// should show as such. Statuses with no guests are omitted, and the
// result is ordered by guest count descending, then status name.
func guestStatuses(reservations []store.Reservation, w domain.Window) []domain.StatusCount {
	latest := make(map[int64]store.Reservation)
	for _, r := range reservations {
		if !w.Contains(r.CheckIn) {
			continue
		}
		cur, ok := latest[r.GuestID]
		if !ok || r.CheckIn.After(cur.CheckIn) || (r.CheckIn.Equal(cur.CheckIn) && r.ID > cur.ID) {
			latest[r.GuestID] = r
		}
	}

	counts := make(map[string]int)
	for _, r := range latest {
		counts[r.Status]++
	}

	breakdown := make([]domain.StatusCount, 0, len(counts))
	for status, guests := range counts {
		breakdown = append(breakdown, domain.StatusCount{Status: status, Guests: guests})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Guests != breakdown[j].Guests {
			return breakdown[i].Guests > breakdown[j].Guests
		}
		return breakdown[i].Status < breakdown[j].Status
	})
	return breakdown
}
