package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hm-tools/stay-atlas/pkg/models/domain"
	"github.com/hm-tools/stay-atlas/pkg/models/store"
)

// Store reads booking records from the hotel application's postgres
// database. It never writes; the booking application owns the schema.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &Store{db: db}, nil
}

// Payments returns completed payments, joined to the room they paid for.
// Bounded windows filter on paid_at with a half-open [start, end) range.
func (s *Store) Payments(ctx context.Context, w domain.Window) ([]store.Payment, error) {
	query := `
		SELECT p.id, p.reservation_id, r.room_id, rm.room_number, p.amount, p.paid_at
		FROM payments p
		JOIN reservations r ON r.id = p.reservation_id
		JOIN rooms rm ON rm.id = r.room_id
		WHERE p.status = 'Completed'`
	var args []interface{}
	if !w.AllTime {
		query += ` AND p.paid_at >= $1 AND p.paid_at < $2`
		args = append(args, w.Start, w.End)
	}
	query += ` ORDER BY p.paid_at, p.id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	records := make([]store.Payment, 0)
	for rows.Next() {
		var p store.Payment
		if err := rows.Scan(&p.ID, &p.ReservationID, &p.RoomID, &p.RoomName, &p.Amount, &p.PaidAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		records = append(records, p)
	}
	return records, rows.Err()
}

// Reservations returns reservations overlapping the window, not just
// those checking in inside it: occupancy needs stays that straddle the
// window edges. All statuses are returned; filtering is the engine's.
func (s *Store) Reservations(ctx context.Context, w domain.Window) ([]store.Reservation, error) {
	query := `
		SELECT id, room_id, guest_id, check_in, check_out, status, booked_at
		FROM reservations`
	var args []interface{}
	if !w.AllTime {
		query += ` WHERE check_out > $1 AND check_in < $2`
		args = append(args, w.Start, w.End)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reservations: %w", err)
	}
	defer rows.Close()

	records := make([]store.Reservation, 0)
	for rows.Next() {
		var r store.Reservation
		if err := rows.Scan(&r.ID, &r.RoomID, &r.GuestID, &r.CheckIn, &r.CheckOut, &r.Status, &r.BookedAt); err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Store) Rooms(ctx context.Context) ([]store.Room, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, room_number, price_per_night, capacity FROM rooms ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query rooms: %w", err)
	}
	defer rows.Close()

	records := make([]store.Room, 0)
	for rows.Next() {
		var r store.Room
		if err := rows.Scan(&r.ID, &r.Number, &r.PricePerNight, &r.Capacity); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Ratings returns room and service ratings created within the window as
// one flattened list; the report averages them together anyway.
func (s *Store) Ratings(ctx context.Context, w domain.Window) ([]store.Rating, error) {
	roomPart := `
		SELECT id, guest_id, 'room' AS kind, room_id AS target_id, overall_score, created_at
		FROM room_ratings`
	servicePart := `
		SELECT id, guest_id, 'service' AS kind, service_id AS target_id, overall_score, created_at
		FROM service_ratings`
	var args []interface{}
	if !w.AllTime {
		clause := ` WHERE created_at >= $1 AND created_at < $2`
		roomPart += clause
		servicePart += clause
		args = append(args, w.Start, w.End)
	}
	query := roomPart + `
		UNION ALL` + servicePart + `
		ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ratings: %w", err)
	}
	defer rows.Close()

	records := make([]store.Rating, 0)
	for rows.Next() {
		var r store.Rating
		if err := rows.Scan(&r.ID, &r.GuestID, &r.Kind, &r.TargetID, &r.Overall, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// ServiceBookings returns confirmed and completed add-on bookings in the
// window, joined to the service name.
func (s *Store) ServiceBookings(ctx context.Context, w domain.Window) ([]store.ServiceBooking, error) {
	query := `
		SELECT sb.id, sb.service_id, sv.name, sb.guest_id, sb.status, sb.amount, sb.booked_at
		FROM service_bookings sb
		JOIN services sv ON sv.id = sb.service_id
		WHERE sb.status IN ('Confirmed', 'Completed')`
	var args []interface{}
	if !w.AllTime {
		query += ` AND sb.booked_at >= $1 AND sb.booked_at < $2`
		args = append(args, w.Start, w.End)
	}
	query += ` ORDER BY sb.id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query service bookings: %w", err)
	}
	defer rows.Close()

	records := make([]store.ServiceBooking, 0)
	for rows.Next() {
		var b store.ServiceBooking
		if err := rows.Scan(&b.ID, &b.ServiceID, &b.ServiceName, &b.GuestID, &b.Status, &b.Amount, &b.BookedAt); err != nil {
			return nil, fmt.Errorf("scan service booking: %w", err)
		}
		records = append(records, b)
	}
	return records, rows.Err()
}
