package store

import "time"

// Reservation statuses as persisted by the booking application.
const (
	StatusPending    = "Pending"
	StatusConfirmed  = "Confirmed"
	StatusCheckedIn  = "CheckedIn"
	StatusCheckedOut = "CheckedOut"
	StatusCancelled  = "Cancelled"
)

type Reservation struct {
	ID       int64
	RoomID   int64
	GuestID  int64
	CheckIn  time.Time
	CheckOut time.Time
	Status   string
	BookedAt time.Time
}

// Payment is a completed payment row joined to its reservation's room,
// so revenue can be attributed without a second lookup.
type Payment struct {
	ID            int64
	ReservationID int64
	RoomID        int64
	RoomName      string
	Amount        float64
	PaidAt        time.Time
}

type Room struct {
	ID            int64
	Number        string
	PricePerNight float64
	Capacity      int
}

// Rating is a room or service rating flattened to the fields the report
// consumes. Kind is "room" or "service"; TargetID points at the rated
// room or service. Sub-scores stay in the database.
type Rating struct {
	ID        int64
	GuestID   int64
	Kind      string
	TargetID  int64
	Overall   int
	CreatedAt time.Time
}

// ServiceBooking is an add-on service purchase joined to the service
// name. Only confirmed and completed bookings are fetched.
type ServiceBooking struct {
	ID          int64
	ServiceID   int64
	ServiceName string
	GuestID     int64
	Status      string
	Amount      float64
	BookedAt    time.Time
}
