package api

import "time"

type Window struct {
	Start   *time.Time `json:"start,omitempty"`
	End     *time.Time `json:"end,omitempty"`
	AllTime bool       `json:"all_time"`
}

type RevenuePoint struct {
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
}

type RoomRank struct {
	RoomID   int64   `json:"room_id"`
	Name     string  `json:"name"`
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

type ServiceRank struct {
	ServiceID int64   `json:"service_id"`
	Name      string  `json:"name"`
	Bookings  int     `json:"bookings"`
	Revenue   float64 `json:"revenue"`
}

type StatusCount struct {
	Status string `json:"status"`
	Guests int    `json:"guests"`
}

type Report struct {
	Window           Window         `json:"window"`
	TotalRevenue     float64        `json:"total_revenue"`
	ReservationCount int            `json:"reservation_count"`
	OccupancyRate    float64        `json:"occupancy_rate"`
	AverageRating    *float64       `json:"average_rating"`
	RevenueTrend     []RevenuePoint `json:"revenue_trend"`
	TopRooms         []RoomRank     `json:"top_rooms"`
	TopServices      []ServiceRank  `json:"top_services"`
	GuestStatuses    []StatusCount  `json:"guest_statuses"`
}

type Error struct {
	Error string `json:"error"`
}
