package queue

// BookingCreatedEvent is published when a reservation is accepted and
// persisted.  It carries enough information for downstream consumers
// to log or trigger notifications without querying the primary
// database.
type BookingCreatedEvent struct {
	ReservationID  string `json:"reservation_id"`
	RestaurantID   string `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	Status         string `json:"status"`
	BookingDate    string `json:"bookingdate"`
	BookingTime    string `json:"bookingtime"`
	NumGuests      int    `json:"numguests"`
	Username       string `json:"username"`
	CreatedAt      string `json:"created_at"`
}
