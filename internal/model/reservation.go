package model

import "time"

// Reservation statuses.  A reservation moves through these states
// over its lifetime; Cancelled reservations no longer count toward
// a restaurant's slot occupancy.
const (
	StatusProcessing = "Processing"
	StatusConfirmed  = "Confirmed"
	StatusCancelled  = "Cancelled"
	StatusCompleted  = "Completed"
)

// Statuses lists every valid reservation status in order.
var Statuses = []string{StatusProcessing, StatusConfirmed, StatusCancelled, StatusCompleted}

// IsStatus reports whether s is one of the valid reservation statuses.
func IsStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// Reservation records a table booking at a restaurant for a
// specific date and time slot.  This struct corresponds to a row
// in the `reservations` table.
//
// Fields:
//  ID           – 24-character hexadecimal identifier.
//  RestaurantID – restaurant being booked.
//  Status       – one of Processing, Confirmed, Cancelled, Completed.
//  BookingDate  – calendar date string (YYYY-MM-DD).
//  BookingTime  – slot label; must be one of the restaurant's
//                 available_times at admission time.
//  NumGuests    – number of guests in the party.
//  Username     – contact name for the booking.
//  MobileNum    – contact phone number.
//  SpecReq      – free-text special request.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Reservation struct {
	ID           string    `json:"id"`          // reservations.id
	RestaurantID string    `json:"restaurant"`  // reservations.restaurant_id
	Status       string    `json:"status"`      // reservations.status
	BookingDate  string    `json:"bookingdate"` // reservations.booking_date
	BookingTime  string    `json:"bookingtime"` // reservations.booking_time
	NumGuests    int       `json:"numguests"`   // reservations.num_guests
	Username     string    `json:"username"`    // reservations.username
	MobileNum    string    `json:"mobilenum"`   // reservations.mobile_num
	SpecReq      string    `json:"specreq"`     // reservations.spec_req
	CreatedAt    time.Time `json:"-"`           // reservations.created_at
	UpdatedAt    time.Time `json:"-"`           // reservations.updated_at
}

// ReservationDetail is a reservation with its restaurant joined in,
// as returned by the list and fetch endpoints.
type ReservationDetail struct {
	ID          string      `json:"id"`
	Restaurant  *Restaurant `json:"restaurant"`
	Status      string      `json:"status"`
	BookingDate string      `json:"bookingdate"`
	BookingTime string      `json:"bookingtime"`
	NumGuests   int         `json:"numguests"`
	Username    string      `json:"username"`
	MobileNum   string      `json:"mobilenum"`
	SpecReq     string      `json:"specreq"`
}
