// Package admission decides whether a proposed reservation may be
// accepted given a restaurant's declared capacity, its bookable time
// slots and the guests already booked for the same date and slot.
//
// The checker is a pure function over a snapshot of current data: it
// persists nothing and performs no I/O.  Callers are responsible for
// gathering the snapshot (restaurant record plus slot occupancy) and
// for making the read-decide-write sequence atomic; the HTTP handlers
// do this inside a database transaction that locks the restaurant row.
package admission

import (
	"fmt"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// Reason identifies which admission rule rejected a candidate.
type Reason string

const (
	// UnknownRestaurant: the candidate references a restaurant id that
	// does not resolve to a stored record.
	UnknownRestaurant Reason = "UnknownRestaurant"
	// ExceedsBaseCapacity: the party alone is larger than the
	// restaurant's total capacity, regardless of current occupancy.
	ExceedsBaseCapacity Reason = "ExceedsBaseCapacity"
	// SlotNotOffered: the requested time slot is not one of the
	// restaurant's bookable slot labels.
	SlotNotOffered Reason = "SlotNotOffered"
	// SlotFull: the party does not fit alongside the guests already
	// booked for the same restaurant, date and slot.
	SlotFull Reason = "SlotFull"
)

// Rejection describes why a candidate was refused.  Param and Value
// identify the offending input field so the HTTP layer can surface a
// field-level error to the client.
type Rejection struct {
	Reason Reason
	Param  string
	Value  string
	Msg    string
}

// Error implements the error interface so a Rejection can travel
// through ordinary error returns when convenient.
func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Reason, r.Msg)
}

// Candidate is a proposed reservation, either brand new or the new
// version of an existing one.
type Candidate struct {
	RestaurantID string
	BookingDate  string
	BookingTime  string
	NumGuests    int
}

// Check evaluates a candidate against the restaurant and the current
// occupancy of the requested slot.  The checks run in a fixed order
// and the first failure wins:
//
//  1. the restaurant must exist (restaurant != nil),
//  2. the party must not exceed the restaurant's raw capacity,
//  3. the slot must be one the restaurant offers,
//  4. the party must fit in the remaining space for the slot.
//
// occupied is the sum of guests across all non-cancelled reservations
// for the same (restaurant, date, slot) key, excluding the reservation
// being replaced when this is an update.  Callers compute it that way
// so that shrinking or moving one's own booking never counts its prior
// footprint against itself.
//
// A nil return means ACCEPT.
func Check(restaurant *model.Restaurant, occupied int, cand Candidate) *Rejection {
	if restaurant == nil {
		return &Rejection{
			Reason: UnknownRestaurant,
			Param:  "restaurant",
			Value:  cand.RestaurantID,
			Msg:    "it appears we dont have a restaurant with that ID",
		}
	}
	// Cheap check against raw capacity first: a party this size can
	// never fit no matter how empty the slot is.
	if cand.NumGuests > restaurant.Capacity {
		return &Rejection{
			Reason: ExceedsBaseCapacity,
			Param:  "numguests",
			Value:  fmt.Sprintf("%d", cand.NumGuests),
			Msg:    "number of guests exceeds base capacity of this restaurant",
		}
	}
	if !restaurant.OffersSlot(cand.BookingTime) {
		return &Rejection{
			Reason: SlotNotOffered,
			Param:  "bookingtime",
			Value:  cand.BookingTime,
			Msg:    "this restaurant is not open during the requested time",
		}
	}
	// The real shared-resource constraint: existing guests plus the
	// new party must not exceed capacity.  Reaching capacity exactly
	// is allowed.
	if occupied+cand.NumGuests > restaurant.Capacity {
		return &Rejection{
			Reason: SlotFull,
			Param:  "numguests",
			Value:  fmt.Sprintf("%d", cand.NumGuests),
			Msg:    "it appears this restaurant does not have space for this many guests at the specified time",
		}
	}
	return nil
}

// NeedsRecheck reports whether updating prev to next requires the
// capacity check to run again.  Only the fields the checker reads
// matter: restaurant, date, slot and party size.  Contact-only edits
// never re-trigger admission.
func NeedsRecheck(prev *model.Reservation, next Candidate) bool {
	return prev.RestaurantID != next.RestaurantID ||
		prev.BookingDate != next.BookingDate ||
		prev.BookingTime != next.BookingTime ||
		prev.NumGuests != next.NumGuests
}
