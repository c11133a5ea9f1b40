package model

import "time"

// Restaurant represents a venue that accepts table bookings.
// Each restaurant declares its total guest capacity and the set
// of time-slot labels it is willing to take bookings in.  This
// struct corresponds to a row in the `restaurants` table.
//
// Fields:
//  ID             – 24-character hexadecimal identifier.
//  Name           – display name of the restaurant.
//  Location       – free-form address or locality string.
//  Image          – optional image file name for the client UI.
//  Capacity       – maximum number of simultaneous guests.
//  AvailableTimes – bookable slot labels, e.g. "11:00am - 12:00pm".
//  CreatedAt      – timestamp when the restaurant was created.
//  UpdatedAt      – timestamp of last update.
type Restaurant struct {
	ID             string    `json:"id"`                  // restaurants.id
	Name           string    `json:"restaurant_name"`     // restaurants.name
	Location       string    `json:"restaurant_location"` // restaurants.location
	Image          string    `json:"restaurant_image"`    // restaurants.image
	Capacity       int       `json:"capacity"`            // restaurants.capacity
	AvailableTimes []string  `json:"available_times"`     // restaurants.available_times (JSON column)
	CreatedAt      time.Time `json:"-"`                   // restaurants.created_at
	UpdatedAt      time.Time `json:"-"`                   // restaurants.updated_at
}

// OffersSlot reports whether the restaurant takes bookings in the
// given time-slot label.  Labels are compared verbatim.
func (r *Restaurant) OffersSlot(slot string) bool {
	for _, s := range r.AvailableTimes {
		if s == slot {
			return true
		}
	}
	return false
}
