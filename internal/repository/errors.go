// Package repository defines sentinel error values shared across the
// repositories.  Handlers use these to pick the right HTTP status:
// a not-found sentinel becomes a 404 with the structured error
// envelope, anything else a 500.
package repository

import "errors"

// ErrRestaurantNotFound is returned when a restaurant id is
// well-formed but no matching row exists.
var ErrRestaurantNotFound = errors.New("restaurant not found")

// ErrReservationNotFound is returned when a reservation id is
// well-formed but no matching row exists.
var ErrReservationNotFound = errors.New("reservation not found")
