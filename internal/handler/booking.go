package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/admission"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/notify"
	"github.com/iliyamo/restaurant-table-reservation/internal/queue"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
	queue_publisher "github.com/iliyamo/restaurant-table-reservation/internal/service"
	"github.com/iliyamo/restaurant-table-reservation/internal/utils"
)

// BookingHandler serves the reservation endpoints.  Every write that
// can affect slot occupancy runs inside a database transaction that
// locks the restaurant row, so the read-occupancy/decide/persist
// sequence is atomic per restaurant and two concurrent bookings can
// never jointly overbook a slot.
type BookingHandler struct {
	Restaurants  *repository.RestaurantRepo
	Reservations *repository.ReservationRepo
	Hub          *notify.Hub
}

// NewBookingHandler constructs a BookingHandler.  All dependencies
// must be non-nil.
func NewBookingHandler(restaurants *repository.RestaurantRepo, reservations *repository.ReservationRepo, hub *notify.Hub) *BookingHandler {
	if restaurants == nil || reservations == nil || hub == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Restaurants: restaurants, Reservations: reservations, Hub: hub}
}

// bookingRequest is the JSON body for creating or replacing a
// reservation.  Validation runs before the admission checker: a body
// that fails these tags never reaches the capacity logic.
type bookingRequest struct {
	Restaurant  string `json:"restaurant" validate:"required"`
	Status      string `json:"status" validate:"required,resstatus"`
	BookingDate string `json:"bookingdate" validate:"required,bookingdate"`
	BookingTime string `json:"bookingtime" validate:"required"`
	NumGuests   int    `json:"numguests" validate:"required,gt=0"`
	Username    string `json:"username" validate:"required"`
	MobileNum   string `json:"mobilenum" validate:"required,aumobile"`
	SpecReq     string `json:"specreq"`
}

func (r *bookingRequest) candidate() admission.Candidate {
	return admission.Candidate{
		RestaurantID: r.Restaurant,
		BookingDate:  r.BookingDate,
		BookingTime:  r.BookingTime,
		NumGuests:    r.NumGuests,
	}
}

func (r *bookingRequest) reservation(id string) *model.Reservation {
	return &model.Reservation{
		ID:           id,
		RestaurantID: r.Restaurant,
		Status:       r.Status,
		BookingDate:  r.BookingDate,
		BookingTime:  r.BookingTime,
		NumGuests:    r.NumGuests,
		Username:     r.Username,
		MobileNum:    r.MobileNum,
		SpecReq:      r.SpecReq,
	}
}

// Create handles POST /bookings.  The request passes shape validation,
// then the admission checker inside a restaurant-locking transaction.
// On accept the reservation is persisted, broadcast to notification
// subscribers and published to the message broker.
func (h *BookingHandler) Create(c echo.Context) error {
	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, APIError{Value: "", Msg: "invalid request body", Param: "body", Location: "body"})
	}
	if errs := validateStruct(&req); errs != nil {
		return errorJSON(c, http.StatusBadRequest, errs...)
	}
	if !utils.IsValidID(req.Restaurant) {
		return errorJSON(c, http.StatusBadRequest, malformedID(req.Restaurant, "restaurant", "body"))
	}

	ctx := c.Request().Context()
	tx, err := h.Restaurants.DB().BeginTx(ctx, nil)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, serverError("failed to start transaction"))
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock the restaurant row for the duration of the admission
	// decision.  Concurrent bookings for the same restaurant queue
	// behind this lock.
	rest, err := h.Restaurants.GetByIDTx(ctx, tx, req.Restaurant, true)
	if err != nil && !errors.Is(err, repository.ErrRestaurantNotFound) {
		return errorJSON(c, http.StatusInternalServerError, serverError("database error"))
	}

	occupied := 0
	if rest != nil {
		occupied, err = h.Reservations.OccupancyTx(ctx, tx, req.Restaurant, req.BookingDate, req.BookingTime, "")
		if err != nil {
			return errorJSON(c, http.StatusInternalServerError, serverError("failed to read slot occupancy"))
		}
	}

	if rej := admission.Check(rest, occupied, req.candidate()); rej != nil {
		return errorJSON(c, http.StatusBadRequest, rejectionError(rej))
	}

	res := req.reservation("")
	if err := h.Reservations.CreateTx(ctx, tx, res); err != nil {
		return errorJSON(c, http.StatusInternalServerError, serverError("failed to save reservation"))
	}
	if err := tx.Commit(); err != nil {
		return errorJSON(c, http.StatusInternalServerError, serverError("failed to commit transaction"))
	}
	committed = true

	h.announce(res, rest.Name)
	return c.JSON(http.StatusCreated, res)
}

// announce broadcasts a created reservation to connected notification
// streams and publishes the durable broker event.  Both are
// best-effort: neither failure affects the already-committed booking.
func (h *BookingHandler) announce(res *model.Reservation, restaurantName string) {
	h.Hub.Publish(res)
	ev := queue.BookingCreatedEvent{
		ReservationID:  res.ID,
		RestaurantID:   res.RestaurantID,
		RestaurantName: restaurantName,
		Status:         res.Status,
		BookingDate:    res.BookingDate,
		BookingTime:    res.BookingTime,
		NumGuests:      res.NumGuests,
		Username:       res.Username,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishBookingCreated(ctx, ev)
	}()
}

// List handles GET /bookings.  Every reservation comes back with its
// restaurant joined in.
func (h *BookingHandler) List(c echo.Context) error {
	details, err := h.Reservations.ListDetails(c.Request().Context())
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, serverError("database error"))
	}
	return c.JSON(http.StatusOK, details)
}

// Get handles GET /bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if !utils.IsValidID(id) {
		return errorJSON(c, http.StatusBadRequest, malformedID(id, "_id", "params"))
	}
	det, err := h.Reservations.GetDetail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return errorJSON(c, http.StatusNotFound, notFound(id, "_id", "No booking found for the requested ID"))
		}
		return errorJSON(c, http.StatusInternalServerError, serverError("database error"))
	}
	return c.JSON(http.StatusOK, det)
}

// Update handles PUT /bookings/:id.  The body fully replaces the
// reservation.  The admission checker re-runs only when one of the
// fields it reads changed (restaurant, date, slot or party size);
// contact-only edits are persisted without a capacity check.  When
// admission does re-run, the occupancy sum excludes this reservation's
// previous version so a same-slot edit never counts against itself.
func (h *BookingHandler) Update(c echo.Context) error {
	id := c.Param("id")
	if !utils.IsValidID(id) {
		return errorJSON(c, http.StatusBadRequest, malformedID(id, "_id", "params"))
	}
	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, APIError{Value: "", Msg: "invalid request body", Param: "body", Location: "body"})
	}
	if errs := validateStruct(&req); errs != nil {
		return errorJSON(c, http.StatusBadRequest, errs...)
	}
	if !utils.IsValidID(req.Restaurant) {
		return errorJSON(c, http.StatusBadRequest, malformedID(req.Restaurant, "restaurant", "body"))
	}

	ctx := c.Request().Context()
	tx, err := h.Restaurants.DB().BeginTx(ctx, nil)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, serverError("failed to start transaction"))
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	prev, err := h.Reservations.GetByIDTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return errorJSON(c, http.StatusNotFound, notFound(id, "_id", "No booking found for the requested ID"))
		}
		return errorJSON(c, http.StatusInternalServerError, serverError("database error"))
	}

	cand := req.candidate()
	if admission.NeedsRecheck(prev, cand) {
		rest, err := h.Restaurants.GetByIDTx(ctx, tx, req.Restaurant, true)
		if err != nil && !errors.Is(err, repository.ErrRestaurantNotFound) {
			return errorJSON(c, http.StatusInternalServerError, serverError("database error"))
		}
		occupied := 0
		if rest != nil {
			// Exclude this reservation's prior footprint from the sum.
			occupied, err = h.Reservations.OccupancyTx(ctx, tx, req.Restaurant, req.BookingDate, req.BookingTime, id)
			if err != nil {
				return errorJSON(c, http.StatusInternalServerError, serverError("failed to read slot occupancy"))
			}
		}
		if rej := admission.Check(rest, occupied, cand); rej != nil {
			return errorJSON(c, http.StatusBadRequest, rejectionError(rej))
		}
	}

	res := req.reservation(id)
	if err := h.Reservations.UpdateTx(ctx, tx, res); err != nil {
		return errorJSON(c, http.StatusInternalServerError, serverError("failed to update reservation"))
	}
	if err := tx.Commit(); err != nil {
		return errorJSON(c, http.StatusInternalServerError, serverError("failed to commit transaction"))
	}
	committed = true
	return c.JSON(http.StatusOK, res)
}

// Delete handles DELETE /bookings/:id.
func (h *BookingHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if !utils.IsValidID(id) {
		return errorJSON(c, http.StatusBadRequest, malformedID(id, "_id", "params"))
	}
	if err := h.Reservations.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return errorJSON(c, http.StatusNotFound, notFound(id, "id", "this reservation does not exist"))
		}
		return errorJSON(c, http.StatusInternalServerError, serverError("database error"))
	}
	return c.NoContent(http.StatusOK)
}
