package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/utils"
)

// ReservationRepo provides CRUD operations for reservations plus the
// occupancy aggregate the admission checker reads.  Write paths that
// participate in admission take a *sql.Tx so the caller can hold the
// restaurant row lock across the whole read-decide-write sequence.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle for transaction management.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationColumns = `id, restaurant_id, status, booking_date, booking_time, num_guests, username, mobile_num, spec_req, created_at, updated_at`

func scanReservation(row interface {
	Scan(dest ...interface{}) error
}) (*model.Reservation, error) {
	var res model.Reservation
	err := row.Scan(&res.ID, &res.RestaurantID, &res.Status, &res.BookingDate, &res.BookingTime,
		&res.NumGuests, &res.Username, &res.MobileNum, &res.SpecReq, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateTx inserts a new reservation within an existing transaction.
// When res.ID is empty a fresh identifier is generated and written
// back.  The caller must commit or roll back.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	if res.ID == "" {
		id, err := utils.NewID()
		if err != nil {
			return err
		}
		res.ID = id
	}
	const q = `INSERT INTO reservations (id, restaurant_id, status, booking_date, booking_time, num_guests, username, mobile_num, spec_req)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := tx.ExecContext(ctx, q,
		res.ID, res.RestaurantID, res.Status, res.BookingDate, res.BookingTime,
		res.NumGuests, res.Username, res.MobileNum, res.SpecReq)
	return err
}

// GetByID fetches one reservation without its restaurant joined.
// Returns ErrReservationNotFound when no row matches.
func (r *ReservationRepo) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	return res, err
}

// GetByIDTx is GetByID inside an existing transaction, used on the
// update path so the previous version is read under the same
// transaction that decides admission.
func (r *ReservationRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id string) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	res, err := scanReservation(tx.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	return res, err
}

// OccupancyTx returns the total number of guests booked for the given
// restaurant, date and slot across all non-cancelled reservations,
// excluding the reservation with excludeID (pass "" on the create
// path).  The exclusion lets an update measure the slot as if the
// previous version of the booking were already gone.
func (r *ReservationRepo) OccupancyTx(ctx context.Context, tx *sql.Tx, restaurantID, date, slot, excludeID string) (int, error) {
	const q = `SELECT COALESCE(SUM(num_guests), 0)
	           FROM reservations
	           WHERE restaurant_id = ? AND booking_date = ? AND booking_time = ?
	             AND status <> ? AND id <> ?`
	var total int
	err := tx.QueryRowContext(ctx, q, restaurantID, date, slot, model.StatusCancelled, excludeID).Scan(&total)
	return total, err
}

// UpdateTx replaces every mutable column of an existing reservation
// within the provided transaction.
func (r *ReservationRepo) UpdateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `UPDATE reservations
	           SET restaurant_id = ?, status = ?, booking_date = ?, booking_time = ?, num_guests = ?, username = ?, mobile_num = ?, spec_req = ?
	           WHERE id = ?`
	_, err := tx.ExecContext(ctx, q,
		res.RestaurantID, res.Status, res.BookingDate, res.BookingTime,
		res.NumGuests, res.Username, res.MobileNum, res.SpecReq, res.ID)
	return err
}

// Delete removes a reservation.  Returns ErrReservationNotFound when
// no row was deleted.
func (r *ReservationRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// GetDetail fetches one reservation with its restaurant joined in.
// The join is a LEFT JOIN: a reservation whose restaurant has since
// been deleted still comes back, with a nil Restaurant.
func (r *ReservationRepo) GetDetail(ctx context.Context, id string) (*model.ReservationDetail, error) {
	const q = `SELECT r.id, r.status, r.booking_date, r.booking_time, r.num_guests, r.username, r.mobile_num, r.spec_req,
	                  rest.id, rest.name, rest.location, rest.image, rest.capacity, rest.available_times
	           FROM reservations r
	           LEFT JOIN restaurants rest ON rest.id = r.restaurant_id
	           WHERE r.id = ?`
	det, err := scanDetail(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	return det, err
}

// ListDetails returns every reservation with its restaurant joined,
// newest first.
func (r *ReservationRepo) ListDetails(ctx context.Context) ([]model.ReservationDetail, error) {
	const q = `SELECT r.id, r.status, r.booking_date, r.booking_time, r.num_guests, r.username, r.mobile_num, r.spec_req,
	                  rest.id, rest.name, rest.location, rest.image, rest.capacity, rest.available_times
	           FROM reservations r
	           LEFT JOIN restaurants rest ON rest.id = r.restaurant_id
	           ORDER BY r.created_at DESC, r.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.ReservationDetail, 0)
	for rows.Next() {
		det, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *det)
	}
	return out, rows.Err()
}

func scanDetail(row interface {
	Scan(dest ...interface{}) error
}) (*model.ReservationDetail, error) {
	var det model.ReservationDetail
	var restID, restName, restLocation, restImage, restTimes sql.NullString
	var restCapacity sql.NullInt64
	err := row.Scan(&det.ID, &det.Status, &det.BookingDate, &det.BookingTime,
		&det.NumGuests, &det.Username, &det.MobileNum, &det.SpecReq,
		&restID, &restName, &restLocation, &restImage, &restCapacity, &restTimes)
	if err != nil {
		return nil, err
	}
	if restID.Valid {
		rest := model.Restaurant{
			ID:       restID.String,
			Name:     restName.String,
			Location: restLocation.String,
			Image:    restImage.String,
			Capacity: int(restCapacity.Int64),
		}
		if restTimes.Valid && restTimes.String != "" {
			if err := json.Unmarshal([]byte(restTimes.String), &rest.AvailableTimes); err != nil {
				return nil, err
			}
		}
		det.Restaurant = &rest
	}
	return &det, nil
}
