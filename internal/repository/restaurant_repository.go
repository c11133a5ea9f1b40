package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/utils"
)

// RestaurantRepo provides CRUD access to the restaurants table.  The
// available_times slot set is stored as a JSON-encoded string column
// so the whole catalog record lives in a single row.
type RestaurantRepo struct {
	db *sql.DB
}

// NewRestaurantRepo returns a RestaurantRepo bound to the given database.
func NewRestaurantRepo(db *sql.DB) *RestaurantRepo { return &RestaurantRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that span multiple repositories.
func (r *RestaurantRepo) DB() *sql.DB { return r.db }

// Create inserts a new restaurant.  When rest.ID is empty a fresh
// 24-character hex identifier is generated and written back onto the
// record.
func (r *RestaurantRepo) Create(ctx context.Context, rest *model.Restaurant) error {
	if rest.ID == "" {
		id, err := utils.NewID()
		if err != nil {
			return err
		}
		rest.ID = id
	}
	times, err := json.Marshal(rest.AvailableTimes)
	if err != nil {
		return err
	}
	const q = `INSERT INTO restaurants (id, name, location, image, capacity, available_times)
	           VALUES (?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, q, rest.ID, rest.Name, rest.Location, rest.Image, rest.Capacity, string(times))
	return err
}

// scanRestaurant reads one restaurants row from the given scanner and
// decodes the available_times JSON column.
func scanRestaurant(row interface {
	Scan(dest ...interface{}) error
}) (*model.Restaurant, error) {
	var rest model.Restaurant
	var times string
	if err := row.Scan(&rest.ID, &rest.Name, &rest.Location, &rest.Image, &rest.Capacity, &times, &rest.CreatedAt, &rest.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(times), &rest.AvailableTimes); err != nil {
		return nil, err
	}
	return &rest, nil
}

const restaurantColumns = `id, name, location, image, capacity, available_times, created_at, updated_at`

// GetByID fetches one restaurant.  Returns ErrRestaurantNotFound when
// no row matches.
func (r *RestaurantRepo) GetByID(ctx context.Context, id string) (*model.Restaurant, error) {
	const q = `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = ?`
	rest, err := scanRestaurant(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, ErrRestaurantNotFound
	}
	return rest, err
}

// GetByIDTx is GetByID inside an existing transaction.  With forUpdate
// set the row is locked until the transaction ends; the admission path
// relies on this lock to serialise concurrent bookings for the same
// restaurant.
func (r *RestaurantRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id string, forUpdate bool) (*model.Restaurant, error) {
	q := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = ?`
	if forUpdate {
		q += ` FOR UPDATE`
	}
	rest, err := scanRestaurant(tx.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, ErrRestaurantNotFound
	}
	return rest, err
}

// List returns all restaurants ordered by name.
func (r *RestaurantRepo) List(ctx context.Context) ([]model.Restaurant, error) {
	const q = `SELECT ` + restaurantColumns + ` FROM restaurants ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Restaurant, 0)
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rest)
	}
	return out, rows.Err()
}

// Update replaces every mutable column of an existing restaurant.
// Returns ErrRestaurantNotFound when the id matches no row.
func (r *RestaurantRepo) Update(ctx context.Context, rest *model.Restaurant) error {
	times, err := json.Marshal(rest.AvailableTimes)
	if err != nil {
		return err
	}
	const q = `UPDATE restaurants SET name = ?, location = ?, image = ?, capacity = ?, available_times = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, rest.Name, rest.Location, rest.Image, rest.Capacity, string(times), rest.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// RowsAffected is also 0 when the row exists but nothing
		// changed; confirm absence before reporting not found.
		if _, err := r.GetByID(ctx, rest.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a restaurant.  Returns ErrRestaurantNotFound when no
// row was deleted.
func (r *RestaurantRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM restaurants WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRestaurantNotFound
	}
	return nil
}
