package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
	"github.com/iliyamo/restaurant-table-reservation/internal/utils"
)

// RestaurantHandler serves the catalog endpoints: the public listing
// routes and the admin mutation routes.
type RestaurantHandler struct {
	Restaurants *repository.RestaurantRepo
}

// NewRestaurantHandler constructs a RestaurantHandler.
func NewRestaurantHandler(restaurants *repository.RestaurantRepo) *RestaurantHandler {
	if restaurants == nil {
		panic("nil repository passed to NewRestaurantHandler")
	}
	return &RestaurantHandler{Restaurants: restaurants}
}

// restaurantRequest is the JSON body for creating or replacing a
// restaurant.
type restaurantRequest struct {
	Name           string   `json:"restaurant_name" validate:"required"`
	Location       string   `json:"restaurant_location" validate:"required"`
	Image          string   `json:"restaurant_image"`
	Capacity       int      `json:"capacity" validate:"required,gt=0"`
	AvailableTimes []string `json:"available_times" validate:"required,min=1,dive,required"`
}

func (r *restaurantRequest) restaurant(id string) *model.Restaurant {
	return &model.Restaurant{
		ID:             id,
		Name:           r.Name,
		Location:       r.Location,
		Image:          r.Image,
		Capacity:       r.Capacity,
		AvailableTimes: r.AvailableTimes,
	}
}

// Create handles POST /admin.
func (h *RestaurantHandler) Create(c echo.Context) error {
	var req restaurantRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, APIError{Value: "", Msg: "invalid request body", Param: "body", Location: "body"})
	}
	if errs := validateStruct(&req); errs != nil {
		return errorJSON(c, http.StatusBadRequest, errs...)
	}
	rest := req.restaurant("")
	if err := h.Restaurants.Create(c.Request().Context(), rest); err != nil {
		return errorJSON(c, http.StatusInternalServerError, serverError("failed to save restaurant"))
	}
	return c.JSON(http.StatusCreated, rest)
}

// List handles GET /restaurants.
func (h *RestaurantHandler) List(c echo.Context) error {
	restaurants, err := h.Restaurants.List(c.Request().Context())
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, serverError("database error"))
	}
	return c.JSON(http.StatusOK, restaurants)
}

// Get handles GET /restaurants/:id.
func (h *RestaurantHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if !utils.IsValidID(id) {
		return errorJSON(c, http.StatusBadRequest, malformedID(id, "_id", "params"))
	}
	rest, err := h.Restaurants.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return errorJSON(c, http.StatusNotFound, notFound(id, "_id", "No restaurant found for the requested ID"))
		}
		return errorJSON(c, http.StatusInternalServerError, serverError("database error"))
	}
	return c.JSON(http.StatusOK, rest)
}

// Upsert handles PUT /admin/:id.  An existing restaurant is fully
// replaced (200); an unknown but well-formed id creates a new
// restaurant under that id (201).
func (h *RestaurantHandler) Upsert(c echo.Context) error {
	id := c.Param("id")
	if !utils.IsValidID(id) {
		return errorJSON(c, http.StatusBadRequest, malformedID(id, "_id", "params"))
	}
	var req restaurantRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, APIError{Value: "", Msg: "invalid request body", Param: "body", Location: "body"})
	}
	if errs := validateStruct(&req); errs != nil {
		return errorJSON(c, http.StatusBadRequest, errs...)
	}

	ctx := c.Request().Context()
	rest := req.restaurant(id)
	_, err := h.Restaurants.GetByID(ctx, id)
	switch {
	case err == nil:
		if err := h.Restaurants.Update(ctx, rest); err != nil {
			return errorJSON(c, http.StatusInternalServerError, serverError("failed to update restaurant"))
		}
		return c.JSON(http.StatusOK, rest)
	case errors.Is(err, repository.ErrRestaurantNotFound):
		if err := h.Restaurants.Create(ctx, rest); err != nil {
			return errorJSON(c, http.StatusInternalServerError, serverError("failed to save restaurant"))
		}
		return c.JSON(http.StatusCreated, rest)
	default:
		return errorJSON(c, http.StatusInternalServerError, serverError("database error"))
	}
}

// Delete handles DELETE /admin/:id.
func (h *RestaurantHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if !utils.IsValidID(id) {
		return errorJSON(c, http.StatusBadRequest, malformedID(id, "_id", "params"))
	}
	if err := h.Restaurants.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return errorJSON(c, http.StatusNotFound, notFound(id, "id", "this restaurant does not exist"))
		}
		return errorJSON(c, http.StatusInternalServerError, serverError("database error"))
	}
	return c.NoContent(http.StatusOK)
}
