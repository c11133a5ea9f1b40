package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestBookingGetMalformedID(t *testing.T) {
	e := echo.New()
	h := &BookingHandler{}

	req := httptest.NewRequest(http.MethodGet, "/bookings/teapot", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/bookings/:id")
	c.SetParamNames("id")
	c.SetParamValues("teapot")

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "teapot", env.Errors[0].Value)
	assert.Equal(t, "Not a valid object ID", env.Errors[0].Msg)
	assert.Equal(t, "_id", env.Errors[0].Param)
	assert.Equal(t, "params", env.Errors[0].Location)
}

func TestBookingCreateMalformedRestaurantID(t *testing.T) {
	e := echo.New()
	h := &BookingHandler{}

	body := `{"restaurant":"6109dc9adcf23a013990701","status":"Processing","bookingdate":"2026-09-12","bookingtime":"19:00","numguests":2,"username":"Dana","mobilenum":"0412345678"}`
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "restaurant", env.Errors[0].Param)
	assert.Equal(t, "Not a valid object ID", env.Errors[0].Msg)
	assert.Equal(t, "body", env.Errors[0].Location)
}

func TestBookingCreateValidationEnvelope(t *testing.T) {
	e := echo.New()
	h := &BookingHandler{}

	body := `{"restaurant":"6109dc9adcf23a013990701d","status":"Processing","bookingdate":"not-a-date","bookingtime":"19:00","numguests":2,"username":"Dana","mobilenum":"0412345678"}`
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "not-a-date", env.Errors[0].Value)
	assert.Equal(t, "Not a valid date", env.Errors[0].Msg)
	assert.Equal(t, "bookingdate", env.Errors[0].Param)
}

func TestRestaurantGetMalformedID(t *testing.T) {
	e := echo.New()
	h := &RestaurantHandler{}

	req := httptest.NewRequest(http.MethodGet, "/restaurants/xyz", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/restaurants/:id")
	c.SetParamNames("id")
	c.SetParamValues("xyz")

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "Not a valid object ID", env.Errors[0].Msg)
}

func TestHealth(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, Health(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
