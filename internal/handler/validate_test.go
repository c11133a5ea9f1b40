package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBookingRequest() bookingRequest {
	return bookingRequest{
		Restaurant:  "6109dc9adcf23a013990701d",
		Status:      "Processing",
		BookingDate: "2026-09-12",
		BookingTime: "19:00",
		NumGuests:   4,
		Username:    "Dana",
		MobileNum:   "0412345678",
		SpecReq:     "window seat",
	}
}

func TestValidateBookingRequest(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*bookingRequest)
		param   string
		wantMsg string
	}{
		{
			name:   "valid passes",
			mutate: func(r *bookingRequest) {},
		},
		{
			name:    "missing restaurant",
			mutate:  func(r *bookingRequest) { r.Restaurant = "" },
			param:   "restaurant",
			wantMsg: "is required",
		},
		{
			name:    "bad status",
			mutate:  func(r *bookingRequest) { r.Status = "Pending" },
			param:   "status",
			wantMsg: "Not a valid status",
		},
		{
			name:    "bad date format",
			mutate:  func(r *bookingRequest) { r.BookingDate = "12/09/2026" },
			param:   "bookingdate",
			wantMsg: "Not a valid date",
		},
		{
			name:    "impossible date",
			mutate:  func(r *bookingRequest) { r.BookingDate = "2026-02-30" },
			param:   "bookingdate",
			wantMsg: "Not a valid date",
		},
		{
			name:    "zero guests",
			mutate:  func(r *bookingRequest) { r.NumGuests = 0 },
			param:   "numguests",
			wantMsg: "is required",
		},
		{
			name:    "negative guests",
			mutate:  func(r *bookingRequest) { r.NumGuests = -3 },
			param:   "numguests",
			wantMsg: "must be greater than 0",
		},
		{
			name:    "landline number",
			mutate:  func(r *bookingRequest) { r.MobileNum = "0298765432" },
			param:   "mobilenum",
			wantMsg: "Not a valid phone number",
		},
		{
			name:   "international mobile",
			mutate: func(r *bookingRequest) { r.MobileNum = "+61412345678" },
		},
		{
			name:   "bare country code mobile",
			mutate: func(r *bookingRequest) { r.MobileNum = "61412345678" },
		},
		{
			name:    "mobile too short",
			mutate:  func(r *bookingRequest) { r.MobileNum = "041234567" },
			param:   "mobilenum",
			wantMsg: "Not a valid phone number",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validBookingRequest()
			tt.mutate(&req)
			errs := validateStruct(&req)
			if tt.param == "" {
				assert.Nil(t, errs)
				return
			}
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.param, errs[0].Param)
			assert.Equal(t, tt.wantMsg, errs[0].Msg)
			assert.Equal(t, "body", errs[0].Location)
		})
	}
}

func TestValidateRestaurantRequest(t *testing.T) {
	valid := restaurantRequest{
		Name:           "Golden Wok",
		Location:       "12 High St, Melbourne",
		Capacity:       35,
		AvailableTimes: []string{"18:00", "19:00", "20:00"},
	}

	t.Run("valid passes", func(t *testing.T) {
		req := valid
		assert.Nil(t, validateStruct(&req))
	})

	t.Run("image is optional", func(t *testing.T) {
		req := valid
		req.Image = ""
		assert.Nil(t, validateStruct(&req))
	})

	t.Run("zero capacity", func(t *testing.T) {
		req := valid
		req.Capacity = 0
		errs := validateStruct(&req)
		require.NotEmpty(t, errs)
		assert.Equal(t, "capacity", errs[0].Param)
	})

	t.Run("empty available times", func(t *testing.T) {
		req := valid
		req.AvailableTimes = []string{}
		errs := validateStruct(&req)
		require.NotEmpty(t, errs)
		assert.Equal(t, "available_times", errs[0].Param)
	})

	t.Run("blank slot entry", func(t *testing.T) {
		req := valid
		req.AvailableTimes = []string{"18:00", ""}
		errs := validateStruct(&req)
		require.NotEmpty(t, errs)
	})
}

func TestValidationErrorsUseJSONFieldNames(t *testing.T) {
	req := bookingRequest{}
	errs := validateStruct(&req)
	require.NotEmpty(t, errs)
	seen := map[string]bool{}
	for _, e := range errs {
		seen[e.Param] = true
	}
	for _, want := range []string{"restaurant", "status", "bookingdate", "bookingtime", "numguests", "username", "mobilenum"} {
		assert.True(t, seen[want], "missing validation error for %s", want)
	}
}
