package admission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

func testRestaurant() *model.Restaurant {
	return &model.Restaurant{
		ID:             "6109dc9adcf23a013990701d",
		Name:           "Happy Burgers",
		Location:       "Betoota, QLD",
		Capacity:       35,
		AvailableTimes: []string{"11:00am - 12:00pm", "12:00pm - 1:00pm", "1:00pm - 2:00pm"},
	}
}

func TestCheckUnknownRestaurant(t *testing.T) {
	rej := Check(nil, 0, Candidate{
		RestaurantID: "6109dc9adcf23a0139907000",
		BookingDate:  "2021-07-27",
		BookingTime:  "11:00am - 12:00pm",
		NumGuests:    2,
	})
	require.NotNil(t, rej)
	assert.Equal(t, UnknownRestaurant, rej.Reason)
	assert.Equal(t, "restaurant", rej.Param)
	assert.Equal(t, "6109dc9adcf23a0139907000", rej.Value)
}

func TestCheckOrderAndReasons(t *testing.T) {
	r := testRestaurant()
	tests := []struct {
		name     string
		occupied int
		cand     Candidate
		want     Reason // empty means accept
	}{
		{
			name: "accept empty slot",
			cand: Candidate{RestaurantID: r.ID, BookingDate: "2021-07-27", BookingTime: "11:00am - 12:00pm", NumGuests: 4},
		},
		{
			name:     "party over base capacity rejected regardless of occupancy",
			occupied: 0,
			cand:     Candidate{RestaurantID: r.ID, BookingDate: "2021-07-27", BookingTime: "11:00am - 12:00pm", NumGuests: 36},
			want:     ExceedsBaseCapacity,
		},
		{
			name: "base capacity check wins over unknown slot",
			cand: Candidate{RestaurantID: r.ID, BookingDate: "2021-07-27", BookingTime: "3:00am - 4:00am", NumGuests: 100},
			want: ExceedsBaseCapacity,
		},
		{
			name: "slot not offered",
			cand: Candidate{RestaurantID: r.ID, BookingDate: "2021-07-27", BookingTime: "3:00am - 4:00am", NumGuests: 4},
			want: SlotNotOffered,
		},
		{
			name:     "slot full: 20 booked, 20 more do not fit in 35",
			occupied: 20,
			cand:     Candidate{RestaurantID: r.ID, BookingDate: "2021-07-27", BookingTime: "11:00am - 12:00pm", NumGuests: 20},
			want:     SlotFull,
		},
		{
			name:     "exactly filling capacity is accepted: 20 booked plus 15",
			occupied: 20,
			cand:     Candidate{RestaurantID: r.ID, BookingDate: "2021-07-27", BookingTime: "11:00am - 12:00pm", NumGuests: 15},
		},
		{
			name:     "one over remaining space rejected",
			occupied: 34,
			cand:     Candidate{RestaurantID: r.ID, BookingDate: "2021-07-27", BookingTime: "12:00pm - 1:00pm", NumGuests: 2},
			want:     SlotFull,
		},
		{
			name:     "party equal to base capacity in empty slot accepted",
			occupied: 0,
			cand:     Candidate{RestaurantID: r.ID, BookingDate: "2021-07-27", BookingTime: "1:00pm - 2:00pm", NumGuests: 35},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rej := Check(r, tt.occupied, tt.cand)
			if tt.want == "" {
				assert.Nil(t, rej)
				return
			}
			require.NotNil(t, rej)
			assert.Equal(t, tt.want, rej.Reason)
			assert.NotEmpty(t, rej.Param)
			assert.NotEmpty(t, rej.Msg)
		})
	}
}

// Editing a reservation must not count its own prior footprint against
// itself: callers exclude the previous version from the occupancy sum,
// so a same-slot edit in a full slot still fits.
func TestCheckUpdateExcludesOwnFootprint(t *testing.T) {
	r := testRestaurant()
	// Slot holds 35 total, 15 of which belong to the booking being
	// edited.  Occupancy passed in is therefore 20.
	cand := Candidate{RestaurantID: r.ID, BookingDate: "2021-07-27", BookingTime: "11:00am - 12:00pm", NumGuests: 15}
	assert.Nil(t, Check(r, 20, cand))

	// Growing the same booking past the remaining space fails.
	cand.NumGuests = 16
	rej := Check(r, 20, cand)
	require.NotNil(t, rej)
	assert.Equal(t, SlotFull, rej.Reason)

	// Shrinking always succeeds.
	cand.NumGuests = 1
	assert.Nil(t, Check(r, 20, cand))
}

func TestNeedsRecheck(t *testing.T) {
	prev := &model.Reservation{
		RestaurantID: "6109dc9adcf23a013990701d",
		BookingDate:  "2021-07-27",
		BookingTime:  "11:00am - 12:00pm",
		NumGuests:    4,
	}
	base := Candidate{
		RestaurantID: prev.RestaurantID,
		BookingDate:  prev.BookingDate,
		BookingTime:  prev.BookingTime,
		NumGuests:    prev.NumGuests,
	}

	// Contact-only edits keep all four key fields, so no recheck.
	assert.False(t, NeedsRecheck(prev, base))

	restChanged := base
	restChanged.RestaurantID = "6110d97db6211501cedf64b6"
	assert.True(t, NeedsRecheck(prev, restChanged))

	dateChanged := base
	dateChanged.BookingDate = "2021-07-28"
	assert.True(t, NeedsRecheck(prev, dateChanged))

	timeChanged := base
	timeChanged.BookingTime = "12:00pm - 1:00pm"
	assert.True(t, NeedsRecheck(prev, timeChanged))

	guestsChanged := base
	guestsChanged.NumGuests = 5
	assert.True(t, NeedsRecheck(prev, guestsChanged))
}
