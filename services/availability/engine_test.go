package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"lawdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storedBooking struct {
	date     time.Time
	time     string
	duration string
	status   string
}

// fakeStore applies the same filter the Mongo repository sends to the server.
type fakeStore struct {
	bookings []storedBooking
	err      error
	calls    int
	from, to time.Time
}

func (f *fakeStore) FindConfirmedInRange(_ context.Context, from, to time.Time) ([]models.BookingSlot, error) {
	f.calls++
	f.from, f.to = from, to
	if f.err != nil {
		return nil, f.err
	}
	var out []models.BookingSlot
	for _, b := range f.bookings {
		if b.status != models.BookingStatusCompleted {
			continue
		}
		if b.date.Before(from) || !b.date.Before(to) {
			continue
		}
		out = append(out, models.BookingSlot{ConsultationTime: b.time, ConsultationDuration: b.duration})
	}
	return out, nil
}

var london = mustLoad("Europe/London")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, london)
}

func confirmed(date time.Time, label, duration string) storedBooking {
	return storedBooking{date: date, time: label, duration: duration, status: models.BookingStatusCompleted}
}

func TestOccupiedSlots(t *testing.T) {
	june10 := day(2024, time.June, 10)

	tests := []struct {
		name     string
		bookings []storedBooking
		want     []string
	}{
		{
			name: "no bookings",
			want: []string{},
		},
		{
			name:     "30 minute booking occupies its own slot",
			bookings: []storedBooking{confirmed(june10, "09:00", models.Duration30)},
			want:     []string{"09:00"},
		},
		{
			name:     "60 minute booking on the hour blocks half past",
			bookings: []storedBooking{confirmed(june10, "09:00", models.Duration60)},
			want:     []string{"09:00", "09:30"},
		},
		{
			name:     "60 minute booking at half past blocks next hour",
			bookings: []storedBooking{confirmed(june10, "09:30", models.Duration60)},
			want:     []string{"09:30", "10:00"},
		},
		{
			name: "non completed bookings are invisible",
			bookings: []storedBooking{
				{date: june10, time: "10:00", duration: models.Duration60, status: models.BookingStatusPending},
				{date: june10, time: "11:00", duration: models.Duration30, status: models.BookingStatusExpired},
				{date: june10, time: "12:00", duration: models.Duration60, status: models.BookingStatusCancelled},
			},
			want: []string{},
		},
		{
			name: "neighbouring days never leak in",
			bookings: []storedBooking{
				confirmed(june10.Add(-time.Nanosecond), "09:00", models.Duration30),
				confirmed(day(2024, time.June, 11), "10:00", models.Duration30),
				confirmed(june10, "15:00", models.Duration30),
			},
			want: []string{"15:00"},
		},
		{
			name: "derived and direct slots collapse",
			bookings: []storedBooking{
				confirmed(june10, "09:00", models.Duration60),
				confirmed(june10, "09:30", models.Duration30),
			},
			want: []string{"09:00", "09:30"},
		},
		{
			name: "end to end example",
			bookings: []storedBooking{
				confirmed(june10, "09:00", models.Duration60),
				confirmed(june10, "14:00", models.Duration30),
			},
			want: []string{"09:00", "09:30", "14:00"},
		},
		{
			name:     "last half hour of the day does not wrap",
			bookings: []storedBooking{confirmed(june10, "23:30", models.Duration60)},
			want:     []string{"23:30"},
		},
		{
			name:     "off grid minute adds no adjacent slot",
			bookings: []storedBooking{confirmed(june10, "09:15", models.Duration60)},
			want:     []string{"09:15"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{bookings: tt.bookings}
			engine := NewEngine(store, london)

			got, err := engine.OccupiedSlots(context.Background(), "2024-06-10")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Sorted())
		})
	}
}

func TestOccupiedSlotsQueriesHalfOpenDay(t *testing.T) {
	store := &fakeStore{}
	engine := NewEngine(store, london)

	_, err := engine.OccupiedSlots(context.Background(), "2024-06-10")
	require.NoError(t, err)

	assert.Equal(t, day(2024, time.June, 10), store.from)
	assert.Equal(t, day(2024, time.June, 11), store.to)
}

func TestOccupiedSlotsDSTDayIsFullLength(t *testing.T) {
	store := &fakeStore{}
	engine := NewEngine(store, london)

	// Clocks go forward on 2024-03-31 in London, so the day is 23 hours long.
	_, err := engine.OccupiedSlots(context.Background(), "2024-03-31")
	require.NoError(t, err)
	assert.Equal(t, 23*time.Hour, store.to.Sub(store.from))
	assert.Equal(t, day(2024, time.April, 1), store.to)
}

func TestOccupiedSlotsInvalidInput(t *testing.T) {
	for _, raw := range []string{"", "  ", "10/06/2024", "2024-13-01", "2024-02-30", "tomorrow"} {
		t.Run(raw, func(t *testing.T) {
			store := &fakeStore{}
			engine := NewEngine(store, london)

			_, err := engine.OccupiedSlots(context.Background(), raw)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, store.calls, "store must not be queried for invalid input")
		})
	}
}

func TestOccupiedSlotsOnZeroDay(t *testing.T) {
	engine := NewEngine(&fakeStore{}, london)
	_, err := engine.OccupiedSlotsOn(context.Background(), time.Time{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestOccupiedSlotsUpstreamFailure(t *testing.T) {
	cause := errors.New("server selection timeout")
	engine := NewEngine(&fakeStore{err: cause}, london)

	got, err := engine.OccupiedSlots(context.Background(), "2024-06-10")
	assert.Nil(t, got, "no partial or empty result on failure")
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.ErrorIs(t, err, cause)
}

func TestOccupiedSlotsIdempotent(t *testing.T) {
	store := &fakeStore{bookings: []storedBooking{confirmed(day(2024, time.June, 10), "11:30", models.Duration60)}}
	engine := NewEngine(store, london)

	first, err := engine.OccupiedSlots(context.Background(), "2024-06-10")
	require.NoError(t, err)
	second, err := engine.OccupiedSlots(context.Background(), "2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"11:30", "12:00"}, second.Sorted())
}
