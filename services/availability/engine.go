package availability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lawdesk/models"
)

// BookingReader is the read side of the booking store the engine depends on.
type BookingReader interface {
	// FindConfirmedInRange returns completed bookings with a consultation date in [from, to).
	FindConfirmedInRange(ctx context.Context, from, to time.Time) ([]models.BookingSlot, error)
}

// Engine derives occupied consultation slots from confirmed bookings.
// It holds no state between calls.
type Engine struct {
	reader BookingReader
	loc    *time.Location
}

func NewEngine(reader BookingReader, loc *time.Location) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{reader: reader, loc: loc}
}

// Location is the time zone calendar days are interpreted in.
func (e *Engine) Location() *time.Location {
	return e.loc
}

// ParseDate parses a "YYYY-MM-DD" day in the engine's time zone.
func (e *Engine) ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	day, err := time.ParseInLocation(models.DateFormat, raw, e.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return day, nil
}

// OccupiedSlots parses date and returns the slots reserved on that day.
func (e *Engine) OccupiedSlots(ctx context.Context, date string) (SlotSet, error) {
	day, err := e.ParseDate(date)
	if err != nil {
		return nil, err
	}
	return e.OccupiedSlotsOn(ctx, day)
}

// OccupiedSlotsOn returns the slots reserved by confirmed bookings on day.
func (e *Engine) OccupiedSlotsOn(ctx context.Context, day time.Time) (SlotSet, error) {
	if day.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	from, to := DayWindow(day, e.loc)

	bookings, err := e.reader.FindConfirmedInRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}

	occupied := make(SlotSet, len(bookings)*2)
	for _, b := range bookings {
		Occupy(occupied, b.ConsultationTime, b.ConsultationDuration)
	}
	return occupied, nil
}
