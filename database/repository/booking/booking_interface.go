package bookingRepo

import (
	"context"
	"errors"
	"time"

	"lawdesk/models"
)

// ErrBookingNotFound is returned when no booking matches the lookup.
var ErrBookingNotFound = errors.New("booking not found")

// BookingRepository defines the data access methods used by the booking flow
// and the availability engine.
type BookingRepository interface {
	// FindConfirmedInRange returns completed bookings with a consultation date in [from, to).
	FindConfirmedInRange(ctx context.Context, from, to time.Time) ([]models.BookingSlot, error)
	// FindHoldsInRange returns pending bookings in [from, to) created at or after since.
	FindHoldsInRange(ctx context.Context, from, to, since time.Time) ([]models.BookingSlot, error)
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByPaymentSession(ctx context.Context, sessionID string) (*models.Booking, error)
	SetPaymentSession(ctx context.Context, id, sessionID string) error
	// TransitionStatus moves a booking from one status to another and reports
	// whether this call performed the change.
	TransitionStatus(ctx context.Context, id, from, to string, at time.Time) (bool, error)
	// ConfirmHeld completes a pending booking only while its hold is live,
	// i.e. it was created at or after heldSince.
	ConfirmHeld(ctx context.Context, id string, heldSince, at time.Time) (bool, error)
	// ExpireStale marks pending bookings created before cutoff as expired.
	ExpireStale(ctx context.Context, cutoff time.Time) (int64, error)
	EnsureIndexes(ctx context.Context) error
}
