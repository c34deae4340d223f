package booking

import (
	"context"
	"time"

	"lawdesk/models"
	"lawdesk/services/availability"
)

// BookingService runs the paid consultation booking flow.
type BookingService interface {
	StartCheckout(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutResponse, error)
	VerifyPayment(ctx context.Context, sessionID string) (*models.Booking, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	Confirm(ctx context.Context, bookingID string) (*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ExpireStale(ctx context.Context) (int64, error)
	Location() *time.Location
}

// Availability reports the slots confirmed bookings occupy on a day.
type Availability interface {
	OccupiedSlotsOn(ctx context.Context, day time.Time) (availability.SlotSet, error)
}

// SlotLocker serialises checkouts that compete for the same key.
type SlotLocker interface {
	WithSlotLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}
