package booking

import "errors"

var (
	ErrInvalidBooking         = errors.New("invalid booking request")
	ErrSlotUnavailable        = errors.New("requested slot is no longer available")
	ErrSlotBusy               = errors.New("another booking for this date is in progress")
	ErrBookingNotFound        = errors.New("booking not found")
	ErrPaymentIncomplete      = errors.New("payment has not been completed")
	ErrBookingExpired         = errors.New("booking hold has expired")
	ErrPaymentSessionNotFound = errors.New("payment session not found")
	ErrInvalidWebhook         = errors.New("invalid payment webhook")
	ErrPaymentUnavailable     = errors.New("payment provider unavailable")
)
