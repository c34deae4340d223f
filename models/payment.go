package models

// CheckoutInput describes the hosted checkout page to open for a booking.
type CheckoutInput struct {
	BookingID     string
	CustomerEmail string
	Description   string
	Amount        int64
	Currency      string
	ExpiresInSecs int64
}

// CheckoutSession is the gateway's view of a checkout.
type CheckoutSession struct {
	ID        string
	URL       string
	BookingID string
	Paid      bool
	Status    string
}

// Webhook event kinds the booking flow reacts to.
const (
	PaymentEventCompleted = "checkout.session.completed"
	PaymentEventExpired   = "checkout.session.expired"

	PaymentEventAsyncSucceeded = "checkout.session.async_payment_succeeded"
)

// PaymentEvent is a verified webhook notification.
type PaymentEvent struct {
	ID      string
	Type    string
	Session CheckoutSession
}
