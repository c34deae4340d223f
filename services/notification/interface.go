package notification

import (
	"context"

	"lawdesk/models"
)

// NotificationService tells the client and the firm about new intake.
type NotificationService interface {
	NotifyBookingConfirmed(ctx context.Context, booking *models.Booking) error
	NotifyEnquiryReceived(ctx context.Context, enquiry *models.Enquiry) error
}

// Mailer delivers a plain-text email.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

// Messenger posts a message to the staff chat.
type Messenger interface {
	Send(ctx context.Context, text string) error
}
