package models

import "time"

// Booking status values. Only BookingStatusCompleted occupies calendar slots.
const (
	BookingStatusPending   = "pending"
	BookingStatusCompleted = "completed"
	BookingStatusExpired   = "expired"
	BookingStatusCancelled = "cancelled"
)

// Consultation duration classes.
const (
	Duration30 = "30min"
	Duration60 = "60min"
)

// DateFormat is the calendar-day layout used on the wire.
const DateFormat = "2006-01-02"

// Booking represents a consultation booking record.
type Booking struct {
	ID                   string     `bson:"id" json:"id"`
	ClientName           string     `bson:"clientName" json:"clientName"`
	ClientEmail          string     `bson:"clientEmail" json:"clientEmail"`
	ClientPhone          string     `bson:"clientPhone,omitempty" json:"clientPhone,omitempty"`
	PracticeArea         string     `bson:"practiceArea" json:"practiceArea"`
	Notes                string     `bson:"notes,omitempty" json:"notes,omitempty"`
	ConsultationDate     time.Time  `bson:"consultationDate" json:"consultationDate"`         // Midnight of the day in the firm's time zone
	ConsultationTime     string     `bson:"consultationTime" json:"consultationTime"`         // "HH:MM" on the 30-minute grid
	ConsultationDuration string     `bson:"consultationDuration" json:"consultationDuration"` // Duration30 or Duration60
	Amount               int64      `bson:"amount" json:"amount"`                             // Minor currency units
	Currency             string     `bson:"currency" json:"currency"`
	Status               string     `bson:"status" json:"status"`
	PaymentSessionID     string     `bson:"paymentSessionId,omitempty" json:"-"`
	CreatedAt            time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time  `bson:"updatedAt" json:"updatedAt"`
	ConfirmedAt          *time.Time `bson:"confirmedAt,omitempty" json:"confirmedAt,omitempty"`
}

// BookingSlot is the slice of a booking the availability engine reads.
type BookingSlot struct {
	ConsultationTime     string `bson:"consultationTime"`
	ConsultationDuration string `bson:"consultationDuration"`
}

// CheckoutRequest is the public booking form payload.
type CheckoutRequest struct {
	ClientName   string `json:"clientName" binding:"required,max=120"`
	ClientEmail  string `json:"clientEmail" binding:"required,email"`
	ClientPhone  string `json:"clientPhone" binding:"omitempty,max=40"`
	PracticeArea string `json:"practiceArea" binding:"required,max=80"`
	Notes        string `json:"notes" binding:"omitempty,max=2000"`
	Date         string `json:"consultationDate" binding:"required"`
	Time         string `json:"consultationTime" binding:"required"`
	Duration     string `json:"consultationDuration" binding:"required,oneof=30min 60min"`
}

// CheckoutResponse points the client at the hosted payment page.
type CheckoutResponse struct {
	BookingID   string `json:"bookingId"`
	SessionID   string `json:"sessionId"`
	CheckoutURL string `json:"checkoutUrl"`
}

// PublicBooking is what the confirmation page may show.
type PublicBooking struct {
	ID                   string `json:"id"`
	ClientName           string `json:"clientName"`
	PracticeArea         string `json:"practiceArea"`
	ConsultationDate     string `json:"consultationDate"`
	ConsultationTime     string `json:"consultationTime"`
	ConsultationDuration string `json:"consultationDuration"`
	Status               string `json:"status"`
}

// Public strips contact and payment details. loc renders the calendar day.
func (b *Booking) Public(loc *time.Location) PublicBooking {
	return PublicBooking{
		ID:                   b.ID,
		ClientName:           b.ClientName,
		PracticeArea:         b.PracticeArea,
		ConsultationDate:     b.ConsultationDate.In(loc).Format(DateFormat),
		ConsultationTime:     b.ConsultationTime,
		ConsultationDuration: b.ConsultationDuration,
		Status:               b.Status,
	}
}
