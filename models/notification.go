package models

// BookingNotificationPayload is the task payload for a confirmed booking.
type BookingNotificationPayload struct {
	BookingID string `json:"bookingId"`
}

// EnquiryNotificationPayload is the task payload for a new enquiry.
type EnquiryNotificationPayload struct {
	EnquiryID string `json:"enquiryId"`
}
