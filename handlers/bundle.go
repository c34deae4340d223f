package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Availability endpoints
	GetAvailableSlots gin.HandlerFunc

	// Booking endpoints
	StartCheckout gin.HandlerFunc
	VerifyPayment gin.HandlerFunc
	GetBooking    gin.HandlerFunc
	StripeWebhook gin.HandlerFunc

	// Contact form
	SubmitEnquiry gin.HandlerFunc

	// Operations
	Health  gin.HandlerFunc
	Metrics gin.HandlerFunc
}
