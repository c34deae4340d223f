package handlers

import (
	"errors"
	"io"
	"net/http"

	"lawdesk/models"
	"lawdesk/services/availability"
	"lawdesk/services/booking"
	"lawdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Stripe events are small; anything larger is not a real webhook.
const maxWebhookBody = 64 << 10

type BookingHandler struct {
	svc booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// StartCheckout handles POST /api/bookings/checkout.
func (h *BookingHandler) StartCheckout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	resp, err := h.svc.StartCheckout(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// VerifyPayment handles GET /api/bookings/verify?session_id=...
func (h *BookingHandler) VerifyPayment(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid_request", "session_id is required")
		return
	}

	b, err := h.svc.VerifyPayment(c.Request.Context(), sessionID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b.Public(h.svc.Location())})
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.svc.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b.Public(h.svc.Location()))
}

// StripeWebhook handles POST /api/webhooks/stripe. Non-2xx responses make
// Stripe redeliver, so only transient failures return 5xx.
func (h *BookingHandler) StripeWebhook(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_webhook", "payload could not be read")
		return
	}

	if err := h.svc.HandleWebhook(c.Request.Context(), body, c.GetHeader("Stripe-Signature")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (h *BookingHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrInvalidBooking):
		utils.JSONError(c, http.StatusBadRequest, "invalid_booking", err.Error())
	case errors.Is(err, booking.ErrInvalidWebhook):
		utils.JSONError(c, http.StatusBadRequest, "invalid_webhook", "signature verification failed")
	case errors.Is(err, booking.ErrSlotUnavailable):
		utils.JSONError(c, http.StatusConflict, "slot_unavailable", "That time has just been taken. Please choose another slot.")
	case errors.Is(err, booking.ErrSlotBusy):
		utils.JSONError(c, http.StatusConflict, "slot_busy", "Another booking for this day is in progress. Please try again.")
	case errors.Is(err, booking.ErrBookingExpired):
		utils.JSONError(c, http.StatusConflict, "booking_expired", "This booking hold has expired.")
	case errors.Is(err, booking.ErrPaymentIncomplete):
		utils.JSONError(c, http.StatusPaymentRequired, "payment_incomplete", "Payment has not been completed.")
	case errors.Is(err, booking.ErrBookingNotFound), errors.Is(err, booking.ErrPaymentSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, "not_found", "Booking not found.")
	case errors.Is(err, booking.ErrPaymentUnavailable):
		getLogger(c).Error("Payment provider error", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "payment_unavailable", "Payment could not be started. Please try again.")
	case errors.Is(err, availability.ErrUpstreamUnavailable):
		getLogger(c).Error("Booking store unavailable", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "slots_unavailable", "Availability could not be checked. Please try again.")
	default:
		getLogger(c).Error("Booking request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", "An unexpected error occurred.")
	}
}
