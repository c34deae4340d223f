package handlers

import (
	"context"
	"errors"
	"net/http"

	"lawdesk/services/availability"
	"lawdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SlotQuerier answers which slots are taken on a calendar day.
type SlotQuerier interface {
	OccupiedSlots(ctx context.Context, date string) (availability.SlotSet, error)
}

type AvailabilityHandler struct {
	slots SlotQuerier
}

func NewAvailabilityHandler(slots SlotQuerier) *AvailabilityHandler {
	return &AvailabilityHandler{slots: slots}
}

// GetAvailableSlots handles GET /available-slots?date=YYYY-MM-DD.
func (h *AvailabilityHandler) GetAvailableSlots(c *gin.Context) {
	date := c.Query("date")

	occupied, err := h.slots.OccupiedSlots(c.Request.Context(), date)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			utils.JSONError(c, http.StatusBadRequest, "invalid_date", err.Error())
		default:
			getLogger(c).Error("Failed to load occupied slots", zap.String("date", date), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "slots_unavailable", "Availability could not be loaded. Please try again.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookedSlots": occupied.Sorted()})
}
