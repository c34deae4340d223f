package handlers

import (
	"net/http"

	"lawdesk/models"
	"lawdesk/services/enquiry"
	"lawdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EnquiryHandler struct {
	svc enquiry.EnquiryService
}

func NewEnquiryHandler(svc enquiry.EnquiryService) *EnquiryHandler {
	return &EnquiryHandler{svc: svc}
}

// SubmitEnquiry handles POST /api/contact.
func (h *EnquiryHandler) SubmitEnquiry(c *gin.Context) {
	var req models.EnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	e, err := h.svc.Submit(c.Request.Context(), req)
	if err != nil {
		getLogger(c).Error("Failed to submit enquiry", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", "Your message could not be sent. Please try again.")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": e.ID})
}
