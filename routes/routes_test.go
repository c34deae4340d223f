package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"lawdesk/config"
	"lawdesk/handlers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func named(name string) gin.HandlerFunc {
	return func(c *gin.Context) { c.String(http.StatusOK, name) }
}

func testBundle() *handlers.HandlerBundle {
	return &handlers.HandlerBundle{
		GetAvailableSlots: named("slots"),
		StartCheckout:     named("checkout"),
		VerifyPayment:     named("verify"),
		GetBooking:        named("booking"),
		StripeWebhook:     named("webhook"),
		SubmitEnquiry:     named("contact"),
		Health:            named("health"),
	}
}

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.AppConfig = config.Config{CORSOrigins: "https://firm.example", MaxRequestsPerMin: 100}

	r := gin.New()
	RegisterRoutes(r, testBundle())

	tests := []struct {
		method, path, want string
	}{
		{http.MethodGet, "/available-slots?date=2024-06-10", "slots"},
		{http.MethodGet, "/api/bookings/available-slots?date=2024-06-10", "slots"},
		{http.MethodPost, "/api/bookings/checkout", "checkout"},
		{http.MethodGet, "/api/bookings/verify?session_id=cs_1", "verify"},
		{http.MethodGet, "/api/bookings/bk-1", "booking"},
		{http.MethodPost, "/api/webhooks/stripe", "webhook"},
		{http.MethodPost, "/api/contact", "contact"},
		{http.MethodGet, "/health", "health"},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, http.StatusOK, w.Code, tt.path)
		assert.Equal(t, tt.want, w.Body.String(), tt.path)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSConfig(t *testing.T) {
	assert.True(t, corsConfig("*").AllowAllOrigins)
	assert.True(t, corsConfig("").AllowAllOrigins)

	cfg := corsConfig("https://firm.example, https://www.firm.example")
	assert.False(t, cfg.AllowAllOrigins)
	assert.Equal(t, []string{"https://firm.example", "https://www.firm.example"}, cfg.AllowOrigins)
}
