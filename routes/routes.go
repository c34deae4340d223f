package routes

import (
	"strings"
	"time"

	"lawdesk/config"
	"lawdesk/handlers"
	"lawdesk/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAvailabilityRoutes registers the public slot lookup. The bare path
// is what the booking widget calls; the /api alias groups it with bookings.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/available-slots", hb.GetAvailableSlots)
	r.GET("/api/bookings/available-slots", hb.GetAvailableSlots)
}

// RegisterBookingRoutes sets up the checkout and confirmation endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle, perMin int) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.POST("/checkout", middleware.RateLimitMiddleware(perMin), hb.StartCheckout)
		bookingGroup.GET("/verify", hb.VerifyPayment)
		bookingGroup.GET("/:id", hb.GetBooking)
	}

	r.POST("/api/webhooks/stripe", hb.StripeWebhook)
}

// RegisterContactRoutes registers the enquiry form endpoint.
func RegisterContactRoutes(r *gin.Engine, hb *handlers.HandlerBundle, perMin int) {
	r.POST("/api/contact", middleware.RateLimitMiddleware(perMin), hb.SubmitEnquiry)
}

// RegisterHealthRoute registers health and metrics endpoints.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health)
	if hb.Metrics != nil {
		r.GET("/metrics", hb.Metrics)
	}
}

func corsConfig(origins string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}

	var allowed []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowed = append(allowed, o)
		}
	}
	if len(allowed) == 0 || (len(allowed) == 1 && allowed[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowed
	}
	return cfg
}

// RegisterRoutes sets up the entire route configuration.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(corsConfig(config.AppConfig.CORSOrigins)))

	perMin := config.AppConfig.MaxRequestsPerMin

	RegisterHealthRoute(r, hb)
	RegisterAvailabilityRoutes(r, hb)
	RegisterBookingRoutes(r, hb, perMin)
	RegisterContactRoutes(r, hb, perMin)
}
