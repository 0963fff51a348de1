package routes

import (
	"time"

	"rapstation/handlers"
	"rapstation/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers the health-check endpoints.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/healthz", handlers.Liveness(hb.Health))
	r.GET("/readyz", handlers.Readiness(hb.Health))
}

// RegisterBookingRoutes sets up the customer booking flow.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.POST("", hb.CreatePlaceholder)
		bookingGroup.GET("/track", hb.TrackBookings)
		bookingGroup.GET("/:code/grid", hb.GetGrid)
		bookingGroup.POST("/:code/grid/click", hb.ClickSlot)
		bookingGroup.POST("/:code/checkout", hb.Checkout)
	}
}

// RegisterAdminRoutes registers the staff panel endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.POST("/login", hb.AdminLogin)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthAdminMiddleware(hb.JWTSecret))
		protected.GET("/reservations", hb.ListReservations)
		protected.PATCH("/reservations/:code/status", hb.UpdateStatus)
		protected.DELETE("/reservations/:code", hb.DeleteReservation)
		protected.GET("/stats", hb.AdminStats)
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", handlers.RevealKeyHeader, middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}

// RegisterRoutes installs middleware and every route group.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(corsConfig(hb.CORSOrigins)))

	RegisterHealthRoute(r, hb)

	RegisterBookingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
