package routes

import (
	"net/http"
	"time"

	"plenura/handlers"
	"plenura/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups the per-domain HTTP handlers for route registration.
type Handlers struct {
	Booking   *handlers.BookingHandler
	Therapist *handlers.TherapistHandler
	Earnings  *handlers.EarningsHandler
	Review    *handlers.ReviewHandler
	Wallet    *handlers.WalletHandler
	Favorites *handlers.FavoritesHandler
	Referral  *handlers.ReferralHandler
	Practice  *handlers.PracticeHandler
}

// SetupRoutes applies CORS and registers every route group.
func SetupRoutes(r *gin.Engine, h *Handlers) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	registerTherapistRoutes(r, h)
	registerBookingRoutes(r, h)
	registerClientRoutes(r, h)
	registerPracticeRoutes(r, h)
}

// registerTherapistRoutes registers the marketplace and therapist-side
// endpoints.
func registerTherapistRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/therapists")
	{
		// Public marketplace endpoints.
		api.GET("", h.Therapist.ListVisibleHandler)
		api.GET("/:id", h.Therapist.GetProfileHandler)
		api.GET("/:id/treatments", h.Therapist.ListTreatmentsHandler)
		api.GET("/:id/availability", h.Therapist.ListAvailabilityHandler)
		api.GET("/:id/slots", h.Booking.GetSlotsHandler)
		api.GET("/:id/reviews", h.Review.ListTherapistReviewsHandler)

		// Protected therapist self-service.
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		protected.POST("/register", h.Therapist.RegisterHandler)

		self := protected.Group("")
		self.Use(middleware.RequireRole("therapist"))
		self.GET("/me", h.Therapist.MeHandler)
		self.PATCH("/me", h.Therapist.UpdateProfileHandler)
		self.PUT("/me/available", h.Therapist.SetAvailableHandler)
		self.PUT("/me/availability", h.Therapist.SaveAvailabilityHandler)
		self.POST("/me/blocked", h.Therapist.AddBlockedPeriodHandler)
		self.GET("/me/blocked", h.Therapist.ListBlockedPeriodsHandler)
		self.DELETE("/me/blocked/:blockedID", h.Therapist.RemoveBlockedPeriodHandler)
		self.PUT("/me/tier", h.Therapist.ChangeTierHandler)
		self.POST("/me/treatments", h.Therapist.AddTreatmentHandler)
		self.PATCH("/me/treatments/:treatmentID", h.Therapist.UpdateTreatmentHandler)
		self.GET("/me/earnings", h.Earnings.GetSummaryHandler)
		self.GET("/me/earnings/bookings", h.Earnings.ListBookingEarningsHandler)

		// Admin vetting decisions.
		admin := protected.Group("")
		admin.Use(middleware.RequireRole("admin"))
		admin.PUT("/:id/vetting", h.Therapist.SetVettingStatusHandler)
	}
}

// registerBookingRoutes registers the booking lifecycle endpoints.
func registerBookingRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/bookings")
	api.Use(middleware.AuthMiddleware())
	{
		api.POST("", middleware.RequireRole("client"), h.Booking.CreateBookingHandler)
		api.POST("/manual", middleware.RequireRole("therapist"), h.Booking.CreateManualBookingHandler)
		api.GET("/mine", middleware.RequireRole("client"), h.Booking.ListMyBookingsHandler)
		api.GET("/therapist", middleware.RequireRole("therapist"), h.Booking.ListTherapistBookingsHandler)
		api.GET("/:id", h.Booking.GetBookingHandler)
		api.PUT("/:id/status", h.Booking.TransitionHandler)
		api.PUT("/:id/notes", middleware.RequireRole("therapist"), h.Booking.UpdateNotesHandler)
		api.POST("/:id/pay", middleware.RequireRole("client"), h.Wallet.PayBookingHandler)
	}
}

// registerClientRoutes registers wallet, favorites, referral and review
// endpoints for authenticated clients.
func registerClientRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("/wallet", h.Wallet.GetBalanceHandler)
		api.GET("/wallet/transactions", h.Wallet.ListTransactionsHandler)
		api.POST("/wallet/topup", h.Wallet.TopUpHandler)

		api.POST("/reviews", middleware.RequireRole("client"), h.Review.CreateReviewHandler)

		api.GET("/favorites", h.Favorites.ListHandler)
		api.PUT("/favorites/:therapistID", h.Favorites.AddHandler)
		api.DELETE("/favorites/:therapistID", h.Favorites.RemoveHandler)

		api.GET("/referral/code", h.Referral.GetCodeHandler)
		api.POST("/referral/apply", h.Referral.ApplyHandler)
	}
}

// registerPracticeRoutes registers multi-therapist practice management.
func registerPracticeRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/practices")
	api.Use(middleware.AuthMiddleware())
	{
		api.POST("", h.Practice.CreateHandler)
		api.GET("/:id", h.Practice.GetHandler)
		api.PUT("/:id/therapists/:therapistID", h.Practice.AddTherapistHandler)
		api.DELETE("/:id/therapists/:therapistID", h.Practice.RemoveTherapistHandler)
		api.GET("/:id/bookings", h.Practice.ListBookingsHandler)
	}
}
