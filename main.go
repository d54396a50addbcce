package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"plenura/config"
	"plenura/cron"
	"plenura/database"
	availabilityRepoPkg "plenura/database/repository/availability"
	bookingRepoPkg "plenura/database/repository/booking"
	favoriteRepoPkg "plenura/database/repository/favorite"
	practiceRepoPkg "plenura/database/repository/practice"
	referralRepoPkg "plenura/database/repository/referral"
	reviewRepoPkg "plenura/database/repository/review"
	therapistRepoPkg "plenura/database/repository/therapist"
	walletRepoPkg "plenura/database/repository/wallet"
	"plenura/handlers"
	"plenura/middleware"
	"plenura/routes"
	"plenura/services/booking"
	"plenura/services/earnings"
	"plenura/services/favorites"
	"plenura/services/practice"
	"plenura/services/referral"
	"plenura/services/review"
	"plenura/services/tasks"
	"plenura/services/therapist"
	"plenura/services/wallet"
	"plenura/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	therapistRepo := therapistRepoPkg.NewMongoTherapistRepo()
	availabilityRepo := availabilityRepoPkg.NewMongoAvailabilityRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()
	walletRepo := walletRepoPkg.NewMongoWalletRepo()
	favoriteRepo := favoriteRepoPkg.NewMongoFavoriteRepo()
	referralRepo := referralRepoPkg.NewMongoReferralRepo()
	practiceRepo := practiceRepoPkg.NewMongoPracticeRepo()

	// services.
	reminderScheduler := tasks.NewAsynqReminderScheduler()
	defer reminderScheduler.Close()

	walletService := &wallet.DefaultWalletService{
		Repo:        walletRepo,
		BookingRepo: bookingRepo,
	}
	bookingService := &booking.DefaultBookingService{
		Repo:          bookingRepo,
		TherapistRepo: therapistRepo,
		Availability:  availabilityRepo,
		SlotCache:     utils.GetSlotCacheClient(),
		Reminders:     reminderScheduler,
		Wallet:        walletService,
	}
	therapistService := &therapist.DefaultTherapistService{
		Repo:         therapistRepo,
		Availability: availabilityRepo,
		SlotCache:    utils.GetSlotCacheClient(),
	}
	earningsService := &earnings.DefaultEarningsService{
		Repo: bookingRepo,
	}
	reviewService := &review.DefaultReviewService{
		Repo:          reviewRepo,
		BookingRepo:   bookingRepo,
		TherapistRepo: therapistRepo,
	}
	favoritesService := &favorites.DefaultFavoritesService{
		Repo:          favoriteRepo,
		TherapistRepo: therapistRepo,
	}
	referralService := &referral.DefaultReferralService{
		Repo:   referralRepo,
		Wallet: walletService,
	}
	practiceService := &practice.DefaultPracticeService{
		Repo:          practiceRepo,
		TherapistRepo: therapistRepo,
		BookingRepo:   bookingRepo,
	}

	// Background reminder worker.
	cron.InitReminderWorker(bookingRepo)

	// handlers and routes.
	routes.SetupRoutes(router, &routes.Handlers{
		Booking:   handlers.NewBookingHandler(bookingService, therapistService),
		Therapist: handlers.NewTherapistHandler(therapistService),
		Earnings:  handlers.NewEarningsHandler(earningsService, therapistService),
		Review:    handlers.NewReviewHandler(reviewService),
		Wallet:    handlers.NewWalletHandler(walletService),
		Favorites: handlers.NewFavoritesHandler(favoritesService),
		Referral:  handlers.NewReferralHandler(referralService),
		Practice:  handlers.NewPracticeHandler(practiceService),
	})

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
