package cron

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"plenura/config"
	bookingRepo "plenura/database/repository/booking"
	"plenura/models"
	"plenura/services/tasks"
	"plenura/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitReminderWorker runs the asynq worker in the background. It processes
// scheduled booking reminders from the Redis queue.
func InitReminderWorker(repo bookingRepo.BookingRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingReminder, handleBookingReminder(repo))

	go func() {
		logger := utils.GetLogger()
		logger.Info("starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("reminder worker failed to start",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err))
			if attempts == maxAttempts {
				logger.Fatal("reminder worker exhausted start attempts")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
}

// handleBookingReminder fires a reminder unless the booking was cancelled
// after the task was scheduled.
func handleBookingReminder(repo bookingRepo.BookingRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return err
		}

		booking, err := repo.GetByID(ctx, p.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrNotFound) {
				logger.Warn("reminder for missing booking, dropping",
					zap.String("bookingID", p.BookingID))
				return nil
			}
			return err
		}
		if booking.Status != models.StatusConfirmed {
			logger.Info("skipping reminder, booking no longer confirmed",
				zap.String("bookingID", booking.ID),
				zap.String("status", booking.Status))
			return nil
		}

		// Delivery channels (push, email) ride on this log line until a
		// notification gateway is wired in.
		logger.Info("booking reminder due",
			zap.String("bookingID", p.BookingID),
			zap.String("clientID", p.ClientID),
			zap.String("therapistID", p.TherapistID),
			zap.String("serviceName", p.ServiceName),
			zap.Time("scheduledAt", p.ScheduledAt))
		return nil
	}
}
