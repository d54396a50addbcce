package tasks

import (
	"encoding/json"
	"time"

	"plenura/config"
	"plenura/models"

	"github.com/hibiken/asynq"
)

const TypeBookingReminder = "booking:reminder"

// ReminderScheduler enqueues upcoming-session reminders.
type ReminderScheduler interface {
	ScheduleBookingReminder(payload models.ReminderPayload, fireAt time.Time) error
}

// AsynqReminderScheduler schedules reminders through an asynq queue backed by
// Redis.
type AsynqReminderScheduler struct {
	client *asynq.Client
}

// NewAsynqReminderScheduler constructs a scheduler connected to the
// configured Redis queue.
func NewAsynqReminderScheduler() *AsynqReminderScheduler {
	return &AsynqReminderScheduler{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		}),
	}
}

// ScheduleBookingReminder enqueues a reminder task to fire at the given time.
func (s *AsynqReminderScheduler) ScheduleBookingReminder(payload models.ReminderPayload, fireAt time.Time) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeBookingReminder, b)
	_, err = s.client.Enqueue(task, asynq.ProcessAt(fireAt))
	return err
}

// Close releases the underlying queue connection.
func (s *AsynqReminderScheduler) Close() error {
	return s.client.Close()
}
