package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"pitchbook/config"
	"pitchbook/models"
	"pitchbook/services/notification"
	"pitchbook/utils"
)

const TypeBookingReminder = "booking:reminder"

// reminderLead is how far before kickoff the reminder fires.
const reminderLead = time.Hour

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	}
}

// Scheduler enqueues delayed reminder tasks. Satisfies the booking
// service's ReminderScheduler.
type Scheduler struct {
	client *asynq.Client
}

func NewScheduler() *Scheduler {
	return &Scheduler{client: asynq.NewClient(redisOpts())}
}

// ScheduleBookingReminder queues a reminder one hour before the slot
// starts. Bookings too close to kickoff get no reminder.
func (s *Scheduler) ScheduleBookingReminder(b *models.Booking, futsalName string) error {
	day, err := time.ParseInLocation("2006-01-02", b.Date, time.Local)
	if err != nil {
		return fmt.Errorf("invalid booking date %q: %w", b.Date, err)
	}
	fireAt := day.Add(time.Duration(b.Start) * time.Minute).Add(-reminderLead)
	if fireAt.Before(time.Now()) {
		return nil
	}

	payload, err := json.Marshal(models.ReminderPayload{
		BookingID:  b.ID,
		UserID:     b.UserID,
		FutsalName: futsalName,
		Date:       b.Date,
		Start:      b.Start.String(),
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(TypeBookingReminder, payload)
	_, err = s.client.Enqueue(task, asynq.ProcessAt(fireAt), asynq.MaxRetry(3))
	return err
}

func (s *Scheduler) Close() error {
	return s.client.Close()
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(notifSvc notification.NotificationService) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingReminder, handleReminderTask(notifSvc))

	go func() {
		logger := utils.GetLogger()
		logger.Info("reminder worker starting")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("reminder worker failed to start",
					zap.Int("attempt", attempts), zap.Error(err))
				if attempts == maxAttempts {
					logger.Fatal("reminder worker exhausted retries")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("reminder task has invalid payload", zap.Error(err))
			return err
		}

		title := "Upcoming booking"
		body := fmt.Sprintf("Your game at %s starts at %s on %s.", p.FutsalName, p.Start, p.Date)
		return notifSvc.Notify(ctx, p.UserID, "booking_reminder", title, body,
			map[string]any{"bookingId": p.BookingID})
	}
}
