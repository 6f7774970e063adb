// File: cron/worker.go
package cron

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"portfolio/config"
	meetingRepo "portfolio/database/repository/meeting"
	"portfolio/models"
	"portfolio/services/notification"
	"portfolio/services/tasks"
	"portfolio/utils"
)

// InitReminderWorker runs the delayed-reminder consumer in the background
// and returns the server handle for shutdown.
func InitReminderWorker(repo meetingRepo.MeetingRepository, emails notification.Service) *asynq.Server {
	logger := utils.GetLogger().Named("reminder-worker")

	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
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
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(repo, emails, logger))

	go func() {
		logger.Info("starting reminder worker")
		if err := srv.Run(mux); err != nil {
			logger.Error("reminder worker stopped", zap.Error(err))
		}
	}()

	return srv
}

// handleReminderTask sends the reminder email unless the meeting was
// canceled or moved after the task was enqueued.
func handleReminderTask(repo meetingRepo.MeetingRepository, emails notification.Service, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return err
		}

		meeting, err := repo.GetByID(ctx, p.MeetingID)
		if err != nil {
			logger.Error("reminder lookup failed", zap.String("meetingId", p.MeetingID), zap.Error(err))
			return err
		}
		if meeting == nil || meeting.Status == models.StatusCanceled {
			logger.Info("skipping reminder for canceled or missing meeting",
				zap.String("meetingId", p.MeetingID))
			return nil
		}

		start, err := time.Parse(time.RFC3339, p.DateTime)
		if err != nil {
			start = meeting.AdminDateTime
		}
		// A reschedule after enqueue leaves this task pointing at the old
		// instant; the stored meeting wins.
		if !meeting.AdminDateTime.IsZero() && !meeting.AdminDateTime.Equal(start) {
			logger.Info("skipping stale reminder", zap.String("meetingId", p.MeetingID))
			return nil
		}

		data := notification.MeetingEmailData{
			Name:     p.Name,
			DateTime: start,
			Duration: p.Duration,
			Timezone: p.Timezone,
			MeetLink: p.MeetLink,
		}
		if err := emails.SendReminder(p.Email, data); err != nil {
			logger.Error("reminder delivery failed", zap.String("meetingId", p.MeetingID), zap.Error(err))
			return err
		}
		return nil
	}
}
