package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"transformai/config"
	appointmentRepo "transformai/database/repository/appointment"
	"transformai/models"
	"transformai/services/notification"
	"transformai/services/tasks"
	"transformai/utils"
)

// InitReminderWorker runs the asynq reminder worker in the background.
func InitReminderWorker(appointments appointmentRepo.AppointmentRepository, email notification.EmailSender) {
	logger := utils.GetLogger()

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
	mux.HandleFunc(tasks.TypeReminderSend, handleReminderTask(appointments, email))

	go func() {
		logger.Info("Starting reminder worker")
		if err := srv.Run(mux); err != nil {
			logger.Error("Reminder worker stopped", zap.Error(err))
		}
	}()
}

func handleReminderTask(appointments appointmentRepo.AppointmentRepository, email notification.EmailSender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid reminder payload", zap.Error(err))
			return err
		}

		// Reload the appointment. A cancelled booking leaves no record and
		// the reminder is silently dropped.
		appt, err := appointments.FindByID(ctx, p.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrNotFound) {
				logger.Info("Skipping reminder for cancelled appointment",
					zap.String("appointmentId", p.AppointmentID))
				return nil
			}
			return err
		}

		subject := fmt.Sprintf("Reminder: your meeting on %s at %s", appt.FormattedDate, appt.FormattedTime)
		if ok := email.Send(appt.Email, subject,
			notification.ReminderEmailHTML(*appt),
			notification.ReminderEmailText(*appt)); !ok {
			logger.Warn("Failed to send reminder email",
				zap.String("appointmentId", appt.ID))
		}
		return nil
	}
}
