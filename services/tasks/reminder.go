package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"transformai/config"
	"transformai/models"
	"transformai/utils"
)

const TypeReminderSend = "reminder:send"

// reminderLead is how long before the appointment the reminder fires.
const reminderLead = 24 * time.Hour

// NewReminderTask builds the delayed reminder task for an appointment.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeReminderSend, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// ReminderScheduler enqueues appointment reminders on the asynq queue.
type ReminderScheduler struct {
	client *asynq.Client
}

// NewReminderScheduler connects a scheduler to the configured Redis queue.
func NewReminderScheduler() *ReminderScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	return &ReminderScheduler{client: client}
}

// ScheduleForAppointment enqueues a reminder 24h before the booked time.
// Appointments closer than the lead window get no reminder.
func (s *ReminderScheduler) ScheduleForAppointment(appt models.Appointment) error {
	logger := utils.GetLogger()

	at, err := time.Parse(time.RFC3339, appt.DateTime)
	if err != nil {
		return err
	}
	fireAt := at.Add(-reminderLead)
	if !fireAt.After(time.Now()) {
		logger.Debug("Appointment too soon for a reminder",
			zap.String("appointmentId", appt.ID))
		return nil
	}

	task, opts, err := NewReminderTask(models.ReminderPayload{AppointmentID: appt.ID}, fireAt)
	if err != nil {
		return err
	}
	info, err := s.client.Enqueue(task, opts...)
	if err != nil {
		return err
	}
	logger.Info("Scheduled appointment reminder",
		zap.String("appointmentId", appt.ID),
		zap.String("taskId", info.ID),
		zap.Time("fireAt", fireAt))
	return nil
}

// Close releases the underlying queue connection.
func (s *ReminderScheduler) Close() error {
	return s.client.Close()
}
