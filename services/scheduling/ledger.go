package scheduling

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appointmentRepo "transformai/database/repository/appointment"
	slotRepo "transformai/database/repository/slot"
	"transformai/models"
	"transformai/services/notification"
	"transformai/utils"
)

// ReminderScheduler enqueues a reminder for a freshly booked appointment.
// Enqueue failures are the caller's to log; they never affect the booking.
type ReminderScheduler interface {
	ScheduleForAppointment(appt models.Appointment) error
}

// AppointmentService owns appointment records: conflict-checked creation,
// token verification, cancellation and listing.
type AppointmentService interface {
	Book(ctx context.Context, slotID, name, email, topic string) (*models.Appointment, error)
	Verify(ctx context.Context, appointmentID, token string) (*models.Appointment, error)
	CancelByToken(ctx context.Context, appointmentID, token string) (*models.Appointment, error)
	CancelByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	ListAll(ctx context.Context) ([]models.Appointment, error)
}

// DefaultAppointmentService is the production AppointmentService.
// Reminders is optional and may be nil.
type DefaultAppointmentService struct {
	Slots        slotRepo.SlotRepository
	Appointments appointmentRepo.AppointmentRepository
	Notifier     notification.Dispatcher
	Reminders    ReminderScheduler
}

func (s *DefaultAppointmentService) Book(ctx context.Context, slotID, name, email, topic string) (*models.Appointment, error) {
	logger := utils.GetLogger()

	slot, err := s.Slots.FindByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}

	// Early conflict check. The unique dateTime index on the store is the
	// real guarantee; a race that slips past this lookup fails on insert.
	existing, err := s.Appointments.FindByDateTime(ctx, slot.Date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlotTaken
	}

	token, err := generateCancellationToken()
	if err != nil {
		return nil, err
	}

	if topic == "" {
		topic = models.DefaultTopic
	}
	appt := models.Appointment{
		ID:                "appointment-" + uuid.New().String(),
		Name:              name,
		Email:             email,
		Topic:             topic,
		DateTime:          slot.Date,
		FormattedDate:     slot.FormattedDate,
		FormattedTime:     slot.FormattedTime,
		CancellationToken: token,
		CreatedAt:         time.Now(),
	}

	if err := s.Appointments.Insert(ctx, appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrDuplicateDateTime) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	s.Notifier.BookingConfirmed(ctx, appt)

	if s.Reminders != nil {
		if err := s.Reminders.ScheduleForAppointment(appt); err != nil {
			logger.Warn("Failed to schedule appointment reminder",
				zap.String("appointmentId", appt.ID), zap.Error(err))
		}
	}

	return &appt, nil
}

func (s *DefaultAppointmentService) Verify(ctx context.Context, appointmentID, token string) (*models.Appointment, error) {
	appt, err := s.Appointments.FindByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(appt.CancellationToken), []byte(token)) != 1 {
		return nil, ErrInvalidToken
	}
	return appt, nil
}

func (s *DefaultAppointmentService) CancelByToken(ctx context.Context, appointmentID, token string) (*models.Appointment, error) {
	appt, err := s.Verify(ctx, appointmentID, token)
	if err != nil {
		return nil, err
	}

	if err := s.Appointments.DeleteByID(ctx, appointmentID); err != nil {
		return nil, err
	}

	s.Notifier.BookingCancelled(ctx, *appt, notification.ActorUser)
	return appt, nil
}

func (s *DefaultAppointmentService) CancelByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	appt, err := s.Appointments.FindByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	if err := s.Appointments.DeleteByID(ctx, appointmentID); err != nil {
		return nil, err
	}

	s.Notifier.BookingCancelled(ctx, *appt, notification.ActorAdmin)
	return appt, nil
}

func (s *DefaultAppointmentService) ListAll(ctx context.Context) ([]models.Appointment, error) {
	return s.Appointments.FindAllSorted(ctx)
}
