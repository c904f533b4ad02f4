package scheduling

import (
	"context"
	"time"

	"go.uber.org/zap"

	appointmentRepo "transformai/database/repository/appointment"
	slotRepo "transformai/database/repository/slot"
	"transformai/models"
	"transformai/utils"
)

// AvailabilityService computes free slots for a date range by subtracting
// booked appointments from the slot catalog.
type AvailabilityService interface {
	// GetAvailableSlots returns free, future slots in [start, end]. Nil
	// bounds default to [now, now+1 year]. Storage failures degrade to an
	// empty result; callers never see an error.
	GetAvailableSlots(ctx context.Context, start, end *time.Time) []models.Slot
}

// DefaultAvailabilityService is the production AvailabilityService.
type DefaultAvailabilityService struct {
	Slots        slotRepo.SlotRepository
	Appointments appointmentRepo.AppointmentRepository
	Catalog      SlotCatalog
	Now          func() time.Time
}

func (s *DefaultAvailabilityService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultAvailabilityService) GetAvailableSlots(ctx context.Context, start, end *time.Time) []models.Slot {
	logger := utils.GetLogger()
	now := s.now()

	startAt := now
	if start != nil {
		startAt = *start
	}
	endAt := startAt.AddDate(1, 0, 0)
	if end != nil {
		endAt = *end
	}

	// Regeneration only triggers off a globally empty catalog. A range with
	// no slots in an otherwise populated catalog returns empty, so a narrow
	// query can never cause a mass regeneration.
	count, err := s.Slots.Count(ctx)
	if err != nil {
		logger.Warn("Error counting slots", zap.Error(err))
		return []models.Slot{}
	}
	if count == 0 {
		logger.Info("No slots found, generating new slots...")
		if _, err := s.Catalog.Refresh(ctx); err != nil {
			logger.Warn("Error refreshing slots", zap.Error(err))
			return []models.Slot{}
		}
	}

	startISO := startAt.UTC().Format(time.RFC3339)
	endISO := endAt.UTC().Format(time.RFC3339)

	slots, err := s.Slots.FindInRange(ctx, startISO, endISO)
	if err != nil {
		logger.Warn("Error getting available slots", zap.Error(err))
		return []models.Slot{}
	}
	appts, err := s.Appointments.FindInRange(ctx, startISO, endISO)
	if err != nil {
		logger.Warn("Error getting appointments", zap.Error(err))
		return []models.Slot{}
	}

	booked := make(map[string]struct{}, len(appts))
	for _, a := range appts {
		booked[a.DateTime] = struct{}{}
	}

	nowISO := now.UTC().Format(time.RFC3339)
	available := make([]models.Slot, 0, len(slots))
	for _, slot := range slots {
		if _, taken := booked[slot.Date]; taken {
			continue
		}
		if slot.Date <= nowISO {
			continue
		}
		available = append(available, slot)
	}

	logger.Sugar().Debugf("Found %d available slots", len(available))
	return available
}
