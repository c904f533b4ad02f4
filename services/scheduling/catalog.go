package scheduling

import (
	"context"
	"time"

	"go.uber.org/zap"

	slotRepo "transformai/database/repository/slot"
	"transformai/models"
	"transformai/utils"
)

// Slot generation parameters: half-hour marks during business hours on
// business days, one year ahead.
const (
	defaultHorizonDays = 365
	businessStartHour  = 9
	businessEndHour    = 17
	slotStepMinutes    = 30

	insertBatchSize = 500
)

// Display formats used across slots, appointments and dialogue prompts.
const (
	DisplayDateFormat = "Monday, January 2, 2006"
	DisplayTimeFormat = "3:04 PM"
)

// SlotCatalog generates and stores the canonical bookable time slots.
type SlotCatalog interface {
	// Refresh deletes all stored slots, regenerates them and returns the
	// number created.
	Refresh(ctx context.Context) (int, error)
	// EnsureSeeded generates slots only when the catalog is completely empty.
	EnsureSeeded(ctx context.Context) error
}

// DefaultSlotCatalog is the production SlotCatalog.
type DefaultSlotCatalog struct {
	Repo slotRepo.SlotRepository
	Now  func() time.Time
}

func (c *DefaultSlotCatalog) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// GenerateSlots emits every bookable slot in [now, now+horizonDays): each
// Monday-Friday, each half-hour mark in [startHour, endHour), skipping
// instants that are not strictly in the future. The slot id is its own
// RFC3339 UTC timestamp.
func GenerateSlots(now time.Time, horizonDays, startHour, endHour, stepMinutes int) []models.Slot {
	var slots []models.Slot
	loc := now.Location()

	for day := 0; day < horizonDays; day++ {
		date := now.AddDate(0, 0, day)
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		for hour := startHour; hour < endHour; hour++ {
			for minute := 0; minute < 60; minute += stepMinutes {
				at := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, loc)
				if !at.After(now) {
					continue
				}
				iso := at.UTC().Format(time.RFC3339)
				slots = append(slots, models.Slot{
					ID:            iso,
					Date:          iso,
					FormattedDate: at.Format(DisplayDateFormat),
					FormattedTime: at.Format(DisplayTimeFormat),
					Available:     true,
				})
			}
		}
	}
	return slots
}

func (c *DefaultSlotCatalog) Refresh(ctx context.Context) (int, error) {
	logger := utils.GetLogger()

	if err := c.Repo.DeleteAll(ctx); err != nil {
		return 0, err
	}

	slots := GenerateSlots(c.now(), defaultHorizonDays, businessStartHour, businessEndHour, slotStepMinutes)

	total := 0
	for start := 0; start < len(slots); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(slots) {
			end = len(slots)
		}
		n, err := c.Repo.InsertMany(ctx, slots[start:end])
		total += n
		if err != nil {
			return total, err
		}
	}

	logger.Sugar().Infof("Refreshed available slots: %d slots created", total)
	return total, nil
}

func (c *DefaultSlotCatalog) EnsureSeeded(ctx context.Context) error {
	logger := utils.GetLogger()

	count, err := c.Repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Slot catalog already seeded", zap.Int64("slots", count))
		return nil
	}

	logger.Info("No slots found, generating initial slots...")
	created, err := c.Refresh(ctx)
	if err != nil {
		return err
	}
	logger.Info("Created initial appointment slots", zap.Int("slots", created))
	return nil
}
