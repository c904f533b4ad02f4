package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appointmentRepo "transformai/database/repository/appointment"
	slotRepo "transformai/database/repository/slot"
	"transformai/models"
)

func newAvailabilityFixture(t *testing.T, now time.Time) (*DefaultAvailabilityService, slotRepo.SlotRepository, appointmentRepo.AppointmentRepository) {
	t.Helper()
	slots := slotRepo.NewMemorySlotRepo()
	appts := appointmentRepo.NewMemoryAppointmentRepo()
	catalog := &DefaultSlotCatalog{Repo: slots, Now: func() time.Time { return now }}
	svc := &DefaultAvailabilityService{
		Slots:        slots,
		Appointments: appts,
		Catalog:      catalog,
		Now:          func() time.Time { return now },
	}
	return svc, slots, appts
}

func TestGetAvailableSlotsSeedsEmptyCatalog(t *testing.T) {
	now := time.Date(2026, time.March, 4, 8, 0, 0, 0, time.UTC)
	svc, slots, _ := newAvailabilityFixture(t, now)

	available := svc.GetAvailableSlots(context.Background(), nil, nil)
	assert.NotEmpty(t, available)

	count, err := slots.Count(context.Background())
	require.NoError(t, err)
	assert.Positive(t, count)
}

func TestGetAvailableSlotsSubtractsBooked(t *testing.T) {
	now := time.Date(2026, time.March, 4, 8, 0, 0, 0, time.UTC)
	svc, _, appts := newAvailabilityFixture(t, now)
	ctx := context.Background()

	before := svc.GetAvailableSlots(ctx, nil, nil)
	require.NotEmpty(t, before)

	taken := before[0]
	require.NoError(t, appts.Insert(ctx, models.Appointment{
		ID:       "appointment-test",
		DateTime: taken.Date,
	}))

	after := svc.GetAvailableSlots(ctx, nil, nil)
	assert.Len(t, after, len(before)-1)
	for _, slot := range after {
		assert.NotEqual(t, taken.Date, slot.Date)
	}
}

func TestGetAvailableSlotsRangeBounds(t *testing.T) {
	now := time.Date(2026, time.March, 4, 8, 0, 0, 0, time.UTC)
	svc, _, _ := newAvailabilityFixture(t, now)
	ctx := context.Background()

	dayStart := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Second)

	slots := svc.GetAvailableSlots(ctx, &dayStart, &dayEnd)
	require.NotEmpty(t, slots)
	for _, slot := range slots {
		at, err := time.Parse(time.RFC3339, slot.Date)
		require.NoError(t, err)
		assert.Equal(t, 5, at.Day())
	}
}

func TestGetAvailableSlotsEmptyRangeDoesNotRegenerate(t *testing.T) {
	now := time.Date(2026, time.March, 4, 8, 0, 0, 0, time.UTC)
	svc, slots, _ := newAvailabilityFixture(t, now)
	ctx := context.Background()

	// Populate the catalog first.
	svc.GetAvailableSlots(ctx, nil, nil)
	count, err := slots.Count(ctx)
	require.NoError(t, err)

	// A Sunday has no slots; the catalog must stay untouched.
	sunday := time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC)
	sundayEnd := sunday.AddDate(0, 0, 1).Add(-time.Second)
	empty := svc.GetAvailableSlots(ctx, &sunday, &sundayEnd)
	assert.Empty(t, empty)

	countAfter, err := slots.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, count, countAfter)
}

func TestGetAvailableSlotsExcludesPast(t *testing.T) {
	seedTime := time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)
	slots := slotRepo.NewMemorySlotRepo()
	appts := appointmentRepo.NewMemoryAppointmentRepo()
	catalog := &DefaultSlotCatalog{Repo: slots, Now: func() time.Time { return seedTime }}
	_, err := catalog.Refresh(context.Background())
	require.NoError(t, err)

	// Query two days later: everything before the new "now" is filtered out
	// even when the requested range starts earlier.
	now := time.Date(2026, time.March, 6, 12, 0, 0, 0, time.UTC)
	svc := &DefaultAvailabilityService{
		Slots:        slots,
		Appointments: appts,
		Catalog:      catalog,
		Now:          func() time.Time { return now },
	}

	start := seedTime
	end := seedTime.AddDate(0, 0, 7)
	available := svc.GetAvailableSlots(context.Background(), &start, &end)
	require.NotEmpty(t, available)
	nowISO := now.UTC().Format(time.RFC3339)
	for _, slot := range available {
		assert.Greater(t, slot.Date, nowISO)
	}
}
