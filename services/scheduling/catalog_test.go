package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	slotRepo "transformai/database/repository/slot"
)

func TestGenerateSlotsBusinessHoursOnly(t *testing.T) {
	// A Wednesday at noon.
	now := time.Date(2026, time.March, 4, 12, 0, 0, 0, time.UTC)
	slots := GenerateSlots(now, 14, 9, 17, 30)
	require.NotEmpty(t, slots)

	for _, slot := range slots {
		at, err := time.Parse(time.RFC3339, slot.Date)
		require.NoError(t, err)

		assert.Equal(t, slot.Date, slot.ID)
		assert.True(t, at.After(now), "slot %s is not in the future", slot.ID)

		wd := at.Weekday()
		assert.NotEqual(t, time.Saturday, wd)
		assert.NotEqual(t, time.Sunday, wd)

		hour := at.Hour()
		assert.GreaterOrEqual(t, hour, 9)
		assert.Less(t, hour, 17)
		assert.Contains(t, []int{0, 30}, at.Minute())
		assert.True(t, slot.Available)
	}
}

func TestGenerateSlotsSkipsPastSameDay(t *testing.T) {
	now := time.Date(2026, time.March, 4, 12, 15, 0, 0, time.UTC)
	slots := GenerateSlots(now, 1, 9, 17, 30)

	require.NotEmpty(t, slots)
	first, err := time.Parse(time.RFC3339, slots[0].Date)
	require.NoError(t, err)
	assert.Equal(t, 12, first.Hour())
	assert.Equal(t, 30, first.Minute())
}

func TestGenerateSlotsFullBusinessDayCount(t *testing.T) {
	// Friday midnight, single day horizon: 16 half-hour slots.
	now := time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC)
	slots := GenerateSlots(now, 1, 9, 17, 30)
	assert.Len(t, slots, 16)
	assert.Equal(t, "9:00 AM", slots[0].FormattedTime)
	assert.Equal(t, "4:30 PM", slots[len(slots)-1].FormattedTime)
}

func TestRefreshReplacesCatalog(t *testing.T) {
	repo := slotRepo.NewMemorySlotRepo()
	ctx := context.Background()

	now := time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)
	catalog := &DefaultSlotCatalog{Repo: repo, Now: func() time.Time { return now }}

	created, err := catalog.Refresh(ctx)
	require.NoError(t, err)
	require.Positive(t, created)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(created), count)

	// A second refresh replaces rather than accumulates.
	created2, err := catalog.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, created, created2)

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(created2), count)
}

func TestEnsureSeededLeavesExistingCatalogAlone(t *testing.T) {
	repo := slotRepo.NewMemorySlotRepo()
	ctx := context.Background()

	now := time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)
	catalog := &DefaultSlotCatalog{Repo: repo, Now: func() time.Time { return now }}

	_, err := repo.InsertMany(ctx, GenerateSlots(now, 1, 9, 17, 30)[:1])
	require.NoError(t, err)

	require.NoError(t, catalog.EnsureSeeded(ctx))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestEnsureSeededPopulatesEmptyCatalog(t *testing.T) {
	repo := slotRepo.NewMemorySlotRepo()
	ctx := context.Background()

	now := time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)
	catalog := &DefaultSlotCatalog{Repo: repo, Now: func() time.Time { return now }}

	require.NoError(t, catalog.EnsureSeeded(ctx))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Positive(t, count)
}
