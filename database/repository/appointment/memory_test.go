package appointmentRepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transformai/models"
)

func TestMemoryInsertRejectsDuplicateDateTime(t *testing.T) {
	repo := NewMemoryAppointmentRepo()
	ctx := context.Background()

	first := models.Appointment{ID: "appointment-1", DateTime: "2026-03-04T09:00:00Z"}
	require.NoError(t, repo.Insert(ctx, first))

	second := models.Appointment{ID: "appointment-2", DateTime: "2026-03-04T09:00:00Z"}
	assert.ErrorIs(t, repo.Insert(ctx, second), ErrDuplicateDateTime)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMemoryFindByDateTime(t *testing.T) {
	repo := NewMemoryAppointmentRepo()
	ctx := context.Background()

	appt, err := repo.FindByDateTime(ctx, "2026-03-04T09:00:00Z")
	require.NoError(t, err)
	assert.Nil(t, appt, "unbooked timestamps return nil without error")

	require.NoError(t, repo.Insert(ctx, models.Appointment{ID: "appointment-1", DateTime: "2026-03-04T09:00:00Z"}))
	appt, err = repo.FindByDateTime(ctx, "2026-03-04T09:00:00Z")
	require.NoError(t, err)
	require.NotNil(t, appt)
	assert.Equal(t, "appointment-1", appt.ID)
}

func TestMemoryDeleteFreesDateTime(t *testing.T) {
	repo := NewMemoryAppointmentRepo()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, models.Appointment{ID: "appointment-1", DateTime: "2026-03-04T09:00:00Z"}))
	require.NoError(t, repo.DeleteByID(ctx, "appointment-1"))

	_, err := repo.FindByID(ctx, "appointment-1")
	assert.ErrorIs(t, err, ErrNotFound)

	// The timestamp is free again.
	assert.NoError(t, repo.Insert(ctx, models.Appointment{ID: "appointment-2", DateTime: "2026-03-04T09:00:00Z"}))
}

func TestMemoryDeleteMissing(t *testing.T) {
	repo := NewMemoryAppointmentRepo()
	assert.ErrorIs(t, repo.DeleteByID(context.Background(), "appointment-ghost"), ErrNotFound)
}

func TestMemoryFindAllSorted(t *testing.T) {
	repo := NewMemoryAppointmentRepo()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, models.Appointment{ID: "b", DateTime: "2026-03-05T09:00:00Z"}))
	require.NoError(t, repo.Insert(ctx, models.Appointment{ID: "a", DateTime: "2026-03-04T09:00:00Z"}))
	require.NoError(t, repo.Insert(ctx, models.Appointment{ID: "c", DateTime: "2026-03-06T09:00:00Z"}))

	all, err := repo.FindAllSorted(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "b", all[1].ID)
	assert.Equal(t, "c", all[2].ID)
}

func TestMemoryFindInRange(t *testing.T) {
	repo := NewMemoryAppointmentRepo()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, models.Appointment{ID: "a", DateTime: "2026-03-04T09:00:00Z"}))
	require.NoError(t, repo.Insert(ctx, models.Appointment{ID: "b", DateTime: "2026-03-10T09:00:00Z"}))

	inRange, err := repo.FindInRange(ctx, "2026-03-04T00:00:00Z", "2026-03-05T00:00:00Z")
	require.NoError(t, err)
	require.Len(t, inRange, 1)
	assert.Equal(t, "a", inRange[0].ID)
}
