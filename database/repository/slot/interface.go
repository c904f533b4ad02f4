// File: database/repository/slot/interface.go
package slotRepo

import (
	"context"
	"errors"

	"transformai/database"
	"transformai/models"
	"transformai/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrNotFound is returned when no slot carries the requested id.
var ErrNotFound = errors.New("slot not found")

// SlotRepository stores the canonical bookable slots. Implementations exist
// for MongoDB and for plain in-memory maps; which one backs the server is
// decided once at startup.
type SlotRepository interface {
	InsertMany(ctx context.Context, slots []models.Slot) (int, error)
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id string) (*models.Slot, error)
	// FindInRange returns slots whose timestamp falls in [start, end], both
	// RFC3339 UTC instants.
	FindInRange(ctx context.Context, start, end string) ([]models.Slot, error)
}

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a new MongoDB SlotRepository.
func NewMongoSlotRepo() SlotRepository {
	repo := &mongoSlotRepo{
		coll: database.DB().Collection("slots"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create slot indexes", zap.Error(err))
	}
	return repo
}
