// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"
	"errors"

	"transformai/database"
	"transformai/models"
	"transformai/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when no appointment carries the requested id.
	ErrNotFound = errors.New("appointment not found")
	// ErrDuplicateDateTime is returned when an insert collides with the
	// unique index on the booked timestamp. It is the storage-level backstop
	// for the one-appointment-per-slot invariant.
	ErrDuplicateDateTime = errors.New("appointment datetime already taken")
)

// AppointmentRepository owns appointment records.
type AppointmentRepository interface {
	Insert(ctx context.Context, appt models.Appointment) error
	FindByID(ctx context.Context, id string) (*models.Appointment, error)
	// FindByDateTime returns (nil, nil) when the timestamp is unbooked.
	FindByDateTime(ctx context.Context, dateTime string) (*models.Appointment, error)
	FindInRange(ctx context.Context, start, end string) ([]models.Appointment, error)
	FindAllSorted(ctx context.Context) ([]models.Appointment, error)
	DeleteByID(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new MongoDB AppointmentRepository.
func NewMongoAppointmentRepo() AppointmentRepository {
	repo := &mongoAppointmentRepo{
		coll: database.DB().Collection("appointments"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create appointment indexes", zap.Error(err))
	}
	return repo
}
