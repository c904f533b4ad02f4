// File: database/repository/appointment/memory.go
package appointmentRepo

import (
	"context"
	"sort"
	"sync"

	"transformai/models"
)

type memoryAppointmentRepo struct {
	mu     sync.Mutex
	byID   map[string]models.Appointment
	byTime map[string]string // dateTime -> appointment id
}

// NewMemoryAppointmentRepo constructs an in-memory AppointmentRepository.
// The byTime map stands in for the unique dateTime index: inserts for a taken
// timestamp fail with ErrDuplicateDateTime under the same lock.
func NewMemoryAppointmentRepo() AppointmentRepository {
	return &memoryAppointmentRepo{
		byID:   make(map[string]models.Appointment),
		byTime: make(map[string]string),
	}
}

func (r *memoryAppointmentRepo) Insert(_ context.Context, appt models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byTime[appt.DateTime]; taken {
		return ErrDuplicateDateTime
	}
	r.byID[appt.ID] = appt
	r.byTime[appt.DateTime] = appt.ID
	return nil
}

func (r *memoryAppointmentRepo) FindByID(_ context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &appt, nil
}

func (r *memoryAppointmentRepo) FindByDateTime(_ context.Context, dateTime string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byTime[dateTime]
	if !ok {
		return nil, nil
	}
	appt := r.byID[id]
	return &appt, nil
}

func (r *memoryAppointmentRepo) FindInRange(_ context.Context, start, end string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.byID {
		if a.DateTime >= start && a.DateTime <= end {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateTime < out[j].DateTime })
	return out, nil
}

func (r *memoryAppointmentRepo) FindAllSorted(_ context.Context) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Appointment, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateTime < out[j].DateTime })
	return out, nil
}

func (r *memoryAppointmentRepo) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	delete(r.byTime, appt.DateTime)
	return nil
}

func (r *memoryAppointmentRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}
