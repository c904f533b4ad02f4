// File: database/repository/slot/memory.go
package slotRepo

import (
	"context"
	"sort"
	"sync"

	"transformai/models"
)

// memorySlotRepo is the storage fallback used when MongoDB is unavailable or
// memory mode is configured.
type memorySlotRepo struct {
	mu    sync.RWMutex
	slots map[string]models.Slot // keyed by slot id
}

// NewMemorySlotRepo constructs an in-memory SlotRepository.
func NewMemorySlotRepo() SlotRepository {
	return &memorySlotRepo{slots: make(map[string]models.Slot)}
}

func (r *memorySlotRepo) InsertMany(_ context.Context, slots []models.Slot) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range slots {
		r.slots[s.ID] = s
	}
	return len(slots), nil
}

func (r *memorySlotRepo) DeleteAll(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots = make(map[string]models.Slot)
	return nil
}

func (r *memorySlotRepo) Count(context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.slots)), nil
}

func (r *memorySlotRepo) FindByID(_ context.Context, id string) (*models.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	slot, ok := r.slots[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &slot, nil
}

func (r *memorySlotRepo) FindInRange(_ context.Context, start, end string) ([]models.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Slot
	// RFC3339 UTC instants order lexicographically.
	for _, s := range r.slots {
		if s.Date >= start && s.Date <= end {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}
