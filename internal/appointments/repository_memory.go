package appointments

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory Repository for tests and local dev.
type MemoryRepository struct {
	mu    sync.RWMutex
	appts map[string]*Appointment
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{appts: make(map[string]*Appointment)}
}

var _ Repository = (*MemoryRepository)(nil)

func (r *MemoryRepository) Create(_ context.Context, appt *Appointment) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := *appt
	created.ID = uuid.NewString()
	created.CreatedAt = time.Now().UTC()
	r.appts[created.ID] = &created

	out := created
	return &out, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Appointment, 0, len(r.appts))
	for _, appt := range r.appts {
		copied := *appt
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appt, ok := r.appts[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *appt
	return &copied, nil
}

func (r *MemoryRepository) UpdateStatus(_ context.Context, id string, s Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	appt, ok := r.appts[id]
	if !ok {
		return ErrNotFound
	}
	appt.Status = s
	return nil
}
