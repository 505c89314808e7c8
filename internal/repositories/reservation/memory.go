package reservation

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/KirkDiggler/reservas/internal/common/clock"
	"github.com/KirkDiggler/reservas/internal/models"
)

// MemoryConfig holds configuration for the in-memory reservation repository
type MemoryConfig struct {
	Clock clock.Clock
}

// memoryRepository keeps reservations in process memory.
// It enforces the same one-active-reservation-per-slot rule as the Postgres index.
type memoryRepository struct {
	mu           sync.Mutex
	clock        clock.Clock
	nextID       int64
	reservations []*models.Reservation
}

// NewMemory creates an in-memory reservation repository
func NewMemory(cfg *MemoryConfig) (*memoryRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	return &memoryRepository{clock: cfg.Clock}, nil
}

// CountActive counts non-cancelled reservations for the slot
func (r *memoryRepository) CountActive(ctx context.Context, input *CountActiveInput) (int, error) {
	if input == nil {
		return 0, errors.New("input cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.countActiveLocked(input.Service, input.Date), nil
}

// InsertReservation stores a pending reservation
func (r *memoryRepository) InsertReservation(ctx context.Context, input *InsertReservationInput) (int64, error) {
	if err := input.validate(); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.insertLocked(input)
}

// BookIfAvailable is InsertReservation; the mutex already makes check and insert atomic
func (r *memoryRepository) BookIfAvailable(ctx context.Context, input *InsertReservationInput) (int64, error) {
	return r.InsertReservation(ctx, input)
}

// ListReservations returns copies of all reservations, newest first
func (r *memoryRepository) ListReservations(ctx context.Context) ([]*models.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*models.Reservation, 0, len(r.reservations))
	for _, res := range r.reservations {
		c := *res
		out = append(out, &c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *memoryRepository) countActiveLocked(service models.Service, date string) int {
	count := 0
	for _, res := range r.reservations {
		if res.Service == service && res.Date == date && res.Status.IsActive() {
			count++
		}
	}
	return count
}

func (r *memoryRepository) insertLocked(input *InsertReservationInput) (int64, error) {
	if r.countActiveLocked(input.Service, input.Date) > 0 {
		return 0, ErrSlotTaken
	}

	r.nextID++
	r.reservations = append(r.reservations, &models.Reservation{
		ID:             r.nextID,
		Service:        input.Service,
		Date:           input.Date,
		Contact:        input.Contact,
		RequesterName:  input.RequesterName,
		RequesterEmail: input.RequesterEmail,
		Status:         models.ReservationStatusPending,
		CreatedAt:      r.clock.Now(),
	})

	return r.nextID, nil
}
