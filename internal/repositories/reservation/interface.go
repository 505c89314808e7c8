package reservation

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/reservas/internal/repositories/reservation Repository

import (
	"context"

	"github.com/KirkDiggler/reservas/internal/models"
)

// Repository defines the interface for reservation persistence
type Repository interface {
	// CountActive counts reservations of a service on a date that are not cancelled
	CountActive(ctx context.Context, input *CountActiveInput) (int, error)

	// InsertReservation stores a new pending reservation and returns its ID.
	// Returns ErrSlotTaken when an active reservation already holds the slot.
	InsertReservation(ctx context.Context, input *InsertReservationInput) (int64, error)

	// BookIfAvailable counts and inserts inside one transaction.
	// Returns ErrSlotTaken when the slot is held.
	BookIfAvailable(ctx context.Context, input *InsertReservationInput) (int64, error)

	// ListReservations returns every reservation, newest first
	ListReservations(ctx context.Context) ([]*models.Reservation, error)
}
