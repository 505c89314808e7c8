package reservation

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/reservas/internal/services/reservation Service

import "context"

// Service is the storage-facing side of booking: availability checks and writes
type Service interface {
	// IsAvailable reports whether no active reservation holds the (service, date) slot
	IsAvailable(ctx context.Context, input *IsAvailableInput) (*IsAvailableOutput, error)

	// SaveReservation writes a pending reservation. The caller is expected to have
	// checked availability; a slot taken in between is reported as ErrUnavailable.
	SaveReservation(ctx context.Context, input *SaveReservationInput) (*SaveReservationOutput, error)

	// BookReservation checks and writes in one transaction (web-form path)
	BookReservation(ctx context.Context, input *SaveReservationInput) (*SaveReservationOutput, error)

	// ListReservations returns every reservation, newest first
	ListReservations(ctx context.Context, input *ListReservationsInput) (*ListReservationsOutput, error)
}
