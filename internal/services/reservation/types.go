package reservation

import (
	"time"

	"github.com/KirkDiggler/reservas/internal/models"
	reservationRepo "github.com/KirkDiggler/reservas/internal/repositories/reservation"
	"go.uber.org/zap"
)

// DefaultStorageTimeout bounds storage calls when the config leaves it unset
const DefaultStorageTimeout = 5 * time.Second

// Config holds configuration for the reservation service
type Config struct {
	// Repository dependencies
	Repository reservationRepo.Repository

	// StorageTimeout bounds each storage call
	StorageTimeout time.Duration

	Logger *zap.Logger
}

// IsAvailableInput contains parameters for checking availability
type IsAvailableInput struct {
	Service models.Service
	Date    string
}

// IsAvailableOutput contains the result of an availability check
type IsAvailableOutput struct {
	Available bool
}

// SaveReservationInput contains parameters for writing a reservation
type SaveReservationInput struct {
	Service models.Service
	Date    string

	// Contact is the sender identity (or the contact typed in the web form)
	Contact string

	// RequesterName and RequesterEmail only come from the web form
	RequesterName  string
	RequesterEmail string
}

// SaveReservationOutput contains the result of writing a reservation
type SaveReservationOutput struct {
	ReservationID int64
}

// ListReservationsInput contains parameters for listing reservations
type ListReservationsInput struct{}

// ListReservationsOutput contains the reservations, newest first
type ListReservationsOutput struct {
	Reservations []*models.Reservation
}
