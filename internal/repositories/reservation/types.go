package reservation

import (
	"errors"

	"github.com/KirkDiggler/reservas/internal/models"
)

// ErrSlotTaken is returned when an active reservation already holds the (service, date) slot
var ErrSlotTaken = errors.New("slot already taken")

// CountActiveInput contains parameters for counting active reservations
type CountActiveInput struct {
	Service models.Service
	Date    string
}

// InsertReservationInput contains parameters for inserting a reservation
type InsertReservationInput struct {
	Service models.Service
	Date    string
	Contact string

	// RequesterName and RequesterEmail are optional
	RequesterName  string
	RequesterEmail string
}

func (in *InsertReservationInput) validate() error {
	if in == nil {
		return errors.New("input cannot be nil")
	}
	if !in.Service.IsValid() {
		return errors.New("invalid service")
	}
	if in.Date == "" {
		return errors.New("date cannot be empty")
	}
	if in.Contact == "" {
		return errors.New("contact cannot be empty")
	}
	return nil
}
