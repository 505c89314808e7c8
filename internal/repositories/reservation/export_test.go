package reservation

import (
	"errors"

	"github.com/KirkDiggler/reservas/internal/models"
)

// SetStatus changes a reservation's status
func (r *memoryRepository) SetStatus(id int64, status models.ReservationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, res := range r.reservations {
		if res.ID == id {
			res.Status = status
			return nil
		}
	}
	return errors.New("reservation not found")
}
