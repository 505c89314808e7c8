package reservation

import "fmt"

// ReservationError is a custom error type for booking outcomes
type ReservationError string

// Error implements the error interface
func (e ReservationError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrUnavailable    ReservationError = "slot unavailable"
	ErrInvalidService ReservationError = "invalid service"
	ErrInvalidDate    ReservationError = "date must be DD/MM/YYYY"
	ErrMissingContact ReservationError = "contact is required"
	ErrNilConfig      ReservationError = "config cannot be nil"
	ErrNilRepository  ReservationError = "reservation repository cannot be nil"
)

// StorageError wraps a failed or timed-out storage call
type StorageError struct {
	// Op names the storage operation that failed
	Op string

	Err error
}

// Error implements the error interface
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *StorageError) Unwrap() error {
	return e.Err
}
