package models

import (
	"regexp"
	"time"
)

// datePattern only checks the shape DD/MM/YYYY; 31/02/2099 passes
var datePattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

// IsDateFormat reports whether s looks like DD/MM/YYYY. It does not check the calendar.
func IsDateFormat(s string) bool {
	return datePattern.MatchString(s)
}

// Service is a bookable resource
type Service string

const (
	// ServiceChacara is the country house
	ServiceChacara Service = "chácara"

	// ServiceCarro is the car for medical transport
	ServiceCarro Service = "carro"
)

// IsValid reports whether the service is one of the bookable resources
func (s Service) IsValid() bool {
	return s == ServiceChacara || s == ServiceCarro
}

// ReservationStatus is the review state of a reservation
type ReservationStatus string

const (
	// ReservationStatusPending is the status every new reservation starts with
	ReservationStatusPending ReservationStatus = "pending"

	// ReservationStatusConfirmed is set by an administrator after review
	ReservationStatusConfirmed ReservationStatus = "confirmed"

	// ReservationStatusCancelled frees the (service, date) slot again
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// IsActive reports whether the reservation still holds its slot
func (s ReservationStatus) IsActive() bool {
	return s != ReservationStatusCancelled
}

// Reservation is a durable booking of a service on a date
type Reservation struct {
	// ID is assigned by storage
	ID int64 `json:"id"`

	// Service is the booked resource
	Service Service `json:"service"`

	// Date is the booked day as entered, DD/MM/YYYY
	Date string `json:"date"`

	// Contact is the sender identity that made the booking
	Contact string `json:"contact"`

	// RequesterName is only present for bookings made through the web form
	RequesterName string `json:"requester_name,omitempty"`

	// RequesterEmail is only present for bookings made through the web form
	RequesterEmail string `json:"requester_email,omitempty"`

	// Status defaults to pending
	Status ReservationStatus `json:"status"`

	// CreatedAt is set at insert and never changes
	CreatedAt time.Time `json:"created_at"`
}
