package reservation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/KirkDiggler/reservas/internal/common/logger"
	"github.com/KirkDiggler/reservas/internal/models"
	reservationRepo "github.com/KirkDiggler/reservas/internal/repositories/reservation"
	"go.uber.org/zap"
)

// service implements the Service interface
type service struct {
	repo    reservationRepo.Repository
	timeout time.Duration
	logger  *zap.Logger
}

// New creates a new reservation service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Repository == nil {
		return nil, ErrNilRepository
	}

	timeout := cfg.StorageTimeout
	if timeout <= 0 {
		timeout = DefaultStorageTimeout
	}

	return &service{
		repo:    cfg.Repository,
		timeout: timeout,
		logger:  logger.OrNop(cfg.Logger),
	}, nil
}

// IsAvailable counts active reservations for the slot; available iff there are none
func (s *service) IsAvailable(ctx context.Context, input *IsAvailableInput) (*IsAvailableOutput, error) {
	if input == nil || !input.Service.IsValid() {
		return nil, ErrInvalidService
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	count, err := s.repo.CountActive(ctx, &reservationRepo.CountActiveInput{
		Service: input.Service,
		Date:    input.Date,
	})
	if err != nil {
		return nil, &StorageError{Op: "count active reservations", Err: err}
	}

	return &IsAvailableOutput{
		Available: count == 0,
	}, nil
}

// SaveReservation inserts a pending reservation without re-checking availability
func (s *service) SaveReservation(ctx context.Context, input *SaveReservationInput) (*SaveReservationOutput, error) {
	if err := validateSaveInput(input); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	id, err := s.repo.InsertReservation(ctx, toInsertInput(input))
	if err != nil {
		return nil, s.mapWriteError("insert reservation", err)
	}

	s.logger.Info("reservation saved",
		zap.Int64("reservation_id", id),
		zap.String("service", string(input.Service)),
		zap.String("date", input.Date),
	)

	return &SaveReservationOutput{ReservationID: id}, nil
}

// BookReservation checks availability and inserts inside one storage transaction
func (s *service) BookReservation(ctx context.Context, input *SaveReservationInput) (*SaveReservationOutput, error) {
	if err := validateSaveInput(input); err != nil {
		return nil, err
	}
	if !models.IsDateFormat(input.Date) {
		return nil, ErrInvalidDate
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	id, err := s.repo.BookIfAvailable(ctx, toInsertInput(input))
	if err != nil {
		return nil, s.mapWriteError("book reservation", err)
	}

	s.logger.Info("reservation booked",
		zap.Int64("reservation_id", id),
		zap.String("service", string(input.Service)),
		zap.String("date", input.Date),
	)

	return &SaveReservationOutput{ReservationID: id}, nil
}

// ListReservations returns every reservation, newest first
func (s *service) ListReservations(ctx context.Context, input *ListReservationsInput) (*ListReservationsOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reservations, err := s.repo.ListReservations(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list reservations", Err: err}
	}

	return &ListReservationsOutput{Reservations: reservations}, nil
}

// mapWriteError turns a slot conflict into ErrUnavailable and everything else into a StorageError
func (s *service) mapWriteError(op string, err error) error {
	if errors.Is(err, reservationRepo.ErrSlotTaken) {
		s.logger.Info("slot taken at write time", zap.String("op", op))
		return ErrUnavailable
	}
	return &StorageError{Op: op, Err: err}
}

func validateSaveInput(input *SaveReservationInput) error {
	if input == nil || !input.Service.IsValid() {
		return ErrInvalidService
	}
	if strings.TrimSpace(input.Date) == "" {
		return ErrInvalidDate
	}
	if strings.TrimSpace(input.Contact) == "" {
		return ErrMissingContact
	}
	return nil
}

func toInsertInput(input *SaveReservationInput) *reservationRepo.InsertReservationInput {
	return &reservationRepo.InsertReservationInput{
		Service:        input.Service,
		Date:           input.Date,
		Contact:        input.Contact,
		RequesterName:  strings.TrimSpace(input.RequesterName),
		RequesterEmail: strings.TrimSpace(input.RequesterEmail),
	}
}
