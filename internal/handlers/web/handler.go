package web

import (
	"errors"

	"github.com/KirkDiggler/reservas/internal/common/logger"
	"github.com/KirkDiggler/reservas/internal/services/messaging"
	"github.com/KirkDiggler/reservas/internal/services/reservation"
	"go.uber.org/zap"
)

// Config holds the dependencies of the HTTP handlers
type Config struct {
	MessagingService   messaging.Service
	ReservationService reservation.Service
	Logger             *zap.Logger
}

// Handler serves the webhook, the reservation listing and the web form
type Handler struct {
	messaging    messaging.Service
	reservations reservation.Service
	logger       *zap.Logger
}

// New creates the HTTP handlers
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	if cfg.ReservationService == nil {
		return nil, errors.New("reservation service cannot be nil")
	}

	return &Handler{
		messaging:    cfg.MessagingService,
		reservations: cfg.ReservationService,
		logger:       logger.OrNop(cfg.Logger),
	}, nil
}
