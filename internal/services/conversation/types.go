package conversation

import (
	"github.com/KirkDiggler/reservas/internal/models"
	lockRepo "github.com/KirkDiggler/reservas/internal/repositories/lock"
	sessionRepo "github.com/KirkDiggler/reservas/internal/repositories/session"
	"github.com/KirkDiggler/reservas/internal/services/reservation"
	"go.uber.org/zap"
)

// Config holds configuration for the conversation service
type Config struct {
	// Repository dependencies
	SessionRepository sessionRepo.Repository
	LockRepository    lockRepo.Repository

	// ReservationService checks availability and writes reservations
	ReservationService reservation.Service

	Logger *zap.Logger
}

// HandleInboundMessageInput is one message received from a sender
type HandleInboundMessageInput struct {
	// SenderID identifies the conversation (phone number, user ID)
	SenderID string

	// Text is the raw message body
	Text string
}

// HandleInboundMessageOutput contains the reply for the sender
type HandleInboundMessageOutput struct {
	Reply string

	// Step is where the sender's conversation now stands
	Step models.Step
}

// outcome is the result of one transition. A nil next session means the session is deleted.
type outcome struct {
	reply string
	next  *models.ConversationSession
}
