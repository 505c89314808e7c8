package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/reservas/internal/repositories/session Repository

import (
	"context"

	"github.com/KirkDiggler/reservas/internal/models"
)

// Repository stores the conversation state of each sender
type Repository interface {
	// GetSession returns the sender's session, or a fresh initial one when none is stored.
	// The fresh session is not stored until SaveSession is called.
	GetSession(ctx context.Context, input *GetSessionInput) (*models.ConversationSession, error)

	// SaveSession replaces the sender's session
	SaveSession(ctx context.Context, input *SaveSessionInput) error

	// DeleteSession forgets the sender's session
	DeleteSession(ctx context.Context, input *DeleteSessionInput) error
}
