package session

import "github.com/KirkDiggler/reservas/internal/models"

// GetSessionInput contains parameters for retrieving a session
type GetSessionInput struct {
	SenderID string
}

// SaveSessionInput contains parameters for saving a session
type SaveSessionInput struct {
	Session *models.ConversationSession
}

// DeleteSessionInput contains parameters for deleting a session
type DeleteSessionInput struct {
	SenderID string
}
