package session

import (
	"context"
	"errors"
	"sync"

	"github.com/KirkDiggler/reservas/internal/models"
)

// memoryRepository keeps sessions in process memory; a restart forgets all of them
type memoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]*models.ConversationSession
}

// NewMemory creates an empty in-memory session repository
func NewMemory() *memoryRepository {
	return &memoryRepository{
		sessions: make(map[string]*models.ConversationSession),
	}
}

// GetSession returns a copy of the stored session or a new initial one
func (r *memoryRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.ConversationSession, error) {
	if input == nil || input.SenderID == "" {
		return nil, errors.New("input and sender ID cannot be empty")
	}

	r.mu.RLock()
	stored, ok := r.sessions[input.SenderID]
	r.mu.RUnlock()

	if !ok {
		return models.NewConversationSession(input.SenderID), nil
	}

	return stored.Clone(), nil
}

// SaveSession stores a copy of the session under its sender ID
func (r *memoryRepository) SaveSession(ctx context.Context, input *SaveSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	if input.Session.SenderID == "" {
		return errors.New("sender ID cannot be empty")
	}

	r.mu.Lock()
	r.sessions[input.Session.SenderID] = input.Session.Clone()
	r.mu.Unlock()

	return nil
}

// DeleteSession removes the sender's session; deleting a missing session is not an error
func (r *memoryRepository) DeleteSession(ctx context.Context, input *DeleteSessionInput) error {
	if input == nil || input.SenderID == "" {
		return errors.New("input and sender ID cannot be empty")
	}

	r.mu.Lock()
	delete(r.sessions, input.SenderID)
	r.mu.Unlock()

	return nil
}
