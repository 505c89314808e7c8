package conversation

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/reservas/internal/services/conversation Service

import "context"

// Service drives the reservation conversation of every sender
type Service interface {
	// HandleInboundMessage advances the sender's conversation by one message and returns the reply.
	// A reply is produced even when the message could not be processed.
	HandleInboundMessage(ctx context.Context, input *HandleInboundMessageInput) (*HandleInboundMessageOutput, error)
}
