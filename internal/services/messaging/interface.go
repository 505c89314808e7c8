package messaging

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/reservas/internal/services/messaging Service
//go:generate mockgen -package=mocks -destination=mocks/mock_sender.go github.com/KirkDiggler/reservas/internal/services/messaging Sender

import "context"

// Service queues inbound messages and delivers the replies
type Service interface {
	// Enqueue accepts a message and returns before it is processed.
	// Messages from one sender are processed one at a time, in arrival order.
	Enqueue(ctx context.Context, input *EnqueueInput) (*EnqueueOutput, error)

	// Shutdown stops accepting messages and waits for the queued ones
	Shutdown(ctx context.Context) error
}

// Sender delivers a text to a recipient over one channel
type Sender interface {
	Send(ctx context.Context, recipient, text string) error
}
