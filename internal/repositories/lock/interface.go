package lock

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/reservas/internal/repositories/lock Repository

import "context"

// Repository serializes work per key (one sender's conversation at a time)
type Repository interface {
	// Acquire blocks until the key is free or the context is done
	Acquire(ctx context.Context, input *AcquireInput) (*AcquireOutput, error)

	// Release frees a key held with the token returned by Acquire
	Release(ctx context.Context, input *ReleaseInput) error
}
