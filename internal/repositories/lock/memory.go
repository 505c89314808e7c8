package lock

import (
	"context"
	"errors"
	"strconv"
	"sync"
)

type memoryEntry struct {
	// sem has capacity one; holding the lock means having sent into it
	sem   chan struct{}
	refs  int
	token string
}

// memoryRepository is an in-process keyed mutex. Entries are dropped once nobody waits on them.
type memoryRepository struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	seq     uint64
}

// NewMemory creates an in-process lock repository
func NewMemory() *memoryRepository {
	return &memoryRepository{
		entries: make(map[string]*memoryEntry),
	}
}

// Acquire waits for the key; waiters are not guaranteed FIFO
func (r *memoryRepository) Acquire(ctx context.Context, input *AcquireInput) (*AcquireOutput, error) {
	if input == nil || input.Key == "" {
		return nil, errors.New("input and key cannot be empty")
	}

	r.mu.Lock()
	entry, ok := r.entries[input.Key]
	if !ok {
		entry = &memoryEntry{sem: make(chan struct{}, 1)}
		r.entries[input.Key] = entry
	}
	entry.refs++
	r.mu.Unlock()

	select {
	case entry.sem <- struct{}{}:
	case <-ctx.Done():
		r.mu.Lock()
		r.unrefLocked(input.Key, entry)
		r.mu.Unlock()
		return nil, ctx.Err()
	}

	r.mu.Lock()
	r.seq++
	entry.token = strconv.FormatUint(r.seq, 10)
	token := entry.token
	r.mu.Unlock()

	return &AcquireOutput{Token: token}, nil
}

// Release frees the key if the token matches the current holder
func (r *memoryRepository) Release(ctx context.Context, input *ReleaseInput) error {
	if input == nil || input.Key == "" {
		return errors.New("input and key cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[input.Key]
	if !ok || entry.token == "" || entry.token != input.Token {
		return ErrNotHeld
	}

	entry.token = ""
	<-entry.sem
	r.unrefLocked(input.Key, entry)

	return nil
}

func (r *memoryRepository) unrefLocked(key string, entry *memoryEntry) {
	entry.refs--
	if entry.refs == 0 {
		delete(r.entries, key)
	}
}
