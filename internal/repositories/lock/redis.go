package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/reservas/internal/common/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for Redis
	lockKeyPrefix = "sender_lock:"

	defaultTTL           = 30 * time.Second
	defaultRetryInterval = 25 * time.Millisecond
)

// releaseScript deletes the key only if it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisConfig holds configuration for the Redis lock repository
type RedisConfig struct {
	// Redis client
	RedisClient *redis.Client

	// UUIDGenerator creates lock tokens; defaults to random UUIDs
	UUIDGenerator uuid.UUID

	// TTL bounds how long a crashed holder can block a sender
	TTL time.Duration

	// RetryInterval is the pause between acquisition attempts
	RetryInterval time.Duration
}

// redisRepository implements the Repository interface with SET NX PX,
// so several bot processes serialize the same sender
type redisRepository struct {
	client        *redis.Client
	uuid          uuid.UUID
	ttl           time.Duration
	retryInterval time.Duration
}

// NewRedis creates a new Redis-backed lock repository
func NewRedis(cfg *RedisConfig) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	repo := &redisRepository{
		client:        cfg.RedisClient,
		uuid:          cfg.UUIDGenerator,
		ttl:           cfg.TTL,
		retryInterval: cfg.RetryInterval,
	}
	if repo.uuid == nil {
		repo.uuid = uuid.New()
	}
	if repo.ttl <= 0 {
		repo.ttl = defaultTTL
	}
	if repo.retryInterval <= 0 {
		repo.retryInterval = defaultRetryInterval
	}

	return repo, nil
}

// Acquire polls SET NX until it wins or the context is done
func (r *redisRepository) Acquire(ctx context.Context, input *AcquireInput) (*AcquireOutput, error) {
	if input == nil || input.Key == "" {
		return nil, errors.New("input and key cannot be empty")
	}

	key := lockKeyPrefix + input.Key
	token := r.uuid.NewUUID()

	ticker := time.NewTicker(r.retryInterval)
	defer ticker.Stop()

	for {
		ok, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}
		if ok {
			return &AcquireOutput{Token: token}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Release deletes the key if it is still ours
func (r *redisRepository) Release(ctx context.Context, input *ReleaseInput) error {
	if input == nil || input.Key == "" {
		return errors.New("input and key cannot be empty")
	}

	deleted, err := releaseScript.Run(ctx, r.client, []string{lockKeyPrefix + input.Key}, input.Token).Int()
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	if deleted == 0 {
		return ErrNotHeld
	}

	return nil
}
