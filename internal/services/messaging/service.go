package messaging

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/reservas/internal/common/logger"
	"github.com/KirkDiggler/reservas/internal/common/uuid"
	"github.com/KirkDiggler/reservas/internal/services/conversation"
	"go.uber.org/zap"
)

// service implements the Service interface
type service struct {
	conversation  conversation.Service
	senders       map[Channel]Sender
	uuid          uuid.UUID
	handleTimeout time.Duration
	logger        *zap.Logger

	// ctx is cancelled when Shutdown gives up waiting
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	queues map[string]*senderQueue
	closed bool
	wg     sync.WaitGroup
}

// New creates a new messaging service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.ConversationService == nil {
		return nil, ErrNilConversationService
	}

	if len(cfg.Senders) == 0 {
		return nil, ErrNoSenders
	}

	senders := make(map[Channel]Sender, len(cfg.Senders))
	for channel, sender := range cfg.Senders {
		if sender != nil {
			senders[channel] = sender
		}
	}
	if len(senders) == 0 {
		return nil, ErrNoSenders
	}

	svc := &service{
		conversation:  cfg.ConversationService,
		senders:       senders,
		uuid:          cfg.UUIDGenerator,
		handleTimeout: cfg.HandleTimeout,
		logger:        logger.OrNop(cfg.Logger),
		queues:        make(map[string]*senderQueue),
	}
	if svc.uuid == nil {
		svc.uuid = uuid.New()
	}
	if svc.handleTimeout <= 0 {
		svc.handleTimeout = DefaultHandleTimeout
	}
	svc.ctx, svc.cancel = context.WithCancel(context.Background())

	return svc, nil
}

// Enqueue appends the message to its sender's queue, starting a worker if none is running
func (s *service) Enqueue(ctx context.Context, input *EnqueueInput) (*EnqueueOutput, error) {
	if input == nil || input.SenderID == "" {
		return nil, ErrEmptySender
	}

	if _, ok := s.senders[input.Channel]; !ok {
		return nil, ErrUnknownChannel
	}

	msg := &inbound{
		id:       s.uuid.NewUUID(),
		channel:  input.Channel,
		senderID: input.SenderID,
		text:     input.Text,
	}
	key := queueKey(input.Channel, input.SenderID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}

	queue, ok := s.queues[key]
	if !ok {
		queue = &senderQueue{}
		s.queues[key] = queue
	}
	queue.pending = append(queue.pending, msg)

	if !ok {
		s.wg.Add(1)
		go s.drain(key, queue)
	}

	s.logger.Debug("message queued",
		zap.String("message_id", msg.id),
		zap.String("channel", string(msg.channel)),
		zap.String("sender", msg.senderID),
		zap.Int("queue_depth", len(queue.pending)),
	)

	return &EnqueueOutput{MessageID: msg.id}, nil
}

// Shutdown refuses new messages and waits for queued ones until ctx is done
func (s *service) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.cancel()
		return nil
	case <-ctx.Done():
		// Abort in-flight work; workers drop whatever is still queued
		s.cancel()
		<-done
		return ctx.Err()
	}
}

// drain processes the sender's queue until it is empty, then removes it
func (s *service) drain(key string, queue *senderQueue) {
	defer s.wg.Done()

	for {
		s.mu.Lock()
		if len(queue.pending) == 0 {
			delete(s.queues, key)
			s.mu.Unlock()
			return
		}
		msg := queue.pending[0]
		queue.pending[0] = nil
		queue.pending = queue.pending[1:]
		s.mu.Unlock()

		if s.ctx.Err() != nil {
			s.logger.Warn("dropping message during shutdown",
				zap.String("message_id", msg.id),
				zap.String("sender", msg.senderID),
			)
			continue
		}

		s.process(msg)
	}
}

// process runs one message through the conversation and sends the reply.
// Delivery failures are logged and not retried.
func (s *service) process(msg *inbound) {
	log := s.logger.With(
		zap.String("message_id", msg.id),
		zap.String("channel", string(msg.channel)),
		zap.String("sender", msg.senderID),
	)

	ctx, cancel := context.WithTimeout(s.ctx, s.handleTimeout)
	defer cancel()

	output, err := s.conversation.HandleInboundMessage(ctx, &conversation.HandleInboundMessageInput{
		SenderID: msg.senderID,
		Text:     msg.text,
	})
	if err != nil {
		log.Error("failed to handle message", zap.Error(err))
	}
	if output == nil || output.Reply == "" {
		return
	}

	if err := s.senders[msg.channel].Send(ctx, msg.senderID, output.Reply); err != nil {
		log.Error("failed to send reply", zap.Error(err))
		return
	}

	log.Info("reply sent", zap.Stringer("step", output.Step))
}

func queueKey(channel Channel, senderID string) string {
	return string(channel) + "/" + senderID
}
