package conversation

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/reservas/internal/common/logger"
	"github.com/KirkDiggler/reservas/internal/models"
	lockRepo "github.com/KirkDiggler/reservas/internal/repositories/lock"
	sessionRepo "github.com/KirkDiggler/reservas/internal/repositories/session"
	"github.com/KirkDiggler/reservas/internal/services/reservation"
	"go.uber.org/zap"
)

// service implements the Service interface
type service struct {
	sessionRepo        sessionRepo.Repository
	lockRepo           lockRepo.Repository
	reservationService reservation.Service
	logger             *zap.Logger
}

// New creates a new conversation service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SessionRepository == nil {
		return nil, ErrNilSessionRepo
	}

	if cfg.LockRepository == nil {
		return nil, ErrNilLockRepo
	}

	if cfg.ReservationService == nil {
		return nil, ErrNilReservationService
	}

	return &service{
		sessionRepo:        cfg.SessionRepository,
		lockRepo:           cfg.LockRepository,
		reservationService: cfg.ReservationService,
		logger:             logger.OrNop(cfg.Logger),
	}, nil
}

// HandleInboundMessage loads the sender's session, runs one transition and stores the result
func (s *service) HandleInboundMessage(ctx context.Context, input *HandleInboundMessageInput) (*HandleInboundMessageOutput, error) {
	if input == nil || input.SenderID == "" {
		return nil, ErrEmptySender
	}

	log := s.logger.With(zap.String("sender", input.SenderID))

	// Only one message per sender is processed at a time
	lock, err := s.lockRepo.Acquire(ctx, &lockRepo.AcquireInput{Key: input.SenderID})
	if err != nil {
		log.Error("failed to acquire sender lock", zap.Error(err))
		return &HandleInboundMessageOutput{Reply: ReplyGenericError}, fmt.Errorf("failed to acquire sender lock: %w", err)
	}
	defer func() {
		// The caller's context may already be done; the lock still has to go
		if err := s.lockRepo.Release(context.WithoutCancel(ctx), &lockRepo.ReleaseInput{
			Key:   input.SenderID,
			Token: lock.Token,
		}); err != nil {
			log.Warn("failed to release sender lock", zap.Error(err))
		}
	}()

	session, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{SenderID: input.SenderID})
	if err != nil {
		return s.fail(ctx, log, input.SenderID, fmt.Errorf("failed to load session: %w", err)), nil
	}

	result, err := s.safeTransition(ctx, session, normalize(input.Text))
	if err != nil {
		return s.fail(ctx, log, input.SenderID, err), nil
	}

	// A session back at the start carries nothing worth keeping
	if result.next == nil || result.next.Step == models.StepInitial {
		err = s.sessionRepo.DeleteSession(ctx, &sessionRepo.DeleteSessionInput{SenderID: input.SenderID})
	} else {
		err = s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: result.next})
	}
	if err != nil {
		return s.fail(ctx, log, input.SenderID, fmt.Errorf("failed to store session: %w", err)), nil
	}

	step := models.StepInitial
	if result.next != nil {
		step = result.next.Step
	}

	log.Debug("message handled",
		zap.Stringer("from_step", session.Step),
		zap.Stringer("to_step", step),
	)

	return &HandleInboundMessageOutput{
		Reply: result.reply,
		Step:  step,
	}, nil
}

// safeTransition runs transition and turns a panic into an error
func (s *service) safeTransition(ctx context.Context, session *models.ConversationSession, text string) (result *outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("transition panicked: %v", r)
		}
	}()

	if err := session.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session: %w", err)
	}

	return s.transition(ctx, session, text)
}

// fail logs err, forgets the sender's session and returns the generic reply
func (s *service) fail(ctx context.Context, log *zap.Logger, senderID string, err error) *HandleInboundMessageOutput {
	log.Error("failed to handle message", zap.Error(err))

	if delErr := s.sessionRepo.DeleteSession(ctx, &sessionRepo.DeleteSessionInput{SenderID: senderID}); delErr != nil {
		log.Error("failed to delete session", zap.Error(delErr))
	}

	return &HandleInboundMessageOutput{
		Reply: ReplyGenericError,
		Step:  models.StepInitial,
	}
}
