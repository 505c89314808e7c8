package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/reservas/internal/models"
	"github.com/KirkDiggler/reservas/internal/services/reservation"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// normalize composes, trims and lower-cases a message body before matching.
// Clients may send accents decomposed, so "não" has to be NFC before comparison.
func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(text)))
}

// parseService maps a menu answer to a service
func parseService(text string) (models.Service, error) {
	switch text {
	case "1", string(models.ServiceChacara):
		return models.ServiceChacara, nil
	case "2", string(models.ServiceCarro):
		return models.ServiceCarro, nil
	default:
		return "", ErrInvalidChoice
	}
}

// parseDate accepts anything shaped like DD/MM/YYYY
func parseDate(text string) (string, error) {
	if !models.IsDateFormat(text) {
		return "", ErrInvalidDate
	}
	return text, nil
}

// transition computes the reply and the next session for one normalized message.
// It never touches the session store; errors are storage or programming failures.
func (s *service) transition(ctx context.Context, session *models.ConversationSession, text string) (*outcome, error) {
	switch session.Step {
	case models.StepInitial:
		return s.handleInitial(session, text), nil
	case models.StepChoosingService:
		return s.handleChoosingService(session, text), nil
	case models.StepAwaitingDate:
		return s.handleAwaitingDate(ctx, session, text)
	case models.StepConfirming:
		return s.handleConfirming(ctx, session, text)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStep, session.Step)
	}
}

func (s *service) handleInitial(session *models.ConversationSession, text string) *outcome {
	if !strings.Contains(text, keywordReserve) {
		return &outcome{reply: replyGreeting, next: session}
	}

	next := session.Clone()
	next.Step = models.StepChoosingService
	return &outcome{reply: replyServiceMenu, next: next}
}

func (s *service) handleChoosingService(session *models.ConversationSession, text string) *outcome {
	choice, err := parseService(text)
	if err != nil {
		return &outcome{reply: replyInvalidOption, next: session}
	}

	next := session.Clone()
	next.Step = models.StepAwaitingDate
	next.Service = choice
	return &outcome{reply: replyAskDate(choice), next: next}
}

func (s *service) handleAwaitingDate(ctx context.Context, session *models.ConversationSession, text string) (*outcome, error) {
	date, err := parseDate(text)
	if err != nil {
		return &outcome{reply: replyDateFormat, next: session}, nil
	}

	output, err := s.reservationService.IsAvailable(ctx, &reservation.IsAvailableInput{
		Service: session.Service,
		Date:    date,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check availability: %w", err)
	}

	if !output.Available {
		return &outcome{reply: replyUnavailable(session.Service), next: session}, nil
	}

	next := session.Clone()
	next.Step = models.StepConfirming
	next.Date = date
	return &outcome{reply: replyConfirm(next.Service, next.Date), next: next}, nil
}

func (s *service) handleConfirming(ctx context.Context, session *models.ConversationSession, text string) (*outcome, error) {
	switch text {
	case keywordYes:
		output, err := s.reservationService.SaveReservation(ctx, &reservation.SaveReservationInput{
			Service: session.Service,
			Date:    session.Date,
			Contact: session.SenderID,
		})
		if errors.Is(err, reservation.ErrUnavailable) {
			// Someone else booked the slot after it was offered; ask for another date
			next := session.Clone()
			next.Step = models.StepAwaitingDate
			next.Date = ""
			return &outcome{reply: replyUnavailable(session.Service), next: next}, nil
		}
		if err != nil {
			s.logger.Error("failed to save reservation",
				zap.String("sender", session.SenderID),
				zap.Error(err),
			)
			return &outcome{reply: replySaveFailed}, nil
		}

		s.logger.Info("reservation created",
			zap.String("sender", session.SenderID),
			zap.Int64("reservation_id", output.ReservationID),
		)
		return &outcome{reply: replySaved(session.Service, session.Date)}, nil

	case keywordNo:
		return &outcome{reply: replyCancelled}, nil

	default:
		return &outcome{reply: replyYesNo, next: session}, nil
	}
}
