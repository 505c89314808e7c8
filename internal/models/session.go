package models

import (
	"errors"
	"fmt"
)

// Step is the position of a sender inside the reservation conversation
type Step int

const (
	// StepInitial is where every conversation starts and returns to
	StepInitial Step = iota

	// StepChoosingService indicates the service menu was sent
	StepChoosingService

	// StepAwaitingDate indicates a service was chosen and a date is expected
	StepAwaitingDate

	// StepConfirming indicates an available date was offered for confirmation
	StepConfirming
)

// String returns the step name used in logs
func (s Step) String() string {
	switch s {
	case StepInitial:
		return "initial"
	case StepChoosingService:
		return "choosing_service"
	case StepAwaitingDate:
		return "awaiting_date"
	case StepConfirming:
		return "confirming"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// IsValid reports whether the step is one of the declared steps
func (s Step) IsValid() bool {
	return s >= StepInitial && s <= StepConfirming
}

// ConversationSession is the ephemeral state of one sender's conversation
type ConversationSession struct {
	// SenderID identifies the sender (phone number, channel address, user ID)
	SenderID string

	// Step is the current position in the conversation
	Step Step

	// Service is set once the sender picked one from the menu
	Service Service

	// Date is set once the chosen date was found available
	Date string
}

// NewConversationSession returns the default session for a sender that has no state yet
func NewConversationSession(senderID string) *ConversationSession {
	return &ConversationSession{
		SenderID: senderID,
		Step:     StepInitial,
	}
}

// Clone returns a copy that shares nothing with the receiver
func (s *ConversationSession) Clone() *ConversationSession {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// Validate checks that the optional fields match the step
func (s *ConversationSession) Validate() error {
	if s == nil {
		return errors.New("session cannot be nil")
	}
	if !s.Step.IsValid() {
		return fmt.Errorf("invalid step %d", int(s.Step))
	}

	hasService := s.Service != ""
	wantService := s.Step == StepAwaitingDate || s.Step == StepConfirming
	if hasService != wantService {
		return fmt.Errorf("service must be set only while awaiting a date or confirming (step %s)", s.Step)
	}

	hasDate := s.Date != ""
	if hasDate != (s.Step == StepConfirming) {
		return fmt.Errorf("date must be set only while confirming (step %s)", s.Step)
	}

	return nil
}
