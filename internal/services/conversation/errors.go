package conversation

// ConversationError is a custom error type for conversation errors
type ConversationError string

// Error implements the error interface
func (e ConversationError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidChoice         ConversationError = "invalid service choice"
	ErrInvalidDate           ConversationError = "date does not match DD/MM/YYYY"
	ErrUnknownStep           ConversationError = "unknown conversation step"
	ErrEmptySender           ConversationError = "sender ID cannot be empty"
	ErrNilConfig             ConversationError = "config cannot be nil"
	ErrNilSessionRepo        ConversationError = "session repository cannot be nil"
	ErrNilLockRepo           ConversationError = "lock repository cannot be nil"
	ErrNilReservationService ConversationError = "reservation service cannot be nil"
)
