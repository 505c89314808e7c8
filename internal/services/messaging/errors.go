package messaging

// MessagingError is a custom error type for messaging errors
type MessagingError string

// Error implements the error interface
func (e MessagingError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrClosed                 MessagingError = "messaging service is shut down"
	ErrEmptySender            MessagingError = "sender ID cannot be empty"
	ErrUnknownChannel         MessagingError = "no sender configured for channel"
	ErrNilConfig              MessagingError = "config cannot be nil"
	ErrNilConversationService MessagingError = "conversation service cannot be nil"
	ErrNoSenders              MessagingError = "at least one sender is required"
)
