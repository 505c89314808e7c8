package messaging

import (
	"time"

	"github.com/KirkDiggler/reservas/internal/common/uuid"
	"github.com/KirkDiggler/reservas/internal/services/conversation"
	"go.uber.org/zap"
)

// Channel names the transport a message arrived on and its reply goes out on
type Channel string

const (
	// ChannelWhatsApp is the Twilio WhatsApp webhook
	ChannelWhatsApp Channel = "whatsapp"

	// ChannelDiscord is direct messages to the Discord bot
	ChannelDiscord Channel = "discord"
)

// DefaultHandleTimeout bounds the processing of a single message
const DefaultHandleTimeout = 30 * time.Second

// Config holds configuration for the messaging service
type Config struct {
	ConversationService conversation.Service

	// Senders deliver replies, one per channel
	Senders map[Channel]Sender

	// UUIDGenerator tags every message with an ID for the logs
	UUIDGenerator uuid.UUID

	// HandleTimeout bounds conversation handling plus reply delivery
	HandleTimeout time.Duration

	Logger *zap.Logger
}

// EnqueueInput is one inbound message
type EnqueueInput struct {
	Channel Channel

	// SenderID identifies the conversation and is where the reply goes
	SenderID string

	Text string
}

// EnqueueOutput identifies the queued message
type EnqueueOutput struct {
	MessageID string
}

// inbound is a queued message
type inbound struct {
	id       string
	channel  Channel
	senderID string
	text     string
}

// senderQueue holds the pending messages of one sender.
// A worker goroutine exists only while the queue is non-empty.
type senderQueue struct {
	pending []*inbound
}
