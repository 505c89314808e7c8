package discord

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// dmSession is the part of *discordgo.Session the sender needs
type dmSession interface {
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Sender delivers replies as direct messages
type Sender struct {
	session dmSession

	mu sync.Mutex
	// channels caches the DM channel of each user
	channels map[string]string
}

// NewSender creates a DM sender on top of a Discord session
func NewSender(session dmSession) (*Sender, error) {
	if session == nil {
		return nil, errors.New("session cannot be nil")
	}

	return &Sender{
		session:  session,
		channels: make(map[string]string),
	}, nil
}

// Send opens (or reuses) the DM channel with the user and posts text to it
func (s *Sender) Send(ctx context.Context, recipient, text string) error {
	channelID, err := s.dmChannel(ctx, recipient)
	if err != nil {
		return err
	}

	if _, err := s.session.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx)); err != nil {
		// The channel may be gone; open a fresh one next time
		s.mu.Lock()
		delete(s.channels, recipient)
		s.mu.Unlock()
		return fmt.Errorf("failed to send direct message: %w", err)
	}

	return nil
}

func (s *Sender) dmChannel(ctx context.Context, userID string) (string, error) {
	s.mu.Lock()
	channelID, ok := s.channels[userID]
	s.mu.Unlock()
	if ok {
		return channelID, nil
	}

	channel, err := s.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to open direct message channel: %w", err)
	}

	s.mu.Lock()
	s.channels[userID] = channel.ID
	s.mu.Unlock()

	return channel.ID, nil
}
