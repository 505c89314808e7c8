package discord

import (
	"context"
	"errors"

	"github.com/KirkDiggler/reservas/internal/services/conversation"
	"github.com/KirkDiggler/reservas/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const reservarStartedMessage = "Vamos continuar pelas suas mensagens diretas."

// ReservarCommand handles the /reservar command. It starts the conversation in the user's DMs.
type ReservarCommand struct {
	BaseCommand
	messaging messaging.Service
	logger    *zap.Logger
}

// NewReservarCommand creates a new reservar command handler
func NewReservarCommand(messagingService messaging.Service, logger *zap.Logger) *ReservarCommand {
	return &ReservarCommand{
		BaseCommand: BaseCommand{
			Name:        "reservar",
			Description: "Reservar a chácara ou o carro para transporte médico",
		},
		messaging: messagingService,
		logger:    logger,
	}
}

// Handle processes a Discord interaction for the reservar command
func (c *ReservarCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	if i.ApplicationCommandData().Name != c.Name {
		return nil
	}

	if err := c.start(context.Background(), interactionUser(i)); err != nil {
		c.logger.Error("failed to start reservation from command", zap.Error(err))
		return RespondWithEphemeralMessage(s, i, conversation.ReplyGenericError)
	}

	return RespondWithEphemeralMessage(s, i, reservarStartedMessage)
}

// start feeds the keyword to the user's conversation as if it was typed in a DM
func (c *ReservarCommand) start(ctx context.Context, user *discordgo.User) error {
	if user == nil {
		return errors.New("interaction has no user")
	}

	_, err := c.messaging.Enqueue(ctx, &messaging.EnqueueInput{
		Channel:  messaging.ChannelDiscord,
		SenderID: user.ID,
		Text:     "reservar",
	})
	return err
}
