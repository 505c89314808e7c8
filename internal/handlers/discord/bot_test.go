package discord

import (
	"context"
	"errors"
	"testing"

	"github.com/KirkDiggler/reservas/internal/services/messaging"
	"github.com/KirkDiggler/reservas/internal/services/messaging/mocks"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type BotTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockMessaging *mocks.MockService
	bot           *Bot
	ctx           context.Context

	testSelfID string
	testUserID string
}

func (s *BotTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockMessaging = mocks.NewMockService(s.mockCtrl)
	s.ctx = context.Background()
	s.testSelfID = "bot-user"
	s.testUserID = "123456789"

	s.bot = &Bot{
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		messaging:  s.mockMessaging,
		config:     &Config{},
		logger:     zap.NewNop(),
	}
}

func (s *BotTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBotTestSuite(t *testing.T) {
	suite.Run(t, new(BotTestSuite))
}

func (s *BotTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.Error(err)

	_, err = New(&Config{})
	s.Error(err)

	session, err := NewSession("token")
	s.Require().NoError(err)

	_, err = New(&Config{Session: session})
	s.Error(err)

	bot, err := New(&Config{Session: session, MessagingService: s.mockMessaging})
	s.Require().NoError(err)
	s.NotNil(bot)
}

func (s *BotTestSuite) TestNewSessionRequiresToken() {
	_, err := NewSession("")
	s.Error(err)
}

func (s *BotTestSuite) TestDirectMessageIsQueued() {
	s.mockMessaging.EXPECT().
		Enqueue(gomock.Any(), &messaging.EnqueueInput{
			Channel:  messaging.ChannelDiscord,
			SenderID: s.testUserID,
			Text:     "reservar",
		}).
		Return(&messaging.EnqueueOutput{MessageID: "msg-1"}, nil)

	err := s.bot.routeMessage(s.ctx, s.testSelfID, &discordgo.Message{
		Content: "reservar",
		Author:  &discordgo.User{ID: s.testUserID},
	})
	s.NoError(err)
}

func (s *BotTestSuite) TestIgnoredMessages() {
	testCases := []struct {
		name    string
		message *discordgo.Message
	}{
		{name: "nil message", message: nil},
		{name: "no author", message: &discordgo.Message{Content: "oi"}},
		{name: "guild message", message: &discordgo.Message{GuildID: "guild", Content: "oi", Author: &discordgo.User{ID: s.testUserID}}},
		{name: "own message", message: &discordgo.Message{Content: "oi", Author: &discordgo.User{ID: s.testSelfID}}},
		{name: "other bot", message: &discordgo.Message{Content: "oi", Author: &discordgo.User{ID: "other", Bot: true}}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			// No Enqueue expectation: any call fails the test
			s.NoError(s.bot.routeMessage(s.ctx, s.testSelfID, tc.message))
		})
	}
}

func (s *BotTestSuite) TestEnqueueErrorIsReturned() {
	s.mockMessaging.EXPECT().
		Enqueue(gomock.Any(), gomock.Any()).
		Return(nil, messaging.ErrClosed)

	err := s.bot.routeMessage(s.ctx, s.testSelfID, &discordgo.Message{
		Content: "oi",
		Author:  &discordgo.User{ID: s.testUserID},
	})
	s.ErrorIs(err, messaging.ErrClosed)
}

func (s *BotTestSuite) TestReservarCommandStartsConversation() {
	cmd := NewReservarCommand(s.mockMessaging, zap.NewNop())
	s.Equal("reservar", cmd.GetName())
	s.Equal("reservar", cmd.GetCommand().Name)

	s.mockMessaging.EXPECT().
		Enqueue(gomock.Any(), &messaging.EnqueueInput{
			Channel:  messaging.ChannelDiscord,
			SenderID: s.testUserID,
			Text:     "reservar",
		}).
		Return(&messaging.EnqueueOutput{MessageID: "msg-1"}, nil)

	s.NoError(cmd.start(s.ctx, &discordgo.User{ID: s.testUserID}))
}

func (s *BotTestSuite) TestReservarCommandWithoutUser() {
	cmd := NewReservarCommand(s.mockMessaging, zap.NewNop())
	s.Error(cmd.start(s.ctx, nil))
}

func (s *BotTestSuite) TestInteractionUser() {
	guildUser := &discordgo.User{ID: "guild-user"}
	dmUser := &discordgo.User{ID: "dm-user"}

	s.Equal(guildUser, interactionUser(&discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{User: guildUser},
	}}))
	s.Equal(dmUser, interactionUser(&discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		User: dmUser,
	}}))
	s.Nil(interactionUser(&discordgo.InteractionCreate{}))
}

type fakeDMSession struct {
	channelCreates int
	createErr      error
	sendErr        error
	sent           map[string][]string
}

func (f *fakeDMSession) UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.channelCreates++
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &discordgo.Channel{ID: "dm-" + recipientID}, nil
}

func (f *fakeDMSession) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	if f.sent == nil {
		f.sent = make(map[string][]string)
	}
	f.sent[channelID] = append(f.sent[channelID], content)
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

func (s *BotTestSuite) TestSenderReusesDMChannel() {
	fake := &fakeDMSession{}
	sender, err := NewSender(fake)
	s.Require().NoError(err)

	s.NoError(sender.Send(s.ctx, s.testUserID, "um"))
	s.NoError(sender.Send(s.ctx, s.testUserID, "dois"))

	s.Equal(1, fake.channelCreates)
	s.Equal([]string{"um", "dois"}, fake.sent["dm-"+s.testUserID])
}

func (s *BotTestSuite) TestSenderForgetsChannelAfterFailure() {
	fake := &fakeDMSession{sendErr: errors.New("unknown channel")}
	sender, err := NewSender(fake)
	s.Require().NoError(err)

	s.Error(sender.Send(s.ctx, s.testUserID, "um"))

	fake.sendErr = nil
	s.NoError(sender.Send(s.ctx, s.testUserID, "dois"))
	s.Equal(2, fake.channelCreates)
}

func (s *BotTestSuite) TestSenderChannelCreateFailure() {
	sender, err := NewSender(&fakeDMSession{createErr: errors.New("cannot DM user")})
	s.Require().NoError(err)

	s.Error(sender.Send(s.ctx, s.testUserID, "um"))
}

func (s *BotTestSuite) TestNewSenderRequiresSession() {
	_, err := NewSender(nil)
	s.Error(err)
}
