package session

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/KirkDiggler/reservas/internal/models"
	"github.com/stretchr/testify/suite"
)

type MemoryRepositoryTestSuite struct {
	suite.Suite
	repo *memoryRepository
	ctx  context.Context
}

func (s *MemoryRepositoryTestSuite) SetupTest() {
	s.repo = NewMemory()
	s.ctx = context.Background()
}

func TestMemoryRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(MemoryRepositoryTestSuite))
}

func (s *MemoryRepositoryTestSuite) TestGetMissingSessionReturnsInitialWithoutStoring() {
	session, err := s.repo.GetSession(s.ctx, &GetSessionInput{SenderID: "whatsapp:+15550001"})
	s.Require().NoError(err)
	s.Require().NotNil(session)

	s.Equal("whatsapp:+15550001", session.SenderID)
	s.Equal(models.StepInitial, session.Step)
	s.Empty(session.Service)
	s.Empty(session.Date)
	s.Equal(0, s.repo.Len())
}

func (s *MemoryRepositoryTestSuite) TestSaveAndGetSession() {
	err := s.repo.SaveSession(s.ctx, &SaveSessionInput{
		Session: &models.ConversationSession{
			SenderID: "sender-1",
			Step:     models.StepAwaitingDate,
			Service:  models.ServiceChacara,
		},
	})
	s.Require().NoError(err)

	session, err := s.repo.GetSession(s.ctx, &GetSessionInput{SenderID: "sender-1"})
	s.Require().NoError(err)
	s.Equal(models.StepAwaitingDate, session.Step)
	s.Equal(models.ServiceChacara, session.Service)
}

func (s *MemoryRepositoryTestSuite) TestReturnedSessionIsACopy() {
	original := &models.ConversationSession{SenderID: "sender-1", Step: models.StepChoosingService}
	s.Require().NoError(s.repo.SaveSession(s.ctx, &SaveSessionInput{Session: original}))

	// Mutating either side must not leak into the store
	original.Step = models.StepConfirming
	got, err := s.repo.GetSession(s.ctx, &GetSessionInput{SenderID: "sender-1"})
	s.Require().NoError(err)
	s.Equal(models.StepChoosingService, got.Step)

	got.Step = models.StepAwaitingDate
	again, err := s.repo.GetSession(s.ctx, &GetSessionInput{SenderID: "sender-1"})
	s.Require().NoError(err)
	s.Equal(models.StepChoosingService, again.Step)
}

func (s *MemoryRepositoryTestSuite) TestDeleteSession() {
	s.Require().NoError(s.repo.SaveSession(s.ctx, &SaveSessionInput{
		Session: &models.ConversationSession{SenderID: "sender-1", Step: models.StepChoosingService},
	}))

	s.Require().NoError(s.repo.DeleteSession(s.ctx, &DeleteSessionInput{SenderID: "sender-1"}))
	s.Equal(0, s.repo.Len())

	session, err := s.repo.GetSession(s.ctx, &GetSessionInput{SenderID: "sender-1"})
	s.Require().NoError(err)
	s.Equal(models.StepInitial, session.Step)

	// Deleting again is a no-op
	s.NoError(s.repo.DeleteSession(s.ctx, &DeleteSessionInput{SenderID: "sender-1"}))
}

func (s *MemoryRepositoryTestSuite) TestInvalidInput() {
	_, err := s.repo.GetSession(s.ctx, nil)
	s.Error(err)

	_, err = s.repo.GetSession(s.ctx, &GetSessionInput{})
	s.Error(err)

	s.Error(s.repo.SaveSession(s.ctx, &SaveSessionInput{}))
	s.Error(s.repo.SaveSession(s.ctx, &SaveSessionInput{Session: &models.ConversationSession{}}))
	s.Error(s.repo.DeleteSession(s.ctx, &DeleteSessionInput{}))
}

func (s *MemoryRepositoryTestSuite) TestConcurrentSendersAreIndependent() {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.repo.SaveSession(s.ctx, &SaveSessionInput{
				Session: &models.ConversationSession{SenderID: fmt.Sprintf("sender-%d", i), Step: models.StepChoosingService},
			})
		}(i)
	}
	wg.Wait()

	s.Equal(50, s.repo.Len())
}
