package reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/reservas/internal/models"
	reservationRepo "github.com/KirkDiggler/reservas/internal/repositories/reservation"
	"github.com/KirkDiggler/reservas/internal/repositories/reservation/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationServiceTestSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	mockRepo *mocks.MockRepository
	service  *service
	ctx      context.Context
}

func (s *ReservationServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRepo = mocks.NewMockRepository(s.mockCtrl)
	s.ctx = context.Background()

	svc, err := New(&Config{
		Repository:     s.mockRepo,
		StorageTimeout: time.Second,
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *ReservationServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReservationServiceTestSuite))
}

func (s *ReservationServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{})
	s.ErrorIs(err, ErrNilRepository)
}

func (s *ReservationServiceTestSuite) TestNewDefaultsTimeout() {
	svc, err := New(&Config{Repository: s.mockRepo})
	s.Require().NoError(err)
	s.Equal(DefaultStorageTimeout, svc.timeout)
}

func (s *ReservationServiceTestSuite) TestIsAvailable() {
	s.Run("free slot", func() {
		s.mockRepo.EXPECT().
			CountActive(gomock.Any(), &reservationRepo.CountActiveInput{
				Service: models.ServiceChacara,
				Date:    "01/12/2099",
			}).
			Return(0, nil)

		output, err := s.service.IsAvailable(s.ctx, &IsAvailableInput{
			Service: models.ServiceChacara,
			Date:    "01/12/2099",
		})
		s.Require().NoError(err)
		s.True(output.Available)
	})

	s.Run("held slot", func() {
		s.mockRepo.EXPECT().
			CountActive(gomock.Any(), gomock.Any()).
			Return(1, nil)

		output, err := s.service.IsAvailable(s.ctx, &IsAvailableInput{
			Service: models.ServiceCarro,
			Date:    "01/12/2099",
		})
		s.Require().NoError(err)
		s.False(output.Available)
	})

	s.Run("storage failure", func() {
		dbErr := errors.New("connection refused")
		s.mockRepo.EXPECT().
			CountActive(gomock.Any(), gomock.Any()).
			Return(0, dbErr)

		output, err := s.service.IsAvailable(s.ctx, &IsAvailableInput{
			Service: models.ServiceCarro,
			Date:    "01/12/2099",
		})
		s.Nil(output)

		var storageErr *StorageError
		s.Require().ErrorAs(err, &storageErr)
		s.Equal("count active reservations", storageErr.Op)
		s.ErrorIs(err, dbErr)
	})

	s.Run("invalid service", func() {
		_, err := s.service.IsAvailable(s.ctx, &IsAvailableInput{Service: "barco", Date: "01/12/2099"})
		s.ErrorIs(err, ErrInvalidService)
	})
}

func (s *ReservationServiceTestSuite) TestIsAvailableAppliesTimeout() {
	s.mockRepo.EXPECT().
		CountActive(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *reservationRepo.CountActiveInput) (int, error) {
			deadline, ok := ctx.Deadline()
			s.True(ok)
			s.WithinDuration(time.Now().Add(time.Second), deadline, 500*time.Millisecond)
			return 0, nil
		})

	_, err := s.service.IsAvailable(s.ctx, &IsAvailableInput{
		Service: models.ServiceChacara,
		Date:    "01/12/2099",
	})
	s.NoError(err)
}

func (s *ReservationServiceTestSuite) TestIsAvailableTimeoutIsStorageError() {
	svc, err := New(&Config{Repository: s.mockRepo, StorageTimeout: 10 * time.Millisecond})
	s.Require().NoError(err)

	s.mockRepo.EXPECT().
		CountActive(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *reservationRepo.CountActiveInput) (int, error) {
			<-ctx.Done()
			return 0, ctx.Err()
		})

	_, err = svc.IsAvailable(s.ctx, &IsAvailableInput{
		Service: models.ServiceChacara,
		Date:    "01/12/2099",
	})

	var storageErr *StorageError
	s.ErrorAs(err, &storageErr)
	s.ErrorIs(err, context.DeadlineExceeded)
}

func (s *ReservationServiceTestSuite) TestSaveReservation() {
	s.Run("success", func() {
		s.mockRepo.EXPECT().
			InsertReservation(gomock.Any(), &reservationRepo.InsertReservationInput{
				Service: models.ServiceChacara,
				Date:    "01/12/2099",
				Contact: "whatsapp:+5511999999999",
			}).
			Return(int64(7), nil)

		output, err := s.service.SaveReservation(s.ctx, &SaveReservationInput{
			Service: models.ServiceChacara,
			Date:    "01/12/2099",
			Contact: "whatsapp:+5511999999999",
		})
		s.Require().NoError(err)
		s.Equal(int64(7), output.ReservationID)
	})

	s.Run("slot taken maps to unavailable", func() {
		s.mockRepo.EXPECT().
			InsertReservation(gomock.Any(), gomock.Any()).
			Return(int64(0), reservationRepo.ErrSlotTaken)

		output, err := s.service.SaveReservation(s.ctx, &SaveReservationInput{
			Service: models.ServiceChacara,
			Date:    "01/12/2099",
			Contact: "whatsapp:+5511999999999",
		})
		s.Nil(output)
		s.ErrorIs(err, ErrUnavailable)
	})

	s.Run("storage failure", func() {
		s.mockRepo.EXPECT().
			InsertReservation(gomock.Any(), gomock.Any()).
			Return(int64(0), errors.New("disk full"))

		_, err := s.service.SaveReservation(s.ctx, &SaveReservationInput{
			Service: models.ServiceCarro,
			Date:    "01/12/2099",
			Contact: "whatsapp:+5511999999999",
		})

		var storageErr *StorageError
		s.Require().ErrorAs(err, &storageErr)
		s.Equal("insert reservation", storageErr.Op)
	})

	s.Run("missing contact", func() {
		_, err := s.service.SaveReservation(s.ctx, &SaveReservationInput{
			Service: models.ServiceCarro,
			Date:    "01/12/2099",
		})
		s.ErrorIs(err, ErrMissingContact)
	})
}

func (s *ReservationServiceTestSuite) TestBookReservation() {
	s.Run("trims requester fields", func() {
		s.mockRepo.EXPECT().
			BookIfAvailable(gomock.Any(), &reservationRepo.InsertReservationInput{
				Service:        models.ServiceCarro,
				Date:           "05/01/2099",
				Contact:        "+5511988887777",
				RequesterName:  "Ana",
				RequesterEmail: "ana@example.com",
			}).
			Return(int64(3), nil)

		output, err := s.service.BookReservation(s.ctx, &SaveReservationInput{
			Service:        models.ServiceCarro,
			Date:           "05/01/2099",
			Contact:        "+5511988887777",
			RequesterName:  "  Ana ",
			RequesterEmail: " ana@example.com",
		})
		s.Require().NoError(err)
		s.Equal(int64(3), output.ReservationID)
	})

	s.Run("conflict", func() {
		s.mockRepo.EXPECT().
			BookIfAvailable(gomock.Any(), gomock.Any()).
			Return(int64(0), reservationRepo.ErrSlotTaken)

		_, err := s.service.BookReservation(s.ctx, &SaveReservationInput{
			Service: models.ServiceCarro,
			Date:    "05/01/2099",
			Contact: "+5511988887777",
		})
		s.ErrorIs(err, ErrUnavailable)
	})

	s.Run("rejects malformed date", func() {
		_, err := s.service.BookReservation(s.ctx, &SaveReservationInput{
			Service: models.ServiceCarro,
			Date:    "2099-01-05",
			Contact: "+5511988887777",
		})
		s.ErrorIs(err, ErrInvalidDate)
	})
}

func (s *ReservationServiceTestSuite) TestListReservations() {
	now := time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
	reservations := []*models.Reservation{
		{ID: 2, Service: models.ServiceCarro, Date: "02/01/2099", Status: models.ReservationStatusPending, CreatedAt: now},
		{ID: 1, Service: models.ServiceChacara, Date: "01/01/2099", Status: models.ReservationStatusPending, CreatedAt: now.Add(-time.Hour)},
	}
	s.mockRepo.EXPECT().ListReservations(gomock.Any()).Return(reservations, nil)

	output, err := s.service.ListReservations(s.ctx, &ListReservationsInput{})
	s.Require().NoError(err)
	s.Equal(reservations, output.Reservations)
}

func (s *ReservationServiceTestSuite) TestListReservationsStorageFailure() {
	s.mockRepo.EXPECT().ListReservations(gomock.Any()).Return(nil, errors.New("boom"))

	_, err := s.service.ListReservations(s.ctx, &ListReservationsInput{})

	var storageErr *StorageError
	s.ErrorAs(err, &storageErr)
}
