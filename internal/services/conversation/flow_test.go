package conversation

import (
	"context"
	"sync"
	"testing"

	"github.com/KirkDiggler/reservas/internal/common/clock"
	"github.com/KirkDiggler/reservas/internal/models"
	lockRepo "github.com/KirkDiggler/reservas/internal/repositories/lock"
	reservationRepo "github.com/KirkDiggler/reservas/internal/repositories/reservation"
	sessionRepo "github.com/KirkDiggler/reservas/internal/repositories/session"
	"github.com/KirkDiggler/reservas/internal/services/reservation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flowFixture struct {
	service      *service
	sessions     sessionRepo.Repository
	reservations reservationRepo.Repository
}

func newFlowFixture(t *testing.T) *flowFixture {
	t.Helper()

	reservations, err := reservationRepo.NewMemory(&reservationRepo.MemoryConfig{Clock: clock.New()})
	require.NoError(t, err)

	reservationService, err := reservation.New(&reservation.Config{Repository: reservations})
	require.NoError(t, err)

	sessions := sessionRepo.NewMemory()
	svc, err := New(&Config{
		SessionRepository:  sessions,
		LockRepository:     lockRepo.NewMemory(),
		ReservationService: reservationService,
	})
	require.NoError(t, err)

	return &flowFixture{service: svc, sessions: sessions, reservations: reservations}
}

func (f *flowFixture) send(t *testing.T, sender, text string) *HandleInboundMessageOutput {
	t.Helper()

	output, err := f.service.HandleInboundMessage(context.Background(), &HandleInboundMessageInput{
		SenderID: sender,
		Text:     text,
	})
	require.NoError(t, err)
	return output
}

func TestFullReservationFlow(t *testing.T) {
	f := newFlowFixture(t)
	sender := "whatsapp:+5511999999999"

	assert.Equal(t, replyServiceMenu, f.send(t, sender, "reservar").Reply)
	assert.Equal(t, replyAskDate(models.ServiceChacara), f.send(t, sender, "1").Reply)
	assert.Equal(t, replyConfirm(models.ServiceChacara, "01/12/2099"), f.send(t, sender, "01/12/2099").Reply)
	assert.Equal(t, replySaved(models.ServiceChacara, "01/12/2099"), f.send(t, sender, "sim").Reply)

	list, err := f.reservations.ListReservations(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.ServiceChacara, list[0].Service)
	assert.Equal(t, "01/12/2099", list[0].Date)
	assert.Equal(t, sender, list[0].Contact)
	assert.Equal(t, models.ReservationStatusPending, list[0].Status)

	session, err := f.sessions.GetSession(context.Background(), &sessionRepo.GetSessionInput{SenderID: sender})
	require.NoError(t, err)
	assert.Equal(t, models.StepInitial, session.Step)
}

func TestBookedSlotIsNeverOfferedAgain(t *testing.T) {
	f := newFlowFixture(t)
	first := "whatsapp:+5511999999999"
	second := "whatsapp:+5511888888888"

	for _, text := range []string{"reservar", "2", "10/10/2099", "sim"} {
		f.send(t, first, text)
	}

	f.send(t, second, "reservar")
	f.send(t, second, "carro")
	output := f.send(t, second, "10/10/2099")

	assert.Equal(t, replyUnavailable(models.ServiceCarro), output.Reply)
	assert.Equal(t, models.StepAwaitingDate, output.Step)

	// Anything that is not a date keeps the sender waiting for one
	output = f.send(t, second, "não")
	assert.Equal(t, replyDateFormat, output.Reply)
	assert.Equal(t, models.StepAwaitingDate, output.Step)

	// A different service on the same date is still free
	third := "whatsapp:+5511777777777"
	f.send(t, third, "reservar")
	f.send(t, third, "1")
	output = f.send(t, third, "10/10/2099")
	assert.Equal(t, replyConfirm(models.ServiceChacara, "10/10/2099"), output.Reply)
	assert.Equal(t, models.StepConfirming, output.Step)
}

func TestConcurrentConfirmationsBookOnce(t *testing.T) {
	f := newFlowFixture(t)
	senders := []string{"a", "b", "c", "d", "e"}

	// Every sender is offered the same free slot before anyone confirms
	for _, sender := range senders {
		f.send(t, sender, "reservar")
		f.send(t, sender, "1")
		require.Equal(t, models.StepConfirming, f.send(t, sender, "25/12/2099").Step)
	}

	var wg sync.WaitGroup
	steps := make(chan models.Step, len(senders))
	for _, sender := range senders {
		wg.Add(1)
		go func(sender string) {
			defer wg.Done()
			output, err := f.service.HandleInboundMessage(context.Background(), &HandleInboundMessageInput{
				SenderID: sender,
				Text:     "sim",
			})
			if err == nil {
				steps <- output.Step
			}
		}(sender)
	}
	wg.Wait()
	close(steps)

	var booked, bounced int
	for step := range steps {
		switch step {
		case models.StepInitial:
			booked++
		case models.StepAwaitingDate:
			bounced++
		}
	}
	assert.Equal(t, 1, booked)
	assert.Equal(t, len(senders)-1, bounced)

	list, err := f.reservations.ListReservations(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
