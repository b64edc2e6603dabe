package appointments

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guelfi/barbershop-booking/internal/domain"
	storage "github.com/guelfi/barbershop-booking/internal/infra/storage/appointment"
	"github.com/guelfi/barbershop-booking/internal/infra/storage/inmemory"
	"github.com/guelfi/barbershop-booking/internal/service/appointments/models"
	"github.com/guelfi/barbershop-booking/pkg/types"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	monday = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	phone  = "(11) 98888-7777"
)

var codeSeq int

func seed(t *testing.T, repo *inmemory.Repository, date time.Time, start types.TimeString, status domain.AppointmentStatus) string {
	t.Helper()
	codeSeq++
	id := uuid.NewString()
	_, err := repo.Create(context.Background(), &domain.Appointment{
		ID:               id,
		ConfirmationCode: fmt.Sprintf("BS17182800%03d", codeSeq),
		ClientName:       "Marcos Silva",
		ClientPhone:      phone,
		ServiceCode:      domain.ServiceCorte,
		ServiceName:      "Corte Social",
		Date:             date,
		StartTime:        start,
		DurationMinutes:  30,
		Price:            decimal.NewFromInt(45),
		Status:           status,
	})
	require.NoError(t, err)
	return id
}

func newTestService(clock *fakeClock) (*Service, *inmemory.Repository) {
	repo := inmemory.NewRepository()
	return NewService(repo, nopLogger{}).WithTimeProvider(clock), repo
}

func TestGetByPhone(t *testing.T) {
	clock := &fakeClock{now: monday.Add(8 * time.Hour)}
	svc, repo := newTestService(clock)

	seed(t, repo, monday, "15:00", domain.StatusConfirmed)
	seed(t, repo, monday.AddDate(0, 0, 2), "10:00", domain.StatusConfirmed)
	seed(t, repo, monday, "09:00", domain.StatusCancelled)           // cancelled, hidden
	seed(t, repo, monday.AddDate(0, 0, -7), "10:00", domain.StatusConfirmed) // past, hidden

	resp, err := svc.GetByPhone(context.Background(), &models.GetByPhoneRequest{Phone: phone})
	require.NoError(t, err)

	require.Equal(t, 2, resp.Total)
	assert.Equal(t, "15:00", resp.Appointments[0].StartTime)
	assert.Equal(t, "2024-06-12", resp.Appointments[1].Date)
}

func TestGetByPhone_MalformedPhone(t *testing.T) {
	clock := &fakeClock{now: monday}
	svc, _ := newTestService(clock)

	_, err := svc.GetByPhone(context.Background(), &models.GetByPhoneRequest{Phone: "11988887777"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel_Success(t *testing.T) {
	clock := &fakeClock{now: monday.Add(8 * time.Hour)} // 08:00, slot at 15:00
	svc, repo := newTestService(clock)
	id := seed(t, repo, monday, "15:00", domain.StatusConfirmed)

	err := svc.Cancel(context.Background(), id, &models.CancelRequest{
		Phone:  phone,
		Reason: "imprevisto no trabalho",
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
	require.NotNil(t, stored.CancellationReason)
	assert.Equal(t, "imprevisto no trabalho", *stored.CancellationReason)
}

func TestCancel_NoticeWindow(t *testing.T) {
	svc15 := func(now time.Time) (*Service, string) {
		clock := &fakeClock{now: now}
		svc, repo := newTestService(clock)
		return svc, seed(t, repo, monday, "15:00", domain.StatusConfirmed)
	}

	t.Run("exactly 2h ahead still cancels", func(t *testing.T) {
		svc, id := svc15(monday.Add(13 * time.Hour))
		assert.NoError(t, svc.Cancel(context.Background(), id, &models.CancelRequest{Phone: phone}))
	})

	t.Run("1h59m ahead is too late", func(t *testing.T) {
		svc, id := svc15(monday.Add(13*time.Hour + time.Minute))
		err := svc.Cancel(context.Background(), id, &models.CancelRequest{Phone: phone})
		assert.ErrorIs(t, err, ErrTooLateToCancel)
	})
}

func TestCancel_PhoneMismatch(t *testing.T) {
	clock := &fakeClock{now: monday.Add(8 * time.Hour)}
	svc, repo := newTestService(clock)
	id := seed(t, repo, monday, "15:00", domain.StatusConfirmed)

	err := svc.Cancel(context.Background(), id, &models.CancelRequest{Phone: "(21) 97777-6666"})
	assert.ErrorIs(t, err, ErrPhoneMismatch)
}

func TestCancel_NotFound(t *testing.T) {
	clock := &fakeClock{now: monday}
	svc, _ := newTestService(clock)

	err := svc.Cancel(context.Background(), uuid.NewString(), &models.CancelRequest{Phone: phone})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancel_AlreadyTerminal(t *testing.T) {
	clock := &fakeClock{now: monday.Add(8 * time.Hour)}
	svc, repo := newTestService(clock)
	id := seed(t, repo, monday, "15:00", domain.StatusCancelled)

	err := svc.Cancel(context.Background(), id, &models.CancelRequest{Phone: phone})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestUpdateStatus(t *testing.T) {
	clock := &fakeClock{now: monday.Add(20 * time.Hour)}

	t.Run("concluido", func(t *testing.T) {
		svc, repo := newTestService(clock)
		id := seed(t, repo, monday, "15:00", domain.StatusConfirmed)

		require.NoError(t, svc.UpdateStatus(context.Background(), id, &models.UpdateStatusRequest{Status: "concluido"}))

		stored, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, stored.Status)
	})

	t.Run("nao_compareceu", func(t *testing.T) {
		svc, repo := newTestService(clock)
		id := seed(t, repo, monday, "15:00", domain.StatusConfirmed)

		require.NoError(t, svc.UpdateStatus(context.Background(), id, &models.UpdateStatusRequest{Status: "nao_compareceu"}))
	})

	t.Run("cancelado is not admin-settable", func(t *testing.T) {
		svc, repo := newTestService(clock)
		id := seed(t, repo, monday, "15:00", domain.StatusConfirmed)

		err := svc.UpdateStatus(context.Background(), id, &models.UpdateStatusRequest{Status: "cancelado"})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("unknown status", func(t *testing.T) {
		svc, repo := newTestService(clock)
		id := seed(t, repo, monday, "15:00", domain.StatusConfirmed)

		err := svc.UpdateStatus(context.Background(), id, &models.UpdateStatusRequest{Status: "finalizado"})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("terminal state absorbs", func(t *testing.T) {
		svc, repo := newTestService(clock)
		id := seed(t, repo, monday, "15:00", domain.StatusCompleted)

		err := svc.UpdateStatus(context.Background(), id, &models.UpdateStatusRequest{Status: "nao_compareceu"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

// timeoutRepo fails the consultation with a driver timeout wrapped the way
// the Postgres repository wraps one.
type timeoutRepo struct {
	AppointmentRepository
}

func (timeoutRepo) GetFutureByPhone(context.Context, string, time.Time) ([]*domain.Appointment, error) {
	return nil, fmt.Errorf("%w: GetFutureByPhone - execute query: %w",
		storage.ErrExecQuery, context.DeadlineExceeded)
}

func TestGetByPhone_StorageTimeoutStaysVisible(t *testing.T) {
	svc := NewService(timeoutRepo{}, nopLogger{}).WithTimeProvider(&fakeClock{now: monday})

	_, err := svc.GetByPhone(context.Background(), &models.GetByPhoneRequest{Phone: phone})

	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStats(t *testing.T) {
	clock := &fakeClock{now: monday.Add(8 * time.Hour)}
	svc, repo := newTestService(clock)
	repo.SetNowFunc(func() time.Time { return monday })

	seed(t, repo, monday, "09:00", domain.StatusConfirmed)
	seed(t, repo, monday, "10:00", domain.StatusCancelled)
	seed(t, repo, monday, "11:00", domain.StatusCompleted)
	seed(t, repo, monday, "13:00", domain.StatusNoShow)

	resp, err := svc.Stats(context.Background(), &models.StatsRequest{})
	require.NoError(t, err)

	assert.Equal(t, 4, resp.Total)
	assert.Equal(t, 1, resp.Confirmed)
	assert.Equal(t, 1, resp.Cancelled)
	assert.Equal(t, 1, resp.Completed)
	assert.Equal(t, 1, resp.NoShows)
	assert.Equal(t, "180", resp.TotalRevenue.String())
	assert.Equal(t, "45", resp.AverageTicket.String())
	assert.Equal(t, "25", resp.CancellationRate.String())
}

func TestStats_Period(t *testing.T) {
	clock := &fakeClock{now: monday.Add(8 * time.Hour)}
	svc, repo := newTestService(clock)

	repo.SetNowFunc(func() time.Time { return monday.AddDate(0, 0, -10) })
	seed(t, repo, monday.AddDate(0, 0, -10), "09:00", domain.StatusCompleted) // before the period
	repo.SetNowFunc(func() time.Time { return monday })
	seed(t, repo, monday, "10:00", domain.StatusConfirmed)

	from := monday.AddDate(0, 0, -7)
	to := monday

	t.Run("bounds filter by creation date, end inclusive", func(t *testing.T) {
		resp, err := svc.Stats(context.Background(), &models.StatsRequest{From: &from, To: &to})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Total)
		assert.Equal(t, 1, resp.Confirmed)
	})

	t.Run("inverted period rejects", func(t *testing.T) {
		_, err := svc.Stats(context.Background(), &models.StatsRequest{From: &to, To: &from})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("empty range divides safely", func(t *testing.T) {
		past := monday.AddDate(-1, 0, 0)
		dayAfter := past.AddDate(0, 0, 1)
		resp, err := svc.Stats(context.Background(), &models.StatsRequest{From: &past, To: &dayAfter})
		require.NoError(t, err)
		assert.Equal(t, 0, resp.Total)
		assert.Equal(t, "0", resp.CancellationRate.String())
		assert.Equal(t, "0", resp.AverageTicket.String())
	})
}

func TestDelete(t *testing.T) {
	t.Run("terminal appointment deletes any time", func(t *testing.T) {
		clock := &fakeClock{now: monday.Add(20 * time.Hour)}
		svc, repo := newTestService(clock)
		id := seed(t, repo, monday, "15:00", domain.StatusCancelled)

		require.NoError(t, svc.Delete(context.Background(), id))

		_, err := repo.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, storage.ErrAppointmentNotFound)
	})

	t.Run("confirmed far from slot deletes", func(t *testing.T) {
		clock := &fakeClock{now: monday.Add(8 * time.Hour)}
		svc, repo := newTestService(clock)
		id := seed(t, repo, monday, "15:00", domain.StatusConfirmed)

		assert.NoError(t, svc.Delete(context.Background(), id))
	})

	t.Run("confirmed inside notice window refuses", func(t *testing.T) {
		clock := &fakeClock{now: monday.Add(14 * time.Hour)}
		svc, repo := newTestService(clock)
		id := seed(t, repo, monday, "15:00", domain.StatusConfirmed)

		err := svc.Delete(context.Background(), id)
		assert.ErrorIs(t, err, ErrTooLateToDelete)
	})

	t.Run("missing appointment", func(t *testing.T) {
		clock := &fakeClock{now: monday}
		svc, _ := newTestService(clock)

		err := svc.Delete(context.Background(), uuid.NewString())
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}
