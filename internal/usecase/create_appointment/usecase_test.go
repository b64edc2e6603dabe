package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guelfi/barbershop-booking/internal/domain"
	storage "github.com/guelfi/barbershop-booking/internal/infra/storage/appointment"
	"github.com/guelfi/barbershop-booking/internal/infra/storage/inmemory"
	"github.com/guelfi/barbershop-booking/internal/service/abuseguard"
	"github.com/guelfi/barbershop-booking/pkg/ptr"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type stubGuard struct {
	err   error
	calls int32
}

func (g *stubGuard) Check(context.Context, string, string) error {
	atomic.AddInt32(&g.calls, 1)
	return g.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// monday is a regular working day in the default schedule.
var monday = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

func newTestUseCase(guard AbuseGuard, clock *fakeClock) (*UseCase, *inmemory.Repository) {
	repo := inmemory.NewRepository()
	return NewUseCase(
		repo,
		guard,
		inmemory.NewTxManager(),
		domain.DefaultServiceCatalog(),
		domain.DefaultScheduleConfig(),
		nopLogger{},
	).WithTimeProvider(clock), repo
}

func validRequest() *Request {
	return &Request{
		ClientName:  "Marcos Silva",
		ClientPhone: "(11) 98888-7777",
		ServiceCode: "corte",
		Date:        monday,
		StartTime:   "10:00",
		Notes:       ptr.Ptr("primeira visita"),
		ClientIP:    "203.0.113.7",
	}
}

func TestExecute_Success(t *testing.T) {
	clock := &fakeClock{now: monday.Add(8 * time.Hour)}
	uc, _ := newTestUseCase(&stubGuard{}, clock)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Regexp(t, domain.ConfirmationCodePattern, resp.ConfirmationCode)
	assert.Equal(t, "Marcos Silva", resp.ClientName)
	assert.Equal(t, "corte", resp.ServiceCode)
	assert.Equal(t, "Corte Social", resp.ServiceName)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, "45", resp.Price.String())
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestExecute_SlotAlreadyTaken(t *testing.T) {
	clock := &fakeClock{now: monday.Add(8 * time.Hour)}
	uc, _ := newTestUseCase(&stubGuard{}, clock)
	ctx := context.Background()

	_, err := uc.Execute(ctx, validRequest())
	require.NoError(t, err)

	// different client, same slot
	req := validRequest()
	req.ClientName = "João Pereira"
	req.ClientPhone = "(21) 97777-6666"

	_, err = uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_ConcurrentSameSlot_ExactlyOneWins(t *testing.T) {
	clock := &fakeClock{now: monday.Add(8 * time.Hour)}
	uc, _ := newTestUseCase(&stubGuard{}, clock)

	const attempts = 8

	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest()
			req.ClientPhone = fmt.Sprintf("(11) 9%04d-%04d", i, i)
			req.ClientIP = fmt.Sprintf("203.0.113.%d", i+1)
			_, results[i] = uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	won, lost := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			won++
		case errors.Is(err, ErrSlotNotAvailable):
			lost++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, won)
	assert.Equal(t, attempts-1, lost)
}

func TestExecute_GuardRejections(t *testing.T) {
	clock := &fakeClock{now: monday.Add(8 * time.Hour)}

	tests := []struct {
		name     string
		guardErr error
		wantErr  error
	}{
		{"rate limited", abuseguard.ErrRateLimited, ErrRateLimited},
		{"quota exceeded", abuseguard.ErrQuotaExceeded, ErrQuotaExceeded},
		{"guard failure", abuseguard.ErrInternal, ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newTestUseCase(&stubGuard{err: tt.guardErr}, clock)

			_, err := uc.Execute(context.Background(), validRequest())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_GatesRunBeforeGuard(t *testing.T) {
	clock := &fakeClock{now: monday.Add(8 * time.Hour)}

	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{"malformed phone", func(r *Request) { r.ClientPhone = "11988887777" }, ErrInvalidInput},
		{"unknown service", func(r *Request) { r.ServiceCode = "platinado" }, ErrUnknownService},
		{"past date", func(r *Request) { r.Date = monday.AddDate(0, 0, -3) }, ErrInvalidDate},
		{"slot already passed", func(r *Request) { r.StartTime = "08:00" }, ErrTooLateToBook},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guard := &stubGuard{err: abuseguard.ErrRateLimited}
			uc, _ := newTestUseCase(guard, clock)

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, atomic.LoadInt32(&guard.calls),
				"a request rejected by the gates must not consume an attempt")
		})
	}
}

// collideOnCreate wraps the ledger so the first n inserts report a
// confirmation code collision, the way the unique index does.
type collideOnCreate struct {
	*inmemory.Repository
	mu        sync.Mutex
	remaining int
}

func (r *collideOnCreate) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	r.mu.Lock()
	collide := r.remaining > 0
	if collide {
		r.remaining--
	}
	r.mu.Unlock()

	if collide {
		return nil, storage.ErrDuplicateConfirmationCode
	}
	return r.Repository.Create(ctx, a)
}

type countingTxManager struct {
	inner TransactionManager
	runs  int32
}

func (m *countingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	atomic.AddInt32(&m.runs, 1)
	return m.inner.DoSerializable(ctx, fn)
}

func TestExecute_CodeCollisionRetriesInFreshTransaction(t *testing.T) {
	clock := &fakeClock{now: monday.Add(8 * time.Hour)}
	repo := &collideOnCreate{Repository: inmemory.NewRepository(), remaining: 2}
	tx := &countingTxManager{inner: inmemory.NewTxManager()}

	uc := NewUseCase(
		repo,
		&stubGuard{},
		tx,
		domain.DefaultServiceCatalog(),
		domain.DefaultScheduleConfig(),
		nopLogger{},
	).WithTimeProvider(clock)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Regexp(t, domain.ConfirmationCodePattern, resp.ConfirmationCode)
	// each collision rolled its transaction back; every retry opened a new one
	assert.Equal(t, int32(3), atomic.LoadInt32(&tx.runs))
}

func TestExecute_CodeCollisionsExhausted(t *testing.T) {
	clock := &fakeClock{now: monday.Add(8 * time.Hour)}
	repo := &collideOnCreate{Repository: inmemory.NewRepository(), remaining: maxCodeAttempts}
	tx := &countingTxManager{inner: inmemory.NewTxManager()}

	uc := NewUseCase(
		repo,
		&stubGuard{},
		tx,
		domain.DefaultServiceCatalog(),
		domain.DefaultScheduleConfig(),
		nopLogger{},
	).WithTimeProvider(clock)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, int32(maxCodeAttempts), atomic.LoadInt32(&tx.runs))
}

func TestExecute_UnknownService(t *testing.T) {
	clock := &fakeClock{now: monday.Add(8 * time.Hour)}
	uc, _ := newTestUseCase(&stubGuard{}, clock)

	req := validRequest()
	req.ServiceCode = "platinado"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrUnknownService)
}

func TestExecute_PastDate(t *testing.T) {
	clock := &fakeClock{now: monday.Add(8 * time.Hour)}
	uc, _ := newTestUseCase(&stubGuard{}, clock)

	req := validRequest()
	req.Date = monday.AddDate(0, 0, -3) // previous friday

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_SlotAlreadyPassedToday(t *testing.T) {
	// 14:30 on the appointment day, trying to book the 10:00 slot
	clock := &fakeClock{now: monday.Add(14*time.Hour + 30*time.Minute)}
	uc, _ := newTestUseCase(&stubGuard{}, clock)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_ClosedDay(t *testing.T) {
	clock := &fakeClock{now: monday.Add(8 * time.Hour)}
	uc, _ := newTestUseCase(&stubGuard{}, clock)

	req := validRequest()
	req.Date = monday.AddDate(0, 0, 6) // sunday

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrShopClosed)
}

func TestExecute_LunchBreakSlot(t *testing.T) {
	clock := &fakeClock{now: monday.Add(8 * time.Hour)}
	uc, _ := newTestUseCase(&stubGuard{}, clock)

	req := validRequest()
	req.StartTime = "12:00"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_OffGridTime(t *testing.T) {
	clock := &fakeClock{now: monday.Add(8 * time.Hour)}
	uc, _ := newTestUseCase(&stubGuard{}, clock)

	req := validRequest()
	req.StartTime = "10:15"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_InvalidInput(t *testing.T) {
	clock := &fakeClock{now: monday.Add(8 * time.Hour)}
	uc, _ := newTestUseCase(&stubGuard{}, clock)
	ctx := context.Background()

	t.Run("missing name", func(t *testing.T) {
		req := validRequest()
		req.ClientName = "   "
		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("malformed phone", func(t *testing.T) {
		req := validRequest()
		req.ClientPhone = "11988887777"
		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("malformed time", func(t *testing.T) {
		req := validRequest()
		req.StartTime = "25:99"
		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
