package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/guelfi/barbershop-booking/internal/domain"
	storage "github.com/guelfi/barbershop-booking/internal/infra/storage/appointment"
	"github.com/guelfi/barbershop-booking/internal/service/abuseguard"
	"github.com/guelfi/barbershop-booking/pkg/types"
)

// UseCase books an appointment: validation and calendar gates first, then the
// abuse checks, then a serializable transaction that re-validates the slot
// against the ledger and inserts.
type UseCase struct {
	repo         AppointmentRepository
	guard        AbuseGuard
	txManager    TransactionManager
	catalog      *domain.ServiceCatalog
	schedule     domain.ScheduleConfig
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the usecase.
func NewUseCase(
	repo AppointmentRepository,
	guard AbuseGuard,
	txManager TransactionManager,
	catalog *domain.ServiceCatalog,
	schedule domain.ScheduleConfig,
	logger Logger,
) *UseCase {
	return &UseCase{
		repo:         repo,
		guard:        guard,
		txManager:    txManager,
		catalog:      catalog,
		schedule:     schedule,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider overrides the clock (for tests).
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute books the slot. Under concurrent attempts for the same (date, time)
// exactly one caller succeeds; the rest get ErrSlotNotAvailable.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: phone=%s, service=%s, date=%s, time=%s",
		req.ClientPhone, req.ServiceCode, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Shape validation
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Service must exist in the catalog
	service, ok := uc.catalog.Get(domain.ServiceCode(req.ServiceCode))
	if !ok {
		uc.logger.Warn("CreateAppointment: unknown service code=%s", req.ServiceCode)
		return nil, ErrUnknownService
	}

	// 3. Date must not be in the past
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}

	// 4. The slot instant itself must still be ahead of us
	slotInstant, err := req.StartTime.At(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time: %w", ErrInvalidInput, err)
	}
	if !slotInstant.After(now) {
		uc.logger.Warn("CreateAppointment: slot %s %s already passed",
			req.Date.Format(domain.DateFormat), req.StartTime)
		return nil, ErrTooLateToBook
	}

	// 5. Abuse checks run last among the gates: a request that would be
	// rejected anyway never burns a rate-limit token or a quota read.
	if err := uc.guard.Check(ctx, req.ClientIP, req.ClientPhone); err != nil {
		switch {
		case errors.Is(err, abuseguard.ErrRateLimited):
			uc.logger.Warn("CreateAppointment: rate limited, addr=%s", req.ClientIP)
			return nil, ErrRateLimited
		case errors.Is(err, abuseguard.ErrQuotaExceeded):
			uc.logger.Warn("CreateAppointment: quota exceeded, phone=%s", req.ClientPhone)
			return nil, ErrQuotaExceeded
		default:
			uc.logger.Error("CreateAppointment: abuse guard failure: %v", err)
			return nil, fmt.Errorf("%w: abuse guard failure: %w", ErrInternal, err)
		}
	}

	// 6. Availability re-check and insert share one serializable transaction,
	// so two racing requests for the same slot cannot both commit. A
	// confirmation code collision aborts that transaction on the server side,
	// so the retry regenerates the code and starts a fresh transaction rather
	// than issuing more statements on an aborted one.
	var result *domain.Appointment
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code, genErr := generateConfirmationCode(now)
		if genErr != nil {
			uc.logger.Error("CreateAppointment: code generation failed: %v", genErr)
			return nil, fmt.Errorf("%w: code generation failed: %w", ErrInternal, genErr)
		}

		result, err = uc.bookSlot(ctx, req, service, code)
		if errors.Is(err, storage.ErrDuplicateConfirmationCode) {
			uc.logger.Warn("CreateAppointment: code collision on %s (attempt %d/%d)",
				code, attempt, maxCodeAttempts)
			continue
		}
		break
	}

	if errors.Is(err, storage.ErrDuplicateConfirmationCode) {
		uc.logger.Error("CreateAppointment: confirmation code collisions exhausted %d attempts", maxCodeAttempts)
		return nil, fmt.Errorf("%w: could not allocate a unique confirmation code", ErrInternal)
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: created id=%s code=%s", result.ID, result.ConfirmationCode)

	return &Response{
		ID:               result.ID,
		ConfirmationCode: result.ConfirmationCode,
		ClientName:       result.ClientName,
		ClientPhone:      result.ClientPhone,
		ServiceCode:      string(result.ServiceCode),
		ServiceName:      result.ServiceName,
		Date:             result.Date,
		StartTime:        result.StartTime,
		DurationMinutes:  result.DurationMinutes,
		Price:            result.Price,
		Status:           string(result.Status),
		Notes:            result.Notes,
		CreatedAt:        result.CreatedAt,
		UpdatedAt:        result.UpdatedAt,
	}, nil
}

// bookSlot runs the calendar checks, the locked availability re-read and the
// insert inside one serializable transaction. A duplicate confirmation code
// is passed through as storage.ErrDuplicateConfirmationCode so the caller can
// retry with a fresh code in a fresh transaction.
func (uc *UseCase) bookSlot(
	ctx context.Context,
	req *Request,
	service domain.ServiceCatalogEntry,
	code string,
) (*domain.Appointment, error) {
	var result *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if !uc.schedule.IsWorkingDay(req.Date) {
			uc.logger.Warn("CreateAppointment: shop closed on %s", req.Date.Format(domain.DateFormat))
			return ErrShopClosed
		}

		if !slotExists(uc.schedule.SlotsForDate(req.Date), req.StartTime) {
			uc.logger.Warn("CreateAppointment: %s is not a bookable slot", req.StartTime)
			return ErrInvalidTimeSlot
		}

		// FOR UPDATE inside the transaction
		existing, err := uc.repo.GetConfirmedByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to load confirmed appointments: %v", err)
			return fmt.Errorf("%w: failed to load confirmed appointments: %w", ErrInternal, err)
		}

		for _, appt := range existing {
			if appt.StartTime == req.StartTime {
				uc.logger.Warn("CreateAppointment: slot %s %s already taken",
					req.Date.Format(domain.DateFormat), req.StartTime)
				return ErrSlotNotAvailable
			}
		}

		appointment := &domain.Appointment{
			ID:               uuid.NewString(),
			ConfirmationCode: code,
			ClientName:       strings.TrimSpace(req.ClientName),
			ClientPhone:      req.ClientPhone,
			ServiceCode:      service.Code,
			ServiceName:      service.Name,
			Date:             req.Date,
			StartTime:        req.StartTime,
			DurationMinutes:  service.DurationMinutes,
			Price:            service.Price,
			Status:           domain.StatusConfirmed,
			Notes:            req.Notes,
			ClientIP:         req.ClientIP,
		}

		created, err := uc.repo.Create(txCtx, appointment)
		switch {
		case err == nil:
			result = created
			return nil
		case errors.Is(err, storage.ErrDuplicateConfirmationCode):
			return err
		case errors.Is(err, storage.ErrSlotTaken):
			// Unique index caught a race the re-check missed
			return ErrSlotNotAvailable
		default:
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

// slotExists reports whether target is in slots.
func slotExists(slots []types.TimeString, target types.TimeString) bool {
	for _, s := range slots {
		if s == target {
			return true
		}
	}
	return false
}
