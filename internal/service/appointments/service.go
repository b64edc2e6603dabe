package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guelfi/barbershop-booking/internal/domain"
	storage "github.com/guelfi/barbershop-booking/internal/infra/storage/appointment"
	"github.com/guelfi/barbershop-booking/internal/service/appointments/models"
)

// Service handles everything that happens to an appointment after it is
// booked: client consultation and cancellation, and the admin transitions.
type Service struct {
	repo         AppointmentRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService creates the appointments service.
func NewService(repo AppointmentRepository, logger Logger) *Service {
	return &Service{
		repo:         repo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider overrides the clock (for tests).
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByPhone returns the future confirmed appointments for a phone, ordered
// by (date, time).
func (s *Service) GetByPhone(ctx context.Context, req *models.GetByPhoneRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetByPhone: fetching appointments for phone=%s", req.Phone)

	if !domain.PhonePattern.MatchString(req.Phone) {
		s.logger.Warn("GetByPhone: malformed phone=%s", req.Phone)
		return nil, fmt.Errorf("%w: phone must match (DD) DDDDD-DDDD", ErrInvalidInput)
	}

	now := s.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	list, err := s.repo.GetFutureByPhone(ctx, req.Phone, today)
	if err != nil {
		s.logger.Error("GetByPhone: repository error for phone=%s: %v", req.Phone, err)
		return nil, fmt.Errorf("%w: GetByPhone - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetByPhone: found %d appointments for phone=%s", len(list), req.Phone)
	return models.FromDomainAppointmentList(list), nil
}

// Cancel cancels a confirmed appointment. The caller proves ownership with the
// phone; the slot must still be at least the notice period away.
func (s *Service) Cancel(ctx context.Context, id string, req *models.CancelRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%s", id)

	if !domain.PhonePattern.MatchString(req.Phone) {
		s.logger.Warn("Cancel: malformed phone for appointment id=%s", id)
		return fmt.Errorf("%w: phone must match (DD) DDDDD-DDDD", ErrInvalidInput)
	}
	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	appointment, err := s.getByID(ctx, id, "Cancel")
	if err != nil {
		return err
	}

	if appointment.ClientPhone != req.Phone {
		s.logger.Warn("Cancel: phone mismatch for appointment id=%s", id)
		return ErrPhoneMismatch
	}

	if !appointment.IsConfirmed() {
		s.logger.Warn("Cancel: appointment id=%s is %s, cannot cancel", id, appointment.Status)
		return ErrCannotCancel
	}

	if err := s.checkNotice(appointment, ErrTooLateToCancel); err != nil {
		s.logger.Warn("Cancel: appointment id=%s inside the notice window", id)
		return err
	}

	if err := s.repo.Cancel(ctx, id, req.Reason); err != nil {
		if errors.Is(err, storage.ErrAppointmentNotFound) {
			// Lost a race with another transition
			s.logger.Warn("Cancel: appointment id=%s no longer confirmado", id)
			return ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%s", id)
	return nil
}

// UpdateStatus marks a confirmed appointment as concluido or nao_compareceu.
func (s *Service) UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: appointment id=%s to status=%s", id, req.Status)

	status := domain.AppointmentStatus(req.Status)
	if status != domain.StatusCompleted && status != domain.StatusNoShow {
		s.logger.Warn("UpdateStatus: status=%s is not admin-settable", req.Status)
		return ErrInvalidStatus
	}

	appointment, err := s.getByID(ctx, id, "UpdateStatus")
	if err != nil {
		return err
	}

	if !appointment.CanTransitionTo(status) {
		s.logger.Warn("UpdateStatus: transition %s -> %s forbidden for id=%s",
			appointment.Status, status, id)
		return ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, storage.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%s no longer confirmado", id)
			return ErrInvalidTransition
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: appointment id=%s is now %s", id, status)
	return nil
}

// Delete removes an appointment from the ledger. A confirmed appointment can
// only be removed while its slot is still the notice period away; terminal
// appointments can be purged at any time.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: removing appointment id=%s", id)

	appointment, err := s.getByID(ctx, id, "Delete")
	if err != nil {
		return err
	}

	if appointment.IsConfirmed() {
		if err := s.checkNotice(appointment, ErrTooLateToDelete); err != nil {
			s.logger.Warn("Delete: appointment id=%s inside the notice window", id)
			return err
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully removed appointment id=%s", id)
	return nil
}

// Stats aggregates the ledger, optionally bounded by creation date. The
// cancellation rate is the share of cancelled appointments in the range, as a
// percentage with two decimals.
func (s *Service) Stats(ctx context.Context, req *models.StatsRequest) (*models.StatsResponse, error) {
	s.logger.Info("Stats: aggregating appointments")

	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		s.logger.Warn("Stats: period end before period start")
		return nil, fmt.Errorf("%w: period end before period start", ErrInvalidInput)
	}

	// The repository range is [from, to); make the end date inclusive.
	var until *time.Time
	if req.To != nil {
		end := req.To.AddDate(0, 0, 1)
		until = &end
	}

	stats, err := s.repo.GetStats(ctx, req.From, until)
	if err != nil {
		s.logger.Error("Stats: repository error: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %w", ErrInternal, err)
	}

	resp := &models.StatsResponse{
		Total:            stats.Total,
		Confirmed:        stats.Confirmed,
		Cancelled:        stats.Cancelled,
		Completed:        stats.Completed,
		NoShows:          stats.NoShow,
		TotalRevenue:     stats.TotalRevenue,
		AverageTicket:    stats.AverageTicket.Round(2),
		CancellationRate: decimal.Zero,
	}

	if stats.Total > 0 {
		resp.CancellationRate = decimal.NewFromInt(int64(stats.Cancelled)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(stats.Total))).
			Round(2)
	}

	return resp, nil
}

// getByID loads the appointment, mapping storage not-found to the service
// sentinel.
func (s *Service) getByID(ctx context.Context, id string, method string) (*domain.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%s not found", method, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%s: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, method, err)
	}
	return appointment, nil
}

// checkNotice enforces the cancellation notice: the slot must be at least
// CancellationNoticeHours away. Exactly at the cutoff still passes.
func (s *Service) checkNotice(appointment *domain.Appointment, lateErr error) error {
	instant, err := appointment.SlotInstant()
	if err != nil {
		return fmt.Errorf("%w: corrupt slot time: %w", ErrInternal, err)
	}

	cutoff := time.Duration(domain.CancellationNoticeHours) * time.Hour
	if instant.Sub(s.timeProvider.Now()) < cutoff {
		return lateErr
	}
	return nil
}
