// Package inmemory provides a mutex-guarded appointment ledger for tests and
// local development. It honors the same contract and sentinel errors as the
// Postgres repository, including the exactly-one-winner guarantee for a
// contested slot.
package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guelfi/barbershop-booking/internal/domain"
	storage "github.com/guelfi/barbershop-booking/internal/infra/storage/appointment"
)

type slotKey struct {
	date string
	time string
}

// Repository is an in-memory appointment ledger.
type Repository struct {
	mu      sync.Mutex
	byID    map[string]*domain.Appointment
	slots   map[slotKey]string // confirmed slot -> appointment id
	codes   map[string]bool    // confirmation codes ever issued
	nowFunc func() time.Time
}

// NewRepository creates an empty ledger.
func NewRepository() *Repository {
	return &Repository{
		byID:    make(map[string]*domain.Appointment),
		slots:   make(map[slotKey]string),
		codes:   make(map[string]bool),
		nowFunc: time.Now,
	}
}

// SetNowFunc overrides the clock used for created_at timestamps in tests.
func (r *Repository) SetNowFunc(f func() time.Time) {
	r.nowFunc = f
}

func keyFor(a *domain.Appointment) slotKey {
	return slotKey{date: a.Date.Format(domain.DateFormat), time: a.StartTime.String()}
}

// Create inserts the appointment, enforcing the confirmed-slot and
// confirmation-code uniqueness under a single lock.
func (r *Repository) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.Status == domain.StatusConfirmed {
		if _, taken := r.slots[keyFor(a)]; taken {
			return nil, storage.ErrSlotTaken
		}
	}
	if r.codes[a.ConfirmationCode] {
		return nil, storage.ErrDuplicateConfirmationCode
	}

	now := r.nowFunc()
	stored := *a
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.byID[stored.ID] = &stored
	r.codes[stored.ConfirmationCode] = true
	if stored.Status == domain.StatusConfirmed {
		r.slots[keyFor(&stored)] = stored.ID
	}

	a.CreatedAt = now
	a.UpdatedAt = now
	return a, nil
}

// GetByID fetches an appointment copy by id.
func (r *Repository) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, storage.ErrAppointmentNotFound
	}
	copied := *a
	return &copied, nil
}

// GetConfirmedByDate returns confirmed appointments for the date ordered by
// start time.
func (r *Repository) GetConfirmedByDate(_ context.Context, date time.Time) ([]*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	day := date.Format(domain.DateFormat)
	out := make([]*domain.Appointment, 0)
	for _, a := range r.byID {
		if a.Status == domain.StatusConfirmed && a.Date.Format(domain.DateFormat) == day {
			copied := *a
			out = append(out, &copied)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.IsBefore(out[j].StartTime)
	})
	return out, nil
}

// GetFutureByPhone returns confirmed appointments for the phone on or after
// fromDate, ordered by (date, time).
func (r *Repository) GetFutureByPhone(_ context.Context, phone string, fromDate time.Time) ([]*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	from := fromDate.Format(domain.DateFormat)
	out := make([]*domain.Appointment, 0)
	for _, a := range r.byID {
		if a.Status != domain.StatusConfirmed || a.ClientPhone != phone {
			continue
		}
		if a.Date.Format(domain.DateFormat) < from {
			continue
		}
		copied := *a
		out = append(out, &copied)
	}

	sort.Slice(out, func(i, j int) bool {
		di, dj := out[i].Date.Format(domain.DateFormat), out[j].Date.Format(domain.DateFormat)
		if di != dj {
			return di < dj
		}
		return out[i].StartTime.IsBefore(out[j].StartTime)
	})
	return out, nil
}

// CountConfirmedCreatedSince counts confirmed appointments for the phone
// created at or after since.
func (r *Repository) CountConfirmedCreatedSince(_ context.Context, phone string, since time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, a := range r.byID {
		if a.Status == domain.StatusConfirmed && a.ClientPhone == phone && !a.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// GetStats aggregates counts per status, gross revenue and average ticket
// over the optional creation-time range (from inclusive, to exclusive).
func (r *Repository) GetStats(_ context.Context, from, to *time.Time) (*domain.AppointmentStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := &domain.AppointmentStats{
		TotalRevenue:  decimal.Zero,
		AverageTicket: decimal.Zero,
	}

	for _, a := range r.byID {
		if from != nil && a.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && !a.CreatedAt.Before(*to) {
			continue
		}

		stats.Total++
		switch a.Status {
		case domain.StatusConfirmed:
			stats.Confirmed++
		case domain.StatusCancelled:
			stats.Cancelled++
		case domain.StatusCompleted:
			stats.Completed++
		case domain.StatusNoShow:
			stats.NoShow++
		}
		stats.TotalRevenue = stats.TotalRevenue.Add(a.Price)
	}

	if stats.Total > 0 {
		stats.AverageTicket = stats.TotalRevenue.Div(decimal.NewFromInt(int64(stats.Total)))
	}

	return stats, nil
}

// Cancel transitions a confirmed appointment to cancelado and frees its slot.
func (r *Repository) Cancel(_ context.Context, id string, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok || a.Status != domain.StatusConfirmed {
		return storage.ErrAppointmentNotFound
	}

	now := r.nowFunc()
	a.Status = domain.StatusCancelled
	a.CancellationReason = &reason
	a.CancelledAt = &now
	a.UpdatedAt = now
	delete(r.slots, keyFor(a))
	return nil
}

// UpdateStatus transitions a confirmed appointment to the given status.
func (r *Repository) UpdateStatus(_ context.Context, id string, status domain.AppointmentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok || a.Status != domain.StatusConfirmed {
		return storage.ErrAppointmentNotFound
	}

	a.Status = status
	a.UpdatedAt = r.nowFunc()
	if status != domain.StatusConfirmed {
		delete(r.slots, keyFor(a))
	}
	return nil
}

// Delete physically removes an appointment.
func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return storage.ErrAppointmentNotFound
	}
	if a.Status == domain.StatusConfirmed {
		delete(r.slots, keyFor(a))
	}
	delete(r.byID, id)
	return nil
}
