package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/guelfi/barbershop-booking/internal/domain"
	"github.com/guelfi/barbershop-booking/pkg/dbmetrics"
	"github.com/guelfi/barbershop-booking/pkg/psqlbuilder"
)

const (
	// pqUniqueViolation is the postgres error code for unique constraint hits.
	pqUniqueViolation = "23505"

	// Constraint names from migrations/0001_init.up.sql.
	slotUniqueIndex             = "uq_agendamentos_slot_confirmado"
	confirmationCodeUniqueIndex = "uq_agendamentos_numero_confirmacao"
)

var appointmentColumns = []string{
	"id",
	"numero_confirmacao",
	"nome",
	"telefone",
	"codigo_servico",
	"servico",
	"data",
	"horario",
	"duracao",
	"valor",
	"status",
	"observacoes",
	"ip_cliente",
	"motivo_cancelamento",
	"cancelado_em",
	"created_at",
	"updated_at",
}

// Repository is the durable appointment ledger backed by Postgres. The
// uniqueness of (data, horario) for confirmed appointments is enforced by a
// partial unique index, so a concurrent insert race always has exactly one
// winner regardless of the caller's transaction discipline.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a new appointment repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new appointment. When the context carries an open
// transaction (via txmanager), the insert runs inside it.
//
// Unique violations are mapped to domain-meaningful sentinels:
// the slot index to ErrSlotTaken, the confirmation code index to
// ErrDuplicateConfirmationCode.
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("agendamentos").
		Columns(
			"id",
			"numero_confirmacao",
			"nome",
			"telefone",
			"codigo_servico",
			"servico",
			"data",
			"horario",
			"duracao",
			"valor",
			"status",
			"observacoes",
			"ip_cliente",
		).
		Values(
			a.ID,
			a.ConfirmationCode,
			a.ClientName,
			a.ClientPhone,
			a.ServiceCode,
			a.ServiceName,
			a.Date,
			a.StartTime,
			a.DurationMinutes,
			a.Price,
			a.Status,
			a.Notes,
			a.ClientIP,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return a, nil
}

// GetByID fetches an appointment by its id.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("agendamentos").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetConfirmedByDate returns the confirmed appointments on the date, ordered
// by start time. Inside a transaction the rows are locked with FOR UPDATE so
// the availability re-check and the subsequent insert form one atomic unit.
func (r *Repository) GetConfirmedByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("agendamentos").
		Where(squirrel.Eq{"data": date, "status": domain.StatusConfirmed}).
		OrderBy("horario ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedByDate - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// GetFutureByPhone returns the confirmed appointments for the phone with date
// on or after fromDate, ordered by (date, time).
func (r *Repository) GetFutureByPhone(ctx context.Context, phone string, fromDate time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("agendamentos").
		Where(squirrel.Eq{"telefone": phone, "status": domain.StatusConfirmed}).
		Where(squirrel.GtOrEq{"data": fromDate}).
		OrderBy("data ASC, horario ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetFutureByPhone - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetFutureByPhone - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// CountConfirmedCreatedSince counts the confirmed appointments for the phone
// whose creation timestamp is at or after since. Feeds the phone quota.
func (r *Repository) CountConfirmedCreatedSince(ctx context.Context, phone string, since time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("agendamentos").
		Where(squirrel.Eq{"telefone": phone, "status": domain.StatusConfirmed}).
		Where(squirrel.GtOrEq{"created_at": since}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountConfirmedCreatedSince - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountConfirmedCreatedSince - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// Cancel moves a confirmed appointment to cancelado with reason and timestamp.
// The status guard in the WHERE clause keeps the transition monotone even if
// a concurrent caller already finalized the row.
func (r *Repository) Cancel(ctx context.Context, id string, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("agendamentos").
		Set("status", domain.StatusCancelled).
		Set("motivo_cancelamento", reason).
		Set("cancelado_em", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusConfirmed}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %w", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Cancel")
}

// UpdateStatus transitions a confirmed appointment to the given status
// (administrative completion / no-show marking).
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("agendamentos").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusConfirmed}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// Delete physically removes an appointment. Administrative path only; the
// service layer enforces the cancellation window before calling this.
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("agendamentos").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Delete")
}

// GetStats aggregates counts per status, gross revenue and average ticket,
// optionally bounded by creation time (from inclusive, to exclusive).
func (r *Repository) GetStats(ctx context.Context, from, to *time.Time) (*domain.AppointmentStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE status = 'confirmado')",
		"COUNT(*) FILTER (WHERE status = 'cancelado')",
		"COUNT(*) FILTER (WHERE status = 'concluido')",
		"COUNT(*) FILTER (WHERE status = 'nao_compareceu')",
		"COALESCE(SUM(valor), 0)",
		"COALESCE(AVG(valor), 0)",
	).From("agendamentos")

	if from != nil {
		builder = builder.Where(squirrel.GtOrEq{"created_at": *from})
	}
	if to != nil {
		builder = builder.Where(squirrel.Lt{"created_at": *to})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStats - build select query: %w", ErrBuildQuery, err)
	}

	var stats domain.AppointmentStats
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stats.Total,
		&stats.Confirmed,
		&stats.Cancelled,
		&stats.Completed,
		&stats.NoShow,
		&stats.TotalRevenue,
		&stats.AverageTicket,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStats - scan stats: %w", ErrScanRow, err)
	}

	return &stats, nil
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, method string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

func (r *Repository) scanOne(row *sql.Row, method string) (*domain.Appointment, error) {
	var a domain.Appointment
	var createdAt, updatedAt sql.NullTime
	var cancelledAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.ConfirmationCode,
		&a.ClientName,
		&a.ClientPhone,
		&a.ServiceCode,
		&a.ServiceName,
		&a.Date,
		&a.StartTime,
		&a.DurationMinutes,
		&a.Price,
		&a.Status,
		&a.Notes,
		&a.ClientIP,
		&a.CancellationReason,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan appointment: %w", ErrScanRow, method, err)
	}

	if cancelledAt.Valid {
		a.CancelledAt = &cancelledAt.Time
	}
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var a domain.Appointment
		var createdAt, updatedAt sql.NullTime
		var cancelledAt sql.NullTime

		err := rows.Scan(
			&a.ID,
			&a.ConfirmationCode,
			&a.ClientName,
			&a.ClientPhone,
			&a.ServiceCode,
			&a.ServiceName,
			&a.Date,
			&a.StartTime,
			&a.DurationMinutes,
			&a.Price,
			&a.Status,
			&a.Notes,
			&a.ClientIP,
			&a.CancellationReason,
			&cancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %w", ErrScanRow, err)
		}

		if cancelledAt.Valid {
			a.CancelledAt = &cancelledAt.Time
		}
		a.CreatedAt = createdAt.Time
		a.UpdatedAt = updatedAt.Time

		appointments = append(appointments, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}

// mapUniqueViolation translates pq unique violations to domain sentinels.
// Returns nil when the error is not a recognized unique violation.
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != pqUniqueViolation {
		return nil
	}

	switch pqErr.Constraint {
	case slotUniqueIndex:
		return ErrSlotTaken
	case confirmationCodeUniqueIndex:
		return ErrDuplicateConfirmationCode
	default:
		return nil
	}
}
