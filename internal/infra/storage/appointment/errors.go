package appointment

import "errors"

var (
	// ErrAppointmentNotFound is returned when the appointment does not exist
	// or is no longer in a state the operation accepts.
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotTaken is returned when the (date, time) slot is already held by
	// a confirmed appointment. Backed by the partial unique index.
	ErrSlotTaken = errors.New("appointment.repository: slot already taken")

	// ErrDuplicateConfirmationCode is returned when the generated confirmation
	// code collides with an existing one.
	ErrDuplicateConfirmationCode = errors.New("appointment.repository: duplicate confirmation code")

	// ErrBuildQuery is returned when building the SQL query fails.
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery is returned when executing the SQL query fails.
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
