package appointments

import "errors"

var (
	// ErrAppointmentNotFound is returned when the appointment does not exist.
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrPhoneMismatch is returned when the phone in a cancellation request
	// does not match the one on the appointment. Deliberately distinct from
	// not-found: the appointment exists, the caller just cannot touch it.
	ErrPhoneMismatch = errors.New("phone does not match appointment")

	// ErrCannotCancel is returned when the appointment already left the
	// confirmado state.
	ErrCannotCancel = errors.New("appointment cannot be cancelled")

	// ErrTooLateToCancel is returned when the slot is less than the required
	// notice away. Exactly at the cutoff still cancels.
	ErrTooLateToCancel = errors.New("too late to cancel this appointment")

	// ErrTooLateToDelete is returned when a confirmed appointment is too
	// close to its slot to be removed.
	ErrTooLateToDelete = errors.New("too late to delete this appointment")

	// ErrInvalidStatus is returned when the requested status is not an
	// admin-settable one.
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInvalidTransition is returned when the status machine forbids the
	// requested transition.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidInput is returned when the request fails validation.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service failures.
	ErrInternal = errors.New("service: internal error")
)
