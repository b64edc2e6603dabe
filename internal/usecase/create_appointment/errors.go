package create_appointment

import "errors"

var (
	// ErrInvalidInput is returned when the request fails validation.
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrUnknownService is returned when the service code is not in the catalog.
	ErrUnknownService = errors.New("create_appointment: unknown service")

	// ErrInvalidDate is returned when the appointment date lies in the past.
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrShopClosed is returned when the shop does not operate on the date.
	ErrShopClosed = errors.New("create_appointment: shop is closed on this date")

	// ErrInvalidTimeSlot is returned when the start time is not a bookable
	// slot on that date (off-grid, lunch break, outside business hours).
	ErrInvalidTimeSlot = errors.New("create_appointment: invalid time slot")

	// ErrTooLateToBook is returned when the slot instant has already passed.
	ErrTooLateToBook = errors.New("create_appointment: slot is in the past")

	// ErrSlotNotAvailable is returned when a confirmed appointment already
	// holds the slot.
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrRateLimited is returned when the address exceeded its attempt budget.
	ErrRateLimited = errors.New("create_appointment: too many booking attempts")

	// ErrQuotaExceeded is returned when the phone reached its confirmed
	// appointments quota.
	ErrQuotaExceeded = errors.New("create_appointment: phone booking quota exceeded")

	// ErrInternal is returned on internal usecase failures.
	ErrInternal = errors.New("create_appointment: internal error")
)
