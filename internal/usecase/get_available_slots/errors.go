package get_available_slots

import "errors"

var (
	// ErrInvalidInput is returned when the request fails validation.
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInvalidDate is returned when the date lies in the past.
	ErrInvalidDate = errors.New("get_available_slots: invalid date")

	// ErrInternal is returned on internal usecase failures.
	ErrInternal = errors.New("get_available_slots: internal error")
)
