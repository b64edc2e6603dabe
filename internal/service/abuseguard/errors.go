package abuseguard

import "errors"

var (
	// ErrRateLimited is returned when the client address exceeded its booking
	// attempt budget for the sliding window.
	ErrRateLimited = errors.New("abuseguard: too many booking attempts from this address")

	// ErrQuotaExceeded is returned when the phone already holds the maximum
	// number of confirmed appointments for the rolling window.
	ErrQuotaExceeded = errors.New("abuseguard: phone booking quota exceeded")

	// ErrInternal is returned on unexpected failures of the underlying
	// limiter or counter.
	ErrInternal = errors.New("abuseguard: internal error")
)
