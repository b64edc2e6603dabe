package domain

import "regexp"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Abuse control limits
const (
	// MaxBookingAttemptsPerWindow limits booking attempts per client address.
	MaxBookingAttemptsPerWindow = 5
	// BookingAttemptWindowMinutes is the sliding window for the address limit.
	BookingAttemptWindowMinutes = 15
	// MaxConfirmedPerPhone limits confirmed appointments per phone number
	// created within the trailing PhoneQuotaWindowDays.
	MaxConfirmedPerPhone = 3
	// PhoneQuotaWindowDays is the rolling window for the phone quota.
	PhoneQuotaWindowDays = 7
)

// CancellationNoticeHours is the minimum time before the slot at which an
// appointment may still be cancelled or deleted.
const CancellationNoticeHours = 2

// Business validation constants
const (
	MaxClientNameLength         = 120
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// ConfirmationCodePattern is the fixed shape of confirmation codes:
// "BS" followed by 8 digits and 3 uppercase alphanumerics.
var ConfirmationCodePattern = regexp.MustCompile(`^BS\d{8}[A-Z0-9]{3}$`)

// PhonePattern is the canonical Brazilian phone format accepted everywhere:
// "(DD) DDDDD-DDDD" (mobile) or "(DD) DDDD-DDDD" (landline).
var PhonePattern = regexp.MustCompile(`^\(\d{2}\) \d{4,5}-\d{4}$`)
