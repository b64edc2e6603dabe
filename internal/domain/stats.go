package domain

import "github.com/shopspring/decimal"

// AppointmentStats aggregates the ledger over a creation-time range: totals
// per status, gross revenue and the average ticket across all appointments.
type AppointmentStats struct {
	Total     int
	Confirmed int
	Cancelled int
	Completed int
	NoShow    int

	TotalRevenue  decimal.Decimal
	AverageTicket decimal.Decimal
}
