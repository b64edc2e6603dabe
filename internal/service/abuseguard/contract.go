package abuseguard

import (
	"context"
	"time"
)

// AttemptLimiter counts booking attempts per client address. Implementations
// may overcount slightly under extreme concurrency; the gate only needs to be
// impossible to bypass, not perfectly precise.
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// QuotaCounter reads how many confirmed appointments a phone created since a
// point in time. Implemented by the appointment repositories.
type QuotaCounter interface {
	CountConfirmedCreatedSince(ctx context.Context, phone string, since time.Time) (int, error)
}

// TimeProvider supplies the current time (injectable for tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface used by the guard.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
