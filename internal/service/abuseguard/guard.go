// Package abuseguard gates booking attempts before they reach the ledger:
// a per-address rate limit and a rolling per-phone quota of confirmed
// appointments. Both checks are advisory-but-binding; they tolerate races
// but cannot be skipped because the create usecase always runs them first.
package abuseguard

import (
	"context"
	"fmt"
	"time"
)

// Config holds the guard thresholds.
type Config struct {
	MaxAttempts    int           // per address, per AttemptWindow
	AttemptWindow  time.Duration // sliding window for the address limit
	MaxPerPhone    int           // confirmed appointments per phone
	PhoneQuotaDays int           // trailing window for the phone quota
}

// Guard combines the address limiter and the phone quota.
type Guard struct {
	cfg          Config
	limiter      AttemptLimiter
	counter      QuotaCounter
	timeProvider TimeProvider
	logger       Logger
}

// NewGuard creates the guard with an injected limiter and quota counter.
func NewGuard(cfg Config, limiter AttemptLimiter, counter QuotaCounter, logger Logger) *Guard {
	return &Guard{
		cfg:          cfg,
		limiter:      limiter,
		counter:      counter,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider overrides the clock (for tests).
func (g *Guard) WithTimeProvider(tp TimeProvider) *Guard {
	g.timeProvider = tp
	return g
}

// Check validates a booking attempt from clientAddr on behalf of phone.
// Returns ErrRateLimited or ErrQuotaExceeded before any ledger write can
// happen; limiter failures deny the attempt rather than failing open.
func (g *Guard) Check(ctx context.Context, clientAddr string, phone string) error {
	allowed, err := g.limiter.Allow(ctx, clientAddr)
	if err != nil {
		g.logger.Error("AbuseGuard: limiter failure for addr=%s: %v", clientAddr, err)
		return fmt.Errorf("%w: limiter failure: %w", ErrInternal, err)
	}
	if !allowed {
		g.logger.Warn("AbuseGuard: rate limit hit for addr=%s", clientAddr)
		return ErrRateLimited
	}

	since := g.timeProvider.Now().AddDate(0, 0, -g.cfg.PhoneQuotaDays)
	count, err := g.counter.CountConfirmedCreatedSince(ctx, phone, since)
	if err != nil {
		g.logger.Error("AbuseGuard: quota count failure for phone=%s: %v", phone, err)
		return fmt.Errorf("%w: quota count failure: %w", ErrInternal, err)
	}
	if count >= g.cfg.MaxPerPhone {
		g.logger.Warn("AbuseGuard: phone quota exceeded, phone=%s has %d confirmed in %dd",
			phone, count, g.cfg.PhoneQuotaDays)
		return ErrQuotaExceeded
	}

	return nil
}
