// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

// Package resilience wraps the matching repositories in a circuit
// breaker and an optional rate limiter, so a struggling database
// degrades match computation instead of cascading into it.
package resilience

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/squadmatch/internal/logging"
	"github.com/tomtom215/squadmatch/internal/match"
	"github.com/tomtom215/squadmatch/internal/metrics"
	"github.com/tomtom215/squadmatch/internal/models"
)

// Config controls breaker and limiter behavior for repository access.
type Config struct {
	// BreakerEnabled turns the circuit breaker on. When false, reads
	// pass straight through (the limiter still applies if set).
	BreakerEnabled bool
	// MaxRequests allowed through while half-open.
	MaxRequests uint32
	// Interval between closed-state count resets.
	Interval time.Duration
	// Timeout before an open breaker transitions to half-open.
	Timeout time.Duration
	// FailureThreshold is the consecutive-failure count that opens the
	// breaker.
	FailureThreshold uint32
	// RateLimit caps repository reads per second; 0 disables limiting.
	RateLimit float64
	// RateBurst is the limiter burst size; defaults to max(1, RateLimit).
	RateBurst int
}

// DefaultConfig returns production-oriented breaker settings.
func DefaultConfig() Config {
	return Config{
		BreakerEnabled:   true,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          10 * time.Second,
		FailureThreshold: 5,
	}
}

// guard applies the breaker and limiter around every repository read.
// All repository interfaces funnel through the single breaker: the
// backing store is one database, so its health is one signal.
type guard struct {
	inner   match.Repositories
	breaker *gobreaker.CircuitBreaker[any]
	limiter *rate.Limiter
}

// Wrap returns a Repositories bundle whose reads go through a shared
// circuit breaker and rate limiter per cfg. With the breaker disabled
// and no rate limit, the inner bundle is returned unchanged.
func Wrap(inner match.Repositories, cfg Config) match.Repositories {
	g := &guard{inner: inner}

	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = int(cfg.RateLimit)
			if burst < 1 {
				burst = 1
			}
		}
		g.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	if cfg.BreakerEnabled {
		maxRequests := cfg.MaxRequests
		if maxRequests == 0 {
			maxRequests = 3
		}
		threshold := cfg.FailureThreshold
		if threshold == 0 {
			threshold = 5
		}
		settings := gobreaker.Settings{
			Name:        "repositories",
			MaxRequests: maxRequests,
			Interval:    cfg.Interval,
			Timeout:     cfg.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
				logging.Warn().
					Str("breaker", name).
					Str("from", from.String()).
					Str("to", to.String()).
					Msg("Circuit breaker state changed")
			},
		}
		g.breaker = gobreaker.NewCircuitBreaker[any](settings)
		metrics.CircuitBreakerState.WithLabelValues(settings.Name).Set(stateValue(gobreaker.StateClosed))
	}

	if g.breaker == nil && g.limiter == nil {
		return inner
	}
	return match.Repositories{
		Profiles:      g,
		Traits:        g,
		Schedules:     g,
		Libraries:     g,
		Reliability:   g,
		Relationships: g,
		Pool:          g,
	}
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 2
	}
}

// execute runs fn through the guard's limiter and breaker. The breaker
// stores results as any; the safe cast returns the zero value when the
// call was rejected or failed.
func execute[T any](ctx context.Context, g *guard, fn func() (T, error)) (T, error) {
	var zero T
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return zero, fmt.Errorf("repository rate limit: %w", err)
		}
	}
	if g.breaker == nil {
		return fn()
	}
	res, err := g.breaker.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		metrics.CircuitBreakerRequests.WithLabelValues("repositories", requestResult(err)).Inc()
		return zero, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues("repositories", "success").Inc()
	v, _ := res.(T)
	return v, nil
}

func requestResult(err error) string {
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return "rejected"
	}
	return "failure"
}

func (g *guard) Profile(ctx context.Context, id models.UserID) (*models.Profile, error) {
	return execute(ctx, g, func() (*models.Profile, error) {
		return g.inner.Profiles.Profile(ctx, id)
	})
}

func (g *guard) Traits(ctx context.Context, id models.UserID) (*models.TraitsContext, error) {
	return execute(ctx, g, func() (*models.TraitsContext, error) {
		return g.inner.Traits.Traits(ctx, id)
	})
}

func (g *guard) Slots(ctx context.Context, id models.UserID) ([]models.ScheduleSlot, error) {
	return execute(ctx, g, func() ([]models.ScheduleSlot, error) {
		return g.inner.Schedules.Slots(ctx, id)
	})
}

func (g *guard) Library(ctx context.Context, id models.UserID) (*models.LibraryContext, error) {
	return execute(ctx, g, func() (*models.LibraryContext, error) {
		return g.inner.Libraries.Library(ctx, id)
	})
}

func (g *guard) Reliability(ctx context.Context, id models.UserID) (*models.ReliabilityContext, error) {
	return execute(ctx, g, func() (*models.ReliabilityContext, error) {
		return g.inner.Reliability.Reliability(ctx, id)
	})
}

func (g *guard) BlockedBy(ctx context.Context, id models.UserID) ([]models.UserID, error) {
	return execute(ctx, g, func() ([]models.UserID, error) {
		return g.inner.Relationships.BlockedBy(ctx, id)
	})
}

func (g *guard) Blockers(ctx context.Context, id models.UserID) ([]models.UserID, error) {
	return execute(ctx, g, func() ([]models.UserID, error) {
		return g.inner.Relationships.Blockers(ctx, id)
	})
}

func (g *guard) Friends(ctx context.Context, id models.UserID) ([]models.UserID, error) {
	return execute(ctx, g, func() ([]models.UserID, error) {
		return g.inner.Relationships.Friends(ctx, id)
	})
}

func (g *guard) ChatPeers(ctx context.Context, id models.UserID) ([]models.UserID, error) {
	return execute(ctx, g, func() ([]models.UserID, error) {
		return g.inner.Relationships.ChatPeers(ctx, id)
	})
}

func (g *guard) ActiveUsers(ctx context.Context) ([]models.UserID, error) {
	return execute(ctx, g, func() ([]models.UserID, error) {
		return g.inner.Pool.ActiveUsers(ctx)
	})
}
