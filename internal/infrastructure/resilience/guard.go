package resilience

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/GriffinCanCode/botsync/internal/infrastructure/monitoring"
)

// GuardConfig configures a Guard.
type GuardConfig struct {
	// Timeout bounds each call; zero disables the per-call deadline
	Timeout time.Duration
	// RatePerSecond caps call throughput; zero or less means unlimited
	RatePerSecond float64
	Burst         int
	// BreakerFailures is the number of consecutive service failures that opens the breaker
	BreakerFailures uint32
	// BreakerCooldown is how long the breaker stays open before probing
	BreakerCooldown time.Duration
	// IsExpected marks errors that are normal answers, such as a missing
	// registry key. They count as successful calls.
	IsExpected func(err error) bool
}

// Guard wraps calls to one external service with a rate limit, a per-call
// timeout and call metrics. Service-wide calls (listings and scans) also go
// through a circuit breaker; calls about a single bot never do, so one
// bot's failures cannot stop the rest of a batch.
// A nil *Guard runs calls unguarded.
type Guard struct {
	name       string
	timeout    time.Duration
	limiter    *rate.Limiter
	breaker    *Breaker
	isExpected func(err error) bool
	metrics    *monitoring.Metrics
}

// NewGuard creates a guard for the named service
func NewGuard(name string, cfg GuardConfig, metrics *monitoring.Metrics, logger *zap.Logger) *Guard {
	if logger == nil {
		logger = zap.NewNop()
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := max(cfg.Burst, 1)

	isExpected := cfg.IsExpected
	if isExpected == nil {
		isExpected = func(err error) bool { return err == nil }
	}

	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}

	g := &Guard{
		name:       name,
		timeout:    cfg.Timeout,
		limiter:    rate.NewLimiter(limit, burst),
		isExpected: isExpected,
		metrics:    metrics,
	}
	g.breaker = NewBreaker(name, Settings{
		MaxRequests: 1,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		Classify: g.classify,
		OnStateChange: func(name string, from, to State) {
			metrics.SetBreakerState(name, int(to))
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	metrics.SetBreakerState(name, int(StateClosed))

	return g
}

// Name returns the guarded service name
func (g *Guard) Name() string {
	return g.name
}

// Breaker returns the guard's circuit breaker
func (g *Guard) Breaker() *Breaker {
	return g.breaker
}

func (g *Guard) classify(err error) Failure {
	if g.isExpected(err) {
		return FailureNone
	}
	return Classify(err)
}

// Do runs a service-wide call such as a listing page or a registry scan.
// It fails fast with ErrCircuitOpen while the breaker is open.
func (g *Guard) Do(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	if g == nil {
		return fn(ctx)
	}
	return g.call(ctx, operation, func(ctx context.Context) error {
		return g.breaker.Execute(func() error { return fn(ctx) })
	})
}

// DoEntity runs a call about one entity, such as a key write or an alarm
// upsert. It is rate limited, timed and measured, and is always attempted
// whatever the breaker state.
func (g *Guard) DoEntity(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	if g == nil {
		return fn(ctx)
	}
	return g.call(ctx, operation, fn)
}

func (g *Guard) call(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s %s: rate limit wait: %w", g.name, operation, err)
	}

	callCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	timer := monitoring.NewTimer(g.metrics, g.name, operation)
	err := fn(callCtx)
	if g.isExpected(err) {
		timer.Stop(nil)
	} else {
		timer.Stop(err)
	}
	return err
}
