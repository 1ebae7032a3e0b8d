/*
Package resilience hardens calls to external services.

# Overview

Every inventory, registry and alarm call made by the botsync jobs goes
through a Guard, which applies a token-bucket rate limit (the Lex model APIs
allow only a few calls per second), a per-call timeout and call metrics.

Service-wide calls (bot and alias listing, registry scans) also pass a
circuit breaker through Guard.Do: if the service keeps failing, the next
listing fails fast. Calls about one bot (key reads and writes, alarm
upserts) use Guard.DoEntity and are never gated, so a batch always attempts
every bot and reports each failure on its own.

# Failure classes

Classify sorts errors for the breaker:

  - FailureService: throttling codes, 429 and 5xx responses, timeouts and
    errors without a service verdict. These count toward tripping.
  - FailureEntity: other 4xx or client-fault API errors and cancellation.
    The service answered, so these reset the failure run.
  - FailureNone: success, or an error GuardConfig.IsExpected accepts.

# Usage

	guard := resilience.NewGuard("ssm", resilience.GuardConfig{
		Timeout:         30 * time.Second,
		RatePerSecond:   5,
		Burst:           5,
		BreakerFailures: 5,
		BreakerCooldown: 30 * time.Second,
		IsExpected:      registry.IsExpected,
	}, metrics, logger)

	err := guard.Do(ctx, "GetParametersByPath", func(ctx context.Context) error {
		out, err = api.GetParametersByPath(ctx, in)
		return err
	})

	err = guard.DoEntity(ctx, "PutParameter", func(ctx context.Context) error {
		_, err := api.PutParameter(ctx, put)
		return err
	})

# States

	Closed --[service failures]-> Open --[cooldown]-> Half-Open --[answer]-> Closed
	                                                     |
	                                             [service failure]
	                                                     v
	                                                    Open
*/
package resilience
