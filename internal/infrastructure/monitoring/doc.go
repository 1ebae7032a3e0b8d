/*
Package monitoring provides Prometheus metrics for the botsync jobs.

# Overview

Metrics live on an explicit registry (no global state) so the CLI can push
them to a Pushgateway when a job ends and the admin server can expose them
on /metrics.

# Metrics

- Job runs, duration and last success time per job
- Bots discovered, registry writes, alarm upserts, skipped bots
- External call counts and latency per client and operation
- Circuit breaker state
- Admin HTTP requests

# Usage

	metrics := monitoring.NewMetrics()

	timer := monitoring.NewTimer(metrics, "ssm", "PutParameter")
	err := put()
	timer.Stop(err)

	// Short-lived job
	_ = metrics.Push(ctx, cfg.Metrics.PushgatewayURL, cfg.Metrics.JobName)

	// Long-running admin server
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})))
*/
package monitoring
