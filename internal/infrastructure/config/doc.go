// Package config provides 12-factor configuration management for botsync.
//
// Configuration is loaded from environment variables with sensible defaults.
//
// Configuration Sections:
//   - AWS: region, profile, endpoint override and SDK attempts
//   - Registry: backend selection (ssm or consul) and Consul settings
//   - Inventory: production alias name and page size
//   - Alarm: alarm name prefix, threshold, period and static dimensions
//   - Calls: per-call timeout, rate limit and circuit breaker settings
//   - Logging: log level and output format
//   - Metrics: Pushgateway export
//   - Server: admin HTTP server address
//
// Example Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Alarm.EnvPrefix)
//
// Environment Variables:
//   - AWS_REGION, AWS_PROFILE, AWS_ENDPOINT_URL, AWS_MAX_ATTEMPTS
//   - REGISTRY_BACKEND, CONSUL_HTTP_ADDR, CONSUL_HTTP_TOKEN, CONSUL_RETRY_MAX
//   - LEX_ALIAS_NAME, LEX_PAGE_SIZE
//   - ALARM_ENV_PREFIX, ALARM_THRESHOLD, ALARM_PERIOD_SECONDS, ALARM_LOCALE, ALARM_OPERATION
//   - CALL_TIMEOUT, CALL_RPS, CALL_BURST, BREAKER_FAILURES, BREAKER_COOLDOWN
//   - LOG_LEVEL, LOG_DEV
//   - PUSHGATEWAY_URL, METRICS_JOB
//   - PORT, HOST
package config
