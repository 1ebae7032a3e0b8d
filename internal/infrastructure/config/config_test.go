package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// AWS config
	assert.Equal(t, "us-east-1", cfg.AWS.Region)
	assert.Equal(t, 3, cfg.AWS.MaxAttempts)

	// Registry config
	assert.Equal(t, BackendSSM, cfg.Registry.Backend)

	// Inventory config
	assert.Equal(t, "PROD", cfg.Inventory.AliasName)
	assert.Equal(t, int32(50), cfg.Inventory.PageSize)

	// Alarm config
	assert.Equal(t, "dev", cfg.Alarm.EnvPrefix)
	assert.Equal(t, 1.0, cfg.Alarm.Threshold)
	assert.Equal(t, int32(300), cfg.Alarm.PeriodSeconds)
	assert.Equal(t, "en_US", cfg.Alarm.Locale)
	assert.Equal(t, "StartConversation", cfg.Alarm.Operation)

	// Call config
	assert.Equal(t, 30*time.Second, cfg.Calls.Timeout)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	// Server config
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())

	assert.NoError(t, cfg.Validate())
}

var envKeys = []string{
	"AWS_REGION", "AWS_PROFILE", "AWS_ENDPOINT_URL", "AWS_MAX_ATTEMPTS",
	"REGISTRY_BACKEND", "CONSUL_HTTP_ADDR", "CONSUL_HTTP_TOKEN", "CONSUL_RETRY_MAX",
	"LEX_ALIAS_NAME", "LEX_PAGE_SIZE",
	"ALARM_ENV_PREFIX", "ALARM_THRESHOLD", "ALARM_PERIOD_SECONDS", "ALARM_LOCALE", "ALARM_OPERATION",
	"CALL_TIMEOUT", "CALL_RPS", "CALL_BURST", "BREAKER_FAILURES", "BREAKER_COOLDOWN",
	"LOG_LEVEL", "LOG_DEV", "PUSHGATEWAY_URL", "METRICS_JOB", "PORT", "HOST",
}

// clearEnv unsets keys for the duration of the test.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		if prev, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, prev) })
		}
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadMatchesDefault(t *testing.T) {
	clearEnv(t, envKeys...)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"AWS_REGION":           "eu-west-1",
		"AWS_ENDPOINT_URL":     "http://localhost:4566",
		"REGISTRY_BACKEND":     "consul",
		"CONSUL_HTTP_ADDR":     "http://consul:8500",
		"LEX_ALIAS_NAME":       "LIVE",
		"LEX_PAGE_SIZE":        "10",
		"ALARM_ENV_PREFIX":     "Contact-prod",
		"ALARM_THRESHOLD":      "2.5",
		"ALARM_PERIOD_SECONDS": "60",
		"CALL_TIMEOUT":         "5s",
		"CALL_RPS":             "2",
		"LOG_LEVEL":            "debug",
		"LOG_DEV":              "true",
		"PORT":                 "9000",
	}
	clearEnv(t, envKeys...)
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", cfg.AWS.Region)
	assert.Equal(t, "http://localhost:4566", cfg.AWS.EndpointURL)
	assert.Equal(t, BackendConsul, cfg.Registry.Backend)
	assert.Equal(t, "http://consul:8500", cfg.Registry.ConsulAddr)
	assert.Equal(t, "LIVE", cfg.Inventory.AliasName)
	assert.Equal(t, int32(10), cfg.Inventory.PageSize)
	assert.Equal(t, "Contact-prod", cfg.Alarm.EnvPrefix)
	assert.Equal(t, 2.5, cfg.Alarm.Threshold)
	assert.Equal(t, int32(60), cfg.Alarm.PeriodSeconds)
	assert.Equal(t, 5*time.Second, cfg.Calls.Timeout)
	assert.Equal(t, 2.0, cfg.Calls.RatePerSecond)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, "9000", cfg.Server.Port)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	clearEnv(t, envKeys...)

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown backend", key: "REGISTRY_BACKEND", value: "etcd"},
		{name: "page size too large", key: "LEX_PAGE_SIZE", value: "5000"},
		{name: "short period", key: "ALARM_PERIOD_SECONDS", value: "5"},
		{name: "unparseable timeout", key: "CALL_TIMEOUT", value: "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Inventory.AliasName = " "
	cfg.Alarm.EnvPrefix = ""
	cfg.Calls.Timeout = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alias name")
	assert.Contains(t, err.Error(), "env prefix")
	assert.Contains(t, err.Error(), "timeout")
}
