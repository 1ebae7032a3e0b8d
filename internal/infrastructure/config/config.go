package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Registry backends
const (
	BackendSSM    = "ssm"
	BackendConsul = "consul"
)

// Config holds all application configuration.
type Config struct {
	AWS       AWSConfig
	Registry  RegistryConfig
	Inventory InventoryConfig
	Alarm     AlarmConfig
	Calls     CallConfig
	Logging   LogConfig
	Metrics   MetricsConfig
	Server    ServerConfig
}

// AWSConfig holds AWS SDK settings.
type AWSConfig struct {
	Region      string `envconfig:"AWS_REGION" default:"us-east-1"`
	Profile     string `envconfig:"AWS_PROFILE"`
	EndpointURL string `envconfig:"AWS_ENDPOINT_URL"`
	MaxAttempts int    `envconfig:"AWS_MAX_ATTEMPTS" default:"3"`
}

// RegistryConfig selects and configures the registry backend.
type RegistryConfig struct {
	Backend     string `envconfig:"REGISTRY_BACKEND" default:"ssm"`
	ConsulAddr  string `envconfig:"CONSUL_HTTP_ADDR" default:"http://127.0.0.1:8500"`
	ConsulToken string `envconfig:"CONSUL_HTTP_TOKEN"`
	ConsulRetry int    `envconfig:"CONSUL_RETRY_MAX" default:"2"`
}

// InventoryConfig holds bot inventory settings.
type InventoryConfig struct {
	AliasName string `envconfig:"LEX_ALIAS_NAME" default:"PROD"`
	PageSize  int32  `envconfig:"LEX_PAGE_SIZE" default:"50"`
}

// AlarmConfig holds the alarm template parameters.
type AlarmConfig struct {
	EnvPrefix     string  `envconfig:"ALARM_ENV_PREFIX" default:"dev"`
	Threshold     float64 `envconfig:"ALARM_THRESHOLD" default:"1"`
	PeriodSeconds int32   `envconfig:"ALARM_PERIOD_SECONDS" default:"300"`
	Locale        string  `envconfig:"ALARM_LOCALE" default:"en_US"`
	Operation     string  `envconfig:"ALARM_OPERATION" default:"StartConversation"`
}

// CallConfig bounds every call to an external service.
type CallConfig struct {
	Timeout         time.Duration `envconfig:"CALL_TIMEOUT" default:"30s"`
	RatePerSecond   float64       `envconfig:"CALL_RPS" default:"5"`
	Burst           int           `envconfig:"CALL_BURST" default:"5"`
	BreakerFailures uint32        `envconfig:"BREAKER_FAILURES" default:"5"`
	BreakerCooldown time.Duration `envconfig:"BREAKER_COOLDOWN" default:"30s"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// MetricsConfig holds metrics export configuration.
type MetricsConfig struct {
	PushgatewayURL string `envconfig:"PUSHGATEWAY_URL"`
	JobName        string `envconfig:"METRICS_JOB" default:"botsync"`
}

// ServerConfig holds admin HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8080"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		AWS: AWSConfig{
			Region:      "us-east-1",
			MaxAttempts: 3,
		},
		Registry: RegistryConfig{
			Backend:     BackendSSM,
			ConsulAddr:  "http://127.0.0.1:8500",
			ConsulRetry: 2,
		},
		Inventory: InventoryConfig{
			AliasName: "PROD",
			PageSize:  50,
		},
		Alarm: AlarmConfig{
			EnvPrefix:     "dev",
			Threshold:     1,
			PeriodSeconds: 300,
			Locale:        "en_US",
			Operation:     "StartConversation",
		},
		Calls: CallConfig{
			Timeout:         30 * time.Second,
			RatePerSecond:   5,
			Burst:           5,
			BreakerFailures: 5,
			BreakerCooldown: 30 * time.Second,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		Metrics: MetricsConfig{
			JobName: "botsync",
		},
		Server: ServerConfig{
			Port: "8080",
			Host: "0.0.0.0",
		},
	}
}

// Validate reports configuration values the jobs cannot run with.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.Registry.Backend) {
	case BackendSSM, BackendConsul:
	default:
		errs = append(errs, fmt.Errorf("unsupported registry backend %q", c.Registry.Backend))
	}
	if strings.TrimSpace(c.Inventory.AliasName) == "" {
		errs = append(errs, errors.New("alias name cannot be empty"))
	}
	if c.Inventory.PageSize < 1 || c.Inventory.PageSize > 1000 {
		errs = append(errs, fmt.Errorf("page size must be between 1 and 1000, got %d", c.Inventory.PageSize))
	}
	if strings.TrimSpace(c.Alarm.EnvPrefix) == "" {
		errs = append(errs, errors.New("alarm env prefix cannot be empty"))
	}
	if c.Alarm.PeriodSeconds < 10 {
		errs = append(errs, fmt.Errorf("alarm period must be at least 10 seconds, got %d", c.Alarm.PeriodSeconds))
	}
	if c.Calls.Timeout <= 0 {
		errs = append(errs, errors.New("call timeout must be positive"))
	}
	if c.Calls.RatePerSecond < 0 {
		errs = append(errs, errors.New("call rate cannot be negative"))
	}

	return errors.Join(errs...)
}
