package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/lexmodelsv2"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/botsync/internal/clients/alarm"
	"github.com/GriffinCanCode/botsync/internal/clients/awsconfig"
	"github.com/GriffinCanCode/botsync/internal/clients/inventory"
	"github.com/GriffinCanCode/botsync/internal/clients/registry"
	"github.com/GriffinCanCode/botsync/internal/domain/discovery"
	"github.com/GriffinCanCode/botsync/internal/domain/provisioning"
	"github.com/GriffinCanCode/botsync/internal/domain/registrysync"
	"github.com/GriffinCanCode/botsync/internal/infrastructure/config"
	"github.com/GriffinCanCode/botsync/internal/infrastructure/logging"
	"github.com/GriffinCanCode/botsync/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/botsync/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/botsync/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/botsync/internal/jobs"
)

// app holds the wired components of one process
type app struct {
	cfg     *config.Config
	logger  *logging.Logger
	metrics *monitoring.Metrics
	tracer  *tracing.Tracer
	runner  *jobs.Runner
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	metrics := monitoring.NewMetrics()
	tracer := tracing.New("botsync", logger.Logger)

	awsCfg, err := awsconfig.Load(ctx, cfg.AWS)
	if err != nil {
		tracer.Close()
		return nil, err
	}

	guard := func(name string, isExpected func(error) bool) *resilience.Guard {
		return resilience.NewGuard(name, guardConfig(cfg.Calls, isExpected), metrics, logger.Named("resilience"))
	}

	lex := inventory.NewLexClient(
		lexmodelsv2.NewFromConfig(awsCfg),
		guard(inventory.ServiceName, nil),
		cfg.Inventory.PageSize,
		logger.Named("inventory"),
	)
	store := newStore(cfg.Registry, awsCfg, guard, logger)
	alarms := alarm.NewCloudWatchClient(
		cloudwatch.NewFromConfig(awsCfg),
		guard(alarm.ServiceName, nil),
		logger.Named("alarm"),
	)

	runner := jobs.NewRunner(jobs.Deps{
		Discoverer: discovery.New(lex, cfg.Inventory.AliasName, logger.Named("discovery"), metrics),
		Syncer:     registrysync.New(store, logger.Named("sync"), metrics),
		Provisioner: provisioning.New(store, alarms,
			provisioning.TemplateFromConfig(cfg.Alarm), logger.Named("provisioning"), metrics),
		AliasName: cfg.Inventory.AliasName,
	}, logger, metrics, tracer)

	logger.Debug("Components initialized",
		zap.String("region", cfg.AWS.Region),
		zap.String("registry", cfg.Registry.Backend),
		zap.String("alias", cfg.Inventory.AliasName),
	)

	return &app{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		runner:  runner,
	}, nil
}

// newStore selects the registry backend
func newStore(cfg config.RegistryConfig, awsCfg aws.Config, guard func(string, func(error) bool) *resilience.Guard, logger *logging.Logger) registry.Store {
	if strings.EqualFold(cfg.Backend, config.BackendConsul) {
		return registry.NewConsulStore(cfg, guard(registry.ConsulServiceName, registry.IsExpected), logger.Named("registry"))
	}
	return registry.NewSSMStore(ssm.NewFromConfig(awsCfg), guard(registry.SSMServiceName, registry.IsExpected), logger.Named("registry"))
}

func guardConfig(cfg config.CallConfig, isExpected func(error) bool) resilience.GuardConfig {
	return resilience.GuardConfig{
		Timeout:         cfg.Timeout,
		RatePerSecond:   cfg.RatePerSecond,
		Burst:           cfg.Burst,
		BreakerFailures: cfg.BreakerFailures,
		BreakerCooldown: cfg.BreakerCooldown,
		IsExpected:      isExpected,
	}
}

// pushMetrics sends job metrics to the Pushgateway when one is configured
func (a *app) pushMetrics(ctx context.Context) {
	if err := a.metrics.Push(ctx, a.cfg.Metrics.PushgatewayURL, a.cfg.Metrics.JobName); err != nil {
		a.logger.Warn("Failed to push metrics", zap.Error(err))
	}
}

// Close flushes spans and logs
func (a *app) Close() {
	a.tracer.Close()
	_ = a.logger.Sync()
}
