// Package provisioning derives one alarm per resolved bot from the
// registry and upserts it.
//
// A bot is resolved when both its BotId and BotAliasId entries exist.
// Partially written bots are skipped and reported, never failed.
package provisioning

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/botsync/internal/clients/alarm"
	"github.com/GriffinCanCode/botsync/internal/clients/registry"
	"github.com/GriffinCanCode/botsync/internal/domain/report"
	"github.com/GriffinCanCode/botsync/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/botsync/internal/shared/paths"
)

// JobName identifies provisioning runs in reports and metrics.
const JobName = "provision"

// Provisioner reads the registry and upserts alarms.
type Provisioner struct {
	store    registry.Store
	alarms   alarm.Client
	template Template
	logger   *zap.Logger
	metrics  *monitoring.Metrics
}

// New creates a provisioner.
func New(store registry.Store, alarms alarm.Client, template Template, logger *zap.Logger, metrics *monitoring.Metrics) *Provisioner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provisioner{
		store:    store,
		alarms:   alarms,
		template: template,
		logger:   logger,
		metrics:  metrics,
	}
}

// Provision upserts an alarm for every resolved bot in the registry. A
// registry scan failure aborts the run; every other failure is recorded
// against its bot.
func (p *Provisioner) Provision(ctx context.Context) (*report.Report, error) {
	rep := report.New(JobName)

	names, err := p.botNames(ctx, rep)
	if err != nil {
		return rep, err
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		p.provisionBot(ctx, rep, name)
	}

	p.logger.Info("Provisioning finished", zap.String("summary", rep.Summary()))
	return rep, nil
}

// botNames scans the registry and returns unique bot names in first-seen order.
func (p *Provisioner) botNames(ctx context.Context, rep *report.Report) ([]string, error) {
	seen := make(map[string]struct{})
	var names []string

	for entry, err := range registry.Scan(ctx, p.store, paths.Root) {
		if err != nil {
			return nil, fmt.Errorf("scan registry: %w", err)
		}

		name, ok := paths.ParseBotName(entry.Path)
		if !ok {
			p.logger.Debug("Skipping malformed registry path", zap.String("path", entry.Path))
			rep.SkipMalformed()
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}

func (p *Provisioner) provisionBot(ctx context.Context, rep *report.Report, name string) {
	bot := paths.BotPaths(name)

	botID, ok := p.lookup(ctx, rep, name, bot.BotIDPath())
	if !ok {
		return
	}
	aliasID, ok := p.lookup(ctx, rep, name, bot.BotAliasIDPath())
	if !ok {
		return
	}

	spec := p.template.Spec(name, botID, aliasID)
	err := p.alarms.PutAlarm(ctx, spec)
	p.metrics.RecordAlarmUpsert(err)
	if err != nil {
		p.logger.Error("Alarm upsert failed",
			zap.String("bot", name),
			zap.String("alarm", spec.AlarmName),
			zap.Error(err),
		)
		rep.Fail(name, report.KindTransientWrite, spec.AlarmName, err)
		p.metrics.RecordSkip(JobName, string(report.KindTransientWrite))
		return
	}

	rep.Wrote(1)
	rep.Succeed(name, spec.AlarmName)
	p.logger.Info("Alarm upserted",
		zap.String("bot", name),
		zap.String("alarm", spec.AlarmName),
		zap.String("bot_id", botID),
		zap.String("alias_id", aliasID),
	)
}

// lookup reads one registry value, recording a skip when it is unavailable.
func (p *Provisioner) lookup(ctx context.Context, rep *report.Report, name, path string) (string, bool) {
	value, err := p.store.Get(ctx, path)
	switch {
	case err == nil:
		return value, true
	case errors.Is(err, registry.ErrNotFound):
		p.logger.Warn("Skipping unresolved bot",
			zap.String("bot", name),
			zap.String("missing", path),
		)
		rep.Fail(name, report.KindNotFound, path, err)
		p.metrics.RecordSkip(JobName, string(report.KindNotFound))
	default:
		p.logger.Error("Registry lookup failed",
			zap.String("bot", name),
			zap.String("path", path),
			zap.Error(err),
		)
		rep.Fail(name, report.KindTransientRead, path, err)
		p.metrics.RecordSkip(JobName, string(report.KindTransientRead))
	}
	return "", false
}
