// Package registrysync writes discovered bot targets into the registry.
package registrysync

import (
	"context"
	"fmt"
	"iter"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/botsync/internal/clients/registry"
	"github.com/GriffinCanCode/botsync/internal/domain/report"
	"github.com/GriffinCanCode/botsync/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/botsync/internal/shared/paths"
	"github.com/GriffinCanCode/botsync/internal/shared/types"
)

// JobName identifies sync runs in reports and metrics.
const JobName = "sync"

// Syncer overwrites /lex/{botName}/BotId and /lex/{botName}/BotAliasId for
// every target it is given.
type Syncer struct {
	store   registry.Store
	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// New creates a syncer writing to store.
func New(store registry.Store, logger *zap.Logger, metrics *monitoring.Metrics) *Syncer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Syncer{store: store, logger: logger, metrics: metrics}
}

// Sync writes every target in order. A failed write is recorded against
// its bot and the run moves on; an error yielded by targets aborts the run
// and is returned with the partial report.
func (s *Syncer) Sync(ctx context.Context, targets iter.Seq2[types.Target, error]) (*report.Report, error) {
	rep := report.New(JobName)

	for target, err := range targets {
		if err != nil {
			return rep, fmt.Errorf("discover bots: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		s.syncTarget(ctx, rep, target)
	}

	s.logger.Info("Registry sync finished", zap.String("summary", rep.Summary()))
	return rep, nil
}

func (s *Syncer) syncTarget(ctx context.Context, rep *report.Report, target types.Target) {
	if err := paths.ValidateBotName(target.BotName); err != nil {
		s.logger.Warn("Skipping bot with unencodable name",
			zap.String("bot", target.BotName),
			zap.Error(err),
		)
		rep.Fail(target.BotName, report.KindMalformedPath, target.BotName, err)
		s.metrics.RecordSkip(JobName, string(report.KindMalformedPath))
		return
	}

	values := map[paths.Field]string{
		paths.BotID:      target.BotID,
		paths.BotAliasID: target.AliasID,
	}

	// BotId goes first; a failed write leaves the later field untouched
	for _, field := range paths.Fields() {
		path := paths.BotPath(target.BotName, field)
		err := s.store.Put(ctx, path, values[field])
		s.metrics.RecordRegistryWrite(string(field), err)
		if err != nil {
			s.logger.Error("Registry write failed",
				zap.String("bot", target.BotName),
				zap.String("path", path),
				zap.Error(err),
			)
			rep.Fail(target.BotName, report.KindTransientWrite, path, err)
			s.metrics.RecordSkip(JobName, string(report.KindTransientWrite))
			return
		}
		rep.Wrote(1)
		s.logger.Debug("Registry entry written",
			zap.String("path", path),
			zap.String("value", values[field]),
		)
	}

	rep.Succeed(target.BotName, paths.Root+target.BotName)
	s.logger.Info("Bot synced",
		zap.String("bot", target.BotName),
		zap.String("bot_id", target.BotID),
		zap.String("alias_id", target.AliasID),
	)
}
