// Package discovery enumerates bots and resolves each one's production
// alias into a (name, bot id, alias id) target.
package discovery

import (
	"context"
	"iter"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/botsync/internal/clients/inventory"
	"github.com/GriffinCanCode/botsync/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/botsync/internal/shared/types"
)

// DefaultAliasName is the alias that marks a bot's production deployment.
const DefaultAliasName = "PROD"

// Discoverer resolves bots to targets.
type Discoverer struct {
	client    inventory.Client
	aliasName string
	logger    *zap.Logger
	metrics   *monitoring.Metrics
}

// New creates a discoverer matching aliases named aliasName exactly.
func New(client inventory.Client, aliasName string, logger *zap.Logger, metrics *monitoring.Metrics) *Discoverer {
	if aliasName == "" {
		aliasName = DefaultAliasName
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Discoverer{
		client:    client,
		aliasName: aliasName,
		logger:    logger,
		metrics:   metrics,
	}
}

// Discover yields one target per bot that has the production alias, in
// inventory order. Bots without it are omitted. The sequence queries the
// inventory lazily and starts over on every range. A listing error is
// yielded once and ends the sequence.
func (d *Discoverer) Discover(ctx context.Context) iter.Seq2[types.Target, error] {
	return func(yield func(types.Target, error) bool) {
		for bot, err := range inventory.Bots(ctx, d.client) {
			if err != nil {
				yield(types.Target{}, err)
				return
			}

			alias, found, err := MatchAlias(inventory.Aliases(ctx, d.client, bot.BotID), d.aliasName)
			if err != nil {
				yield(types.Target{}, err)
				return
			}
			if !found {
				d.logger.Debug("Bot has no production alias",
					zap.String("bot", bot.BotName),
					zap.String("alias", d.aliasName),
				)
				continue
			}

			d.logger.Info("Discovered bot",
				zap.String("bot", bot.BotName),
				zap.String("bot_id", bot.BotID),
				zap.String("alias_id", alias.AliasID),
			)
			d.metrics.IncBotsDiscovered()

			target := types.Target{
				BotName: bot.BotName,
				BotID:   bot.BotID,
				AliasID: alias.AliasID,
			}
			if !yield(target, nil) {
				return
			}
		}
	}
}

// MatchAlias returns the first alias whose name equals name exactly. Later
// pages are not fetched once a match is found.
func MatchAlias(aliases iter.Seq2[types.AliasRecord, error], name string) (types.AliasRecord, bool, error) {
	for alias, err := range aliases {
		if err != nil {
			return types.AliasRecord{}, false, err
		}
		if alias.AliasName == name {
			return alias, true, nil
		}
	}
	return types.AliasRecord{}, false, nil
}
