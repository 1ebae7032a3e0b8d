//go:build integration
// +build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/GriffinCanCode/botsync/internal/clients/registry"
	"github.com/GriffinCanCode/botsync/internal/domain/discovery"
	"github.com/GriffinCanCode/botsync/internal/domain/provisioning"
	"github.com/GriffinCanCode/botsync/internal/domain/registrysync"
	"github.com/GriffinCanCode/botsync/internal/infrastructure/config"
	"github.com/GriffinCanCode/botsync/internal/infrastructure/logging"
	"github.com/GriffinCanCode/botsync/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/botsync/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/botsync/internal/jobs"
	"github.com/GriffinCanCode/botsync/internal/shared/id"
	"github.com/GriffinCanCode/botsync/internal/shared/paths"
	"github.com/GriffinCanCode/botsync/tests/helpers/testutil"
)

// TestConsulPipeline runs sync then provision against the Consul agent at
// CONSUL_HTTP_ADDR with a fake inventory and recording alarms.
func TestConsulPipeline(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping Consul pipeline test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.Registry.Backend = config.BackendConsul

	logger := zaptest.NewLogger(t)
	metrics := monitoring.NewMetrics()
	guard := resilience.NewGuard(registry.ConsulServiceName, resilience.GuardConfig{
		Timeout:      5 * time.Second,
		IsExpected:   registry.IsExpected,
	}, metrics, logger)
	store := registry.NewConsulStore(cfg.Registry, guard, logger)

	// unique names keep reruns and shared agents from interfering
	suffix := id.Default().GenerateString()
	resolved := "it-resolved-" + suffix
	unaliased := "it-unaliased-" + suffix

	inv := testutil.NewFakeInventory(1,
		testutil.Bot{ID: "B1" + suffix, Name: resolved, Aliases: [][2]string{{"TestAlias", "T1"}, {"PROD", "P1"}}},
		testutil.Bot{ID: "B2" + suffix, Name: unaliased, Aliases: [][2]string{{"TestAlias", "T2"}}},
	)
	alarms := testutil.NewRecordingAlarms()

	runner := jobs.NewRunner(jobs.Deps{
		Discoverer:  discovery.New(inv, discovery.DefaultAliasName, logger, metrics),
		Syncer:      registrysync.New(store, logger, metrics),
		Provisioner: provisioning.New(store, alarms, provisioning.TemplateFromConfig(cfg.Alarm), logger, metrics),
	}, &logging.Logger{Logger: logger}, metrics, nil)

	t.Run("Sync writes resolved bots", func(t *testing.T) {
		status, err := runner.Run(ctx, jobs.Sync)
		require.NoError(t, err, "Is a Consul agent reachable at %s?", cfg.Registry.ConsulAddr)
		assert.Equal(t, 200, status.StatusCode)

		got, err := store.Get(ctx, paths.BotPath(resolved, paths.BotID))
		require.NoError(t, err)
		assert.Equal(t, "B1"+suffix, got)

		got, err = store.Get(ctx, paths.BotPath(resolved, paths.BotAliasID))
		require.NoError(t, err)
		assert.Equal(t, "P1", got)

		_, err = store.Get(ctx, paths.BotPath(unaliased, paths.BotID))
		assert.ErrorIs(t, err, registry.ErrNotFound)
	})

	t.Run("Provision upserts one alarm per resolved bot", func(t *testing.T) {
		status, err := runner.Run(ctx, jobs.Provision)
		require.NoError(t, err)
		assert.Equal(t, 200, status.StatusCode)

		name := provisioning.AlarmName(cfg.Alarm.EnvPrefix, resolved)
		require.Contains(t, alarms.Alarms, name)
		spec := alarms.Alarms[name]
		assert.Equal(t, "B1"+suffix, spec.BotID)
		assert.Equal(t, "P1", spec.BotAliasID)

		_, ok := alarms.Alarms[provisioning.AlarmName(cfg.Alarm.EnvPrefix, unaliased)]
		assert.False(t, ok)
	})

	t.Run("Partial entries are skipped", func(t *testing.T) {
		partial := "it-partial-" + suffix
		require.NoError(t, store.Put(ctx, paths.BotPath(partial, paths.BotID), "B3"))

		status, err := runner.Run(ctx, jobs.Provision)
		require.NoError(t, err)

		body, ok := status.Body.(jobs.Body)
		require.True(t, ok)
		var found bool
		for _, res := range body.Report.Results {
			if res.BotName == partial {
				found = true
				assert.False(t, res.OK)
				assert.Equal(t, "NotFound", string(res.Kind))
			}
		}
		assert.True(t, found, "partial bot missing from report")
	})
}
