package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/botsync/internal/infrastructure/config"
	"github.com/GriffinCanCode/botsync/internal/jobs"
)

// options holds state shared by every command
type options struct {
	output string
	cfg    *config.Config
}

func newRootCmd(version string) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "botsync",
		Short: "Sync Lex bots into a registry and provision their alarms",
		Long: `botsync discovers Lex V2 bots and their PROD alias, writes their ids to a
path-addressed registry (SSM Parameter Store or Consul KV) and upserts one
CloudWatch RuntimeSystemErrors alarm per bot found in the registry.

Configuration comes from the environment; see the config package for the
full list of variables.`,
		Version:       version,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.output); err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&opts.output, "output", "o", formatJSON,
		"status record format: json or yaml")

	root.AddCommand(
		newJobCmd(opts, jobs.Discover, "List bots that have a production alias",
			`Query the Lex inventory and print every bot with its PROD alias id.

Examples:
  botsync discover
  botsync discover -o yaml`),
		newJobCmd(opts, jobs.Sync, "Write discovered bot ids to the registry",
			`Discover bots and overwrite /lex/{bot}/BotId and /lex/{bot}/BotAliasId
for each one. Write failures are reported per bot; a listing failure aborts
the run with exit code 1.`),
		newJobCmd(opts, jobs.Provision, "Upsert one alarm per resolved bot",
			`Scan the registry under /lex/ and upsert the RuntimeSystemErrors alarm
for every bot that has both ids. Bots with only one id are skipped and
reported.`),
		newServeCmd(opts),
	)

	return root
}

func newJobCmd(opts *options, name, short, long string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(cmd, opts, name)
		},
	}
}

func runJob(cmd *cobra.Command, opts *options, name string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, opts.cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	status, runErr := a.runner.Run(ctx, name)
	a.pushMetrics(ctx)
	if runErr != nil {
		return fmt.Errorf("%s: %w", name, runErr)
	}
	return writeStatus(cmd.OutOrStdout(), status, opts.output)
}

func writeStatus(w io.Writer, status jobs.Status, format string) error {
	data, err := encodeStatus(status, format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
