package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipbridge/internal/retention"
	"go.klb.dev/clipbridge/internal/store"
)

func newSweepCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "sweep [base-dir]",
		Short: "Delete expired images now",
		Long: `Runs one retention pass over <base-dir>/sharedclaude (or base-dir itself
when it already is the shared directory), deleting images older than
--lifetime. base-dir defaults to the current directory.`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, args []string) error { return runSweep(cmd, v, args) },
	}

	addRetentionFlags(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)
	return cmd
}

func runSweep(cmd *cobra.Command, v *viper.Viper, args []string) error {
	setupLogging(v)

	base := "."
	if len(args) == 1 {
		base = args[0]
	}
	cfg, err := buildConfig(v, base)
	if err != nil {
		return err
	}

	sw := retention.New(store.New(cfg.SharedDir), cfg.SweepInterval, cfg.Lifetime, slog.Default())
	n, err := sw.Sweep(time.Now())
	if err != nil {
		return fmt.Errorf("sweep %s: %w", cfg.SharedDir, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %d expired image(s) from %s\n", n, cfg.SharedDir)
	return nil
}
