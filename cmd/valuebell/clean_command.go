package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"valuebell/internal/staging"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove stale staging directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			result := staging.CleanStale(cfg.Paths.StagingDir, olderThan, logger)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Removed %d stale staging director(ies)\n", len(result.Removed))
			for _, cleanupErr := range result.Errors {
				fmt.Fprintf(out, "  failed: %s (%v)\n", cleanupErr.Path, cleanupErr.Error)
			}
			if len(result.Errors) > 0 {
				return fmt.Errorf("%d director(ies) could not be removed", len(result.Errors))
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 24*time.Hour, "Only remove staging directories older than this")
	return cmd
}
