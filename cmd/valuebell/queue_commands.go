package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"valuebell/internal/config"
	"valuebell/internal/fileutil"
	"valuebell/internal/queue"
	"valuebell/internal/staging"
	"valuebell/internal/textutil"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Manage the transcription job queue",
	}

	queueCmd.AddCommand(newQueueAddCommand(ctx))
	queueCmd.AddCommand(newQueueListCommand(ctx))
	queueCmd.AddCommand(newQueueRetryCommand(ctx))
	queueCmd.AddCommand(newQueueRemoveCommand(ctx))
	queueCmd.AddCommand(newQueueClearCommand(ctx))
	queueCmd.AddCommand(newQueueHealthCommand(ctx))

	return queueCmd
}

func newQueueAddCommand(ctx *commandContext) *cobra.Command {
	var (
		name     string
		language string
	)

	cmd := &cobra.Command{
		Use:   "add <url-or-file>",
		Short: "Enqueue a recording without processing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				source := strings.TrimSpace(args[0])
				sourceURL, sourcePath := splitSource(source)

				// Local files are copied into staging so the job still
				// has its input if the original moves before a later
				// `run` picks it up.
				if sourcePath != "" {
					staged, err := stageLocalSource(cfg, sourcePath)
					if err != nil {
						return err
					}
					sourcePath = staged
				}

				episodeName := strings.TrimSpace(name)
				if episodeName == "" {
					episodeName = textutil.DeriveTitle(source)
				}
				languageCode, err := resolveLanguage(cfg, language)
				if err != nil {
					return err
				}

				item, err := store.NewJob(cmd.Context(), episodeName, sourceURL, sourcePath, languageCode)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Enqueued job %d: %s\n", item.ID, item.EpisodeName)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Episode name used for output filenames (derived from the source when omitted)")
	cmd.Flags().StringVarP(&language, "language", "l", "", "Transcription language code (overrides configuration)")
	return cmd
}

func newQueueListCommand(ctx *commandContext) *cobra.Command {
	var statusFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List queued jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				var statuses []queue.Status
				if trimmed := strings.TrimSpace(statusFilter); trimmed != "" {
					status, ok := queue.ParseStatus(trimmed)
					if !ok {
						return fmt.Errorf("unknown status %q (known: %s)", trimmed, knownStatuses())
					}
					statuses = append(statuses, status)
				}

				items, err := store.List(cmd.Context(), statuses...)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(items) == 0 {
					fmt.Fprintln(out, "Queue is empty")
					return nil
				}

				colorize := shouldColorize(out)
				rows := make([][]string, 0, len(items))
				for _, item := range items {
					source := item.SourceURL
					if source == "" {
						source = item.SourcePath
					}
					rows = append(rows, []string{
						strconv.FormatInt(item.ID, 10),
						item.EpisodeName,
						decorateStatus(item.Status, colorize),
						source,
						item.ErrorMessage,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Episode", "Status", "Source", "Error"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&statusFilter, "status", "s", "", "Only show jobs with this status")
	return cmd
}

func newQueueRetryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "retry",
		Short: "Reset failed jobs back to pending",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				reset, err := store.RetryFailed(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reset %d failed job(s) to pending\n", reset)
				return nil
			})
		},
	}
}

func newQueueRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a job from the queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid job id %q", args[0])
			}
			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				removed, err := store.Remove(cmd.Context(), id)
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("no job with id %d", id)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed job %d\n", id)
				return nil
			})
		},
	}
}

func newQueueClearCommand(ctx *commandContext) *cobra.Command {
	var (
		completedOnly bool
		failedOnly    bool
	)

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove jobs from the queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			if completedOnly && failedOnly {
				return fmt.Errorf("--completed and --failed are mutually exclusive")
			}
			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				var (
					cleared int64
					err     error
				)
				switch {
				case completedOnly:
					cleared, err = store.ClearCompleted(cmd.Context())
				case failedOnly:
					cleared, err = store.ClearFailed(cmd.Context())
				default:
					cleared, err = store.Clear(cmd.Context())
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d job(s)\n", cleared)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&completedOnly, "completed", false, "Only remove completed jobs")
	cmd.Flags().BoolVar(&failedOnly, "failed", false, "Only remove failed jobs")
	return cmd
}

func newQueueHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show queue counts by lifecycle state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				summary, err := store.Health(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Total", "Pending", "Processing", "Failed", "Completed"},
					[][]string{{
						strconv.Itoa(summary.Total),
						strconv.Itoa(summary.Pending),
						strconv.Itoa(summary.Processing),
						strconv.Itoa(summary.Failed),
						strconv.Itoa(summary.Completed),
					}},
					[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight},
				))
				return nil
			})
		},
	}
}

func stageLocalSource(cfg *config.Config, sourcePath string) (string, error) {
	inbox := filepath.Join(cfg.Paths.StagingDir, staging.InboxDir)
	if err := os.MkdirAll(inbox, 0o755); err != nil {
		return "", fmt.Errorf("create inbox: %w", err)
	}
	staged := filepath.Join(inbox, filepath.Base(sourcePath))
	if err := fileutil.CopyFileVerified(sourcePath, staged); err != nil {
		return "", fmt.Errorf("stage %s: %w", sourcePath, err)
	}
	return staged, nil
}

func knownStatuses() string {
	statuses := queue.AllStatuses()
	names := make([]string, len(statuses))
	for i, status := range statuses {
		names[i] = string(status)
	}
	return strings.Join(names, ", ")
}
