package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"valuebell/internal/config"
	"valuebell/internal/language"
	"valuebell/internal/pipeline"
	"valuebell/internal/queue"
	"valuebell/internal/textutil"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var (
		name        string
		language    string
		zipOutputs  bool
		keepStaging bool
	)

	cmd := &cobra.Command{
		Use:   "process <url-or-file>",
		Short: "Transcribe a single recording",
		Long:  "Enqueues the given URL or local media file and runs it through download, conversion, transcription, and rendering.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				source := strings.TrimSpace(args[0])
				sourceURL, sourcePath := splitSource(source)

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

				logger, err := ctx.newLogger()
				if err != nil {
					return err
				}
				p := pipeline.New(cfg, store, pipeline.Options{Zip: zipOutputs, KeepStaging: keepStaging}, logger)
				outcome, err := p.ProcessItem(cmd.Context(), item)
				if err != nil {
					return err
				}

				printOutcome(cmd, *outcome)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Episode name used for output filenames (derived from the source when omitted)")
	cmd.Flags().StringVarP(&language, "language", "l", "", "Transcription language code (overrides configuration)")
	cmd.Flags().BoolVar(&zipOutputs, "zip", false, "Bundle the rendered artifacts into a ZIP archive")
	cmd.Flags().BoolVar(&keepStaging, "keep-staging", false, "Keep the per-run staging directory after processing")
	return cmd
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var (
		zipOutputs  bool
		keepStaging bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process every pending job in the queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				logger, err := ctx.newLogger()
				if err != nil {
					return err
				}
				p := pipeline.New(cfg, store, pipeline.Options{Zip: zipOutputs, KeepStaging: keepStaging}, logger)
				outcomes, err := p.Run(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(outcomes) == 0 {
					fmt.Fprintln(out, "No pending jobs")
					return nil
				}
				for _, outcome := range outcomes {
					printOutcome(cmd, outcome)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&zipOutputs, "zip", false, "Bundle each job's artifacts into a ZIP archive")
	cmd.Flags().BoolVar(&keepStaging, "keep-staging", false, "Keep per-run staging directories after processing")
	return cmd
}

// splitSource decides whether the input is a remote URL or a local
// file path.
func splitSource(source string) (sourceURL, sourcePath string) {
	lower := strings.ToLower(source)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return source, ""
	}
	return "", source
}

// resolveLanguage normalizes a --language value ("English", "eng",
// "en") to the ISO 639-1 code the API expects, defaulting to the
// configured language when the flag is empty.
func resolveLanguage(cfg *config.Config, flag string) (string, error) {
	if strings.TrimSpace(flag) == "" {
		return cfg.Transcription.Language, nil
	}
	code := language.ToISO2(flag)
	if code == "" {
		return "", fmt.Errorf("unrecognized language %q", flag)
	}
	return code, nil
}

func printOutcome(cmd *cobra.Command, outcome pipeline.Outcome) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Completed: %s\n", outcome.Item.EpisodeName)
	fmt.Fprintf(out, "  transcript: %s\n", outcome.Paths.Transcript)
	fmt.Fprintf(out, "  subtitles:  %s\n", outcome.Paths.Subtitles)
	if outcome.Paths.RawJSON != "" {
		fmt.Fprintf(out, "  raw json:   %s\n", outcome.Paths.RawJSON)
	}
	if outcome.ZipPath != "" {
		fmt.Fprintf(out, "  bundle:     %s\n", outcome.ZipPath)
	}
	for _, warning := range outcome.Warnings {
		fmt.Fprintf(out, "  %s\n", warning)
	}
}
