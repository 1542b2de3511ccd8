package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/HugeFrog24/gpt-video-ebook/internal/config"
	"github.com/HugeFrog24/gpt-video-ebook/internal/deps"
	"github.com/HugeFrog24/gpt-video-ebook/internal/input"
	"github.com/HugeFrog24/gpt-video-ebook/internal/logging"
	"github.com/HugeFrog24/gpt-video-ebook/internal/prompt"
)

type runFlags struct {
	config    string
	links     string
	mode      string
	asr       string
	llm       string
	workDir   string
	outputDir string
	logLevel  string
	logFormat string
	describe  bool
}

func newRootCommand() *cobra.Command {
	var flags runFlags

	rootCmd := &cobra.Command{
		Use:           "gpt-video-ebook",
		Short:         "Turn video transcripts into EPUB books",
		Long:          "Reads video URLs from a links file, fetches captions and optionally transcribes the audio, polishes the text with a language model and writes one EPUB per video.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, flags)
		},
	}

	bindRunFlags(rootCmd, &flags)

	rootCmd.AddCommand(newConfigCommand())
	return rootCmd
}

func bindRunFlags(cmd *cobra.Command, flags *runFlags) {
	f := cmd.Flags()
	f.StringVarP(&flags.config, "config", "c", "", "Configuration file path (default "+config.DefaultPath+" when present)")
	f.StringVarP(&flags.links, "links", "l", "", "File with one video URL per line")
	f.StringVarP(&flags.mode, "mode", "m", "", "Processing mode: ask, captions or ensemble")
	f.StringVar(&flags.asr, "asr", "", "Speech recognition backend: hosted or local")
	f.StringVar(&flags.llm, "llm", "", "Language model provider: openai or gemini")
	f.StringVar(&flags.workDir, "workdir", "", "Directory for intermediate files")
	f.StringVarP(&flags.outputDir, "output-dir", "o", "", "Directory for EPUB files")
	f.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	f.StringVar(&flags.logFormat, "log-format", "", "Log format: console or json")
	f.BoolVar(&flags.describe, "describe", false, "Generate a book description for the EPUB metadata")
}

// loadConfig reads the configuration file and applies the flags that were
// set explicitly.
func loadConfig(cmd *cobra.Command, flags runFlags) (config.Config, error) {
	cfg, err := config.Load(flags.config)
	if err != nil {
		return config.Config{}, err
	}

	changed := cmd.Flags().Changed
	overrides := []struct {
		flag  string
		value string
		field *string
	}{
		{"links", flags.links, &cfg.LinksFile},
		{"mode", flags.mode, &cfg.Mode},
		{"asr", flags.asr, &cfg.ASR.Backend},
		{"llm", flags.llm, &cfg.LLM.Provider},
		{"workdir", flags.workDir, &cfg.WorkDir},
		{"output-dir", flags.outputDir, &cfg.OutputDir},
		{"log-level", flags.logLevel, &cfg.Logging.Level},
		{"log-format", flags.logFormat, &cfg.Logging.Format},
	}
	for _, o := range overrides {
		if changed(o.flag) {
			*o.field = o.value
		}
	}
	if changed("describe") {
		cfg.Ebook.Describe = flags.describe
	}

	return cfg.Normalize()
}

func runBatch(cmd *cobra.Command, flags runFlags) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	items, err := input.Load(cfg.LinksFile)
	if err != nil {
		return err
	}
	items, err = input.NewExpander(logger).Expand(ctx, items)
	if err != nil {
		return err
	}
	logger.Info("loaded links", logging.FieldCount, len(items), "file", cfg.LinksFile)

	interactive := prompt.IsTerminal(os.Stdin)
	prompter := prompt.New(cmd.InOrStdin(), cmd.ErrOrStderr())

	needAudio, err := resolveNeedAudio(cfg.Mode, interactive, prompter)
	if err != nil {
		return err
	}

	if err := deps.RequireAll(requirements(cfg, needAudio)); err != nil {
		return err
	}

	keys := newKeyResolver(cfg.DotEnv, interactive, prompter)
	runner, err := buildRunner(ctx, cfg, needAudio, keys, logger)
	if err != nil {
		return err
	}

	summary, err := runner.Run(ctx, items)
	if len(summary.Items) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), summary.Render())
	}
	return err
}

type confirmer interface {
	Confirm(question string) (bool, error)
}

// resolveNeedAudio turns the configured mode into the batch-wide decision
// whether speech recognition runs. ModeAsk asks on a terminal and falls
// back to captions only otherwise.
func resolveNeedAudio(mode string, interactive bool, c confirmer) (bool, error) {
	switch mode {
	case config.ModeCaptions:
		return false, nil
	case config.ModeEnsemble:
		return true, nil
	}
	if !interactive {
		return false, nil
	}
	ok, err := c.Confirm("Engage speech recognition for this run?")
	if err != nil {
		return false, fmt.Errorf("mode prompt: %w", err)
	}
	return ok, nil
}

// requirements lists the external binaries this run shells out to.
func requirements(cfg config.Config, needAudio bool) []deps.Requirement {
	reqs := []deps.Requirement{
		{Name: "yt-dlp", Command: cfg.Tools.YTDLP, Description: "captions and audio download"},
	}
	if !needAudio {
		return reqs
	}
	reqs = append(reqs, deps.Requirement{Name: "ffmpeg", Command: cfg.Tools.FFmpeg, Description: "audio extraction and splitting"})
	switch cfg.ASR.Backend {
	case config.BackendHosted:
		reqs = append(reqs, deps.Requirement{Name: "ffprobe", Command: cfg.Tools.FFprobe, Description: "audio duration probe"})
	case config.BackendLocal:
		reqs = append(reqs, deps.Requirement{Name: "uvx", Command: cfg.Tools.UVX, Description: "local WhisperX transcription"})
	}
	return reqs
}
