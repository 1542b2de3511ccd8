package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/HugeFrog24/gpt-video-ebook/internal/acquisition"
	"github.com/HugeFrog24/gpt-video-ebook/internal/config"
	"github.com/HugeFrog24/gpt-video-ebook/internal/credentials"
	"github.com/HugeFrog24/gpt-video-ebook/internal/downloader"
	"github.com/HugeFrog24/gpt-video-ebook/internal/ebook"
	"github.com/HugeFrog24/gpt-video-ebook/internal/executor"
	"github.com/HugeFrog24/gpt-video-ebook/internal/langcheck"
	"github.com/HugeFrog24/gpt-video-ebook/internal/llm"
	"github.com/HugeFrog24/gpt-video-ebook/internal/media"
	"github.com/HugeFrog24/gpt-video-ebook/internal/pipeline"
	"github.com/HugeFrog24/gpt-video-ebook/internal/synthesis"
	"github.com/HugeFrog24/gpt-video-ebook/internal/transcriber"
)

// keyResolver resolves each credential once per run. Services that share
// an environment variable share the answer.
type keyResolver struct {
	dotEnv      string
	interactive bool
	asker       credentials.Asker
	getenv      func(string) string
	cache       map[string]string
}

func newKeyResolver(dotEnv string, interactive bool, asker credentials.Asker) *keyResolver {
	return &keyResolver{
		dotEnv:      dotEnv,
		interactive: interactive,
		asker:       asker,
		getenv:      os.Getenv,
		cache:       make(map[string]string),
	}
}

// resolve walks env var, .env file, config value and finally the
// interactive prompt.
func (k *keyResolver) resolve(label, envVar, configValue string) (string, error) {
	if key, ok := k.cache[envVar]; ok {
		return key, nil
	}
	sources := []credentials.Source{
		credentials.Env{Var: envVar, Getenv: k.getenv},
		credentials.DotEnv{Path: k.dotEnv, Var: envVar},
		credentials.Static{Value: configValue},
	}
	if k.interactive {
		sources = append(sources, credentials.Prompt{Label: label, Asker: k.asker})
	}
	key, err := credentials.Resolve(sources...)
	if err != nil {
		return "", fmt.Errorf("%s (%s): %w", label, envVar, err)
	}
	k.cache[envVar] = key
	return key, nil
}

func buildRunner(ctx context.Context, cfg config.Config, needAudio bool, keys *keyResolver, logger *slog.Logger) (*pipeline.Runner, error) {
	exec := executor.New()
	detector := langcheck.New()

	dl := downloader.NewYTDLP(exec, downloader.YTDLPOptions{
		Binary:       cfg.Tools.YTDLP,
		AudioQuality: cfg.Download.AudioQuality,
	}, logger)
	coordinator := acquisition.New(dl, detector, acquisition.Options{
		WorkDir:  cfg.WorkDir,
		Language: cfg.Language,
	}, logger)

	var asr transcriber.Transcriber
	if needAudio {
		var err error
		asr, err = buildTranscriber(cfg, exec, keys, logger)
		if err != nil {
			return nil, err
		}
	}

	completer, err := buildCompleter(ctx, cfg, keys)
	if err != nil {
		return nil, err
	}

	return pipeline.New(pipeline.Deps{
		Acquirer:    coordinator,
		Transcriber: asr,
		Synthesizer: synthesis.New(completer, logger),
		Writer:      ebook.NewWriter(cfg.Ebook.Stylesheet, logger),
		Detector:    detector,
	}, pipeline.Options{
		WorkDir:         cfg.WorkDir,
		OutputDir:       cfg.OutputDir,
		Language:        cfg.Language,
		NeedAudio:       needAudio,
		SingleWindow:    cfg.WindowChars(1),
		EnsembleWindow:  cfg.WindowChars(2),
		WordsPerChapter: cfg.Ebook.WordsPerChapter,
		Describe:        cfg.Ebook.Describe,
	}, logger), nil
}

func buildTranscriber(cfg config.Config, exec executor.Executor, keys *keyResolver, logger *slog.Logger) (transcriber.Transcriber, error) {
	switch cfg.ASR.Backend {
	case config.BackendLocal:
		return transcriber.NewLocal(exec, transcriber.LocalOptions{
			UVX:         cfg.Tools.UVX,
			Model:       cfg.ASR.Local.Model,
			ComputeType: cfg.ASR.Local.ComputeType,
			Device:      cfg.ASR.Local.Device,
			BatchSize:   cfg.ASR.Local.BatchSize,
			Language:    cfg.Language,
			WorkDir:     cfg.WorkDir,
		}, logger), nil
	default:
		key, err := keys.resolve("Speech recognition API key", cfg.ASR.APIKeyEnv, cfg.ASR.APIKey)
		if err != nil {
			return nil, err
		}
		segmenter := media.NewSegmenter(exec, media.SegmenterOptions{
			FFmpeg:         cfg.Tools.FFmpeg,
			FFprobe:        cfg.Tools.FFprobe,
			WorkDir:        cfg.WorkDir,
			Threshold:      cfg.ASR.MaxUploadBytes,
			SegmentSeconds: cfg.ASR.SegmentSeconds,
		}, logger)
		return transcriber.NewHosted(transcriber.HostedOptions{
			APIKey:   key,
			BaseURL:  cfg.ASR.BaseURL,
			Model:    cfg.ASR.Model,
			Language: cfg.Language,
		}, segmenter, logger), nil
	}
}

func buildCompleter(ctx context.Context, cfg config.Config, keys *keyResolver) (llm.Completer, error) {
	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		key, err := keys.resolve("Gemini API key", cfg.LLM.GeminiAPIKeyEnv, cfg.LLM.GeminiAPIKey)
		if err != nil {
			return nil, err
		}
		gemini, err := llm.NewGemini(ctx, key, cfg.LLM.GeminiBaseURL, cfg.LLM.GeminiModel, cfg.LLM.Temperature)
		if err != nil {
			return nil, fmt.Errorf("gemini: %w", err)
		}
		return gemini, nil
	default:
		key, err := keys.resolve("Language model API key", cfg.LLM.APIKeyEnv, cfg.LLM.APIKey)
		if err != nil {
			return nil, err
		}
		return llm.NewOpenAI(key, cfg.LLM.BaseURL, cfg.LLM.Model, cfg.LLM.Temperature), nil
	}
}
