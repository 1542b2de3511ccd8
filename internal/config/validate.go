package config

import (
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Language == "" {
		return fmt.Errorf("language is required")
	}
	if c.LinksFile == "" {
		return fmt.Errorf("links_file is required")
	}
	switch c.Mode {
	case ModeAsk, ModeCaptions, ModeEnsemble:
	default:
		return fmt.Errorf("mode: unsupported value %q (want ask, captions or ensemble)", c.Mode)
	}
	if err := c.validateASR(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	if c.Ebook.WordsPerChapter <= 0 {
		return fmt.Errorf("ebook.words_per_chapter must be positive")
	}
	return nil
}

func (c *Config) validateASR() error {
	switch c.ASR.Backend {
	case BackendHosted:
		if c.ASR.Model == "" {
			return fmt.Errorf("asr.model is required for the hosted backend")
		}
		if c.ASR.MaxUploadBytes <= 0 {
			return fmt.Errorf("asr.max_upload_bytes must be positive")
		}
		if c.ASR.SegmentSeconds <= 0 {
			return fmt.Errorf("asr.segment_seconds must be positive")
		}
	case BackendLocal:
		if c.ASR.Local.Model == "" {
			return fmt.Errorf("asr.local.model is required for the local backend")
		}
	default:
		return fmt.Errorf("asr.backend: unsupported value %q (want hosted or local)", c.ASR.Backend)
	}
	return nil
}

func (c *Config) validateLLM() error {
	switch c.LLM.Provider {
	case ProviderOpenAI:
		if c.LLM.Model == "" {
			return fmt.Errorf("llm.model is required")
		}
	case ProviderGemini:
		if c.LLM.GeminiModel == "" {
			return fmt.Errorf("llm.gemini_model is required")
		}
	default:
		return fmt.Errorf("llm.provider: unsupported value %q (want openai or gemini)", c.LLM.Provider)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be within [0, 2]")
	}
	if c.LLM.SingleWindowChars <= 0 || c.LLM.EnsembleWindowChars <= 0 {
		return fmt.Errorf("llm window sizes must be positive")
	}
	return nil
}

func (c *Config) normalize() {
	c.Language = strings.ToLower(strings.TrimSpace(c.Language))
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	c.ASR.Backend = strings.ToLower(strings.TrimSpace(c.ASR.Backend))
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	c.ASR.APIKey = strings.TrimSpace(c.ASR.APIKey)
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	c.LLM.GeminiAPIKey = strings.TrimSpace(c.LLM.GeminiAPIKey)
	c.LLM.GeminiBaseURL = strings.TrimSpace(c.LLM.GeminiBaseURL)

	if c.WorkDir == "" {
		c.WorkDir = defaultWorkDir
	}
	if c.OutputDir == "" {
		c.OutputDir = defaultOutputDir
	}
	if c.Mode == "" {
		c.Mode = defaultMode
	}
	if c.Tools.YTDLP == "" {
		c.Tools.YTDLP = defaultYTDLPBinary
	}
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpegBinary
	}
	if c.Tools.FFprobe == "" {
		c.Tools.FFprobe = defaultFFprobeBinary
	}
	if c.Tools.UVX == "" {
		c.Tools.UVX = defaultUVXBinary
	}
	if c.ASR.APIKeyEnv == "" {
		c.ASR.APIKeyEnv = defaultAPIKeyEnv
	}
	if c.LLM.APIKeyEnv == "" {
		c.LLM.APIKeyEnv = defaultAPIKeyEnv
	}
	if c.LLM.GeminiAPIKeyEnv == "" {
		c.LLM.GeminiAPIKeyEnv = defaultGeminiKeyEnv
	}
	if c.Ebook.Stylesheet == "" {
		c.Ebook.Stylesheet = defaultStylesheet
	}
}

// Normalize applies defaults to fields cleared by flag overrides and
// re-validates the configuration.
func (c Config) Normalize() (Config, error) {
	c.normalize()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
