package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the configuration file looked up when no path is given.
const DefaultPath = "gpt-video-ebook.toml"

// Processing mode selection for a whole run.
const (
	ModeAsk      = "ask"
	ModeCaptions = "captions"
	ModeEnsemble = "ensemble"
)

// ASR backends.
const (
	BackendHosted = "hosted"
	BackendLocal  = "local"
)

// LLM providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config is the immutable run configuration. It is decoded once at startup
// and passed by value to every component.
type Config struct {
	Language  string `toml:"language"`
	LinksFile string `toml:"links_file"`
	WorkDir   string `toml:"work_dir"`
	OutputDir string `toml:"output_dir"`
	Mode      string `toml:"mode"`
	DotEnv    string `toml:"dotenv_file"`

	Logging  Logging  `toml:"logging"`
	Tools    Tools    `toml:"tools"`
	Download Download `toml:"download"`
	ASR      ASR      `toml:"asr"`
	LLM      LLM      `toml:"llm"`
	Ebook    Ebook    `toml:"ebook"`
}

// Logging controls the process logger.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Tools names the external binaries the pipeline shells out to.
type Tools struct {
	YTDLP   string `toml:"yt_dlp"`
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
	UVX     string `toml:"uvx"`
}

// Download configures the yt-dlp collaborator.
type Download struct {
	AudioQuality string `toml:"audio_quality"`
}

// ASR configures speech recognition.
type ASR struct {
	Backend        string   `toml:"backend"`
	BaseURL        string   `toml:"base_url"`
	Model          string   `toml:"model"`
	APIKey         string   `toml:"api_key"`
	APIKeyEnv      string   `toml:"api_key_env"`
	MaxUploadBytes int64    `toml:"max_upload_bytes"`
	SegmentSeconds int      `toml:"segment_seconds"`
	Local          LocalASR `toml:"local"`
}

// LocalASR configures the WhisperX backend.
type LocalASR struct {
	Model       string `toml:"model"`
	ComputeType string `toml:"compute_type"`
	Device      string `toml:"device"`
	BatchSize   int    `toml:"batch_size"`
}

// LLM configures transcript synthesis.
type LLM struct {
	Provider            string  `toml:"provider"`
	BaseURL             string  `toml:"base_url"`
	Model               string  `toml:"model"`
	GeminiModel         string  `toml:"gemini_model"`
	GeminiBaseURL       string  `toml:"gemini_base_url"`
	APIKey              string  `toml:"api_key"`
	APIKeyEnv           string  `toml:"api_key_env"`
	GeminiAPIKey        string  `toml:"gemini_api_key"`
	GeminiAPIKeyEnv     string  `toml:"gemini_api_key_env"`
	Temperature         float32 `toml:"temperature"`
	SingleWindowChars   int     `toml:"single_window_chars"`
	EnsembleWindowChars int     `toml:"ensemble_window_chars"`
}

// Ebook configures the document assembler.
type Ebook struct {
	WordsPerChapter int    `toml:"words_per_chapter"`
	Stylesheet      string `toml:"stylesheet"`
	Describe        bool   `toml:"describe"`
}

// Load reads the configuration at path on top of the defaults. An empty
// path falls back to DefaultPath, and a missing default file yields the
// built-in defaults. A missing explicit path is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Sample renders the default configuration as TOML.
func Sample() (string, error) {
	data, err := toml.Marshal(Default())
	if err != nil {
		return "", fmt.Errorf("encode sample config: %w", err)
	}
	return string(data), nil
}

// WindowChars returns the synthesis window length for the given number of
// transcript sources.
func (c Config) WindowChars(sources int) int {
	if sources > 1 {
		return c.LLM.EnsembleWindowChars
	}
	return c.LLM.SingleWindowChars
}
