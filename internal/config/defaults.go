package config

const (
	defaultLanguage            = "en"
	defaultLinksFile           = "links.txt"
	defaultWorkDir             = "."
	defaultOutputDir           = "."
	defaultMode                = ModeAsk
	defaultLogLevel            = "info"
	defaultLogFormat           = "console"
	defaultYTDLPBinary         = "yt-dlp"
	defaultFFmpegBinary        = "ffmpeg"
	defaultFFprobeBinary       = "ffprobe"
	defaultUVXBinary           = "uvx"
	defaultAudioQuality        = "64K"
	defaultASRBackend          = BackendHosted
	defaultHostedBaseURL       = "https://api.groq.com/openai/v1"
	defaultHostedModel         = "whisper-large-v3"
	defaultMaxUploadBytes      = 24 << 20
	defaultSegmentSeconds      = 900
	defaultLocalModel          = "small"
	defaultLocalComputeType    = "int8"
	defaultLocalDevice         = "cpu"
	defaultLocalBatchSize      = 4
	defaultLLMProvider         = ProviderOpenAI
	defaultLLMBaseURL          = "https://api.groq.com/openai/v1"
	defaultLLMModel            = "llama-3.3-70b-versatile"
	defaultGeminiModel         = "gemini-2.5-flash"
	defaultTemperature         = 0.3
	defaultSingleWindowChars   = 12000
	defaultEnsembleWindowChars = 6000
	defaultWordsPerChapter     = 1000
	defaultStylesheet          = "assets/ebook.css"
	defaultAPIKeyEnv           = "GROQ_API_KEY"
	defaultGeminiKeyEnv        = "GEMINI_API_KEY"
	defaultDotEnvFile          = ".env"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Language:  defaultLanguage,
		LinksFile: defaultLinksFile,
		WorkDir:   defaultWorkDir,
		OutputDir: defaultOutputDir,
		Mode:      defaultMode,
		DotEnv:    defaultDotEnvFile,
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Tools: Tools{
			YTDLP:   defaultYTDLPBinary,
			FFmpeg:  defaultFFmpegBinary,
			FFprobe: defaultFFprobeBinary,
			UVX:     defaultUVXBinary,
		},
		Download: Download{
			AudioQuality: defaultAudioQuality,
		},
		ASR: ASR{
			Backend:        defaultASRBackend,
			BaseURL:        defaultHostedBaseURL,
			Model:          defaultHostedModel,
			APIKeyEnv:      defaultAPIKeyEnv,
			MaxUploadBytes: defaultMaxUploadBytes,
			SegmentSeconds: defaultSegmentSeconds,
			Local: LocalASR{
				Model:       defaultLocalModel,
				ComputeType: defaultLocalComputeType,
				Device:      defaultLocalDevice,
				BatchSize:   defaultLocalBatchSize,
			},
		},
		LLM: LLM{
			Provider:            defaultLLMProvider,
			BaseURL:             defaultLLMBaseURL,
			Model:               defaultLLMModel,
			GeminiModel:         defaultGeminiModel,
			APIKeyEnv:           defaultAPIKeyEnv,
			GeminiAPIKeyEnv:     defaultGeminiKeyEnv,
			Temperature:         defaultTemperature,
			SingleWindowChars:   defaultSingleWindowChars,
			EnsembleWindowChars: defaultEnsembleWindowChars,
		},
		Ebook: Ebook{
			WordsPerChapter: defaultWordsPerChapter,
			Stylesheet:      defaultStylesheet,
		},
	}
}
