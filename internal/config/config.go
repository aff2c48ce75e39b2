// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the server, the CLI and the back-ends read.
type Config struct {
	Addr           string
	ImagesDir      string
	DPI            int
	Timeout        time.Duration
	MaxUploadBytes int64
	MaxImageSide   int

	LogFile     string
	Development bool

	TesseractLang  string
	TessdataPrefix string

	GoogleAPIKey string
	GeminiModel  string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	VisionAPIKey   string
	VisionEndpoint string
}

const (
	DefaultDPI            = 220
	DefaultGeminiModel    = "gemini-2.5-flash"
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultVisionEndpoint = "https://vision.googleapis.com/v1/images:annotate"
)

// Load reads .env from the working directory when present and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv builds a Config from environment variables only.
func FromEnv() Config {
	return Config{
		Addr:           envString("PDF2MD_ADDR", ":8000"),
		ImagesDir:      envString("PDF_IMAGE_OUTPUT_DIR", "exported_images"),
		DPI:            envInt("PDF2MD_DPI", DefaultDPI),
		Timeout:        envDuration("PDF2MD_TIMEOUT", 5*time.Minute),
		MaxUploadBytes: int64(envInt("PDF2MD_MAX_UPLOAD_MB", 100)) << 20,
		MaxImageSide:   envInt("PDF2MD_MAX_IMAGE_SIDE", 2000),

		LogFile:     envString("PDF2MD_LOG_FILE", "pdf2md.log"),
		Development: envBool("PDF2MD_DEV", false),

		TesseractLang:  envString("TESSERACT_LANG", "mkd"),
		TessdataPrefix: envString("TESSDATA_PREFIX", ""),

		GoogleAPIKey: envString("GOOGLE_API_KEY", envString("GEMINI_API_KEY", "")),
		GeminiModel:  envString("GEMINI_MODEL", DefaultGeminiModel),

		OpenAIAPIKey:  envString("OPENAI_API_KEY", ""),
		OpenAIBaseURL: envString("OPENAI_BASE_URL", ""),
		OpenAIModel:   envString("OPENAI_MODEL", DefaultOpenAIModel),

		VisionAPIKey:   envString("GOOGLE_VISION_API_KEY", ""),
		VisionEndpoint: envString("GOOGLE_VISION_ENDPOINT", DefaultVisionEndpoint),
	}
}

// Validate reports settings that would make every conversion fail.
func (c Config) Validate() error {
	if c.DPI <= 0 {
		return fmt.Errorf("config: PDF2MD_DPI must be positive, got %d", c.DPI)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("config: PDF2MD_TIMEOUT must be positive, got %s", c.Timeout)
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("config: PDF2MD_MAX_UPLOAD_MB must be positive")
	}
	if c.ImagesDir == "" {
		return errors.New("config: PDF_IMAGE_OUTPUT_DIR cannot be empty")
	}
	return nil
}
