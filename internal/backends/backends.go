// Package backends registers every compiled-in extractor with a registry.
package backends

import (
	"context"
	"net/http"

	"go.uber.org/zap"
	genai "google.golang.org/genai"

	"github.com/thywilljoshua/pdf2md/internal/ai"
	"github.com/thywilljoshua/pdf2md/internal/config"
	"github.com/thywilljoshua/pdf2md/internal/extractor"
	"github.com/thywilljoshua/pdf2md/internal/layout"
	"github.com/thywilljoshua/pdf2md/internal/logging"
	"github.com/thywilljoshua/pdf2md/internal/native"
	"github.com/thywilljoshua/pdf2md/internal/ocr"
	"github.com/thywilljoshua/pdf2md/internal/raster"
	"github.com/thywilljoshua/pdf2md/internal/registry"
)

const (
	KeyLayout       = "layout"
	KeyNative       = "native"
	KeyTesseract    = "tesseract"
	KeyGemini       = "gemini"
	KeyGeminiPDF    = "gemini_pdf"
	KeyOpenAI       = "openai"
	KeyGoogleVision = "google_vision"
)

// Options carries what the factories need besides configuration. HTTPClient, when set, is
// used by the remote back-ends.
type Options struct {
	Config     config.Config
	Log        *zap.Logger
	HTTPClient *http.Client
}

// Register adds the full catalog to reg. Back-ends whose credentials or native data are missing
// are still registered; their factories fail, which keeps them out of ListAvailable.
func Register(reg *registry.Registry, opts Options) error {
	cfg, log := opts.Config, opts.Log
	log = logging.OrNop(log)

	// One genai client per process; it is safe for concurrent use.
	geminiClient := extractor.NewShared(func() (*genai.Client, error) {
		return ai.NewGeminiClient(context.Background(), ai.GeminiClientOptions{
			APIKey:     cfg.GoogleAPIKey,
			HTTPClient: opts.HTTPClient,
		})
	})
	gemini := func() (*ai.Gemini, error) {
		c, err := geminiClient.Get()
		if err != nil {
			return nil, err
		}
		return ai.NewGemini(c, cfg.GeminiModel, cfg.MaxImageSide, log), nil
	}

	entries := []struct {
		key, label string
		factory    registry.Factory
	}{
		{KeyLayout, "Layout (MuPDF)", func() (extractor.Extractor, error) {
			return layout.New(log), nil
		}},
		{KeyNative, "Native text layer", func() (extractor.Extractor, error) {
			return native.New(log), nil
		}},
		{KeyTesseract, "Tesseract", func() (extractor.Extractor, error) {
			t, err := ocr.New(ocr.Options{Lang: cfg.TesseractLang, TessdataPrefix: cfg.TessdataPrefix, DPI: cfg.DPI})
			if err != nil {
				return nil, err
			}
			return paged(t, cfg.DPI, log), nil
		}},
		{KeyGemini, "Gemini Vision", func() (extractor.Extractor, error) {
			g, err := gemini()
			if err != nil {
				return nil, err
			}
			return paged(g, cfg.DPI, log), nil
		}},
		{KeyGeminiPDF, "Gemini (whole document)", func() (extractor.Extractor, error) {
			g, err := gemini()
			if err != nil {
				return nil, err
			}
			return g, nil
		}},
		{KeyOpenAI, "OpenAI Vision", func() (extractor.Extractor, error) {
			o, err := ai.NewOpenAI(ai.OpenAIOptions{
				APIKey:     cfg.OpenAIAPIKey,
				BaseURL:    cfg.OpenAIBaseURL,
				Model:      cfg.OpenAIModel,
				MaxSide:    cfg.MaxImageSide,
				HTTPClient: opts.HTTPClient,
			})
			if err != nil {
				return nil, err
			}
			return paged(o, cfg.DPI, log), nil
		}},
		{KeyGoogleVision, "Google Cloud Vision", func() (extractor.Extractor, error) {
			v, err := ai.NewVision(ai.VisionOptions{
				APIKey:     cfg.VisionAPIKey,
				Endpoint:   cfg.VisionEndpoint,
				MaxSide:    cfg.MaxImageSide,
				HTTPClient: opts.HTTPClient,
				Log:        log,
			})
			if err != nil {
				return nil, err
			}
			return paged(v, cfg.DPI, log), nil
		}},
	}

	for _, e := range entries {
		if err := reg.Register(e.key, e.label, e.factory); err != nil {
			return err
		}
	}
	return nil
}

func paged(p extractor.ImagePredictor, dpi int, log *zap.Logger) *extractor.Paged {
	return &extractor.Paged{
		Predictor: p,
		Rasterize: raster.Rasterize,
		DPI:       dpi,
		Log:       log.Named("paged"),
	}
}
