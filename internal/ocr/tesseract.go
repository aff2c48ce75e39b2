//go:build !notesseract

package ocr

import (
	"context"
	"fmt"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract owns one gosseract client. Calls are serialized; build one per conversion.
type Tesseract struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// New checks that the configured language data is installed and opens a client.
func New(opts Options) (*Tesseract, error) {
	langs := Languages(opts.Lang)
	if err := checkLanguages(langs, opts.TessdataPrefix, gosseract.GetAvailableLanguages); err != nil {
		return nil, err
	}

	c := gosseract.NewClient()
	if opts.TessdataPrefix != "" {
		if err := c.SetTessdataPrefix(opts.TessdataPrefix); err != nil {
			c.Close()
			return nil, fmt.Errorf("tesseract: tessdata prefix: %w", err)
		}
	}
	if err := c.SetLanguage(langs...); err != nil {
		c.Close()
		return nil, fmt.Errorf("tesseract: set language: %w", err)
	}
	if opts.DPI > 0 {
		if err := c.SetVariable("user_defined_dpi", fmt.Sprint(opts.DPI)); err != nil {
			c.Close()
			return nil, fmt.Errorf("tesseract: set dpi: %w", err)
		}
	}
	return &Tesseract{client: c}, nil
}

func (t *Tesseract) PredictImage(ctx context.Context, img []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.client.SetImageFromBytes(img); err != nil {
		return "", fmt.Errorf("tesseract: set image: %w", err)
	}
	text, err := t.client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract: recognize: %w", err)
	}
	return text, nil
}

func (t *Tesseract) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.client.Close()
}
