package extractor

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// RasterizeFunc renders pdf into dir and returns one image path per page in page order.
type RasterizeFunc func(ctx context.Context, pdf []byte, dir string, dpi int) ([]string, error)

// Paged adapts an ImagePredictor into an Extractor: the document is rasterized, every page is
// predicted and the non-empty results are joined under "## Page n" headings.
type Paged struct {
	Predictor ImagePredictor
	Rasterize RasterizeFunc
	DPI       int
	Log       *zap.Logger

	// TempDir is the parent of the per-call page directory; empty means os.TempDir.
	TempDir string
}

var (
	_ Extractor      = (*Paged)(nil)
	_ ImagePredictor = (*Paged)(nil)
)

func (p *Paged) RunOnPDF(ctx context.Context, pdf []byte) (*Output, error) {
	dir, err := os.MkdirTemp(p.TempDir, "pdf2md-pages-")
	if err != nil {
		return nil, fmt.Errorf("create page dir: %w", err)
	}
	defer os.RemoveAll(dir)

	paths, err := p.Rasterize(ctx, pdf, dir, p.DPI)
	if err != nil {
		return nil, fmt.Errorf("rasterize: %w", err)
	}

	blocks := make([]string, 0, len(paths))
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text := p.predictPage(ctx, i+1, path)
		if text = strings.TrimSpace(text); text == "" {
			continue
		}
		blocks = append(blocks, fmt.Sprintf("## Page %d\n%s", i+1, text))
	}
	return &Output{Markdown: strings.Join(blocks, "\n\n")}, nil
}

// predictPage never fails: errors become an inline marker so the rest of the document survives.
func (p *Paged) predictPage(ctx context.Context, page int, path string) string {
	defer os.Remove(path)

	img, err := os.ReadFile(path)
	if err != nil {
		return p.pageError(page, err)
	}
	text, err := p.Predictor.PredictImage(ctx, img)
	if err != nil {
		return p.pageError(page, err)
	}
	return text
}

func (p *Paged) pageError(page int, err error) string {
	if p.Log != nil {
		p.Log.Warn("page prediction failed", zap.Int("page", page), zap.Error(err))
	}
	return ErrorMarker(err)
}

func (p *Paged) PredictImage(ctx context.Context, img []byte) (string, error) {
	return p.Predictor.PredictImage(ctx, img)
}

// Close closes the wrapped predictor.
func (p *Paged) Close() error {
	return Close(p.Predictor)
}

// ErrorMarker is the inline text standing in for an image that could not be transcribed.
func ErrorMarker(err error) string {
	return "[OCR ERROR: " + err.Error() + "]"
}
