package convert

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/thywilljoshua/pdf2md/internal/extractor"
	"github.com/thywilljoshua/pdf2md/internal/markdown"
)

// OCRExport transcribes every image saved under exportID with the back-end registered under key
// and returns file name -> text. An unknown export yields an empty map. A failing image gets an
// error marker instead of text.
func (p *Pipeline) OCRExport(ctx context.Context, exportID, key string) (map[string]string, error) {
	names, err := p.exports.Images(exportID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(names))
	if len(names) == 0 {
		return out, nil
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return nil, inputErr("No model selected")
	}
	ex, err := p.resolve(key)
	if err != nil {
		return nil, err
	}
	defer extractor.Close(ex)
	pred, ok := ex.(extractor.ImagePredictor)
	if !ok {
		return nil, inputErr("Model %q cannot read single images", key)
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	dir, _ := p.exports.Dir(exportID)
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, p.extractionErr(ctx, key, err)
		}
		out[name] = p.predictFile(ctx, pred, filepath.Join(dir, name))
	}
	return out, nil
}

func (p *Pipeline) predictFile(ctx context.Context, pred extractor.ImagePredictor, path string) string {
	data, err := os.ReadFile(path)
	if err == nil {
		var text string
		if text, err = pred.PredictImage(ctx, data); err == nil {
			return strings.TrimSpace(text)
		}
	}
	p.log.Warn("image ocr failed", zap.String("file", filepath.Base(path)), zap.Error(err))
	return extractor.ErrorMarker(err)
}

// Overlay runs OCRExport and writes the results under the matching placeholders of md.
func (p *Pipeline) Overlay(ctx context.Context, md, exportID, key string) (string, map[string]string, error) {
	ocr, err := p.OCRExport(ctx, exportID, key)
	if err != nil {
		return "", nil, err
	}
	return markdown.InjectOCR(md, ocr), ocr, nil
}

