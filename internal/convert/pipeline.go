// Package convert runs one PDF through a registered back-end and turns whatever it produced into
// clean markdown, storing embedded images beside it.
package convert

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/thywilljoshua/pdf2md/internal/extractor"
	"github.com/thywilljoshua/pdf2md/internal/logging"
	"github.com/thywilljoshua/pdf2md/internal/markdown"
	"github.com/thywilljoshua/pdf2md/internal/registry"
)

// Resolver builds the extractor registered under a key.
type Resolver interface {
	Resolve(key string) (extractor.Extractor, error)
}

type Result struct {
	Markdown  string   `json:"markdown"`
	ExportID  string   `json:"export_id"`
	ImagesDir string   `json:"images_dir,omitempty"`
	Images    []string `json:"images"`
}

type Pipeline struct {
	resolver Resolver
	exports  Exports
	timeout  time.Duration
	log      *zap.Logger
}

// New returns a pipeline storing images under imagesRoot. A zero timeout disables the deadline.
func New(resolver Resolver, imagesRoot string, timeout time.Duration, log *zap.Logger) *Pipeline {
	return &Pipeline{
		resolver: resolver,
		exports:  Exports{Root: imagesRoot},
		timeout:  timeout,
		log:      logging.OrNop(log),
	}
}

func (p *Pipeline) Exports() Exports { return p.exports }

// Convert extracts pdf with the back-end registered under key. Errors are *Error.
func (p *Pipeline) Convert(ctx context.Context, pdf []byte, key string) (*Result, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, inputErr("No model selected")
	}
	if err := CheckPDF(pdf); err != nil {
		return nil, err
	}

	ex, err := p.resolve(key)
	if err != nil {
		return nil, err
	}
	defer extractor.Close(ex)

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	out, err := ex.RunOnPDF(ctx, pdf)
	if err != nil {
		return nil, p.extractionErr(ctx, key, err)
	}
	if out == nil {
		out = &extractor.Output{}
	}

	res := &Result{ExportID: NewExportID(), Images: []string{}}
	md := out.Markdown
	if len(out.Images) > 0 {
		md = p.foldImages(res, md, out.Images)
	}
	res.Markdown = markdown.Normalize(md)

	p.log.Info("conversion finished",
		zap.String("model", key),
		zap.String("export_id", res.ExportID),
		zap.Int("pages", PageCount(pdf)),
		zap.Int("images", len(res.Images)),
		zap.Duration("took", time.Since(start)),
	)
	return res, nil
}

// foldImages saves imgs, swaps their markdown references for placeholders and prepends the
// provenance note. References to images that could not be saved stay as they were.
func (p *Pipeline) foldImages(res *Result, md string, imgs []extractor.Image) string {
	saved, skipped, err := p.exports.Save(res.ExportID, imgs)
	if err != nil {
		p.log.Warn("image export failed", zap.String("export_id", res.ExportID), zap.Error(err))
	}
	for _, s := range skipped {
		p.log.Warn("image skipped", zap.String("export_id", res.ExportID), zap.Error(s))
	}
	for _, s := range saved {
		md = markdown.RewriteImageRef(md, s.Ref, s.Name)
		res.Images = append(res.Images, s.Name)
	}

	note := "_Export ID: " + res.ExportID + "_\n"
	if len(saved) > 0 {
		res.ImagesDir, _ = p.exports.Dir(res.ExportID)
		note += "_Images exported to: " + res.ImagesDir + "_\n"
	}
	return note + "\n" + md
}

func (p *Pipeline) resolve(key string) (extractor.Extractor, error) {
	ex, err := p.resolver.Resolve(key)
	switch {
	case err == nil:
		return ex, nil
	case errors.Is(err, registry.ErrUnknownKey):
		return nil, &Error{Kind: KindInput, Message: fmt.Sprintf("Unknown model %q", key), Err: err}
	}
	p.log.Warn("model unavailable", zap.String("model", key), zap.Error(err))
	cause := err
	var ue *registry.UnavailableError
	if errors.As(err, &ue) {
		cause = ue.Err
	}
	return nil, &Error{Kind: KindUnavailable, Message: fmt.Sprintf("Model %q is not available: %v", key, cause), Err: err}
}

func (p *Pipeline) extractionErr(ctx context.Context, key string, err error) error {
	p.log.Error("conversion failed", zap.String("model", key), zap.Error(err))
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &Error{Kind: KindExtraction, Message: fmt.Sprintf("Conversion timed out after %s", p.timeout), Err: err}
	}
	return &Error{Kind: KindExtraction, Message: "Conversion failed: " + err.Error(), Err: err}
}

func (p *Pipeline) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.timeout)
}
