// Package layout converts PDFs with MuPDF's HTML output, keeping headings, lists, tables and
// the images embedded in each page.
package layout

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"

	"github.com/thywilljoshua/pdf2md/internal/extractor"
)

var dataImage = regexp.MustCompile(`src="data:image/([a-zA-Z0-9.+-]+);base64,([^"]*)"`)

// Layout is a direct-document extractor.
type Layout struct {
	conv *converter.Converter
	log  *zap.Logger
}

var _ extractor.Extractor = (*Layout)(nil)

func New(log *zap.Logger) *Layout {
	if log == nil {
		log = zap.NewNop()
	}
	return &Layout{
		conv: converter.NewConverter(converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			strikethrough.NewStrikethroughPlugin(),
			table.NewTablePlugin(),
		)),
		log: log.Named("layout"),
	}
}

func (l *Layout) RunOnPDF(ctx context.Context, pdf []byte) (*extractor.Output, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, fmt.Errorf("layout: open pdf: %w", err)
	}
	defer doc.Close()

	out := &extractor.Output{}
	pages := make([]string, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		html, err := doc.HTML(i, true)
		if err != nil {
			return nil, fmt.Errorf("layout: page %d: %w", i+1, err)
		}
		html, imgs := liftImages(html, i+1, l.log)
		md, err := l.conv.ConvertString(html)
		if err != nil {
			return nil, fmt.Errorf("layout: convert page %d: %w", i+1, err)
		}
		out.Images = append(out.Images, imgs...)
		if md = strings.TrimSpace(md); md != "" {
			pages = append(pages, md)
		}
	}
	out.Markdown = strings.Join(pages, "\n\n")
	return out, nil
}

// liftImages swaps inline data URIs in html for file names and returns the decoded payloads.
// Images whose payload does not decode are dropped from the page.
func liftImages(html string, page int, log *zap.Logger) (string, []extractor.Image) {
	var imgs []extractor.Image
	html = dataImage.ReplaceAllStringFunc(html, func(m string) string {
		sub := dataImage.FindStringSubmatch(m)
		payload := strings.Join(strings.Fields(sub[2]), "")
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			log.Warn("inline image dropped", zap.Int("page", page), zap.Error(err))
			return `src=""`
		}
		name := fmt.Sprintf("page_%03d_img_%02d.%s", page, len(imgs)+1, extension(sub[1]))
		imgs = append(imgs, extractor.Image{Name: name, Data: data})
		return `src="` + name + `"`
	})
	return html, imgs
}

func extension(subtype string) string {
	switch subtype = strings.ToLower(subtype); subtype {
	case "jpeg", "pjpeg":
		return "jpg"
	case "svg+xml":
		return "svg"
	case "x-icon", "vnd.microsoft.icon":
		return "ico"
	}
	return subtype
}
