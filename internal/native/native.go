// Package native reads the text layer a PDF already carries, plus its embedded images. It needs
// no OCR and no network, but returns nothing useful for scanned documents.
package native

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/zap"

	"github.com/thywilljoshua/pdf2md/internal/extractor"
	"github.com/thywilljoshua/pdf2md/internal/markdown"
)

var altText = strings.NewReplacer("[", "", "]", "")

// glyphWidth approximates one character of body text in points.
const glyphWidth = 5.5

type Native struct {
	log *zap.Logger
}

var _ extractor.Extractor = (*Native)(nil)

func New(log *zap.Logger) *Native {
	if log == nil {
		log = zap.NewNop()
	}
	return &Native{log: log.Named("native")}
}

func (n *Native) RunOnPDF(ctx context.Context, data []byte) (*extractor.Output, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("native: open pdf: %w", err)
	}
	images := n.imageSource(data)

	out := &extractor.Output{}
	var blocks []string
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text := markdown.Tabulate(pageText(p, n.log, i))

		refs, imgs := images(i)
		out.Images = append(out.Images, imgs...)
		if len(refs) > 0 {
			text = strings.TrimSpace(text + "\n\n" + strings.Join(refs, "\n\n"))
		}
		if text = strings.TrimSpace(text); text != "" {
			blocks = append(blocks, text)
		}
	}
	out.Markdown = strings.Join(blocks, "\n\n")
	return out, nil
}

// pageText returns the page's text stream. Writers that place every line with a text matrix
// leave no line breaks in it; those pages are rebuilt from positioned runs instead, with runs far
// apart on one line separated by two spaces so column layouts survive for Tabulate.
func pageText(p pdf.Page, log *zap.Logger, page int) string {
	text, err := p.GetPlainText(nil)
	if err != nil {
		log.Warn("page text unreadable", zap.Int("page", page), zap.Error(err))
	}
	if strings.Contains(text, "\n") {
		return text
	}
	rows, err := p.GetTextByRow()
	if err != nil || len(rows) < 2 {
		return text
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, joinRow(row.Content))
	}
	return strings.Join(lines, "\n")
}

func joinRow(runs []pdf.Text) string {
	var b strings.Builder
	var prev *pdf.Text
	for i := range runs {
		cur := &runs[i]
		if prev != nil {
			b.WriteString(separator(prev, cur))
		}
		b.WriteString(cur.S)
		prev = cur
	}
	return strings.TrimRight(b.String(), " ")
}

func separator(prev, cur *pdf.Text) string {
	if strings.HasSuffix(prev.S, " ") || strings.HasPrefix(cur.S, " ") {
		return ""
	}
	gap := cur.X - (prev.X + float64(utf8.RuneCountInString(prev.S))*glyphWidth)
	switch {
	case gap > 3*glyphWidth:
		return "  "
	case gap > glyphWidth/2:
		return " "
	}
	return ""
}

// imageSource returns a lookup of each page's embedded images. Documents pdfcpu cannot read
// yield no images; their text is still used.
func (n *Native) imageSource(data []byte) func(page int) ([]string, []extractor.Image) {
	none := func(int) ([]string, []extractor.Image) { return nil, nil }

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		n.log.Warn("embedded images unavailable", zap.Error(err))
		return none
	}

	return func(page int) ([]string, []extractor.Image) {
		found, err := pdfcpu.ExtractPageImages(ctx, page, false)
		if err != nil {
			n.log.Warn("page images unreadable", zap.Int("page", page), zap.Error(err))
			return nil, nil
		}
		objNrs := make([]int, 0, len(found))
		for nr := range found {
			objNrs = append(objNrs, nr)
		}
		sort.Ints(objNrs)

		var refs []string
		var imgs []extractor.Image
		for _, nr := range objNrs {
			img := found[nr]
			raw, err := io.ReadAll(img)
			if err != nil || len(raw) == 0 {
				continue
			}
			name := fmt.Sprintf("p%d_img_%d.%s", page, len(imgs)+1, fileType(img.FileType))
			imgs = append(imgs, extractor.Image{Name: name, Data: raw})
			refs = append(refs, "!["+altText.Replace(img.Name)+"]("+name+")")
		}
		return refs, imgs
	}
}

func fileType(t string) string {
	t = strings.ToLower(strings.TrimPrefix(t, "."))
	switch t {
	case "":
		return "png"
	case "jpeg":
		return "jpg"
	}
	return t
}
