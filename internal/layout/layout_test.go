package layout

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/gen2brain/go-fitz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/thywilljoshua/pdf2md/internal/pdftest"
)

func TestLiftImages(t *testing.T) {
	png := []byte("\x89PNG fake")
	jpg := []byte("\xff\xd8 fake")
	payload := base64.StdEncoding.EncodeToString(png)
	html := `<p><img src="data:image/png;base64,` + payload[:4] + "\n" + payload[4:] + `"></p>` +
		`<img style="x" src="data:image/jpeg;base64,` + base64.StdEncoding.EncodeToString(jpg) + `">` +
		`<img src="data:image/gif;base64,!!!">` +
		`<img src="https://example.com/a.png">`

	out, imgs := liftImages(html, 3, zaptest.NewLogger(t))

	require.Len(t, imgs, 2)
	assert.Equal(t, "page_003_img_01.png", imgs[0].Name)
	assert.Equal(t, png, imgs[0].Data)
	assert.Equal(t, "page_003_img_02.jpg", imgs[1].Name)
	assert.Equal(t, jpg, imgs[1].Data)

	assert.Contains(t, out, `src="page_003_img_01.png"`)
	assert.Contains(t, out, `src="page_003_img_02.jpg"`)
	assert.Contains(t, out, `src=""`)
	assert.Contains(t, out, `src="https://example.com/a.png"`)
	assert.NotContains(t, out, "base64")
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "jpg", extension("JPEG"))
	assert.Equal(t, "svg", extension("svg+xml"))
	assert.Equal(t, "webp", extension("webp"))
}

func TestLayout_RunOnPDF(t *testing.T) {
	pdf := pdftest.Build("Quarterly report", "", "Closing words")
	if doc, err := fitz.NewFromMemory(pdf); err != nil {
		t.Skipf("mupdf cannot open fixture: %v", err)
	} else {
		doc.Close()
	}

	out, err := New(zaptest.NewLogger(t)).RunOnPDF(context.Background(), pdf)
	require.NoError(t, err)
	assert.Contains(t, out.Markdown, "Quarterly")
	assert.Contains(t, out.Markdown, "Closing")
	assert.Less(t, strings.Index(out.Markdown, "Quarterly"), strings.Index(out.Markdown, "Closing"))
	assert.Empty(t, out.Images)
	assert.NotContains(t, out.Markdown, "\n\n\n")
}

func TestLayout_RejectsGarbage(t *testing.T) {
	_, err := New(nil).RunOnPDF(context.Background(), []byte("not a pdf"))
	assert.Error(t, err)
}
