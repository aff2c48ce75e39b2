//go:build !notesseract

package ocr

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"github.com/otiai10/gosseract/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTesseract_MissingLanguage(t *testing.T) {
	_, err := New(Options{Lang: "zz-not-a-language"})
	assert.Error(t, err)
}

func TestTesseract_BlankPage(t *testing.T) {
	langs, err := gosseract.GetAvailableLanguages()
	if err != nil || len(langs) == 0 {
		t.Skip("tesseract language data not available")
	}
	lang := langs[0]
	for _, l := range langs {
		if l == "eng" {
			lang = l
		}
	}

	tess, err := New(Options{Lang: lang, DPI: 220})
	require.NoError(t, err)
	defer tess.Close()

	img := image.NewGray(image.Rect(0, 0, 200, 100))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	text, err := tess.PredictImage(context.Background(), buf.Bytes())
	require.NoError(t, err)
	assert.Empty(t, bytes.TrimSpace([]byte(text)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = tess.PredictImage(ctx, buf.Bytes())
	assert.ErrorIs(t, err, context.Canceled)
}
