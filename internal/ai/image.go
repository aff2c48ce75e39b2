// Package ai holds the remote vision back-ends: Gemini, OpenAI-compatible chat models and the
// Google Cloud Vision OCR endpoint.
package ai

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"net/http"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// fitImage shrinks img so its longest side is at most maxSide and returns the payload to upload
// with its MIME type. Images already small enough are sent untouched.
func fitImage(img []byte, maxSide int) ([]byte, string, error) {
	if len(img) == 0 {
		return nil, "", fmt.Errorf("empty image")
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(img))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	if maxSide <= 0 || (cfg.Width <= maxSide && cfg.Height <= maxSide) {
		return img, http.DetectContentType(img), nil
	}

	src, _, err := image.Decode(bytes.NewReader(img))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	w, h := scaled(cfg.Width, cfg.Height, maxSide)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, "", fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), "image/png", nil
}

func scaled(w, h, maxSide int) (int, int) {
	if w >= h {
		return maxSide, max(1, h*maxSide/w)
	}
	return max(1, w*maxSide/h), maxSide
}
