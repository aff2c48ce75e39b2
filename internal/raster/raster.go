// Package raster renders PDF pages to PNG files with MuPDF.
package raster

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"
)

var ErrInvalidDPI = errors.New("raster: dpi must be positive")

// PageName is the on-disk name of the n-th (1-indexed) page image.
func PageName(n int) string {
	return fmt.Sprintf("page_%03d.png", n)
}

// Rasterize renders every page of pdf into dir, creating dir when missing, and returns the
// image paths in physical page order. The document is opened from memory.
func Rasterize(ctx context.Context, pdf []byte, dir string, dpi int) ([]string, error) {
	if dpi <= 0 {
		return nil, ErrInvalidDPI
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("raster: create %s: %w", dir, err)
	}

	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, fmt.Errorf("raster: open pdf: %w", err)
	}
	defer doc.Close()

	n := doc.NumPage()
	paths := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := filepath.Join(dir, PageName(i+1))
		if err := renderPage(doc, i, float64(dpi), p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// PageCount opens pdf with MuPDF and reports its number of pages.
func PageCount(pdf []byte) (int, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return 0, fmt.Errorf("raster: open pdf: %w", err)
	}
	defer doc.Close()
	return doc.NumPage(), nil
}

func renderPage(doc *fitz.Document, idx int, dpi float64, path string) error {
	img, err := doc.ImageDPI(idx, dpi)
	if err != nil {
		return fmt.Errorf("raster: render page %d: %w", idx+1, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("raster: create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := png.Encode(w, img); err != nil {
		f.Close()
		return fmt.Errorf("raster: encode page %d: %w", idx+1, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("raster: write page %d: %w", idx+1, err)
	}
	return f.Close()
}
