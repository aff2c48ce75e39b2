// Package ocr is the local OCR back-end, backed by Tesseract.
package ocr

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

var ErrNoLanguage = errors.New("tesseract: no language configured")

type Options struct {
	// Lang is one or more Tesseract language codes joined with "+", e.g. "mkd+eng".
	Lang string
	// TessdataPrefix overrides the directory holding *.traineddata files.
	TessdataPrefix string
	DPI            int
}

// Languages splits a Tesseract language list such as "eng+deu".
func Languages(list string) []string {
	var out []string
	for _, l := range strings.Split(list, "+") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// checkLanguages fails when any of want is missing. With a tessdata prefix the directory is
// inspected; otherwise installed reports what the linked Tesseract knows.
func checkLanguages(want []string, prefix string, installed func() ([]string, error)) error {
	if len(want) == 0 {
		return ErrNoLanguage
	}
	if prefix != "" {
		for _, l := range want {
			if _, err := os.Stat(filepath.Join(prefix, l+".traineddata")); err != nil {
				return fmt.Errorf("tesseract: language %q not found in %s", l, prefix)
			}
		}
		return nil
	}
	have, err := installed()
	if err != nil {
		return fmt.Errorf("tesseract: list languages: %w", err)
	}
	for _, l := range want {
		if !slices.Contains(have, l) {
			return fmt.Errorf("tesseract: language %q is not installed", l)
		}
	}
	return nil
}
