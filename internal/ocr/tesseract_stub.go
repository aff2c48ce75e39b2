//go:build notesseract

package ocr

import (
	"context"
	"errors"
)

var errNotCompiled = errors.New("tesseract: built with the notesseract tag")

type Tesseract struct{}

func New(Options) (*Tesseract, error) { return nil, errNotCompiled }

func (*Tesseract) PredictImage(context.Context, []byte) (string, error) {
	return "", errNotCompiled
}

func (*Tesseract) Close() error { return nil }
