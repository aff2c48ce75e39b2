// Package extractor defines the contract every PDF back-end implements and the shared paging
// behaviour used by back-ends that only understand single page images.
package extractor

import "context"

// Image is an embedded image a direct-document extractor lifted out of the PDF. Name is the
// basename the markdown refers to.
type Image struct {
	Name string
	Data []byte
}

// Output is what an extractor produced for one document.
type Output struct {
	Markdown string
	Images   []Image
}

// Extractor turns a whole PDF into markdown.
type Extractor interface {
	RunOnPDF(ctx context.Context, pdf []byte) (*Output, error)
}

// ImagePredictor transcribes one raster image (a rendered page or an exported picture).
type ImagePredictor interface {
	PredictImage(ctx context.Context, img []byte) (string, error)
}

// Close releases the extractor's resources when it holds any.
func Close(e any) error {
	if c, ok := e.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
