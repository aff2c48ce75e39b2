package convert

import (
	"bytes"

	rpdf "rsc.io/pdf"
)

var pdfMagic = []byte("%PDF-")

// magicWindow is how far into the file the header may start; some writers prepend junk.
const magicWindow = 1024

// CheckPDF rejects payloads that are not PDF documents.
func CheckPDF(pdf []byte) error {
	if len(pdf) == 0 {
		return inputErr("No file provided")
	}
	head := pdf
	if len(head) > magicWindow {
		head = head[:magicWindow]
	}
	if !bytes.Contains(head, pdfMagic) {
		return inputErr("Uploaded file is not a PDF")
	}
	return nil
}

// PageCount is a best-effort page count used for logging. It returns 0 when the document uses
// structures the reader does not understand (cross-reference streams, for one).
func PageCount(pdf []byte) (n int) {
	defer func() {
		if recover() != nil {
			n = 0
		}
	}()
	doc, err := rpdf.NewReader(bytes.NewReader(pdf), int64(len(pdf)))
	if err != nil {
		return 0
	}
	return doc.NumPage()
}
