// Package pdf renders markdown reports as PDF files.
package pdf

import (
	"fmt"

	"github.com/mandolyte/mdtopdf"
)

// FromMarkdown writes the given markdown content as a PDF at pdfPath.
func FromMarkdown(markdown []byte, pdfPath string) error {
	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(markdown); err != nil {
		return fmt.Errorf("renderer.Process() > %w", err)
	}
	return nil
}
