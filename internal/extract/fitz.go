package extract

import (
	"bytes"
	"context"
	"fmt"
	"image/png"

	"github.com/gen2brain/go-fitz"
)

// pdfBaseDPI is the PDF native resolution the scale factor multiplies.
const pdfBaseDPI = 72

// FitzRenderer rasterizes PDF pages with MuPDF (go-fitz) and encodes them as PNG.
type FitzRenderer struct{}

func NewFitzRenderer() *FitzRenderer {
	return &FitzRenderer{}
}

var _ PageRenderer = (*FitzRenderer)(nil)

// RenderPages renders every page of the PDF at scale times native resolution.
// A page that fails to render produces an empty entry instead of aborting the
// document; the caller decides how to treat it.
func (r *FitzRenderer) RenderPages(ctx context.Context, pdf []byte, scale float64) ([][]byte, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	pages := make([][]byte, 0, doc.NumPage())
	for n := 0; n < doc.NumPage(); n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		img, err := doc.ImageDPI(n, pdfBaseDPI*scale)
		if err != nil {
			pages = append(pages, nil)
			continue
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode page %d: %w", n+1, err)
		}
		pages = append(pages, buf.Bytes())
	}

	return pages, nil
}
