// Package extract turns PDF bytes into text by rendering every page to a
// raster image and running OCR over it. Scanned and native PDFs are treated
// the same: no embedded text layer is consulted.
package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// renderScale upsamples pages above native resolution to improve OCR accuracy.
const renderScale = 1.5

// ErrNoReadableText means OCR ran over every page and recovered nothing.
// Callers use it to distinguish "found nothing" from "never ran".
var ErrNoReadableText = errors.New("ocr could not extract readable text from this pdf")

// PageRenderer rasterizes each page of a PDF at the given scale factor.
// Page order is preserved.
type PageRenderer interface {
	RenderPages(ctx context.Context, pdf []byte, scale float64) ([][]byte, error)
}

// Engine recognizes text in one page image. An Engine is scoped to a single
// extraction batch and must be closed when the batch ends.
type Engine interface {
	Recognize(image []byte) (string, error)
	Close() error
}

// EngineFactory creates one Engine per extraction batch for the given
// recognition language code.
type EngineFactory interface {
	New(language string) (Engine, error)
}

// Extractor is the text extraction use case consumed by the document pipeline.
type Extractor interface {
	Extract(ctx context.Context, pdf []byte) (string, error)
}

// OCRExtractor implements Extractor with a PageRenderer and an OCR Engine.
type OCRExtractor struct {
	renderer PageRenderer
	engines  EngineFactory
	language string
}

// NewOCRExtractor wires renderer + engine factory. language is the OCR
// recognition language code (e.g. "eng").
func NewOCRExtractor(renderer PageRenderer, engines EngineFactory, language string) *OCRExtractor {
	if language == "" {
		language = "eng"
	}
	return &OCRExtractor{renderer: renderer, engines: engines, language: language}
}

var _ Extractor = (*OCRExtractor)(nil)

// Extract renders every page at 1.5x, OCRs them sequentially with one engine,
// and joins the trimmed non-empty page results with a blank line in page
// order. Empty page images are skipped rather than aborting the document.
func (e *OCRExtractor) Extract(ctx context.Context, pdf []byte) (string, error) {
	pages, err := e.renderer.RenderPages(ctx, pdf, renderScale)
	if err != nil {
		return "", fmt.Errorf("render pdf pages: %w", err)
	}

	engine, err := e.engines.New(e.language)
	if err != nil {
		return "", fmt.Errorf("init ocr engine: %w", err)
	}
	defer engine.Close()

	var chunks []string
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if len(page) == 0 {
			continue
		}

		text, err := engine.Recognize(page)
		if err != nil {
			return "", fmt.Errorf("ocr page: %w", err)
		}
		if text = strings.TrimSpace(text); text != "" {
			chunks = append(chunks, text)
		}
	}

	out := strings.TrimSpace(strings.Join(chunks, "\n\n"))
	if out == "" {
		return "", ErrNoReadableText
	}
	return out, nil
}
