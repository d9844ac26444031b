package extract

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// TesseractFactory creates batch-scoped Tesseract OCR engines.
type TesseractFactory struct{}

func NewTesseractFactory() *TesseractFactory {
	return &TesseractFactory{}
}

var _ EngineFactory = (*TesseractFactory)(nil)

// New initializes one Tesseract client for the given recognition language.
// The caller must Close it when the batch ends.
func (TesseractFactory) New(language string) (Engine, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage(language); err != nil {
		client.Close()
		return nil, fmt.Errorf("set ocr language %q: %w", language, err)
	}
	return &tesseractEngine{client: client}, nil
}

type tesseractEngine struct {
	client *gosseract.Client
}

func (e *tesseractEngine) Recognize(image []byte) (string, error) {
	if err := e.client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set ocr image: %w", err)
	}
	return e.client.Text()
}

func (e *tesseractEngine) Close() error {
	return e.client.Close()
}
