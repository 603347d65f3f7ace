package engine

import (
	"context"

	"github.com/otiai10/gosseract/v2"
)

const tesseractEngineName = "tesseract"

// TesseractEngine recognizes text in card photos through gosseract. A fresh
// client is created per call so concurrent recognitions never share state;
// the Tesseract C API is not safe to drive from one handle across
// goroutines.
type TesseractEngine struct {
	language string
}

// NewTesseractEngine creates a Tesseract-backed engine. The zero language
// defaults to English, which both supported card families print their
// machine-relevant fields in.
func NewTesseractEngine(language string) *TesseractEngine {
	if language == "" {
		language = "eng"
	}
	return &TesseractEngine{language: language}
}

// Name returns the engine identifier.
func (e *TesseractEngine) Name() string {
	return tesseractEngineName
}

// Recognize runs Tesseract over the input image. The recognition itself is
// not interruptible, so the context is checked before starting and the
// result discarded if the deadline passed meanwhile.
func (e *TesseractEngine) Recognize(ctx context.Context, input Input) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &Error{Engine: tesseractEngineName, Op: "recognize", Err: err}
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.language); err != nil {
		return "", &Error{Engine: tesseractEngineName, Op: "set_language", Err: err}
	}
	if err := client.SetImage(input.Path); err != nil {
		return "", &Error{Engine: tesseractEngineName, Op: "set_image", Err: err}
	}

	text, err := client.Text()
	if err != nil {
		return "", &Error{Engine: tesseractEngineName, Op: "recognize", Err: err}
	}
	if err := ctx.Err(); err != nil {
		return "", &Error{Engine: tesseractEngineName, Op: "recognize", Err: err}
	}
	return text, nil
}
