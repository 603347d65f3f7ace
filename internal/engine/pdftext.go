package engine

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	pdfcpu "github.com/pdfcpu/pdfcpu/pkg/api"
)

const pdfTextEngineName = "pdftext"

// maxTextSize caps the amount of text pulled out of a single document.
// Identity cards are one page; anything beyond this is not card text.
const maxTextSize = 1 << 20

// PDFTextEngine extracts the embedded text layer of a PDF scan. It is the
// preferred primary engine for PDF inputs because the text layer, when
// present, is far cleaner than re-running OCR on the page images. pdfcpu
// validates the file, ledongthuc/pdf extracts the text.
type PDFTextEngine struct {
	maxFileSize int64
}

// NewPDFTextEngine creates a PDF text-layer engine.
func NewPDFTextEngine(maxFileSize int64) *PDFTextEngine {
	return &PDFTextEngine{maxFileSize: maxFileSize}
}

// Name returns the engine identifier.
func (e *PDFTextEngine) Name() string {
	return pdfTextEngineName
}

// Recognize validates the PDF and returns its text layer. A PDF without an
// extractable text layer yields an error so the pipeline can advance to the
// next engine.
func (e *PDFTextEngine) Recognize(ctx context.Context, input Input) (string, error) {
	if !strings.HasSuffix(strings.ToLower(input.Path), ".pdf") {
		return "", &Error{Engine: pdfTextEngineName, Op: "recognize", Err: ErrUnavailable}
	}
	if err := e.validateFile(input.Path); err != nil {
		return "", err
	}

	f, reader, err := pdf.Open(input.Path)
	if err != nil {
		return "", &Error{Engine: pdfTextEngineName, Op: "open", Err: err}
	}
	defer f.Close()

	var builder strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		select {
		case <-ctx.Done():
			return "", &Error{Engine: pdfTextEngineName, Op: "recognize", Err: ctx.Err()}
		default:
		}

		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			// A broken page is not fatal; other pages may still carry text.
			continue
		}
		if builder.Len()+len(content) > maxTextSize {
			remaining := maxTextSize - builder.Len()
			if remaining > 0 {
				builder.WriteString(content[:remaining])
			}
			break
		}
		builder.WriteString(content)
		builder.WriteString("\n")
	}

	text := builder.String()
	if strings.TrimSpace(text) == "" {
		return "", &Error{
			Engine: pdfTextEngineName,
			Op:     "recognize",
			Err:    fmt.Errorf("no text layer in %s", input.Path),
		}
	}
	return text, nil
}

// validateFile checks existence, size and structural validity.
func (e *PDFTextEngine) validateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return &Error{Engine: pdfTextEngineName, Op: "validate", Err: fmt.Errorf("file does not exist: %s", path)}
	}
	if err != nil {
		return &Error{Engine: pdfTextEngineName, Op: "validate", Err: err}
	}
	if info.IsDir() {
		return &Error{Engine: pdfTextEngineName, Op: "validate", Err: fmt.Errorf("path is a directory: %s", path)}
	}
	if e.maxFileSize > 0 && info.Size() > e.maxFileSize {
		return &Error{
			Engine: pdfTextEngineName,
			Op:     "validate",
			Err:    fmt.Errorf("file too large: %d bytes (max: %d bytes)", info.Size(), e.maxFileSize),
		}
	}
	if err := pdfcpu.ValidateFile(path, nil); err != nil {
		return &Error{Engine: pdfTextEngineName, Op: "validate", Err: err}
	}
	return nil
}
