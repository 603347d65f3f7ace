package engine

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind names an engine implementation.
type Kind string

const (
	KindPDFText   Kind = "pdftext"
	KindTesseract Kind = "tesseract"
)

// Factory builds engine instances and selects the attempt chain for an
// input file. It holds only configuration, so one factory can serve
// concurrent requests.
type Factory struct {
	maxFileSize int64
	language    string
	order       []Kind
}

// NewFactory creates an engine factory. order is the preferred attempt
// sequence; a nil order defaults to pdftext then tesseract.
func NewFactory(maxFileSize int64, language string, order []Kind) *Factory {
	if len(order) == 0 {
		order = []Kind{KindPDFText, KindTesseract}
	}
	return &Factory{maxFileSize: maxFileSize, language: language, order: order}
}

// Create instantiates an engine of the given kind.
func (f *Factory) Create(kind Kind) (Engine, error) {
	switch kind {
	case KindPDFText:
		return NewPDFTextEngine(f.maxFileSize), nil
	case KindTesseract:
		return NewTesseractEngine(f.language), nil
	default:
		return nil, fmt.Errorf("unknown engine kind: %s", kind)
	}
}

// ChainForFile returns the engines to attempt for a file, in order. PDF
// inputs get the full configured chain; image inputs skip the text-layer
// engine since it only understands PDFs. The chain is capped at two
// attempts: a primary and at most one secondary.
func (f *Factory) ChainForFile(path string) ([]Engine, error) {
	isPDF := strings.EqualFold(filepath.Ext(path), ".pdf")

	var chain []Engine
	for _, kind := range f.order {
		if kind == KindPDFText && !isPDF {
			continue
		}
		eng, err := f.Create(kind)
		if err != nil {
			return nil, err
		}
		chain = append(chain, eng)
		if len(chain) == 2 {
			break
		}
	}
	if len(chain) == 0 {
		return nil, fmt.Errorf("no engine available for %s: %w", path, ErrUnavailable)
	}
	return chain, nil
}

// ParseKinds converts configured engine names to kinds.
func ParseKinds(names []string) ([]Kind, error) {
	kinds := make([]Kind, 0, len(names))
	for _, n := range names {
		kind := Kind(strings.ToLower(strings.TrimSpace(n)))
		switch kind {
		case KindPDFText, KindTesseract:
			kinds = append(kinds, kind)
		default:
			return nil, fmt.Errorf("unknown engine kind: %s", n)
		}
	}
	return kinds, nil
}
