package extract

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cardsnap/idcard-extract/internal/schema"
	"github.com/cardsnap/idcard-extract/internal/textproc"
)

// Extractor converts raw OCR text into a structured record for one document
// type. It holds only the immutable schema, so a single Extractor is safe
// to use from concurrent goroutines; every Extract call builds its own
// working state.
type Extractor struct {
	doc *schema.Document
}

// Extraction is the result of one Extract call.
type Extraction struct {
	ID            string
	DocType       schema.DocType
	Record        Record
	Dates         []DateCandidate
	CleanedLength int
}

// NewExtractor creates an extractor for the given document type.
func NewExtractor(docType schema.DocType) (*Extractor, error) {
	doc, err := schema.ForType(docType)
	if err != nil {
		return nil, fmt.Errorf("create extractor: %w", err)
	}
	return &Extractor{doc: doc}, nil
}

// Schema returns the extractor's document schema.
func (e *Extractor) Schema() *schema.Document {
	return e.doc
}

// Extract runs the full text pipeline: normalization, line classification,
// field cascades, date role classification, the name heuristic, and final
// assembly. Individual fields that cannot be matched degrade to empty
// strings; Extract itself never fails.
func (e *Extractor) Extract(raw string) *Extraction {
	scan := NewScan(raw)
	dates := FindDates(scan.Text)
	roles := ClassifyDateRoles(dates)

	values := make(map[string]string, len(e.doc.Fields))

	// First pass: cascades and dates. The primary identifier must be
	// resolved here because the name heuristic anchors on it.
	for i := range e.doc.Fields {
		spec := &e.doc.Fields[i]
		if len(spec.Rules) > 0 {
			values[spec.Key] = runCascade(spec, scan)
		}
		if values[spec.Key] == "" && spec.DateRole != schema.DateRoleUnassigned {
			if d, ok := roles[spec.DateRole]; ok {
				values[spec.Key] = d.Text
			}
		}
	}

	// Second pass: name fields, anchored on the extracted identifier and
	// birth date.
	primaryID := ""
	if e.doc.PrimaryIDKey != "" {
		primaryID = textproc.DigitsOnly(values[e.doc.PrimaryIDKey])
	}
	birthDate := ""
	if d, ok := roles[schema.DateRoleBirth]; ok {
		birthDate = d.Text
	}
	for i := range e.doc.Fields {
		spec := &e.doc.Fields[i]
		if spec.NameField && values[spec.Key] == "" {
			values[spec.Key] = ExtractName(scan, primaryID, birthDate)
		}
	}

	return &Extraction{
		ID:            uuid.NewString(),
		DocType:       e.doc.Type,
		Record:        Assemble(e.doc, values),
		Dates:         dates,
		CleanedLength: scan.CleanedLength(),
	}
}
