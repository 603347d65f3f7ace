package extract

import (
	"github.com/cardsnap/idcard-extract/internal/textproc"
)

// Scan is the prepared view of one document's OCR output: the collapsed
// normalized text plus the normalized line sequence and its candidate
// subset. A Scan is built fresh per extraction and never shared.
type Scan struct {
	Raw        string
	Text       string
	Lines      []textproc.Line
	Candidates []textproc.Line
}

// NewScan normalizes raw OCR output and classifies its lines.
func NewScan(raw string) *Scan {
	lines := textproc.SplitLines(raw)
	return &Scan{
		Raw:        raw,
		Text:       textproc.NormalizeText(raw),
		Lines:      lines,
		Candidates: textproc.CandidateLines(lines),
	}
}

// CleanedLength is the signal measure the fallback policy thresholds on:
// the length of the fully normalized text.
func (s *Scan) CleanedLength() int {
	return len(s.Text)
}
