package textproc

import (
	"strings"
)

// scriptRange is a half-open range of runes that OCR output for the
// supported document families may contain but field matching cannot use.
type scriptRange struct {
	lo, hi rune
}

// strippedRanges covers the Arabic blocks (Emirates ID) and Devanagari
// (Aadhaar). Runes in these ranges are replaced with a space rather than
// deleted so token boundaries survive.
var strippedRanges = []scriptRange{
	{0x0600, 0x06FF}, // Arabic
	{0x0750, 0x077F}, // Arabic Supplement
	{0x08A0, 0x08FF}, // Arabic Extended-A
	{0xFB50, 0xFDFF}, // Arabic Presentation Forms-A
	{0xFE70, 0xFEFF}, // Arabic Presentation Forms-B
	{0x0900, 0x097F}, // Devanagari
}

// isStrippedRune reports whether r falls in a stripped script range or is
// one of the segmentation artifacts ('|', '\') OCR engines commonly emit.
func isStrippedRune(r rune) bool {
	if r == '|' || r == '\\' {
		return true
	}
	for _, sr := range strippedRanges {
		if r >= sr.lo && r <= sr.hi {
			return true
		}
	}
	return false
}

// stripScripts replaces every stripped rune with a single space. Line breaks
// are preserved so callers can still split on them.
func stripScripts(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isStrippedRune(r) {
			b.WriteRune(' ')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeText strips non-target scripts and OCR artifacts from raw OCR
// output, collapses all whitespace runs (including line breaks) to single
// spaces and trims the result. It never fails; empty input yields "".
func NormalizeText(raw string) string {
	return strings.Join(strings.Fields(stripScripts(raw)), " ")
}

// Line is one normalized line of OCR output. Index is the line's position in
// the normalized sequence; it stays stable across candidate filtering so
// anchor-based backward searches can walk the unfiltered sequence.
type Line struct {
	Index int
	Text  string
}

// SplitLines splits raw OCR output into normalized lines: script stripping
// is applied first, then the text is split on line breaks, each line has its
// internal whitespace collapsed and is trimmed, and empty lines are dropped.
func SplitLines(raw string) []Line {
	stripped := stripScripts(strings.ReplaceAll(raw, "\r", ""))
	var lines []Line
	for _, l := range strings.Split(stripped, "\n") {
		text := strings.Join(strings.Fields(l), " ")
		if text == "" {
			continue
		}
		lines = append(lines, Line{Index: len(lines), Text: text})
	}
	return lines
}

// IsCandidate reports whether a normalized line carries enough signal for
// field matching. Lines whose alphanumeric projection is a single character
// or empty are OCR noise.
func IsCandidate(text string) bool {
	count := 0
	for _, r := range text {
		if isAlnum(r) {
			count++
			if count > 1 {
				return true
			}
		}
	}
	return false
}

// CandidateLines filters lines down to the usable subset. The original
// Index of each line is preserved.
func CandidateLines(lines []Line) []Line {
	var out []Line
	for _, l := range lines {
		if IsCandidate(l.Text) {
			out = append(out, l)
		}
	}
	return out
}

func isAlnum(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// DigitsOnly projects a string to its digit characters.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LettersOnly projects a string to its ASCII letter characters.
func LettersOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
