package extract

import (
	"strings"

	"github.com/cardsnap/idcard-extract/internal/textproc"
)

// Words that disqualify a line from being an unanchored name candidate.
var nameExcludedKeywords = []string{"dob", "year", "age", "male", "female", "government"}

// ExtractName locates a probable holder-name line. Three strategies run in
// order: a backward walk from the line carrying the primary identifier, a
// backward walk from the line carrying the birth date, and finally a
// top-down scan of candidate lines. Whatever line is chosen goes through
// CleanNameLine.
func ExtractName(scan *Scan, primaryID, birthDate string) string {
	if line := nameAboveIdentifier(scan, primaryID); line != "" {
		return CleanNameLine(line)
	}
	if line := nameAboveDate(scan, birthDate); line != "" {
		return CleanNameLine(line)
	}
	return CleanNameLine(unanchoredName(scan))
}

// nameAboveIdentifier walks backward from the line whose digit projection
// contains the extracted identifier, accepting the closest line above it
// that looks like a personal name.
func nameAboveIdentifier(scan *Scan, primaryID string) string {
	if primaryID == "" {
		return ""
	}
	anchor := -1
	for _, line := range scan.Lines {
		if strings.Contains(textproc.DigitsOnly(line.Text), primaryID) {
			anchor = line.Index
			break
		}
	}
	if anchor <= 0 {
		return ""
	}

	for j := anchor - 1; j >= 0; j-- {
		cand := scan.Lines[j].Text
		if !hasTwoAlphaRuns(cand) {
			continue
		}
		low := strings.ToLower(cand)
		if strings.Contains(low, "male") || strings.Contains(low, "female") {
			continue
		}
		alpha := textproc.LettersOnly(cand)
		if len(alpha) < 4 {
			continue
		}
		compact := strings.Join(strings.Fields(cand), "")
		ratio := float64(len(alpha)) / float64(len(compact)+1)
		if ratio <= 0.45 && goodWordCount(cand) < 2 {
			continue
		}
		// The post-filter must leave at least one word, otherwise cleanup
		// would reduce the line to nothing.
		if len(filterNameWords(strings.Fields(cand))) == 0 {
			continue
		}
		return cand
	}
	return ""
}

// nameAboveDate is the looser fallback walk anchored on the birth date line.
func nameAboveDate(scan *Scan, birthDate string) string {
	if birthDate == "" {
		return ""
	}
	anchor := -1
	for _, line := range scan.Lines {
		if strings.Contains(line.Text, birthDate) {
			anchor = line.Index
			break
		}
	}
	if anchor <= 0 {
		return ""
	}
	for j := anchor - 1; j >= 0; j-- {
		if hasTwoAlphaRuns(scan.Lines[j].Text) {
			return scan.Lines[j].Text
		}
	}
	return ""
}

// unanchoredName scans candidate lines top to bottom for an alphabetic,
// digit-free line that is not a known label.
func unanchoredName(scan *Scan) string {
	for _, line := range scan.Candidates {
		text := line.Text
		if len(text) <= 3 || !containsLetter(text) || containsDigit(text) {
			continue
		}
		low := strings.ToLower(text)
		excluded := false
		for _, kw := range nameExcludedKeywords {
			if strings.Contains(low, kw) {
				excluded = true
				break
			}
		}
		if !excluded {
			return text
		}
	}
	return ""
}

// CleanNameLine applies the name post-processing: strip everything outside
// letters, spaces, periods and hyphens; drop single-letter edge artifacts;
// drop gender markers, too-short words, digit-bearing words and short
// all-caps label leftovers; then title-case.
func CleanNameLine(line string) string {
	cleaned := stripToNameClass(line)
	parts := strings.Fields(cleaned)

	if len(parts) > 1 && len(parts[0]) == 1 {
		parts = parts[1:]
	}
	if len(parts) > 1 && len(parts[len(parts)-1]) == 1 {
		parts = parts[:len(parts)-1]
	}

	parts = filterNameWords(parts)

	for i, p := range parts {
		parts[i] = titleWord(p)
	}
	return strings.Join(parts, " ")
}

func filterNameWords(words []string) []string {
	var out []string
	for _, w := range words {
		low := strings.ToLower(w)
		if low == "male" || low == "female" {
			continue
		}
		alpha := textproc.LettersOnly(w)
		if len(alpha) <= 2 {
			continue
		}
		if containsDigit(w) {
			continue
		}
		if len(alpha) <= 3 && alpha == strings.ToUpper(alpha) {
			continue
		}
		out = append(out, w)
	}
	return out
}

func stripToNameClass(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			b.WriteRune(r)
		case r == ' ' || r == '.' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func titleWord(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
}

// hasTwoAlphaRuns reports whether a line contains at least two letters,
// i.e. enough alphabetic content to possibly hold a name.
func hasTwoAlphaRuns(s string) bool {
	count := 0
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			count++
			if count >= 2 {
				return true
			}
		}
	}
	return false
}

// goodWordCount counts words whose alphabetic projection has length >= 2.
func goodWordCount(s string) int {
	n := 0
	for _, w := range strings.Fields(s) {
		if len(textproc.LettersOnly(w)) >= 2 {
			n++
		}
	}
	return n
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

func containsLetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}
