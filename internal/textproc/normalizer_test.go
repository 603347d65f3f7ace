package textproc

import (
	"strings"
	"testing"
)

func TestNormalizeTextStripsArabic(t *testing.T) {
	raw := "Name: محمد Ahmed علي Hassan"
	got := NormalizeText(raw)

	for _, sr := range strippedRanges {
		for _, r := range got {
			if r >= sr.lo && r <= sr.hi {
				t.Fatalf("normalized text still contains rune %U", r)
			}
		}
	}
	if got != "Name: Ahmed Hassan" {
		t.Errorf("expected 'Name: Ahmed Hassan', got %q", got)
	}
}

func TestNormalizeTextStripsDevanagari(t *testing.T) {
	raw := "भारत Government of India"
	got := NormalizeText(raw)
	if got != "Government of India" {
		t.Errorf("expected 'Government of India', got %q", got)
	}
}

func TestNormalizeTextNoDoubledWhitespace(t *testing.T) {
	inputs := []string{
		"a  b\t\tc\n\nd",
		"  leading and trailing  ",
		"pipe | and \\ backslash",
		"م  م  mixed अ scripts",
		"",
	}
	for _, in := range inputs {
		got := NormalizeText(in)
		if strings.Contains(got, "  ") {
			t.Errorf("doubled whitespace in %q", got)
		}
		if got != strings.TrimSpace(got) {
			t.Errorf("untrimmed output %q", got)
		}
	}
}

func TestNormalizeTextStripsArtifacts(t *testing.T) {
	got := NormalizeText("VID : 9149 | 4449 \\ 3304")
	if strings.ContainsAny(got, "|\\") {
		t.Errorf("artifacts not stripped: %q", got)
	}
}

func TestNormalizeTextEmptyInput(t *testing.T) {
	if got := NormalizeText("محمد | \\"); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestSplitLinesPreservesOrderAndIndex(t *testing.T) {
	raw := "first line\n\n  second  line \r\nthird"
	lines := SplitLines(raw)

	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	want := []string{"first line", "second line", "third"}
	for i, l := range lines {
		if l.Text != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], l.Text)
		}
		if l.Index != i {
			t.Errorf("line %d: expected index %d, got %d", i, i, l.Index)
		}
	}
}

func TestCandidateLinesFiltersNoise(t *testing.T) {
	raw := "Government of India\ns\n| 8 -\n‘ g §\n8325 2709 6374"
	lines := SplitLines(raw)
	candidates := CandidateLines(lines)

	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %v", len(candidates), candidates)
	}
	if candidates[0].Text != "Government of India" {
		t.Errorf("unexpected first candidate %q", candidates[0].Text)
	}
	if candidates[1].Text != "8325 2709 6374" {
		t.Errorf("unexpected second candidate %q", candidates[1].Text)
	}
	// Indices must point back into the unfiltered sequence.
	if candidates[1].Index != len(lines)-1 {
		t.Errorf("candidate index not preserved: %d", candidates[1].Index)
	}
}

func TestIsCandidate(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"Magan Dhaniya", true},
		{"ab", true},
		{"a", false},
		{"‘ § -", false},
		{"", false},
		{"8 -", false},
		{"12", true},
	}
	for _, c := range cases {
		if got := IsCandidate(c.line); got != c.want {
			t.Errorf("IsCandidate(%q) = %v, want %v", c.line, got, c.want)
		}
	}
}

func TestDigitsOnly(t *testing.T) {
	if got := DigitsOnly("784-1990-1234567-1"); got != "784199012345671" {
		t.Errorf("unexpected projection %q", got)
	}
}
