package extract

import (
	"sort"
	"strings"

	"github.com/cardsnap/idcard-extract/internal/schema"
	"github.com/cardsnap/idcard-extract/internal/textproc"
)

// runCascade evaluates a field's pattern rules in ascending priority order
// and returns the first match. An exhausted cascade is not an error; the
// field degrades to the empty string.
func runCascade(spec *schema.FieldSpec, scan *Scan) string {
	rules := append([]schema.PatternRule(nil), spec.Rules...)
	sort.SliceStable(rules, func(i, j int) bool { return rules[i].Priority < rules[j].Priority })

	for _, rule := range rules {
		if value := applyRule(rule, scan); value != "" {
			return value
		}
	}
	return ""
}

func applyRule(rule schema.PatternRule, scan *Scan) string {
	switch rule.Scope {
	case schema.ScopeCandidateLines:
		for _, line := range scan.Candidates {
			if len(rule.Keywords) > 0 {
				if containsAnyKeyword(line.Text, rule.Keywords) {
					return line.Text
				}
				continue
			}
			if m := submatch(rule, line.Text); m != "" {
				return m
			}
		}

	case schema.ScopeFullText:
		return submatch(rule, scan.Text)

	case schema.ScopeLineDigits:
		for _, line := range scan.Lines {
			digits := textproc.DigitsOnly(line.Text)
			if digits == "" {
				continue
			}
			if m := submatch(rule, digits); m != "" {
				return m
			}
		}
	}
	return ""
}

func submatch(rule schema.PatternRule, text string) string {
	if rule.Pattern == nil {
		return ""
	}
	m := rule.Pattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	idx := rule.Group
	if idx >= len(m) {
		idx = 0
	}
	return strings.TrimSpace(m[idx])
}

func containsAnyKeyword(line string, keywords []string) bool {
	low := strings.ToLower(line)
	for _, kw := range keywords {
		if strings.Contains(low, kw) {
			return true
		}
	}
	return false
}
