package schema

import (
	"fmt"
	"regexp"
	"strings"
)

// DocType identifies a supported identity-document family.
type DocType string

const (
	DocTypeAadhaar    DocType = "aadhaar"
	DocTypeEmiratesID DocType = "emirates_id"
)

// IsValid checks if the document type is supported.
func (dt DocType) IsValid() bool {
	switch dt {
	case DocTypeAadhaar, DocTypeEmiratesID:
		return true
	default:
		return false
	}
}

// AllDocTypes returns every supported document type.
func AllDocTypes() []DocType {
	return []DocType{DocTypeAadhaar, DocTypeEmiratesID}
}

// Scope selects which projection of the scanned text a pattern rule is
// matched against.
type Scope string

const (
	// ScopeCandidateLines matches the rule against each candidate line in
	// document order; the first matching line wins.
	ScopeCandidateLines Scope = "candidate_lines"

	// ScopeFullText matches the rule against the whole normalized,
	// whitespace-collapsed text.
	ScopeFullText Scope = "full_text"

	// ScopeLineDigits matches the rule against the digit-only projection of
	// each line. This is the loose fallback for identifiers whose grouping
	// separators OCR mangled.
	ScopeLineDigits Scope = "line_digits"
)

// Cleanup names the final character-class policy applied to a field value.
type Cleanup string

const (
	// CleanupDigits keeps only digits.
	CleanupDigits Cleanup = "digits"

	// CleanupName keeps letters, spaces, periods and hyphens, then collapses
	// whitespace.
	CleanupName Cleanup = "name"

	// CleanupTrim only trims surrounding whitespace.
	CleanupTrim Cleanup = "trim"
)

// DateRole is the semantic category a validated date token is assigned to.
type DateRole string

const (
	DateRoleBirth      DateRole = "birth"
	DateRoleIssue      DateRole = "issue"
	DateRoleExpiry     DateRole = "expiry"
	DateRoleUnassigned DateRole = ""
)

// PatternRule is one matcher in a field's cascade. Rules are evaluated in
// ascending Priority order and the first match wins, so a strict rule placed
// before a loose one minimizes false positives while still tolerating
// degraded OCR input.
type PatternRule struct {
	// Name identifies the rule in logs and tests.
	Name string

	// Priority orders the rule within its field's cascade (lower runs first).
	Priority int

	// Scope selects the text projection the rule runs against.
	Scope Scope

	// Pattern is the matcher. For keyword rules it may be nil.
	Pattern *regexp.Regexp

	// Group is the submatch index to take as the value (0 = whole match).
	Group int

	// Keywords, when set, match a candidate line containing any of them
	// (case-insensitive); the whole line is the value. Used instead of
	// Pattern for plain containment rules.
	Keywords []string
}

// FieldSpec describes one output field of a document schema: where its value
// comes from and how the final value is cleaned.
type FieldSpec struct {
	// Key is the field's name in the output record.
	Key string

	// Rules is the field's cascade, evaluated strict-to-loose.
	Rules []PatternRule

	// DateRole, when set, sources the value from the date role classifier
	// instead of (or after) the cascade.
	DateRole DateRole

	// NameField marks fields filled by the name heuristic when the cascade
	// produced nothing.
	NameField bool

	// Cleanup is the final character-class policy.
	Cleanup Cleanup

	// TitleCase applies per-word title casing after cleanup.
	TitleCase bool

	// DigitLength is the exact digit count the value must have, 0 = free.
	DigitLength int

	// GroupFormat is the display grouping of a digit field, e.g. {4,4,4}
	// for Aadhaar or {3,4,7,1} for Emirates ID.
	GroupFormat []int
}

// Document is the full schema for one document type. Schemas are data, not
// code: extending a document type means editing its field list, never the
// extraction control flow.
type Document struct {
	Type DocType

	// Fields in output order. Every key is always present in the output
	// record, absent values are empty strings.
	Fields []FieldSpec

	// PrimaryIDKey names the field whose value anchors the name heuristic's
	// backward search.
	PrimaryIDKey string
}

// Keys returns the fixed key set of the document's output record.
func (d *Document) Keys() []string {
	keys := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		keys[i] = f.Key
	}
	return keys
}

// Field looks up a field spec by key.
func (d *Document) Field(key string) *FieldSpec {
	for i := range d.Fields {
		if d.Fields[i].Key == key {
			return &d.Fields[i]
		}
	}
	return nil
}

// ForType returns the schema for a document type.
func ForType(t DocType) (*Document, error) {
	switch t {
	case DocTypeAadhaar:
		return aadhaarDocument(), nil
	case DocTypeEmiratesID:
		return emiratesIDDocument(), nil
	default:
		return nil, fmt.Errorf("unsupported document type: %s", t)
	}
}

// FormatGroups renders a digits-only identifier in its display grouping.
// Digits-only is the canonical internal representation; this is the one
// place grouping is reapplied. If the digit count does not match the
// grouping, the input is returned unchanged.
func FormatGroups(digits string, groups []int, sep string) string {
	if len(groups) == 0 {
		return digits
	}
	total := 0
	for _, g := range groups {
		total += g
	}
	if len(digits) != total {
		return digits
	}
	parts := make([]string, 0, len(groups))
	pos := 0
	for _, g := range groups {
		parts = append(parts, digits[pos:pos+g])
		pos += g
	}
	return strings.Join(parts, sep)
}
