package schema

import "regexp"

// Aadhaar field keys.
const (
	AadhaarFieldGovernment = "government"
	AadhaarFieldName       = "name"
	AadhaarFieldDOB        = "dob"
	AadhaarFieldNumber     = "aadhaarNumber"
	AadhaarFieldVID        = "vid"
)

var (
	// Three groups of four digits, OCR-tolerant about the separating spaces.
	aadhaarStrictPattern = regexp.MustCompile(`(\d{4}\s?\d{4}\s?\d{4})`)

	// Loose fallback: a line whose digit projection is exactly the Aadhaar
	// length. Matched against the digit-only projection so dropped or
	// garbled separators no longer matter.
	aadhaarLoosePattern = regexp.MustCompile(`^\d{12}$`)

	// VID is four groups of four digits.
	vidStrictPattern = regexp.MustCompile(`(\d{4}\s?\d{4}\s?\d{4}\s?\d{4})`)
	vidLoosePattern  = regexp.MustCompile(`^\d{16}$`)
)

// aadhaarDocument returns the Aadhaar card schema.
func aadhaarDocument() *Document {
	return &Document{
		Type:         DocTypeAadhaar,
		PrimaryIDKey: AadhaarFieldNumber,
		Fields: []FieldSpec{
			{
				Key: AadhaarFieldGovernment,
				Rules: []PatternRule{
					{
						Name:     "government_keywords",
						Priority: 1,
						Scope:    ScopeCandidateLines,
						Keywords: []string{"government", "india"},
					},
				},
				Cleanup: CleanupName,
			},
			{
				Key:       AadhaarFieldName,
				NameField: true,
				Cleanup:   CleanupName,
				TitleCase: true,
			},
			{
				Key:      AadhaarFieldDOB,
				DateRole: DateRoleBirth,
				Cleanup:  CleanupTrim,
			},
			{
				Key: AadhaarFieldNumber,
				Rules: []PatternRule{
					{
						Name:     "aadhaar_grouped",
						Priority: 1,
						Scope:    ScopeCandidateLines,
						Pattern:  aadhaarStrictPattern,
						Group:    1,
					},
					{
						Name:     "aadhaar_digit_run",
						Priority: 2,
						Scope:    ScopeLineDigits,
						Pattern:  aadhaarLoosePattern,
					},
				},
				Cleanup:     CleanupDigits,
				DigitLength: 12,
				GroupFormat: []int{4, 4, 4},
			},
			{
				Key: AadhaarFieldVID,
				Rules: []PatternRule{
					{
						Name:     "vid_grouped",
						Priority: 1,
						Scope:    ScopeCandidateLines,
						Pattern:  vidStrictPattern,
						Group:    1,
					},
					{
						Name:     "vid_digit_run",
						Priority: 2,
						Scope:    ScopeLineDigits,
						Pattern:  vidLoosePattern,
					},
				},
				Cleanup:     CleanupDigits,
				DigitLength: 16,
				GroupFormat: []int{4, 4, 4, 4},
			},
		},
	}
}
