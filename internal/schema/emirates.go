package schema

import "regexp"

// Emirates ID field keys.
const (
	EmiratesFieldName         = "name"
	EmiratesFieldIDNumber     = "idNumber"
	EmiratesFieldDateOfBirth  = "dateOfBirth"
	EmiratesFieldNationality  = "nationality"
	EmiratesFieldOccupation   = "occupation"
	EmiratesFieldEmployer     = "employer"
	EmiratesFieldIssuingDate  = "issuingDate"
	EmiratesFieldExpiryDate   = "expiryDate"
	EmiratesFieldIssuingPlace = "issuingPlace"
)

var (
	// Emirates ID numbers always start with the 784 country prefix and carry
	// 15 digits grouped 3-4-7-1. OCR frequently replaces the hyphens with
	// spaces or drops them entirely.
	emiratesIDStrictPattern = regexp.MustCompile(`(784[-\s]*\d{4}[-\s]*\d{7}[-\s]*\d)`)
	emiratesIDLoosePattern  = regexp.MustCompile(`^784\d{12}$`)

	emiratesNamePattern        = regexp.MustCompile(`(?i)\bname[:\s]+([A-Za-z ]+?)\s*(?:nationality|date of birth|id number|sex|$)`)
	emiratesNationalityPattern = regexp.MustCompile(`(?i)\b(india|indian|pakistan|pakistani|bangladesh|bangladeshi|philippines|filipino|egypt|egyptian|syrian|jordanian|lebanese|british|american|canadian)\b`)
	emiratesOccupationPattern  = regexp.MustCompile(`(?i)\boccupation[:\s]*([A-Za-z ]+?)\s*(?:employer|issuing|$)`)
	emiratesEmployerPattern    = regexp.MustCompile(`(?i)\bemployer[:\s]*([A-Za-z &/]+?)\s*(?:issuing|occupation|expiry|$)`)
	emiratesPlacePattern       = regexp.MustCompile(`(?i)\b(?:issuing place|place of issue)[:\s]*([A-Za-z ]+?)\s*(?:occupation|employer|expiry|$)`)
)

// emiratesIDDocument returns the Emirates ID card schema.
func emiratesIDDocument() *Document {
	return &Document{
		Type:         DocTypeEmiratesID,
		PrimaryIDKey: EmiratesFieldIDNumber,
		Fields: []FieldSpec{
			{
				Key: EmiratesFieldName,
				Rules: []PatternRule{
					{
						Name:     "name_label",
						Priority: 1,
						Scope:    ScopeFullText,
						Pattern:  emiratesNamePattern,
						Group:    1,
					},
				},
				NameField: true,
				Cleanup:   CleanupName,
				TitleCase: true,
			},
			{
				Key: EmiratesFieldIDNumber,
				Rules: []PatternRule{
					{
						Name:     "id_grouped_line",
						Priority: 1,
						Scope:    ScopeCandidateLines,
						Pattern:  emiratesIDStrictPattern,
						Group:    1,
					},
					{
						Name:     "id_grouped_text",
						Priority: 2,
						Scope:    ScopeFullText,
						Pattern:  emiratesIDStrictPattern,
						Group:    1,
					},
					{
						Name:     "id_digit_run",
						Priority: 3,
						Scope:    ScopeLineDigits,
						Pattern:  emiratesIDLoosePattern,
					},
				},
				Cleanup:     CleanupDigits,
				DigitLength: 15,
				GroupFormat: []int{3, 4, 7, 1},
			},
			{
				Key:      EmiratesFieldDateOfBirth,
				DateRole: DateRoleBirth,
				Cleanup:  CleanupTrim,
			},
			{
				Key: EmiratesFieldNationality,
				Rules: []PatternRule{
					{
						Name:     "nationality_vocabulary",
						Priority: 1,
						Scope:    ScopeFullText,
						Pattern:  emiratesNationalityPattern,
						Group:    1,
					},
				},
				Cleanup:   CleanupName,
				TitleCase: true,
			},
			{
				Key: EmiratesFieldOccupation,
				Rules: []PatternRule{
					{
						Name:     "occupation_label",
						Priority: 1,
						Scope:    ScopeFullText,
						Pattern:  emiratesOccupationPattern,
						Group:    1,
					},
				},
				Cleanup:   CleanupName,
				TitleCase: true,
			},
			{
				Key: EmiratesFieldEmployer,
				Rules: []PatternRule{
					{
						Name:     "employer_label",
						Priority: 1,
						Scope:    ScopeFullText,
						Pattern:  emiratesEmployerPattern,
						Group:    1,
					},
				},
				Cleanup: CleanupName,
			},
			{
				Key:      EmiratesFieldIssuingDate,
				DateRole: DateRoleIssue,
				Cleanup:  CleanupTrim,
			},
			{
				Key:      EmiratesFieldExpiryDate,
				DateRole: DateRoleExpiry,
				Cleanup:  CleanupTrim,
			},
			{
				Key: EmiratesFieldIssuingPlace,
				Rules: []PatternRule{
					{
						Name:     "issuing_place_label",
						Priority: 1,
						Scope:    ScopeFullText,
						Pattern:  emiratesPlacePattern,
						Group:    1,
					},
				},
				Cleanup:   CleanupName,
				TitleCase: true,
			},
		},
	}
}
