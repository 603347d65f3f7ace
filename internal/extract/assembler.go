package extract

import (
	"strings"

	"github.com/cardsnap/idcard-extract/internal/schema"
	"github.com/cardsnap/idcard-extract/internal/textproc"
)

// Record is the flat field-name to value mapping callers receive. It always
// carries exactly the keys its document schema defines; absent values are
// empty strings, never omitted keys.
type Record map[string]string

// Assemble applies each field's cleanup policy and produces the fully keyed
// output record. Missing fields never cause an error.
func Assemble(doc *schema.Document, values map[string]string) Record {
	record := make(Record, len(doc.Fields))
	for i := range doc.Fields {
		spec := &doc.Fields[i]
		record[spec.Key] = cleanValue(spec, values[spec.Key])
	}
	return record
}

func cleanValue(spec *schema.FieldSpec, value string) string {
	switch spec.Cleanup {
	case schema.CleanupDigits:
		value = textproc.DigitsOnly(value)
		if spec.DigitLength > 0 && len(value) != spec.DigitLength {
			value = ""
		}
	case schema.CleanupName:
		value = stripToNameClass(value)
		if spec.TitleCase {
			words := strings.Fields(value)
			for i, w := range words {
				words[i] = titleWord(w)
			}
			value = strings.Join(words, " ")
		}
	case schema.CleanupTrim:
		value = strings.TrimSpace(value)
	}
	return value
}
