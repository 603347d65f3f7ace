package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cardsnap/idcard-extract/internal/schema"
)

// contextWindow is the number of characters captured on each side of a date
// token for keyword search.
const contextWindow = 20

// Accepted value envelope for a date token. Anything outside is rejected
// outright, it is not a date for this document family.
const (
	minYear = 1950
	maxYear = 2035
)

// Year-range heuristics used when no role keyword appears in the context.
const (
	birthYearMax  = 2010
	issueYearMin  = 2010
	issueYearMax  = 2025
	expiryYearMin = 2020
)

var dateTokenPattern = regexp.MustCompile(`(\d{1,2})[./-](\d{1,2})[./-](\d{4})`)

var roleKeywords = []struct {
	role     schema.DateRole
	keywords []string
}{
	{schema.DateRoleBirth, []string{"birth", "born"}},
	{schema.DateRoleExpiry, []string{"expiry", "expires", "valid"}},
	// "issuing" is listed explicitly: "issue" is not a substring of the
	// "Issuing Date" label both card families print.
	{schema.DateRoleIssue, []string{"issuing", "issue", "issued"}},
}

// DateCandidate is a validated date token found in the normalized text,
// together with the lower-cased context windows used for role keywords.
// Labels precede values on both card families, so the leading window is
// searched before the trailing one.
type DateCandidate struct {
	Text          string
	Day           int
	Month         int
	Year          int
	Pos           int
	ContextBefore string
	ContextAfter  string
	Role          schema.DateRole
}

// Context returns the full +-20 character window around the token.
func (d DateCandidate) Context() string {
	return d.ContextBefore + strings.ToLower(d.Text) + d.ContextAfter
}

// FindDates scans normalized text for date-like tokens with '/', '-' or '.'
// separators and validates them against the supported envelope
// (day 1-31, month 1-12, year 1950-2035). Results keep document order.
func FindDates(text string) []DateCandidate {
	var out []DateCandidate
	for _, loc := range dateTokenPattern.FindAllStringSubmatchIndex(text, -1) {
		token := text[loc[0]:loc[1]]
		m := dateTokenPattern.FindStringSubmatch(token)
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if day < 1 || day > 31 || month < 1 || month > 12 || year < minYear || year > maxYear {
			continue
		}

		out = append(out, DateCandidate{
			Text:          token,
			Day:           day,
			Month:         month,
			Year:          year,
			Pos:           loc[0],
			ContextBefore: strings.ToLower(lastRunes(text[:loc[0]], contextWindow)),
			ContextAfter:  strings.ToLower(firstRunes(text[loc[1]:], contextWindow)),
		})
	}
	return out
}

// ClassifyDateRoles assigns each validated date a role. Keyword context
// takes strict precedence over the year-range heuristic, and within the
// heuristic expiry is checked before issue so the overlap years 2020-2025
// resolve to expiry. Each role is filled at most once; the first qualifying
// date in document order wins and later dates for the same role stay
// unassigned. The assignment is fully deterministic.
func ClassifyDateRoles(dates []DateCandidate) map[schema.DateRole]DateCandidate {
	assigned := make(map[schema.DateRole]DateCandidate, 3)
	for i := range dates {
		role := classifyOne(&dates[i])
		if role == schema.DateRoleUnassigned {
			continue
		}
		if _, taken := assigned[role]; taken {
			continue
		}
		dates[i].Role = role
		assigned[role] = dates[i]
	}
	return assigned
}

// firstRunes returns at most n leading runes of s. The window is counted in
// runes, not bytes, so multibyte OCR noise cannot shrink it or split a rune
// at the boundary.
func firstRunes(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}
	return s
}

// lastRunes returns at most n trailing runes of s.
func lastRunes(s string, n int) string {
	skip := utf8.RuneCountInString(s) - n
	if skip <= 0 {
		return s
	}
	for i := range s {
		if skip == 0 {
			return s[i:]
		}
		skip--
	}
	return s
}

func classifyOne(d *DateCandidate) schema.DateRole {
	// Leading context first: the role label sits before the value, so a
	// trailing window may already contain the next field's label.
	for _, window := range []string{d.ContextBefore, d.ContextAfter} {
		for _, rk := range roleKeywords {
			for _, kw := range rk.keywords {
				if strings.Contains(window, kw) {
					return rk.role
				}
			}
		}
	}

	switch {
	case d.Year <= birthYearMax:
		return schema.DateRoleBirth
	case d.Year >= expiryYearMin:
		return schema.DateRoleExpiry
	case d.Year >= issueYearMin && d.Year <= issueYearMax:
		return schema.DateRoleIssue
	}
	return schema.DateRoleUnassigned
}
