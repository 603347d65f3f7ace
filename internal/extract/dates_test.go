package extract

import (
	"reflect"
	"testing"

	"github.com/cardsnap/idcard-extract/internal/schema"
)

func TestFindDatesValidatesEnvelope(t *testing.T) {
	text := "born 15/03/1985 bogus 45/13/1985 old 01/01/1901 far 01/01/2090 dot 2.4.2021"
	dates := FindDates(text)

	if len(dates) != 2 {
		t.Fatalf("expected 2 valid dates, got %d: %v", len(dates), dates)
	}
	if dates[0].Text != "15/03/1985" {
		t.Errorf("unexpected first date %q", dates[0].Text)
	}
	if dates[1].Text != "2.4.2021" {
		t.Errorf("unexpected second date %q", dates[1].Text)
	}
}

func TestClassifyBirthByYearRange(t *testing.T) {
	// No contextual keyword anywhere near the token.
	dates := FindDates("some noise text 15/03/1985 more noise")
	roles := ClassifyDateRoles(dates)

	d, ok := roles[schema.DateRoleBirth]
	if !ok {
		t.Fatal("expected a birth assignment")
	}
	if d.Text != "15/03/1985" {
		t.Errorf("unexpected birth date %q", d.Text)
	}
}

func TestClassifyByKeywordContext(t *testing.T) {
	text := "Issuing Date 01/01/2020 Expiry Date 31/12/2025"
	roles := ClassifyDateRoles(FindDates(text))

	if d := roles[schema.DateRoleIssue]; d.Text != "01/01/2020" {
		t.Errorf("issue role: got %q, want 01/01/2020", d.Text)
	}
	if d := roles[schema.DateRoleExpiry]; d.Text != "31/12/2025" {
		t.Errorf("expiry role: got %q, want 31/12/2025", d.Text)
	}
}

func TestKeywordBeatsYearRange(t *testing.T) {
	// 2022 falls in the expiry-leaning overlap, but the context says issued.
	roles := ClassifyDateRoles(FindDates("issued on 05/05/2022"))
	if d := roles[schema.DateRoleIssue]; d.Text != "05/05/2022" {
		t.Errorf("keyword context must win: %v", roles)
	}
}

func TestIssueKeywordVariants(t *testing.T) {
	// The printed label on both card families is "Issuing Date"; all three
	// spellings of the label must classify as the issue role, not fall
	// through to the expiry year range.
	for _, text := range []string{
		"Issuing Date 01/01/2020",
		"Issue Date 01/01/2020",
		"Issued on 01/01/2020",
	} {
		roles := ClassifyDateRoles(FindDates(text))
		if d := roles[schema.DateRoleIssue]; d.Text != "01/01/2020" {
			t.Errorf("%q: issue role got %q, want 01/01/2020", text, d.Text)
		}
		if _, ok := roles[schema.DateRoleExpiry]; ok {
			t.Errorf("%q: must not classify as expiry", text)
		}
	}
}

func TestContextWindowCountsRunes(t *testing.T) {
	// Multibyte noise between the label and the value must not shrink the
	// 20-character window; a byte-based slice would cut off "valid" here.
	roles := ClassifyDateRoles(FindDates("valid until ‘‘‘‘ 01/01/2003"))
	if d := roles[schema.DateRoleExpiry]; d.Text != "01/01/2003" {
		t.Errorf("expiry role got %q, want 01/01/2003", d.Text)
	}
	if _, ok := roles[schema.DateRoleBirth]; ok {
		t.Error("keyword context must beat the birth year range")
	}
}

func TestOverlapYearsResolveToExpiry(t *testing.T) {
	// 2020-2025 satisfies both the expiry and issue ranges; with no keyword
	// the expiry range is checked first, so expiry wins.
	roles := ClassifyDateRoles(FindDates("xxxxx 05/05/2022 yyyyy"))
	if _, ok := roles[schema.DateRoleIssue]; ok {
		t.Error("overlap year must not classify as issue without a keyword")
	}
	if d := roles[schema.DateRoleExpiry]; d.Text != "05/05/2022" {
		t.Errorf("expected expiry assignment, got %v", roles)
	}
}

func TestFirstDateWinsRole(t *testing.T) {
	roles := ClassifyDateRoles(FindDates("plain 01/01/1980 and later 02/02/1990"))
	if d := roles[schema.DateRoleBirth]; d.Text != "01/01/1980" {
		t.Errorf("first qualifying date must win: %v", roles)
	}
}

func TestClassificationIsDeterministic(t *testing.T) {
	text := "Name X 07/02/2003 issued 01/06/2019 valid until 31/12/2028"
	first := ClassifyDateRoles(FindDates(text))
	for i := 0; i < 10; i++ {
		again := ClassifyDateRoles(FindDates(text))
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("non-deterministic role assignment: %v vs %v", first, again)
		}
	}
}

func TestSeparatorVariants(t *testing.T) {
	for _, text := range []string{"07/02/2003", "07-02-2003", "07.02.2003"} {
		dates := FindDates(text)
		if len(dates) != 1 {
			t.Errorf("separator variant %q not matched", text)
		}
	}
}
