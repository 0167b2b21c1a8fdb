package bibtex_test

import (
	"testing"
	"time"

	gobib "github.com/reoring/gobib"
	"github.com/reoring/gobib/bibtex"
)

func TestFields_MonthCanonicalization(t *testing.T) {
	s := bibtex.Fields()
	for _, tc := range []struct {
		in   any
		want string
	}{
		{"jan", "jan"},
		{"DEC", "dec"},
		{"January", "jan"},
		{"5", "may"},
		{"12", "dec"},
	} {
		v, err := s.Validate("month", tc.in)
		if err != nil {
			t.Fatalf("month %v: %v", tc.in, err)
		}
		if v != tc.want {
			t.Fatalf("month %v: got %v, want %s", tc.in, v, tc.want)
		}
	}

	for _, in := range []any{"13", "0", "janvier", "m"} {
		_, err := s.Validate("month", in)
		iss, _ := gobib.AsIssues(err)
		if len(iss) != 1 || iss[0].Code != gobib.CodeFailedValidator {
			t.Fatalf("month %v: expected failed_validator, got %v", in, err)
		}
	}
}

func TestFields_YearBound(t *testing.T) {
	s := bibtex.Fields()
	if _, err := s.Validate("year", time.Now().Year()); err != nil {
		t.Fatalf("current year must pass: %v", err)
	}
	_, err := s.Validate("year", time.Now().Year()+1)
	iss, _ := gobib.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != gobib.CodeTooBig {
		t.Fatalf("expected too_big for a future year, got %v", err)
	}
}

func TestFields_NumericLowerBounds(t *testing.T) {
	s := bibtex.Fields()
	for _, f := range []string{"chapter", "number", "volume"} {
		if _, err := s.Validate(f, "1"); err != nil {
			t.Fatalf("%s=1 must pass: %v", f, err)
		}
		_, err := s.Validate(f, "0")
		iss, _ := gobib.AsIssues(err)
		if len(iss) != 1 || iss[0].Code != gobib.CodeTooSmall {
			t.Fatalf("%s=0: expected too_small, got %v", f, err)
		}
	}
}

func TestFields_ContentTypeEnum(t *testing.T) {
	s := bibtex.Fields()
	for _, tag := range bibtex.EntryTypeTags {
		if _, err := s.Validate("content_type", tag); err != nil {
			t.Fatalf("%s must be accepted: %v", tag, err)
		}
	}
	_, err := s.Validate("content_type", "novel")
	iss, _ := gobib.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != gobib.CodeInvalidEnum {
		t.Fatalf("expected invalid_enum, got %v", err)
	}
}

func TestFields_FreeTextExtension(t *testing.T) {
	s := bibtex.Fields()
	v, err := s.Validate("keywords", "alpha, beta")
	if err != nil {
		t.Fatalf("alphabetic names must be accepted as free text: %v", err)
	}
	if v != "alpha, beta" {
		t.Fatalf("unexpected value: %v", v)
	}

	for _, name := range []string{"field1", "bad-name", ""} {
		_, err := s.Validate(name, "x")
		iss, _ := gobib.AsIssues(err)
		if len(iss) != 1 || iss[0].Code != gobib.CodeUnknownField {
			t.Fatalf("%q: expected unknown_field, got %v", name, err)
		}
	}
}

func TestParsePageRange(t *testing.T) {
	for _, tc := range []struct {
		in         string
		begin, end int
	}{
		{"12", 12, 12},
		{"12-34", 12, 34},
		{"12--34", 12, 34},
		{"12 -- 34", 12, 34},
	} {
		p, err := bibtex.ParsePageRange(tc.in)
		if err != nil {
			t.Fatalf("%q: %v", tc.in, err)
		}
		if p.Begin != tc.begin || p.End != tc.end {
			t.Fatalf("%q: got %v", tc.in, p)
		}
	}

	for _, in := range []string{"", "a-b", "12---34", "12-34-56"} {
		if _, err := bibtex.ParsePageRange(in); err == nil {
			t.Fatalf("%q: expected error", in)
		}
	}

	if got := (bibtex.PageRange{Begin: 12, End: 12}).String(); got != "12" {
		t.Fatalf("single page renders bare, got %q", got)
	}
	if got := (bibtex.PageRange{Begin: 12, End: 34}).String(); got != "12--34" {
		t.Fatalf("range renders with a double hyphen, got %q", got)
	}
}

func TestEntryType_Lookup(t *testing.T) {
	schema, ok := bibtex.EntryType("article")
	if !ok {
		t.Fatalf("article must be known")
	}
	if len(schema.Required) == 0 || schema.Required[0] != "author" {
		t.Fatalf("unexpected required list: %v", schema.Required)
	}
	if _, ok := bibtex.EntryType("novel"); ok {
		t.Fatalf("unknown tags must not resolve")
	}
}

func TestAliases(t *testing.T) {
	got := bibtex.Aliases("year")
	if len(got) != 2 || got[0] != "publication_year" || got[1] != "conference_year" {
		t.Fatalf("unexpected year aliases: %v", got)
	}
	if bibtex.Aliases("title") != nil {
		t.Fatalf("title has no aliases")
	}
}
