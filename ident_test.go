package gobib_test

import (
	"testing"

	gobib "github.com/reoring/gobib"
)

func TestNewDOI_SplitsPrefixAndSuffix(t *testing.T) {
	d, err := gobib.NewDOI("10.1109/CDC.2014.7040330")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Prefix != "10.1109" || d.Suffix != "CDC.2014.7040330" {
		t.Fatalf("unexpected split: %q / %q", d.Prefix, d.Suffix)
	}
	if d.String() != "10.1109/CDC.2014.7040330" {
		t.Fatalf("unexpected rendering: %q", d.String())
	}

	code, ok := d.PublicationCode()
	if !ok || code != "CDC" {
		t.Fatalf("expected publication code CDC, got %q / %v", code, ok)
	}
}

func TestNewDOI_Malformed(t *testing.T) {
	for _, in := range []string{
		"",
		"11.1109/x",  // wrong directory indicator
		"10.123/x",   // registrant too short
		"10.12345/x", // registrant too long
		"10.1109/",   // empty suffix
		"10.1109",    // no slash
	} {
		_, err := gobib.NewDOI(in)
		iss, ok := gobib.AsIssues(err)
		if !ok || len(iss) == 0 || iss[0].Code != gobib.CodeInvalidFormat {
			t.Fatalf("NewDOI(%q): expected invalid_format, got %v", in, err)
		}
	}
}

func TestDOIPublicationCode_NeedsDottedSuffix(t *testing.T) {
	d, err := gobib.NewDOI("10.1109/7040330")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := d.PublicationCode(); ok {
		t.Fatalf("single-segment suffix must have no publication code")
	}
}

func TestISBNValid(t *testing.T) {
	for _, tc := range []struct {
		in    string
		valid bool
	}{
		{"99921-58-10-7", true},       // 10 digits
		{"978-1-4673-6090-6", true},   // 13 digits
		{"99921-58-10-8", false},      // bad checksum
		{"978-1-4673-6090-7", false},  // bad checksum
		{"9992158107", false},         // no groups
		{"99921-58-107", false},       // too few groups
		{"1-2-3-4-5-6", false},        // too many groups
		{"99921-58-1a-7", false},      // non-digit
		{"978-1-4673-609-06", true},   // grouping is free; only the digit sequence is checked
		{"978-1-46735-6090-6", false}, // 14 digits
	} {
		if got := gobib.ISBNValid(tc.in); got != tc.valid {
			t.Fatalf("ISBNValid(%q) = %v, want %v", tc.in, got, tc.valid)
		}
	}
}

func TestISSNValid(t *testing.T) {
	for _, tc := range []struct {
		in    string
		valid bool
	}{
		{"0378-5955", true},
		{"0378-5954", false},
		{"03785955", false},
		{"0378-595", false},
		{"a378-5955", false},
	} {
		if got := gobib.ISSNValid(tc.in); got != tc.valid {
			t.Fatalf("ISSNValid(%q) = %v, want %v", tc.in, got, tc.valid)
		}
	}
}

func TestNewISBN_NewISSN_HardFailures(t *testing.T) {
	if _, err := gobib.NewISBN("99921-58-10-7"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := gobib.NewISBN("99921-58-10-8"); err == nil {
		t.Fatalf("expected checksum failure")
	}
	if _, err := gobib.NewISSN("0378-5955"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := gobib.NewISSN("0378-5954"); err == nil {
		t.Fatalf("expected checksum failure")
	}
}

func TestURLValid(t *testing.T) {
	for _, tc := range []struct {
		in    string
		valid bool
	}{
		{"https://example.org/doc", true},
		{"example.org/doc", true}, // path-only parse
		{"", false},
		{"http://%zz", false},
	} {
		if got := gobib.URLValid(tc.in); got != tc.valid {
			t.Fatalf("URLValid(%q) = %v, want %v", tc.in, got, tc.valid)
		}
	}
}
