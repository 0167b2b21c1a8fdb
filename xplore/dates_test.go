package xplore_test

import (
	"testing"
	"time"

	"github.com/reoring/gobib/xplore"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDateRange_Layouts(t *testing.T) {
	for _, tc := range []struct {
		in         string
		begin, end time.Time
	}{
		{"11 Mar. 1989", date(1989, time.March, 11), date(1989, time.March, 11)},
		{"15-17 Dec. 2014", date(2014, time.December, 15), date(2014, time.December, 17)},
		{"29 Oct.-1 Nov. 2017", date(2017, time.October, 29), date(2017, time.November, 1)},
		{"30 Dec. 2019-2 Jan. 2020", date(2019, time.December, 30), date(2020, time.January, 2)},
		{"6-8 July 2016", date(2016, time.July, 6), date(2016, time.July, 8)},
		{"21-24 May 2017", date(2017, time.May, 21), date(2017, time.May, 24)},
	} {
		d, err := xplore.ParseDateRange(tc.in)
		if err != nil {
			t.Fatalf("%q: %v", tc.in, err)
		}
		if !d.Begin.Equal(tc.begin) || !d.End.Equal(tc.end) {
			t.Fatalf("%q: got %v .. %v", tc.in, d.Begin, d.End)
		}
	}
}

func TestParseDateRange_Malformed(t *testing.T) {
	for _, in := range []string{
		"",
		"Mar. 1989",       // no day
		"11 March 1989",   // full month names are not used by the service
		"11 Mar 1989",     // missing dot
		"11 Mar. 89",      // two-digit year
		"15--17 Dec. 2014",
	} {
		if _, err := xplore.ParseDateRange(in); err == nil {
			t.Fatalf("%q: expected error", in)
		}
	}
}

func TestDateRange_String(t *testing.T) {
	d, err := xplore.ParseDateRange("15-17 Dec. 2014")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2014.12.15--2014.12.17" {
		t.Fatalf("unexpected rendering: %q", d.String())
	}
}
