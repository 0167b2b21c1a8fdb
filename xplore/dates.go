// Package xplore maps raw search-service responses onto validated
// bibliography records. It decodes the JSON result envelope, routes every
// article field through the field schema, derives BibTeX-oriented fields
// (pages, publication year and month, publication code) on lookup, and
// models boolean search expressions as an explicit tree.
package xplore

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// rangeMonths are the month spellings the service uses in date fields. Note
// the mixed style: short names carry a dot, May, June and July do not.
var rangeMonths = []string{"Jan.", "Feb.", "Mar.", "Apr.", "May", "June", "July", "Aug.", "Sep.", "Oct.", "Nov.", "Dec."}

var rangeRes = buildRangeRes()

// buildRangeRes compiles the four accepted layouts, from a single day up to
// a range spanning two years:
//
//	"11 Mar. 1989"
//	"15-17 Dec. 2014"
//	"29 Oct.-1 Nov. 2017"
//	"30 Dec. 2019-2 Jan. 2020"
func buildRangeRes() [4]*regexp.Regexp {
	day := `(\d{1,2})`
	month := `(Jan\.|Feb\.|Mar\.|Apr\.|May|June|July|Aug\.|Sep\.|Oct\.|Nov\.|Dec\.)`
	year := `(\d{4})`
	return [4]*regexp.Regexp{
		regexp.MustCompile(`^` + day + ` ` + month + ` ` + year + `$`),
		regexp.MustCompile(`^` + day + `-` + day + ` ` + month + ` ` + year + `$`),
		regexp.MustCompile(`^` + day + ` ` + month + `-` + day + ` ` + month + ` ` + year + `$`),
		regexp.MustCompile(`^` + day + ` ` + month + ` ` + year + `-` + day + ` ` + month + ` ` + year + `$`),
	}
}

func monthNumber(name string) (time.Month, bool) {
	for i, m := range rangeMonths {
		if m == name {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

// DateRange is a span of calendar days, as found in conference and
// publication date fields. A single date is a range whose ends coincide.
type DateRange struct {
	Begin time.Time
	End   time.Time
}

// ParseDateRange parses the date formats the service emits. Missing end
// components inherit the begin side.
func ParseDateRange(value string) (DateRange, error) {
	var beginDay, beginMonth, beginYear, endDay, endMonth, endYear string
	matched := false
	for i, re := range rangeRes {
		m := re.FindStringSubmatch(value)
		if m == nil {
			continue
		}
		matched = true
		switch i {
		case 0:
			beginDay, beginMonth, beginYear = m[1], m[2], m[3]
		case 1:
			beginDay, endDay, beginMonth, beginYear = m[1], m[2], m[3], m[4]
		case 2:
			beginDay, beginMonth, endDay, endMonth, beginYear = m[1], m[2], m[3], m[4], m[5]
		case 3:
			beginDay, beginMonth, beginYear, endDay, endMonth, endYear = m[1], m[2], m[3], m[4], m[5], m[6]
		}
		break
	}
	if !matched {
		return DateRange{}, fmt.Errorf("invalid date: %q", value)
	}

	if endDay == "" {
		endDay = beginDay
	}
	if endMonth == "" {
		endMonth = beginMonth
	}
	if endYear == "" {
		endYear = beginYear
	}

	bd, _ := strconv.Atoi(beginDay)
	ed, _ := strconv.Atoi(endDay)
	by, _ := strconv.Atoi(beginYear)
	ey, _ := strconv.Atoi(endYear)
	bm, ok := monthNumber(beginMonth)
	if !ok {
		return DateRange{}, fmt.Errorf("invalid begin month: %q", beginMonth)
	}
	em, ok := monthNumber(endMonth)
	if !ok {
		return DateRange{}, fmt.Errorf("invalid end month: %q", endMonth)
	}

	return DateRange{
		Begin: time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC),
		End:   time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC),
	}, nil
}

// String renders both ends as dot-separated dates, "2014.12.15--2014.12.17".
func (d DateRange) String() string {
	return fmt.Sprintf("%04d.%02d.%02d--%04d.%02d.%02d",
		d.Begin.Year(), int(d.Begin.Month()), d.Begin.Day(),
		d.End.Year(), int(d.End.Month()), d.End.Day())
}

func coerceDateRange(v any) (any, error) {
	switch t := v.(type) {
	case DateRange:
		return t, nil
	case string:
		return ParseDateRange(t)
	default:
		return nil, fmt.Errorf("expected a date string, got %T", v)
	}
}
