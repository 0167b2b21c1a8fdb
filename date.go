package gobib

import (
	"fmt"
	"strings"
)

// Date is a possibly partial calendar date. Bibliographic data often carries
// only a year, or a year and a month, so time.Time is not a good fit here.
// A zero component means "not provided"; a month is only meaningful with a
// year, and a day only with a month.
type Date struct {
	Year  int
	Month int
	Day   int
}

// NewDate builds a Date, discarding a month given without a year and a day
// given without a month.
func NewDate(year, month, day int) Date {
	if year == 0 {
		month = 0
	}
	if month == 0 {
		day = 0
	}
	return Date{Year: year, Month: month, Day: day}
}

// Valid reports whether the date carries at least a year.
func (d Date) Valid() bool { return d.Year != 0 }

// String renders the provided components joined by dots, e.g. "2020.04.01"
// or "2020.04" or "2020".
func (d Date) String() string {
	var parts []string
	if d.Year != 0 {
		parts = append(parts, fmt.Sprintf("%02d", d.Year))
	}
	if d.Month != 0 {
		parts = append(parts, fmt.Sprintf("%02d", d.Month))
	}
	if d.Day != 0 {
		parts = append(parts, fmt.Sprintf("%02d", d.Day))
	}
	return strings.Join(parts, ".")
}
