package gobib

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var doiRe = regexp.MustCompile(`^(10\..{4})/(.+)$`)

// DOI is a Digital Object Identifier split into its registrant prefix and
// suffix. Construction validates the shape; a malformed DOI is a hard
// failure.
type DOI struct {
	Prefix string
	Suffix string
}

// NewDOI parses and validates value. The accepted shape is "10." followed by
// exactly four characters, a "/", and a non-empty suffix.
func NewDOI(value string) (DOI, error) {
	m := doiRe.FindStringSubmatch(value)
	if m == nil {
		return DOI{}, Issues{{Path: "/", Code: CodeInvalidFormat, Message: fmt.Sprintf("invalid DOI: %q", value)}}
	}
	return DOI{Prefix: m[1], Suffix: m[2]}, nil
}

func (d DOI) String() string { return d.Prefix + "/" + d.Suffix }

// PublicationCode returns the first dot-delimited segment of the suffix, but
// only when the suffix splits into more than one segment.
func (d DOI) PublicationCode() (string, bool) {
	parts := strings.Split(d.Suffix, ".")
	if len(parts) > 1 {
		return parts[0], true
	}
	return "", false
}

var (
	isbnShapeRe = regexp.MustCompile(`^(\d+-){3,4}\d+$`)
	issnShapeRe = regexp.MustCompile(`^\d{4}-\d{4}$`)
)

// ISBNValid reports whether isbn is a well-formed International Standard Book
// Number: 4-5 hyphen-separated numeric groups whose digits satisfy the
// 10-digit (weights 10..1, mod 11) or 13-digit (weights 1,3 alternating,
// mod 10) checksum. Any other digit count is invalid.
func ISBNValid(isbn string) bool {
	if !isbnShapeRe.MatchString(isbn) {
		return false
	}
	digits := strings.ReplaceAll(isbn, "-", "")

	sum := 0
	for i, d := range digits {
		n := int(d - '0')
		switch len(digits) {
		case 10:
			sum += (10 - i) * n
		case 13:
			sum += (3 - 2*((i+1)%2)) * n
		}
	}

	switch len(digits) {
	case 10:
		return sum%11 == 0
	case 13:
		return sum%10 == 0
	default:
		return false
	}
}

// ISSNValid reports whether issn is a well-formed International Standard
// Serial Number: two 4-digit groups whose digits, weighted 8..1, sum to a
// multiple of 11.
func ISSNValid(issn string) bool {
	if !issnShapeRe.MatchString(issn) {
		return false
	}
	digits := strings.ReplaceAll(issn, "-", "")

	sum := 0
	for i, d := range digits {
		sum += (8 - i) * int(d-'0')
	}
	return sum%11 == 0
}

// ISBN is a shape-validated ISBN string. The constructor rejects malformed
// group shapes and failing checksums outright rather than reporting a soft
// diagnostic; use ISBNValid for the soft path.
type ISBN string

// NewISBN validates value as an ISBN.
func NewISBN(value string) (ISBN, error) {
	if !isbnShapeRe.MatchString(value) {
		return "", Issues{{Path: "/", Code: CodeInvalidFormat, Message: fmt.Sprintf("malformed ISBN: %q", value)}}
	}
	if !ISBNValid(value) {
		return "", Issues{{Path: "/", Code: CodeInvalidFormat, Message: fmt.Sprintf("ISBN checksum failure: %q", value)}}
	}
	return ISBN(value), nil
}

// ISSN is a shape-validated ISSN string; see ISBN for the hard/soft split.
type ISSN string

// NewISSN validates value as an ISSN.
func NewISSN(value string) (ISSN, error) {
	if !issnShapeRe.MatchString(value) {
		return "", Issues{{Path: "/", Code: CodeInvalidFormat, Message: fmt.Sprintf("malformed ISSN: %q", value)}}
	}
	if !ISSNValid(value) {
		return "", Issues{{Path: "/", Code: CodeInvalidFormat, Message: fmt.Sprintf("ISSN checksum failure: %q", value)}}
	}
	return ISSN(value), nil
}

// URLValid reports whether value parses as a URL with at least a host or a
// path component.
func URLValid(value string) bool {
	u, err := url.Parse(value)
	if err != nil {
		return false
	}
	return u.Host != "" || u.Path != ""
}
