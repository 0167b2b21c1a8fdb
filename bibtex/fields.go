package bibtex

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	gobib "github.com/reoring/gobib"
)

// PageRange is a page interval coerced from "12" or "12-34" / "12--34" text.
type PageRange struct {
	Begin int
	End   int
}

var pageRangeRe = regexp.MustCompile(`^(\d+)\s*(?:-{1,2}\s*(\d+))?$`)

// ParsePageRange parses value; a single page yields Begin == End.
func ParsePageRange(value string) (PageRange, error) {
	m := pageRangeRe.FindStringSubmatch(value)
	if m == nil {
		return PageRange{}, fmt.Errorf("invalid page range: %q", value)
	}
	begin, _ := strconv.Atoi(m[1])
	end := begin
	if m[2] != "" {
		end, _ = strconv.Atoi(m[2])
	}
	return PageRange{Begin: begin, End: end}, nil
}

// String renders "12" or "12--34" (the canonical BibTeX double hyphen).
func (p PageRange) String() string {
	if p.Begin == p.End {
		return strconv.Itoa(p.Begin)
	}
	return strconv.Itoa(p.Begin) + "--" + strconv.Itoa(p.End)
}

var (
	shortMonths = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}
	longMonths  = []string{"january", "february", "march", "april", "may", "june", "july", "august", "september", "october", "november", "december"}
)

// monthValidator canonicalizes a month given as a three-letter abbreviation,
// a full English name, or a 1-12 number to its lowercase three-letter form.
func monthValidator(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("month must be a string, got %T", v)
	}
	low := strings.ToLower(s)
	for _, m := range shortMonths {
		if low == m {
			return m, nil
		}
	}
	for i, m := range longMonths {
		if low == m {
			return shortMonths[i], nil
		}
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n >= 1 && n <= 12 {
		return shortMonths[n-1], nil
	}
	return nil, fmt.Errorf("invalid month: %q", s)
}

func coerceAuthorList(v any) (any, error) { return gobib.NewAuthorList(v) }

func coerceDOI(v any) (any, error) {
	switch t := v.(type) {
	case gobib.DOI:
		return t, nil
	case string:
		return gobib.NewDOI(t)
	default:
		return nil, fmt.Errorf("cannot convert %T to DOI", v)
	}
}

func coercePageRange(v any) (any, error) {
	switch t := v.(type) {
	case PageRange:
		return t, nil
	case string:
		return ParsePageRange(t)
	default:
		return nil, fmt.Errorf("cannot convert %T to page range", v)
	}
}

// EntryTypeTags are the supported BibTeX entry kinds, also the allowed set of
// the content_type field.
var EntryTypeTags = []string{
	"article", "book", "booklet", "inbook", "incollection", "inproceedings",
	"manual", "mastersthesis", "misc", "phdthesis", "proceedings",
	"techreport", "unpublished",
}

var fieldTable = buildFields()

// Fields returns the BibTeX field specification table. The table is built
// once per process and is read-only.
func Fields() *gobib.Schema { return fieldTable }

func buildFields() *gobib.Schema {
	thisYear := time.Now().Year()
	allowedTypes := make([]any, len(EntryTypeTags))
	for i, t := range EntryTypeTags {
		allowedTypes[i] = t
	}

	return gobib.NewSchema().
		Field("address", gobib.FieldSpec{
			Doc:    "Publisher's address (usually just the city, but can be the full address for lesser-known publishers).",
			Coerce: gobib.CoerceString,
		}).
		Field("annote", gobib.FieldSpec{
			Doc:    "An annotation for annotated bibliography styles (not typical).",
			Coerce: gobib.CoerceString,
		}).
		Field("author", gobib.FieldSpec{
			Doc:    "The name(s) of the author(s) (in the case of more than one author, separated by and).",
			Coerce: coerceAuthorList,
		}).
		Field("booktitle", gobib.FieldSpec{
			Doc:    "The title of the book, if only part of it is being cited.",
			Coerce: gobib.CoerceString,
		}).
		Field("chapter", gobib.FieldSpec{
			Doc:    "The chapter number.",
			Coerce: gobib.CoerceInt,
			Min:    gobib.Min(1),
		}).
		Field("content_type", gobib.FieldSpec{
			Doc:     "BibTeX entry type.",
			Coerce:  gobib.CoerceString,
			Allowed: allowedTypes,
		}).
		Field("crossref", gobib.FieldSpec{
			Doc:    "The key of the cross-referenced entry.",
			Coerce: gobib.CoerceString,
		}).
		Field("doi", gobib.FieldSpec{
			Doc:    "Digital object identifier.",
			Coerce: coerceDOI,
		}).
		Field("edition", gobib.FieldSpec{
			Doc:    "The edition of a book, long form (such as \"First\" or \"Second\").",
			Coerce: gobib.CoerceString,
		}).
		Field("editor", gobib.FieldSpec{
			Doc:    "The name(s) of the editor(s).",
			Coerce: gobib.CoerceString,
		}).
		Field("howpublished", gobib.FieldSpec{
			Doc:    "How it was published, if the publishing method is nonstandard.",
			Coerce: gobib.CoerceString,
		}).
		Field("institution", gobib.FieldSpec{
			Doc:    "The institution that was involved in the publishing, but not necessarily the publisher.",
			Coerce: gobib.CoerceString,
		}).
		Field("journal", gobib.FieldSpec{
			Doc:    "The journal or magazine the work was published in.",
			Coerce: gobib.CoerceString,
		}).
		Field("key", gobib.FieldSpec{
			Doc:    "A hidden field used for specifying or overriding the alphabetical order of entries. Not the citation key.",
			Coerce: gobib.CoerceString,
		}).
		Field("month", gobib.FieldSpec{
			Doc:      "The month of publication (or, if unpublished, the month of creation).",
			Coerce:   gobib.CoerceString,
			Validate: monthValidator,
		}).
		Field("note", gobib.FieldSpec{
			Doc:    "Miscellaneous extra information.",
			Coerce: gobib.CoerceString,
		}).
		Field("number", gobib.FieldSpec{
			Doc:    "The \"(issue) number\" of a journal, magazine, or tech-report, if applicable.",
			Coerce: gobib.CoerceInt,
			Min:    gobib.Min(1),
		}).
		Field("organization", gobib.FieldSpec{
			Doc:    "The conference sponsor.",
			Coerce: gobib.CoerceString,
		}).
		Field("pages", gobib.FieldSpec{
			Doc:    "Page numbers, separated either by commas or double-hyphens.",
			Coerce: coercePageRange,
		}).
		Field("publisher", gobib.FieldSpec{
			Doc:    "The publisher's name.",
			Coerce: gobib.CoerceString,
		}).
		Field("school", gobib.FieldSpec{
			Doc:    "The school where the thesis was written.",
			Coerce: gobib.CoerceString,
		}).
		Field("series", gobib.FieldSpec{
			Doc:    "The series of books the book was published in (e.g. \"Lecture Notes in Computer Science\").",
			Coerce: gobib.CoerceString,
		}).
		Field("title", gobib.FieldSpec{
			Doc:    "The title of the work.",
			Coerce: gobib.CoerceString,
		}).
		Field("type", gobib.FieldSpec{
			Doc:    "The field overriding the default type of publication (e.g. \"Research Note\" for techreport).",
			Coerce: gobib.CoerceString,
		}).
		Field("volume", gobib.FieldSpec{
			Doc:    "The volume of a journal or multi-volume book.",
			Coerce: gobib.CoerceInt,
			Min:    gobib.Min(1),
		}).
		Field("year", gobib.FieldSpec{
			Doc:    "The year of publication (or, if unpublished, the year of creation).",
			Coerce: gobib.CoerceInt,
			Max:    gobib.Max(thisYear),
		}).
		Extend(freeTextExtension).
		Build()
}

// freeTextExtension admits purely alphabetic names absent from the table as
// unofficial user-defined free-text fields.
func freeTextExtension(name string) (gobib.FieldSpec, bool) {
	if name == "" {
		return gobib.FieldSpec{}, false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) {
			return gobib.FieldSpec{}, false
		}
	}
	return gobib.FieldSpec{
		Doc:    "Unofficial user-defined field.",
		Coerce: gobib.CoerceString,
	}, true
}
