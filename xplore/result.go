package xplore

import (
	"fmt"
	"sort"
	"strings"
	"time"

	gobib "github.com/reoring/gobib"
	"github.com/reoring/gobib/bibtex"
)

// contentTypeMap translates the service's content kinds to BibTeX entry
// types.
var contentTypeMap = map[string]string{
	"Journals":     "article",
	"Conferences":  "inproceedings",
	"Early Access": "unpublished",
	"Standards":    "booklet",
	"Books":        "book",
	"Courses":      "misc",
}

func validateContentType(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("expected a content type string, got %T", v)
	}
	tag, ok := contentTypeMap[s]
	if !ok {
		return nil, fmt.Errorf("unknown content type %q", s)
	}
	return tag, nil
}

func validateDOI(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("expected a DOI string, got %T", v)
	}
	return gobib.NewDOI(s)
}

func validateISBN(v any) (any, error) {
	s, ok := v.(string)
	if !ok || !gobib.ISBNValid(s) {
		return nil, fmt.Errorf("invalid ISBN: %v", v)
	}
	return s, nil
}

func validateISSN(v any) (any, error) {
	s, ok := v.(string)
	if !ok || !gobib.ISSNValid(s) {
		return nil, fmt.Errorf("invalid ISSN: %v", v)
	}
	return s, nil
}

// IndexTerms groups the keyword lists attached to an article, keyed by the
// vocabulary they come from ("ieee", "author", ...).
type IndexTerms struct {
	sections []string
	terms    map[string][]string
}

// NewIndexTerms builds IndexTerms from the decoded index_terms object, whose
// shape is {"<vocabulary>_terms": {"terms": [...]}}.
func NewIndexTerms(value map[string]any) (IndexTerms, error) {
	it := IndexTerms{terms: make(map[string][]string)}
	for k := range value {
		it.sections = append(it.sections, k)
	}
	sort.Strings(it.sections)
	for i, k := range it.sections {
		section, ok := value[k].(map[string]any)
		if !ok {
			return IndexTerms{}, fmt.Errorf("malformed term section %q", k)
		}
		raw, ok := section["terms"].([]any)
		if !ok {
			return IndexTerms{}, fmt.Errorf("term section %q carries no term list", k)
		}
		name := strings.TrimSuffix(k, "_terms")
		it.sections[i] = name
		for _, t := range raw {
			it.terms[name] = append(it.terms[name], fmt.Sprintf("%v", t))
		}
	}
	return it, nil
}

// Sections returns the vocabulary names, sorted.
func (it IndexTerms) Sections() []string { return it.sections }

// Terms returns the keywords of one vocabulary.
func (it IndexTerms) Terms(section string) []string { return it.terms[section] }

// Len counts keywords across all vocabularies.
func (it IndexTerms) Len() int {
	n := 0
	for _, v := range it.terms {
		n += len(v)
	}
	return n
}

// String joins every keyword with commas, section by section.
func (it IndexTerms) String() string {
	var all []string
	for _, s := range it.sections {
		all = append(all, it.terms[s]...)
	}
	return strings.Join(all, ", ")
}

func coerceIndexTerms(v any) (any, error) {
	switch t := v.(type) {
	case IndexTerms:
		return t, nil
	case map[string]any:
		return NewIndexTerms(t)
	default:
		return nil, fmt.Errorf("expected an index_terms object, got %T", v)
	}
}

// coerceAuthors turns the service's {"authors": [...]} wrapper into an
// AuthorList. Profile fields of each author are validated against
// AuthorFields; an author without a usable full_name fails the whole list.
func coerceAuthors(v any) (any, error) {
	switch t := v.(type) {
	case gobib.AuthorList:
		return t, nil
	case map[string]any:
		raw, ok := t["authors"].([]any)
		if !ok {
			return nil, fmt.Errorf("authors object carries no author list")
		}
		list := make(gobib.AuthorList, 0, len(raw))
		for _, e := range raw {
			obj, ok := e.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("expected an author object, got %T", e)
			}
			a, err := NewAuthor(obj, gobib.RecordOpt{})
			if err != nil {
				return nil, err
			}
			list = append(list, a.Author)
		}
		return list, nil
	default:
		return nil, fmt.Errorf("expected an authors object, got %T", v)
	}
}

var resultFields = buildResultFields()

// Fields is the validation schema for one article in a result set.
func Fields() *gobib.Schema { return resultFields }

func buildResultFields() *gobib.Schema {
	urlSpec := func(doc string) gobib.FieldSpec {
		return gobib.FieldSpec{Doc: doc, Coerce: gobib.CoerceString, Validate: validateURL}
	}
	countSpec := func(doc string) gobib.FieldSpec {
		return gobib.FieldSpec{Doc: doc, Coerce: gobib.CoerceInt, Min: gobib.Min(0)}
	}

	return gobib.NewSchema().
		Field("abstract", gobib.FieldSpec{
			Doc:    "Brief summary or statement of the contents of the document.",
			Coerce: gobib.CoerceString,
		}).
		Field("abstract_url", urlSpec("URL returning the abstract.")).
		Field("author_url", urlSpec("URL returning the author details.")).
		Field("access_type", gobib.FieldSpec{
			Doc:     "How the document may be accessed.",
			Coerce:  gobib.CoerceString,
			Allowed: []any{"LOCKED", "OPEN ACCESS", "EPHEMERA", "PLAGARIZED"},
		}).
		Field("article_number", countSpec("The service's unique identifier for a specific article.")).
		Field("authors", gobib.FieldSpec{
			Doc:    "Name of the author(s) listed in the document, with their listed order.",
			Coerce: coerceAuthors,
		}).
		Field("citing_paper_count", countSpec("Number of papers citing the given article.")).
		Field("citing_patent_count", countSpec("Number of patents citing the given article.")).
		Field("conference_dates", gobib.FieldSpec{
			Doc:    "Date of the conference event.",
			Coerce: coerceDateRange,
		}).
		Field("conference_location", gobib.FieldSpec{
			Doc:    "Location of the conference event.",
			Coerce: gobib.CoerceString,
		}).
		Field("content_type", gobib.FieldSpec{
			Doc:      "What kind of publication the content is from, as a BibTeX entry type.",
			Coerce:   gobib.CoerceString,
			Validate: validateContentType,
		}).
		Field("doi", gobib.FieldSpec{
			Doc:      "Digital Object Identifier assigned to the document.",
			Coerce:   gobib.CoerceString,
			Validate: validateDOI,
		}).
		Field("end_page", gobib.FieldSpec{
			Doc:    "Final page number in the print version of the article.",
			Coerce: gobib.CoerceInt,
			Min:    gobib.Min(1),
		}).
		Field("html_url", urlSpec("URL returning the full-text HTML.")).
		Field("index_terms", gobib.FieldSpec{
			Doc:    "Combined keyword lists attached to the document.",
			Coerce: coerceIndexTerms,
		}).
		Field("is_number", countSpec("Internal issue identifier (journals only).")).
		Field("isbn", gobib.FieldSpec{
			Doc:      "International Standard Book Number of the containing book or non-serial.",
			Coerce:   gobib.CoerceString,
			Validate: validateISBN,
		}).
		Field("issn", gobib.FieldSpec{
			Doc:      "International Standard Serial Number of the containing periodical.",
			Coerce:   gobib.CoerceString,
			Validate: validateISSN,
		}).
		Field("issue", gobib.FieldSpec{
			Doc:    "Number of the journal issue in which the article was published.",
			Coerce: gobib.CoerceInt,
			Min:    gobib.Min(1),
		}).
		Field("pdf_url", urlSpec("URL returning the full-text PDF.")).
		Field("publication_date", gobib.FieldSpec{
			Doc:    "Date the article was published.",
			Coerce: coerceDateRange,
		}).
		Field("publication_number", countSpec("Unique record number assigned to the publication.")).
		Field("publication_title", gobib.FieldSpec{
			Doc:    "Title of the containing publication.",
			Coerce: gobib.CoerceString,
		}).
		Field("publication_year", gobib.FieldSpec{
			Doc:    "Year the article was published.",
			Coerce: gobib.CoerceInt,
			Max:    gobib.Max(time.Now().Year()),
		}).
		Field("publisher", gobib.FieldSpec{
			Doc:    "Name of the publisher of the publication.",
			Coerce: gobib.CoerceString,
			Allowed: []any{
				"Alcatel-Lucent", "AGU", "BIAI", "CSEE", "IBM", "IEEE",
				"IET", "MITP", "Morgan & Claypool", "SMPTE", "TUP", "VDE",
			},
		}).
		Field("rank", gobib.FieldSpec{
			Doc:    "Position of the document in the service's relevance ordering.",
			Coerce: gobib.CoerceInt,
			Min:    gobib.Min(1),
		}).
		Field("standard_number", countSpec("Standard designation number.")).
		Field("start_page", gobib.FieldSpec{
			Doc:    "Starting page number in the print version of the article.",
			Coerce: gobib.CoerceInt,
			Min:    gobib.Min(1),
		}).
		Field("title", gobib.FieldSpec{
			Doc:    "Title of the individual document.",
			Coerce: gobib.CoerceString,
		}).
		Field("volume", gobib.FieldSpec{
			Doc:    "Volume number (journals and conferences only).",
			Coerce: gobib.CoerceInt,
			Min:    gobib.Min(1),
		}).
		Build()
}

// Result is one article of a result set. On top of the validated fields it
// derives the BibTeX-oriented names (pages, publication_year,
// publication_month, conference_year, conference_month, publication_code)
// from the underlying dates, page bounds and DOI, so a Result can be handed
// straight to a BibTeX writer.
type Result struct {
	*gobib.Record
}

// ResultFrom validates one decoded article object.
func ResultFrom(data map[string]any, opt gobib.RecordOpt) Result {
	return Result{Record: gobib.RecordFrom(resultFields, data, opt)}
}

// Lookup resolves a field, deriving the BibTeX-oriented names when the
// record does not carry them directly.
func (r Result) Lookup(name string) (any, bool) {
	if v, ok := r.Record.Lookup(name); ok {
		return v, true
	}
	switch name {
	case "pages":
		begin, ok1 := r.Record.Lookup("start_page")
		end, ok2 := r.Record.Lookup("end_page")
		if ok1 && ok2 {
			return bibtex.PageRange{Begin: begin.(int), End: end.(int)}, true
		}
	case "publication_year":
		if d, ok := r.dates("publication_date"); ok {
			return d.Begin.Year(), true
		}
	case "publication_month":
		if d, ok := r.dates("publication_date"); ok {
			return int(d.Begin.Month()), true
		}
	case "conference_year":
		if d, ok := r.dates("conference_dates"); ok {
			return d.Begin.Year(), true
		}
	case "conference_month":
		if d, ok := r.dates("conference_dates"); ok {
			return int(d.Begin.Month()), true
		}
	case "publication_code":
		if v, ok := r.Record.Lookup("doi"); ok {
			if doi, ok := v.(gobib.DOI); ok {
				if code, ok := doi.PublicationCode(); ok {
					return code, true
				}
			}
		}
	}
	return nil, false
}

// Has reports whether Lookup would succeed, derived names included.
func (r Result) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

func (r Result) dates(field string) (DateRange, bool) {
	v, ok := r.Record.Lookup(field)
	if !ok {
		return DateRange{}, false
	}
	d, ok := v.(DateRange)
	return d, ok
}
