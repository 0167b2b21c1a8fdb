package xplore

import (
	"fmt"
	"strings"

	gobib "github.com/reoring/gobib"
)

var authorFields = gobib.NewSchema().
	Field("authorUrl", gobib.FieldSpec{
		Doc:      "Profile URL returning the author details.",
		Coerce:   gobib.CoerceString,
		Validate: validateURL,
	}).
	Field("author_order", gobib.FieldSpec{
		Doc:    "Position of the author in the document's author list.",
		Coerce: gobib.CoerceInt,
		Min:    gobib.Min(1),
	}).
	Field("affiliation", gobib.FieldSpec{
		Doc:    "Name of the affiliation listed in the document.",
		Coerce: gobib.CoerceString,
	}).
	Field("full_name", gobib.FieldSpec{
		Doc:    "The full name of an author.",
		Coerce: gobib.CoerceString,
	}).
	Field("id", gobib.FieldSpec{
		Doc:    "Internal author identifier.",
		Coerce: gobib.CoerceInt,
		Min:    gobib.Min(0),
	}).
	Build()

// AuthorFields is the validation schema for one author object in a result.
func AuthorFields() *gobib.Schema { return authorFields }

// Author is an author as returned by the search service: the parsed name
// plus the profile fields (URL, identifier, affiliation, listing order).
type Author struct {
	gobib.Author
	rec *gobib.Record
}

// NewAuthor builds an Author from one decoded author object. The name is
// derived from full_name, whose last word is taken as the surname and the
// rest as forenames. A missing or empty full_name is an error.
func NewAuthor(data map[string]any, opt gobib.RecordOpt) (Author, error) {
	rec := gobib.RecordFrom(authorFields, data, opt)

	full, ok := rec.Lookup("full_name")
	if !ok {
		return Author{}, gobib.Issues{{
			Path:    "/full_name",
			Code:    gobib.CodeMissingRequired,
			Message: "author object carries no full_name",
		}}
	}
	parts := strings.Fields(full.(string))
	if len(parts) == 0 {
		return Author{}, gobib.Issues{{
			Path:    "/full_name",
			Code:    gobib.CodeInvalidFormat,
			Message: "author full_name is empty",
		}}
	}

	// Last word is the surname, everything before it the forenames.
	ordered := append([]string{parts[len(parts)-1]}, parts[:len(parts)-1]...)
	base, err := gobib.NewAuthor(ordered)
	if err != nil {
		return Author{}, err
	}
	return Author{Author: base, rec: rec}, nil
}

// Profile returns a validated profile field (authorUrl, author_order,
// affiliation, full_name, id).
func (a Author) Profile(name string) (any, bool) {
	if a.rec == nil {
		return nil, false
	}
	return a.rec.Lookup(name)
}

func validateURL(v any) (any, error) {
	s, ok := v.(string)
	if !ok || !gobib.URLValid(s) {
		return nil, fmt.Errorf("invalid URL: %v", v)
	}
	return s, nil
}
