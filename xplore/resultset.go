package xplore

import (
	"io"

	"github.com/goccy/go-json"

	gobib "github.com/reoring/gobib"
	"github.com/reoring/gobib/i18n"
)

// ResultSet is one decoded response envelope: the search statistics plus
// the validated articles it carried. A response without the statistics is
// rejected outright; a response without articles is an empty, valid set.
type ResultSet struct {
	// Searched is the total number of documents the service searched.
	Searched int
	// Total is the number of documents matching the query, which may
	// exceed the number of articles in this set when the response was
	// paginated.
	Total int

	results []Result
	opt     gobib.RecordOpt
}

type envelope struct {
	TotalRecords  *int             `json:"total_records"`
	TotalSearched *int             `json:"total_searched"`
	Articles      []map[string]any `json:"articles"`
}

// ParseResultSet decodes a response envelope and validates every article in
// it. Per-field problems go to opt.Sink; only a malformed envelope is an
// error.
func ParseResultSet(data []byte, opt gobib.RecordOpt) (*ResultSet, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, gobib.Issues{{Path: "/", Code: gobib.CodeParseError, Message: err.Error(), Cause: err}}
	}
	return resultSetFrom(env, opt)
}

// ReadResultSet decodes a response envelope from a stream.
func ReadResultSet(r io.Reader, opt gobib.RecordOpt) (*ResultSet, error) {
	var env envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, gobib.Issues{{Path: "/", Code: gobib.CodeParseError, Message: err.Error(), Cause: err}}
	}
	return resultSetFrom(env, opt)
}

func resultSetFrom(env envelope, opt gobib.RecordOpt) (*ResultSet, error) {
	if env.TotalRecords == nil || env.TotalSearched == nil {
		return nil, gobib.Issues{{
			Path:    "/",
			Code:    gobib.CodeInvalidFormat,
			Message: "result set carries no search statistics",
		}}
	}

	set := &ResultSet{Searched: *env.TotalSearched, Total: *env.TotalRecords, opt: opt}
	for _, art := range env.Articles {
		set.results = append(set.results, ResultFrom(art, opt))
	}
	return set, nil
}

// Len returns the number of articles held in this set, which may be less
// than Total.
func (s *ResultSet) Len() int { return len(s.results) }

// At returns the i-th article.
func (s *ResultSet) At(i int) Result { return s.results[i] }

// Results returns the articles in response order.
func (s *ResultSet) Results() []Result {
	out := make([]Result, len(s.results))
	copy(out, s.results)
	return out
}

// Complete reports whether the set holds every matching document.
func (s *ResultSet) Complete() bool { return len(s.results) >= s.Total }

// Merge appends another page of the same query. Diverging totals are
// reported, not fatal, and the larger total wins.
func (s *ResultSet) Merge(other *ResultSet) {
	if other.Total != s.Total {
		sink := s.opt.Sink
		if sink == nil {
			sink = gobib.Discard()
		}
		sink.Report(gobib.Issue{
			Path:    "/",
			Code:    gobib.CodeInvalidFormat,
			Message: i18n.T(gobib.CodeInvalidFormat, nil),
			Params:  map[string]any{"total": s.Total, "other": other.Total},
		})
		if other.Total > s.Total {
			s.Total = other.Total
		}
	}
	s.results = append(s.results, other.results...)
	if other.Searched > s.Searched {
		s.Searched = other.Searched
	}
}

// Collection converts the set to a record collection over the result schema.
// The records carry only the validated service fields; the derived
// BibTeX-oriented names (pages, publication_year, publication_code...) exist
// on Result, not on the bare records, so callers serializing to BibTeX should
// hand Result values to a Writer's WriteRecord rather than write the
// collection.
func (s *ResultSet) Collection() *gobib.Collection {
	col := gobib.NewCollection(resultFields)
	for _, r := range s.results {
		col.Append(r.Record)
	}
	return col
}
