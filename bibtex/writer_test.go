package bibtex_test

import (
	"context"
	"strings"
	"testing"

	gobib "github.com/reoring/gobib"
	"github.com/reoring/gobib/bibtex"
)

func articleRecord(t *testing.T) *gobib.Record {
	t.Helper()
	rec := gobib.NewRecord(bibtex.Fields(), gobib.RecordOpt{})
	rec.Set("content_type", "article")
	rec.Set("year", 2020)
	rec.Set("title", "A Title")
	rec.Set("author", "John Smith and Doe, Jane")
	rec.Set("journal", "Journal of Tests")
	rec.Set("volume", 3)
	rec.Set("pages", "12--34")
	rec.Set("note", "extra")
	return rec
}

func TestWriteRecord_EmissionOrder(t *testing.T) {
	var buf strings.Builder
	w := bibtex.NewWriter(&buf, bibtex.WriteOpt{})
	if err := w.WriteRecord(articleRecord(t)); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "@ARTICLE{Smith") {
		t.Fatalf("unexpected header: %q", out)
	}
	if !strings.HasSuffix(out, "}\n\n") {
		t.Fatalf("expected closing brace and blank line, got %q", out)
	}

	// Required fields first, in entry-type order, then optional, then the
	// rest in record order.
	order := []string{"author = ", "title = ", "journal = ", "year = ", "volume = ", "pages = ", "note = "}
	last := -1
	for _, frag := range order {
		i := strings.Index(out, frag)
		if i < 0 {
			t.Fatalf("missing %q in output:\n%s", frag, out)
		}
		if i < last {
			t.Fatalf("%q emitted out of order:\n%s", frag, out)
		}
		last = i
	}

	if !strings.Contains(out, "  pages = {12--34},\n") {
		t.Fatalf("expected canonical page rendering, got:\n%s", out)
	}
	if !strings.Contains(out, "  author = {Smith, John and Doe, Jane},\n") {
		t.Fatalf("expected author list rendering, got:\n%s", out)
	}
}

func TestWriteRecord_MissingRequiredReported(t *testing.T) {
	rec := gobib.NewRecord(bibtex.Fields(), gobib.RecordOpt{})
	rec.Set("content_type", "article")
	rec.Set("title", "No Journal")

	var sink gobib.Collect
	var buf strings.Builder
	w := bibtex.NewWriter(&buf, bibtex.WriteOpt{Sink: &sink})
	if err := w.WriteRecord(rec); err != nil {
		t.Fatalf("write: %v", err)
	}

	missing := map[string]bool{}
	for _, it := range sink.Issues {
		if it.Code == gobib.CodeMissingRequired {
			if f, ok := it.Params["field"].(string); ok {
				missing[f] = true
			}
		}
	}
	for _, f := range []string{"author", "journal", "year", "volume"} {
		if !missing[f] {
			t.Fatalf("expected missing_required for %s, got: %v", f, sink.Issues)
		}
	}
	if missing["title"] {
		t.Fatalf("title was present, must not be reported")
	}
	// Serialization still happened.
	if !strings.Contains(buf.String(), "  title = {No Journal},\n") {
		t.Fatalf("expected output despite missing fields, got:\n%s", buf.String())
	}
}

func TestWriteRecord_AliasResolution(t *testing.T) {
	// Data under alias names is emitted once, under the canonical name.
	rec := gobib.NewRecord(bibtex.Fields(), gobib.RecordOpt{})
	rec.Set("content_type", "misc")
	rec.Set("authors", "John Smith")

	var buf strings.Builder
	if err := bibtex.NewWriter(&buf, bibtex.WriteOpt{}).WriteRecord(rec); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "  author = {John Smith},\n") {
		t.Fatalf("expected canonical author line, got:\n%s", out)
	}
	if strings.Contains(out, "authors = ") {
		t.Fatalf("alias must not be re-emitted under its own name:\n%s", out)
	}
}

func TestKey_AuthorsYear(t *testing.T) {
	w := bibtex.NewWriter(&strings.Builder{}, bibtex.WriteOpt{})

	if got := w.Key(articleRecord(t)); got != "SmithD2020" {
		t.Fatalf("expected SmithD2020, got %q", got)
	}

	// Without an author the explicit key field is the fallback.
	rec := gobib.NewRecord(bibtex.Fields(), gobib.RecordOpt{})
	rec.Set("key", "fallback")
	if got := w.Key(rec); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}

	if got := w.Key(gobib.NewRecord(bibtex.Fields(), gobib.RecordOpt{})); got != "" {
		t.Fatalf("expected empty key, got %q", got)
	}
}

func TestRoundTrip(t *testing.T) {
	var buf strings.Builder
	if err := bibtex.NewWriter(&buf, bibtex.WriteOpt{}).WriteRecord(articleRecord(t)); err != nil {
		t.Fatalf("write: %v", err)
	}

	var sink gobib.Collect
	p := bibtex.NewParser(bibtex.ParseOpt{Sink: &sink})
	col, err := p.Parse(context.Background(), strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if len(sink.Issues) != 0 {
		t.Fatalf("round trip must be clean, got: %v", sink.Issues)
	}
	if col.Len() != 1 {
		t.Fatalf("expected one entry, got %d", col.Len())
	}
	rec := col.At(0)

	if rec.Get("content_type") != "article" || rec.Get("year") != 2020 || rec.Get("volume") != 3 {
		t.Fatalf("typed fields did not survive: %v %v %v",
			rec.Get("content_type"), rec.Get("year"), rec.Get("volume"))
	}
	authors := rec.Get("author").(gobib.AuthorList)
	if len(authors) != 2 || authors[0].Name() != "Smith" || authors[1].Name() != "Doe" {
		t.Fatalf("authors did not survive: %v", authors)
	}
	pages := rec.Get("pages").(bibtex.PageRange)
	if pages.Begin != 12 || pages.End != 34 {
		t.Fatalf("pages did not survive: %v", pages)
	}

	// Writing the reparsed record again is byte-stable.
	var buf2 strings.Builder
	if err := bibtex.NewWriter(&buf2, bibtex.WriteOpt{}).WriteRecord(rec); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if buf2.String() != buf.String() {
		t.Fatalf("second write differs:\n%s\nvs\n%s", buf2.String(), buf.String())
	}
}
