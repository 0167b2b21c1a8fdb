package bibyaml_test

import (
	"bytes"
	"strings"
	"testing"

	gobib "github.com/reoring/gobib"
	"github.com/reoring/gobib/bibyaml"
)

func TestLoad_MultiDocument(t *testing.T) {
	src := `content_type: article
key: smith2020
author: John Smith and Doe, Jane
title: A Title
year: 2020
---
content_type: misc
title: Another
`
	var sink gobib.Collect
	col, err := bibyaml.Load([]byte(src), bibyaml.Opt{Record: gobib.RecordOpt{Sink: &sink}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(sink.Issues) != 0 {
		t.Fatalf("unexpected diagnostics: %v", sink.Issues)
	}
	if col.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", col.Len())
	}

	rec := col.At(0)
	if rec.Get("year") != 2020 {
		t.Fatalf("year must be coerced to int, got %v (%T)", rec.Get("year"), rec.Get("year"))
	}
	authors, ok := rec.Get("author").(gobib.AuthorList)
	if !ok || len(authors) != 2 || authors[1].Name() != "Doe" {
		t.Fatalf("unexpected author value: %v", rec.Get("author"))
	}
	if col.At(1).Get("content_type") != "misc" {
		t.Fatalf("unexpected second record: %v", col.At(1).Get("content_type"))
	}
}

func TestLoad_SequenceRoot(t *testing.T) {
	src := `- content_type: article
  title: First
- content_type: misc
  title: Second
`
	col, err := bibyaml.Load([]byte(src), bibyaml.Opt{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if col.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", col.Len())
	}
	if col.At(1).Get("title") != "Second" {
		t.Fatalf("unexpected record order: %v", col.At(1).Get("title"))
	}
}

func TestLoad_ValidatesFields(t *testing.T) {
	src := `content_type: fancy
title: Bad Type
volume: 0
`
	var sink gobib.Collect
	col, err := bibyaml.Load([]byte(src), bibyaml.Opt{Record: gobib.RecordOpt{Sink: &sink}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if col.Len() != 1 {
		t.Fatalf("rejected fields must not drop the record")
	}

	codes := map[string]bool{}
	for _, is := range sink.Issues {
		codes[is.Code] = true
	}
	if !codes[gobib.CodeInvalidEnum] || !codes[gobib.CodeTooSmall] {
		t.Fatalf("unexpected diagnostics: %v", sink.Issues)
	}
	if col.At(0).Has("volume") {
		t.Fatalf("an out-of-range volume must not be stored")
	}
	if col.At(0).Get("title") != "Bad Type" {
		t.Fatalf("valid fields must survive: %v", col.At(0).Get("title"))
	}
}

func TestLoad_Malformed(t *testing.T) {
	_, err := bibyaml.Load([]byte("title: [unclosed"), bibyaml.Opt{})
	iss, ok := gobib.AsIssues(err)
	if !ok || len(iss) == 0 || iss[0].Code != gobib.CodeParseError {
		t.Fatalf("expected parse_error, got %v", err)
	}
}

func TestLoad_ScalarDocumentIgnored(t *testing.T) {
	col, err := bibyaml.Load([]byte("just a string\n---\ntitle: Real\n"), bibyaml.Opt{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if col.Len() != 1 || col.At(0).Get("title") != "Real" {
		t.Fatalf("non-mapping documents must be skipped, got %d records", col.Len())
	}
}

func TestWrite(t *testing.T) {
	src := `content_type: article
author: John Smith and Doe, Jane
title: A Title
year: 2020
pages: 12-34
`
	col, err := bibyaml.Load([]byte(src), bibyaml.Opt{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	var buf bytes.Buffer
	if err := bibyaml.Write(&buf, col); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()

	for _, frag := range []string{
		"title: A Title",
		"year: 2020",
		"pages: 12--34",
		"- Smith, John",
		"- Doe, Jane",
	} {
		if !strings.Contains(out, frag) {
			t.Fatalf("output missing %q:\n%s", frag, out)
		}
	}

	// The written form loads back to the same fields.
	again, err := bibyaml.Load(buf.Bytes(), bibyaml.Opt{})
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.Len() != 1 || again.At(0).Get("year") != 2020 {
		t.Fatalf("round trip lost fields: %v", again.At(0))
	}
}
