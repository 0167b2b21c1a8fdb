package bibtex

import (
	"fmt"
	"io"
	"strings"

	gobib "github.com/reoring/gobib"
	"github.com/reoring/gobib/i18n"
)

// WriteOpt bundles writing options.
type WriteOpt struct {
	// Sink receives the writer's diagnostics (missing required fields).
	// Nil means Discard().
	Sink gobib.Sink
}

// Writer serializes records as BibTeX entries. It accepts any Fielder, so
// records parsed from BibTeX and results fetched from a search service
// serialize through the same path.
type Writer struct {
	w   io.Writer
	opt WriteOpt
}

// NewWriter creates a Writer emitting to w.
func NewWriter(w io.Writer, opt WriteOpt) *Writer {
	return &Writer{w: w, opt: opt}
}

func (w *Writer) sink() gobib.Sink {
	if w.opt.Sink == nil {
		return gobib.Discard()
	}
	return w.opt.Sink
}

// Write serializes every record in the collection.
func (w *Writer) Write(col *gobib.Collection) error {
	for _, rec := range col.Records() {
		if err := w.WriteRecord(rec); err != nil {
			return err
		}
	}
	return nil
}

// WriteRecord serializes a single record. Emission order is fixed: the
// entry type's required fields, its optional fields, then a sweep of the
// alias table for canonical names not yet covered, then every remaining
// field in record order. A record with no recognized entry type falls back
// to "misc". Missing required fields are reported, never fatal.
func (w *Writer) WriteRecord(rec gobib.Fielder) error {
	entryType := "misc"
	if v, ok := rec.Lookup("content_type"); ok {
		if s, sok := v.(string); sok && s != "" {
			entryType = s
		}
	}
	schema, ok := EntryType(entryType)
	if !ok {
		entryType = "misc"
		schema, _ = EntryType(entryType)
	}

	if _, err := fmt.Fprintf(w.w, "@%s{%s,\n", strings.ToUpper(entryType), w.Key(rec)); err != nil {
		return err
	}

	// The entry type and the citation key live in the header; re-emitting
	// them as field lines would duplicate them on reparse.
	done := map[string]bool{"content_type": true, "key": true}

	for _, field := range schema.Required {
		name, found := resolveField(rec, field)
		if !found {
			w.sink().Report(gobib.Issue{
				Path:    "/" + field,
				Code:    gobib.CodeMissingRequired,
				Message: i18n.T(gobib.CodeMissingRequired, nil),
				Params:  map[string]any{"field": field},
			})
			continue
		}
		if err := w.writeField(rec, field, name, done); err != nil {
			return err
		}
	}
	for _, field := range schema.Optional {
		name, found := resolveField(rec, field)
		if !found {
			continue
		}
		if err := w.writeField(rec, field, name, done); err != nil {
			return err
		}
	}

	// Alias sweep: canonical names missed above whose data sits under an
	// alias. First present alias wins.
	for _, ent := range fieldAliases {
		if done[ent.canonical] {
			continue
		}
		for _, alias := range ent.aliases {
			if done[alias] {
				break
			}
			if rec.Has(alias) {
				if err := w.writeField(rec, ent.canonical, alias, done); err != nil {
					return err
				}
				break
			}
		}
	}

	for _, name := range rec.Fields() {
		if done[name] {
			continue
		}
		if err := w.writeField(rec, name, name, done); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w.w, "}\n\n")
	return err
}

// writeField emits one "  field = {value}," line, reading the value from
// name and labeling it field. Both names are marked done so the final
// record-order pass does not re-emit aliased data.
func (w *Writer) writeField(rec gobib.Fielder, field, name string, done map[string]bool) error {
	v, _ := rec.Lookup(name)
	done[field] = true
	done[name] = true
	_, err := fmt.Fprintf(w.w, "  %s = {%v},\n", field, v)
	return err
}

// resolveField locates the record field holding data for a canonical name:
// the name itself when present, otherwise the first present alias.
func resolveField(rec gobib.Fielder, field string) (string, bool) {
	if rec.Has(field) {
		return field, true
	}
	for _, alias := range Aliases(field) {
		if rec.Has(alias) {
			return alias, true
		}
	}
	return "", false
}

// Key derives a citation key: first author's surname, the other authors'
// initials, the publication year, and the publication code when one is
// known. Records without authors fall back to their explicit key field.
func (w *Writer) Key(rec gobib.Fielder) string {
	name, found := resolveField(rec, "author")
	if found {
		if authors, ok := fieldValue(rec, name).(gobib.AuthorList); ok && len(authors) > 0 {
			var key strings.Builder
			key.WriteString(authors[0].Name())
			for _, a := range authors[1:] {
				key.WriteString(a.Initial())
			}
			if yn, ok := resolveField(rec, "year"); ok {
				fmt.Fprintf(&key, "%v", fieldValue(rec, yn))
			}
			if rec.Has("publication_code") {
				fmt.Fprintf(&key, "%v", fieldValue(rec, "publication_code"))
			}
			return key.String()
		}
	}
	if rec.Has("key") {
		return fmt.Sprintf("%v", fieldValue(rec, "key"))
	}
	return ""
}

func fieldValue(rec gobib.Fielder, name string) any {
	v, _ := rec.Lookup(name)
	return v
}
