// Package bibyaml loads bibliography records from YAML. Each YAML document
// is one record, or a list of records when the document root is a
// sequence, so a whole bibliography fits in a single multi-document file.
package bibyaml

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	gobib "github.com/reoring/gobib"
	"github.com/reoring/gobib/bibtex"
)

// Opt bundles loading options.
type Opt struct {
	// Record configures the constructed records.
	Record gobib.RecordOpt
	// Schema overrides the field schema; nil means the BibTeX field table.
	Schema *gobib.Schema
}

func (o Opt) schema() *gobib.Schema {
	if o.Schema != nil {
		return o.Schema
	}
	return bibtex.Fields()
}

// Load decodes every YAML document in data into one collection.
func Load(data []byte, opt Opt) (*gobib.Collection, error) {
	return Read(bytes.NewReader(data), opt)
}

// Read decodes every YAML document from r into one collection. Field-level
// problems go to opt.Record.Sink; only malformed YAML is an error.
func Read(r io.Reader, opt Opt) (*gobib.Collection, error) {
	col := gobib.NewCollection(opt.schema())
	dec := yaml.NewDecoder(r)
	for {
		var node any
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return col, gobib.Issues{{Path: "/", Code: gobib.CodeParseError, Message: err.Error(), Cause: err}}
		}
		switch t := node.(type) {
		case []any:
			for _, e := range t {
				if m := yamlAnyToStringMap(e); m != nil {
					col.Append(gobib.RecordFrom(opt.schema(), m, opt.Record))
				}
			}
		default:
			if m := yamlAnyToStringMap(node); m != nil {
				col.Append(gobib.RecordFrom(opt.schema(), m, opt.Record))
			}
		}
	}
	return col, nil
}

// Write serializes every record of the collection as one YAML document per
// record, fields in record order.
func Write(w io.Writer, col *gobib.Collection) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	for _, rec := range col.Records() {
		doc := yaml.Node{Kind: yaml.MappingNode}
		for _, name := range rec.Fields() {
			var key, val yaml.Node
			key.SetString(name)
			if err := val.Encode(yamlValue(rec.Get(name))); err != nil {
				return err
			}
			doc.Content = append(doc.Content, &key, &val)
		}
		if err := enc.Encode(&doc); err != nil {
			return err
		}
	}
	return nil
}

// yamlValue renders engine value types back to YAML-friendly shapes.
func yamlValue(v any) any {
	switch t := v.(type) {
	case gobib.AuthorList:
		out := make([]string, len(t))
		for i, a := range t {
			out[i] = a.String()
		}
		return out
	case interface{ String() string }:
		return t.String()
	default:
		return v
	}
}

// yamlAnyToStringMap converts YAML-decoded values (which may contain
// map[any]any) into map[string]any recursively. Non-map roots return nil.
func yamlAnyToStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = yamlNormalizeValue(vv)
		}
		return out
	default:
		return nil
	}
}

func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return yamlAnyToStringMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlNormalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}
