package gobib

import (
	"sort"

	"github.com/reoring/gobib/i18n"
)

// Fielder is the read surface shared by every record shape in the module.
// The BibTeX writer and the citation-key generator operate on Fielder so
// records from other sources (search results, YAML imports) serialize the
// same way, including fields they derive on lookup.
type Fielder interface {
	// Has reports whether a value can be resolved for name.
	Has(name string) bool
	// Lookup resolves the typed value for name.
	Lookup(name string) (any, bool)
	// Fields returns the stored field names in record order.
	Fields() []string
}

// Record is an ordered, schema-validated field-name -> typed-value mapping.
// Every stored value has passed its FieldSpec's full pipeline; callers mutate
// a Record only through Set. Once construction is finished a Record is a
// read-only value safe to share across goroutines.
type Record struct {
	schema *Schema
	names  []string
	values map[string]any
	opt    RecordOpt
}

// NewRecord creates an empty Record bound to schema.
func NewRecord(schema *Schema, opt RecordOpt) *Record {
	return &Record{schema: schema, values: map[string]any{}, opt: opt}
}

// RecordFrom builds a Record from a flat key-value map. Keys are inserted in
// sorted order so construction is deterministic; each insertion runs the full
// validation pipeline and rejected fields are reported to the sink and
// omitted.
func RecordFrom(schema *Schema, data map[string]any, opt RecordOpt) *Record {
	r := NewRecord(schema, opt)
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		r.Set(k, data[k])
	}
	return r
}

// Copy returns a snapshot of r: the validated mapping is duplicated, not
// shared, so later Set calls on either record leave the other untouched.
func (r *Record) Copy() *Record {
	c := &Record{
		schema: r.schema,
		names:  make([]string, len(r.names)),
		values: make(map[string]any, len(r.values)),
		opt:    r.opt,
	}
	copy(c.names, r.names)
	for k, v := range r.values {
		c.values[k] = v
	}
	return c
}

// Set validates raw through the schema pipeline and stores the typed result.
// Any pipeline diagnostic is reported to the sink and the field is left
// untouched. Setting a field twice reports duplicate_field and the
// DuplicatePolicy decides which value survives.
func (r *Record) Set(name string, raw any) {
	v, err := r.schema.Validate(name, raw)
	if err != nil {
		r.report(err)
		return
	}
	if _, dup := r.values[name]; dup {
		r.opt.sink().Report(Issue{
			Path:    "/" + name,
			Code:    CodeDuplicateField,
			Message: i18n.T(CodeDuplicateField, map[string]string{"field": name}),
		})
		if r.opt.OnDuplicate == DuplicateKeep {
			return
		}
		r.values[name] = v
		return
	}
	r.names = append(r.names, name)
	r.values[name] = v
}

// Lookup resolves the typed value stored for name.
func (r *Record) Lookup(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Get returns the stored value or nil.
func (r *Record) Get(name string) any { return r.values[name] }

// Has reports whether name is stored.
func (r *Record) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// Fields returns the stored field names in insertion order.
func (r *Record) Fields() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of stored fields.
func (r *Record) Len() int { return len(r.names) }

// Schema returns the schema the record validates against.
func (r *Record) Schema() *Schema { return r.schema }

func (r *Record) report(err error) {
	if iss, ok := AsIssues(err); ok {
		for _, it := range iss {
			r.opt.sink().Report(it)
		}
	}
}
