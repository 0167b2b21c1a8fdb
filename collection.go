package gobib

// Factory builds one Record from raw element data. Returning an error marks
// the element structurally invalid; see CollectionOf.
type Factory func(map[string]any) (*Record, error)

// Collection is an ordered sequence of Records validated against the same
// nominal schema. Like Record it is a read-only value once construction is
// finished.
type Collection struct {
	schema *Schema
	recs   []*Record
}

// NewCollection creates an empty collection for schema.
func NewCollection(schema *Schema) *Collection {
	return &Collection{schema: schema}
}

// CollectionFrom builds a collection from raw heterogeneous elements. Each
// element is coerced independently: an element that is not a field map is
// dropped, and within a valid element rejected fields are diagnosed by the
// record's sink as usual. One bad element never aborts the construction.
func CollectionFrom(schema *Schema, elems []any, opt RecordOpt) *Collection {
	return CollectionOf(schema, elems, func(m map[string]any) (*Record, error) {
		return RecordFrom(schema, m, opt), nil
	})
}

// CollectionOf is CollectionFrom with a custom element factory. Elements the
// factory rejects (structurally invalid, as opposed to merely failing field
// validation) are dropped from the collection.
func CollectionOf(schema *Schema, elems []any, f Factory) *Collection {
	c := NewCollection(schema)
	for _, e := range elems {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		r, err := f(m)
		if err != nil || r == nil {
			continue
		}
		c.recs = append(c.recs, r)
	}
	return c
}

// Append adds a single record, preserving arrival order.
func (c *Collection) Append(r *Record) {
	if r == nil {
		return
	}
	c.recs = append(c.recs, r)
}

// Merge appends every record of other, element-wise, preserving order.
func (c *Collection) Merge(other *Collection) {
	if other == nil {
		return
	}
	c.recs = append(c.recs, other.recs...)
}

// Records returns the records in arrival order. The slice is a copy; the
// records themselves are shared.
func (c *Collection) Records() []*Record {
	out := make([]*Record, len(c.recs))
	copy(out, c.recs)
	return out
}

// At returns the i-th record.
func (c *Collection) At(i int) *Record { return c.recs[i] }

// Len returns the number of records.
func (c *Collection) Len() int { return len(c.recs) }

// Schema returns the nominal element schema.
func (c *Collection) Schema() *Schema { return c.schema }
