package gobib

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/reoring/gobib/i18n"
)

// CoerceFunc converts a raw input value into the field's typed value. A
// returned error maps to an invalid_type diagnostic.
type CoerceFunc func(v any) (any, error)

// ValidateFunc checks a coerced value. The returned value replaces the input
// (validators may normalize, e.g. canonicalizing month names); a returned
// error maps to a failed_validator diagnostic.
type ValidateFunc func(v any) (any, error)

// ExtendFunc resolves field names absent from the specification table. It
// returns the fallback specification and true when the name is acceptable as
// an open-extension field.
type ExtendFunc func(name string) (FieldSpec, bool)

// FieldSpec is the declarative rule set governing one field's accepted
// values. Specs are immutable once registered with a Schema.
type FieldSpec struct {
	Doc      string
	Coerce   CoerceFunc
	Min      *int // Lower bound on integer values.
	Max      *int // Upper bound on integer values.
	Validate ValidateFunc
	Allowed  []any // Membership set checked after validation.
}

// Schema is an ordered field-name -> FieldSpec table with an optional
// open-extension rule for names outside the table.
type Schema struct {
	names  []string
	specs  map[string]FieldSpec
	extend ExtendFunc
}

// SchemaBuilder assembles a Schema. Field registration order is the schema
// order observed by iteration and by writers.
type SchemaBuilder struct {
	s Schema
}

// NewSchema creates an empty schema builder.
func NewSchema() *SchemaBuilder {
	return &SchemaBuilder{s: Schema{specs: map[string]FieldSpec{}}}
}

// Field registers a field specification. Registering the same name twice
// replaces the spec but keeps the original position.
func (b *SchemaBuilder) Field(name string, spec FieldSpec) *SchemaBuilder {
	if _, ok := b.s.specs[name]; !ok {
		b.s.names = append(b.s.names, name)
	}
	b.s.specs[name] = spec
	return b
}

// Extend installs the open-extension rule.
func (b *SchemaBuilder) Extend(fn ExtendFunc) *SchemaBuilder {
	b.s.extend = fn
	return b
}

// Build finalizes the schema. The builder must not be reused afterwards.
func (b *SchemaBuilder) Build() *Schema {
	s := b.s
	return &s
}

// Fields returns the registered field names in schema order.
func (s *Schema) Fields() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Spec resolves the specification for name, consulting the open-extension
// rule when the table has no entry.
func (s *Schema) Spec(name string) (FieldSpec, bool) {
	if sp, ok := s.specs[name]; ok {
		return sp, true
	}
	if s.extend != nil {
		return s.extend(name)
	}
	return FieldSpec{}, false
}

// Validate applies the full pipeline for one field: lookup, coercion, bounds,
// validator, allowed set. On success the final typed value is returned; on
// failure the error is an Issues value carrying exactly one diagnostic and
// the field must not be stored.
func (s *Schema) Validate(name string, raw any) (any, error) {
	spec, ok := s.Spec(name)
	if !ok {
		return nil, Issues{{Path: "/" + name, Code: CodeUnknownField, Message: i18n.T(CodeUnknownField, map[string]string{"field": name})}}
	}

	v := raw
	if spec.Coerce != nil {
		cv, err := spec.Coerce(raw)
		if err != nil {
			return nil, Issues{{Path: "/" + name, Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Cause: err, Params: map[string]any{"got": raw}}}
		}
		v = cv
	}

	if iv, isInt := v.(int); isInt {
		if spec.Min != nil && iv < *spec.Min {
			return nil, Issues{{Path: "/" + name, Code: CodeTooSmall, Message: i18n.T(CodeTooSmall, nil), Params: map[string]any{"min": *spec.Min, "got": iv}}}
		}
		if spec.Max != nil && iv > *spec.Max {
			return nil, Issues{{Path: "/" + name, Code: CodeTooBig, Message: i18n.T(CodeTooBig, nil), Params: map[string]any{"max": *spec.Max, "got": iv}}}
		}
	}

	if spec.Validate != nil {
		nv, err := runValidator(spec.Validate, v)
		if err != nil {
			return nil, Issues{{Path: "/" + name, Code: CodeFailedValidator, Message: i18n.T(CodeFailedValidator, nil), Cause: err, Params: map[string]any{"got": v}}}
		}
		v = nv
	}

	if len(spec.Allowed) > 0 && !member(spec.Allowed, v) {
		return nil, Issues{{Path: "/" + name, Code: CodeInvalidEnum, Message: i18n.T(CodeInvalidEnum, nil), Params: map[string]any{"got": v}}}
	}

	return v, nil
}

// runValidator shields the pipeline from panicking validators; a panic is the
// same soft failure as a returned error.
func runValidator(fn ValidateFunc, v any) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("validator panic: %v", r)
		}
	}()
	return fn(v)
}

func member(set []any, v any) bool {
	for _, a := range set {
		if a == v {
			return true
		}
	}
	return false
}

// Min is a convenience for FieldSpec bounds literals.
func Min(n int) *int { return &n }

// Max is a convenience for FieldSpec bounds literals.
func Max(n int) *int { return &n }

// ---- coercions ----

// CoerceString renders any raw value as a string. It never fails: typed
// values keep their canonical text form through fmt.
func CoerceString(v any) (any, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case fmt.Stringer:
		return t.String(), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

// CoerceInt converts numeric and numeric-text raw values to int. JSON decoders
// hand over float64 or json.Number; BibTeX hands over digit strings.
func CoerceInt(v any) (any, error) {
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case float64:
		if math.Trunc(t) != t {
			return nil, fmt.Errorf("fractional value %v", t)
		}
		return int(t), nil
	case json.Number:
		i64, err := t.Int64()
		if err != nil {
			return nil, err
		}
		return int(i64), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return nil, err
		}
		return i, nil
	default:
		return nil, fmt.Errorf("cannot convert %T to int", v)
	}
}
