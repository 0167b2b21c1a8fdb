package gobib

// DuplicatePolicy controls what happens when a field is inserted into a
// Record that already holds a value for it. Either way a duplicate_field
// diagnostic is reported; the policy only decides which value survives.
type DuplicatePolicy int

const (
	DuplicateOverwrite DuplicatePolicy = iota // Replace the stored value (default).
	DuplicateKeep                             // Keep the original value.
)

// RecordOpt bundles Record construction options.
type RecordOpt struct {
	Sink        Sink            // Destination for soft diagnostics; nil means Discard().
	OnDuplicate DuplicatePolicy // Duplicate-field policy; default DuplicateOverwrite.
}

func (o RecordOpt) sink() Sink {
	if o.Sink == nil {
		return Discard()
	}
	return o.Sink
}
