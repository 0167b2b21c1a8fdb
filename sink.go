package gobib

import (
	"fmt"
	"io"
)

// Sink receives soft diagnostics. Implementations must not retain the Issue's
// Params map beyond the call if they mutate it.
//
// A Sink replaces the process-wide "warnings disabled" toggle of older
// bibliography tools: callers inject the sink they want at construction time,
// which also makes diagnostic output deterministic in tests.
type Sink interface {
	Report(Issue)
}

// Discard returns a Sink that drops every diagnostic.
func Discard() Sink { return nopSink{} }

type nopSink struct{}

func (nopSink) Report(Issue) {}

// Collect accumulates every reported diagnostic. The zero value is ready to
// use. Not safe for concurrent use.
type Collect struct {
	Issues Issues
}

func (c *Collect) Report(it Issue) { c.Issues = AppendIssues(c.Issues, it) }

// Reset clears the collected diagnostics.
func (c *Collect) Reset() { c.Issues = nil }

// WriteTo returns a Sink that prints one line per diagnostic to w, in the
// "WARNING: <code> at <path>: <message>" form the CLI uses.
func WriteTo(w io.Writer) Sink { return writerSink{w: w} }

type writerSink struct{ w io.Writer }

func (s writerSink) Report(it Issue) {
	fmt.Fprintf(s.w, "WARNING: %s at %s: %s\n", it.Code, it.Path, it.Message)
}
