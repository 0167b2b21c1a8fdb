package scan

import (
	"io"
	"strings"
	"testing"
)

// oneByteReader hands out a single byte per Read call to exercise the refill
// loop.
type oneByteReader struct {
	s string
	i int
}

func (r *oneByteReader) Read(p []byte) (int, error) {
	if r.i >= len(r.s) {
		return 0, io.EOF
	}
	p[0] = r.s[r.i]
	r.i++
	return 1, nil
}

func TestCursor_ReadsAllBytesInOrder(t *testing.T) {
	in := strings.Repeat("abcdefgh", 200) // spans several refills
	c := New(strings.NewReader(in))
	for i := 0; i < len(in); i++ {
		b, err := c.Next()
		if err != nil {
			t.Fatalf("byte %d: %v", i, err)
		}
		if b != in[i] {
			t.Fatalf("byte %d: got %q, want %q", i, b, in[i])
		}
	}
	if _, err := c.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF at end, got %v", err)
	}
}

func TestCursor_TracksOffset(t *testing.T) {
	c := New(strings.NewReader("xyz"))
	if c.Offset() != 0 {
		t.Fatalf("expected offset 0 before reading, got %d", c.Offset())
	}
	if _, err := c.Next(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Offset() != 1 {
		t.Fatalf("expected offset 1, got %d", c.Offset())
	}
	_, _ = c.Next()
	_, _ = c.Next()
	if c.Offset() != 3 {
		t.Fatalf("expected offset 3, got %d", c.Offset())
	}
}

func TestCursor_ShortReads(t *testing.T) {
	c := New(&oneByteReader{s: "bib"})
	var out []byte
	for {
		b, err := c.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out = append(out, b)
	}
	if string(out) != "bib" {
		t.Fatalf("got %q", out)
	}
}
