// Package scan provides the byte cursor shared by the BibTeX parser and its
// group sub-parser. The cursor is the single mutable scan state of a parse
// call: nested parsers read from the same cursor instead of re-buffering, so
// escape and comment state stay unambiguous across recursion boundaries.
package scan

import "io"

// Cursor reads one byte at a time from an io.Reader through a small refill
// buffer and tracks the absolute offset for diagnostics. Not safe for
// concurrent use; each parse call owns exactly one Cursor.
type Cursor struct {
	r   io.Reader
	buf []byte
	pos int
	off int64
}

// New wraps r in a Cursor.
func New(r io.Reader) *Cursor {
	return &Cursor{r: r}
}

// Next returns the next byte. At end of input it returns io.EOF; any other
// error is a transport failure.
func (c *Cursor) Next() (byte, error) {
	if c.pos >= len(c.buf) {
		if err := c.refill(); err != nil {
			return 0, err
		}
	}
	b := c.buf[c.pos]
	c.pos++
	c.off++
	return b, nil
}

// refill reads up to 512 bytes from the underlying reader and resets the read
// position.
func (c *Cursor) refill() error {
	if cap(c.buf) == 0 {
		c.buf = make([]byte, 0, 512)
	}
	for {
		n, err := c.r.Read(c.buf[:cap(c.buf)])
		c.buf = c.buf[:n]
		c.pos = 0
		if n > 0 {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Offset returns the absolute offset of the next byte to be read.
func (c *Cursor) Offset() int64 { return c.off }
