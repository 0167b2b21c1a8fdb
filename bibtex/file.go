package bibtex

import (
	"context"
	"os"
	"strings"

	gobib "github.com/reoring/gobib"
)

// FileOpt bundles options for a File.
type FileOpt struct {
	Parse ParseOpt
	Write WriteOpt
}

// File couples a Collection with a path on disk. The path gains a ".bib"
// suffix when it does not already carry one.
type File struct {
	path string
	col  *gobib.Collection
	opt  FileOpt
}

// NewFile creates a File for path with an empty collection.
func NewFile(path string, opt FileOpt) *File {
	if !strings.HasSuffix(path, ".bib") {
		path += ".bib"
	}
	return &File{path: path, col: gobib.NewCollection(Fields()), opt: opt}
}

// Path returns the file path, suffix included.
func (f *File) Path() string { return f.path }

// Collection returns the records held in memory.
func (f *File) Collection() *gobib.Collection { return f.col }

// Add appends a record to the in-memory collection.
func (f *File) Add(rec *gobib.Record) { f.col.Append(rec) }

// Read parses the file on disk and merges its entries into the in-memory
// collection.
func (f *File) Read(ctx context.Context) error {
	fp, err := os.Open(f.path)
	if err != nil {
		return err
	}
	defer fp.Close()

	col, err := NewParser(f.opt.Parse).Parse(ctx, fp)
	if err != nil {
		return err
	}
	f.col.Merge(col)
	return nil
}

// Write replaces the file on disk with the in-memory collection.
func (f *File) Write() error {
	fp, err := os.Create(f.path)
	if err != nil {
		return err
	}
	defer fp.Close()

	if err := NewWriter(fp, f.opt.Write).Write(f.col); err != nil {
		return err
	}
	return fp.Sync()
}

// Append serializes the in-memory collection onto the end of the file on
// disk, creating it when absent.
func (f *File) Append() error {
	fp, err := os.OpenFile(f.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer fp.Close()

	if err := NewWriter(fp, f.opt.Write).Write(f.col); err != nil {
		return err
	}
	return fp.Sync()
}
