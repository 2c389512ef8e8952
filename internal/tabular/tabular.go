// Package tabular reads and writes the flat CSV tables the pipeline consumes
// and produces.
package tabular

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Frame is a header plus string rows, column-aligned.
type Frame struct {
	Columns []string
	Rows    [][]string
}

// Index returns the position of column name, or -1.
func (f *Frame) Index(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Read loads a CSV file with a header row. Every column is read as text;
// interpretation is left to the caller.
func Read(path string) (*Frame, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Decode(fh)
}

// utf8BOM prefixes files exported by some spreadsheet tools.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode is Read over an arbitrary reader. A leading UTF-8 byte order mark
// is dropped and no cell text is treated as missing, so cells come back
// exactly as written.
func Decode(r io.Reader) (*Frame, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	df := dataframe.ReadCSV(br,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("decode csv: %w", df.Err)
	}

	names := df.Names()
	cols := make([][]string, len(names))
	for i, name := range names {
		cols[i] = df.Col(name).Records()
	}

	frame := &Frame{Columns: names, Rows: make([][]string, df.Nrow())}
	for r := range frame.Rows {
		row := make([]string, len(names))
		for c := range names {
			row[c] = cols[c][r]
		}
		frame.Rows[r] = row
	}
	return frame, nil
}

// Write writes header and records to w.
func Write(w io.Writer, header []string, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, rec := range records {
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Staged is a CSV file written to a temporary sibling of its final path.
// Nothing appears at the final path until Commit.
type Staged struct {
	Path string
	tmp  string
}

// Stage writes header and records next to path without touching path itself.
func Stage(path string, header []string, records [][]string) (*Staged, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create dir %s: %w", dir, err)
	}
	fh, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return nil, fmt.Errorf("create temp for %s: %w", path, err)
	}
	s := &Staged{Path: path, tmp: fh.Name()}
	if err := Write(fh, header, records); err != nil {
		fh.Close()
		s.Discard()
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	if err := fh.Close(); err != nil {
		s.Discard()
		return nil, fmt.Errorf("close %s: %w", path, err)
	}
	return s, nil
}

// Commit moves the staged file into place.
func (s *Staged) Commit() error {
	if err := os.Rename(s.tmp, s.Path); err != nil {
		return fmt.Errorf("rename %s: %w", s.Path, err)
	}
	return nil
}

// Discard removes the staged file. Safe to call after Commit.
func (s *Staged) Discard() {
	_ = os.Remove(s.tmp)
}
