// Package csvio opens CSV exports for row-by-row reading.
//
// Readers are lenient: quotes may appear inside unquoted fields and rows may
// carry different field counts. A leading byte-order mark is stripped, and
// single-byte encodings are decoded to UTF-8 before parsing.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding names an input text encoding.
type Encoding string

const (
	UTF8        Encoding = "utf-8"
	Latin1      Encoding = "latin1"
	Windows1252 Encoding = "windows-1252"
)

// ErrUnknownEncoding is returned for encoding names ParseEncoding does not know.
var ErrUnknownEncoding = errors.New("unknown encoding")

// ParseEncoding normalizes an encoding name. An empty name means UTF-8.
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return UTF8, nil
	case "latin1", "latin-1", "iso-8859-1":
		return Latin1, nil
	case "windows-1252", "cp1252":
		return Windows1252, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
}

// decoder returns the transform to UTF-8. UTF-8 input passes through
// untouched, so invalid bytes reach the caller as they are in the file.
func (e Encoding) decoder() transform.Transformer {
	switch e {
	case Latin1:
		return charmap.ISO8859_1.NewDecoder()
	case Windows1252:
		return charmap.Windows1252.NewDecoder()
	default:
		return transform.Nop
	}
}

// NewReader wraps r in a decoding CSV reader.
func NewReader(r io.Reader, enc Encoding) *csv.Reader {
	// BOMOverride switches to UTF-16 when a UTF-16 mark is present and drops a
	// UTF-8 mark, falling back to the configured decoder otherwise.
	t := unicode.BOMOverride(enc.decoder())

	reader := csv.NewReader(transform.NewReader(r, t))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // Allow variable field counts
	return reader
}

// File is a CSV reader bound to an open file.
type File struct {
	*csv.Reader
	f *os.File
}

// Open opens path for CSV reading. The caller must Close the returned File.
func Open(path string, enc Encoding) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	return &File{Reader: NewReader(f, enc), f: f}, nil
}

// Name returns the path the file was opened with.
func (f *File) Name() string {
	return f.f.Name()
}

// Close releases the underlying file.
func (f *File) Close() error {
	return f.f.Close()
}

// ForEach calls fn for every row in r with its zero-based row index.
// Blank lines, which csv.Reader skips, are passed to fn as empty rows and
// take an index like any other row. Blank lines after the last record are
// not reported.
// Iteration stops at the first error from the reader or from fn.
func ForEach(r *csv.Reader, fn func(index int, row []string) error) error {
	next := 1 // first line not yet accounted for
	for i := 0; ; i++ {
		row, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading row %d: %w", i, err)
		}

		start, _ := r.FieldPos(0)
		for ; next < start; next++ {
			if err := fn(i, []string{}); err != nil {
				return err
			}
			i++
		}

		if err := fn(i, row); err != nil {
			return err
		}

		// A quoted last field may span lines.
		last := len(row) - 1
		end, _ := r.FieldPos(last)
		next = end + strings.Count(row[last], "\n") + 1
	}
}
