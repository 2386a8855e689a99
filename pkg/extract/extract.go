// Package extract flattens the tail of a CSV export into a one-value-per-line
// text file.
package extract

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/usestring/emgcsv/pkg/csvio"
)

// DefaultThreshold is the last row index that is discarded. Rows after it
// are kept.
const DefaultThreshold = 2112

// Options configures Run.
type Options struct {
	InputPath  string
	OutputPath string
	Threshold  int
	Encoding   csvio.Encoding
}

// Result summarizes a completed extraction.
type Result struct {
	OutputPath string
	Rows       int // rows kept
	Values     int // lines written
}

// Flatten reads every row of r and returns the cells of rows whose
// zero-based index is greater than threshold, in row then cell order,
// together with the number of rows kept.
func Flatten(r *csv.Reader, threshold int) ([]string, int, error) {
	values := []string{}
	kept := 0
	err := csvio.ForEach(r, func(i int, row []string) error {
		if i <= threshold {
			return nil
		}
		kept++
		values = append(values, row...)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return values, kept, nil
}

// WriteLines writes each value followed by a newline. Values are written
// verbatim.
func WriteLines(w io.Writer, values []string) error {
	bw := bufio.NewWriter(w)
	for _, v := range values {
		if _, err := bw.WriteString(v); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Run reads opts.InputPath in full, then creates (or truncates)
// opts.OutputPath and writes the flattened values to it.
func Run(opts Options) (*Result, error) {
	in, err := csvio.Open(opts.InputPath, opts.Encoding)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	values, kept, err := Flatten(in.Reader, opts.Threshold)
	if err != nil {
		return nil, err
	}
	slog.Debug("input read", "path", opts.InputPath, "rows_kept", kept, "values", len(values))

	if err := writeFile(opts.OutputPath, values); err != nil {
		return nil, err
	}

	return &Result{
		OutputPath: opts.OutputPath,
		Rows:       kept,
		Values:     len(values),
	}, nil
}

func writeFile(path string, values []string) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output: %w", cerr)
		}
	}()

	if err := WriteLines(out, values); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// CompletionMessage is the line printed after a successful Run.
func CompletionMessage(threshold int, outputPath string) string {
	return fmt.Sprintf("Rows after index %d have been formatted and written to %s.", threshold, outputPath)
}
