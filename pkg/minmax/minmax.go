// Package minmax finds the smallest and largest numeric cell in a CSV export.
package minmax

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/usestring/emgcsv/pkg/csvio"
)

// ParseResult is the outcome of parsing a single cell.
type ParseResult struct {
	Value float64
	Valid bool
}

// ParseCell parses the trimmed cell text as a decimal float64. Empty and
// non-numeric cells yield an invalid result. Hexadecimal notation is
// rejected; single underscores between digits are allowed. Magnitudes too
// large for a float64 parse as ±Inf.
func ParseCell(s string) ParseResult {
	text, ok := normalizeNumeral(strings.TrimSpace(s))
	if !ok {
		return ParseResult{}
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return ParseResult{}
	}
	return ParseResult{Value: v, Valid: true}
}

// normalizeNumeral strips digit-separating underscores and reports false for
// text ParseFloat would accept but which is not a decimal numeral.
func normalizeNumeral(s string) (string, bool) {
	unsigned := strings.TrimLeft(s, "+-")
	if strings.HasPrefix(unsigned, "0x") || strings.HasPrefix(unsigned, "0X") {
		return "", false
	}
	if !strings.Contains(s, "_") {
		return s, true
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return "", false
		}
	}
	return strings.ReplaceAll(s, "_", ""), true
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// Bounds is a running minimum and maximum.
type Bounds struct {
	Min      float64
	Max      float64
	Observed int
}

// NewBounds returns bounds with Min at +Inf and Max at -Inf.
func NewBounds() Bounds {
	return Bounds{Min: math.Inf(1), Max: math.Inf(-1)}
}

// Observe tightens the bounds with v. Both bounds are checked so that the
// first value sets each of them. NaN is ignored and not counted.
func (b *Bounds) Observe(v float64) {
	if math.IsNaN(v) {
		return
	}
	b.Observed++
	if v > b.Max {
		b.Max = v
	}
	if v < b.Min {
		b.Min = v
	}
}

// Empty reports whether no value has been observed.
func (b Bounds) Empty() bool {
	return b.Observed == 0
}

// Scan discards the first row of r and observes every parsable cell of the
// remaining rows.
func Scan(r *csv.Reader) (Bounds, error) {
	b := NewBounds()
	err := csvio.ForEach(r, func(i int, row []string) error {
		if i == 0 {
			return nil // header
		}
		for _, cell := range row {
			if res := ParseCell(cell); res.Valid {
				b.Observe(res.Value)
			}
		}
		return nil
	})
	if err != nil {
		return NewBounds(), err
	}
	return b, nil
}

// Run opens path and scans it.
func Run(path string, enc csvio.Encoding) (Bounds, error) {
	in, err := csvio.Open(path, enc)
	if err != nil {
		return NewBounds(), err
	}
	defer in.Close()

	b, err := Scan(in.Reader)
	if err != nil {
		return b, err
	}
	slog.Debug("input scanned", "path", path, "values", b.Observed)
	return b, nil
}

// Report writes the minimum and maximum, one per line.
func Report(w io.Writer, b Bounds) error {
	_, err := fmt.Fprintf(w, "min = %s\nmax = %s\n", FormatValue(b.Min), FormatValue(b.Max))
	return err
}

// FormatValue renders v as a plain decimal, or +Inf / -Inf.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
