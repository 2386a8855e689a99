package csvio

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, input string, enc Encoding) [][]string {
	t.Helper()
	var rows [][]string
	err := ForEach(NewReader(strings.NewReader(input), enc), func(_ int, row []string) error {
		rows = append(rows, row)
		return nil
	})
	require.NoError(t, err)
	return rows
}

func TestParseEncoding(t *testing.T) {
	tests := []struct {
		name string
		want Encoding
	}{
		{"", UTF8},
		{"UTF-8", UTF8},
		{"utf8", UTF8},
		{"latin1", Latin1},
		{"ISO-8859-1", Latin1},
		{"cp1252", Windows1252},
		{" windows-1252 ", Windows1252},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEncoding(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEncoding_Unknown(t *testing.T) {
	_, err := ParseEncoding("ebcdic")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownEncoding))
}

func TestNewReader_StripsUTF8BOM(t *testing.T) {
	rows := readAll(t, "\ufeffchannel,value\n1,2\n", UTF8)
	require.Len(t, rows, 2)
	assert.Equal(t, "channel", rows[0][0])
}

func TestNewReader_Latin1(t *testing.T) {
	// "Größe" in ISO-8859-1
	input := string([]byte{'G', 'r', 0xf6, 0xdf, 'e', ',', '1', '\n'})
	rows := readAll(t, input, Latin1)
	require.Len(t, rows, 1)
	assert.Equal(t, "Größe", rows[0][0])
}

func TestNewReader_VariableFieldCounts(t *testing.T) {
	rows := readAll(t, "a,b,c\n1\n2,3\n", UTF8)
	require.Len(t, rows, 3)
	assert.Len(t, rows[1], 1)
	assert.Len(t, rows[2], 2)
}

func TestNewReader_QuotedFields(t *testing.T) {
	rows := readAll(t, "\"a,b\",\"say \"\"hi\"\"\"\n", UTF8)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"a,b", `say "hi"`}, rows[0])
}

func TestForEach_Indices(t *testing.T) {
	var indices []int
	err := ForEach(NewReader(strings.NewReader("h\n1\n2\n"), UTF8), func(i int, _ []string) error {
		indices = append(indices, i)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, indices)
}

func TestForEach_BlankLinesAsEmptyRows(t *testing.T) {
	var indices []int
	var rows [][]string
	input := "\nh\n\n\r\n1,\"multi\nline\"\n\n2\n\n"
	err := ForEach(NewReader(strings.NewReader(input), UTF8), func(i int, row []string) error {
		indices = append(indices, i)
		rows = append(rows, row)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, indices)
	assert.Equal(t, [][]string{
		{}, {"h"}, {}, {}, {"1", "multi\nline"}, {}, {"2"},
	}, rows)
}

func TestNewReader_InvalidUTF8PassesThrough(t *testing.T) {
	rows := readAll(t, "a\xffb,ok\n", UTF8)
	require.Len(t, rows, 1)
	assert.Equal(t, "a\xffb", rows[0][0])
}

func TestForEach_StopsOnCallbackError(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	err := ForEach(NewReader(strings.NewReader("1\n2\n3\n"), UTF8), func(int, []string) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.csv"), UTF8)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "opening input")
}

func TestOpen_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n"), 0o644))

	f, err := Open(path, UTF8)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, path, f.Name())
	row, err := f.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, row)
}
