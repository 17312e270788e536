package dsv

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRow(t *testing.T) {
	tests := []struct {
		name  string
		input string
		delim rune
		want  [][]string
	}{
		{
			name:  "empty document",
			input: "",
			delim: ',',
			want:  nil,
		},
		{
			name:  "single empty line",
			input: "\n",
			delim: ',',
			want:  [][]string{{""}},
		},
		{
			name:  "two rows",
			input: "A,B,C\nD,E,F",
			delim: ',',
			want:  [][]string{{"A", "B", "C"}, {"D", "E", "F"}},
		},
		{
			name:  "trailing newline does not add a row",
			input: "ab,cd,ef\n12,34,56\n",
			delim: ',',
			want:  [][]string{{"ab", "cd", "ef"}, {"12", "34", "56"}},
		},
		{
			name:  "quoted delimiter",
			input: `"a,b","b,c"`,
			delim: ',',
			want:  [][]string{{"a,b", "b,c"}},
		},
		{
			name:  "escaped quotes",
			input: `"Jason said ""Hello"""`,
			delim: ',',
			want:  [][]string{{`Jason said "Hello"`}},
		},
		{
			name:  "quoted newlines across rows",
			input: "\"line1\nline2\"\n\"line3\nline4\"\n\"line5\nline6\"",
			delim: ',',
			want:  [][]string{{"line1\nline2"}, {"line3\nline4"}, {"line5\nline6"}},
		},
		{
			name:  "unterminated quote is kept",
			input: "a,\"b,c\nd",
			delim: ',',
			want:  [][]string{{"a", "b,c\nd"}},
		},
		{
			name:  "bare quote inside field is literal",
			input: "ab\"c,d",
			delim: ',',
			want:  [][]string{{"ab\"c", "d"}},
		},
		{
			name:  "semicolon",
			input: "a;b\nc;\"d;e\"",
			delim: ';',
			want:  [][]string{{"a", "b"}, {"c", "d;e"}},
		},
		{
			name:  "tab",
			input: "a\tb,c",
			delim: '\t',
			want:  [][]string{{"a", "b,c"}},
		},
		{
			name:  "quote delimiter reads as comma",
			input: "ab,cd,ef",
			delim: '"',
			want:  [][]string{{"ab", "cd", "ef"}},
		},
		{
			name:  "carriage return is content",
			input: "a\r\nb",
			delim: ',',
			want:  [][]string{{"a\r"}, {"b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(NewStringSource(tt.input), tt.delim)
			got := r.ReadAll()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ReadAll() mismatch (-want +got):\n%s", diff)
			}

			row, ok := r.ReadRow()
			assert.False(t, ok, "read past end")
			assert.Empty(t, row)
		})
	}
}

func TestReader_End(t *testing.T) {
	r := NewReader(NewStringSource("ab.cd.ef.d"), '.')
	assert.False(t, r.End())

	row, ok := r.ReadRow()
	require.True(t, ok)
	assert.Equal(t, []string{"ab", "cd", "ef", "d"}, row)
	assert.True(t, r.End())
}

func TestReader_Rows(t *testing.T) {
	r := NewReader(NewStringSource("a\nb\nc"), ',')

	var got []string
	for row := range r.Rows() {
		got = append(got, row[0])
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, got)

	row, ok := r.ReadRow()
	require.True(t, ok)
	assert.Equal(t, []string{"c"}, row)
}

func TestReader_ReaderSource(t *testing.T) {
	input := strings.Repeat("id,\"name, with comma\",\"say \"\"hi\"\"\"\n", 2000)
	r := NewReader(NewReaderSource(strings.NewReader(input)), ',')

	rows := r.ReadAll()
	require.Len(t, rows, 2000)
	for _, row := range rows {
		assert.Equal(t, []string{"id", "name, with comma", `say "hi"`}, row)
	}
}

func TestReader_QuoteDelimiterMatchesComma(t *testing.T) {
	inputs := []string{
		"a,b,c",
		`"a,b",c`,
		"\"x\"\"y\",z\nq",
		",,\n,",
	}
	for _, input := range inputs {
		comma := NewReader(NewStringSource(input), ',').ReadAll()
		quote := NewReader(NewStringSource(input), '"').ReadAll()
		assert.Equal(t, comma, quote, "input %q", input)
	}
}

func TestNewReader_NilSource(t *testing.T) {
	assert.Panics(t, func() { NewReader(nil, ',') })
}

func TestReaderDelimiter(t *testing.T) {
	assert.Equal(t, ',', NewReader(NewStringSource(""), '"').Delimiter())
	assert.Equal(t, '|', NewReader(NewStringSource(""), '|').Delimiter())
}

func TestReader_Err(t *testing.T) {
	errDisk := errors.New("disk gone")
	r := NewReader(NewReaderSource(io.MultiReader(
		strings.NewReader("a,b\nc,"),
		iotest.ErrReader(errDisk),
	)), ',')

	row, ok := r.ReadRow()
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, row)
	assert.NoError(t, r.Err())

	// The failure cuts the second row short.
	row, ok = r.ReadRow()
	require.True(t, ok)
	assert.Equal(t, []string{"c", ""}, row)
	assert.ErrorIs(t, r.Err(), errDisk)

	_, ok = r.ReadRow()
	assert.False(t, ok)
	assert.ErrorIs(t, r.Err(), errDisk)

	assert.NoError(t, NewReader(NewStringSource("a"), ',').Err())
	assert.NoError(t, NewReader(NewBytesSource([]byte("a")), ',').Err())
}

func TestReader_NewlineDelimiter(t *testing.T) {
	r := NewReader(NewStringSource("a\nb\n\"c\nd\""), '\n')
	assert.Equal(t, [][]string{{"a", "b", "c\nd"}}, r.ReadAll())

	sink := NewStringSink()
	require.NoError(t, NewWriter(sink, '\n', false).WriteAll([][]string{{"a", "b"}, {"c"}}))
	assert.Equal(t, "a\nb\nc", sink.String())
	assert.Equal(t, [][]string{{"a", "b", "c"}}, NewReader(NewStringSource(sink.String()), '\n').ReadAll())
}
