package dsv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScanner(input string, hasHeaders bool) *Scanner {
	return NewScanner(NewReader(NewStringSource(input), ',')).SetHasHeaders(hasHeaders)
}

func TestScanner(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		hasHeaders  bool
		wantHeaders []string
		want        [][]string
	}{
		{
			name:        "with headers",
			input:       "name,age\nAlice,30\nBob,25",
			hasHeaders:  true,
			wantHeaders: []string{"name", "age"},
			want:        [][]string{{"Alice", "30"}, {"Bob", "25"}},
		},
		{
			name:       "without headers",
			input:      "Alice,30\nBob,25",
			hasHeaders: false,
			want:       [][]string{{"Alice", "30"}, {"Bob", "25"}},
		},
		{
			name:       "empty document",
			input:      "",
			hasHeaders: true,
		},
		{
			name:        "headers only",
			input:       "name,age",
			hasHeaders:  true,
			wantHeaders: []string{"name", "age"},
		},
		{
			name:        "quoted fields",
			input:       "a,b\n\"x,y\",\"multi\nline\"",
			hasHeaders:  true,
			wantHeaders: []string{"a", "b"},
			want:        [][]string{{"x,y", "multi\nline"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScanner(tt.input, tt.hasHeaders)

			var got [][]string
			for s.Scan() {
				got = append(got, s.Record().Fields())
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantHeaders, s.Headers())
			assert.False(t, s.Scan(), "scan after end")
		})
	}
}

func TestScanner_GetByName(t *testing.T) {
	s := newTestScanner("stop_id,node_id\n1,123\n2", true)

	require.True(t, s.Scan())
	rec := s.Record()
	assert.Equal(t, 2, s.Row())

	id, ok := rec.GetByName("stop_id")
	require.True(t, ok)
	assert.Equal(t, "1", id)

	node, ok := rec.GetByName("node_id")
	require.True(t, ok)
	assert.Equal(t, "123", node)

	_, ok = rec.GetByName("missing")
	assert.False(t, ok)

	require.True(t, s.Scan())
	assert.Equal(t, 3, s.Row())
	_, ok = s.Record().GetByName("node_id")
	assert.False(t, ok, "short row has no node_id")

	assert.Equal(t, 0, s.HeaderIndex("stop_id"))
	assert.Equal(t, 1, s.HeaderIndex("node_id"))
	assert.Equal(t, -1, s.HeaderIndex("route"))
}

func TestRecord(t *testing.T) {
	rec := Record{fields: []string{"a", "b"}}

	assert.Equal(t, 2, rec.Len())
	v, ok := rec.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "b", v)

	_, ok = rec.Get(2)
	assert.False(t, ok)
	_, ok = rec.Get(-1)
	assert.False(t, ok)

	_, ok = rec.GetByName("a")
	assert.False(t, ok, "no headers")

	fields := rec.Fields()
	fields[0] = "changed"
	v, _ = rec.Get(0)
	assert.Equal(t, "a", v, "Fields returns a copy")
}

func TestScanner_RecordBeforeScan(t *testing.T) {
	s := newTestScanner("a", false)
	assert.Equal(t, 0, s.Record().Len())
}

func TestNewScanner_Nil(t *testing.T) {
	assert.Panics(t, func() { NewScanner(nil) })
}

func TestHeaderIndex(t *testing.T) {
	headers := []string{"route", "stop_id", "stop_id", " node_id"}
	assert.Equal(t, 0, HeaderIndex(headers, "route"))
	assert.Equal(t, 1, HeaderIndex(headers, "stop_id"), "first match wins")
	assert.Equal(t, -1, HeaderIndex(headers, "node_id"), "no trimming")
	assert.Equal(t, -1, HeaderIndex(headers, "Route"), "no case folding")
	assert.Equal(t, -1, HeaderIndex(nil, "route"))
}
