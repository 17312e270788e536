package dsv

import (
	"iter"

	"github.com/shapestone/shape-dsv/internal/parser"
)

// Reader reads rows of delimiter-separated values from a Source.
//
// A field starting with a quote runs until the matching closing quote, ""
// inside it decodes to a single quote, and the delimiter and newline lose
// their meaning inside it. A quote anywhere else is literal. Input is never rejected;
// an unterminated quoted field is returned as-is at end of input.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	src Source
	p   *parser.Parser
}

// NewReader creates a Reader over src. A delimiter equal to the quote
// character is treated as a comma. A newline delimiter separates fields
// like any other, so every row runs to the end of input.
//
// Example:
//
//	r := dsv.NewReader(dsv.NewStringSource("A,B,C\nD,E,F"), ',')
//	for {
//	    row, ok := r.ReadRow()
//	    if !ok {
//	        break
//	    }
//	    fmt.Println(row)
//	}
func NewReader(src Source, delimiter rune) *Reader {
	if src == nil {
		panic("dsv: reader source cannot be nil")
	}
	return &Reader{src: src, p: parser.NewParser(src, delimiter)}
}

// Delimiter returns the effective delimiter.
func (r *Reader) Delimiter() rune {
	return r.p.Delimiter()
}

// End reports whether no more rows can be produced.
func (r *Reader) End() bool {
	return r.p.End()
}

// ReadRow reads the next row. It returns false with an empty row once the
// source is exhausted; callers stop at the first false.
//
// When the source fails, the row read so far is returned and Err reports
// the failure, so callers reading from an io.Reader check Err before using
// each row.
func (r *Reader) ReadRow() ([]string, bool) {
	return r.p.ReadRow()
}

// ReadAll reads every remaining row.
func (r *Reader) ReadAll() [][]string {
	var rows [][]string
	for {
		row, ok := r.ReadRow()
		if !ok {
			return rows
		}
		rows = append(rows, row)
	}
}

// Rows returns an iterator over the remaining rows.
func (r *Reader) Rows() iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		for {
			row, ok := r.ReadRow()
			if !ok || !yield(row) {
				return
			}
		}
	}
}

// Err returns the error that ended the source early, or nil. Only sources
// that can fail, like ReaderSource, ever report one.
func (r *Reader) Err() error {
	if s, ok := r.src.(errSource); ok {
		return s.Err()
	}
	return nil
}
