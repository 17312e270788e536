// Package dsv provides delimiter-separated values (DSV) reading and writing.
//
// DSV generalizes CSV to any single-character delimiter. A field is wrapped in
// double quotes when it contains the delimiter, a newline or a quote, and
// quotes inside a quoted field are doubled. A quote only opens a quoted field
// as its first character. Rows are separated by a single LF; a document has no
// leading or trailing separator.
//
// Reader and Writer are inverses: rows written by a Writer are read back
// unchanged by a Reader configured with the same delimiter. The one exception
// is a trailing row with no content, [] or [""] without quoteAll, which
// writes nothing and so is not read back; [["a"], [""]] reads back as
// [["a"]]. An empty row before the last reads back as [""].
//
// # Sources and Sinks
//
// A Reader consumes a Source, one character at a time with a single character
// of lookahead. A Writer produces into a Sink. Both are referenced, not owned:
// the caller opens and closes the underlying files or buffers.
//
//   - NewStringSource - a shape-core stream over a string
//   - NewReaderSource - an io.Reader, decoded in chunks; read errors are kept
//     for Reader.Err
//   - NewBytesSource - a byte slice, such as a memory-mapped file
//   - NewStringSink / NewWriterSink - in-memory or buffered io.Writer output
//
// # Delimiters
//
// The delimiter is fixed at construction. A delimiter equal to the quote
// character is silently replaced by a comma, for both reading and writing.
//
// # Thread Safety
//
// Readers and Writers hold private scan state and are not safe for concurrent
// use. The package-level functions create their own instances and may be
// called concurrently.
//
// # Example usage with Reader and Writer:
//
//	sink := dsv.NewStringSink()
//	w := dsv.NewWriter(sink, ',', false)
//	if err := w.WriteRow([]string{"a,b", "b,c"}); err != nil {
//	    // handle error
//	}
//	// sink.String() == `"a,b","b,c"`
//
//	r := dsv.NewReader(dsv.NewStringSource(sink.String()), ',')
//	row, ok := r.ReadRow()
//	// row == []string{"a,b", "b,c"}, ok == true
//
// # Example usage with Parse:
//
//	node, err := dsv.Parse("name\tage\nAlice\t30", '\t')
//	if err != nil {
//	    // handle error
//	}
//	// node is a *ast.ArrayDataNode of records
package dsv

import (
	"fmt"
	"io"

	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-dsv/internal/parser"
)

// DefaultDelimiter is the delimiter used by comma-separated values.
const DefaultDelimiter = ','

// Parse parses a DSV document held in a string into an AST.
//
// Returns an ast.ArrayDataNode representing the parsed document:
//   - *ast.ArrayDataNode for the document (array of records)
//   - Each record is an *ast.ArrayDataNode of fields
//   - Each field is an *ast.LiteralNode containing a string value
//
// The only error is ErrInvalidDelimiter; malformed quoting is accepted.
func Parse(input string, delimiter rune) (ast.SchemaNode, error) {
	if err := checkDelim(delimiter); err != nil {
		return nil, err
	}
	return parser.NewParser(NewStringSource(input), delimiter).Parse()
}

// ParseReader parses a DSV document from an io.Reader into an AST.
//
// The reader is consumed in chunks, so the whole input is never held as
// text. An error from the reader other than io.EOF is returned.
func ParseReader(reader io.Reader, delimiter rune) (ast.SchemaNode, error) {
	if err := checkDelim(delimiter); err != nil {
		return nil, err
	}
	src := NewReaderSource(reader)
	node, err := parser.NewParser(src, delimiter).Parse()
	if err != nil {
		return nil, err
	}
	if err := src.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return node, nil
}

// Format returns the format identifier for this parser.
func Format() string {
	return "DSV"
}
