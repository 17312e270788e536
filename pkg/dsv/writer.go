package dsv

import (
	"io"
	"strings"

	"github.com/shapestone/shape-dsv/internal/tokenizer"
)

// Writer writes rows of delimiter-separated values to a Sink.
//
// Rows are separated by a single newline: the first row has no leading
// separator and the document never ends with one. Fields are escaped as
// follows:
//   - a field containing a quote has every quote doubled and is wrapped in quotes
//   - otherwise a field containing the delimiter or a newline is wrapped in quotes
//   - otherwise the field is wrapped only when quoteAll is set
//
// A Reader with the same delimiter reads every row back unchanged, except a
// last row with no content, [] or [""] without quoteAll, which writes nothing
// and is not read back.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	sink     Sink
	delim    rune
	quoteAll bool
	rows     int
	buf      []byte
}

// NewWriter creates a Writer over sink. A delimiter equal to the quote
// character is treated as a comma. When quoteAll is set every field is quoted.
// With a newline delimiter the output reads back as a single row.
//
// Example:
//
//	sink := dsv.NewStringSink()
//	w := dsv.NewWriter(sink, ',', false)
//	_ = w.WriteRow([]string{"A", "B", "C"})
//	_ = w.WriteRow([]string{"D", "E", "F"})
//	// sink.String() == "A,B,C\nD,E,F"
func NewWriter(sink Sink, delimiter rune, quoteAll bool) *Writer {
	if sink == nil {
		panic("dsv: writer sink cannot be nil")
	}
	return &Writer{
		sink:     sink,
		delim:    tokenizer.NormalizeDelimiter(delimiter),
		quoteAll: quoteAll,
		buf:      make([]byte, 0, 64),
	}
}

// Delimiter returns the effective delimiter.
func (w *Writer) Delimiter() rune {
	return w.delim
}

// WriteRow appends one row to the sink.
//
// An empty row writes nothing but still counts as a row, so the next row is
// preceded by a separator. On a sink failure WriteRow stops immediately and
// returns a *WriteError; characters already written stay in the sink.
func (w *Writer) WriteRow(fields []string) error {
	if w.rows > 0 {
		if err := w.sink.Put(tokenizer.Newline); err != nil {
			return &WriteError{Row: w.rows + 1, Field: -1, Err: err}
		}
	}
	w.rows++

	for i, field := range fields {
		if i > 0 {
			if err := w.sink.Put(w.delim); err != nil {
				return &WriteError{Row: w.rows, Field: i, Err: err}
			}
		}
		w.buf = w.appendField(w.buf[:0], field)
		n, err := w.sink.Write(w.buf)
		if err == nil && n < len(w.buf) {
			err = io.ErrShortWrite
		}
		if err != nil {
			return &WriteError{Row: w.rows, Field: i, Err: err}
		}
	}
	return nil
}

// WriteAll writes multiple rows, stopping at the first error.
func (w *Writer) WriteAll(rows [][]string) error {
	for _, row := range rows {
		if err := w.WriteRow(row); err != nil {
			return err
		}
	}
	return nil
}

// appendField appends the escaped form of field to dst.
func (w *Writer) appendField(dst []byte, field string) []byte {
	switch {
	case strings.ContainsRune(field, tokenizer.Quote):
		dst = append(dst, tokenizer.Quote)
		for {
			i := strings.IndexByte(field, tokenizer.Quote)
			if i < 0 {
				break
			}
			dst = append(dst, field[:i+1]...)
			dst = append(dst, tokenizer.Quote)
			field = field[i+1:]
		}
		dst = append(dst, field...)
		return append(dst, tokenizer.Quote)
	case w.needsQuotes(field):
		dst = append(dst, tokenizer.Quote)
		dst = append(dst, field...)
		return append(dst, tokenizer.Quote)
	default:
		return append(dst, field...)
	}
}

func (w *Writer) needsQuotes(field string) bool {
	return w.quoteAll ||
		strings.ContainsRune(field, w.delim) ||
		strings.IndexByte(field, tokenizer.Newline) >= 0
}
