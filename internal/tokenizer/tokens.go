// Package tokenizer provides the character-level field scanner for DSV data.
package tokenizer

// Grammar characters for delimiter-separated values.
//
// The delimiter is configurable; quote and newline are fixed. A delimiter equal
// to Quote is normalized to Comma (see NormalizeDelimiter).
const (
	Quote   = '"'  // opens and closes a quoted region, doubled to escape
	Newline = '\n' // row separator
	Comma   = ','  // default delimiter
)

// Terminator describes what ended a field.
type Terminator int

const (
	// TerminatorEOF means the source ran out before a delimiter or newline.
	TerminatorEOF Terminator = iota
	// TerminatorDelimiter means the field ended on the delimiter.
	TerminatorDelimiter
	// TerminatorNewline means the field ended on a newline, closing the row.
	TerminatorNewline
)

// String returns the name of the terminator.
func (t Terminator) String() string {
	switch t {
	case TerminatorEOF:
		return "EOF"
	case TerminatorDelimiter:
		return "Delimiter"
	case TerminatorNewline:
		return "Newline"
	default:
		return "Terminator(?)"
	}
}

// NormalizeDelimiter returns the effective delimiter for d.
// The quote character cannot separate fields, so it is replaced by Comma.
func NormalizeDelimiter(d rune) rune {
	if d == Quote {
		return Comma
	}
	return d
}
