package tokenizer

import "strings"

// Source is the character supply the tokenizer reads from.
//
// Peek inspects the next character without consuming it, Get consumes it.
// Both report false once the input is exhausted.
type Source interface {
	Peek() (rune, bool)
	Get() (rune, bool)
	End() bool
}

// Field is one tokenized field.
type Field struct {
	// Value is the decoded field text.
	Value string
	// Terminator is what ended the field.
	Terminator Terminator
	// Consumed reports whether any character was read for this field,
	// including a delimiter or newline.
	Consumed bool
	// ClosedQuote reports whether the field's quoted region was properly closed.
	ClosedQuote bool
}

// Tokenizer splits a Source into fields.
//
// Grammar:
//
//	Field         = QuotedField | UnquotedField ;
//	QuotedField   = '"' { QuotedChar | '""' } [ '"' ] { UnquotedChar } ;
//	UnquotedField = { UnquotedChar } ;
//	UnquotedChar  = <any character except delimiter and LF> ;
//	QuotedChar    = <any character except '"'> ;
//
// A quote opens a quoted region only as the first character of a field.
// Anywhere else outside a quoted region it is literal content.
type Tokenizer struct {
	src   Source
	delim rune
	buf   strings.Builder
}

// NewTokenizer creates a tokenizer over src. The delimiter is normalized with
// NormalizeDelimiter.
func NewTokenizer(src Source, delim rune) *Tokenizer {
	return &Tokenizer{
		src:   src,
		delim: NormalizeDelimiter(delim),
	}
}

// Delimiter returns the effective delimiter.
func (t *Tokenizer) Delimiter() rune {
	return t.delim
}

// End reports whether the source is exhausted.
func (t *Tokenizer) End() bool {
	return t.src.End()
}

// NextField scans one field from the source.
//
// Malformed input is never rejected: an unterminated quoted region runs to the
// end of the source and whatever was accumulated is returned.
func (t *Tokenizer) NextField() Field {
	t.buf.Reset()
	f := Field{Terminator: TerminatorEOF}
	inQuotes := false

	for !t.src.End() {
		if inQuotes {
			ch, _ := t.src.Get()
			f.Consumed = true
			if ch != Quote {
				t.buf.WriteRune(ch)
				continue
			}
			if next, ok := t.src.Peek(); ok && next == Quote {
				t.src.Get()
				t.buf.WriteRune(Quote)
				continue
			}
			inQuotes = false
			f.ClosedQuote = true
			continue
		}

		ch, ok := t.src.Peek()
		if !ok {
			break
		}
		switch {
		case ch == t.delim:
			t.src.Get()
			f.Consumed = true
			f.Terminator = TerminatorDelimiter
			f.Value = t.buf.String()
			return f
		case ch == Newline:
			t.src.Get()
			f.Consumed = true
			f.Terminator = TerminatorNewline
			f.Value = t.buf.String()
			return f
		case ch == Quote && !f.Consumed:
			t.src.Get()
			f.Consumed = true
			inQuotes = true
		default:
			t.src.Get()
			f.Consumed = true
			t.buf.WriteRune(ch)
		}
	}

	f.Value = t.buf.String()
	return f
}
