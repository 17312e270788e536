// Package parser assembles DSV rows from tokenized fields.
//
// Grammar:
//
//	Document = [ Row { LF Row } ] ;
//	Row      = Field { Delimiter Field } ;
//
// Field tokenization lives in internal/tokenizer; this package only decides
// where rows begin and end and builds AST nodes for whole documents.
package parser

import (
	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-dsv/internal/tokenizer"
)

// Parser reads rows from a tokenizer.Source.
// A Parser is not safe for concurrent use.
type Parser struct {
	src *positionSource
	tok *tokenizer.Tokenizer
}

// NewParser creates a parser over src using delim as the field delimiter.
// A delimiter equal to the quote character is treated as a comma.
func NewParser(src tokenizer.Source, delim rune) *Parser {
	ps := &positionSource{src: src, line: 1, column: 1}
	return &Parser{
		src: ps,
		tok: tokenizer.NewTokenizer(ps, delim),
	}
}

// Delimiter returns the effective delimiter.
func (p *Parser) Delimiter() rune {
	return p.tok.Delimiter()
}

// End reports whether no more rows can be produced.
func (p *Parser) End() bool {
	return p.src.End()
}

// ReadRow reads one row.
//
// It returns false with an empty row when the source is already exhausted.
// A row ends on a newline outside a quoted region or at end of input. When the
// input ends right after a delimiter the row gets a trailing empty field.
func (p *Parser) ReadRow() ([]string, bool) {
	row := make([]string, 0, 8)
	if p.src.End() {
		return row, false
	}

	for {
		f := p.tok.NextField()
		if f.Consumed {
			row = append(row, f.Value)
		}
		switch f.Terminator {
		case tokenizer.TerminatorNewline:
			return row, true
		case tokenizer.TerminatorEOF:
			return row, true
		}
		if p.src.End() {
			// Input ended on a delimiter: the last field is empty.
			row = append(row, "")
			return row, true
		}
	}
}

// Parse drains the source into an AST.
//
// Returns *ast.ArrayDataNode - an array of records, where each record is an
// ArrayDataNode of *ast.LiteralNode string fields. Each record carries the
// position of its first character.
func (p *Parser) Parse() (ast.SchemaNode, error) {
	records := make([]ast.SchemaNode, 0, 16)

	for !p.src.End() {
		pos := p.position()
		row, ok := p.ReadRow()
		if !ok {
			break
		}
		fields := make([]ast.SchemaNode, len(row))
		for i, v := range row {
			fields[i] = ast.NewLiteralNode(v, pos)
		}
		records = append(records, ast.NewArrayDataNode(fields, pos))
	}

	return ast.NewArrayDataNode(records, ast.ZeroPosition()), nil
}

// position returns the current position for AST nodes.
func (p *Parser) position() ast.Position {
	return ast.NewPosition(p.src.offset, p.src.line, p.src.column)
}

// positionSource tracks offset, line and column of consumed characters.
type positionSource struct {
	src    tokenizer.Source
	offset int
	line   int
	column int
}

func (s *positionSource) Peek() (rune, bool) {
	return s.src.Peek()
}

func (s *positionSource) Get() (rune, bool) {
	ch, ok := s.src.Get()
	if !ok {
		return ch, ok
	}
	s.offset++
	if ch == tokenizer.Newline {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return ch, ok
}

func (s *positionSource) End() bool {
	return s.src.End()
}
