package dsv

import (
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"
)

// Render converts an AST node to DSV bytes.
//
// The node should be the result of Parse or ParseReader, or built with
// RecordsToNode. Rows are emitted through a Writer, so escaping and row
// separators are exactly what WriteRow produces.
//
// Example:
//
//	node, _ := dsv.Parse("name,age\nAlice,30", ',')
//	out, _ := dsv.Render(node, '|', false)
//	// out: name|age\nAlice|30
func Render(node ast.SchemaNode, delimiter rune, quoteAll bool) ([]byte, error) {
	if err := checkDelim(delimiter); err != nil {
		return nil, err
	}
	if node == nil {
		return []byte{}, nil
	}

	records, err := nodeToRecords(node)
	if err != nil {
		return nil, err
	}

	sink := NewStringSink()
	if err := NewWriter(sink, delimiter, quoteAll).WriteAll(records); err != nil {
		return nil, err
	}
	return []byte(sink.String()), nil
}

// NodeToRecords converts a document AST into rows of fields.
// Nodes that are not a document of string records yield nil.
func NodeToRecords(node ast.SchemaNode) [][]string {
	records, err := nodeToRecords(node)
	if err != nil {
		return nil
	}
	return records
}

// RecordsToNode builds a document AST from rows of fields.
func RecordsToNode(records [][]string) ast.SchemaNode {
	nodes := make([]ast.SchemaNode, len(records))
	for i, record := range records {
		fields := make([]ast.SchemaNode, len(record))
		for j, f := range record {
			fields[j] = ast.NewLiteralNode(f, ast.ZeroPosition())
		}
		nodes[i] = ast.NewArrayDataNode(fields, ast.ZeroPosition())
	}
	return ast.NewArrayDataNode(nodes, ast.ZeroPosition())
}

func nodeToRecords(node ast.SchemaNode) ([][]string, error) {
	doc, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("unsupported node type for DSV rendering: %T", node)
	}

	records := make([][]string, 0, doc.Len())
	for _, elem := range doc.Elements() {
		recordNode, ok := elem.(*ast.ArrayDataNode)
		if !ok {
			return nil, fmt.Errorf("expected record to be *ast.ArrayDataNode, got %T", elem)
		}

		fields := make([]string, 0, recordNode.Len())
		for _, fieldNode := range recordNode.Elements() {
			lit, ok := fieldNode.(*ast.LiteralNode)
			if !ok {
				return nil, fmt.Errorf("expected field to be *ast.LiteralNode, got %T", fieldNode)
			}
			fields = append(fields, literalString(lit))
		}
		records = append(records, fields)
	}
	return records, nil
}

func literalString(lit *ast.LiteralNode) string {
	switch v := lit.Value().(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
