package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/structmap/structmap/internal/scanner/extraction"
)

// resolveSpan computes the source span of a node. The start line is always
// taken from the node. When the node's end metadata is missing or does not
// form a valid span, the span degenerates to the start line with column 0
// through the length of that line, or 0 when the line is not resolvable.
// resolveSpan never fails.
func resolveSpan(node *sitter.Node, lines []string) extraction.Span {
	lineStart := int(node.StartPosition().Row) + 1
	lineEnd := int(node.EndPosition().Row) + 1
	colStart := int(node.StartPosition().Column)
	colEnd := int(node.EndPosition().Column)

	if lineEnd < lineStart {
		lineEnd = lineStart
		colStart = 0
		if lineEnd >= 1 && lineEnd <= len(lines) {
			colEnd = len(lines[lineEnd-1])
		} else {
			colEnd = 0
		}
	}

	return extraction.Span{
		LineStart: lineStart,
		LineEnd:   lineEnd,
		ColStart:  colStart,
		ColEnd:    colEnd,
	}
}
