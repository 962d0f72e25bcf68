package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/structmap/structmap/internal/scanner/extraction"
)

// ExtractDeclarations walks the whole tree once and returns every function
// and class declaration at any nesting depth, in traversal order. Functions
// declared inside a class appear both as flat Function entries and in the
// enclosing class's Methods list.
func ExtractDeclarations(p *Parse) []extraction.Declaration {
	decls := []extraction.Declaration{}
	if p == nil {
		return decls
	}

	walkTree(p.Root, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "function_definition":
			decls = append(decls, extraction.Declaration{
				Type:     extraction.KindFunction,
				Name:     declarationName(n, p.Source),
				IsAsync:  isAsyncFunction(n),
				Location: resolveSpan(n, p.Lines),
				Methods:  []extraction.Method{},
			})
		case "class_definition":
			decls = append(decls, extraction.Declaration{
				Type:     extraction.KindClass,
				Name:     declarationName(n, p.Source),
				Location: resolveSpan(n, p.Lines),
				Methods:  extractMethods(n, p),
			})
		}
		return true
	})

	return decls
}

// extractMethods collects every function declared anywhere inside the class
// subtree, at any depth. Functions inside nested classes or blocks are still
// attributed to the outer class; this mirrors the flat-subtree scan the
// index has always produced.
func extractMethods(classNode *sitter.Node, p *Parse) []extraction.Method {
	methods := []extraction.Method{}

	walkTree(classNode, func(n *sitter.Node) bool {
		if n.Kind() == "function_definition" {
			methods = append(methods, extraction.Method{
				Name:     declarationName(n, p.Source),
				IsAsync:  isAsyncFunction(n),
				Location: resolveSpan(n, p.Lines),
			})
		}
		return true
	})

	return methods
}

// declarationName returns the declared identifier of a function or class
// node, or "" when the grammar produced no name field.
func declarationName(node *sitter.Node, source []byte) string {
	return extractNodeText(node.ChildByFieldName("name"), source)
}

// isAsyncFunction reports whether a function_definition carries the async
// keyword.
func isAsyncFunction(node *sitter.Node) bool {
	return findChildByType(node, "async") != nil
}
