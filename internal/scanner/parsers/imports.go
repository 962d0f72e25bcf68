package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/structmap/structmap/internal/scanner/extraction"
)

// ExtractImports walks the whole tree and returns one record per imported
// target, in source order. Imports nested inside functions, classes or
// conditionals are included.
func ExtractImports(p *Parse) []extraction.Import {
	imports := []extraction.Import{}
	if p == nil {
		return imports
	}

	walkTree(p.Root, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "import_statement":
			imports = append(imports, plainImports(n, p.Source)...)
			return false
		case "import_from_statement":
			imports = append(imports, fromImports(n, p.Source)...)
			return false
		}
		return true
	})

	return imports
}

// plainImports handles `import a.b, c as d`: one record per target, the
// bound name being the alias when declared, else the dotted module itself.
func plainImports(node *sitter.Node, source []byte) []extraction.Import {
	var records []extraction.Import

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		switch child.Kind() {
		case "dotted_name":
			module := extractNodeText(child, source)
			records = append(records, extraction.Import{
				Type:   extraction.KindImport,
				Module: module,
				Name:   module,
			})
		case "aliased_import":
			module := extractNodeText(child.ChildByFieldName("name"), source)
			alias := extractNodeText(child.ChildByFieldName("alias"), source)
			records = append(records, extraction.Import{
				Type:   extraction.KindImport,
				Module: module,
				Name:   alias,
			})
		}
	}

	return records
}

// fromImports handles `from M import a as b, c`: one record per imported
// name, all carrying the statement's module. A bare relative import
// (`from . import x`) carries an empty module, matching the convention of
// dropping the dots and keeping only the named part.
func fromImports(node *sitter.Node, source []byte) []extraction.Import {
	var records []extraction.Import

	moduleNode := node.ChildByFieldName("module_name")
	module := importModule(moduleNode, source)

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if moduleNode != nil && child.StartByte() == moduleNode.StartByte() && child.EndByte() == moduleNode.EndByte() {
			continue
		}

		switch child.Kind() {
		case "dotted_name":
			records = append(records, extraction.Import{
				Type:   extraction.KindImportFrom,
				Module: module,
				Name:   extractNodeText(child, source),
			})
		case "aliased_import":
			records = append(records, extraction.Import{
				Type:   extraction.KindImportFrom,
				Module: module,
				Name:   extractNodeText(child.ChildByFieldName("name"), source),
				Alias:  extractNodeText(child.ChildByFieldName("alias"), source),
			})
		case "wildcard_import":
			records = append(records, extraction.Import{
				Type:   extraction.KindImportFrom,
				Module: module,
				Name:   "*",
			})
		}
	}

	return records
}

// importModule returns the dotted module of a from-import. Relative imports
// keep only the name after the leading dots, empty when there is none.
func importModule(moduleNode *sitter.Node, source []byte) string {
	if moduleNode == nil {
		return ""
	}
	if moduleNode.Kind() == "relative_import" {
		return extractNodeText(findChildByType(moduleNode, "dotted_name"), source)
	}
	return extractNodeText(moduleNode, source)
}
