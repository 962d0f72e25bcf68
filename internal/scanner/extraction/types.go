// Package extraction defines the records produced by parsing a single
// Python source file: declarations with source spans and import entries.
package extraction

// Declaration discriminator values.
const (
	KindFunction = "Function"
	KindClass    = "Class"
)

// Import discriminator values.
const (
	KindImport     = "import"
	KindImportFrom = "importfrom"
)

// Span is a region of source text. Lines are 1-based (matching the
// parser's convention), columns are 0-based offsets into their line.
// LineStart <= LineEnd always holds; when the grammar provides no end
// metadata the span degenerates to a single line with zero columns.
type Span struct {
	LineStart int `json:"line_start"`
	LineEnd   int `json:"line_end"`
	ColStart  int `json:"col_start"`
	ColEnd    int `json:"col_end"`
}

// Method is a function declared inside a class body. It exists only as
// part of its enclosing Declaration's Methods list.
type Method struct {
	Name     string `json:"name"`
	IsAsync  bool   `json:"is_async"`
	Location Span   `json:"location"`
}

// Declaration is one function or class entry in the structural index.
// Type is KindFunction or KindClass. Methods is always non-nil; for
// functions it is empty. IsAsync is always false for classes.
type Declaration struct {
	Type     string   `json:"type"`
	Name     string   `json:"name"`
	IsAsync  bool     `json:"is_async"`
	Location Span     `json:"location"`
	Methods  []Method `json:"methods"`
}

// Import is one imported target. Type is KindImport for `import X [as Y]`
// (one record per comma-separated target, Name holding the alias when
// declared, else the dotted module itself) or KindImportFrom for
// `from M import A [as B]` (one record per imported name, Module empty
// for a bare relative import).
type Import struct {
	Type   string `json:"type"`
	Module string `json:"module"`
	Name   string `json:"name"`
	Alias  string `json:"alias,omitempty"`
}
