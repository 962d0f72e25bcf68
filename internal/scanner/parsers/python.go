package parsers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// Parse failure reasons. Callers treat any parse failure as recoverable;
// these values exist so the reason can be reported without changing that.
var (
	ErrInvalidEncoding = errors.New("source is not valid UTF-8")
	ErrSyntax          = errors.New("source contains syntax errors")
)

// Parse holds a successfully parsed Python file: the syntax tree plus the
// raw source and its line split, which span fallback computation needs.
// Close must be called to release the tree.
type Parse struct {
	Root   *sitter.Node
	Source []byte
	Lines  []string

	tree *sitter.Tree
}

// Close releases the underlying syntax tree.
func (p *Parse) Close() {
	if p.tree != nil {
		p.tree.Close()
		p.tree = nil
	}
}

// PythonParser parses Python files.
type PythonParser struct {
	language *sitter.Language
}

// NewPythonParser creates a new Python parser.
func NewPythonParser() *PythonParser {
	return &PythonParser{
		language: sitter.NewLanguage(python.Language()),
	}
}

// ParseFile reads and parses a Python source file. Content that cannot be
// decoded or parsed returns a nil Parse with the reason; no parse failure
// is fatal to the caller's run.
func (p *PythonParser) ParseFile(ctx context.Context, filePath string) (*Parse, error) {
	source, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filePath, err)
	}
	return p.ParseSource(ctx, source)
}

// ParseSource parses raw Python source bytes.
func (p *PythonParser) ParseSource(ctx context.Context, source []byte) (*Parse, error) {
	if !utf8.Valid(source) {
		return nil, ErrInvalidEncoding
	}

	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(p.language)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, ErrSyntax
	}

	root := tree.RootNode()
	if root.HasError() {
		tree.Close()
		return nil, ErrSyntax
	}

	return &Parse{
		Root:   root,
		Source: source,
		Lines:  strings.Split(string(source), "\n"),
		tree:   tree,
	}, nil
}
