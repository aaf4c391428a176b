// Package rustparse wraps tree-sitter parsing of Rust source and provides
// the node helpers shared by the metrics collector and the candidate
// detectors.
package rustparse

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

// Parser wraps a tree-sitter parser configured for Rust.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a Rust parser.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(rust.GetLanguage())
	return &Parser{parser: p}
}

// Parse parses Rust source and returns the AST root node. A tree with
// syntax errors is reported as a parse failure so callers can skip the
// file the same way they would an unreadable one.
func (p *Parser) Parse(ctx context.Context, source []byte) (*sitter.Node, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("source contains syntax errors")
	}
	return root, nil
}
