package rustparse

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Node kinds of the tree-sitter Rust grammar that the analyses dispatch on.
const (
	KindFunctionItem      = "function_item"
	KindFunctionModifiers = "function_modifiers"
	KindBlock             = "block"
	KindUnsafeBlock       = "unsafe_block"
	KindStaticItem        = "static_item"
	KindMutableSpecifier  = "mutable_specifier"
	KindCallExpression    = "call_expression"
	KindFieldExpression   = "field_expression"
	KindExpressionStmt    = "expression_statement"
	KindReturnExpression  = "return_expression"
	KindIfExpression      = "if_expression"
	KindElseClause        = "else_clause"
	KindMatchExpression   = "match_expression"
	KindMatchArm          = "match_arm"
	KindIntegerLiteral    = "integer_literal"
	KindUnaryExpression   = "unary_expression"
	KindParameter         = "parameter"
	KindPointerType       = "pointer_type"
	KindPrimitiveType     = "primitive_type"
	KindTypeIdentifier    = "type_identifier"
	KindLineComment       = "line_comment"
	KindBlockComment      = "block_comment"
)

// Text returns the source text covered by a node.
func Text(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

// Line returns the 1-based line of the node's first byte.
func Line(node *sitter.Node) int {
	return int(node.StartPoint().Row) + 1
}

// IsComment reports whether a node is a comment. Comments float freely in
// the grammar and must be excluded from statement counts.
func IsComment(node *sitter.Node) bool {
	t := node.Type()
	return t == KindLineComment || t == KindBlockComment
}

// Statements returns the direct statement children of a block, comments
// excluded. The trailing tail expression of a block, if any, is included
// as its own entry.
func Statements(block *sitter.Node) []*sitter.Node {
	var stmts []*sitter.Node
	for i := 0; i < int(block.NamedChildCount()); i++ {
		child := block.NamedChild(i)
		if child == nil || IsComment(child) {
			continue
		}
		stmts = append(stmts, child)
	}
	return stmts
}

// Walk calls fn for every node in the subtree rooted at node, parents
// before children. Returning false from fn prunes the subtree.
func Walk(node *sitter.Node, fn func(*sitter.Node) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		Walk(node.Child(i), fn)
	}
}

// FindAll collects every node of the given kind in the subtree.
func FindAll(root *sitter.Node, kind string) []*sitter.Node {
	var result []*sitter.Node
	Walk(root, func(n *sitter.Node) bool {
		if n.Type() == kind {
			result = append(result, n)
		}
		return true
	})
	return result
}

// HasModifier reports whether a function_item carries the given keyword
// in its function_modifiers child (e.g. "unsafe", "async"). Keywords are
// anonymous nodes, so the raw children are compared by text.
func HasModifier(fn *sitter.Node, source []byte, keyword string) bool {
	for i := 0; i < int(fn.ChildCount()); i++ {
		child := fn.Child(i)
		if child == nil || child.Type() != KindFunctionModifiers {
			continue
		}
		for j := 0; j < int(child.ChildCount()); j++ {
			if m := child.Child(j); m != nil && Text(m, source) == keyword {
				return true
			}
		}
	}
	return false
}

// FunctionName returns the declared name of a function_item.
func FunctionName(fn *sitter.Node, source []byte) string {
	name := fn.ChildByFieldName("name")
	if name == nil {
		return "<unknown>"
	}
	return Text(name, source)
}
