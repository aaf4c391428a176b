package candidates

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"unsafemeter/internal/rustparse"
)

// IsBoolCandidate reports whether a function declared to return i32
// yields only the literals 0 or 1 on every explicit return and on the
// block's tail expression. Such a function can plausibly return bool
// instead.
//
// The body check is recursive over nested if/match/block/unsafe
// expressions. A body with no qualifying return or tail at all does not
// match: at least one 0/1 yield must be found. An `if` used in statement
// position does not have its fall-through path validated; only explicit
// returns and tail expressions are checked.
func IsBoolCandidate(fn *sitter.Node, source []byte) bool {
	if fn.Type() != rustparse.KindFunctionItem {
		return false
	}
	ret := fn.ChildByFieldName("return_type")
	if ret == nil || !isI32Type(ret, source) {
		return false
	}
	body := fn.ChildByFieldName("body")
	return body != nil && blockYieldsZeroOrOne(body, source)
}

func isI32Type(typ *sitter.Node, source []byte) bool {
	switch typ.Type() {
	case rustparse.KindPrimitiveType, rustparse.KindTypeIdentifier:
		return rustparse.Text(typ, source) == "i32"
	case "scoped_type_identifier":
		// Only the last path segment matters: std::primitive::i32 counts.
		if name := typ.ChildByFieldName("name"); name != nil {
			return rustparse.Text(name, source) == "i32"
		}
	}
	return false
}

// declarationKinds are block children that can never yield the block's
// value; the body check skips them entirely.
var declarationKinds = map[string]bool{
	"let_declaration":           true,
	"use_declaration":           true,
	"const_item":                true,
	"static_item":               true,
	"function_item":             true,
	"struct_item":               true,
	"enum_item":                 true,
	"union_item":                true,
	"type_item":                 true,
	"impl_item":                 true,
	"trait_item":                true,
	"mod_item":                  true,
	"macro_definition":          true,
	"extern_crate_declaration":  true,
	"foreign_mod_item":          true,
	"attribute_item":            true,
	"inner_attribute_item":      true,
	"empty_statement":           true,
}

// unwrapStatement returns the expression carried by a block child, or nil
// for declarations. Expression statements are unwrapped; a bare trailing
// expression is returned as is.
func unwrapStatement(stmt *sitter.Node) *sitter.Node {
	if stmt.Type() == rustparse.KindExpressionStmt {
		return firstExprChild(stmt)
	}
	if declarationKinds[stmt.Type()] {
		return nil
	}
	return stmt
}

// endsWithSemicolon reports whether an expression_statement is terminated
// by ';'. Block-ending expressions (if, match, loops) appear in statement
// position without one.
func endsWithSemicolon(stmt *sitter.Node) bool {
	last := stmt.Child(int(stmt.ChildCount()) - 1)
	return last != nil && last.Type() == ";"
}

// isTailExpression reports whether the last child of a block yields the
// block's value.
func isTailExpression(stmt *sitter.Node) bool {
	if stmt.Type() == rustparse.KindExpressionStmt {
		return !endsWithSemicolon(stmt)
	}
	return !declarationKinds[stmt.Type()]
}

// blockYieldsZeroOrOne checks every return statement in the block and its
// tail expression. It reports true only if all of them are 0/1 yields AND
// at least one was found.
func blockYieldsZeroOrOne(block *sitter.Node, source []byte) bool {
	stmts := rustparse.Statements(block)
	hasReturns := false

	for _, stmt := range stmts {
		expr := unwrapStatement(stmt)
		if expr == nil {
			continue
		}
		if expr.Type() == rustparse.KindReturnExpression {
			hasReturns = true
			val := firstExprChild(expr)
			if val == nil {
				// A bare `return` yields unit, which an i32 function
				// cannot do on a value path.
				return false
			}
			if !isZeroOrOneLiteral(val, source) {
				return false
			}
		}
		if !exprYieldsZeroOrOne(expr, source) {
			return false
		}
	}

	if len(stmts) > 0 {
		last := stmts[len(stmts)-1]
		if isTailExpression(last) {
			hasReturns = true
			expr := unwrapStatement(last)
			if expr == nil {
				return false
			}
			if !isZeroOrOneLiteral(expr, source) && !isValidNestedExpression(expr, source) {
				return false
			}
		}
	}

	return hasReturns
}

// exprYieldsZeroOrOne recursively validates the returns reachable inside
// an expression. Expression kinds that cannot contain a checked return
// pass vacuously.
func exprYieldsZeroOrOne(expr *sitter.Node, source []byte) bool {
	switch expr.Type() {
	case rustparse.KindReturnExpression:
		val := firstExprChild(expr)
		return val != nil && isZeroOrOneLiteral(val, source)

	case rustparse.KindBlock:
		return blockYieldsZeroOrOne(expr, source)

	case rustparse.KindUnsafeBlock:
		if body := innerBlock(expr); body != nil {
			return blockYieldsZeroOrOne(body, source)
		}
		return false

	case rustparse.KindIfExpression:
		cons := expr.ChildByFieldName("consequence")
		if cons == nil || !blockYieldsZeroOrOne(cons, source) {
			return false
		}
		if alt := expr.ChildByFieldName("alternative"); alt != nil {
			inner := firstExprChild(alt)
			if inner != nil && !exprYieldsZeroOrOne(inner, source) {
				return false
			}
		}
		return true

	case rustparse.KindMatchExpression:
		body := expr.ChildByFieldName("body")
		if body == nil {
			return false
		}
		for i := 0; i < int(body.NamedChildCount()); i++ {
			arm := body.NamedChild(i)
			if arm == nil || arm.Type() != rustparse.KindMatchArm {
				continue
			}
			val := arm.ChildByFieldName("value")
			if val == nil {
				continue
			}
			if val.Type() == rustparse.KindBlock {
				if !blockYieldsZeroOrOne(val, source) {
					return false
				}
			} else if !isZeroOrOneLiteral(val, source) && !exprYieldsZeroOrOne(val, source) {
				return false
			}
		}
		return true

	default:
		return true
	}
}

// isValidNestedExpression accepts a tail expression that is itself a
// conditional, match, block, or unsafe block whose own check recurses
// successfully.
func isValidNestedExpression(expr *sitter.Node, source []byte) bool {
	switch expr.Type() {
	case rustparse.KindIfExpression, rustparse.KindMatchExpression,
		rustparse.KindBlock, rustparse.KindUnsafeBlock:
		return exprYieldsZeroOrOne(expr, source)
	}
	return false
}

// isZeroOrOneLiteral accepts the integer literals 0 and 1, including a
// negated literal that evaluates to 0 or 1 (degenerate but accepted).
// Literals that fail to parse as i32, radix prefixes included, degrade
// to "not a match" rather than an error.
func isZeroOrOneLiteral(expr *sitter.Node, source []byte) bool {
	switch expr.Type() {
	case rustparse.KindIntegerLiteral:
		v, ok := parseI32Literal(rustparse.Text(expr, source))
		return ok && (v == 0 || v == 1)

	case rustparse.KindUnaryExpression:
		op := expr.Child(0)
		if op == nil || rustparse.Text(op, source) != "-" {
			return false
		}
		operand := firstExprChild(expr)
		if operand == nil || operand.Type() != rustparse.KindIntegerLiteral {
			return false
		}
		v, ok := parseI32Literal(rustparse.Text(operand, source))
		if !ok {
			return false
		}
		neg := -v
		return neg == 0 || neg == 1
	}
	return false
}

var intSuffixes = map[string]bool{
	"i8": true, "i16": true, "i32": true, "i64": true, "i128": true, "isize": true,
	"u8": true, "u16": true, "u32": true, "u64": true, "u128": true, "usize": true,
}

// parseI32Literal parses a decimal Rust integer literal, tolerating digit
// separators and a type suffix. Radix-prefixed or out-of-range literals
// report !ok.
func parseI32Literal(text string) (int32, bool) {
	s := strings.ReplaceAll(text, "_", "")
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0o") || strings.HasPrefix(s, "0b") {
		return 0, false
	}

	digits := s
	for i, r := range s {
		if r < '0' || r > '9' {
			digits = s[:i]
			if !intSuffixes[s[i:]] {
				return 0, false
			}
			break
		}
	}
	if digits == "" {
		return 0, false
	}

	v, err := strconv.ParseInt(digits, 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(v), true
}

// firstExprChild returns the first named non-comment child of a node.
func firstExprChild(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child != nil && !rustparse.IsComment(child) {
			return child
		}
	}
	return nil
}

// innerBlock returns the block child of an unsafe_block.
func innerBlock(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if child := n.NamedChild(i); child != nil && child.Type() == rustparse.KindBlock {
			return child
		}
	}
	return nil
}
