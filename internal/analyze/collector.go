// Package analyze collects per-file safety counters from parsed Rust
// source and aggregates them into a whole-crate report.
package analyze

import (
	sitter "github.com/smacker/go-tree-sitter"

	"unsafemeter/internal/rustparse"
	"unsafemeter/internal/stats"
)

// Collect walks the syntax tree once and accumulates the safety counters
// for a single file. Node kinds outside the dispatch are no-ops; the walk
// still descends into their children.
func Collect(root *sitter.Node, source []byte) stats.CodeStats {
	cs := stats.CodeStats{TotalLines: countLines(source)}

	rustparse.Walk(root, func(n *sitter.Node) bool {
		switch n.Type() {
		case rustparse.KindFunctionItem:
			cs.TotalFns++
			if rustparse.HasModifier(n, source, "unsafe") {
				cs.UnsafeFns++
			}

		case rustparse.KindBlock:
			cs.TotalStatements += len(rustparse.Statements(n))

		case rustparse.KindUnsafeBlock:
			// Each unsafe region contributes its own direct statements.
			// Nested unsafe blocks are visited separately, so inner
			// regions count their contents themselves.
			if body := blockOf(n); body != nil {
				cs.UnsafeStatements += len(rustparse.Statements(body))
			}

		case rustparse.KindStaticItem:
			if hasMutableSpecifier(n) {
				cs.StaticMutItems++
			}

		case rustparse.KindCallExpression:
			if isUnwrapCall(n, source) {
				cs.Unwraps++
			}
		}
		return true
	})

	return cs
}

func countLines(source []byte) int {
	if len(source) == 0 {
		return 0
	}
	lines := 0
	for _, b := range source {
		if b == '\n' {
			lines++
		}
	}
	if source[len(source)-1] != '\n' {
		lines++
	}
	return lines
}

// blockOf returns the block child of an unsafe_block node.
func blockOf(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if child := n.NamedChild(i); child != nil && child.Type() == rustparse.KindBlock {
			return child
		}
	}
	return nil
}

func hasMutableSpecifier(item *sitter.Node) bool {
	for i := 0; i < int(item.NamedChildCount()); i++ {
		if child := item.NamedChild(i); child != nil && child.Type() == rustparse.KindMutableSpecifier {
			return true
		}
	}
	return false
}

// isUnwrapCall matches method-style calls whose selector is the
// panic-on-absence extractor, i.e. expr.unwrap(...).
func isUnwrapCall(call *sitter.Node, source []byte) bool {
	fn := call.ChildByFieldName("function")
	if fn == nil || fn.Type() != rustparse.KindFieldExpression {
		return false
	}
	field := fn.ChildByFieldName("field")
	return field != nil && rustparse.Text(field, source) == "unwrap"
}
