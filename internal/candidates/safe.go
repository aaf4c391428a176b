package candidates

import (
	sitter "github.com/smacker/go-tree-sitter"

	"unsafemeter/internal/rustparse"
)

// IsSafeCandidate reports whether a function declared unsafe takes no
// raw-pointer parameters. Such a function can plausibly drop its unsafe
// qualifier; the body may still need unsafe operations, so the result is
// necessary-not-sufficient.
func IsSafeCandidate(fn *sitter.Node, source []byte) bool {
	if fn.Type() != rustparse.KindFunctionItem {
		return false
	}
	if !rustparse.HasModifier(fn, source, "unsafe") {
		return false
	}

	params := fn.ChildByFieldName("parameters")
	if params == nil {
		return true
	}
	for i := 0; i < int(params.NamedChildCount()); i++ {
		param := params.NamedChild(i)
		if param == nil || param.Type() != rustparse.KindParameter {
			continue
		}
		typ := param.ChildByFieldName("type")
		if typ != nil && typ.Type() == rustparse.KindPointerType {
			return false
		}
	}
	return true
}
