package rustparse

import (
	"context"
	"testing"
)

func TestParseValidSource(t *testing.T) {
	parser := NewParser()
	source := []byte("fn main() {\n    println!(\"hi\");\n}\n")

	root, err := parser.Parse(context.Background(), source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if root.Type() != "source_file" {
		t.Errorf("root kind = %s, want source_file", root.Type())
	}
}

func TestParseRejectsBrokenSource(t *testing.T) {
	parser := NewParser()
	if _, err := parser.Parse(context.Background(), []byte("fn ( {{{")); err == nil {
		t.Error("expected an error for unparseable source")
	}
}

func TestHasModifier(t *testing.T) {
	parser := NewParser()
	source := []byte(`unsafe fn a() {}
pub unsafe fn b() {}
async fn c() {}
fn d() {}
`)
	root, err := parser.Parse(context.Background(), source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	fns := FindAll(root, KindFunctionItem)
	if len(fns) != 4 {
		t.Fatalf("found %d functions, want 4", len(fns))
	}

	wantUnsafe := map[string]bool{"a": true, "b": true, "c": false, "d": false}
	for _, fn := range fns {
		name := FunctionName(fn, source)
		if got := HasModifier(fn, source, "unsafe"); got != wantUnsafe[name] {
			t.Errorf("HasModifier(%s, unsafe) = %v, want %v", name, got, wantUnsafe[name])
		}
	}
	if !HasModifier(fns[2], source, "async") {
		t.Error("HasModifier(c, async) = false, want true")
	}
}

func TestStatementsExcludeComments(t *testing.T) {
	parser := NewParser()
	root, err := parser.Parse(context.Background(), []byte(`fn f() {
    // comment
    one();
    /* another */
    two();
    three()
}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	blocks := FindAll(root, KindBlock)
	if len(blocks) != 1 {
		t.Fatalf("found %d blocks, want 1", len(blocks))
	}
	if got := len(Statements(blocks[0])); got != 3 {
		t.Errorf("Statements = %d, want 3", got)
	}
}
