package glsl

import (
	"fmt"
	"strings"
	"testing"
)

func TestWalkVisitsEveryExpression(t *testing.T) {
	source := "int x = 1 + 2;\nvoid main() { if (x > 0) { y = f(x); } }"
	m := parseSource(t, source, DefaultOptions()).Module

	seen := make(map[ExprHandle]int)
	m.Walk(func(h ExprHandle, _ *Expression) bool {
		seen[h]++
		return true
	})

	if len(seen) != len(m.Expressions) {
		t.Errorf("expected %d expressions, visited %d", len(m.Expressions), len(seen))
	}
	for h, n := range seen {
		if n != 1 {
			t.Errorf("%s visited %d times", m.FormatExpr(h), n)
		}
	}
}

func TestWalkExprSkipsChildren(t *testing.T) {
	m, root, _ := resolveSource(t, "f(a + b, c)")

	var visited []string
	m.WalkExpr(root, func(h ExprHandle, e *Expression) bool {
		visited = append(visited, m.FormatExpr(h))
		_, isArith := e.Kind.(ExprArithmetic)
		return !isArith
	})

	want := []string{"(call f (+ a b) c)", "f", "(+ a b)", "c"}
	if strings.Join(visited, " | ") != strings.Join(want, " | ") {
		t.Errorf("expected %v, got %v", want, visited)
	}
}

func TestChildren(t *testing.T) {
	m, root, _ := resolveSource(t, "x ? a[i] : b.c")
	cond := m.Expr(root).Kind.(ExprConditional)

	children := Children(m.Expr(root).Kind)
	if len(children) != 3 || children[0] != cond.Cond || children[1] != cond.Then || children[2] != cond.Else {
		t.Errorf("unexpected children %v", children)
	}
	if n := len(Children(m.Expr(cond.Then).Kind)); n != 2 {
		t.Errorf("expected 2 index children, got %d", n)
	}
	if n := len(Children(m.Expr(cond.Else).Kind)); n != 1 {
		t.Errorf("expected 1 member child, got %d", n)
	}
	if n := len(Children(ExprIndex{Object: cond.Cond, Index: NoExpr})); n != 1 {
		t.Errorf("expected absent index to be omitted, got %d children", n)
	}
}

func TestInspectOrder(t *testing.T) {
	source := `int x = 1;
void main() {
    if (x > 0) {
        y = 1;
    }
    for (int i = 0; i < 2; i++) x++;
}`
	m := parseSource(t, source, DefaultOptions()).Module

	var got []string
	for _, d := range m.Decls {
		Inspect(d, func(n Node) bool {
			got = append(got, strings.TrimPrefix(fmt.Sprintf("%T", n), "*glsl."))
			return true
		})
	}
	want := []string{
		"VarDecl", "FunctionDecl", "BlockStmt",
		"IfStmt", "BlockStmt", "ExprStmt",
		"ForStmt", "VarDecl", "ExprStmt",
	}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestRoots(t *testing.T) {
	m := parseSource(t, "layout(binding = 2) uniform sampler2D tex[4];", DefaultOptions()).Module
	roots := Roots(m.Decls[0])

	var got []string
	for _, h := range roots {
		got = append(got, m.FormatExpr(h))
	}
	if strings.Join(got, " ") != "2 4" {
		t.Errorf("expected layout value and array size, got %v", got)
	}
}

func TestRootsNestedLayoutValues(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"layout(std140) uniform B { layout(offset = 4) float v; };", "4"},
		{"void f(layout(location = 2) in vec3 p, float q[3]);", "2 3"},
		{"precision highp float[2];", "2"},
	}

	for _, tt := range tests {
		m := parseSource(t, tt.source, DefaultOptions()).Module
		var got []string
		for _, h := range Roots(m.Decls[0]) {
			got = append(got, m.FormatExpr(h))
		}
		if strings.Join(got, " ") != tt.want {
			t.Errorf("%q: expected %q, got %v", tt.source, tt.want, got)
		}
	}
}
