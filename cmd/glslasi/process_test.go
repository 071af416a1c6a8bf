package main

import (
	"strings"
	"testing"

	"github.com/gogpu/asi"
	"github.com/gogpu/asi/glsl"
)

func TestProcessFix(t *testing.T) {
	out, summary, err := process("int x = 1.5\nx++", asi.DefaultOptions(), modeFix)
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if out != "int x = int(1.5);\nx++;" {
		t.Errorf("unexpected output %q", out)
	}
	if summary != "added 2 Semicolons and 1 Explicit Type Conversion" {
		t.Errorf("unexpected summary %q", summary)
	}
}

func TestProcessList(t *testing.T) {
	out, _, err := process("a = 1\nif b) c()", asi.DefaultOptions(), modeList)
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	want := "1:6\tinsert \";\"\n2:4\tinsert \"(\"\n2:10\tinsert \";\"\n"
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

func TestProcessOptions(t *testing.T) {
	opts := asi.DefaultOptions()
	opts.AddSemicolons = false

	out, summary, err := process("a = 1\nb = 2", opts, modeFix)
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if out != "a = 1\nb = 2" || summary != "nothing to add" {
		t.Errorf("expected no changes, got %q (%s)", out, summary)
	}
}

func TestProcessTokens(t *testing.T) {
	out, summary, err := process("x = 1", asi.DefaultOptions(), modeTokens)
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if summary != "" {
		t.Errorf("expected no summary, got %q", summary)
	}
	for _, want := range []string{"1:1\tIdentifier \"x\"\n", "1:3\tOperator \"=\"\n", "1:5\tLiteral \"1\"\n", "EOF\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestProcessAST(t *testing.T) {
	out, _, err := process("void main() { x = 1 }", asi.DefaultOptions(), modeAST)
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if out != "FunctionDecl void main()\n  ExprStmt (= x 1)\n" {
		t.Errorf("unexpected outline %q", out)
	}
}

func TestProcessError(t *testing.T) {
	_, _, err := process("x = ;", asi.DefaultOptions(), modeFix)
	perr, ok := err.(*glsl.ParseError)
	if !ok {
		t.Fatalf("expected *glsl.ParseError, got %T", err)
	}
	if !strings.Contains(perr.FormatWithContext(), "1| x = ;") {
		t.Errorf("expected source context, got:\n%s", perr.FormatWithContext())
	}
}

func TestProcessTypes(t *testing.T) {
	out, summary, err := process("int x = 1 + 2.0;", asi.DefaultOptions(), modeTypes)
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	want := "1:9\t(+ 1 2.0)\tfloat\n1:9\t1\tint\n1:13\t2.0\tfloat\n"
	if out != want || summary != "" {
		t.Errorf("expected %q, got %q (%q)", want, out, summary)
	}
}

// Columns in the listing count runes, matching token positions.
func TestProcessListNonASCII(t *testing.T) {
	source := "/* é */ x = 1"
	out, _, err := process(source, asi.DefaultOptions(), modeList)
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if out != "1:14\tinsert \";\"\n" {
		t.Errorf("unexpected listing %q", out)
	}

	tokens := glsl.Lex(source, glsl.LexOptions{})
	last := tokens[len(tokens)-2]
	if last.End.Column != 14 {
		t.Errorf("expected token to end at column 14, got %d", last.End.Column)
	}
}

func TestPosition(t *testing.T) {
	tests := []struct {
		offset    int
		line, col int
	}{
		{0, 1, 1},
		{3, 1, 4},
		{4, 2, 1},
		{6, 2, 3},
	}
	for _, tt := range tests {
		line, col := position("abc\nde", tt.offset)
		if line != tt.line || col != tt.col {
			t.Errorf("offset %d: expected %d:%d, got %d:%d", tt.offset, tt.line, tt.col, line, col)
		}
	}

	// "é" is two bytes but one column.
	for _, tt := range []struct {
		offset    int
		line, col int
	}{
		{3, 1, 3},
		{4, 1, 4},
		{8, 2, 2},
	} {
		line, col := position("aé b\né", tt.offset)
		if line != tt.line || col != tt.col {
			t.Errorf("offset %d: expected %d:%d, got %d:%d", tt.offset, tt.line, tt.col, line, col)
		}
	}
}
