package glsl

import (
	"errors"
	"strings"
	"testing"
)

func parseError(t *testing.T, source string) *ParseError {
	t.Helper()
	_, err := ParseString(source, DefaultOptions())
	if err == nil {
		t.Fatalf("expected an error for %q", source)
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	return perr
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "missing initializer",
			input: "int x = ;",
			want:  `line 1, column 9: expected Identifier or Literal or "(", got ";"`,
		},
		{
			name:  "unterminated struct",
			input: "struct { int a; ",
			want:  `line 1, column 17: expected "}", got EOF`,
		},
		{
			name:  "unterminated index",
			input: "a[1;",
			want:  `line 1, column 4: expected "]", got ";"`,
		},
		{
			name:  "error token",
			input: "x = @;",
			want:  `line 1, column 5: expected Identifier or Literal or "(", got Error "@"`,
		},
		{
			name:  "precision without qualifier",
			input: "precision float;",
			want:  `line 1, column 11: expected Qualifier, got Identifier "float"`,
		},
		{
			name:  "precision with other qualifier",
			input: "precision in float;",
			want:  `line 1, column 11: expected "highp" or "mediump" or "lowp", got Qualifier "in"`,
		},
		{
			name:  "unterminated block",
			input: "void main() {\n\tx = 1;\n",
			want:  `line 3, column 1: expected "}", got EOF`,
		},
		{
			name:  "member access without name",
			input: "a.;",
			want:  `line 1, column 3: expected Identifier, got ";"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseError(t, tt.input)
			if err.Error() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, err.Error())
			}
		})
	}
}

func TestParseErrorFields(t *testing.T) {
	err := parseError(t, "int x = ;")

	want := []string{"Identifier", "Literal", `"("`}
	if strings.Join(err.Expected, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, err.Expected)
	}
	if err.Token.Kind != TokenSemicolon || err.Token.Start.Offset != 8 {
		t.Errorf("unexpected token %+v", err.Token)
	}
	if err.Source != "int x = ;" {
		t.Errorf("expected source to be attached, got %q", err.Source)
	}
}

func TestParseErrorFormatWithContext(t *testing.T) {
	source := "void main() {\n    int x = ;\n}"
	err := parseError(t, source)

	want := strings.Join([]string{
		`error: expected Identifier or Literal or "(", got ";"`,
		"  --> line 2:13",
		"    |",
		"   1| void main() {",
		"   2|     int x = ;",
		"    | " + strings.Repeat(" ", 12) + "^",
		"   3| }",
		"",
	}, "\n")
	if got := err.FormatWithContext(); got != want {
		t.Errorf("unexpected context:\n%s\nwant:\n%s", got, want)
	}
}

func TestParseErrorFormatWithoutSource(t *testing.T) {
	_, err := Parse(Lex("int x = ;", LexOptions{}), DefaultOptions())
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.FormatWithContext() != perr.Error() {
		t.Errorf("expected plain message without source, got %q", perr.FormatWithContext())
	}
}

func TestParseErrorFirstLine(t *testing.T) {
	err := parseError(t, "@")
	got := err.FormatWithContext()
	if strings.Contains(got, "   0|") {
		t.Errorf("unexpected line 0 in context:\n%s", got)
	}
	if !strings.Contains(got, "   1| @\n    | ^\n") {
		t.Errorf("expected caret under the first column:\n%s", got)
	}
}
