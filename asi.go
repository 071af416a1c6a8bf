// Package asi inserts the punctuation a GLSL shader is missing.
//
// asi parses GLSL source with an error-recovering parser and reports the
// insertions that make it valid:
//   - Semicolons at the end of statements and declarations
//   - Colons after case labels and in conditionals
//   - Parentheses around conditions and argument lists
//   - Commas between arguments and initializer elements
//   - Explicit constructors where an initializer does not convert
//     implicitly to the declared type
//
// The package provides a simple, high-level API as well as lower-level
// access to the lexer and parser through the glsl package.
//
// Example usage:
//
//	source := `
//	void main() {
//	    int x = 1.5
//	    gl_FragColor = vec4(1.0)
//	}
//	`
//	fixed, result, err := asi.FixString(source)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(asi.Summary(result.Counts))
//
// For token- or AST-level access, use the glsl package:
//
//	tokens := glsl.Lex(source, glsl.LexOptions{})
//	result, err := glsl.ParseWithSource(tokens, source, glsl.DefaultOptions())
package asi

import (
	"fmt"
	"strings"

	"github.com/gogpu/asi/glsl"
)

// Options configures which insertions are made.
type Options = glsl.Options

// DefaultOptions returns options with every insertion enabled.
func DefaultOptions() Options {
	return glsl.DefaultOptions()
}

// Fix parses source with default options and returns the proposed edits.
func Fix(source string) (*glsl.Result, error) {
	return FixWithOptions(source, DefaultOptions())
}

// FixWithOptions parses source and returns the proposed edits.
//
// The pipeline is:
//  1. Tokenize source
//  2. Parse tokens, recording recoverable omissions as edits
//
// A returned error wraps a *glsl.ParseError.
func FixWithOptions(source string, opts Options) (*glsl.Result, error) {
	tokens := glsl.Lex(source, glsl.LexOptions{})
	result, err := glsl.ParseWithSource(tokens, source, opts)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return result, nil
}

// FixString returns source with every default insertion applied, along
// with the parse result.
func FixString(source string) (string, *glsl.Result, error) {
	result, err := Fix(source)
	if err != nil {
		return "", nil, err
	}
	return Apply(source, result.Edits), result, nil
}

// Apply returns source with the edits inserted, in offset order. Edits at
// the same offset keep their relative order.
func Apply(source string, edits []glsl.Edit) string {
	return glsl.Apply(source, edits)
}

// summaryKinds orders the count categories in a summary.
var summaryKinds = []struct {
	keys             []string
	singular, plural string
}{
	{[]string{glsl.CountSemicolons}, "Semicolon", "Semicolons"},
	{[]string{glsl.CountColons}, "Colon", "Colons"},
	{[]string{glsl.CountLeftParens, glsl.CountRightParens}, "Parenthesis", "Parentheses"},
	{[]string{glsl.CountCommas}, "Comma", "Commas"},
	{[]string{glsl.CountConversions}, "Explicit Type Conversion", "Explicit Type Conversions"},
}

// Summary phrases counts for humans, e.g. "added 3 Semicolons and 1
// Explicit Type Conversion". Both parentheses count toward one category.
// With nothing to report it returns "nothing to add".
func Summary(counts map[string]int) string {
	var parts []string
	for _, kind := range summaryKinds {
		n := 0
		for _, key := range kind.keys {
			n += counts[key]
		}
		switch {
		case n == 1:
			parts = append(parts, "1 "+kind.singular)
		case n > 1:
			parts = append(parts, fmt.Sprintf("%d %s", n, kind.plural))
		}
	}

	switch len(parts) {
	case 0:
		return "nothing to add"
	case 1:
		return "added " + parts[0]
	default:
		return "added " + strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
	}
}
