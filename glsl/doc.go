// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package glsl provides an error-recovering GLSL (OpenGL Shading Language)
// parser.
//
// The parser accepts shaders with missing punctuation and reports, next to
// the AST, the insertions that would make the source valid. It does not
// validate the program: there is no symbol table and no overload
// resolution.
//
// # Components
//
//   - Lexer: tokenizes source by longest match over an ordered rule table.
//     It never fails; unmatched input becomes Error tokens.
//   - Parser: recursive descent over the tokens. Missing semicolons,
//     colons, parentheses and commas are assumed and recorded as Edits.
//   - AST: declarations and statements as pointer nodes, expressions in an
//     arena addressed by ExprHandle.
//   - ResolveTypes: infers expression types, used to decide where an
//     initializer needs an explicit constructor.
//
// # Usage
//
//	source := `
//	void main() {
//	    int x = 1.5
//	    gl_FragColor = vec4(1.0)
//	}
//	`
//
//	tokens := glsl.Lex(source, glsl.LexOptions{})
//	result, err := glsl.ParseWithSource(tokens, source, glsl.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, edit := range result.Edits {
//	    fmt.Printf("insert %q at %d\n", edit.Text, edit.Offset)
//	}
//
// # Recovery Rules
//
// A missing ";" is placed right after the last token of the statement. It
// is an inline insertion when the next statement starts on the same line,
// which Options.AddInlineSemicolons controls separately. A "(" or postfix
// operator at the start of a line never continues the expression of the
// previous line, and a return value must start on the return's line.
package glsl
