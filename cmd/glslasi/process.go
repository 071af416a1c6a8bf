package main

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gogpu/asi"
	"github.com/gogpu/asi/glsl"
)

type outputMode int

const (
	modeFix outputMode = iota
	modeList
	modeTokens
	modeAST
	modeTypes
)

// process runs source through the mode's pipeline and returns the text to
// write and, for repairs, the summary line. A parse failure is returned as
// the underlying *glsl.ParseError.
func process(source string, opts asi.Options, mode outputMode) (string, string, error) {
	if mode == modeTokens {
		var sb strings.Builder
		for _, tok := range glsl.Lex(source, glsl.LexOptions{}) {
			fmt.Fprintf(&sb, "%d:%d\t%s\n", tok.Start.Line, tok.Start.Column, tok)
		}
		return sb.String(), "", nil
	}

	result, err := asi.FixWithOptions(source, opts)
	if err != nil {
		var perr *glsl.ParseError
		if errors.As(err, &perr) {
			return "", "", perr
		}
		return "", "", err
	}

	switch mode {
	case modeAST:
		var sb strings.Builder
		if err := glsl.Fprint(&sb, result.Module); err != nil {
			return "", "", err
		}
		return sb.String(), "", nil
	case modeTypes:
		m := result.Module
		resolved := glsl.ResolveModule(m)
		var sb strings.Builder
		m.Walk(func(h glsl.ExprHandle, e *glsl.Expression) bool {
			fmt.Fprintf(&sb, "%d:%d\t%s\t%s\n", e.Span.Start.Line, e.Span.Start.Column, m.FormatExpr(h), resolved[h])
			return true
		})
		return sb.String(), "", nil
	case modeList:
		var sb strings.Builder
		for _, edit := range result.Edits {
			line, col := position(source, edit.Offset)
			fmt.Fprintf(&sb, "%d:%d\tinsert %q\n", line, col, edit.Text)
		}
		return sb.String(), asi.Summary(result.Counts), nil
	default:
		return asi.Apply(source, result.Edits), asi.Summary(result.Counts), nil
	}
}

// position converts a byte offset into a 1-based line and column, with
// columns counted in runes as glsl.Position does.
func position(source string, offset int) (int, int) {
	before := source[:offset]
	line := strings.Count(before, "\n") + 1
	col := utf8.RuneCountInString(before[strings.LastIndexByte(before, '\n')+1:]) + 1
	return line, col
}
