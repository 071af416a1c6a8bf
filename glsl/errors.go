// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"
	"strings"
)

// ParseError reports a token the grammar cannot recover from.
type ParseError struct {
	Expected []string // descriptions of the acceptable tokens
	Token    Token    // the offending token
	Source   string   // original source code, for context display
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Token.Start.Line, e.Token.Start.Column, e.Message())
}

// Message describes the error without its position.
func (e *ParseError) Message() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("unexpected %s", e.Token)
	}
	return fmt.Sprintf("expected %s, got %s", strings.Join(e.Expected, " or "), e.Token)
}

// FormatWithContext returns the error message with the offending line, the
// lines around it and a caret pointing at the token.
func (e *ParseError) FormatWithContext() string {
	if e.Source == "" || e.Token.Start.Line == 0 {
		return e.Error()
	}

	lines := strings.Split(e.Source, "\n")
	lineNum := e.Token.Start.Line
	if lineNum < 1 || lineNum > len(lines) {
		return e.Error()
	}

	line := strings.TrimSuffix(lines[lineNum-1], "\r")
	col := e.Token.Start.Column
	if col < 1 {
		col = 1
	}
	if n := len([]rune(line)); col > n+1 {
		col = n + 1
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "error: %s\n", e.Message())
	fmt.Fprintf(&sb, "  --> line %d:%d\n", lineNum, col)
	sb.WriteString("    |\n")
	if lineNum > 1 {
		fmt.Fprintf(&sb, "%4d| %s\n", lineNum-1, strings.TrimSuffix(lines[lineNum-2], "\r"))
	}
	fmt.Fprintf(&sb, "%4d| %s\n", lineNum, line)
	fmt.Fprintf(&sb, "    | %s^\n", strings.Repeat(" ", col-1))
	if lineNum < len(lines) {
		fmt.Fprintf(&sb, "%4d| %s\n", lineNum+1, strings.TrimSuffix(lines[lineNum], "\r"))
	}

	return sb.String()
}
