// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"cmp"
	"slices"
	"strings"
)

// Options configures which insertions the parser records. A disabled kind
// is still recovered from, the parser just does not report it.
type Options struct {
	// AddSemicolons inserts ";" where a statement ends at a line break,
	// before "}" or at the end of input.
	AddSemicolons bool

	// AddInlineSemicolons inserts ";" between two statements on the same
	// line.
	AddInlineSemicolons bool

	// AddColons inserts ":" after case labels and in conditionals.
	AddColons bool

	// AddParentheses inserts "(" and ")" around conditions and argument
	// lists.
	AddParentheses bool

	// AddCommas inserts "," between arguments and initializer elements.
	AddCommas bool

	// AddExplicitTypeConversions wraps initializers that only convert to
	// the declared type explicitly: "int x = 1.5;" becomes
	// "int x = int(1.5);".
	AddExplicitTypeConversions bool
}

// DefaultOptions returns options with every insertion enabled.
func DefaultOptions() Options {
	return Options{
		AddSemicolons:              true,
		AddInlineSemicolons:        true,
		AddColons:                  true,
		AddParentheses:             true,
		AddCommas:                  true,
		AddExplicitTypeConversions: true,
	}
}

// Keys of Result.Counts.
const (
	CountSemicolons  = ";"
	CountColons      = ":"
	CountLeftParens  = "("
	CountRightParens = ")"
	CountCommas      = ","
	CountConversions = "type"
)

// Edit is a proposed insertion of Text at byte Offset of the source. Anchor
// is the token the insertion is placed against: the token it follows, or
// for "(" the token it precedes.
type Edit struct {
	Anchor Token
	Offset int
	Text   string
}

// Result is the output of a parse.
type Result struct {
	Module *Module

	// Edits are in the order they were discovered. Edits at the same offset
	// must be applied in this order.
	Edits []Edit

	// Counts maps the Count* keys to the number of insertions of each
	// kind. A conversion counts once for its pair of edits.
	Counts map[string]int
}

// Apply returns source with the edits inserted. Edits are applied in offset
// order; edits at the same offset keep their relative order. Offsets are
// clamped to the source.
func Apply(source string, edits []Edit) string {
	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b Edit) int {
		return cmp.Compare(a.Offset, b.Offset)
	})

	var sb strings.Builder
	sb.Grow(len(source) + 2*len(edits))
	prev := 0
	for _, e := range sorted {
		offset := min(max(e.Offset, prev), len(source))
		sb.WriteString(source[prev:offset])
		sb.WriteString(e.Text)
		prev = offset
	}
	sb.WriteString(source[prev:])
	return sb.String()
}
