// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

// GLSL word tables. Every word here is lexed as its own token kind rather
// than as an identifier. Type names are not listed: "float" and
// "vec3" are identifiers, resolved later through the types package.

// qualifiers maps each qualifier keyword to its class.
var qualifiers = map[string]QualifierClass{
	"const":     QualifierStorage,
	"in":        QualifierStorage,
	"out":       QualifierStorage,
	"inout":     QualifierStorage,
	"attribute": QualifierStorage,
	"varying":   QualifierStorage,
	"uniform":   QualifierStorage,
	"buffer":    QualifierStorage,
	"shared":    QualifierStorage,

	"centroid": QualifierAuxiliary,
	"sample":   QualifierAuxiliary,
	"patch":    QualifierAuxiliary,

	"smooth":        QualifierInterpolation,
	"flat":          QualifierInterpolation,
	"noperspective": QualifierInterpolation,

	"highp":   QualifierPrecision,
	"mediump": QualifierPrecision,
	"lowp":    QualifierPrecision,

	"invariant": QualifierVariance,
	"precise":   QualifierPrecise,

	"coherent":  QualifierMemory,
	"volatile":  QualifierMemory,
	"restrict":  QualifierMemory,
	"readonly":  QualifierMemory,
	"writeonly": QualifierMemory,
}

// keywords maps the reserved words that get their own token kind.
var keywords = map[string]TokenKind{
	"precision": TokenPrecision,
	"struct":    TokenStruct,
	"layout":    TokenLayout,
	"if":        TokenIf,
	"else":      TokenElse,
	"for":       TokenFor,
	"while":     TokenWhile,
	"do":        TokenDo,
	"break":     TokenBreak,
	"continue":  TokenContinue,
	"switch":    TokenSwitch,
	"case":      TokenCase,
	"default":   TokenDefault,
	"return":    TokenReturn,
	"discard":   TokenDiscard,
}
