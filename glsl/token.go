// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"strconv"
	"strings"

	"github.com/gogpu/asi/types"
)

// TokenKind represents the category of a token.
type TokenKind uint8

const (
	TokenEOF TokenKind = iota
	TokenError

	// Ignored by the parser
	TokenPreprocessor
	TokenComment
	TokenWhitespace

	// A run of line breaks
	TokenNewline

	// Keywords
	TokenPrecision
	TokenStruct
	TokenLayout
	TokenQualifier
	TokenIf
	TokenElse
	TokenFor
	TokenWhile
	TokenDo
	TokenBreak
	TokenContinue
	TokenSwitch
	TokenCase
	TokenDefault
	TokenReturn
	TokenDiscard

	TokenLiteral
	TokenIdent

	// Punctuation
	TokenColon        // :
	TokenSemicolon    // ;
	TokenComma        // ,
	TokenDot          // .
	TokenLeftParen    // (
	TokenRightParen   // )
	TokenLeftBrace    // {
	TokenRightBrace   // }
	TokenLeftBracket  // [
	TokenRightBracket // ]

	TokenOperator
)

var tokenKindNames = [...]string{
	TokenEOF:          "EOF",
	TokenError:        "Error",
	TokenPreprocessor: "Preprocessor",
	TokenComment:      "Comment",
	TokenWhitespace:   "Whitespace",
	TokenNewline:      "Newline",
	TokenPrecision:    "precision",
	TokenStruct:       "struct",
	TokenLayout:       "layout",
	TokenQualifier:    "Qualifier",
	TokenIf:           "if",
	TokenElse:         "else",
	TokenFor:          "for",
	TokenWhile:        "while",
	TokenDo:           "do",
	TokenBreak:        "break",
	TokenContinue:     "continue",
	TokenSwitch:       "switch",
	TokenCase:         "case",
	TokenDefault:      "default",
	TokenReturn:       "return",
	TokenDiscard:      "discard",
	TokenLiteral:      "Literal",
	TokenIdent:        "Identifier",
	TokenColon:        ":",
	TokenSemicolon:    ";",
	TokenComma:        ",",
	TokenDot:          ".",
	TokenLeftParen:    "(",
	TokenRightParen:   ")",
	TokenLeftBrace:    "{",
	TokenRightBrace:   "}",
	TokenLeftBracket:  "[",
	TokenRightBracket: "]",
	TokenOperator:     "Operator",
}

// String returns the string representation of the token kind.
func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) && tokenKindNames[k] != "" {
		return tokenKindNames[k]
	}
	return "Unknown"
}

// OperatorClass is a set of syntactic roles an operator lexeme can play.
// "-" is both OpUnary and OpAdditive, "++" both OpUnary and OpPostfix.
type OperatorClass uint16

const (
	OpUnary OperatorClass = 1 << iota
	OpPostfix
	OpMultiplicative
	OpAdditive
	OpShift
	OpRelational
	OpEquality
	OpBitAnd
	OpBitXor
	OpBitOr
	OpLogicalAnd
	OpLogicalXor
	OpLogicalOr
	OpConditional
	OpAssignment
)

var operatorClassNames = []struct {
	class OperatorClass
	name  string
}{
	{OpUnary, "unary"},
	{OpPostfix, "postfix"},
	{OpMultiplicative, "multiplicative"},
	{OpAdditive, "additive"},
	{OpShift, "shift"},
	{OpRelational, "relational"},
	{OpEquality, "equality"},
	{OpBitAnd, "bit-and"},
	{OpBitXor, "bit-xor"},
	{OpBitOr, "bit-or"},
	{OpLogicalAnd, "logical-and"},
	{OpLogicalXor, "logical-xor"},
	{OpLogicalOr, "logical-or"},
	{OpConditional, "conditional"},
	{OpAssignment, "assignment"},
}

// String lists the roles in c separated by '|'.
func (c OperatorClass) String() string {
	var parts []string
	for _, n := range operatorClassNames {
		if c&n.class != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// operators maps every operator lexeme to its roles.
var operators = map[string]OperatorClass{
	"++": OpUnary | OpPostfix,
	"--": OpUnary | OpPostfix,
	"~":  OpUnary,
	"!":  OpUnary,
	"*":  OpMultiplicative,
	"/":  OpMultiplicative,
	"%":  OpMultiplicative,
	"+":  OpUnary | OpAdditive,
	"-":  OpUnary | OpAdditive,
	"<<": OpShift,
	">>": OpShift,
	"<":  OpRelational,
	"<=": OpRelational,
	">":  OpRelational,
	">=": OpRelational,
	"==": OpEquality,
	"!=": OpEquality,
	"&":  OpBitAnd,
	"^":  OpBitXor,
	"|":  OpBitOr,
	"&&": OpLogicalAnd,
	"^^": OpLogicalXor,
	"||": OpLogicalOr,
	"?":  OpConditional,

	"=":   OpAssignment,
	"+=":  OpAssignment,
	"-=":  OpAssignment,
	"*=":  OpAssignment,
	"/=":  OpAssignment,
	"%=":  OpAssignment,
	"<<=": OpAssignment,
	">>=": OpAssignment,
	"&=":  OpAssignment,
	"^=":  OpAssignment,
	"|=":  OpAssignment,
}

// LiteralKind is the subtype of a literal token.
type LiteralKind uint8

const (
	LiteralNone LiteralKind = iota
	LiteralBool
	LiteralInt
	LiteralUint
	LiteralFloat
	LiteralDouble
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralBool:
		return "bool"
	case LiteralInt:
		return "int"
	case LiteralUint:
		return "uint"
	case LiteralFloat:
		return "float"
	case LiteralDouble:
		return "double"
	default:
		return "none"
	}
}

// Type returns the scalar type of a literal of kind k.
func (k LiteralKind) Type() types.Type {
	switch k {
	case LiteralBool:
		return types.Bool
	case LiteralInt:
		return types.Int
	case LiteralUint:
		return types.Uint
	case LiteralFloat:
		return types.Float
	case LiteralDouble:
		return types.Double
	default:
		return types.Error
	}
}

// QualifierClass groups qualifier keywords. A declaration may carry one
// qualifier of each class.
type QualifierClass uint8

const (
	QualifierNone QualifierClass = iota
	QualifierStorage
	QualifierAuxiliary
	QualifierInterpolation
	QualifierPrecision
	QualifierVariance
	QualifierPrecise
	QualifierMemory
)

func (c QualifierClass) String() string {
	switch c {
	case QualifierStorage:
		return "storage"
	case QualifierAuxiliary:
		return "auxiliary"
	case QualifierInterpolation:
		return "interpolation"
	case QualifierPrecision:
		return "precision"
	case QualifierVariance:
		return "variance"
	case QualifierPrecise:
		return "precise"
	case QualifierMemory:
		return "memory"
	default:
		return "none"
	}
}

// Position is a location in source code. Offset is a byte offset; Line and
// Column are 1-based, with columns counted in runes.
type Position struct {
	Offset int
	Line   int
	Column int
}

// Token represents a lexical token. Start and End delimit Lexeme in the
// source; End is exclusive.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Start  Position
	End    Position

	Operators OperatorClass  // TokenOperator only
	Literal   LiteralKind    // TokenLiteral only
	Qualifier QualifierClass // TokenQualifier only
}

// IsIgnored reports whether the parser skips t unconditionally: whitespace,
// comments and preprocessor directives.
func (t Token) IsIgnored() bool {
	switch t.Kind {
	case TokenWhitespace, TokenComment, TokenPreprocessor:
		return true
	}
	return false
}

// IsSignificant reports whether t is neither ignored nor a line break.
func (t Token) IsSignificant() bool {
	return !t.IsIgnored() && t.Kind != TokenNewline
}

// Has reports whether t is an operator that can play any of the roles in op.
func (t Token) Has(op OperatorClass) bool {
	return t.Kind == TokenOperator && t.Operators&op != 0
}

// Is reports whether t has the given kind and, if text is not empty, the
// given lexeme.
func (t Token) Is(kind TokenKind, text string) bool {
	return t.Kind == kind && (text == "" || t.Lexeme == text)
}

// String returns a short description of t for diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case TokenEOF:
		return "EOF"
	case TokenNewline:
		return "Newline"
	case TokenIdent, TokenLiteral, TokenQualifier, TokenOperator, TokenError:
		return t.Kind.String() + " " + strconv.Quote(t.Lexeme)
	default:
		return strconv.Quote(t.Lexeme)
	}
}
