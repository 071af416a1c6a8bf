// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// LexOptions configures tokenization.
type LexOptions struct {
	// KeepIgnored retains whitespace, comment and preprocessor tokens in the
	// output. Token positions are the same either way.
	KeepIgnored bool
}

// rule is one entry of the lexer's rule table. match returns the length of
// the match at the start of its argument, or 0.
type rule struct {
	kind  TokenKind
	match func(src string) int
	props func(tok *Token)
}

// rules is ordered: when two rules match the same length, the earlier one
// wins. Keywords therefore come before identifiers, and "in" only lexes as a
// qualifier when no longer identifier ("int", "inout") matches.
var rules = buildRules()

func buildRules() []rule {
	r := []rule{
		{kind: TokenPreprocessor, match: matchPreprocessor},
		{kind: TokenComment, match: matchComment},
		{kind: TokenNewline, match: matchNewlines},
		{kind: TokenWhitespace, match: matchWhitespace},

		// Literal forms are prefixes of one another, most specific first.
		{kind: TokenLiteral, match: matchDouble, props: literal(LiteralDouble)},
		{kind: TokenLiteral, match: matchFloat, props: literal(LiteralFloat)},
		{kind: TokenLiteral, match: matchUint, props: literal(LiteralUint)},
		{kind: TokenLiteral, match: matchInt, props: literal(LiteralInt)},
		{kind: TokenLiteral, match: word("true"), props: literal(LiteralBool)},
		{kind: TokenLiteral, match: word("false"), props: literal(LiteralBool)},

		{kind: TokenQualifier, match: wordIn(qualifiers), props: func(tok *Token) {
			tok.Qualifier = qualifiers[tok.Lexeme]
		}},
	}
	for text, kind := range keywords {
		r = append(r, rule{kind: kind, match: word(text)})
	}
	r = append(r,
		rule{kind: TokenIdent, match: matchIdent},

		rule{kind: TokenColon, match: exact(":")},
		rule{kind: TokenSemicolon, match: exact(";")},
		rule{kind: TokenComma, match: exact(",")},
		rule{kind: TokenDot, match: exact(".")},
		rule{kind: TokenLeftParen, match: exact("(")},
		rule{kind: TokenRightParen, match: exact(")")},
		rule{kind: TokenLeftBrace, match: exact("{")},
		rule{kind: TokenRightBrace, match: exact("}")},
		rule{kind: TokenLeftBracket, match: exact("[")},
		rule{kind: TokenRightBracket, match: exact("]")},

		rule{kind: TokenOperator, match: matchOperator, props: func(tok *Token) {
			tok.Operators = operators[tok.Lexeme]
		}},
	)
	return r
}

// Lexer tokenizes GLSL source code.
type Lexer struct {
	source string
	opts   LexOptions
	pos    Position
	tokens []Token
}

// NewLexer creates a new lexer for the given source.
func NewLexer(source string, opts LexOptions) *Lexer {
	// Estimate ~1 token per 4 characters of source.
	estTokens := len(source) / 4
	if estTokens < 16 {
		estTokens = 16
	}
	return &Lexer{
		source: source,
		opts:   opts,
		pos:    Position{Offset: 0, Line: 1, Column: 1},
		tokens: make([]Token, 0, estTokens),
	}
}

// Lex tokenizes source. It is shorthand for NewLexer(source, opts).Tokenize().
func Lex(source string, opts LexOptions) []Token {
	return NewLexer(source, opts).Tokenize()
}

// Tokenize returns all tokens from the source, terminated by a single EOF
// token with empty text. It never fails: input no rule matches becomes
// one-rune Error tokens.
func (l *Lexer) Tokenize() []Token {
	for l.pos.Offset < len(l.source) {
		tok := l.next()
		if tok.IsIgnored() && !l.opts.KeepIgnored {
			continue
		}
		l.tokens = append(l.tokens, tok)
	}

	l.tokens = append(l.tokens, Token{
		Kind:  TokenEOF,
		Start: l.pos,
		End:   l.pos,
	})

	return l.tokens
}

// next scans the longest token at the current position.
func (l *Lexer) next() Token {
	rest := l.source[l.pos.Offset:]

	best, length := -1, 0
	for i := range rules {
		if n := rules[i].match(rest); n > length {
			best, length = i, n
		}
	}

	tok := Token{Kind: TokenError, Start: l.pos}
	if best < 0 {
		_, length = utf8.DecodeRuneInString(rest)
	} else {
		tok.Kind = rules[best].kind
	}
	tok.Lexeme = rest[:length]
	l.advance(tok.Lexeme)
	tok.End = l.pos

	if best >= 0 && rules[best].props != nil {
		rules[best].props(&tok)
	}
	return tok
}

func (l *Lexer) advance(text string) {
	for _, r := range text {
		if r == '\n' {
			l.pos.Line++
			l.pos.Column = 1
		} else {
			l.pos.Column++
		}
	}
	l.pos.Offset += len(text)
}

func literal(kind LiteralKind) func(*Token) {
	return func(tok *Token) { tok.Literal = kind }
}

func exact(text string) func(string) int {
	return func(s string) int {
		if strings.HasPrefix(s, text) {
			return len(text)
		}
		return 0
	}
}

// word matches text only as a whole identifier-shaped word.
func word(text string) func(string) int {
	return func(s string) int {
		if matchIdent(s) == len(text) && strings.HasPrefix(s, text) {
			return len(text)
		}
		return 0
	}
}

func wordIn[V any](set map[string]V) func(string) int {
	return func(s string) int {
		n := matchIdent(s)
		if _, ok := set[s[:n]]; ok && n > 0 {
			return n
		}
		return 0
	}
}

func matchIdent(s string) int {
	if len(s) == 0 || !isIdentStart(s[0]) {
		return 0
	}
	n := 1
	for n < len(s) && (isIdentStart(s[n]) || isDigit(s[n])) {
		n++
	}
	return n
}

func matchWhitespace(s string) int {
	n := 0
	for n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		if r == '\n' || !unicode.IsSpace(r) {
			break
		}
		n += size
	}
	// A carriage return belongs to the line break after it.
	if n > 0 && s[n-1] == '\r' && n < len(s) && s[n] == '\n' {
		n--
	}
	return n
}

func matchNewlines(s string) int {
	n := 0
	for {
		switch {
		case strings.HasPrefix(s[n:], "\n"):
			n++
		case strings.HasPrefix(s[n:], "\r\n"):
			n += 2
		default:
			return n
		}
	}
}

func matchComment(s string) int {
	switch {
	case strings.HasPrefix(s, "//"):
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			return len(s)
		}
		return len(strings.TrimSuffix(s[:i], "\r"))
	case strings.HasPrefix(s, "/*"):
		i := strings.Index(s[2:], "*/")
		if i < 0 {
			return len(s)
		}
		return i + 4
	}
	return 0
}

// matchPreprocessor matches a directive up to, not including, the line
// break that ends it. A backslash before the line break continues it.
func matchPreprocessor(s string) int {
	if !strings.HasPrefix(s, "#") {
		return 0
	}
	n := 0
	for {
		i := strings.IndexByte(s[n:], '\n')
		if i < 0 {
			return len(s)
		}
		line := strings.TrimSuffix(s[n:n+i], "\r")
		if !strings.HasSuffix(line, "\\") {
			return n + len(line)
		}
		n += i + 1
	}
}

func matchOperator(s string) int {
	for n := min(3, len(s)); n > 0; n-- {
		if _, ok := operators[s[:n]]; ok {
			return n
		}
	}
	return 0
}

// matchInt matches a decimal, octal or hexadecimal integer. Octal constants
// are digit runs too, so the decimal scan covers them.
func matchInt(s string) int {
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		if n := span(s[2:], isHexDigit); n > 0 {
			return n + 2
		}
	}
	return span(s, isDigit)
}

func matchUint(s string) int {
	n := matchInt(s)
	if n > 0 && n < len(s) && (s[n] == 'u' || s[n] == 'U') {
		return n + 1
	}
	return 0
}

// matchFloatBody matches "1.5", "1.", ".5" with an optional exponent, or
// "1e5", without a suffix.
func matchFloatBody(s string) int {
	whole := span(s, isDigit)
	n := whole
	fraction := false
	if n < len(s) && s[n] == '.' {
		frac := span(s[n+1:], isDigit)
		if whole == 0 && frac == 0 {
			return 0
		}
		n += 1 + frac
		fraction = true
	} else if whole == 0 {
		return 0
	}

	exp := matchExponent(s[n:])
	if !fraction && exp == 0 {
		return 0
	}
	return n + exp
}

func matchExponent(s string) int {
	if len(s) == 0 || (s[0] != 'e' && s[0] != 'E') {
		return 0
	}
	n := 1
	if n < len(s) && (s[n] == '+' || s[n] == '-') {
		n++
	}
	d := span(s[n:], isDigit)
	if d == 0 {
		return 0
	}
	return n + d
}

func matchFloat(s string) int {
	n := matchFloatBody(s)
	if n > 0 && n < len(s) && (s[n] == 'f' || s[n] == 'F') {
		n++
	}
	return n
}

func matchDouble(s string) int {
	n := matchFloatBody(s)
	if n > 0 && (strings.HasPrefix(s[n:], "lf") || strings.HasPrefix(s[n:], "LF")) {
		return n + 2
	}
	return 0
}

func span(s string, ok func(byte) bool) int {
	n := 0
	for n < len(s) && ok(s[n]) {
		n++
	}
	return n
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
