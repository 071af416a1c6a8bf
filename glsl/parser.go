// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"strconv"

	"github.com/gogpu/asi/types"
)

// Parser parses GLSL tokens into an AST, recording the punctuation it had to
// assume along the way.
//
// Missing semicolons, colons, parentheses and commas are not errors: the
// parser continues as if the token were present and appends an Edit that
// would insert it. Only a token that no recovery can explain aborts the
// parse with a *ParseError.
type Parser struct {
	tokens  []Token
	source  string
	opts    Options
	current int   // index of the next unconsumed token
	last    Token // last consumed significant token

	module *Module
	edits  []Edit
	counts map[string]int
}

// NewParser creates a new parser for the given tokens. Ignored tokens and
// newlines may be present; a missing trailing EOF token is added.
func NewParser(tokens []Token, opts Options) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != TokenEOF {
		var end Position
		if len(tokens) > 0 {
			end = tokens[len(tokens)-1].End
		}
		tokens = append(tokens[:len(tokens):len(tokens)], Token{Kind: TokenEOF, Start: end, End: end})
	}
	return &Parser{
		tokens: tokens,
		opts:   opts,
		module: &Module{},
		counts: make(map[string]int),
	}
}

// SetSource attaches the source text the tokens were produced from. It is
// only used to show context in errors.
func (p *Parser) SetSource(source string) {
	p.source = source
}

// Parse parses the tokens.
func Parse(tokens []Token, opts Options) (*Result, error) {
	return NewParser(tokens, opts).Parse()
}

// ParseWithSource parses the tokens, reporting errors with context from
// source.
func ParseWithSource(tokens []Token, source string, opts Options) (*Result, error) {
	p := NewParser(tokens, opts)
	p.SetSource(source)
	return p.Parse()
}

// ParseString tokenizes and parses source.
func ParseString(source string, opts Options) (*Result, error) {
	return ParseWithSource(Lex(source, LexOptions{}), source, opts)
}

// Parse parses the whole token stream. Declarations and statements are both
// accepted at file scope.
func (p *Parser) Parse() (*Result, error) {
	for !p.check(TokenEOF) {
		decl, err := p.declOrStatement()
		if err != nil {
			return nil, err
		}
		p.module.Decls = append(p.module.Decls, decl)
	}

	return &Result{
		Module: p.module,
		Edits:  p.edits,
		Counts: p.counts,
	}, nil
}

// ---------------------------------------------------------------------------
// Token cursor
// ---------------------------------------------------------------------------

// expectation describes an acceptable token: a kind, optionally narrowed to
// one lexeme.
type expectation struct {
	kind TokenKind
	text string
}

func is(kind TokenKind) expectation { return expectation{kind: kind} }

func isText(kind TokenKind, text string) expectation {
	return expectation{kind: kind, text: text}
}

func (e expectation) String() string {
	switch {
	case e.text != "":
		return strconv.Quote(e.text)
	case e.kind >= TokenColon && e.kind <= TokenRightBracket:
		return strconv.Quote(e.kind.String())
	default:
		return e.kind.String()
	}
}

// skip returns the index of the first token at or after i that is neither
// ignored nor, unless strict, a newline. It stops at the EOF token.
func (p *Parser) skip(i int, strict bool) int {
	for i < len(p.tokens)-1 {
		tok := p.tokens[i]
		if !tok.IsIgnored() && (strict || tok.Kind != TokenNewline) {
			break
		}
		i++
	}
	return i
}

// index returns the position of the k-th token ahead of the cursor,
// skipping ignored tokens and, unless strict, newlines.
func (p *Parser) index(k int, strict bool) int {
	i := p.skip(p.current, strict)
	for ; k > 0 && i < len(p.tokens)-1; k-- {
		i = p.skip(i+1, strict)
	}
	return i
}

// peek returns the k-th significant token ahead, looking through line
// breaks.
func (p *Parser) peek(k int) Token {
	return p.tokens[p.index(k, false)]
}

// peekStrict is peek without skipping newlines. It tells whether a line
// break separates the cursor from the next token.
func (p *Parser) peekStrict(k int) Token {
	return p.tokens[p.index(k, true)]
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek(0).Kind == kind
}

// advance consumes the next significant token. If expectations are given
// the token must satisfy one of them.
func (p *Parser) advance(expected ...expectation) (Token, *ParseError) {
	i := p.index(0, false)
	tok := p.tokens[i]
	if len(expected) > 0 && !matches(tok, expected) {
		return tok, p.errorAt(tok, expected...)
	}
	if tok.Kind != TokenEOF {
		p.current = i + 1
	}
	p.last = tok
	return tok, nil
}

// advanceIf consumes the next significant token if it satisfies one of the
// expectations.
func (p *Parser) advanceIf(expected ...expectation) (Token, bool) {
	tok := p.peek(0)
	if !matches(tok, expected) {
		return Token{}, false
	}
	p.advance()
	return tok, true
}

func matches(tok Token, expected []expectation) bool {
	for _, e := range expected {
		if tok.Is(e.kind, e.text) {
			return true
		}
	}
	return false
}

func (p *Parser) errorAt(tok Token, expected ...expectation) *ParseError {
	err := &ParseError{Token: tok, Source: p.source}
	for _, e := range expected {
		err.Expected = append(err.Expected, e.String())
	}
	return err
}

// ---------------------------------------------------------------------------
// Recovery
// ---------------------------------------------------------------------------

func (p *Parser) insert(anchor Token, offset int, text, key string, enabled bool) {
	if !enabled {
		return
	}
	p.edits = append(p.edits, Edit{Anchor: anchor, Offset: offset, Text: text})
	p.counts[key]++
}

// insertAfterLast records text right after the last consumed token.
func (p *Parser) insertAfterLast(text, key string, enabled bool) {
	p.insert(p.last, p.last.End.Offset, text, key, enabled)
}

// expectSemicolon consumes every consecutive semicolon, or records one
// where the statement ends.
func (p *Parser) expectSemicolon() {
	if !p.check(TokenSemicolon) {
		p.missingSemicolon()
		return
	}
	for p.check(TokenSemicolon) {
		p.advance()
	}
}

// expectSingleSemicolon is expectSemicolon for the clauses of a for
// statement, where ";;" separates two clauses.
func (p *Parser) expectSingleSemicolon() {
	if _, ok := p.advanceIf(is(TokenSemicolon)); !ok {
		p.missingSemicolon()
	}
}

// missingSemicolon records a semicolon after the last token. The gap is
// inline when the next statement starts on the same line.
func (p *Parser) missingSemicolon() {
	next := p.peek(0)
	inline := next.Start.Line == p.last.End.Line &&
		next.Kind != TokenRightBrace && next.Kind != TokenEOF
	enabled := p.opts.AddSemicolons
	if inline {
		enabled = p.opts.AddInlineSemicolons
	}
	p.insertAfterLast(";", CountSemicolons, enabled)
}

func (p *Parser) expectColon() {
	if _, ok := p.advanceIf(is(TokenColon)); !ok {
		p.insertAfterLast(":", CountColons, p.opts.AddColons)
	}
}

func (p *Parser) expectComma() {
	if _, ok := p.advanceIf(is(TokenComma)); !ok {
		p.insertAfterLast(",", CountCommas, p.opts.AddCommas)
	}
}

func (p *Parser) expectRightParen() {
	if _, ok := p.advanceIf(is(TokenRightParen)); !ok {
		p.insertAfterLast(")", CountRightParens, p.opts.AddParentheses)
	}
}

// expectLeftParen records a missing "(" in front of the next token.
func (p *Parser) expectLeftParen() {
	if _, ok := p.advanceIf(is(TokenLeftParen)); !ok {
		next := p.peek(0)
		p.insert(next, next.Start.Offset, "(", CountLeftParens, p.opts.AddParentheses)
	}
}

// ---------------------------------------------------------------------------
// Declarations
// ---------------------------------------------------------------------------

// declOrStatement parses one item of a block or of the file scope.
//
// An identifier followed by another identifier (possibly after array
// dimensions) starts a declaration, a function if a "(" follows the second
// identifier. Everything else without a dedicated keyword is a statement.
func (p *Parser) declOrStatement() (Decl, *ParseError) {
	switch p.peek(0).Kind {
	case TokenPrecision:
		return p.precisionDecl()
	case TokenLayout, TokenQualifier:
		return p.qualifiedDecl()
	case TokenStruct:
		return p.structDecl(Qualifiers{}, p.peek(0))
	case TokenIdent:
		if p.isDeclarationStart() {
			return p.typedDecl(Qualifiers{})
		}
	}
	return p.statement()
}

// isDeclarationStart reports whether the cursor is at "Type name" or
// "Type[...] name".
func (p *Parser) isDeclarationStart() bool {
	i := p.index(0, false)
	if p.tokens[i].Kind != TokenIdent {
		return false
	}
	// One forward scan: the bracket run may be arbitrarily long.
	next := func() Token {
		if i < len(p.tokens)-1 {
			i = p.skip(i+1, false)
		}
		return p.tokens[i]
	}

	tok := next()
	for tok.Kind == TokenLeftBracket {
		depth := 0
		for {
			switch tok.Kind {
			case TokenLeftBracket:
				depth++
			case TokenRightBracket:
				depth--
			case TokenEOF, TokenSemicolon, TokenLeftBrace, TokenRightBrace:
				return false
			}
			tok = next()
			if depth == 0 {
				break
			}
		}
	}
	return tok.Kind == TokenIdent
}

// qualifiers parses any mix of layout(...) and qualifier keywords. Later
// qualifiers of an already present class are consumed and dropped.
func (p *Parser) qualifiers() (Qualifiers, *ParseError) {
	var q Qualifiers
	for {
		switch tok := p.peek(0); tok.Kind {
		case TokenLayout:
			params, err := p.layout()
			if err != nil {
				return q, err
			}
			q.Layout = append(q.Layout, params...)
		case TokenQualifier:
			p.advance()
			if _, dup := q.Class(tok.Qualifier); !dup {
				q.Tokens = append(q.Tokens, tok)
			}
		default:
			return q, nil
		}
	}
}

// layout parses "layout(name [= value], ...)". The parameters belong to the
// declaration that follows; layout has no node of its own.
func (p *Parser) layout() ([]LayoutParam, *ParseError) {
	if _, err := p.advance(is(TokenLayout)); err != nil {
		return nil, err
	}
	if _, err := p.advance(is(TokenLeftParen)); err != nil {
		return nil, err
	}

	var params []LayoutParam
	for !p.check(TokenRightParen) {
		name, err := p.advance(is(TokenIdent), isText(TokenQualifier, "shared"))
		if err != nil {
			return nil, err
		}
		param := LayoutParam{Name: name, Value: NoExpr}
		if _, ok := p.advanceIf(isText(TokenOperator, "=")); ok {
			if param.Value, err = p.assignment(); err != nil {
				return nil, err
			}
		}
		params = append(params, param)
		if _, ok := p.advanceIf(is(TokenComma)); !ok {
			break
		}
	}
	p.expectRightParen()
	return params, nil
}

// qualifiedDecl parses a declaration that starts with qualifiers.
func (p *Parser) qualifiedDecl() (Decl, *ParseError) {
	start := p.peek(0)
	quals, err := p.qualifiers()
	if err != nil {
		return nil, err
	}

	switch next := p.peek(0); {
	case next.Kind == TokenStruct:
		return p.structDecl(quals, start)
	case next.Kind == TokenSemicolon:
		p.expectSemicolon()
		return &QualifierDecl{Qualifiers: quals, Span: p.spanFrom(start)}, nil
	case next.Kind == TokenIdent && p.peek(1).Kind == TokenLeftBrace:
		return p.interfaceDecl(quals, start)
	case next.Kind == TokenIdent && (p.peek(1).Kind == TokenSemicolon || p.peek(1).Kind == TokenComma):
		return p.qualifierDecl(quals, start)
	case next.Kind == TokenIdent:
		return p.typedDeclFrom(quals, start)
	default:
		return nil, p.errorAt(next, is(TokenIdent), is(TokenStruct), is(TokenSemicolon))
	}
}

// qualifierDecl parses "invariant a, b;".
func (p *Parser) qualifierDecl(quals Qualifiers, start Token) (*QualifierDecl, *ParseError) {
	decl := &QualifierDecl{Qualifiers: quals}
	for {
		name, err := p.advance(is(TokenIdent))
		if err != nil {
			return nil, err
		}
		decl.Names = append(decl.Names, name)
		if _, ok := p.advanceIf(is(TokenComma)); !ok {
			break
		}
	}
	p.expectSemicolon()
	decl.Span = p.spanFrom(start)
	return decl, nil
}

// precisionDecl parses "precision highp float;".
func (p *Parser) precisionDecl() (*PrecisionDecl, *ParseError) {
	start, _ := p.advance()
	precision, err := p.advance(is(TokenQualifier))
	if err != nil {
		return nil, err
	}
	if precision.Qualifier != QualifierPrecision {
		return nil, p.errorAt(precision, isText(TokenQualifier, "highp"), isText(TokenQualifier, "mediump"), isText(TokenQualifier, "lowp"))
	}
	typ, err := p.typeSpec()
	if err != nil {
		return nil, err
	}
	p.expectSemicolon()
	return &PrecisionDecl{Precision: precision, Type: typ, Span: p.spanFrom(start)}, nil
}

// typedDecl parses a variable or function declaration starting at its type.
func (p *Parser) typedDecl(quals Qualifiers) (Decl, *ParseError) {
	return p.typedDeclFrom(quals, p.peek(0))
}

func (p *Parser) typedDeclFrom(quals Qualifiers, start Token) (Decl, *ParseError) {
	typ, err := p.typeSpec()
	if err != nil {
		return nil, err
	}
	name, err := p.advance(is(TokenIdent))
	if err != nil {
		return nil, err
	}

	if p.check(TokenLeftParen) {
		return p.functionDecl(quals, typ, name, start)
	}

	decl, err := p.varDeclRest(quals, typ, name, start)
	if err != nil {
		return nil, err
	}
	p.expectSemicolon()
	decl.Span = p.spanFrom(start)
	return decl, nil
}

// varDeclRest parses the declarators of a variable declaration, the first
// name already consumed. The terminating semicolon is left to the caller.
func (p *Parser) varDeclRest(quals Qualifiers, typ TypeSpec, name Token, start Token) (*VarDecl, *ParseError) {
	decl := &VarDecl{Qualifiers: quals, Type: typ}
	for {
		d := &Declarator{Name: name, Init: NoExpr}
		dims, err := p.arrayDims()
		if err != nil {
			return nil, err
		}
		d.Dims = dims

		if _, ok := p.advanceIf(isText(TokenOperator, "=")); ok {
			first := p.peek(0)
			if d.Init, err = p.initializer(); err != nil {
				return nil, err
			}
			p.convertInitializer(typ, d, first)
		}
		decl.Declarators = append(decl.Declarators, d)

		if _, ok := p.advanceIf(is(TokenComma)); !ok {
			break
		}
		if name, err = p.advance(is(TokenIdent)); err != nil {
			return nil, err
		}
	}
	decl.Span = p.spanFrom(start)
	return decl, nil
}

// convertInitializer wraps an initializer in a constructor of the declared
// type when its inferred type converts to the declared type explicitly but
// not implicitly. first is the first token of the initializer; the last one
// was just consumed.
func (p *Parser) convertInitializer(typ TypeSpec, d *Declarator, first Token) {
	if !p.opts.AddExplicitTypeConversions || len(typ.Dims) > 0 || len(d.Dims) > 0 {
		return
	}
	declared, ok := types.Lookup(typ.Name.Lexeme)
	if !ok {
		return
	}
	inferred := ResolveTypes(p.module, d.Init)[d.Init]
	if types.ImplicitlyConvertible(inferred, declared) || !types.ExplicitlyConvertible(inferred, declared) {
		return
	}

	p.edits = append(p.edits,
		Edit{Anchor: first, Offset: first.Start.Offset, Text: typ.Name.Lexeme + "("},
		Edit{Anchor: p.last, Offset: p.last.End.Offset, Text: ")"},
	)
	p.counts[CountConversions]++
}

// initializer parses an assignment expression or a brace initializer list.
func (p *Parser) initializer() (ExprHandle, *ParseError) {
	if p.check(TokenLeftBrace) {
		return p.initializerList()
	}
	return p.assignment()
}

// initializerList parses "{a, b, c}", allowing a trailing comma.
func (p *Parser) initializerList() (ExprHandle, *ParseError) {
	start, _ := p.advance()
	var elems []ExprHandle
	for !p.check(TokenRightBrace) {
		elem, err := p.initializer()
		if err != nil {
			return NoExpr, err
		}
		elems = append(elems, elem)
		if p.check(TokenRightBrace) {
			break
		}
		if !p.check(TokenComma) && !p.startsExpression(p.peek(0)) && !p.check(TokenLeftBrace) {
			break
		}
		p.expectComma()
	}
	if _, err := p.advance(is(TokenRightBrace)); err != nil {
		return NoExpr, err
	}
	return p.addExpr(ExprInitializerList{Elements: elems}, start), nil
}

// typeSpec parses a type name with optional array dimensions.
func (p *Parser) typeSpec() (TypeSpec, *ParseError) {
	name, err := p.advance(is(TokenIdent))
	if err != nil {
		return TypeSpec{}, err
	}
	dims, err := p.arrayDims()
	if err != nil {
		return TypeSpec{}, err
	}
	return TypeSpec{Name: name, Dims: dims}, nil
}

// arrayDims parses zero or more "[size]" or "[]" suffixes.
func (p *Parser) arrayDims() ([]ExprHandle, *ParseError) {
	var dims []ExprHandle
	for p.check(TokenLeftBracket) {
		p.advance()
		size := NoExpr
		if !p.check(TokenRightBracket) {
			var err *ParseError
			if size, err = p.expression(); err != nil {
				return nil, err
			}
		}
		if _, err := p.advance(is(TokenRightBracket)); err != nil {
			return nil, err
		}
		dims = append(dims, size)
	}
	return dims, nil
}

// functionDecl parses the parameter list and body of a function. Without a
// body the declaration is a prototype.
func (p *Parser) functionDecl(quals Qualifiers, ret TypeSpec, name Token, start Token) (*FunctionDecl, *ParseError) {
	decl := &FunctionDecl{Qualifiers: quals, ReturnType: ret, Name: name}
	p.advance() // (

	for !p.check(TokenRightParen) && !p.check(TokenLeftBrace) && !p.check(TokenSemicolon) {
		param, err := p.param()
		if err != nil {
			return nil, err
		}
		decl.Params = append(decl.Params, param)
		if _, ok := p.advanceIf(is(TokenComma)); !ok {
			break
		}
	}
	p.expectRightParen()

	if p.check(TokenLeftBrace) {
		body, err := p.block()
		if err != nil {
			return nil, err
		}
		decl.Body = body
	} else {
		p.expectSemicolon()
	}
	decl.Span = p.spanFrom(start)
	return decl, nil
}

// param parses "[qualifiers] type [name][dims]".
func (p *Parser) param() (*Param, *ParseError) {
	quals, err := p.qualifiers()
	if err != nil {
		return nil, err
	}
	typ, err := p.typeSpec()
	if err != nil {
		return nil, err
	}
	param := &Param{Qualifiers: quals, Type: typ}
	if name, ok := p.advanceIf(is(TokenIdent)); ok {
		param.Name = name
		if param.Dims, err = p.arrayDims(); err != nil {
			return nil, err
		}
	}
	return param, nil
}

// structDecl parses "struct [Name] { members } [instances];".
func (p *Parser) structDecl(quals Qualifiers, start Token) (*StructDecl, *ParseError) {
	p.advance() // struct

	decl := &StructDecl{Qualifiers: quals}
	decl.Name, _ = p.advanceIf(is(TokenIdent))

	var err *ParseError
	if decl.Members, err = p.memberList(); err != nil {
		return nil, err
	}
	if decl.Instances, err = p.instances(); err != nil {
		return nil, err
	}
	p.expectSemicolon()
	decl.Span = p.spanFrom(start)
	return decl, nil
}

// interfaceDecl parses "qualifiers Name { members } [instances];".
func (p *Parser) interfaceDecl(quals Qualifiers, start Token) (*InterfaceDecl, *ParseError) {
	name, _ := p.advance()
	decl := &InterfaceDecl{Qualifiers: quals, Name: name}

	var err *ParseError
	if decl.Members, err = p.memberList(); err != nil {
		return nil, err
	}
	if decl.Instances, err = p.instances(); err != nil {
		return nil, err
	}
	p.expectSemicolon()
	decl.Span = p.spanFrom(start)
	return decl, nil
}

// memberList parses the brace-delimited body shared by structs and
// interface blocks.
func (p *Parser) memberList() ([]*Member, *ParseError) {
	if _, err := p.advance(is(TokenLeftBrace)); err != nil {
		return nil, err
	}

	var members []*Member
	for !p.check(TokenRightBrace) && !p.check(TokenEOF) {
		start := p.peek(0)
		quals, err := p.qualifiers()
		if err != nil {
			return nil, err
		}
		typ, err := p.typeSpec()
		if err != nil {
			return nil, err
		}
		decls, err := p.declarators()
		if err != nil {
			return nil, err
		}
		p.expectSemicolon()
		members = append(members, &Member{
			Qualifiers:  quals,
			Type:        typ,
			Declarators: decls,
			Span:        p.spanFrom(start),
		})
	}

	if _, err := p.advance(is(TokenRightBrace)); err != nil {
		return nil, err
	}
	return members, nil
}

// instances parses the variables declared after a struct or block body.
// They must start on the line of the closing brace; otherwise the next line
// is a new declaration.
func (p *Parser) instances() ([]*Declarator, *ParseError) {
	if p.peekStrict(0).Kind != TokenIdent {
		return nil, nil
	}
	return p.declarators()
}

// declarators parses "name[dims], name[dims], ...", without initializers.
func (p *Parser) declarators() ([]*Declarator, *ParseError) {
	var out []*Declarator
	for {
		name, err := p.advance(is(TokenIdent))
		if err != nil {
			return nil, err
		}
		dims, err := p.arrayDims()
		if err != nil {
			return nil, err
		}
		out = append(out, &Declarator{Name: name, Dims: dims, Init: NoExpr})
		if _, ok := p.advanceIf(is(TokenComma)); !ok {
			return out, nil
		}
	}
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

func (p *Parser) statement() (Stmt, *ParseError) {
	switch tok := p.peek(0); tok.Kind {
	case TokenLeftBrace:
		return p.block()
	case TokenIf:
		return p.ifStmt()
	case TokenSwitch:
		return p.switchStmt()
	case TokenFor:
		return p.forStmt()
	case TokenWhile:
		return p.whileStmt()
	case TokenDo:
		return p.doWhileStmt()
	case TokenReturn:
		return p.returnStmt()
	case TokenBreak:
		p.advance()
		p.expectSemicolon()
		return &BreakStmt{Span: p.spanFrom(tok)}, nil
	case TokenContinue:
		p.advance()
		p.expectSemicolon()
		return &ContinueStmt{Span: p.spanFrom(tok)}, nil
	case TokenDiscard:
		p.advance()
		p.expectSemicolon()
		return &DiscardStmt{Span: p.spanFrom(tok)}, nil
	case TokenSemicolon:
		p.advance()
		return &EmptyStmt{Span: p.spanFrom(tok)}, nil
	default:
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		p.expectSemicolon()
		return &ExprStmt{Expr: expr, Span: p.spanFrom(tok)}, nil
	}
}

// block parses "{ ... }".
func (p *Parser) block() (*BlockStmt, *ParseError) {
	start, err := p.advance(is(TokenLeftBrace))
	if err != nil {
		return nil, err
	}
	block := &BlockStmt{}
	for !p.check(TokenRightBrace) && !p.check(TokenEOF) {
		decl, err := p.declOrStatement()
		if err != nil {
			return nil, err
		}
		block.Body = append(block.Body, decl)
	}
	if _, err := p.advance(is(TokenRightBrace)); err != nil {
		return nil, err
	}
	block.Span = p.spanFrom(start)
	return block, nil
}

// condition parses "( expression )" after if, while and switch.
func (p *Parser) condition() (ExprHandle, *ParseError) {
	p.expectLeftParen()
	cond, err := p.expression()
	if err != nil {
		return NoExpr, err
	}
	p.expectRightParen()
	return cond, nil
}

func (p *Parser) ifStmt() (*IfStmt, *ParseError) {
	start, _ := p.advance()
	cond, err := p.condition()
	if err != nil {
		return nil, err
	}
	stmt := &IfStmt{Cond: cond}
	if stmt.Then, err = p.statement(); err != nil {
		return nil, err
	}
	if _, ok := p.advanceIf(is(TokenElse)); ok {
		if stmt.Else, err = p.statement(); err != nil {
			return nil, err
		}
	}
	stmt.Span = p.spanFrom(start)
	return stmt, nil
}

func (p *Parser) whileStmt() (*WhileStmt, *ParseError) {
	start, _ := p.advance()
	cond, err := p.condition()
	if err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Cond: cond, Body: body, Span: p.spanFrom(start)}, nil
}

func (p *Parser) doWhileStmt() (*DoWhileStmt, *ParseError) {
	start, _ := p.advance()
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	if _, err := p.advance(is(TokenWhile)); err != nil {
		return nil, err
	}
	cond, err := p.condition()
	if err != nil {
		return nil, err
	}
	p.expectSemicolon()
	return &DoWhileStmt{Body: body, Cond: cond, Span: p.spanFrom(start)}, nil
}

// forStmt parses a for loop. Each clause may be empty; a semicolon, real or
// assumed, separates the clauses and ")" ends them.
func (p *Parser) forStmt() (*ForStmt, *ParseError) {
	start, _ := p.advance()
	p.expectLeftParen()
	stmt := &ForStmt{Cond: NoExpr, Update: NoExpr}

	switch tok := p.peek(0); {
	case tok.Kind == TokenSemicolon:
		p.advance()
	case tok.Kind == TokenQualifier || p.isDeclarationStart():
		quals, err := p.qualifiers()
		if err != nil {
			return nil, err
		}
		typ, err := p.typeSpec()
		if err != nil {
			return nil, err
		}
		name, err := p.advance(is(TokenIdent))
		if err != nil {
			return nil, err
		}
		decl, err := p.varDeclRest(quals, typ, name, tok)
		if err != nil {
			return nil, err
		}
		stmt.Init = decl
		p.expectSingleSemicolon()
	default:
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		stmt.Init = &ExprStmt{Expr: expr, Span: p.spanFrom(tok)}
		p.expectSingleSemicolon()
	}

	if _, ok := p.advanceIf(is(TokenSemicolon)); !ok {
		cond, err := p.expression()
		if err != nil {
			return nil, err
		}
		stmt.Cond = cond
		p.expectSingleSemicolon()
	}

	switch {
	case p.check(TokenRightParen):
		p.advance()
	case p.check(TokenLeftBrace):
		p.expectRightParen()
	default:
		update, err := p.expression()
		if err != nil {
			return nil, err
		}
		stmt.Update = update
		p.expectRightParen()
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	stmt.Span = p.spanFrom(start)
	return stmt, nil
}

// switchStmt parses a switch statement. Case bodies run to the next label;
// no break is implied.
func (p *Parser) switchStmt() (*SwitchStmt, *ParseError) {
	start, _ := p.advance()
	selector, err := p.condition()
	if err != nil {
		return nil, err
	}
	if _, err := p.advance(is(TokenLeftBrace)); err != nil {
		return nil, err
	}

	stmt := &SwitchStmt{Selector: selector}
	for !p.check(TokenRightBrace) && !p.check(TokenEOF) {
		label, err := p.advance(is(TokenCase), is(TokenDefault))
		if err != nil {
			return nil, err
		}
		c := &SwitchCase{Label: NoExpr, IsDefault: label.Kind == TokenDefault}
		if !c.IsDefault {
			if c.Label, err = p.expression(); err != nil {
				return nil, err
			}
		}
		p.expectColon()

		for !p.check(TokenCase) && !p.check(TokenDefault) && !p.check(TokenRightBrace) && !p.check(TokenEOF) {
			decl, err := p.declOrStatement()
			if err != nil {
				return nil, err
			}
			c.Body = append(c.Body, decl)
		}
		c.Span = p.spanFrom(label)
		stmt.Cases = append(stmt.Cases, c)
	}

	if _, err := p.advance(is(TokenRightBrace)); err != nil {
		return nil, err
	}
	stmt.Span = p.spanFrom(start)
	return stmt, nil
}

// returnStmt parses "return [value];". The value must start on the line of
// the return keyword.
func (p *Parser) returnStmt() (*ReturnStmt, *ParseError) {
	start, _ := p.advance()
	stmt := &ReturnStmt{Value: NoExpr}

	next := p.peek(0).Kind
	if next != TokenSemicolon && next != TokenRightBrace && next != TokenEOF &&
		p.peekStrict(0).Kind != TokenNewline {
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		stmt.Value = value
	}
	p.expectSemicolon()
	stmt.Span = p.spanFrom(start)
	return stmt, nil
}

// ---------------------------------------------------------------------------
// Expressions, lowest binding first
// ---------------------------------------------------------------------------

// expression parses a comma sequence.
func (p *Parser) expression() (ExprHandle, *ParseError) {
	first, err := p.assignment()
	if err != nil || !p.check(TokenComma) {
		return first, err
	}

	exprs := []ExprHandle{first}
	for {
		if _, ok := p.advanceIf(is(TokenComma)); !ok {
			break
		}
		next, err := p.assignment()
		if err != nil {
			return NoExpr, err
		}
		exprs = append(exprs, next)
	}
	return p.addExprSpan(ExprSequence{Exprs: exprs}, first), nil
}

// assignment is right-associative: "a = b = c" assigns c to b first.
func (p *Parser) assignment() (ExprHandle, *ParseError) {
	left, err := p.conditional()
	if err != nil {
		return NoExpr, err
	}
	if !p.peek(0).Has(OpAssignment) {
		return left, nil
	}
	op, _ := p.advance()
	right, err := p.assignment()
	if err != nil {
		return NoExpr, err
	}
	return p.addExprSpan(ExprAssignment{Binary{Op: op.Lexeme, Left: left, Right: right}}, left), nil
}

func (p *Parser) conditional() (ExprHandle, *ParseError) {
	cond, err := p.logicalOr()
	if err != nil {
		return NoExpr, err
	}
	if !p.peek(0).Has(OpConditional) {
		return cond, nil
	}
	p.advance()
	then, err := p.expression()
	if err != nil {
		return NoExpr, err
	}
	p.expectColon()
	els, err := p.assignment()
	if err != nil {
		return NoExpr, err
	}
	return p.addExprSpan(ExprConditional{Cond: cond, Then: then, Else: els}, cond), nil
}

// binaryLevel parses a left-associative chain of operators of class, with
// operands parsed by next.
func (p *Parser) binaryLevel(class OperatorClass, next func() (ExprHandle, *ParseError), build func(Binary) ExpressionKind) (ExprHandle, *ParseError) {
	left, err := next()
	if err != nil {
		return NoExpr, err
	}
	for p.peek(0).Has(class) {
		op, _ := p.advance()
		right, err := next()
		if err != nil {
			return NoExpr, err
		}
		left = p.addExprSpan(build(Binary{Op: op.Lexeme, Left: left, Right: right}), left)
	}
	return left, nil
}

func logical(b Binary) ExpressionKind    { return ExprLogical{b} }
func bitwise(b Binary) ExpressionKind    { return ExprBitwise{b} }
func comparison(b Binary) ExpressionKind { return ExprComparison{b} }
func shift(b Binary) ExpressionKind      { return ExprShift{b} }
func arithmetic(b Binary) ExpressionKind { return ExprArithmetic{b} }

func (p *Parser) logicalOr() (ExprHandle, *ParseError) {
	return p.binaryLevel(OpLogicalOr, p.logicalXor, logical)
}

func (p *Parser) logicalXor() (ExprHandle, *ParseError) {
	return p.binaryLevel(OpLogicalXor, p.logicalAnd, logical)
}

func (p *Parser) logicalAnd() (ExprHandle, *ParseError) {
	return p.binaryLevel(OpLogicalAnd, p.bitwiseOr, logical)
}

func (p *Parser) bitwiseOr() (ExprHandle, *ParseError) {
	return p.binaryLevel(OpBitOr, p.bitwiseXor, bitwise)
}

func (p *Parser) bitwiseXor() (ExprHandle, *ParseError) {
	return p.binaryLevel(OpBitXor, p.bitwiseAnd, bitwise)
}

func (p *Parser) bitwiseAnd() (ExprHandle, *ParseError) {
	return p.binaryLevel(OpBitAnd, p.equality, bitwise)
}

func (p *Parser) equality() (ExprHandle, *ParseError) {
	return p.binaryLevel(OpEquality, p.relational, comparison)
}

func (p *Parser) relational() (ExprHandle, *ParseError) {
	return p.binaryLevel(OpRelational, p.shift, comparison)
}

func (p *Parser) shift() (ExprHandle, *ParseError) {
	return p.binaryLevel(OpShift, p.additive, shift)
}

func (p *Parser) additive() (ExprHandle, *ParseError) {
	return p.binaryLevel(OpAdditive, p.multiplicative, arithmetic)
}

func (p *Parser) multiplicative() (ExprHandle, *ParseError) {
	return p.binaryLevel(OpMultiplicative, p.unary, arithmetic)
}

// unary parses prefix operators. They apply innermost first: in "-!x" the
// "!" binds to x.
func (p *Parser) unary() (ExprHandle, *ParseError) {
	var ops []Token
	for p.peek(0).Has(OpUnary) {
		op, _ := p.advance()
		ops = append(ops, op)
	}

	operand, err := p.postfix()
	if err != nil {
		return NoExpr, err
	}
	for i := len(ops) - 1; i >= 0; i-- {
		operand = p.addExpr(unaryKind(ops[i].Lexeme, operand, false), ops[i])
	}
	return operand, nil
}

func unaryKind(op string, operand ExprHandle, postfix bool) ExpressionKind {
	u := Unary{Op: op, Operand: operand, Postfix: postfix}
	switch op {
	case "!":
		return ExprUnaryLogical{u}
	case "~":
		return ExprUnaryBitwise{u}
	default:
		return ExprUnaryArithmetic{u}
	}
}

// postfix parses member access, indexing, calls and postfix "++"/"--". A
// "(" or postfix operator on a new line starts a new statement instead.
func (p *Parser) postfix() (ExprHandle, *ParseError) {
	expr, err := p.primary()
	if err != nil {
		return NoExpr, err
	}

	for {
		tok := p.peek(0)
		switch {
		case tok.Kind == TokenDot:
			p.advance()
			name, err := p.advance(is(TokenIdent))
			if err != nil {
				return NoExpr, err
			}
			expr = p.addExprSpan(ExprMember{Object: expr, Name: name.Lexeme}, expr)

		case tok.Kind == TokenLeftBracket:
			p.advance()
			index := NoExpr
			if !p.check(TokenRightBracket) {
				if index, err = p.expression(); err != nil {
					return NoExpr, err
				}
			}
			if _, err := p.advance(is(TokenRightBracket)); err != nil {
				return NoExpr, err
			}
			expr = p.addExprSpan(ExprIndex{Object: expr, Index: index}, expr)

		case tok.Kind == TokenLeftParen && p.peekStrict(0).Kind != TokenNewline:
			args, err := p.arguments()
			if err != nil {
				return NoExpr, err
			}
			expr = p.addExprSpan(ExprCall{Callee: expr, Args: args}, expr)

		case tok.Has(OpPostfix) && p.peekStrict(0).Kind != TokenNewline:
			p.advance()
			expr = p.addExprSpan(unaryKind(tok.Lexeme, expr, true), expr)

		default:
			return expr, nil
		}
	}
}

// arguments parses "(a, b, c)". A missing comma is assumed between two
// arguments on the same line; anything else ends the list.
func (p *Parser) arguments() ([]ExprHandle, *ParseError) {
	p.advance() // (
	var args []ExprHandle
	for !p.check(TokenRightParen) {
		arg, err := p.assignment()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if _, ok := p.advanceIf(is(TokenComma)); ok {
			continue
		}
		next := p.peekStrict(0)
		if !p.startsExpression(next) {
			break
		}
		p.expectComma()
	}
	p.expectRightParen()
	return args, nil
}

// startsExpression reports whether tok can begin an expression.
func (p *Parser) startsExpression(tok Token) bool {
	switch tok.Kind {
	case TokenIdent, TokenLiteral, TokenLeftParen:
		return true
	}
	return tok.Has(OpUnary)
}

func (p *Parser) primary() (ExprHandle, *ParseError) {
	tok := p.peek(0)
	switch tok.Kind {
	case TokenLeftParen:
		p.advance()
		inner, err := p.expression()
		if err != nil {
			return NoExpr, err
		}
		p.expectRightParen()
		// Parentheses only group; the span grows to cover them.
		p.module.Expr(inner).Span = p.spanFrom(tok)
		return inner, nil
	case TokenLiteral:
		p.advance()
		return p.addExpr(ExprLiteral{Kind: tok.Literal, Text: tok.Lexeme}, tok), nil
	case TokenIdent:
		p.advance()
		return p.addExpr(ExprIdent{Name: tok.Lexeme}, tok), nil
	default:
		return NoExpr, p.errorAt(tok, is(TokenIdent), is(TokenLiteral), is(TokenLeftParen))
	}
}

// ---------------------------------------------------------------------------
// Spans
// ---------------------------------------------------------------------------

// spanFrom returns the span from the start of tok to the end of the last
// consumed token.
func (p *Parser) spanFrom(tok Token) Span {
	return Span{Start: tok.Start, End: p.last.End}
}

func (p *Parser) addExpr(kind ExpressionKind, start Token) ExprHandle {
	return p.module.addExpr(kind, p.spanFrom(start))
}

// addExprSpan adds an expression spanning from the start of first to the
// last consumed token.
func (p *Parser) addExprSpan(kind ExpressionKind, first ExprHandle) ExprHandle {
	return p.module.addExpr(kind, Span{Start: p.module.Expr(first).Span.Start, End: p.last.End})
}
