// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

// ExprHandle is an index into Module.Expressions.
type ExprHandle uint32

// NoExpr marks an absent expression.
const NoExpr ExprHandle = ^ExprHandle(0)

// Valid reports whether h refers to an expression.
func (h ExprHandle) Valid() bool { return h != NoExpr }

// Expression is an entry of the expression arena.
type Expression struct {
	Kind ExpressionKind
	Span Span
}

// ExpressionKind represents the different kinds of expressions.
type ExpressionKind interface {
	expressionKind()
}

// Binary is the shape shared by every binary expression.
type Binary struct {
	Op    string
	Left  ExprHandle
	Right ExprHandle
}

func (b Binary) binary() Binary { return b }

// BinaryKind is implemented by every binary expression variant.
type BinaryKind interface {
	ExpressionKind
	binary() Binary
}

// Unary is the shape shared by every unary expression.
type Unary struct {
	Op      string
	Operand ExprHandle
	Postfix bool
}

func (u Unary) unary() Unary { return u }

// UnaryKind is implemented by every unary expression variant.
type UnaryKind interface {
	ExpressionKind
	unary() Unary
}

// ExprSequence represents "a, b, c".
type ExprSequence struct {
	Exprs []ExprHandle
}

// ExprInitializerList represents "{a, b, c}" in an initializer.
type ExprInitializerList struct {
	Elements []ExprHandle
}

// ExprConditional represents "cond ? a : b".
type ExprConditional struct {
	Cond ExprHandle
	Then ExprHandle
	Else ExprHandle
}

// ExprAssignment represents "=" and the compound assignments.
type ExprAssignment struct{ Binary }

// ExprLogical represents "&&", "^^" and "||".
type ExprLogical struct{ Binary }

// ExprBitwise represents "&", "^" and "|".
type ExprBitwise struct{ Binary }

// ExprShift represents "<<" and ">>".
type ExprShift struct{ Binary }

// ExprComparison represents the equality and relational operators.
type ExprComparison struct{ Binary }

// ExprArithmetic represents "+", "-", "*", "/" and "%".
type ExprArithmetic struct{ Binary }

// ExprUnaryArithmetic represents "+", "-", "++" and "--" in prefix or
// postfix position.
type ExprUnaryArithmetic struct{ Unary }

// ExprUnaryLogical represents "!".
type ExprUnaryLogical struct{ Unary }

// ExprUnaryBitwise represents "~".
type ExprUnaryBitwise struct{ Unary }

// ExprCall represents a function or constructor call.
type ExprCall struct {
	Callee ExprHandle
	Args   []ExprHandle
}

// ExprMember represents field access or a swizzle: "v.xyz".
type ExprMember struct {
	Object ExprHandle
	Name   string
}

// ExprIndex represents "a[i]". Index is NoExpr for "a[]", which appears in
// array constructors such as "float[](1.0, 2.0)".
type ExprIndex struct {
	Object ExprHandle
	Index  ExprHandle
}

// ExprIdent represents a reference to a name.
type ExprIdent struct {
	Name string
}

// ExprLiteral represents a bool or numeric literal.
type ExprLiteral struct {
	Kind LiteralKind
	Text string
}

func (ExprSequence) expressionKind()        {}
func (ExprInitializerList) expressionKind() {}
func (ExprConditional) expressionKind()     {}
func (ExprAssignment) expressionKind()      {}
func (ExprLogical) expressionKind()         {}
func (ExprBitwise) expressionKind()         {}
func (ExprShift) expressionKind()           {}
func (ExprComparison) expressionKind()      {}
func (ExprArithmetic) expressionKind()      {}
func (ExprUnaryArithmetic) expressionKind() {}
func (ExprUnaryLogical) expressionKind()    {}
func (ExprUnaryBitwise) expressionKind()    {}
func (ExprCall) expressionKind()            {}
func (ExprMember) expressionKind()          {}
func (ExprIndex) expressionKind()           {}
func (ExprIdent) expressionKind()           {}
func (ExprLiteral) expressionKind()         {}

// Expr returns the expression h refers to.
func (m *Module) Expr(h ExprHandle) *Expression {
	return &m.Expressions[h]
}

func (m *Module) addExpr(kind ExpressionKind, span Span) ExprHandle {
	m.Expressions = append(m.Expressions, Expression{Kind: kind, Span: span})
	return ExprHandle(len(m.Expressions) - 1)
}
