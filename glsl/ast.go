// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

// Module represents a GLSL translation unit.
//
// Declarations and statements form a tree of pointer nodes. Expressions are
// stored once in the Expressions arena and referenced by handle, so a side
// table keyed by ExprHandle can annotate them without touching the tree.
type Module struct {
	Decls       []Decl
	Expressions []Expression
}

// Span is the source range of a node, from the start of its first token to
// the end of its last.
type Span struct {
	Start Position
	End   Position
}

// Node is the base interface for declarations and statements.
type Node interface {
	Pos() Span
}

// Decl is the interface for anything that can appear in a block or at file
// scope.
type Decl interface {
	Node
	declNode()
}

// Stmt is the interface for statements.
type Stmt interface {
	Decl
	stmtNode()
}

// LayoutParam is one "name" or "name = value" entry of a layout qualifier.
type LayoutParam struct {
	Name  Token
	Value ExprHandle // NoExpr if absent
}

// Qualifiers holds the layout parameters and qualifier keywords in front of a
// declaration. Tokens keeps the first qualifier of each class.
type Qualifiers struct {
	Layout []LayoutParam
	Tokens []Token
}

// Class returns the qualifier of class c, if any.
func (q Qualifiers) Class(c QualifierClass) (Token, bool) {
	for _, tok := range q.Tokens {
		if tok.Qualifier == c {
			return tok, true
		}
	}
	return Token{}, false
}

// Has reports whether the qualifier keyword text is present.
func (q Qualifiers) Has(text string) bool {
	for _, tok := range q.Tokens {
		if tok.Lexeme == text {
			return true
		}
	}
	return false
}

// IsEmpty reports whether there are neither layout parameters nor
// qualifier keywords.
func (q Qualifiers) IsEmpty() bool {
	return len(q.Layout) == 0 && len(q.Tokens) == 0
}

// TypeSpec is a type reference such as "vec3" or "float[4]".
type TypeSpec struct {
	Name Token
	Dims []ExprHandle // NoExpr for an unsized dimension
}

// Declarator names one variable or member, with its own array dimensions
// and optional initializer.
type Declarator struct {
	Name Token
	Dims []ExprHandle
	Init ExprHandle // NoExpr if absent
}

// Member is one line of a struct or interface block body. A member may
// declare several names: "float x, y[2];".
type Member struct {
	Qualifiers  Qualifiers
	Type        TypeSpec
	Declarators []*Declarator
	Span        Span
}

// StructDecl represents a struct declaration, optionally followed by
// instance declarators: "struct Light { vec3 color; } sun;".
type StructDecl struct {
	Qualifiers Qualifiers
	Name       Token // zero Token for an anonymous struct
	Members    []*Member
	Instances  []*Declarator
	Span       Span
}

func (s *StructDecl) Pos() Span { return s.Span }
func (s *StructDecl) declNode() {}

// InterfaceDecl represents an interface block such as
// "uniform Camera { mat4 view; } camera;".
type InterfaceDecl struct {
	Qualifiers Qualifiers
	Name       Token
	Members    []*Member
	Instances  []*Declarator
	Span       Span
}

func (i *InterfaceDecl) Pos() Span { return i.Span }
func (i *InterfaceDecl) declNode() {}

// VarDecl represents a variable declaration with one or more declarators.
type VarDecl struct {
	Qualifiers  Qualifiers
	Type        TypeSpec
	Declarators []*Declarator
	Span        Span
}

func (v *VarDecl) Pos() Span { return v.Span }
func (v *VarDecl) declNode() {}

// Param represents a function parameter. Name is the zero Token for
// unnamed parameters, including "void".
type Param struct {
	Qualifiers Qualifiers
	Type       TypeSpec
	Name       Token
	Dims       []ExprHandle
}

// FunctionDecl represents a function definition, or a prototype when Body
// is nil.
type FunctionDecl struct {
	Qualifiers Qualifiers
	ReturnType TypeSpec
	Name       Token
	Params     []*Param
	Body       *BlockStmt
	Span       Span
}

func (f *FunctionDecl) Pos() Span { return f.Span }
func (f *FunctionDecl) declNode() {}

// PrecisionDecl represents "precision highp float;".
type PrecisionDecl struct {
	Precision Token
	Type      TypeSpec
	Span      Span
}

func (p *PrecisionDecl) Pos() Span { return p.Span }
func (p *PrecisionDecl) declNode() {}

// QualifierDecl represents a declaration made only of qualifiers, like
// "layout(local_size_x = 8) in;" or "invariant gl_Position;".
type QualifierDecl struct {
	Qualifiers Qualifiers
	Names      []Token
	Span       Span
}

func (q *QualifierDecl) Pos() Span { return q.Span }
func (q *QualifierDecl) declNode() {}

// ExprStmt represents an expression statement.
type ExprStmt struct {
	Expr ExprHandle
	Span Span
}

func (s *ExprStmt) Pos() Span { return s.Span }
func (s *ExprStmt) declNode() {}
func (s *ExprStmt) stmtNode() {}

// EmptyStmt represents a lone ";".
type EmptyStmt struct {
	Span Span
}

func (s *EmptyStmt) Pos() Span { return s.Span }
func (s *EmptyStmt) declNode() {}
func (s *EmptyStmt) stmtNode() {}

// BlockStmt represents a brace-delimited list of declarations and
// statements.
type BlockStmt struct {
	Body []Decl
	Span Span
}

func (s *BlockStmt) Pos() Span { return s.Span }
func (s *BlockStmt) declNode() {}
func (s *BlockStmt) stmtNode() {}

// IfStmt represents an if statement. Else is nil when absent.
type IfStmt struct {
	Cond ExprHandle
	Then Stmt
	Else Stmt
	Span Span
}

func (s *IfStmt) Pos() Span { return s.Span }
func (s *IfStmt) declNode() {}
func (s *IfStmt) stmtNode() {}

// SwitchStmt represents a switch statement.
type SwitchStmt struct {
	Selector ExprHandle
	Cases    []*SwitchCase
	Span     Span
}

func (s *SwitchStmt) Pos() Span { return s.Span }
func (s *SwitchStmt) declNode() {}
func (s *SwitchStmt) stmtNode() {}

// SwitchCase is one "case x:" or "default:" label with the statements up to
// the next label. Control falls through to the next case.
type SwitchCase struct {
	Label     ExprHandle // NoExpr for default
	IsDefault bool
	Body      []Decl
	Span      Span
}

// ForStmt represents a for loop. Init is nil and Cond and Update are NoExpr
// when the clause is empty.
type ForStmt struct {
	Init   Decl
	Cond   ExprHandle
	Update ExprHandle
	Body   Stmt
	Span   Span
}

func (s *ForStmt) Pos() Span { return s.Span }
func (s *ForStmt) declNode() {}
func (s *ForStmt) stmtNode() {}

// WhileStmt represents a while loop.
type WhileStmt struct {
	Cond ExprHandle
	Body Stmt
	Span Span
}

func (s *WhileStmt) Pos() Span { return s.Span }
func (s *WhileStmt) declNode() {}
func (s *WhileStmt) stmtNode() {}

// DoWhileStmt represents a do-while loop.
type DoWhileStmt struct {
	Body Stmt
	Cond ExprHandle
	Span Span
}

func (s *DoWhileStmt) Pos() Span { return s.Span }
func (s *DoWhileStmt) declNode() {}
func (s *DoWhileStmt) stmtNode() {}

// BreakStmt represents a break statement.
type BreakStmt struct {
	Span Span
}

func (s *BreakStmt) Pos() Span { return s.Span }
func (s *BreakStmt) declNode() {}
func (s *BreakStmt) stmtNode() {}

// ContinueStmt represents a continue statement.
type ContinueStmt struct {
	Span Span
}

func (s *ContinueStmt) Pos() Span { return s.Span }
func (s *ContinueStmt) declNode() {}
func (s *ContinueStmt) stmtNode() {}

// ReturnStmt represents a return statement. Value is NoExpr for a bare
// return.
type ReturnStmt struct {
	Value ExprHandle
	Span  Span
}

func (s *ReturnStmt) Pos() Span { return s.Span }
func (s *ReturnStmt) declNode() {}
func (s *ReturnStmt) stmtNode() {}

// DiscardStmt represents a discard statement.
type DiscardStmt struct {
	Span Span
}

func (s *DiscardStmt) Pos() Span { return s.Span }
func (s *DiscardStmt) declNode() {}
func (s *DiscardStmt) stmtNode() {}
