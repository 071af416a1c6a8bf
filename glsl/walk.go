// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import "fmt"

// Children returns the direct subexpressions of k in source order. Absent
// children are omitted.
func Children(k ExpressionKind) []ExprHandle {
	var out []ExprHandle
	add := func(hs ...ExprHandle) {
		for _, h := range hs {
			if h.Valid() {
				out = append(out, h)
			}
		}
	}

	switch e := k.(type) {
	case ExprSequence:
		add(e.Exprs...)
	case ExprInitializerList:
		add(e.Elements...)
	case ExprConditional:
		add(e.Cond, e.Then, e.Else)
	case BinaryKind:
		b := e.binary()
		add(b.Left, b.Right)
	case UnaryKind:
		add(e.unary().Operand)
	case ExprCall:
		add(e.Callee)
		add(e.Args...)
	case ExprMember:
		add(e.Object)
	case ExprIndex:
		add(e.Object, e.Index)
	case ExprIdent, ExprLiteral:
	default:
		panic(fmt.Sprintf("glsl: unhandled expression kind %T", k))
	}
	return out
}

// WalkExpr calls fn for root and its subexpressions in depth-first
// pre-order. If fn returns false the children of that expression are
// skipped.
func (m *Module) WalkExpr(root ExprHandle, fn func(ExprHandle, *Expression) bool) {
	if !root.Valid() {
		return
	}
	expr := m.Expr(root)
	if !fn(root, expr) {
		return
	}
	for _, child := range Children(expr.Kind) {
		m.WalkExpr(child, fn)
	}
}

// Roots returns the top-level expressions held directly by n: conditions,
// initializers, array sizes and layout values. Expressions of nested
// statements are not included.
func Roots(n Node) []ExprHandle {
	var out []ExprHandle
	add := func(hs ...ExprHandle) {
		for _, h := range hs {
			if h.Valid() {
				out = append(out, h)
			}
		}
	}
	quals := func(q Qualifiers) {
		for _, p := range q.Layout {
			add(p.Value)
		}
	}
	declarators := func(ds []*Declarator) {
		for _, d := range ds {
			add(d.Dims...)
			add(d.Init)
		}
	}
	members := func(ms []*Member) {
		for _, m := range ms {
			quals(m.Qualifiers)
			add(m.Type.Dims...)
			declarators(m.Declarators)
		}
	}

	switch n := n.(type) {
	case *StructDecl:
		quals(n.Qualifiers)
		members(n.Members)
		declarators(n.Instances)
	case *InterfaceDecl:
		quals(n.Qualifiers)
		members(n.Members)
		declarators(n.Instances)
	case *VarDecl:
		quals(n.Qualifiers)
		add(n.Type.Dims...)
		declarators(n.Declarators)
	case *FunctionDecl:
		quals(n.Qualifiers)
		add(n.ReturnType.Dims...)
		for _, p := range n.Params {
			quals(p.Qualifiers)
			add(p.Type.Dims...)
			add(p.Dims...)
		}
	case *PrecisionDecl:
		add(n.Type.Dims...)
	case *QualifierDecl:
		quals(n.Qualifiers)
	case *ExprStmt:
		add(n.Expr)
	case *IfStmt:
		add(n.Cond)
	case *SwitchStmt:
		add(n.Selector)
		for _, c := range n.Cases {
			add(c.Label)
		}
	case *ForStmt:
		add(n.Cond, n.Update)
	case *WhileStmt:
		add(n.Cond)
	case *DoWhileStmt:
		add(n.Cond)
	case *ReturnStmt:
		add(n.Value)
	case *EmptyStmt, *BlockStmt, *BreakStmt, *ContinueStmt, *DiscardStmt:
	default:
		panic(fmt.Sprintf("glsl: unhandled node %T", n))
	}
	return out
}

// Inspect traverses declarations and statements in depth-first pre-order,
// starting with n. If fn returns false the children of that node are
// skipped.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	inspectAll := func(ds []Decl) {
		for _, d := range ds {
			Inspect(d, fn)
		}
	}

	switch n := n.(type) {
	case *FunctionDecl:
		if n.Body != nil {
			Inspect(n.Body, fn)
		}
	case *BlockStmt:
		inspectAll(n.Body)
	case *IfStmt:
		Inspect(n.Then, fn)
		if n.Else != nil {
			Inspect(n.Else, fn)
		}
	case *SwitchStmt:
		for _, c := range n.Cases {
			inspectAll(c.Body)
		}
	case *ForStmt:
		if n.Init != nil {
			Inspect(n.Init, fn)
		}
		Inspect(n.Body, fn)
	case *WhileStmt:
		Inspect(n.Body, fn)
	case *DoWhileStmt:
		Inspect(n.Body, fn)
	}
}

// Walk calls fn for every expression in the module, in source order of the
// nodes that hold them.
func (m *Module) Walk(fn func(ExprHandle, *Expression) bool) {
	for _, d := range m.Decls {
		Inspect(d, func(n Node) bool {
			for _, root := range Roots(n) {
				m.WalkExpr(root, fn)
			}
			return true
		})
	}
}
