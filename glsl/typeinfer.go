// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"

	"github.com/gogpu/asi/types"
)

// TypeMap records the inferred type of each resolved expression.
type TypeMap map[ExprHandle]types.Type

// ResolveTypes infers the type of root and every subexpression, bottom-up.
// The module is not modified.
//
// No symbol table is kept: identifiers, member accesses, index expressions
// and calls other than constructors resolve to types.Error. Callers treat
// Error as "unknown" and leave such expressions alone.
func ResolveTypes(m *Module, root ExprHandle) TypeMap {
	r := &typeResolver{module: m, types: make(TypeMap)}
	r.resolve(root)
	return r.types
}

// ResolveModule infers the type of every expression in m. Each top-level
// expression of a declaration or statement is resolved as its own root.
func ResolveModule(m *Module) TypeMap {
	r := &typeResolver{module: m, types: make(TypeMap)}
	for _, d := range m.Decls {
		Inspect(d, func(n Node) bool {
			for _, root := range Roots(n) {
				r.resolve(root)
			}
			return true
		})
	}
	return r.types
}

type typeResolver struct {
	module *Module
	types  TypeMap
}

func (r *typeResolver) resolve(h ExprHandle) types.Type {
	if !h.Valid() {
		return types.Error
	}
	if t, ok := r.types[h]; ok {
		return t
	}
	t := r.resolveKind(r.module.Expr(h).Kind)
	r.types[h] = t
	return t
}

func (r *typeResolver) resolveAll(hs []ExprHandle) types.Type {
	last := types.Error
	for _, h := range hs {
		last = r.resolve(h)
	}
	return last
}

// resolveKind dispatches on the variant. Specific binary and unary variants
// are matched before the BinaryKind and UnaryKind category cases.
func (r *typeResolver) resolveKind(kind ExpressionKind) types.Type {
	switch e := kind.(type) {
	case ExprSequence:
		return r.resolveAll(e.Exprs)

	case ExprInitializerList:
		// Only meaningful against a declared type.
		r.resolveAll(e.Elements)
		return types.Error

	case ExprConditional:
		r.resolve(e.Cond)
		return types.ImplicitCommonType(r.resolve(e.Then), r.resolve(e.Else))

	case ExprLogical, ExprComparison:
		b := e.(BinaryKind).binary()
		r.resolve(b.Left)
		r.resolve(b.Right)
		return types.Bool

	case ExprBitwise:
		t := types.ImplicitCommonType(r.resolve(e.Left), r.resolve(e.Right))
		if !t.IsInteger() {
			return types.Error
		}
		return t

	case ExprShift:
		// The result follows the left operand; the right one only has to
		// be an integer.
		left, right := r.resolve(e.Left), r.resolve(e.Right)
		if !left.IsInteger() || !right.IsInteger() {
			return types.Error
		}
		return left

	case ExprArithmetic:
		t := types.ImplicitCommonType(r.resolve(e.Left), r.resolve(e.Right))
		if !t.IsNumeric() {
			return types.Error
		}
		return t

	case BinaryKind:
		// Assignment: the value of an assignment is never needed.
		b := e.binary()
		r.resolve(b.Left)
		r.resolve(b.Right)
		return types.Error

	case ExprUnaryArithmetic:
		if t := r.resolve(e.Operand); t.IsNumeric() {
			return t
		}
		return types.Error

	case ExprUnaryLogical:
		if t := r.resolve(e.Operand); t.IsBool() {
			return t
		}
		return types.Error

	case ExprUnaryBitwise:
		if t := r.resolve(e.Operand); t.IsInteger() {
			return t
		}
		return types.Error

	case UnaryKind:
		r.resolve(e.unary().Operand)
		return types.Error

	case ExprCall:
		r.resolve(e.Callee)
		r.resolveAll(e.Args)
		if ident, ok := r.module.Expr(e.Callee).Kind.(ExprIdent); ok && types.IsConstructorName(ident.Name) {
			t, _ := types.Lookup(ident.Name)
			return t
		}
		return types.Error

	case ExprMember:
		r.resolve(e.Object)
		return types.Error

	case ExprIndex:
		r.resolve(e.Object)
		r.resolve(e.Index)
		return types.Error

	case ExprIdent:
		return types.Error

	case ExprLiteral:
		return e.Kind.Type()

	default:
		panic(fmt.Sprintf("glsl: unhandled expression kind %T", kind))
	}
}
