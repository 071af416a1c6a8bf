// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"
	"io"
	"strings"
)

// FormatExpr renders the expression h as an S-expression, with every
// operator application in parentheses: "a + b * c" is "(+ a (* b c))".
// Postfix operators follow their operand: "(i ++)".
func (m *Module) FormatExpr(h ExprHandle) string {
	var sb strings.Builder
	m.formatExpr(&sb, h)
	return sb.String()
}

func (m *Module) formatExpr(sb *strings.Builder, h ExprHandle) {
	if !h.Valid() {
		sb.WriteString("_")
		return
	}
	list := func(head string, hs ...ExprHandle) {
		sb.WriteString("(")
		sb.WriteString(head)
		for _, c := range hs {
			sb.WriteString(" ")
			m.formatExpr(sb, c)
		}
		sb.WriteString(")")
	}

	switch e := m.Expr(h).Kind.(type) {
	case ExprIdent:
		sb.WriteString(e.Name)
	case ExprLiteral:
		sb.WriteString(e.Text)
	case ExprSequence:
		list(",", e.Exprs...)
	case ExprInitializerList:
		sb.WriteString("{")
		for i, c := range e.Elements {
			if i > 0 {
				sb.WriteString(" ")
			}
			m.formatExpr(sb, c)
		}
		sb.WriteString("}")
	case ExprConditional:
		list("?", e.Cond, e.Then, e.Else)
	case BinaryKind:
		b := e.binary()
		list(b.Op, b.Left, b.Right)
	case UnaryKind:
		u := e.unary()
		if u.Postfix {
			sb.WriteString("(")
			m.formatExpr(sb, u.Operand)
			sb.WriteString(" " + u.Op + ")")
		} else {
			list(u.Op, u.Operand)
		}
	case ExprCall:
		list("call", append([]ExprHandle{e.Callee}, e.Args...)...)
	case ExprMember:
		sb.WriteString("(. ")
		m.formatExpr(sb, e.Object)
		sb.WriteString(" " + e.Name + ")")
	case ExprIndex:
		if e.Index.Valid() {
			list("[]", e.Object, e.Index)
		} else {
			list("[]", e.Object)
		}
	default:
		panic(fmt.Sprintf("glsl: unhandled expression kind %T", e))
	}
}

// Fprint writes an indented outline of the module to w, one node per line.
func Fprint(w io.Writer, m *Module) error {
	pr := &printer{module: m}
	for _, d := range m.Decls {
		pr.node(d, 0)
	}
	_, err := io.WriteString(w, pr.sb.String())
	return err
}

type printer struct {
	module *Module
	sb     strings.Builder
}

func (pr *printer) line(depth int, format string, args ...any) {
	pr.sb.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(&pr.sb, format, args...)
	pr.sb.WriteString("\n")
}

func (pr *printer) expr(h ExprHandle) string {
	return pr.module.FormatExpr(h)
}

func (pr *printer) typeSpec(t TypeSpec) string {
	return t.Name.Lexeme + pr.dims(t.Dims)
}

func (pr *printer) dims(dims []ExprHandle) string {
	var sb strings.Builder
	for _, d := range dims {
		if d.Valid() {
			sb.WriteString("[" + pr.expr(d) + "]")
		} else {
			sb.WriteString("[]")
		}
	}
	return sb.String()
}

func (pr *printer) quals(q Qualifiers) string {
	var parts []string
	if len(q.Layout) > 0 {
		var params []string
		for _, p := range q.Layout {
			if p.Value.Valid() {
				params = append(params, p.Name.Lexeme+"="+pr.expr(p.Value))
			} else {
				params = append(params, p.Name.Lexeme)
			}
		}
		parts = append(parts, "layout("+strings.Join(params, ", ")+")")
	}
	for _, tok := range q.Tokens {
		parts = append(parts, tok.Lexeme)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " ") + " "
}

func (pr *printer) declarators(ds []*Declarator) string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = d.Name.Lexeme + pr.dims(d.Dims)
		if d.Init.Valid() {
			parts[i] += " = " + pr.expr(d.Init)
		}
	}
	return strings.Join(parts, ", ")
}

func (pr *printer) members(ms []*Member, depth int) {
	for _, m := range ms {
		pr.line(depth, "Member %s%s %s", pr.quals(m.Qualifiers), pr.typeSpec(m.Type), pr.declarators(m.Declarators))
	}
}

func (pr *printer) body(ds []Decl, depth int) {
	for _, d := range ds {
		pr.node(d, depth)
	}
}

func (pr *printer) node(n Node, depth int) {
	switch n := n.(type) {
	case *StructDecl:
		pr.line(depth, "StructDecl %s%s", pr.quals(n.Qualifiers), n.Name.Lexeme)
		pr.members(n.Members, depth+1)
		if len(n.Instances) > 0 {
			pr.line(depth+1, "Instances %s", pr.declarators(n.Instances))
		}
	case *InterfaceDecl:
		pr.line(depth, "InterfaceDecl %s%s", pr.quals(n.Qualifiers), n.Name.Lexeme)
		pr.members(n.Members, depth+1)
		if len(n.Instances) > 0 {
			pr.line(depth+1, "Instances %s", pr.declarators(n.Instances))
		}
	case *VarDecl:
		pr.line(depth, "VarDecl %s%s %s", pr.quals(n.Qualifiers), pr.typeSpec(n.Type), pr.declarators(n.Declarators))
	case *FunctionDecl:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = strings.TrimSpace(pr.quals(p.Qualifiers) + pr.typeSpec(p.Type) + " " + p.Name.Lexeme + pr.dims(p.Dims))
		}
		kind := "FunctionDecl"
		if n.Body == nil {
			kind = "FunctionPrototype"
		}
		pr.line(depth, "%s %s%s %s(%s)", kind, pr.quals(n.Qualifiers), pr.typeSpec(n.ReturnType), n.Name.Lexeme, strings.Join(params, ", "))
		if n.Body != nil {
			pr.body(n.Body.Body, depth+1)
		}
	case *PrecisionDecl:
		pr.line(depth, "PrecisionDecl %s %s", n.Precision.Lexeme, pr.typeSpec(n.Type))
	case *QualifierDecl:
		names := make([]string, len(n.Names))
		for i, t := range n.Names {
			names[i] = t.Lexeme
		}
		pr.line(depth, "QualifierDecl %s%s", pr.quals(n.Qualifiers), strings.Join(names, ", "))
	case *ExprStmt:
		pr.line(depth, "ExprStmt %s", pr.expr(n.Expr))
	case *EmptyStmt:
		pr.line(depth, "EmptyStmt")
	case *BlockStmt:
		pr.line(depth, "BlockStmt")
		pr.body(n.Body, depth+1)
	case *IfStmt:
		pr.line(depth, "IfStmt %s", pr.expr(n.Cond))
		pr.node(n.Then, depth+1)
		if n.Else != nil {
			pr.line(depth, "Else")
			pr.node(n.Else, depth+1)
		}
	case *SwitchStmt:
		pr.line(depth, "SwitchStmt %s", pr.expr(n.Selector))
		for _, c := range n.Cases {
			if c.IsDefault {
				pr.line(depth+1, "Default")
			} else {
				pr.line(depth+1, "Case %s", pr.expr(c.Label))
			}
			pr.body(c.Body, depth+2)
		}
	case *ForStmt:
		pr.line(depth, "ForStmt %s; %s", pr.expr(n.Cond), pr.expr(n.Update))
		if n.Init != nil {
			pr.node(n.Init, depth+1)
		}
		pr.node(n.Body, depth+1)
	case *WhileStmt:
		pr.line(depth, "WhileStmt %s", pr.expr(n.Cond))
		pr.node(n.Body, depth+1)
	case *DoWhileStmt:
		pr.line(depth, "DoWhileStmt %s", pr.expr(n.Cond))
		pr.node(n.Body, depth+1)
	case *BreakStmt:
		pr.line(depth, "BreakStmt")
	case *ContinueStmt:
		pr.line(depth, "ContinueStmt")
	case *ReturnStmt:
		if n.Value.Valid() {
			pr.line(depth, "ReturnStmt %s", pr.expr(n.Value))
		} else {
			pr.line(depth, "ReturnStmt")
		}
	case *DiscardStmt:
		pr.line(depth, "DiscardStmt")
	default:
		panic(fmt.Sprintf("glsl: unhandled node %T", n))
	}
}
