// Package gleam holds the parsed-module data model: type declarations,
// constructors, fields, type expressions and imports as they appear in
// Gleam source. Pure data; parsing lives in gleamparser and code
// generation in codegen.
package gleam

import "strings"

// TypeExpr is a parsed Gleam type annotation.
type TypeExpr interface {
	isTypeExpr()
	String() string
}

// NamedType is a (possibly qualified, possibly parameterized) type
// reference such as String, List(Int) or option.Option(user.User).
type NamedType struct {
	// Module is the qualifier as written ("option" in option.Option),
	// empty for unqualified references.
	Module string
	Name   string
	Args   []TypeExpr
}

// TupleType is #(a, b, ...).
type TupleType struct {
	Elems []TypeExpr
}

// FunctionType is fn(a, b) -> r.
type FunctionType struct {
	Params []TypeExpr
	Return TypeExpr
}

// VarType is a lowercase type variable.
type VarType struct {
	Name string
}

// HoleType is a discarded annotation such as _ or _name.
type HoleType struct {
	Name string
}

func (*NamedType) isTypeExpr()    {}
func (*TupleType) isTypeExpr()    {}
func (*FunctionType) isTypeExpr() {}
func (*VarType) isTypeExpr()      {}
func (*HoleType) isTypeExpr()     {}

func (t *NamedType) String() string {
	var b strings.Builder
	if t.Module != "" {
		b.WriteString(t.Module)
		b.WriteByte('.')
	}
	b.WriteString(t.Name)
	if len(t.Args) > 0 {
		b.WriteByte('(')
		for i, a := range t.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.String())
		}
		b.WriteByte(')')
	}
	return b.String()
}

func (t *TupleType) String() string {
	var b strings.Builder
	b.WriteString("#(")
	for i, e := range t.Elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteByte(')')
	return b.String()
}

func (t *FunctionType) String() string {
	var b strings.Builder
	b.WriteString("fn(")
	for i, p := range t.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteString(") -> ")
	b.WriteString(t.Return.String())
	return b.String()
}

func (t *VarType) String() string { return t.Name }

func (t *HoleType) String() string {
	if t.Name == "" {
		return "_"
	}
	return t.Name
}

// Named returns the expression as a *NamedType, or nil.
func Named(t TypeExpr) *NamedType {
	n, _ := t.(*NamedType)
	return n
}
