// Package token holds the lexical vocabulary shared by the surface tree
// (ast) and the core tree (ir): source locations, literal kinds, and
// operator tokens. It plays the role go/token plays for Go's own tooling.
package token

import "fmt"

// Location is a single point in a source file, as reported by the lexer.
type Location struct {
	File   string
	Line   int
	Column int
	Offset int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Positioner allows finding the location in the original source file.
// The easiest way to be a Positioner is to embed a Range.
type Positioner interface {
	Pos() Location // location of the first character belonging to the node
	End() Location // location of the first character immediately after the node
}

type Range struct {
	PosStart Location
	PosEnd   Location
}

func (r Range) Pos() Location { return r.PosStart }
func (r Range) End() Location { return r.PosEnd }

// RangeOf collapses any Positioner to a plain Range.
func RangeOf(p Positioner) Range {
	if p == nil {
		return Range{}
	}
	if r, ok := p.(Range); ok {
		return r
	}
	return Range{p.Pos(), p.End()}
}

// LitKind distinguishes literal values. Literals are semi-opaque: the
// desugarer carries their syntax verbatim and only ever inspects Bool
// (for conditionals) and Unit (for loop encodings).
type LitKind int

const (
	LitInt LitKind = iota
	LitFloat
	LitString
	LitBool
	LitUnit
)

func (k LitKind) String() string {
	switch k {
	case LitInt:
		return "int"
	case LitFloat:
		return "float"
	case LitString:
		return "string"
	case LitBool:
		return "bool"
	case LitUnit:
		return "unit"
	}
	return fmt.Sprintf("LitKind(%d)", int(k))
}

// Op is a surface-level operator token. Operators exist only in the
// surface tree; desugaring rewrites them into calls of named builtins.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
	OpAnd
	OpOr
	OpAppend
	// unary
	OpNeg
	OpNot
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpEq:
		return "=="
	case OpNeq:
		return "!="
	case OpLt:
		return "<"
	case OpLte:
		return "<="
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpAppend:
		return "++"
	case OpNeg:
		return "-"
	case OpNot:
		return "not"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}
