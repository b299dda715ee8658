package ast

import (
	"github.com/tarn-lang/tarn/frontend/token"
)

var (
	_ Type = (*NamedType)(nil)
	_ Type = (*TypeVar)(nil)
	_ Type = (*FuncType)(nil)
	_ Type = (*RecordType)(nil)
)

// Type is a surface type expression. The desugarer never rewrites types,
// it only copies them structurally into the core tree.
type Type interface {
	token.Positioner
	TypeName() string
	typeNode()
}

// NamedType is a type constructor application: `List a`, `Int`.
type NamedType struct {
	Name string
	Args []Type
	token.Range
}

func (t *NamedType) TypeName() string { return t.Name }
func (t *NamedType) typeNode()        {}

// TypeVar is a type variable: `a`.
type TypeVar struct {
	Name string
	token.Range
}

func (t *TypeVar) TypeName() string { return t.Name }
func (t *TypeVar) typeNode()        {}

// FuncType is `arg -> ret`. Multi-parameter arrows are curried by the
// parser, so Arg is always a single type.
type FuncType struct {
	Arg Type
	Ret Type
	token.Range
}

func (t *FuncType) TypeName() string { return "->" }
func (t *FuncType) typeNode()        {}

// RecordType is `{a: Int, b: String}`.
type RecordType struct {
	Fields []TypeField
	token.Range
}

// TypeField is a paired label and type.
type TypeField struct {
	token.Range
	Name string
	Type Type
}

func (t *RecordType) TypeName() string { return "record" }
func (t *RecordType) typeNode()        {}
