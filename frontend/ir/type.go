package ir

import (
	"github.com/tarn-lang/tarn/frontend/token"
)

var (
	_ Type = (*NamedType)(nil)
	_ Type = (*TypeVar)(nil)
	_ Type = (*FuncType)(nil)
	_ Type = (*RecordType)(nil)
)

// Type is a core type expression. Types are copied structurally from the
// surface tree, never rewritten.
type Type interface {
	token.Positioner
	TypeName() string
	typeNode()
}

// NamedType is a type constructor application.
type NamedType struct {
	Name string
	Args []Type
	token.Range
}

func (t *NamedType) TypeName() string { return t.Name }
func (t *NamedType) typeNode()        {}

// TypeVar is a type variable.
type TypeVar struct {
	Name string
	token.Range
}

func (t *TypeVar) TypeName() string { return t.Name }
func (t *TypeVar) typeNode()        {}

// FuncType is a single-argument arrow.
type FuncType struct {
	Arg Type
	Ret Type
	token.Range
}

func (t *FuncType) TypeName() string { return "->" }
func (t *FuncType) typeNode()        {}

// RecordType is a record type.
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
