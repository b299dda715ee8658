package ir

import (
	"github.com/tarn-lang/tarn/frontend/token"
)

// Module is one desugared module. Import and declaration cardinality and
// order are identical to the surface module that produced it; only
// declaration bodies change shape.
type Module struct {
	token.Range
	Name         string
	Imports      []Import
	Declarations []Declaration
}

type Import struct {
	token.Range
	Alias      string
	ImportPath string
	Exposing   []string
}

// Declaration is a top-level declaration in a Module.
type Declaration interface {
	token.Positioner
	DeclaredName() string
	declNode()
}

var _ Declaration = (*LetDeclaration)(nil)
var _ Declaration = (*TypeDeclaration)(nil)
var _ Declaration = (*ExternalDeclaration)(nil)

// LetDeclaration is a top-level value binding with a desugared body.
type LetDeclaration struct {
	token.Range
	Name      string
	Value     Expr
	Exported  bool
	Mutable   bool
	Recursive bool
	Comments  []string
}

func (d *LetDeclaration) DeclaredName() string { return d.Name }
func (d *LetDeclaration) declNode()            {}

// TypeDeclaration passes through desugaring with its type expressions
// structurally copied.
type TypeDeclaration struct {
	token.Range
	Name     string
	Params   []string
	Variants []VariantDef
	Exported bool
}

func (d *TypeDeclaration) DeclaredName() string { return d.Name }
func (d *TypeDeclaration) declNode()            {}

// VariantDef is one alternative of a TypeDeclaration.
type VariantDef struct {
	token.Range
	Label string
	Args  []Type
}

// ExternalDeclaration names a value implemented by the host runtime.
type ExternalDeclaration struct {
	token.Range
	Name     string
	Type     Type
	Exported bool
}

func (d *ExternalDeclaration) DeclaredName() string { return d.Name }
func (d *ExternalDeclaration) declNode()            {}
