package ast

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/tarn-lang/tarn/frontend/token"
)

var _ token.Positioner = (*Module)(nil)
var _ token.Positioner = (*Import)(nil)

// Module is one parsed surface module: an ordered import list followed by
// an ordered declaration list. Desugaring rewrites declaration bodies only;
// imports, exports, and ordering survive unchanged.
type Module struct {
	token.Range
	Name         string
	Imports      []Import
	Declarations []Declaration
}

func (m Module) String() string {
	return fmt.Sprint(m.Name, "\n", m.Declarations)
}

type Import struct {
	token.Range
	// Alias is the empty string when the import carries no alias.
	Alias      string
	ImportPath string
	// Exposing lists names imported unqualified. May be nil.
	Exposing []string
}

// Declaration is a top-level declaration in a Module.
type Declaration interface {
	token.Positioner
	// DeclaredName is the name the declaration introduces at module scope.
	DeclaredName() string
	declNode()
}

var _ Declaration = (*LetDeclaration)(nil)
var _ Declaration = (*TypeDeclaration)(nil)
var _ Declaration = (*ExternalDeclaration)(nil)

// LetDeclaration is a top-level value binding: `let f = fun (x) => x`.
type LetDeclaration struct {
	token.Range // of the LHS including '='
	Name        string
	Value       Expr
	Exported    bool
	Mutable     bool
	Recursive   bool
	// Comments keeps the comment lines immediately preceding the
	// declaration. Nil when the declaration had no adjacent comments.
	Comments []string
}

func (d *LetDeclaration) DeclaredName() string { return d.Name }
func (d *LetDeclaration) declNode()            {}

// TypeDeclaration declares a sum type and its variants:
// `type Maybe a = Just a | Nothing`.
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

// ExternalDeclaration names a value implemented by the host runtime:
// `external concat : List a -> List a -> List a`.
type ExternalDeclaration struct {
	token.Range
	Name     string
	Type     Type
	Exported bool
}

func (d *ExternalDeclaration) DeclaredName() string { return d.Name }
func (d *ExternalDeclaration) declNode()            {}

// IsExportedName reports whether a declaration name is public by
// convention when no explicit export flag was parsed.
func IsExportedName(name string) bool {
	if len(name) == 0 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(name)
	return r != utf8.RuneError && unicode.IsUpper(r)
}
