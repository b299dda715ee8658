// Package ir is the core expression tree produced by desugaring and
// consumed by type checking and code generation. It is a strict subset
// of the surface node shapes: no blocks, conditionals, pipes,
// compositions, list literals, loops, operators, list patterns, or
// or-patterns survive to this tree.
package ir

import (
	"github.com/tarn-lang/tarn/frontend/token"
)

var (
	_ Expr = (*Literal)(nil)
	_ Expr = (*Var)(nil)
	_ Expr = (*Func)(nil)
	_ Expr = (*Call)(nil)
	_ Expr = (*Let)(nil)
	_ Expr = (*LetGroup)(nil)
	_ Expr = (*When)(nil)
	_ Expr = (*Variant)(nil)
	_ Expr = (*Record)(nil)
	_ Expr = (*RecordSelect)(nil)
	_ Expr = (*RecordUpdate)(nil)
)

// Expr is the base for all core expressions.
//
// Every node carries a location propagated from the surface node that
// produced it; synthesized nodes reuse the location of the surface node
// whose rewrite introduced them.
type Expr interface {
	token.Positioner
	// ExprName is the name of the node shape, for logs and defect reports.
	ExprName() string
	exprNode()
}

// Literal is a semi-opaque literal value, syntax carried verbatim.
type Literal struct {
	Kind   token.LitKind
	Syntax string
	token.Range
}

func (e *Literal) ExprName() string { return "Literal" }
func (e *Literal) exprNode()        {}

// Var is a variable reference.
type Var struct {
	Name string
	token.Range
}

func (e *Var) ExprName() string { return "Var" }
func (e *Var) exprNode()        {}

// Func is a single-parameter abstraction. Multi-parameter surface
// lambdas arrive here as nested Funcs, outermost binding the first
// parameter.
type Func struct {
	Param Pattern
	Body  Expr
	token.Range
}

func (e *Func) ExprName() string { return "Func" }
func (e *Func) exprNode()        {}

// Call is an N-ary application: `f(x, y)`.
type Call struct {
	Func Expr
	Args []Expr
	token.Range
}

func (e *Call) ExprName() string { return "Call" }
func (e *Call) exprNode()        {}

// Let binds one pattern in a body: `let pat = value in body`.
type Let struct {
	Pattern   Pattern
	Value     Expr
	Body      Expr
	Mutable   bool
	Recursive bool
	token.Range // of the binding, not of the enclosing block
}

func (e *Let) ExprName() string { return "Let" }
func (e *Let) exprNode()        {}

// LetGroup is a group of mutually recursive bindings:
// `let rec a = e1 and b = e2 in body`.
type LetGroup struct {
	Bindings []Binding
	Body     Expr
	token.Range
}

// Binding is a paired name and value inside a LetGroup.
type Binding struct {
	token.Range
	Name  string
	Value Expr
}

func (e *LetGroup) ExprName() string { return "LetGroup" }
func (e *LetGroup) exprNode()        {}

// When is the generic pattern match. Cases are tried in order;
// first match wins.
type When struct {
	Value Expr
	Cases []Case
	token.Range
}

// Case is one alternative of a When.
type Case struct {
	token.Range
	Pattern Pattern
	Body    Expr
}

func (e *When) ExprName() string { return "When" }
func (e *When) exprNode()        {}

// Variant is a tagged constructor application: `Just(1)`.
type Variant struct {
	Label string
	Args  []Expr
	token.Range
}

func (e *Variant) ExprName() string { return "Variant" }
func (e *Variant) exprNode()        {}

// Record is record construction: `{a: 1}`.
type Record struct {
	Fields []Field
	token.Range
}

// Field is a paired label and value.
type Field struct {
	token.Range
	Name  string
	Value Expr
}

func (e *Record) ExprName() string { return "Record" }
func (e *Record) exprNode()        {}

// RecordSelect is field access: `r.a`.
type RecordSelect struct {
	Record Expr
	Label  string
	token.Range
}

func (e *RecordSelect) ExprName() string { return "RecordSelect" }
func (e *RecordSelect) exprNode()        {}

// RecordUpdate rebuilds a record with some fields replaced:
// `{base | a: 1}`. Field names and order are preserved from the surface.
type RecordUpdate struct {
	Record Expr
	Fields []Field
	token.Range
}

func (e *RecordUpdate) ExprName() string { return "RecordUpdate" }
func (e *RecordUpdate) exprNode()        {}
