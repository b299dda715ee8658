package ast

import (
	"strings"

	"github.com/tarn-lang/tarn/frontend/token"
)

var (
	_ Expr = (*Literal)(nil)
	_ Expr = (*Var)(nil)
	_ Expr = (*Block)(nil)
	_ Expr = (*Bind)(nil)
	_ Expr = (*If)(nil)
	_ Expr = (*Func)(nil)
	_ Expr = (*Call)(nil)
	_ Expr = (*Pipe)(nil)
	_ Expr = (*Compose)(nil)
	_ Expr = (*ListLit)(nil)
	_ Expr = (*While)(nil)
	_ Expr = (*When)(nil)
	_ Expr = (*RecordLit)(nil)
	_ Expr = (*RecordUpdate)(nil)
	_ Expr = (*RecordSelect)(nil)
	_ Expr = (*Variant)(nil)
	_ Expr = (*BinaryExpr)(nil)
	_ Expr = (*UnaryExpr)(nil)
)

// Expr is the base for all surface expressions. The surface tree is
// produced once by the parser and owned exclusively by the desugaring
// call that consumes it; nothing mutates it.
type Expr interface {
	token.Positioner
	// ExprName is the name of the syntax-type of the expression.
	ExprName() string
	// Describe is what to call this expression in error messages.
	Describe() string
	exprNode()
}

// Literal is a semi-opaque literal value. Syntax is carried verbatim.
type Literal struct {
	Kind   token.LitKind
	Syntax string
	token.Range
}

func (e *Literal) ExprName() string { return "Literal" }
func (e *Literal) Describe() string { return e.Kind.String() + " literal" }
func (e *Literal) exprNode()        {}

// Var is a variable or function name.
type Var struct {
	Name string
	token.Range
}

func (e *Var) ExprName() string { return "Var" }
func (e *Var) Describe() string { return "variable" }
func (e *Var) exprNode()        {}

// Block is a brace-delimited sequence: zero or more binding statements
// followed by a final value expression.
type Block struct {
	Stmts []Expr
	token.Range
}

func (e *Block) ExprName() string { return "Block" }
func (e *Block) Describe() string { return "block" }
func (e *Block) exprNode()        {}

// Bind is a binding statement inside a Block: `let pat = value`.
// It only appears in non-final block positions.
type Bind struct {
	Pattern   Pattern
	Value     Expr
	Mutable   bool
	Recursive bool
	token.Range // of the binding including '='
}

func (e *Bind) ExprName() string { return "Bind" }
func (e *Bind) Describe() string { return "binding" }
func (e *Bind) exprNode()        {}

// If is a two-armed conditional. Both arms are always present.
type If struct {
	Cond Expr
	Then Expr
	Else Expr
	token.Range
}

func (e *If) ExprName() string { return "If" }
func (e *If) Describe() string { return "conditional" }
func (e *If) exprNode()        {}

// Func is a lambda with one or more parameters: `fun (p1, p2) => body`.
// The parser guarantees a non-empty parameter list.
type Func struct {
	Params []Pattern
	Body   Expr
	token.Range // of the declaration including parameters but not the body
}

func (e *Func) ExprName() string { return "Func" }
func (e *Func) Describe() string { return "function" }
func (e *Func) exprNode()        {}

// Call is an application: `f(x, y)`.
type Call struct {
	Func Expr
	Args []Expr
	token.Range // of the entire expression
}

func (e *Call) ExprName() string { return "Call" }
func (e *Call) Describe() string { return "function call" }
func (e *Call) exprNode()        {}

// Pipe is `Arg |> Func`.
type Pipe struct {
	Arg  Expr
	Func Expr
	token.Range
}

func (e *Pipe) ExprName() string { return "Pipe" }
func (e *Pipe) Describe() string { return "pipeline" }
func (e *Pipe) exprNode()        {}

// Compose is `Left >> Right` (forward) or `Left << Right` (backward).
type Compose struct {
	Left     Expr
	Right    Expr
	Backward bool
	token.Range
}

func (e *Compose) ExprName() string { return "Compose" }
func (e *Compose) Describe() string { return "composition" }
func (e *Compose) exprNode()        {}

// ListLit is a list literal mixing ordinary and spread elements:
// `[1, ...rest, 2]`.
type ListLit struct {
	Elems []ListElem
	token.Range
}

// ListElem is one element of a ListLit. Spread marks `...expr` elements.
type ListElem struct {
	Expr   Expr
	Spread bool
}

func (e *ListLit) ExprName() string { return "ListLit" }
func (e *ListLit) Describe() string { return "list literal" }
func (e *ListLit) exprNode()        {}

func (e *ListLit) String() string {
	parts := make([]string, len(e.Elems))
	for i, elem := range e.Elems {
		parts[i] = elem.Expr.ExprName()
		if elem.Spread {
			parts[i] = "..." + parts[i]
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// While is loop sugar: `while (Cond) { Body }`. The core calculus has no
// loop construct, so desugaring rewrites it into tail recursion.
type While struct {
	Cond Expr
	Body Expr
	token.Range
}

func (e *While) ExprName() string { return "While" }
func (e *While) Describe() string { return "while loop" }
func (e *While) exprNode()        {}

// When is a pattern-matching expression:
//
//	when e is
//	    pat1 -> expr1
//	    pat2 | pat3 -> expr2
type When struct {
	Value Expr
	Cases []WhenCase
	token.Range
}

func (e *When) ExprName() string { return "When" }
func (e *When) Describe() string { return "when expression" }
func (e *When) exprNode()        {}

// WhenCase is one case of a When. Pattern may be an OrPattern, in which
// case desugaring expands the case before touching the pattern itself.
type WhenCase struct {
	token.Range
	Pattern Pattern
	Body    Expr
}

// RecordLit is `{a: 1, b: 2}`.
type RecordLit struct {
	Fields []Field
	token.Range
}

// Field is a paired label and value.
type Field struct {
	token.Range
	Name  string
	Value Expr
}

func (e *RecordLit) ExprName() string { return "RecordLit" }
func (e *RecordLit) Describe() string { return "record literal" }
func (e *RecordLit) exprNode()        {}

// RecordUpdate is `{base | a: 1, b: 2}`.
type RecordUpdate struct {
	Record Expr
	Fields []Field
	token.Range
}

func (e *RecordUpdate) ExprName() string { return "RecordUpdate" }
func (e *RecordUpdate) Describe() string { return "record update" }
func (e *RecordUpdate) exprNode()        {}

// RecordSelect is field access: `r.a`.
type RecordSelect struct {
	Record Expr
	Label  string
	token.Range
}

func (e *RecordSelect) ExprName() string { return "RecordSelect" }
func (e *RecordSelect) Describe() string { return "record access" }
func (e *RecordSelect) exprNode()        {}

// Variant is a tagged constructor application: `Just(1)`, `Nothing`.
type Variant struct {
	Label string
	Args  []Expr
	token.Range
}

func (e *Variant) ExprName() string { return "Variant" }
func (e *Variant) Describe() string { return "variant" }
func (e *Variant) exprNode()        {}

// BinaryExpr is a binary operation: `a + b`. Operators are surface sugar
// for calls of named builtins.
type BinaryExpr struct {
	Left     Expr
	Operator token.Op
	Right    Expr
	token.Range
}

func (e *BinaryExpr) ExprName() string { return "BinaryExpr" }
func (e *BinaryExpr) Describe() string { return "binary operation" }
func (e *BinaryExpr) exprNode()        {}

// UnaryExpr is a unary operation: `-a`, `not b`.
type UnaryExpr struct {
	Operator token.Op
	Operand  Expr
	token.Range
}

func (e *UnaryExpr) ExprName() string { return "UnaryExpr" }
func (e *UnaryExpr) Describe() string { return "unary operation" }
func (e *UnaryExpr) exprNode()        {}
