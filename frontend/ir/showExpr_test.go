package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tarn-lang/tarn/frontend/ir"
	"github.com/tarn-lang/tarn/frontend/token"
)

func TestExprStringParenthesizesBinderForms(t *testing.T) {
	// f((fn x -> x)) keeps the lambda out of callee position
	inner := &ir.Func{Param: &ir.PVar{Name: "x"}, Body: &ir.Var{Name: "x"}}
	call := &ir.Call{Func: &ir.Var{Name: "f"}, Args: []ir.Expr{inner}}
	assert.Equal(t, "f(fn x -> x)", ir.ExprString(call))

	selected := &ir.RecordSelect{Record: inner, Label: "a"}
	assert.Equal(t, "(fn x -> x).a", ir.ExprString(selected))
}

func TestExprStringLetValueParenthesized(t *testing.T) {
	innerLet := &ir.Let{
		Pattern: &ir.PVar{Name: "a"},
		Value:   &ir.Var{Name: "b"},
		Body:    &ir.Var{Name: "a"},
	}
	outer := &ir.Let{
		Pattern: &ir.PVar{Name: "x"},
		Value:   innerLet,
		Body:    &ir.Var{Name: "x"},
	}
	assert.Equal(t, "let x = (let a = b in a) in x", ir.ExprString(outer))
}

func TestPatternString(t *testing.T) {
	pattern := &ir.PVariant{Label: "Cons", Args: []ir.Pattern{
		&ir.PLiteral{Kind: token.LitInt, Syntax: "1"},
		&ir.PVariant{Label: "Nil"},
	}}
	assert.Equal(t, "Cons(1, Nil)", ir.PatternString(pattern))
}

func TestExprStringNilSafe(t *testing.T) {
	assert.Equal(t, "nil", ir.ExprString(nil))
}
