package frontend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tarn-lang/tarn/frontend"
	"github.com/tarn-lang/tarn/frontend/ast"
	"github.com/tarn-lang/tarn/frontend/ir"
	"github.com/tarn-lang/tarn/frontend/tarnerr"
	"github.com/tarn-lang/tarn/frontend/token"
)

// rangeAt builds a distinct range so tests can assert location
// propagation. Line carries the identity; the rest is arbitrary.
func rangeAt(line int) token.Range {
	return token.Range{
		PosStart: token.Location{File: "test.tarn", Line: line, Column: 1, Offset: line * 100},
		PosEnd:   token.Location{File: "test.tarn", Line: line, Column: 20, Offset: line*100 + 19},
	}
}

func intLit(syntax string) *ast.Literal {
	return &ast.Literal{Kind: token.LitInt, Syntax: syntax}
}

func boolLit(syntax string) *ast.Literal {
	return &ast.Literal{Kind: token.LitBool, Syntax: syntax}
}

func v(name string) *ast.Var {
	return &ast.Var{Name: name}
}

func bindVar(name string, value ast.Expr) *ast.Bind {
	return &ast.Bind{Pattern: &ast.VarPattern{Name: name}, Value: value}
}

func mustDesugar(t *testing.T, expr ast.Expr) ir.Expr {
	t.Helper()
	desugared, err := frontend.DesugarExpr(expr, frontend.NewNameSource())
	require.Nil(t, err, "expected no error, got: %v", err)
	return desugared
}

func assertDesugarsTo(t *testing.T, expr ast.Expr, expected string) {
	t.Helper()
	actual := ir.ExprString(mustDesugar(t, expr))
	assert.Equal(t, expected, actual)
}

func TestDesugarLeaves(t *testing.T) {
	assertDesugarsTo(t, intLit("42"), "42")
	assertDesugarsTo(t, v("x"), "x")
}

func TestDesugarBlock(t *testing.T) {
	block := &ast.Block{Stmts: []ast.Expr{
		bindVar("x", intLit("1")),
		bindVar("y", intLit("2")),
		&ast.BinaryExpr{Left: v("x"), Operator: token.OpAdd, Right: v("y")},
	}}
	assertDesugarsTo(t, block, "let x = 1 in let y = 2 in add(x, y)")
}

func TestDesugarBlockKeepsBindingFlags(t *testing.T) {
	block := &ast.Block{Stmts: []ast.Expr{
		&ast.Bind{Pattern: &ast.VarPattern{Name: "x"}, Value: intLit("1"), Mutable: true},
		&ast.Bind{Pattern: &ast.VarPattern{Name: "f"}, Value: v("g"), Recursive: true},
		v("x"),
	}}
	assertDesugarsTo(t, block, "let mut x = 1 in let rec f = g in x")
}

func TestDesugarBlockLetLocationIsBindingLocation(t *testing.T) {
	bind := bindVar("x", intLit("1"))
	bind.Range = rangeAt(3)
	block := &ast.Block{Stmts: []ast.Expr{bind, v("x")}}
	block.Range = rangeAt(1)

	let, ok := mustDesugar(t, block).(*ir.Let)
	require.True(t, ok)
	assert.Equal(t, rangeAt(3), let.Range)
}

func TestDesugarSingleExprBlock(t *testing.T) {
	assertDesugarsTo(t, &ast.Block{Stmts: []ast.Expr{intLit("7")}}, "7")
}

func TestDesugarEmptyBlock(t *testing.T) {
	block := &ast.Block{}
	block.Range = rangeAt(5)
	_, err := frontend.DesugarExpr(block, frontend.NewNameSource())
	require.NotNil(t, err)
	assert.Equal(t, tarnerr.EmptyBlock, err.Code())
	assert.Equal(t, rangeAt(5).PosStart, err.Pos())
}

func TestDesugarNonLetInBlock(t *testing.T) {
	offending := &ast.Call{Func: v("print"), Args: []ast.Expr{intLit("1")}}
	offending.Range = rangeAt(2)
	block := &ast.Block{Stmts: []ast.Expr{offending, intLit("0")}}
	_, err := frontend.DesugarExpr(block, frontend.NewNameSource())
	require.NotNil(t, err)
	assert.Equal(t, tarnerr.NonLetInBlock, err.Code())
	assert.Contains(t, err.Error(), "function call")
	assert.Equal(t, rangeAt(2).PosStart, err.Pos())
}

func TestDesugarIf(t *testing.T) {
	cond := &ast.If{Cond: v("c"), Then: intLit("1"), Else: intLit("2")}
	assertDesugarsTo(t, cond, "when c is true -> 1 | false -> 2")
}

func TestDesugarIfCaseOrder(t *testing.T) {
	cond := &ast.If{Cond: v("c"), Then: v("t"), Else: v("e")}
	when, ok := mustDesugar(t, cond).(*ir.When)
	require.True(t, ok)
	require.Len(t, when.Cases, 2)

	trueCase, ok := when.Cases[0].Pattern.(*ir.PLiteral)
	require.True(t, ok)
	assert.Equal(t, token.LitBool, trueCase.Kind)
	assert.Equal(t, "true", trueCase.Syntax)

	falseCase, ok := when.Cases[1].Pattern.(*ir.PLiteral)
	require.True(t, ok)
	assert.Equal(t, "false", falseCase.Syntax)
}

func TestDesugarNestedIf(t *testing.T) {
	inner := &ast.If{Cond: v("c2"), Then: intLit("2"), Else: intLit("3")}
	outer := &ast.If{Cond: v("c1"), Then: intLit("1"), Else: inner}
	assertDesugarsTo(t, outer, "when c1 is true -> 1 | false -> (when c2 is true -> 2 | false -> 3)")
}

func TestDesugarPipe(t *testing.T) {
	assertDesugarsTo(t, &ast.Pipe{Arg: v("a"), Func: v("f")}, "f(a)")
}

func TestDesugarPipeChain(t *testing.T) {
	// a |> f |> g associates left: g(f(a))
	chain := &ast.Pipe{Arg: &ast.Pipe{Arg: v("a"), Func: v("f")}, Func: v("g")}
	assertDesugarsTo(t, chain, "g(f(a))")
}

func TestDesugarComposeForward(t *testing.T) {
	compose := &ast.Compose{Left: v("f"), Right: v("g")}
	assertDesugarsTo(t, compose, "fn $composed_1 -> g(f($composed_1))")
}

func TestDesugarComposeBackward(t *testing.T) {
	compose := &ast.Compose{Left: v("f"), Right: v("g"), Backward: true}
	assertDesugarsTo(t, compose, "fn $composed_1 -> f(g($composed_1))")
}

func TestDesugarCurrying(t *testing.T) {
	fn := &ast.Func{
		Params: []ast.Pattern{&ast.VarPattern{Name: "x"}, &ast.VarPattern{Name: "y"}},
		Body:   &ast.BinaryExpr{Left: v("x"), Operator: token.OpAdd, Right: v("y")},
	}
	assertDesugarsTo(t, fn, "fn x -> fn y -> add(x, y)")
}

func TestDesugarSingleParamLambda(t *testing.T) {
	fn := &ast.Func{Params: []ast.Pattern{&ast.VarPattern{Name: "x"}}, Body: v("x")}
	assertDesugarsTo(t, fn, "fn x -> x")
}

func TestDesugarCurryingPreservesArity(t *testing.T) {
	for n := 1; n <= 5; n++ {
		params := make([]ast.Pattern, n)
		for i := range params {
			params[i] = &ast.VarPattern{Name: string(rune('a' + i))}
		}
		fn := &ast.Func{Params: params, Body: intLit("0")}

		depth := 0
		expr := mustDesugar(t, fn)
		for {
			curried, ok := expr.(*ir.Func)
			if !ok {
				break
			}
			depth++
			expr = curried.Body
		}
		assert.Equal(t, n, depth, "an %d-parameter lambda curries into %d nested functions", n, n)
	}
}

func TestDesugarZeroParamLambdaIsDefect(t *testing.T) {
	fn := &ast.Func{Body: intLit("1")}
	fn.Range = rangeAt(4)
	_, err := frontend.DesugarExpr(fn, frontend.NewNameSource())
	require.NotNil(t, err)
	assert.Equal(t, tarnerr.Internal, err.Code())
	assert.Equal(t, rangeAt(4).PosStart, err.Pos())
}

func TestDesugarWhile(t *testing.T) {
	loop := &ast.While{Cond: v("go"), Body: v("step")}
	expected := "let rec $loop_1 = (fn _ -> when go is true -> (let _ = step in $loop_1(())) | false -> ()) in $loop_1(())"
	assertDesugarsTo(t, loop, expected)
}

func TestDesugarNestedWhileNamesInnerFirst(t *testing.T) {
	inner := &ast.While{Cond: v("c2"), Body: v("b")}
	outer := &ast.While{Cond: v("c1"), Body: inner}
	group, ok := mustDesugar(t, outer).(*ir.LetGroup)
	require.True(t, ok)
	require.Len(t, group.Bindings, 1)
	// the inner loop is rewritten while desugaring the outer body, so it
	// draws the first fresh name
	assert.Equal(t, "$loop_2", group.Bindings[0].Name)
	assert.Contains(t, ir.ExprString(group), "$loop_1")
}

func TestDesugarWhileShape(t *testing.T) {
	loop := &ast.While{Cond: v("go"), Body: v("step")}
	loop.Range = rangeAt(9)

	group, ok := mustDesugar(t, loop).(*ir.LetGroup)
	require.True(t, ok)
	require.Len(t, group.Bindings, 1)
	assert.Equal(t, rangeAt(9), group.Range)

	fn, ok := group.Bindings[0].Value.(*ir.Func)
	require.True(t, ok)
	_, isAny := fn.Param.(*ir.PAny)
	assert.True(t, isAny, "loop function parameter should be a wildcard")

	when, ok := fn.Body.(*ir.When)
	require.True(t, ok)
	require.Len(t, when.Cases, 2)
	assert.Equal(t, v("go").Name, when.Value.(*ir.Var).Name)

	// false arm yields unit
	unit, ok := when.Cases[1].Body.(*ir.Literal)
	require.True(t, ok)
	assert.Equal(t, token.LitUnit, unit.Kind)

	// the group body immediately applies the loop to unit
	call, ok := group.Body.(*ir.Call)
	require.True(t, ok)
	assert.Equal(t, group.Bindings[0].Name, call.Func.(*ir.Var).Name)
	require.Len(t, call.Args, 1)
	arg, ok := call.Args[0].(*ir.Literal)
	require.True(t, ok)
	assert.Equal(t, token.LitUnit, arg.Kind)
}

func TestDesugarBinaryOperators(t *testing.T) {
	cases := map[token.Op]string{
		token.OpAdd:    "add(a, b)",
		token.OpSub:    "sub(a, b)",
		token.OpMul:    "mul(a, b)",
		token.OpDiv:    "div(a, b)",
		token.OpMod:    "mod(a, b)",
		token.OpEq:     "eq(a, b)",
		token.OpNeq:    "neq(a, b)",
		token.OpLt:     "lt(a, b)",
		token.OpLte:    "lte(a, b)",
		token.OpGt:     "gt(a, b)",
		token.OpGte:    "gte(a, b)",
		token.OpAnd:    "and(a, b)",
		token.OpOr:     "or(a, b)",
		token.OpAppend: "append(a, b)",
	}
	for op, expected := range cases {
		t.Run(op.String(), func(t *testing.T) {
			assertDesugarsTo(t, &ast.BinaryExpr{Left: v("a"), Operator: op, Right: v("b")}, expected)
		})
	}
}

func TestDesugarUnaryOperators(t *testing.T) {
	assertDesugarsTo(t, &ast.UnaryExpr{Operator: token.OpNeg, Operand: v("a")}, "neg(a)")
	assertDesugarsTo(t, &ast.UnaryExpr{Operator: token.OpNot, Operand: v("b")}, "not(b)")
}

func TestDesugarOperatorPrecedenceViaNesting(t *testing.T) {
	// (1 + 2) * 3, already shaped by the parser
	expr := &ast.BinaryExpr{
		Left:     &ast.BinaryExpr{Left: intLit("1"), Operator: token.OpAdd, Right: intLit("2")},
		Operator: token.OpMul,
		Right:    intLit("3"),
	}
	assertDesugarsTo(t, expr, "mul(add(1, 2), 3)")
}

func TestDesugarRecords(t *testing.T) {
	lit := &ast.RecordLit{Fields: []ast.Field{
		{Name: "a", Value: intLit("1")},
		{Name: "b", Value: &ast.Pipe{Arg: v("x"), Func: v("f")}},
	}}
	assertDesugarsTo(t, lit, "{a: 1, b: f(x)}")

	update := &ast.RecordUpdate{Record: v("r"), Fields: []ast.Field{
		{Name: "a", Value: &ast.BinaryExpr{Left: v("a"), Operator: token.OpAdd, Right: intLit("1")}},
	}}
	assertDesugarsTo(t, update, "{r | a: add(a, 1)}")

	assertDesugarsTo(t, &ast.RecordSelect{Record: v("r"), Label: "a"}, "r.a")
}

func TestDesugarVariant(t *testing.T) {
	assertDesugarsTo(t, &ast.Variant{Label: "Nothing"}, "Nothing")
	assertDesugarsTo(t,
		&ast.Variant{Label: "Just", Args: []ast.Expr{&ast.Pipe{Arg: v("a"), Func: v("f")}}},
		"Just(f(a))")
}

func TestDesugarSugarInsideSugar(t *testing.T) {
	// if (a |> p) then [1] else []
	expr := &ast.If{
		Cond: &ast.Pipe{Arg: v("a"), Func: v("p")},
		Then: &ast.ListLit{Elems: []ast.ListElem{{Expr: intLit("1")}}},
		Else: &ast.ListLit{},
	}
	assertDesugarsTo(t, expr, "when p(a) is true -> Cons(1, Nil) | false -> Nil")
}

func TestDesugarBindInExpressionPositionIsDefect(t *testing.T) {
	stray := bindVar("x", intLit("1"))
	stray.Range = rangeAt(7)
	_, err := frontend.DesugarExpr(stray, frontend.NewNameSource())
	require.NotNil(t, err)
	assert.Equal(t, tarnerr.Internal, err.Code())
}

func TestDesugarNilExpressionIsDefect(t *testing.T) {
	_, err := frontend.DesugarExpr(nil, frontend.NewNameSource())
	require.NotNil(t, err)
	assert.Equal(t, tarnerr.Internal, err.Code())
}

func TestDesugarBoolLiteralPassesThrough(t *testing.T) {
	assertDesugarsTo(t, boolLit("true"), "true")
}
