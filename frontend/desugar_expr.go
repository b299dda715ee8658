package frontend

import (
	"github.com/tarn-lang/tarn/frontend/ast"
	"github.com/tarn-lang/tarn/frontend/ir"
	"github.com/tarn-lang/tarn/frontend/tarnerr"
	"github.com/tarn-lang/tarn/frontend/token"
	"github.com/tarn-lang/tarn/util"
)

// builtinForOp maps an operator token to the runtime builtin it lowers
// onto. Operators are surface sugar only; the core tree has no operator
// node.
var builtinForOp = map[token.Op]string{
	token.OpAdd:    "add",
	token.OpSub:    "sub",
	token.OpMul:    "mul",
	token.OpDiv:    "div",
	token.OpMod:    "mod",
	token.OpEq:     "eq",
	token.OpNeq:    "neq",
	token.OpLt:     "lt",
	token.OpLte:    "lte",
	token.OpGt:     "gt",
	token.OpGte:    "gte",
	token.OpAnd:    "and",
	token.OpOr:     "or",
	token.OpAppend: "append",
	token.OpNeg:    "neg",
	token.OpNot:    "not",
}

// DesugarExpr rewrites one surface expression into a core expression.
//
// Dispatch is total over all surface shapes: children are desugared
// first, then the parent is assembled. Unknown or malformed shapes are
// upstream defects and fail loudly with an Internal error rather than
// silently dropping information.
func DesugarExpr(expr ast.Expr, names *NameSource) (ir.Expr, tarnerr.TarnError) {
	return desugarExpr(expr, names)
}

func desugarExpr(expr ast.Expr, names *NameSource) (ir.Expr, tarnerr.TarnError) {
	switch expr := expr.(type) {
	case *ast.Literal:
		return &ir.Literal{Kind: expr.Kind, Syntax: expr.Syntax, Range: expr.Range}, nil
	case *ast.Var:
		return &ir.Var{Name: expr.Name, Range: expr.Range}, nil
	case *ast.Block:
		return desugarBlock(expr, names)
	case *ast.If:
		return desugarIf(expr, names)
	case *ast.Func:
		return desugarLambda(expr, names)
	case *ast.Call:
		return desugarCall(expr, names)
	case *ast.Pipe:
		return desugarPipe(expr, names)
	case *ast.Compose:
		return desugarCompose(expr, names)
	case *ast.ListLit:
		return desugarListLit(expr, names)
	case *ast.While:
		return desugarWhile(expr, names)
	case *ast.When:
		return desugarWhen(expr, names)
	case *ast.RecordLit:
		fields, err := desugarFields(expr.Fields, names)
		if err != nil {
			return nil, err
		}
		return &ir.Record{Fields: fields, Range: expr.Range}, nil
	case *ast.RecordUpdate:
		return desugarRecordUpdate(expr, names)
	case *ast.RecordSelect:
		record, err := desugarExpr(expr.Record, names)
		if err != nil {
			return nil, err
		}
		return &ir.RecordSelect{Record: record, Label: expr.Label, Range: expr.Range}, nil
	case *ast.Variant:
		args, err := desugarAll(expr.Args, names)
		if err != nil {
			return nil, err
		}
		return &ir.Variant{Label: expr.Label, Args: args, Range: expr.Range}, nil
	case *ast.BinaryExpr:
		return desugarBinary(expr, names)
	case *ast.UnaryExpr:
		return desugarUnary(expr, names)
	case *ast.Bind:
		// bindings only make sense in non-final block positions; the
		// parser should never emit one anywhere else
		return nil, tarnerr.New(tarnerr.NewInternal{
			Positioner: expr.Range,
			Reason:     "binding statement in expression position",
		})
	case nil:
		return nil, tarnerr.New(tarnerr.NewInternal{
			Positioner: token.Range{},
			Reason:     "missing expression",
		})
	default:
		return nil, tarnerr.New(tarnerr.NewInternal{
			Positioner: token.RangeOf(expr),
			Reason:     "unknown surface expression shape " + expr.ExprName(),
		})
	}
}

func desugarAll(exprs []ast.Expr, names *NameSource) ([]ir.Expr, tarnerr.TarnError) {
	out := make([]ir.Expr, len(exprs))
	for i, e := range exprs {
		desugared, err := desugarExpr(e, names)
		if err != nil {
			return nil, err
		}
		out[i] = desugared
	}
	return out, nil
}

func desugarFields(fields []ast.Field, names *NameSource) ([]ir.Field, tarnerr.TarnError) {
	out := make([]ir.Field, len(fields))
	for i, field := range fields {
		value, err := desugarExpr(field.Value, names)
		if err != nil {
			return nil, err
		}
		out[i] = ir.Field{Range: field.Range, Name: field.Name, Value: value}
	}
	return out, nil
}

// desugarBlock folds a statement sequence into nested lets, right to
// left: the final expression becomes the innermost body, and each
// preceding binding wraps it. Each let carries the binding's own
// location, not the block's.
func desugarBlock(block *ast.Block, names *NameSource) (ir.Expr, tarnerr.TarnError) {
	if len(block.Stmts) == 0 {
		return nil, tarnerr.New(tarnerr.NewEmptyBlock{Positioner: block.Range})
	}
	body, err := desugarExpr(block.Stmts[len(block.Stmts)-1], names)
	if err != nil {
		return nil, err
	}
	for stmt := range util.Reverse(block.Stmts[:len(block.Stmts)-1]) {
		bind, ok := stmt.(*ast.Bind)
		if !ok {
			return nil, tarnerr.New(tarnerr.NewNonLetInBlock{
				Positioner: token.RangeOf(stmt),
				Found:      stmt.Describe(),
			})
		}
		pattern, err := desugarBindingPattern(bind.Pattern)
		if err != nil {
			return nil, err
		}
		value, err := desugarExpr(bind.Value, names)
		if err != nil {
			return nil, err
		}
		body = &ir.Let{
			Pattern:   pattern,
			Value:     value,
			Body:      body,
			Mutable:   bind.Mutable,
			Recursive: bind.Recursive,
			Range:     bind.Range,
		}
	}
	return body, nil
}

// desugarIf rewrites `if C then T else E` into a two-case match on the
// condition, literal-true case first. No short-circuiting or constant
// folding happens here.
func desugarIf(e *ast.If, names *NameSource) (ir.Expr, tarnerr.TarnError) {
	cond, err := desugarExpr(e.Cond, names)
	if err != nil {
		return nil, err
	}
	thenBody, err := desugarExpr(e.Then, names)
	if err != nil {
		return nil, err
	}
	elseBody, err := desugarExpr(e.Else, names)
	if err != nil {
		return nil, err
	}
	return &ir.When{
		Value: cond,
		Cases: []ir.Case{
			{
				Range:   token.RangeOf(e.Then),
				Pattern: &ir.PLiteral{Kind: token.LitBool, Syntax: ir.TrueSyntax, Range: e.Range},
				Body:    thenBody,
			},
			{
				Range:   token.RangeOf(e.Else),
				Pattern: &ir.PLiteral{Kind: token.LitBool, Syntax: ir.FalseSyntax, Range: e.Range},
				Body:    elseBody,
			},
		},
		Range: e.Range,
	}, nil
}

// desugarLambda curries an N-parameter lambda into N nested
// single-parameter functions, outermost binding the first parameter.
func desugarLambda(fn *ast.Func, names *NameSource) (ir.Expr, tarnerr.TarnError) {
	if len(fn.Params) == 0 {
		return nil, tarnerr.New(tarnerr.NewInternal{
			Positioner: fn.Range,
			Reason:     "lambda with zero parameters",
		})
	}
	body, err := desugarExpr(fn.Body, names)
	if err != nil {
		return nil, err
	}
	for param := range util.Reverse(fn.Params) {
		pattern, err := desugarBindingPattern(param)
		if err != nil {
			return nil, err
		}
		body = &ir.Func{Param: pattern, Body: body, Range: fn.Range}
	}
	return body, nil
}

func desugarCall(call *ast.Call, names *NameSource) (ir.Expr, tarnerr.TarnError) {
	fn, err := desugarExpr(call.Func, names)
	if err != nil {
		return nil, err
	}
	args, err := desugarAll(call.Args, names)
	if err != nil {
		return nil, err
	}
	return &ir.Call{Func: fn, Args: args, Range: call.Range}, nil
}

// desugarPipe rewrites `a |> f` into `f(a)`. Currying covers targets
// that were already partially applied in surface syntax.
func desugarPipe(pipe *ast.Pipe, names *NameSource) (ir.Expr, tarnerr.TarnError) {
	arg, err := desugarExpr(pipe.Arg, names)
	if err != nil {
		return nil, err
	}
	fn, err := desugarExpr(pipe.Func, names)
	if err != nil {
		return nil, err
	}
	return &ir.Call{Func: fn, Args: []ir.Expr{arg}, Range: pipe.Range}, nil
}

// desugarCompose rewrites `f >> g` into `fn x -> g(f(x))` and `f << g`
// into `fn x -> f(g(x))`, with x freshly generated so it cannot collide
// with anything free in f or g.
func desugarCompose(compose *ast.Compose, names *NameSource) (ir.Expr, tarnerr.TarnError) {
	left, err := desugarExpr(compose.Left, names)
	if err != nil {
		return nil, err
	}
	right, err := desugarExpr(compose.Right, names)
	if err != nil {
		return nil, err
	}
	inner, outer := left, right
	if compose.Backward {
		inner, outer = right, left
	}
	param := names.Next("composed")
	body := &ir.Call{
		Func: outer,
		Args: []ir.Expr{&ir.Call{
			Func:  inner,
			Args:  []ir.Expr{&ir.Var{Name: param, Range: compose.Range}},
			Range: compose.Range,
		}},
		Range: compose.Range,
	}
	return &ir.Func{
		Param: &ir.PVar{Name: param, Range: compose.Range},
		Body:  body,
		Range: compose.Range,
	}, nil
}

// desugarListLit lowers a list literal onto Cons/Nil and concat,
// folding right to left:
//
//	ordinary element -> Cons(elem, acc)
//	spread element   -> concat(spread, acc), or the spread itself when
//	                    it is the rightmost segment
//
// so `[1, ...rest]` degenerates to `Cons(1, rest)` with no concat call,
// while interleaved spreads still combine correctly. Synthesized nodes
// reuse the list's location.
func desugarListLit(list *ast.ListLit, names *NameSource) (ir.Expr, tarnerr.TarnError) {
	elems := make([]ir.Expr, len(list.Elems))
	for i, elem := range list.Elems {
		desugared, err := desugarExpr(elem.Expr, names)
		if err != nil {
			return nil, err
		}
		elems[i] = desugared
	}
	var acc ir.Expr
	for i := len(elems) - 1; i >= 0; i-- {
		if list.Elems[i].Spread {
			if acc == nil {
				acc = elems[i]
				continue
			}
			acc = &ir.Call{
				Func:  &ir.Var{Name: ir.ConcatFunc, Range: list.Range},
				Args:  []ir.Expr{elems[i], acc},
				Range: list.Range,
			}
			continue
		}
		if acc == nil {
			acc = &ir.Variant{Label: ir.NilLabel, Range: list.Range}
		}
		acc = &ir.Variant{Label: ir.ConsLabel, Args: []ir.Expr{elems[i], acc}, Range: list.Range}
	}
	if acc == nil {
		acc = &ir.Variant{Label: ir.NilLabel, Range: list.Range}
	}
	return acc, nil
}

// desugarWhile encodes iteration as tail recursion: a single-binding
// recursive let group whose nullary function matches the condition
// (true: run the body then call itself, false: unit), immediately
// applied to unit. The inner rewrite of a nested loop happens when the
// dispatcher reaches the body, before this binding is finalized.
func desugarWhile(loop *ast.While, names *NameSource) (ir.Expr, tarnerr.TarnError) {
	cond, err := desugarExpr(loop.Cond, names)
	if err != nil {
		return nil, err
	}
	body, err := desugarExpr(loop.Body, names)
	if err != nil {
		return nil, err
	}
	loopName := names.Next("loop")
	unit := func() *ir.Literal {
		return &ir.Literal{Kind: token.LitUnit, Syntax: ir.UnitSyntax, Range: loop.Range}
	}
	selfCall := func() *ir.Call {
		return &ir.Call{
			Func:  &ir.Var{Name: loopName, Range: loop.Range},
			Args:  []ir.Expr{unit()},
			Range: loop.Range,
		}
	}
	loopFn := &ir.Func{
		Param: &ir.PAny{Range: loop.Range},
		Body: &ir.When{
			Value: cond,
			Cases: []ir.Case{
				{
					Range:   loop.Range,
					Pattern: &ir.PLiteral{Kind: token.LitBool, Syntax: ir.TrueSyntax, Range: loop.Range},
					Body: &ir.Let{
						Pattern: &ir.PAny{Range: loop.Range},
						Value:   body,
						Body:    selfCall(),
						Range:   loop.Range,
					},
				},
				{
					Range:   loop.Range,
					Pattern: &ir.PLiteral{Kind: token.LitBool, Syntax: ir.FalseSyntax, Range: loop.Range},
					Body:    unit(),
				},
			},
			Range: loop.Range,
		},
		Range: loop.Range,
	}
	return &ir.LetGroup{
		Bindings: []ir.Binding{{Range: loop.Range, Name: loopName, Value: loopFn}},
		Body:     selfCall(),
		Range:    loop.Range,
	}, nil
}

// desugarWhen expands or-patterns into separate cases (source order,
// first match wins) before desugaring each case's pattern. The case
// body is desugared once and shared by all cases its or-pattern
// expanded into.
func desugarWhen(when *ast.When, names *NameSource) (ir.Expr, tarnerr.TarnError) {
	value, err := desugarExpr(when.Value, names)
	if err != nil {
		return nil, err
	}
	var cases []ir.Case
	for _, c := range when.Cases {
		body, err := desugarExpr(c.Body, names)
		if err != nil {
			return nil, err
		}
		for _, alt := range expandOrPatterns(c.Pattern) {
			pattern, err := desugarBindingPattern(alt)
			if err != nil {
				return nil, err
			}
			cases = append(cases, ir.Case{Range: c.Range, Pattern: pattern, Body: body})
		}
	}
	return &ir.When{Value: value, Cases: cases, Range: when.Range}, nil
}

// desugarRecordUpdate recurses into the base and every field value;
// field names and order are preserved. The rule exists so nested sugar
// inside bases and values is fully eliminated.
func desugarRecordUpdate(update *ast.RecordUpdate, names *NameSource) (ir.Expr, tarnerr.TarnError) {
	record, err := desugarExpr(update.Record, names)
	if err != nil {
		return nil, err
	}
	fields, err := desugarFields(update.Fields, names)
	if err != nil {
		return nil, err
	}
	return &ir.RecordUpdate{Record: record, Fields: fields, Range: update.Range}, nil
}

func desugarBinary(bin *ast.BinaryExpr, names *NameSource) (ir.Expr, tarnerr.TarnError) {
	left, err := desugarExpr(bin.Left, names)
	if err != nil {
		return nil, err
	}
	right, err := desugarExpr(bin.Right, names)
	if err != nil {
		return nil, err
	}
	builtin, ok := builtinForOp[bin.Operator]
	if !ok {
		return nil, tarnerr.New(tarnerr.NewInternal{
			Positioner: bin.Range,
			Reason:     "no builtin for operator " + bin.Operator.String(),
		})
	}
	return &ir.Call{
		Func:  &ir.Var{Name: builtin, Range: bin.Range},
		Args:  []ir.Expr{left, right},
		Range: bin.Range,
	}, nil
}

func desugarUnary(unary *ast.UnaryExpr, names *NameSource) (ir.Expr, tarnerr.TarnError) {
	operand, err := desugarExpr(unary.Operand, names)
	if err != nil {
		return nil, err
	}
	builtin, ok := builtinForOp[unary.Operator]
	if !ok {
		return nil, tarnerr.New(tarnerr.NewInternal{
			Positioner: unary.Range,
			Reason:     "no builtin for operator " + unary.Operator.String(),
		})
	}
	return &ir.Call{
		Func:  &ir.Var{Name: builtin, Range: unary.Range},
		Args:  []ir.Expr{operand},
		Range: unary.Range,
	}, nil
}
