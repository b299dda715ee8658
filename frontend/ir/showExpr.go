package ir

import (
	"fmt"
	"strings"
)

// ExprString renders a core expression on one line, mostly for tests,
// logs, and the CLI. The rendering is deterministic: two structurally
// equal trees always print the same string.
func ExprString(expr Expr) string {
	ctx := newShowContext()
	ctx.showExprWalker(expr, 0)
	return ctx.String()
}

// PatternString renders a core pattern on one line.
func PatternString(pattern Pattern) string {
	ctx := newShowContext()
	ctx.showPatternWalker(pattern)
	return ctx.String()
}

type showContext struct {
	*strings.Builder
}

func newShowContext() *showContext {
	return &showContext{Builder: &strings.Builder{}}
}

// showExprWalker prints to ctx.
//
// precedences are as follows:
// 0: can be shown on its own
// 1-10: binder forms (let, fn, when) need parentheses
// 30: only atoms can be shown bare (callee or select position)
func (ctx *showContext) showExprWalker(expr Expr, outerPrecedence int16) {
	if expr == nil {
		ctx.WriteString("nil")
		return
	}
	switch expr := expr.(type) {
	case *Literal:
		ctx.WriteString(expr.Syntax)
	case *Var:
		ctx.WriteString(expr.Name)
	case *Call:
		ctx.showExprWalker(expr.Func, 30)
		ctx.WriteString("(")
		for i, arg := range expr.Args {
			if i > 0 {
				ctx.WriteString(", ")
			}
			ctx.showExprWalker(arg, 0)
		}
		ctx.WriteString(")")
	case *Variant:
		ctx.WriteString(expr.Label)
		if len(expr.Args) > 0 {
			ctx.WriteString("(")
			for i, arg := range expr.Args {
				if i > 0 {
					ctx.WriteString(", ")
				}
				ctx.showExprWalker(arg, 0)
			}
			ctx.WriteString(")")
		}
	case *Func:
		ctx.parenIf(outerPrecedence > 0, func() {
			ctx.WriteString("fn ")
			ctx.showPatternWalker(expr.Param)
			ctx.WriteString(" -> ")
			ctx.showExprWalker(expr.Body, 0)
		})
	case *Let:
		ctx.parenIf(outerPrecedence > 0, func() {
			ctx.WriteString("let ")
			if expr.Mutable {
				ctx.WriteString("mut ")
			}
			if expr.Recursive {
				ctx.WriteString("rec ")
			}
			ctx.showPatternWalker(expr.Pattern)
			ctx.WriteString(" = ")
			ctx.showExprWalker(expr.Value, 1)
			ctx.WriteString(" in ")
			ctx.showExprWalker(expr.Body, 0)
		})
	case *LetGroup:
		ctx.parenIf(outerPrecedence > 0, func() {
			ctx.WriteString("let rec ")
			for i, binding := range expr.Bindings {
				if i > 0 {
					ctx.WriteString(" and ")
				}
				ctx.WriteString(binding.Name + " = ")
				ctx.showExprWalker(binding.Value, 1)
			}
			ctx.WriteString(" in ")
			ctx.showExprWalker(expr.Body, 0)
		})
	case *When:
		ctx.parenIf(outerPrecedence > 0, func() {
			ctx.WriteString("when ")
			ctx.showExprWalker(expr.Value, 1)
			ctx.WriteString(" is ")
			for i, c := range expr.Cases {
				if i > 0 {
					ctx.WriteString(" | ")
				}
				ctx.showPatternWalker(c.Pattern)
				ctx.WriteString(" -> ")
				ctx.showExprWalker(c.Body, 1)
			}
		})
	case *Record:
		ctx.WriteString("{")
		for i, field := range expr.Fields {
			if i > 0 {
				ctx.WriteString(", ")
			}
			ctx.WriteString(field.Name + ": ")
			ctx.showExprWalker(field.Value, 0)
		}
		ctx.WriteString("}")
	case *RecordUpdate:
		ctx.WriteString("{")
		ctx.showExprWalker(expr.Record, 1)
		ctx.WriteString(" | ")
		for i, field := range expr.Fields {
			if i > 0 {
				ctx.WriteString(", ")
			}
			ctx.WriteString(field.Name + ": ")
			ctx.showExprWalker(field.Value, 0)
		}
		ctx.WriteString("}")
	case *RecordSelect:
		ctx.showExprWalker(expr.Record, 30)
		ctx.WriteString("." + expr.Label)
	default:
		ctx.WriteString(expr.ExprName())
	}
}

func (ctx *showContext) showPatternWalker(pattern Pattern) {
	if pattern == nil {
		ctx.WriteString("nil")
		return
	}
	switch pattern := pattern.(type) {
	case *PVar:
		ctx.WriteString(pattern.Name)
	case *PAny:
		ctx.WriteString("_")
	case *PLiteral:
		ctx.WriteString(pattern.Syntax)
	case *PVariant:
		ctx.WriteString(pattern.Label)
		if len(pattern.Args) > 0 {
			ctx.WriteString("(")
			for i, arg := range pattern.Args {
				if i > 0 {
					ctx.WriteString(", ")
				}
				ctx.showPatternWalker(arg)
			}
			ctx.WriteString(")")
		}
	case *PRecord:
		ctx.WriteString("{")
		for i, field := range pattern.Fields {
			if i > 0 {
				ctx.WriteString(", ")
			}
			ctx.WriteString(field.Name + ": ")
			ctx.showPatternWalker(field.Pattern)
		}
		ctx.WriteString("}")
	default:
		ctx.WriteString(pattern.PatternName())
	}
}

func (ctx *showContext) parenIf(needed bool, body func()) {
	if needed {
		ctx.WriteString("(")
	}
	body()
	if needed {
		ctx.WriteString(")")
	}
}

// ModuleString renders a whole desugared module, one declaration per line.
func ModuleString(m Module) string {
	sb := &strings.Builder{}
	for _, imp := range m.Imports {
		if imp.Alias != "" {
			fmt.Fprintf(sb, "import %s as %s\n", imp.ImportPath, imp.Alias)
		} else {
			fmt.Fprintf(sb, "import %s\n", imp.ImportPath)
		}
	}
	for _, decl := range m.Declarations {
		switch decl := decl.(type) {
		case *LetDeclaration:
			fmt.Fprintf(sb, "let %s = %s\n", decl.Name, ExprString(decl.Value))
		case *TypeDeclaration:
			labels := make([]string, len(decl.Variants))
			for i, v := range decl.Variants {
				labels[i] = v.Label
			}
			fmt.Fprintf(sb, "type %s = %s\n", decl.Name, strings.Join(labels, " | "))
		case *ExternalDeclaration:
			fmt.Fprintf(sb, "external %s\n", decl.Name)
		}
	}
	return sb.String()
}
