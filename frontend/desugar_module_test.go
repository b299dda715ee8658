package frontend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tarn-lang/tarn/frontend"
	"github.com/tarn-lang/tarn/frontend/ast"
	"github.com/tarn-lang/tarn/frontend/ir"
	"github.com/tarn-lang/tarn/frontend/tarnerr"
)

func letDecl(name string, value ast.Expr) *ast.LetDeclaration {
	return &ast.LetDeclaration{Name: name, Value: value}
}

func TestDesugarModulePreservesShape(t *testing.T) {
	module := ast.Module{
		Name: "main",
		Imports: []ast.Import{
			{ImportPath: "tarn/list", Alias: "l", Exposing: []string{"map"}},
			{ImportPath: "tarn/io"},
		},
		Declarations: []ast.Declaration{
			&ast.LetDeclaration{Name: "x", Value: intLit("1"), Exported: true},
			letDecl("y", &ast.Pipe{Arg: v("x"), Func: v("f")}),
		},
	}

	desugared, errs := frontend.DesugarModule(module)
	require.False(t, errs.HasError(), "expected no errors, got: %v", errs.Errors())

	assert.Equal(t, "main", desugared.Name)
	require.Len(t, desugared.Imports, 2)
	assert.Equal(t, "tarn/list", desugared.Imports[0].ImportPath)
	assert.Equal(t, "l", desugared.Imports[0].Alias)
	assert.Equal(t, []string{"map"}, desugared.Imports[0].Exposing)

	require.Len(t, desugared.Declarations, 2)
	first, ok := desugared.Declarations[0].(*ir.LetDeclaration)
	require.True(t, ok)
	assert.Equal(t, "x", first.Name)
	assert.True(t, first.Exported)
	assert.Equal(t, "1", ir.ExprString(first.Value))

	second, ok := desugared.Declarations[1].(*ir.LetDeclaration)
	require.True(t, ok)
	assert.Equal(t, "f(x)", ir.ExprString(second.Value))
}

func TestDesugarModuleKeepsDeclarationFlags(t *testing.T) {
	module := ast.Module{
		Name: "main",
		Declarations: []ast.Declaration{
			&ast.LetDeclaration{
				Name:      "count",
				Value:     intLit("0"),
				Mutable:   true,
				Recursive: false,
				Comments:  []string{"a mutable counter"},
			},
		},
	}
	desugared, errs := frontend.DesugarModule(module)
	require.False(t, errs.HasError())
	decl := desugared.Declarations[0].(*ir.LetDeclaration)
	assert.True(t, decl.Mutable)
	assert.Equal(t, []string{"a mutable counter"}, decl.Comments)
}

func TestDesugarModuleCopiesTypeDeclarations(t *testing.T) {
	module := ast.Module{
		Name: "main",
		Declarations: []ast.Declaration{
			&ast.TypeDeclaration{
				Name:   "Maybe",
				Params: []string{"a"},
				Variants: []ast.VariantDef{
					{Label: "Just", Args: []ast.Type{&ast.TypeVar{Name: "a"}}},
					{Label: "Nothing"},
				},
				Exported: true,
			},
			&ast.ExternalDeclaration{
				Name: "concat",
				Type: &ast.FuncType{
					Arg: &ast.NamedType{Name: "List", Args: []ast.Type{&ast.TypeVar{Name: "a"}}},
					Ret: &ast.NamedType{Name: "List", Args: []ast.Type{&ast.TypeVar{Name: "a"}}},
				},
			},
		},
	}
	desugared, errs := frontend.DesugarModule(module)
	require.False(t, errs.HasError())
	require.Len(t, desugared.Declarations, 2)

	typeDecl, ok := desugared.Declarations[0].(*ir.TypeDeclaration)
	require.True(t, ok)
	assert.Equal(t, "Maybe", typeDecl.Name)
	require.Len(t, typeDecl.Variants, 2)
	assert.Equal(t, "Just", typeDecl.Variants[0].Label)
	require.Len(t, typeDecl.Variants[0].Args, 1)
	assert.Equal(t, "a", typeDecl.Variants[0].Args[0].(*ir.TypeVar).Name)

	extDecl, ok := desugared.Declarations[1].(*ir.ExternalDeclaration)
	require.True(t, ok)
	assert.Equal(t, "concat", extDecl.Name)
	fn, ok := extDecl.Type.(*ir.FuncType)
	require.True(t, ok)
	assert.Equal(t, "List", fn.Arg.(*ir.NamedType).Name)
}

func TestDesugarModuleDuplicateDeclaration(t *testing.T) {
	second := letDecl("x", intLit("2"))
	second.Range = rangeAt(4)
	module := ast.Module{
		Name: "main",
		Declarations: []ast.Declaration{
			letDecl("x", intLit("1")),
			second,
		},
	}
	_, errs := frontend.DesugarModule(module)
	require.True(t, errs.HasError())
	require.Len(t, errs.Errors(), 1)
	err := errs.Errors()[0]
	assert.Equal(t, tarnerr.DuplicateDeclaration, err.Code())
	assert.Contains(t, err.Error(), "'x'")
	// the error points at the second declaration, not the first
	assert.Equal(t, rangeAt(4).PosStart, err.Pos())
}

func TestDesugarModuleDuplicateAcrossDeclarationKinds(t *testing.T) {
	module := ast.Module{
		Name: "main",
		Declarations: []ast.Declaration{
			&ast.TypeDeclaration{Name: "thing"},
			letDecl("thing", intLit("1")),
		},
	}
	_, errs := frontend.DesugarModule(module)
	require.True(t, errs.HasError())
	assert.Equal(t, tarnerr.DuplicateDeclaration, errs.Errors()[0].Code())
}

func TestDesugarModuleAbortsOnFirstError(t *testing.T) {
	module := ast.Module{
		Name: "main",
		Declarations: []ast.Declaration{
			letDecl("bad", &ast.Block{}),
			letDecl("good", intLit("1")),
		},
	}
	desugared, errs := frontend.DesugarModule(module)
	require.True(t, errs.HasError())
	assert.Equal(t, tarnerr.EmptyBlock, errs.Errors()[0].Code())
	assert.Empty(t, desugared.Declarations, "a failed module produces no partial output")
}

func TestDesugarModuleFreshNamesRestartPerModule(t *testing.T) {
	compose := func() ast.Expr {
		return &ast.Compose{Left: v("f"), Right: v("g")}
	}
	moduleA := ast.Module{Name: "a", Declarations: []ast.Declaration{letDecl("h", compose())}}
	moduleB := ast.Module{Name: "b", Declarations: []ast.Declaration{letDecl("h", compose())}}

	desugaredA, errs := frontend.DesugarModule(moduleA)
	require.False(t, errs.HasError())
	desugaredB, errs := frontend.DesugarModule(moduleB)
	require.False(t, errs.HasError())

	shownA := ir.ExprString(desugaredA.Declarations[0].(*ir.LetDeclaration).Value)
	shownB := ir.ExprString(desugaredB.Declarations[0].(*ir.LetDeclaration).Value)
	assert.Equal(t, shownA, shownB)
	assert.Contains(t, shownA, "$composed_1")
}

func TestDesugarPackageCollectsErrorsAcrossModules(t *testing.T) {
	modules := []ast.Module{
		{Name: "ok", Declarations: []ast.Declaration{letDecl("x", intLit("1"))}},
		{Name: "bad", Declarations: []ast.Declaration{letDecl("y", &ast.Block{})}},
		{Name: "alsoOk", Declarations: []ast.Declaration{letDecl("z", intLit("2"))}},
	}
	desugared, errs := frontend.DesugarPackage(modules)
	require.True(t, errs.HasError())
	assert.Len(t, errs.Errors(), 1)
	require.Len(t, desugared, 2)
	assert.Equal(t, "ok", desugared[0].Name)
	assert.Equal(t, "alsoOk", desugared[1].Name)
}

func TestModuleStringRendering(t *testing.T) {
	module := ast.Module{
		Name:    "main",
		Imports: []ast.Import{{ImportPath: "tarn/list", Alias: "l"}},
		Declarations: []ast.Declaration{
			letDecl("x", &ast.ListLit{Elems: []ast.ListElem{elem(intLit("1"))}}),
		},
	}
	desugared, errs := frontend.DesugarModule(module)
	require.False(t, errs.HasError())
	assert.Equal(t, "import tarn/list as l\nlet x = Cons(1, Nil)\n", ir.ModuleString(desugared))
}
