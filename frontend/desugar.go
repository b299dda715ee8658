package frontend

import (
	"slices"
	"sort"

	"github.com/tarn-lang/tarn/frontend/ast"
	"github.com/tarn-lang/tarn/frontend/ir"
	"github.com/tarn-lang/tarn/frontend/tarnerr"
	"github.com/tarn-lang/tarn/frontend/token"
	"github.com/tarn-lang/tarn/internal/log"
	"github.com/tarn-lang/tarn/util"
	"github.com/xtgo/set"
)

var logger = log.DefaultLogger.With("section", "desugar")

// DesugarModule rewrites one surface module into a core module.
//
// Imports, exports, and declaration order pass through verbatim; only
// declaration bodies change shape. Each module gets its own fresh-name
// generator, so modules may be desugared in parallel by callers as long
// as every call receives a distinct ast.Module value.
//
// The first error aborts the module: there is no partial output.
func DesugarModule(module ast.Module) (ir.Module, *tarnerr.Errors) {
	var res *tarnerr.Errors
	names := NewNameSource()

	if err := checkDuplicateDeclarations(module); err != nil {
		return ir.Module{}, res.With(err)
	}

	out := ir.Module{
		Range:        module.Range,
		Name:         module.Name,
		Imports:      util.Map(module.Imports, convertImport),
		Declarations: make([]ir.Declaration, 0, len(module.Declarations)),
	}

	for _, decl := range module.Declarations {
		switch decl := decl.(type) {
		case *ast.LetDeclaration:
			value, err := desugarExpr(decl.Value, names)
			if err != nil {
				logger.Debug("aborting module desugar",
					"module", module.Name, "decl", decl.Name, "err", err.Error())
				return ir.Module{}, res.With(err)
			}
			out.Declarations = append(out.Declarations, &ir.LetDeclaration{
				Range:     decl.Range,
				Name:      decl.Name,
				Value:     value,
				Exported:  decl.Exported,
				Mutable:   decl.Mutable,
				Recursive: decl.Recursive,
				Comments:  decl.Comments,
			})
		case *ast.TypeDeclaration:
			out.Declarations = append(out.Declarations, &ir.TypeDeclaration{
				Range:  decl.Range,
				Name:   decl.Name,
				Params: slices.Clone(decl.Params),
				Variants: util.Map(decl.Variants, func(v ast.VariantDef) ir.VariantDef {
					return ir.VariantDef{
						Range: v.Range,
						Label: v.Label,
						Args:  util.Map(v.Args, convertType),
					}
				}),
				Exported: decl.Exported,
			})
		case *ast.ExternalDeclaration:
			out.Declarations = append(out.Declarations, &ir.ExternalDeclaration{
				Range:    decl.Range,
				Name:     decl.Name,
				Type:     convertType(decl.Type),
				Exported: decl.Exported,
			})
		default:
			err := tarnerr.New(tarnerr.NewInternal{
				Positioner: token.RangeOf(decl),
				Reason:     "unknown declaration shape",
			})
			return ir.Module{}, res.With(err)
		}
	}

	logger.Debug("desugared module", "module", module.Name, "decls", len(out.Declarations))
	return out, res
}

// DesugarPackage desugars an ordered module list, one fresh-name
// generator per module. Modules are independent: an error in one aborts
// that module only, and all errors are collected.
func DesugarPackage(modules []ast.Module) ([]ir.Module, *tarnerr.Errors) {
	var res *tarnerr.Errors
	out := make([]ir.Module, 0, len(modules))
	for _, module := range modules {
		desugared, errs := DesugarModule(module)
		if errs.HasError() {
			res = res.Merge(errs)
			continue
		}
		out = append(out, desugared)
	}
	return out, res
}

// checkDuplicateDeclarations rejects a module that declares the same
// top-level name twice.
func checkDuplicateDeclarations(module ast.Module) tarnerr.TarnError {
	names := util.Map(module.Declarations, ast.Declaration.DeclaredName)
	sorted := slices.Clone(names)
	sort.Strings(sorted)
	if set.Uniq(sort.StringSlice(sorted)) == len(sorted) {
		return nil
	}
	// a duplicate exists; find the second occurrence in source order so
	// the error points at it
	seen := make(map[string]bool, len(names))
	for i, name := range names {
		if seen[name] {
			return tarnerr.New(tarnerr.NewDuplicateDeclaration{
				Positioner: token.RangeOf(module.Declarations[i]),
				Name:       name,
			})
		}
		seen[name] = true
	}
	return nil
}

func convertImport(imp ast.Import) ir.Import {
	return ir.Import{
		Range:      imp.Range,
		Alias:      imp.Alias,
		ImportPath: imp.ImportPath,
		Exposing:   slices.Clone(imp.Exposing),
	}
}

// convertType copies a surface type expression structurally. Types
// carry no sugar; this is a shape-for-shape copy into the core tree.
func convertType(t ast.Type) ir.Type {
	switch t := t.(type) {
	case *ast.NamedType:
		return &ir.NamedType{
			Name:  t.Name,
			Args:  util.Map(t.Args, convertType),
			Range: t.Range,
		}
	case *ast.TypeVar:
		return &ir.TypeVar{Name: t.Name, Range: t.Range}
	case *ast.FuncType:
		return &ir.FuncType{
			Arg:   convertType(t.Arg),
			Ret:   convertType(t.Ret),
			Range: t.Range,
		}
	case *ast.RecordType:
		return &ir.RecordType{
			Fields: util.Map(t.Fields, func(f ast.TypeField) ir.TypeField {
				return ir.TypeField{Range: f.Range, Name: f.Name, Type: convertType(f.Type)}
			}),
			Range: t.Range,
		}
	case nil:
		return nil
	default:
		logger.Warn("unknown surface type shape, dropping", "type", t.TypeName())
		return nil
	}
}
