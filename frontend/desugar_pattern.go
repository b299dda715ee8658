package frontend

import (
	"github.com/hashicorp/go-set/v3"
	"github.com/tarn-lang/tarn/frontend/ast"
	"github.com/tarn-lang/tarn/frontend/ir"
	"github.com/tarn-lang/tarn/frontend/tarnerr"
	"github.com/tarn-lang/tarn/frontend/token"
	"github.com/tarn-lang/tarn/util"
)

// desugarBindingPattern is the entry point for patterns in binding
// position (block bindings, lambda parameters, expanded match cases).
// On top of the structural rewrite it rejects patterns that bind the
// same name twice.
func desugarBindingPattern(pattern ast.Pattern) (ir.Pattern, tarnerr.TarnError) {
	desugared, err := desugarPattern(pattern)
	if err != nil {
		return nil, err
	}
	if err := checkBinders(desugared, set.New[string](4)); err != nil {
		return nil, err
	}
	return desugared, nil
}

// desugarPattern rewrites one surface pattern into a core pattern. List
// patterns lower onto Cons/Nil variant patterns. An or-pattern arriving
// here means case expansion was skipped: that is a defect in this pass,
// not a user error, and fails loudly.
func desugarPattern(pattern ast.Pattern) (ir.Pattern, tarnerr.TarnError) {
	switch pattern := pattern.(type) {
	case *ast.VarPattern:
		return &ir.PVar{Name: pattern.Name, Range: pattern.Range}, nil
	case *ast.WildcardPattern:
		return &ir.PAny{Range: pattern.Range}, nil
	case *ast.LiteralPattern:
		return &ir.PLiteral{Kind: pattern.Kind, Syntax: pattern.Syntax, Range: pattern.Range}, nil
	case *ast.VariantPattern:
		args := make([]ir.Pattern, len(pattern.Args))
		for i, arg := range pattern.Args {
			desugared, err := desugarPattern(arg)
			if err != nil {
				return nil, err
			}
			args[i] = desugared
		}
		return &ir.PVariant{Label: pattern.Label, Args: args, Range: pattern.Range}, nil
	case *ast.RecordPattern:
		fields := make([]ir.PField, len(pattern.Fields))
		for i, field := range pattern.Fields {
			sub := field.Pattern
			if sub == nil {
				// punned field `{a}` binds the field to its own name
				fields[i] = ir.PField{
					Range:   field.Range,
					Name:    field.Name,
					Pattern: &ir.PVar{Name: field.Name, Range: field.Range},
				}
				continue
			}
			desugared, err := desugarPattern(sub)
			if err != nil {
				return nil, err
			}
			fields[i] = ir.PField{Range: field.Range, Name: field.Name, Pattern: desugared}
		}
		return &ir.PRecord{Fields: fields, Range: pattern.Range}, nil
	case *ast.ListPattern:
		return desugarListPattern(pattern)
	case *ast.OrPattern:
		return nil, tarnerr.New(tarnerr.NewInternal{
			Positioner: pattern.Range,
			Reason:     "or-pattern survived case expansion",
		})
	case nil:
		return nil, tarnerr.New(tarnerr.NewInternal{
			Positioner: token.Range{},
			Reason:     "missing pattern",
		})
	default:
		return nil, tarnerr.New(tarnerr.NewInternal{
			Positioner: token.RangeOf(pattern),
			Reason:     "unknown surface pattern shape " + pattern.PatternName(),
		})
	}
}

// desugarListPattern rewrites `[p1, ..., pn, ...rest]` into
// `Cons(p1, ... Cons(pn, rest))`, with Nil as the tail when there is no
// rest pattern. `[...r]` alone is just `r`. Synthesized variant
// patterns reuse the list pattern's location.
func desugarListPattern(pattern *ast.ListPattern) (ir.Pattern, tarnerr.TarnError) {
	var tail ir.Pattern
	if pattern.Rest != nil {
		desugared, err := desugarPattern(pattern.Rest)
		if err != nil {
			return nil, err
		}
		tail = desugared
	} else {
		tail = &ir.PVariant{Label: ir.NilLabel, Range: pattern.Range}
	}
	for elem := range util.Reverse(pattern.Elems) {
		desugared, err := desugarPattern(elem)
		if err != nil {
			return nil, err
		}
		tail = &ir.PVariant{
			Label: ir.ConsLabel,
			Args:  []ir.Pattern{desugared, tail},
			Range: pattern.Range,
		}
	}
	return tail, nil
}

// expandOrPatterns expands a possibly-or surface pattern into its
// alternatives, in source order. Or-patterns nested inside constructor,
// record, or list patterns expand by ordered cartesian product, so the
// result never contains an or-pattern anywhere. A pattern without
// alternatives expands to itself.
func expandOrPatterns(pattern ast.Pattern) []ast.Pattern {
	switch pattern := pattern.(type) {
	case *ast.OrPattern:
		var alts []ast.Pattern
		for _, alt := range pattern.Alts {
			alts = append(alts, expandOrPatterns(alt)...)
		}
		return alts
	case *ast.VariantPattern:
		return util.Map(expandEach(pattern.Args), func(args []ast.Pattern) ast.Pattern {
			return &ast.VariantPattern{Label: pattern.Label, Args: args, Range: pattern.Range}
		})
	case *ast.ListPattern:
		restAlts := []ast.Pattern{nil}
		if pattern.Rest != nil {
			restAlts = expandOrPatterns(pattern.Rest)
		}
		var out []ast.Pattern
		for _, elems := range expandEach(pattern.Elems) {
			for _, rest := range restAlts {
				out = append(out, &ast.ListPattern{Elems: elems, Rest: rest, Range: pattern.Range})
			}
		}
		return out
	case *ast.RecordPattern:
		combos := [][]ast.FieldPattern{nil}
		for _, field := range pattern.Fields {
			subAlts := []ast.Pattern{field.Pattern}
			if field.Pattern != nil {
				subAlts = expandOrPatterns(field.Pattern)
			}
			var next [][]ast.FieldPattern
			for _, combo := range combos {
				for _, alt := range subAlts {
					extended := make([]ast.FieldPattern, len(combo)+1)
					copy(extended, combo)
					extended[len(combo)] = ast.FieldPattern{Range: field.Range, Name: field.Name, Pattern: alt}
					next = append(next, extended)
				}
			}
			combos = next
		}
		return util.Map(combos, func(fields []ast.FieldPattern) ast.Pattern {
			return &ast.RecordPattern{Fields: fields, Range: pattern.Range}
		})
	default:
		return []ast.Pattern{pattern}
	}
}

// expandEach computes the ordered cartesian product of the expansions
// of a pattern list. Earlier positions vary slowest, which keeps the
// expanded cases in source order.
func expandEach(patterns []ast.Pattern) [][]ast.Pattern {
	combos := [][]ast.Pattern{nil}
	for _, pattern := range patterns {
		alts := expandOrPatterns(pattern)
		var next [][]ast.Pattern
		for _, combo := range combos {
			for _, alt := range alts {
				extended := make([]ast.Pattern, len(combo)+1)
				copy(extended, combo)
				extended[len(combo)] = alt
				next = append(next, extended)
			}
		}
		combos = next
	}
	return combos
}

// checkBinders walks a core pattern collecting every bound name,
// rejecting the pattern as soon as one name is bound twice.
func checkBinders(pattern ir.Pattern, bound *set.Set[string]) tarnerr.TarnError {
	switch pattern := pattern.(type) {
	case *ir.PVar:
		if !bound.Insert(pattern.Name) {
			return tarnerr.New(tarnerr.NewDuplicateBinding{
				Positioner: pattern.Range,
				Name:       pattern.Name,
			})
		}
	case *ir.PVariant:
		for _, arg := range pattern.Args {
			if err := checkBinders(arg, bound); err != nil {
				return err
			}
		}
	case *ir.PRecord:
		for _, field := range pattern.Fields {
			if err := checkBinders(field.Pattern, bound); err != nil {
				return err
			}
		}
	}
	return nil
}
