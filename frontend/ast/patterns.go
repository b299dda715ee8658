package ast

import (
	"github.com/tarn-lang/tarn/frontend/token"
)

var (
	_ Pattern = (*VarPattern)(nil)
	_ Pattern = (*WildcardPattern)(nil)
	_ Pattern = (*LiteralPattern)(nil)
	_ Pattern = (*VariantPattern)(nil)
	_ Pattern = (*RecordPattern)(nil)
	_ Pattern = (*ListPattern)(nil)
	_ Pattern = (*OrPattern)(nil)
)

// Pattern is the base for all surface patterns. List and or-patterns are
// surface-only sugar: neither survives desugaring.
type Pattern interface {
	token.Positioner
	PatternName() string
	// Describe is what to call this pattern in error messages.
	Describe() string
	patternNode()
}

// VarPattern binds the matched value to a name.
type VarPattern struct {
	Name string
	token.Range
}

func (p *VarPattern) PatternName() string { return "VarPattern" }
func (p *VarPattern) Describe() string    { return "name pattern" }
func (p *VarPattern) patternNode()        {}

// WildcardPattern matches anything and binds nothing: `_`.
type WildcardPattern struct {
	token.Range
}

func (p *WildcardPattern) PatternName() string { return "WildcardPattern" }
func (p *WildcardPattern) Describe() string    { return "wildcard pattern" }
func (p *WildcardPattern) patternNode()        {}

// LiteralPattern matches a literal value exactly.
type LiteralPattern struct {
	Kind   token.LitKind
	Syntax string
	token.Range
}

func (p *LiteralPattern) PatternName() string { return "LiteralPattern" }
func (p *LiteralPattern) Describe() string    { return "literal pattern" }
func (p *LiteralPattern) patternNode()        {}

// VariantPattern deconstructs a tagged variant: `Just(x)`.
type VariantPattern struct {
	Label string
	Args  []Pattern
	token.Range
}

func (p *VariantPattern) PatternName() string { return "VariantPattern" }
func (p *VariantPattern) Describe() string    { return "variant pattern" }
func (p *VariantPattern) patternNode()        {}

// RecordPattern deconstructs a record: `{a, b: p}`.
type RecordPattern struct {
	Fields []FieldPattern
	token.Range
}

// FieldPattern is one field of a RecordPattern. A nil Pattern means the
// punned form `{a}`, binding the field to a variable of the same name.
type FieldPattern struct {
	token.Range
	Name    string
	Pattern Pattern
}

func (p *RecordPattern) PatternName() string { return "RecordPattern" }
func (p *RecordPattern) Describe() string    { return "record pattern" }
func (p *RecordPattern) patternNode()        {}

// ListPattern matches list structure: `[p1, p2, ...rest]`. Rest is nil
// when the pattern matches an exact length.
type ListPattern struct {
	Elems []Pattern
	Rest  Pattern
	token.Range
}

func (p *ListPattern) PatternName() string { return "ListPattern" }
func (p *ListPattern) Describe() string    { return "list pattern" }
func (p *ListPattern) patternNode()        {}

// OrPattern matches when any alternative matches: `p1 | p2 | p3`.
// The parser guarantees at least two alternatives.
type OrPattern struct {
	Alts []Pattern
	token.Range
}

func (p *OrPattern) PatternName() string { return "OrPattern" }
func (p *OrPattern) Describe() string    { return "or pattern" }
func (p *OrPattern) patternNode()        {}
