package ir

import (
	"github.com/tarn-lang/tarn/frontend/token"
)

var (
	_ Pattern = (*PVar)(nil)
	_ Pattern = (*PAny)(nil)
	_ Pattern = (*PLiteral)(nil)
	_ Pattern = (*PVariant)(nil)
	_ Pattern = (*PRecord)(nil)
)

// Pattern is the base for core patterns. There is deliberately no list
// pattern and no or-pattern: list patterns are rewritten into Cons/Nil
// variant patterns and or-patterns are expanded into separate match
// cases before pattern desugaring runs.
type Pattern interface {
	token.Positioner
	PatternName() string
	patternNode()
}

// PVar binds the matched value to a name.
type PVar struct {
	Name string
	token.Range
}

func (p *PVar) PatternName() string { return "PVar" }
func (p *PVar) patternNode()        {}

// PAny matches anything and binds nothing.
type PAny struct {
	token.Range
}

func (p *PAny) PatternName() string { return "PAny" }
func (p *PAny) patternNode()        {}

// PLiteral matches a literal value exactly.
type PLiteral struct {
	Kind   token.LitKind
	Syntax string
	token.Range
}

func (p *PLiteral) PatternName() string { return "PLiteral" }
func (p *PLiteral) patternNode()        {}

// PVariant deconstructs a tagged variant.
type PVariant struct {
	Label string
	Args  []Pattern
	token.Range
}

func (p *PVariant) PatternName() string { return "PVariant" }
func (p *PVariant) patternNode()        {}

// PRecord deconstructs a record.
type PRecord struct {
	Fields []PField
	token.Range
}

// PField is one field of a PRecord.
type PField struct {
	token.Range
	Name    string
	Pattern Pattern
}

func (p *PRecord) PatternName() string { return "PRecord" }
func (p *PRecord) patternNode()        {}
