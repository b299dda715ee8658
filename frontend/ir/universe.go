package ir

// Names of the runtime builtins the desugarer targets. List literals and
// list patterns lower onto the Cons/Nil variants; interleaved spreads
// lower onto the binary concat function.
const (
	ConsLabel  = "Cons"
	NilLabel   = "Nil"
	ConcatFunc = "concat"
)

// Canonical syntax for the literals synthesized by rewrites.
const (
	TrueSyntax  = "true"
	FalseSyntax = "false"
	UnitSyntax  = "()"
)
