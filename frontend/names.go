package frontend

import (
	"fmt"
)

// NameSource produces hygienic binder names for synthesized bindings.
// Generated names start with '$', which the lexer rejects in user
// identifiers, so a generated name can never capture or be captured.
//
// A NameSource is owned by a single desugaring run and is mutated
// sequentially; it must not be shared across concurrent runs.
type NameSource struct {
	counter int
}

func NewNameSource() *NameSource {
	return &NameSource{}
}

// Next returns a fresh name carrying the given prefix, e.g. "$loop_1".
func (s *NameSource) Next(prefix string) string {
	s.counter++
	return fmt.Sprintf("$%s_%d", prefix, s.counter)
}

// Reset restarts the counter. Fresh names are local to a module, so a
// reset source may be reused for the next module; tests rely on this
// for deterministic names.
func (s *NameSource) Reset() {
	s.counter = 0
}
