// Package tarnerr holds the structured error values the frontend
// reports. Each error carries a source location and, where one exists,
// an actionable hint. Errors are returned, never panicked: desugaring is
// a pure function and its failure paths stay explicit and testable.
package tarnerr

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/tarn-lang/tarn/frontend/token"
)

// enableDebugErrorPrinting makes errors include their stacktrace when printed
const enableDebugErrorPrinting bool = false
const enableDebugFullStacktrace bool = false

type ErrCode int

const (
	None ErrCode = iota
	EmptyBlock
	NonLetInBlock
	DuplicateBinding
	DuplicateDeclaration
	Internal
)

type TarnError interface {
	Error() string
	Code() ErrCode
	token.Positioner

	withStack([]byte) TarnError
	getStack() []byte
}

// Hinter is implemented by errors that carry a remediation hint.
type Hinter interface {
	Hint() string
}

func FormatWithCode(e TarnError) string {
	if enableDebugErrorPrinting && e.getStack() != nil {
		stack := string(e.getStack())
		if !enableDebugFullStacktrace {
			stack = strings.Split(stack, "\n")[6]
		}
		return fmt.Sprintf("%s:(E%03d) %s", stack, e.Code(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

// Render produces the deterministic user-facing form:
//
//	Error: <message>
//	  at <file>:<line>:<column>
//	  Hint: <hint>
//
// The hint line is omitted when the error carries no hint.
func Render(e TarnError) string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Error: %s\n", e.Error())
	at := e.Pos()
	fmt.Fprintf(sb, "  at %s:%d:%d", at.File, at.Line, at.Column)
	if h, ok := e.(Hinter); ok && h.Hint() != "" {
		fmt.Fprintf(sb, "\n  Hint: %s", h.Hint())
	}
	return sb.String()
}

func New[E TarnError](err E) TarnError {
	return err.withStack(debug.Stack())
}

type Unclassified struct {
	From error
	token.Positioner
	stack []byte
}

func (e Unclassified) Error() string {
	return fmt.Sprintf("unclassified error: %v", e.From)
}
func (e Unclassified) Code() ErrCode    { return None }
func (e Unclassified) getStack() []byte { return e.stack }
func (e Unclassified) withStack(stack []byte) TarnError {
	e.stack = stack
	return e
}

// NewEmptyBlock reports a block with zero statements.
type NewEmptyBlock struct {
	token.Positioner
	stack []byte
}

func (e NewEmptyBlock) Code() ErrCode { return EmptyBlock }
func (e NewEmptyBlock) Error() string {
	return "empty block: a block must end with a value expression"
}
func (e NewEmptyBlock) Hint() string {
	return "add a final expression to the block, or remove the block"
}
func (e NewEmptyBlock) getStack() []byte { return e.stack }
func (e NewEmptyBlock) withStack(stack []byte) TarnError {
	e.stack = stack
	return e
}

// NewNonLetInBlock reports a non-binding statement in a non-final block
// position. Its location is the offending statement's, not the block's.
type NewNonLetInBlock struct {
	token.Positioner
	// Found describes the offending statement, e.g. "function call".
	Found string
	stack []byte
}

func (e NewNonLetInBlock) Code() ErrCode { return NonLetInBlock }
func (e NewNonLetInBlock) Error() string {
	return fmt.Sprintf("non-let in block: every statement before the final expression must be a binding, but found a %s", e.Found)
}
func (e NewNonLetInBlock) Hint() string {
	return "bind the result with 'let name = ...' or move the expression to the end of the block"
}
func (e NewNonLetInBlock) getStack() []byte { return e.stack }
func (e NewNonLetInBlock) withStack(stack []byte) TarnError {
	e.stack = stack
	return e
}

// NewDuplicateBinding reports a name bound more than once by a single
// pattern.
type NewDuplicateBinding struct {
	token.Positioner
	Name  string
	stack []byte
}

func (e NewDuplicateBinding) Code() ErrCode { return DuplicateBinding }
func (e NewDuplicateBinding) Error() string {
	return fmt.Sprintf("name '%s' is bound more than once in the same pattern", e.Name)
}
func (e NewDuplicateBinding) Hint() string {
	return fmt.Sprintf("rename one of the occurrences of '%s', or replace it with '_'", e.Name)
}
func (e NewDuplicateBinding) getStack() []byte { return e.stack }
func (e NewDuplicateBinding) withStack(stack []byte) TarnError {
	e.stack = stack
	return e
}

// NewDuplicateDeclaration reports two top-level declarations sharing a
// name in one module.
type NewDuplicateDeclaration struct {
	token.Positioner
	Name  string
	stack []byte
}

func (e NewDuplicateDeclaration) Code() ErrCode { return DuplicateDeclaration }
func (e NewDuplicateDeclaration) Error() string {
	return fmt.Sprintf("'%s' is declared more than once in this module", e.Name)
}
func (e NewDuplicateDeclaration) getStack() []byte { return e.stack }
func (e NewDuplicateDeclaration) withStack(stack []byte) TarnError {
	e.stack = stack
	return e
}

// NewInternal reports a structural invariant the parser or an earlier
// rewrite step was expected to guarantee. Reaching one of these is a
// compiler defect, not a user error.
type NewInternal struct {
	token.Positioner
	Reason string
	stack  []byte
}

func (e NewInternal) Code() ErrCode { return Internal }
func (e NewInternal) Error() string {
	return fmt.Sprintf("internal desugaring defect: %s", e.Reason)
}
func (e NewInternal) Hint() string {
	return "this is a bug in the compiler, not in your program; please report it"
}
func (e NewInternal) getStack() []byte { return e.stack }
func (e NewInternal) withStack(stack []byte) TarnError {
	e.stack = stack
	return e
}
