package errors

import (
	"errors"
	"fmt"
)

// CompileError is a single latched diagnostic produced by the parser. Where
// is the pre-formatted location fragment ("at 'foo'", "at end", or "" for a
// scanner-level Error token, which carries no lexeme of its own).
type CompileError struct {
	Line    int
	Where   string
	Message string
}

func (e *CompileError) Error() string {
	if e.Where == "" {
		return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error %s: %s", e.Line, e.Where, e.Message)
}

// RuntimeError aborts VM execution. Its rendering matches the trailing
// "[line N] in script" stack fragment the VM appends after any faulting
// instruction.
type RuntimeError struct {
	Line    int
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d] in script", e.Message, e.Line)
}

var Unreachable = errors.New("internal error: entered unreachable code")
