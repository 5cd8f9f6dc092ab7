package formula

import "fmt"

// ErrParse indicates a syntax error in a formula.
type ErrParse struct {
	Pos int // byte offset into the input
	Msg string
}

func (e *ErrParse) Error() string {
	return fmt.Sprintf("formula: parse error at offset %d: %s", e.Pos, e.Msg)
}

// ErrUnboundVariable indicates an evaluation against a variable map that
// lacks a binding for one of the formula's free variables.
type ErrUnboundVariable struct {
	Name string
}

func (e *ErrUnboundVariable) Error() string {
	return fmt.Sprintf("formula: unbound variable %q", e.Name)
}
