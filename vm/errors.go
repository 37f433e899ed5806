package vm

import "fmt"

// RuntimeError is a dispatch-loop failure: a type mismatch on an
// arithmetic, comparison, or negation operand. It carries the source
// line recovered from the chunk's line table so callers can print the
// "[line L] in script" trailer the way the reference reporter does.
type RuntimeError struct {
	Message string
	Line    int
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d] in script", e.Message, e.Line)
}
