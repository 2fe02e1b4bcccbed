package gherkin

import (
	"errors"
	"fmt"
)

// ErrUnexpectedEOF reports a document that ended where the grammar
// required another line. It carries no position.
var ErrUnexpectedEOF = errors.New("unexpected end of input")

// SyntaxError reports a line the grammar cannot accept. Line counts the
// lines consumed when the error was raised, which equals the 1-based
// number of the offending line.
type SyntaxError struct {
	Line int
	Text string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d: unexpected %q", e.Line, e.Text)
}
