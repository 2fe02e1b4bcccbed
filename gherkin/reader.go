package gherkin

import "strings"

// reader walks a document one line at a time. The line slice never
// changes after construction; ReadLine is the only way the position
// moves, and it only moves forward.
type reader struct {
	lines []string
	pos   int
}

func newReader(src string) *reader {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	return &reader{lines: strings.Split(src, "\n")}
}

// EOF reports whether every line has been consumed.
func (r *reader) EOF() bool {
	return r.pos >= len(r.lines)
}

// Peek returns the current line without consuming it.
// Callers must check EOF first.
func (r *reader) Peek() string {
	return r.lines[r.pos]
}

// ReadLine returns the current line and advances past it.
// Callers must check EOF first.
func (r *reader) ReadLine() string {
	line := r.lines[r.pos]
	r.pos++
	return line
}

// Pos is the number of lines consumed so far, which is also the 1-based
// number of the most recently consumed line.
func (r *reader) Pos() int {
	return r.pos
}
