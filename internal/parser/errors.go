// Package parser turns source text into an *ast.Module (spec §4.C).
package parser

import "fmt"

// Policy controls what happens when the parser hits a syntax error.
type Policy int

const (
	// Strict propagates a *SyntaxError to the caller.
	Strict Policy = iota
	// Lenient demotes a syntax error to an empty module, so that the rest
	// of the workspace can keep operating on the other files.
	Lenient
)

// SyntaxError carries the file and line of a parse failure, matching the
// spec §7 ModuleSyntaxError taxonomy entry.
type SyntaxError struct {
	File    string
	Line    int
	Column  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
}
