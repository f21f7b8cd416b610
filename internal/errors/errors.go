// Package errors formats diagnostics produced by the lexer, parser,
// and semantic analyzer into the translator's required output format.
package errors

import (
	"fmt"
	"strings"

	"github.com/sourcehindi/hindic/pkg/token"
)

// CompilerError is one diagnostic, positioned in the source and
// optionally carrying enough context to render a caret diagram.
type CompilerError struct {
	Pos     token.Position
	Message string
	Source  string
	File    string
}

// NewCompilerError builds a CompilerError with source context for Format.
func NewCompilerError(pos token.Position, message, source, file string) *CompilerError {
	return &CompilerError{Pos: pos, Message: message, Source: source, File: file}
}

// Error implements the error interface using the exact diagnostic
// format the translator is required to emit: "Line L, Column C: Error: <message>".
func (e *CompilerError) Error() string {
	return fmt.Sprintf("Line %d, Column %d: Error: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Format renders the diagnostic. verbose adds a source-line and
// caret-pointer diagram below the one-line message; the plain form is
// what the CLI writes to stderr by default.
func (e *CompilerError) Format(verbose bool) string {
	if !verbose || e.Source == "" {
		return e.Error()
	}

	lines := strings.Split(e.Source, "\n")
	if e.Pos.Line < 1 || e.Pos.Line > len(lines) {
		return e.Error()
	}
	sourceLine := lines[e.Pos.Line-1]

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", e.Error())
	fmt.Fprintf(&b, "  %s\n", sourceLine)
	caretCol := e.Pos.Column
	if caretCol < 1 {
		caretCol = 1
	}
	fmt.Fprintf(&b, "  %s^\n", strings.Repeat(" ", caretCol-1))
	return b.String()
}

// FormatErrors joins multiple diagnostics, one per Format call, in
// source order (the order they were reported).
func FormatErrors(errs []*CompilerError, verbose bool) string {
	var b strings.Builder
	for _, e := range errs {
		b.WriteString(e.Format(verbose))
		b.WriteString("\n")
	}
	return b.String()
}
