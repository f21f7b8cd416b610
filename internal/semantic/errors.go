package semantic

import (
	"fmt"

	"github.com/sourcehindi/hindic/pkg/token"
)

// ErrorKind classifies a semantic diagnostic.
type ErrorKind int

const (
	UndeclaredVariable ErrorKind = iota
	UndeclaredFunction
	Redeclaration
	TypeMismatch
	ArityMismatch
	InvalidReturn
	InvalidCondition
	InvalidOperand
)

// SemanticError is one semantic diagnostic, positioned in the source.
type SemanticError struct {
	Kind    ErrorKind
	Pos     token.Position
	Message string
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("Line %d, Column %d: Error: %s", e.Pos.Line, e.Pos.Column, e.Message)
}
