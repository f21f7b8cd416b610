// Package translator orchestrates the lex -> parse -> analyze -> emit
// pipeline into the single operation the CLI driver exposes.
package translator

import (
	"fmt"

	"github.com/sourcehindi/hindic/internal/ast"
	"github.com/sourcehindi/hindic/internal/codegen"
	"github.com/sourcehindi/hindic/internal/errors"
	"github.com/sourcehindi/hindic/internal/lexer"
	"github.com/sourcehindi/hindic/internal/parser"
	"github.com/sourcehindi/hindic/internal/semantic"
)

// Stage identifies which pipeline stage produced a failure.
type Stage int

const (
	StageParse Stage = iota
	StageSemantic
)

func (s Stage) String() string {
	switch s {
	case StageParse:
		return "parsing"
	case StageSemantic:
		return "semantic analysis"
	default:
		return "unknown"
	}
}

// Failure reports which stage failed and the diagnostics it produced.
// The core does not recover across stage boundaries: a Failure means
// later stages never ran.
type Failure struct {
	Stage  Stage
	Errors []*errors.CompilerError
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s failed with %d error(s)", f.Stage, len(f.Errors))
}

// Result is the outcome of a successful translation.
type Result struct {
	Program *ast.Program
	Output  string
}

// Translate runs the full pipeline over source (from file) and returns
// the emitted target text, or a *Failure naming the stage and
// diagnostics if any stage reported an error.
func Translate(source, file string) (*Result, error) {
	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()

	if p.HadError() {
		return nil, &Failure{Stage: StageParse, Errors: parseErrorsToCompilerErrors(p.Errors(), source, file)}
	}

	analyzer := semantic.NewAnalyzer()
	if err := analyzer.Analyze(program); err != nil {
		return nil, &Failure{Stage: StageSemantic, Errors: semanticErrorsToCompilerErrors(analyzer.Errors(), source, file)}
	}

	return &Result{Program: program, Output: codegen.Emit(program)}, nil
}

func parseErrorsToCompilerErrors(errs []parser.ParseError, source, file string) []*errors.CompilerError {
	out := make([]*errors.CompilerError, 0, len(errs))
	for _, e := range errs {
		out = append(out, errors.NewCompilerError(e.Pos, e.Message, source, file))
	}
	return out
}

func semanticErrorsToCompilerErrors(errs []*semantic.SemanticError, source, file string) []*errors.CompilerError {
	out := make([]*errors.CompilerError, 0, len(errs))
	for _, e := range errs {
		out = append(out, errors.NewCompilerError(e.Pos, e.Message, source, file))
	}
	return out
}
