// Package codegen walks a checked AST and emits equivalent C-family
// source text, translating Devanagari keywords and standard-library
// calls along the way.
package codegen

import (
	"strings"

	"github.com/sourcehindi/hindic/internal/ast"
	"github.com/sourcehindi/hindic/pkg/token"
)

const indentUnit = "    "

// prelude is the fixed header emitted before the translated program:
// two standard-library includes for I/O and allocation, then a blank line.
const prelude = "#include <stdio.h>\n#include <stdlib.h>\n\n"

// Emitter performs a depth-first walk over the AST, writing target
// source text. Emission is a pure function of the AST and the keyword
// table: the same tree always produces byte-identical output.
type Emitter struct {
	out   strings.Builder
	depth int
}

// New creates an Emitter.
func New() *Emitter {
	return &Emitter{}
}

// Emit renders program as a complete target-language source file.
func Emit(program *ast.Program) string {
	e := New()
	e.out.WriteString(prelude)
	for _, decl := range program.Declarations {
		e.emitDeclaration(decl)
	}
	return e.out.String()
}

func (e *Emitter) indent() string { return strings.Repeat(indentUnit, e.depth) }

func (e *Emitter) emitDeclaration(decl ast.Statement) {
	switch d := decl.(type) {
	case *ast.VarDecl:
		e.out.WriteString(e.indent())
		e.emitVarDecl(d)
		e.out.WriteString("\n")
	case *ast.FunctionDecl:
		e.out.WriteString(e.indent())
		e.emitFunctionDecl(d)
		e.out.WriteString("\n")
	default:
		e.emitStatement(decl)
	}
}

func targetType(t token.Type) string {
	if s, ok := token.TargetKeyword[t]; ok {
		return s
	}
	return "int"
}

func (e *Emitter) emitVarDecl(d *ast.VarDecl) {
	e.out.WriteString(targetType(d.Type))
	e.out.WriteString(" ")
	e.out.WriteString(d.Name.Literal)
	if d.Initializer != nil {
		e.out.WriteString(" = ")
		e.emitExpression(d.Initializer)
	}
	e.out.WriteString(";")
}

func (e *Emitter) emitFunctionDecl(d *ast.FunctionDecl) {
	e.out.WriteString(targetType(d.ReturnType))
	e.out.WriteString(" ")
	e.out.WriteString(d.Name.Literal)
	e.out.WriteString("(")
	for i, p := range d.Params {
		if i > 0 {
			e.out.WriteString(", ")
		}
		e.out.WriteString(targetType(p.Type))
		e.out.WriteString(" ")
		e.out.WriteString(p.Name.Literal)
	}
	e.out.WriteString(") ")
	e.emitBlock(d.Body)
}

func (e *Emitter) emitBlock(b *ast.Block) {
	if len(b.Statements) == 0 {
		e.out.WriteString("{ }")
		return
	}
	e.out.WriteString("{\n")
	e.depth++
	for _, stmt := range b.Statements {
		e.emitDeclaration(stmt)
	}
	e.depth--
	e.out.WriteString(e.indent())
	e.out.WriteString("}")
}

func (e *Emitter) emitStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Block:
		e.out.WriteString(e.indent())
		e.emitBlock(s)
		e.out.WriteString("\n")
	case *ast.If:
		e.out.WriteString(e.indent())
		e.out.WriteString("if (")
		e.emitExpression(s.Condition)
		e.out.WriteString(") ")
		e.emitInlineOrBlock(s.Then)
		if s.Else != nil {
			e.out.WriteString(" else ")
			e.emitInlineOrBlock(s.Else)
		}
		e.out.WriteString("\n")
	case *ast.While:
		e.out.WriteString(e.indent())
		e.out.WriteString("while (")
		e.emitExpression(s.Condition)
		e.out.WriteString(") ")
		e.emitInlineOrBlock(s.Body)
		e.out.WriteString("\n")
	case *ast.For:
		e.out.WriteString(e.indent())
		e.out.WriteString("for (")
		e.emitForClause(s)
		e.out.WriteString(") ")
		e.emitInlineOrBlock(s.Body)
		e.out.WriteString("\n")
	case *ast.Return:
		e.out.WriteString(e.indent())
		e.out.WriteString("return")
		if s.Value != nil {
			e.out.WriteString(" ")
			e.emitExpression(s.Value)
		}
		e.out.WriteString(";\n")
	case *ast.ExpressionStmt:
		e.out.WriteString(e.indent())
		if s.Expression != nil {
			e.emitExpression(s.Expression)
		}
		e.out.WriteString(";\n")
	}
}

// emitInlineOrBlock emits a single-statement body the way the header
// line introduced it: a block keeps its own newline discipline, any
// other statement is emitted without its own indent/newline so it
// lands on the same line as the control-flow header.
func (e *Emitter) emitInlineOrBlock(stmt ast.Statement) {
	if b, ok := stmt.(*ast.Block); ok {
		e.emitBlock(b)
		return
	}
	e.emitBareStatement(stmt)
}

// emitBareStatement renders stmt without leading indentation, for
// placement directly after a control-flow header on the same line.
func (e *Emitter) emitBareStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		if s.Expression != nil {
			e.emitExpression(s.Expression)
		}
		e.out.WriteString(";")
	case *ast.Return:
		e.out.WriteString("return")
		if s.Value != nil {
			e.out.WriteString(" ")
			e.emitExpression(s.Value)
		}
		e.out.WriteString(";")
	case *ast.If, *ast.While, *ast.For:
		// nested control-flow as a bare body keeps its own header but
		// without leading indent, matching the top-level layout rule.
		savedDepth := e.depth
		e.depth = 0
		e.emitStatement(s)
		e.depth = savedDepth
		e.trimTrailingNewline()
	}
}

func (e *Emitter) trimTrailingNewline() {
	str := e.out.String()
	if strings.HasSuffix(str, "\n") {
		e.out.Reset()
		e.out.WriteString(strings.TrimSuffix(str, "\n"))
	}
}

func (e *Emitter) emitForClause(s *ast.For) {
	if s.Initializer != nil {
		switch init := s.Initializer.(type) {
		case *ast.VarDecl:
			e.emitVarDecl(init)
		case *ast.ExpressionStmt:
			if init.Expression != nil {
				e.emitExpression(init.Expression)
			}
			e.out.WriteString(";")
		}
	} else {
		e.out.WriteString(";")
	}
	e.out.WriteString(" ")
	if s.Condition != nil {
		e.emitExpression(s.Condition)
	}
	e.out.WriteString("; ")
	if s.Increment != nil {
		e.emitExpression(s.Increment)
	}
}

func (e *Emitter) emitExpression(expr ast.Expression) {
	switch ex := expr.(type) {
	case *ast.Literal:
		e.emitLiteral(ex)
	case *ast.Variable:
		e.out.WriteString(ex.Name)
	case *ast.Assignment:
		e.out.WriteString(ex.Target.Literal)
		e.out.WriteString(" = ")
		e.emitExpression(ex.Value)
	case *ast.Unary:
		e.emitUnary(ex)
	case *ast.Binary:
		e.out.WriteString("(")
		e.emitExpression(ex.Left)
		e.out.WriteString(" " + ex.Operator + " ")
		e.emitExpression(ex.Right)
		e.out.WriteString(")")
	case *ast.Call:
		e.emitCall(ex)
	}
}

func (e *Emitter) emitLiteral(l *ast.Literal) {
	if l.Token.Type == token.STRING {
		e.out.WriteString("\"")
		e.out.WriteString(l.Token.StringValue)
		e.out.WriteString("\"")
		return
	}
	e.out.WriteString(l.Token.Literal)
}

// emitUnary parenthesizes unary '-' but not unary '!', per the
// translation rules.
func (e *Emitter) emitUnary(u *ast.Unary) {
	if u.Operator == "-" {
		e.out.WriteString("(-")
		e.emitExpression(u.Operand)
		e.out.WriteString(")")
		return
	}
	e.out.WriteString(u.Operator)
	e.emitExpression(u.Operand)
}

// emitCall translates the two known standard-library calls and
// preserves every other callee's identifier bytes verbatim.
func (e *Emitter) emitCall(c *ast.Call) {
	name := c.Callee.Literal
	if target, ok := token.StdlibCall[name]; ok {
		name = target
	}
	e.out.WriteString(name)
	e.out.WriteString("(")
	for i, arg := range c.Args {
		if i > 0 {
			e.out.WriteString(", ")
		}
		e.emitExpression(arg)
	}
	e.out.WriteString(")")
}
