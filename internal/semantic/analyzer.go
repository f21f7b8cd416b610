package semantic

import (
	"fmt"

	"github.com/sourcehindi/hindic/internal/ast"
	"github.com/sourcehindi/hindic/internal/types"
	"github.com/sourcehindi/hindic/pkg/token"
)

// Analyzer validates an AST against the language's scope and type
// rules. It annotates nothing: types are computed on demand during
// checking rather than stored back on the tree.
type Analyzer struct {
	scope *SymbolTable

	// currentFunction is the enclosing FunctionDecl during a body
	// visit, threaded explicitly instead of through a package-level
	// variable, so nested analyzer instances never interfere.
	currentFunction *ast.FunctionDecl

	errors []*SemanticError
}

// NewAnalyzer creates an Analyzer with a fresh top-level scope.
func NewAnalyzer() *Analyzer {
	return &Analyzer{scope: NewSymbolTable()}
}

// Errors returns every diagnostic accumulated during Analyze.
func (a *Analyzer) Errors() []*SemanticError { return a.errors }

func (a *Analyzer) addError(kind ErrorKind, pos token.Position, format string, args ...any) {
	a.errors = append(a.errors, &SemanticError{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)})
}

func (a *Analyzer) beginScope() { a.scope = NewEnclosedSymbolTable(a.scope) }
func (a *Analyzer) endScope()   { a.scope = a.scope.Outer() }

// Analyze runs both passes over program and returns nil iff there were
// zero diagnostics.
func (a *Analyzer) Analyze(program *ast.Program) error {
	a.hoistFunctions(program)
	for _, decl := range program.Declarations {
		a.checkDeclaration(decl)
	}
	if len(a.errors) > 0 {
		return fmt.Errorf("semantic analysis failed with %d error(s)", len(a.errors))
	}
	return nil
}

// hoistFunctions registers every top-level function's signature before
// any body is checked, so mutual and forward references resolve.
// Variables are never hoisted.
func (a *Analyzer) hoistFunctions(program *ast.Program) {
	for _, decl := range program.Declarations {
		fn, ok := decl.(*ast.FunctionDecl)
		if !ok {
			continue
		}
		if a.scope.IsDeclaredInCurrentScope(fn.Name.Normalized) {
			a.addError(Redeclaration, fn.Name.Pos, "Function '%s' is already declared", fn.Name.Literal)
			continue
		}
		retType, _ := types.FromTokenType(fn.ReturnType)
		params := make([]types.Type, len(fn.Params))
		for i, p := range fn.Params {
			pt, _ := types.FromTokenType(p.Type)
			params[i] = pt
		}
		a.scope.Define(fn.Name.Normalized, fn.Name.Literal, &types.FunctionType{Params: params, Return: retType})
	}
}

func (a *Analyzer) checkDeclaration(decl ast.Statement) {
	switch d := decl.(type) {
	case *ast.VarDecl:
		a.checkVarDecl(d)
	case *ast.FunctionDecl:
		a.checkFunctionDecl(d)
	default:
		a.checkStatement(decl)
	}
}

func (a *Analyzer) checkVarDecl(d *ast.VarDecl) {
	declType, ok := types.FromTokenType(d.Type)
	if !ok {
		declType = types.Error
	}

	if a.scope.IsDeclaredInCurrentScope(d.Name.Normalized) {
		a.addError(Redeclaration, d.Name.Pos, "Variable '%s' is already declared in this scope", d.Name.Literal)
	} else {
		a.scope.Define(d.Name.Normalized, d.Name.Literal, declType)
	}

	if d.Initializer != nil {
		initType := a.checkExpression(d.Initializer)
		if !types.Equals(initType, declType) {
			a.addError(TypeMismatch, d.Pos(), "Type mismatch in variable initialization")
		}
	}
}

func (a *Analyzer) checkFunctionDecl(d *ast.FunctionDecl) {
	// Registration happened in hoistFunctions; depth-zero redeclaration
	// was already diagnosed there.
	a.beginScope()
	for _, p := range d.Params {
		pt, ok := types.FromTokenType(p.Type)
		if !ok {
			pt = types.Error
		}
		if p.Name.Literal != "" {
			if a.scope.IsDeclaredInCurrentScope(p.Name.Normalized) {
				a.addError(Redeclaration, p.Name.Pos, "Parameter '%s' is already declared", p.Name.Literal)
			} else {
				a.scope.Define(p.Name.Normalized, p.Name.Literal, pt)
			}
		}
	}

	prevFn := a.currentFunction
	a.currentFunction = d
	a.checkBlock(d.Body)
	a.currentFunction = prevFn

	a.endScope()
}

func (a *Analyzer) checkBlock(b *ast.Block) {
	a.beginScope()
	for _, stmt := range b.Statements {
		a.checkDeclaration(stmt)
	}
	a.endScope()
}

func (a *Analyzer) checkStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Block:
		a.checkBlock(s)
	case *ast.If:
		a.checkCondition(s.Condition)
		a.checkDeclaration(s.Then)
		if s.Else != nil {
			a.checkDeclaration(s.Else)
		}
	case *ast.While:
		a.checkCondition(s.Condition)
		a.checkDeclaration(s.Body)
	case *ast.For:
		a.beginScope()
		if s.Initializer != nil {
			a.checkDeclaration(s.Initializer)
		}
		if s.Condition != nil {
			a.checkCondition(s.Condition)
		}
		if s.Increment != nil {
			a.checkExpression(s.Increment)
		}
		a.checkDeclaration(s.Body)
		a.endScope()
	case *ast.Return:
		a.checkReturn(s)
	case *ast.ExpressionStmt:
		if s.Expression != nil {
			a.checkExpression(s.Expression)
		}
	}
}

func (a *Analyzer) checkCondition(expr ast.Expression) {
	t := a.checkExpression(expr)
	if !types.Equals(t, types.Int) {
		a.addError(InvalidCondition, expr.Pos(), "Condition must be of type int")
	}
}

func (a *Analyzer) checkReturn(r *ast.Return) {
	var retType types.Type = types.Void
	if a.currentFunction != nil {
		if t, ok := types.FromTokenType(a.currentFunction.ReturnType); ok {
			retType = t
		}
	}

	if r.Value == nil {
		if retType != types.Void {
			a.addError(InvalidReturn, r.Pos(), "Non-void function must return a value")
		}
		return
	}

	valType := a.checkExpression(r.Value)
	if retType == types.Void {
		a.addError(InvalidReturn, r.Pos(), "Void function cannot return a value")
		return
	}
	if !types.Equals(valType, retType) {
		a.addError(TypeMismatch, r.Pos(), "Return value type does not match function return type")
	}
}

// checkExpression computes and returns expr's type, recording any
// diagnostics along the way. A sub-expression that already failed
// typing returns types.Error, which compares equal to everything so
// the failure is not reported a second time at this use site.
func (a *Analyzer) checkExpression(expr ast.Expression) types.Type {
	switch e := expr.(type) {
	case *ast.Literal:
		return a.checkLiteral(e)
	case *ast.Variable:
		return a.checkVariable(e)
	case *ast.Assignment:
		return a.checkAssignment(e)
	case *ast.Unary:
		return a.checkUnary(e)
	case *ast.Binary:
		return a.checkBinary(e)
	case *ast.Call:
		return a.checkCall(e)
	default:
		return types.Error
	}
}

func (a *Analyzer) checkLiteral(l *ast.Literal) types.Type {
	switch l.Token.Type {
	case token.NUMBER:
		if l.Token.IsFloat {
			return types.Float
		}
		return types.Int
	case token.STRING:
		return types.Char
	default:
		return types.Error
	}
}

func (a *Analyzer) checkVariable(v *ast.Variable) types.Type {
	sym, ok := a.scope.Resolve(v.Token.Normalized)
	if !ok {
		a.addError(UndeclaredVariable, v.Pos(), "Undefined variable")
		return types.Error
	}
	// Rewrite this reference to the declaration's own spelling, so two
	// NFC-equivalent-but-byte-different spellings of one identifier
	// always emit as the same name.
	v.Token.Literal = sym.Literal
	v.Name = sym.Literal
	return sym.Type
}

func (a *Analyzer) checkAssignment(assign *ast.Assignment) types.Type {
	sym, ok := a.scope.Resolve(assign.Target.Normalized)
	valType := a.checkExpression(assign.Value)
	if !ok {
		a.addError(UndeclaredVariable, assign.Target.Pos, "Undefined variable")
		return types.Error
	}
	assign.Target.Literal = sym.Literal
	if !types.Equals(valType, sym.Type) {
		a.addError(TypeMismatch, assign.Pos(), "Type mismatch in assignment")
	}
	return valType
}

func (a *Analyzer) checkUnary(u *ast.Unary) types.Type {
	operand := a.checkExpression(u.Operand)
	switch u.Operator {
	case "-":
		if !types.IsNumeric(operand) && operand != types.Error {
			a.addError(InvalidOperand, u.Pos(), "Operand of unary '-' must be int or float")
		}
		return operand
	case "!":
		if operand == types.Error {
			return types.Error
		}
		if operand != types.Int {
			a.addError(InvalidOperand, u.Pos(), "Operand of unary '!' must be int")
		}
		return types.Int
	default:
		return types.Error
	}
}

func (a *Analyzer) checkBinary(b *ast.Binary) types.Type {
	left := a.checkExpression(b.Left)
	right := a.checkExpression(b.Right)
	if left == types.Error || right == types.Error {
		return types.Error
	}

	switch b.Operator {
	case "+", "-", "*", "/", "%":
		if !validArithmeticOperand(left) || !validArithmeticOperand(right) {
			a.addError(InvalidOperand, b.Pos(), "Operands of '%s' must be int or float", b.Operator)
			return types.Error
		}
		if left == types.Float || right == types.Float {
			return types.Float
		}
		return types.Int
	case "==", "!=", "<", ">", "<=", ">=":
		if !types.Equals(left, right) {
			a.addError(TypeMismatch, b.Pos(), "Operands of '%s' must have the same type", b.Operator)
		}
		return types.Int
	case "&&", "||":
		if (left != types.Int && left != types.Error) || (right != types.Int && right != types.Error) {
			a.addError(InvalidOperand, b.Pos(), "Operands of '%s' must be int", b.Operator)
		}
		return types.Int
	default:
		return types.Error
	}
}

func validArithmeticOperand(t types.Type) bool {
	return types.IsNumeric(t) || t == types.Error
}

func (a *Analyzer) checkCall(c *ast.Call) types.Type {
	sym, ok := a.scope.Resolve(c.Callee.Normalized)
	argTypes := make([]types.Type, len(c.Args))
	for i, arg := range c.Args {
		argTypes[i] = a.checkExpression(arg)
	}

	if !ok {
		a.addError(UndeclaredFunction, c.Pos(), "Undefined function '%s'", c.Callee.Literal)
		return types.Error
	}
	c.Callee.Literal = sym.Literal
	fnType, ok := sym.Type.(*types.FunctionType)
	if !ok {
		a.addError(UndeclaredFunction, c.Pos(), "'%s' is not a function", c.Callee.Literal)
		return types.Error
	}
	if len(argTypes) != len(fnType.Params) {
		a.addError(ArityMismatch, c.Pos(), "Function '%s' expects %d argument(s), got %d",
			c.Callee.Literal, len(fnType.Params), len(argTypes))
		return fnType.Return
	}
	for i, at := range argTypes {
		if !types.Equals(at, fnType.Params[i]) {
			a.addError(TypeMismatch, c.Args[i].Pos(), "Argument %d type does not match parameter type", i+1)
		}
	}
	return fnType.Return
}
