package parser

import (
	"testing"

	"github.com/sourcehindi/hindic/internal/ast"
	"github.com/sourcehindi/hindic/internal/lexer"
	"github.com/sourcehindi/hindic/pkg/token"
)

func parseProgram(t *testing.T, input string) (*ast.Program, *Parser) {
	t.Helper()
	l := lexer.New(input)
	p := New(l)
	program := p.ParseProgram()
	return program, p
}

func TestParseAdditionFunction(t *testing.T) {
	input := `पूर्णांक जोड़(पूर्णांक a, पूर्णांक b) { वापस a + b; }`
	program, p := parseProgram(t, input)
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", p.Errors())
	}
	if len(program.Declarations) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(program.Declarations))
	}
	fn, ok := program.Declarations[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected *ast.FunctionDecl, got %T", program.Declarations[0])
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
	if len(fn.Body.Statements) != 1 {
		t.Fatalf("expected 1 statement in body, got %d", len(fn.Body.Statements))
	}
	ret, ok := fn.Body.Statements[0].(*ast.Return)
	if !ok {
		t.Fatalf("expected *ast.Return, got %T", fn.Body.Statements[0])
	}
	bin, ok := ret.Value.(*ast.Binary)
	if !ok || bin.Operator != "+" {
		t.Fatalf("expected binary '+', got %#v", ret.Value)
	}
}

func TestParseVarDeclWithInitializer(t *testing.T) {
	program, p := parseProgram(t, `पूर्णांक x = 1;`)
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", p.Errors())
	}
	decl, ok := program.Declarations[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %T", program.Declarations[0])
	}
	if decl.Type != token.INT {
		t.Errorf("expected INT type, got %s", decl.Type)
	}
}

func TestParseIfElse(t *testing.T) {
	program, p := parseProgram(t, `शून्य f() { अगर (x == 0) लिखो("zero"); वरना लिखो("nonzero"); }`)
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", p.Errors())
	}
	fn := program.Declarations[0].(*ast.FunctionDecl)
	ifStmt, ok := fn.Body.Statements[0].(*ast.If)
	if !ok {
		t.Fatalf("expected *ast.If, got %T", fn.Body.Statements[0])
	}
	if ifStmt.Else == nil {
		t.Fatal("expected else branch")
	}
}

func TestParseForLoop(t *testing.T) {
	program, p := parseProgram(t, `शून्य f() { दौर (पूर्णांक i = 0; i < 10; i = i + 1) { } }`)
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", p.Errors())
	}
	fn := program.Declarations[0].(*ast.FunctionDecl)
	forStmt, ok := fn.Body.Statements[0].(*ast.For)
	if !ok {
		t.Fatalf("expected *ast.For, got %T", fn.Body.Statements[0])
	}
	if forStmt.Initializer == nil || forStmt.Condition == nil || forStmt.Increment == nil {
		t.Fatal("expected all three for-clauses to be present")
	}
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	_, p := parseProgram(t, `शून्य f() { 1 = 2; }`)
	if len(p.Errors()) == 0 {
		t.Fatal("expected an 'Invalid assignment target' diagnostic")
	}
	found := false
	for _, e := range p.Errors() {
		if e.Message == "Invalid assignment target" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected 'Invalid assignment target', got %v", p.Errors())
	}
}

func TestParseMaxParameterCount(t *testing.T) {
	src := `शून्य f(पूर्णांक a, पूर्णांक b, पूर्णांक c, पूर्णांक d, पूर्णांक e, पूर्णांक g, पूर्णांक h, पूर्णांक i, पूर्णांक j) { }`
	_, p := parseProgram(t, src)
	if len(p.Errors()) == 0 {
		t.Fatal("expected a diagnostic for the ninth parameter")
	}
}

func TestParseErrorRecoveryContinuesAfterStatementBoundary(t *testing.T) {
	program, p := parseProgram(t, `शून्य f() { 1 = 2; पूर्णांक y = 3; }`)
	if len(p.Errors()) != 1 {
		t.Fatalf("expected exactly 1 diagnostic (panic mode suppresses further ones until resync), got %d: %v",
			len(p.Errors()), p.Errors())
	}
	fn := program.Declarations[0].(*ast.FunctionDecl)
	if len(fn.Body.Statements) != 2 {
		t.Fatalf("expected parser to recover and parse the second statement, got %d statements", len(fn.Body.Statements))
	}
}

func TestParseMultipleTopLevelDeclarationsProduceNoSpuriousStatements(t *testing.T) {
	// Regression test: ParseProgram/parseBlock must advance past a
	// successfully-parsed declaration's own trailing token (semicolon
	// or closing brace) before looping again, or the loop reparses
	// starting on that leftover token and manufactures a spurious
	// nil-expression declaration plus an "unexpected token" diagnostic.
	program, p := parseProgram(t, `पूर्णांक x = 1; पूर्णांक y = 2;`)
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", p.Errors())
	}
	if len(program.Declarations) != 2 {
		t.Fatalf("expected exactly 2 declarations, got %d: %#v", len(program.Declarations), program.Declarations)
	}
}

func TestParseReservedKeywordsFallThroughToError(t *testing.T) {
	// करो/रुको/जारी are recognized keywords with no grammar production
	// and no registered prefix parse function, so they fall through to
	// the generic "unexpected token" diagnostic in expression position.
	_, p := parseProgram(t, `शून्य f() { जारी; }`)
	if len(p.Errors()) == 0 {
		t.Fatal("expected reserved keyword in statement position to produce a diagnostic")
	}
}

func TestParseUnterminatedStringReportsExactMessage(t *testing.T) {
	_, p := parseProgram(t, `लिखो("hi`)
	if len(p.Errors()) != 1 {
		t.Fatalf("expected exactly 1 diagnostic, got %d: %v", len(p.Errors()), p.Errors())
	}
	if got := p.Errors()[0].Message; got != "Unterminated string" {
		t.Fatalf("expected message %q, got %q", "Unterminated string", got)
	}
}

func TestParseEmptySource(t *testing.T) {
	program, p := parseProgram(t, ``)
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", p.Errors())
	}
	if len(program.Declarations) != 0 {
		t.Fatalf("expected zero declarations, got %d", len(program.Declarations))
	}
}
