package ast

import (
	"testing"

	"github.com/sourcehindi/hindic/pkg/token"
)

func TestProgramStringConcatenatesDeclarations(t *testing.T) {
	prog := &Program{
		Declarations: []Statement{
			&VarDecl{Token: token.New(token.INT, "पूर्णांक", token.Position{}), Name: token.New(token.IDENT, "x", token.Position{})},
			&VarDecl{Token: token.New(token.INT, "पूर्णांक", token.Position{}), Name: token.New(token.IDENT, "y", token.Position{})},
		},
	}
	if want := "पूर्णांक x;पूर्णांक y;"; prog.String() != want {
		t.Fatalf("got %q, want %q", prog.String(), want)
	}
}

func TestProgramPosEmptyDefaultsToOne(t *testing.T) {
	prog := &Program{}
	pos := prog.Pos()
	if pos.Line != 1 || pos.Column != 1 {
		t.Fatalf("expected (1,1) for an empty program, got %+v", pos)
	}
}

func TestBinaryStringIsParenthesized(t *testing.T) {
	bin := &Binary{
		Left:     &Variable{Name: "a"},
		Operator: "+",
		Right:    &Variable{Name: "b"},
	}
	if bin.String() != "(a + b)" {
		t.Fatalf("got %q, want %q", bin.String(), "(a + b)")
	}
}

func TestCallStringJoinsArguments(t *testing.T) {
	call := &Call{
		Callee: token.New(token.IDENT, "जोड़", token.Position{}),
		Args:   []Expression{&Variable{Name: "a"}, &Variable{Name: "b"}},
	}
	if call.String() != "जोड़(a, b)" {
		t.Fatalf("got %q", call.String())
	}
}

func TestLiteralStringQuotesStrings(t *testing.T) {
	lit := &Literal{Token: token.Token{Type: token.STRING, StringValue: "hi"}}
	if lit.String() != `"hi"` {
		t.Fatalf("got %q", lit.String())
	}
}
