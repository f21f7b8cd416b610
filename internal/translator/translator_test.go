package translator

import (
	"strings"
	"testing"
)

func TestTranslateAdditionFunction(t *testing.T) {
	result, err := Translate(`पूर्णांक जोड़(पूर्णांक a, पूर्णांक b) { वापस a + b; }`, "add.hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result.Output, "return (a + b);") {
		t.Fatalf("unexpected output:\n%s", result.Output)
	}
}

func TestTranslateParseFailureStopsBeforeSemanticAnalysis(t *testing.T) {
	_, err := Translate(`शून्य f() { 1 = 2 }`, "bad.hi")
	if err == nil {
		t.Fatal("expected a parse failure")
	}
	failure, ok := err.(*Failure)
	if !ok {
		t.Fatalf("expected *Failure, got %T", err)
	}
	if failure.Stage != StageParse {
		t.Fatalf("expected StageParse, got %s", failure.Stage)
	}
}

func TestTranslateSemanticFailureReportsUndeclaredVariable(t *testing.T) {
	_, err := Translate(`शून्य f() { अगर (y == 0) { } }`, "bad.hi")
	if err == nil {
		t.Fatal("expected a semantic failure")
	}
	failure, ok := err.(*Failure)
	if !ok {
		t.Fatalf("expected *Failure, got %T", err)
	}
	if failure.Stage != StageSemantic {
		t.Fatalf("expected StageSemantic, got %s", failure.Stage)
	}
	if len(failure.Errors) != 1 {
		t.Fatalf("expected exactly 1 diagnostic, got %d", len(failure.Errors))
	}
}

func TestTranslateUnterminatedStringReportsExactMessage(t *testing.T) {
	_, err := Translate(`लिखो("hi`, "bad.hi")
	if err == nil {
		t.Fatal("expected a parse failure")
	}
	failure, ok := err.(*Failure)
	if !ok {
		t.Fatalf("expected *Failure, got %T", err)
	}
	if failure.Stage != StageParse {
		t.Fatalf("expected StageParse, got %s", failure.Stage)
	}
	if len(failure.Errors) != 1 {
		t.Fatalf("expected exactly 1 diagnostic, got %d", len(failure.Errors))
	}
	if got := failure.Errors[0].Message; got != "Unterminated string" {
		t.Fatalf("expected message %q, got %q", "Unterminated string", got)
	}
}

func TestTranslateNFCEquivalentIdentifierSpellingsEmitOneConsistentName(t *testing.T) {
	// Declaration spells the name with a precomposed Devanagari
	// codepoint (U+0929); the reference spells it with the
	// NFD-equivalent base letter plus combining nukta (U+0928 U+093C).
	// They must emit as the same C identifier, using the declaration's
	// own spelling.
	precomposed := string(rune(0x0929))
	decomposed := string(rune(0x0928)) + string(rune(0x093C))
	src := `शून्य f() { पूर्णांक ` + precomposed + ` = 1; ` + decomposed + ` = 2; }`

	result, err := Translate(src, "nfc.hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	declName := "int " + precomposed + " = 1;"
	refName := precomposed + " = 2;"
	if !strings.Contains(result.Output, declName) {
		t.Fatalf("expected declaration spelling %q in output:\n%s", declName, result.Output)
	}
	if !strings.Contains(result.Output, refName) {
		t.Fatalf("expected reference rewritten to declaration spelling %q in output:\n%s", refName, result.Output)
	}
	if strings.Contains(result.Output, decomposed+" = 2;") {
		t.Fatalf("reference must not keep its own decomposed spelling, got:\n%s", result.Output)
	}
}

func TestTranslateEmptySourceProducesOnlyPrelude(t *testing.T) {
	result, err := Translate(``, "empty.hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Program.Declarations) != 0 {
		t.Fatalf("expected zero declarations, got %d", len(result.Program.Declarations))
	}
	if want := "#include <stdio.h>\n#include <stdlib.h>\n\n"; result.Output != want {
		t.Fatalf("expected only the prelude, got:\n%s", result.Output)
	}
}
