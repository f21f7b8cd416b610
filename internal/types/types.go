// Package types defines the translator's rudimentary type system: the
// four primitive kinds the language supports, plus function signatures.
package types

import (
	"strings"

	"github.com/sourcehindi/hindic/pkg/token"
)

// Type is any of the language's data types.
type Type interface {
	String() string
	equals(other Type) bool
}

// Primitive is one of Int, Float, Char, Void.
type Primitive struct {
	name string
}

func (p *Primitive) String() string { return p.name }

func (p *Primitive) equals(other Type) bool {
	o, ok := other.(*Primitive)
	return ok && o.name == p.name
}

var (
	Int   = &Primitive{name: "int"}
	Float = &Primitive{name: "float"}
	Char  = &Primitive{name: "char"}
	Void  = &Primitive{name: "void"}
	// Error is the sentinel type assigned to an expression whose typing
	// failed; it suppresses cascaded diagnostics (see Equals).
	Error = &Primitive{name: "<error>"}
)

// FunctionType is a function's signature: its parameter types in order
// and its return type.
type FunctionType struct {
	Params []Type
	Return Type
}

func (f *FunctionType) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return f.Return.String() + "(" + strings.Join(parts, ", ") + ")"
}

func (f *FunctionType) equals(other Type) bool {
	o, ok := other.(*FunctionType)
	if !ok || len(o.Params) != len(f.Params) || !Equals(o.Return, f.Return) {
		return false
	}
	for i := range f.Params {
		if !Equals(f.Params[i], o.Params[i]) {
			return false
		}
	}
	return true
}

// Equals reports whether a and b are the same type. Error compares
// equal to everything, so a sub-expression that already failed typing
// does not trigger a second, cascaded diagnostic at its use site.
func Equals(a, b Type) bool {
	if a == Error || b == Error {
		return true
	}
	return a.equals(b)
}

// IsNumeric reports whether t is Int or Float.
func IsNumeric(t Type) bool {
	return t == Int || t == Float
}

// FromTokenType maps a declared-type keyword token to its primitive Type.
func FromTokenType(tt token.Type) (Type, bool) {
	switch tt {
	case token.INT:
		return Int, true
	case token.FLOAT:
		return Float, true
	case token.CHAR:
		return Char, true
	case token.VOID:
		return Void, true
	}
	return nil, false
}
