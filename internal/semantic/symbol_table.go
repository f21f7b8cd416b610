package semantic

import "github.com/sourcehindi/hindic/internal/types"

// Symbol is a named entity: a variable or a function, with its type
// and the scope depth at which it was declared.
type Symbol struct {
	Name  string
	// Literal is the identifier's raw byte spelling as written at its
	// declaration site. Callers are keyed by NFC-normalized name, so two
	// differently-composed spellings of one identifier resolve to a
	// single Symbol; Literal is what every reference should be rewritten
	// to before emission, so the emitted code never mixes spellings of
	// the same name.
	Literal string
	Type    types.Type
	Depth   int
}

// SymbolTable is one scope, chained to its enclosing scope. Re-architected
// from an intrusive linked list into an ordered collection of scopes: a
// name-to-symbol map per scope, walked innermost to outermost on lookup.
type SymbolTable struct {
	symbols map[string]*Symbol
	outer   *SymbolTable
	depth   int
}

// NewSymbolTable creates the top-level (depth zero) symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]*Symbol)}
}

// NewEnclosedSymbolTable opens a new scope nested inside outer.
func NewEnclosedSymbolTable(outer *SymbolTable) *SymbolTable {
	return &SymbolTable{
		symbols: make(map[string]*Symbol),
		outer:   outer,
		depth:   outer.depth + 1,
	}
}

// Depth returns the scope depth of this table (zero at top level).
func (st *SymbolTable) Depth() int { return st.depth }

// Outer returns the enclosing scope, or nil at top level.
func (st *SymbolTable) Outer() *SymbolTable { return st.outer }

// IsDeclaredInCurrentScope reports whether name is already defined at
// this exact scope depth (used to diagnose illegal redeclaration).
func (st *SymbolTable) IsDeclaredInCurrentScope(name string) bool {
	_, ok := st.symbols[name]
	return ok
}

// Define declares name at this scope, recording literal as the canonical
// spelling future references should be rewritten to. Callers must first
// check IsDeclaredInCurrentScope to enforce the no-redeclaration-in-same-scope
// rule.
func (st *SymbolTable) Define(name, literal string, typ types.Type) *Symbol {
	sym := &Symbol{Name: name, Literal: literal, Type: typ, Depth: st.depth}
	st.symbols[name] = sym
	return sym
}

// Resolve walks scopes from innermost to outermost looking for name.
func (st *SymbolTable) Resolve(name string) (*Symbol, bool) {
	for s := st; s != nil; s = s.outer {
		if sym, ok := s.symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}
