// File: scope.go
// Title: Scope Tree
// Description: Lexical scopes stored in an arena. Each scope record holds
//              the index of its parent and the indices of its children, so
//              upward lookup needs no back pointers.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19
//
// Change History:
// - 2025-10-19 v0.1.0: Initial scope arena

package semantic

import (
	"fmt"

	"github.com/msto63/khamseena/foundation/khamseena/ast"
)

// ScopeID identifies a scope within its ScopeTree
type ScopeID int

// NoScope is the parent of the global scope
const NoScope ScopeID = -1

// GlobalScope is the root scope of every tree
const GlobalScope ScopeID = 0

// SymbolKind tells variables, parameters and functions apart
type SymbolKind string

// Symbol kinds
const (
	KindVariable  SymbolKind = "variable"
	KindParameter SymbolKind = "parameter"
	KindFunction  SymbolKind = "function"
)

// Symbol is a name bound in a scope
type Symbol struct {
	Name string
	Type Type
	Kind SymbolKind
	Pos  ast.Position // Position of the declaring node
}

// Scope is one lexical region of the program
type Scope struct {
	ID       ScopeID
	Name     string
	Parent   ScopeID
	Children []ScopeID

	symbols []Symbol
	index   map[string]int
}

// Symbols returns the symbols of the scope in declaration order
func (s *Scope) Symbols() []Symbol {
	out := make([]Symbol, len(s.symbols))
	copy(out, s.symbols)
	return out
}

// LookupLocal finds name in this scope only
func (s *Scope) LookupLocal(name string) (Symbol, bool) {
	i, ok := s.index[name]
	if !ok {
		return Symbol{}, false
	}
	return s.symbols[i], true
}

// Len returns the number of symbols defined in the scope
func (s *Scope) Len() int {
	return len(s.symbols)
}

// AlreadyDefinedError is returned by Define when the name exists locally
type AlreadyDefinedError struct {
	Name     string
	Scope    string
	Existing Symbol
}

func (e *AlreadyDefinedError) Error() string {
	return fmt.Sprintf("'%s' already declared in %s scope", e.Name, e.Scope)
}

// ScopeTree owns all scopes created during one analysis
type ScopeTree struct {
	scopes []*Scope
}

// NewScopeTree creates a tree holding only the global scope
func NewScopeTree() *ScopeTree {
	t := &ScopeTree{}
	t.NewScope(NoScope, "global")
	return t
}

// NewScope appends a scope under parent and returns its id
func (t *ScopeTree) NewScope(parent ScopeID, name string) ScopeID {
	id := ScopeID(len(t.scopes))
	t.scopes = append(t.scopes, &Scope{
		ID:     id,
		Name:   name,
		Parent: parent,
		index:  make(map[string]int),
	})
	if parent != NoScope {
		p := t.scopes[parent]
		p.Children = append(p.Children, id)
	}
	return id
}

// Scope returns the scope with the given id, nil if it does not exist
func (t *ScopeTree) Scope(id ScopeID) *Scope {
	if id < 0 || int(id) >= len(t.scopes) {
		return nil
	}
	return t.scopes[id]
}

// Global returns the root scope
func (t *ScopeTree) Global() *Scope {
	return t.scopes[GlobalScope]
}

// Len returns the number of scopes in the tree
func (t *ScopeTree) Len() int {
	return len(t.scopes)
}

// Define binds sym in scope id. A name may be defined once per scope.
func (t *ScopeTree) Define(id ScopeID, sym Symbol) error {
	s := t.scopes[id]
	if existing, ok := s.LookupLocal(sym.Name); ok {
		return &AlreadyDefinedError{Name: sym.Name, Scope: s.Name, Existing: existing}
	}
	s.index[sym.Name] = len(s.symbols)
	s.symbols = append(s.symbols, sym)
	return nil
}

// Lookup resolves name starting at scope id and walking up through the
// ancestors. It returns the nearest definition and the scope holding it.
func (t *ScopeTree) Lookup(id ScopeID, name string) (Symbol, ScopeID, bool) {
	for id != NoScope {
		s := t.scopes[id]
		if sym, ok := s.LookupLocal(name); ok {
			return sym, id, true
		}
		id = s.Parent
	}
	return Symbol{}, NoScope, false
}

// Depth returns the number of ancestors of scope id
func (t *ScopeTree) Depth(id ScopeID) int {
	depth := 0
	for p := t.scopes[id].Parent; p != NoScope; p = t.scopes[p].Parent {
		depth++
	}
	return depth
}

// Walk visits every scope depth-first in creation order
func (t *ScopeTree) Walk(fn func(s *Scope, depth int)) {
	var walk func(id ScopeID, depth int)
	walk = func(id ScopeID, depth int) {
		s := t.scopes[id]
		fn(s, depth)
		for _, child := range s.Children {
			walk(child, depth+1)
		}
	}
	walk(GlobalScope, 0)
}

// Find returns the first scope with the given name
func (t *ScopeTree) Find(name string) (*Scope, bool) {
	for _, s := range t.scopes {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}
