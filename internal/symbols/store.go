package symbols

import (
	"fmt"
	"slices"

	"silver/internal/types"
)

// Binding is one store entry.
type Binding struct {
	Var   Variable
	Value types.Value
}

// Store maps names to variables and their current values. It is owned by the
// host (REPL, batch runner) and reused across compilations, so variables
// accumulate turn by turn. A name holds at most one type at a time; the
// binder rejects assignments that would change it, and Set enforces the same
// rule as a last line.
type Store struct {
	entries map[string]Binding
}

func NewStore() *Store {
	return &Store{entries: make(map[string]Binding)}
}

// Lookup returns the binding for name.
func (s *Store) Lookup(name string) (Binding, bool) {
	b, ok := s.entries[name]
	return b, ok
}

// Type returns the declared type of name.
func (s *Store) Type(name string) (types.Kind, bool) {
	b, ok := s.entries[name]
	return b.Var.Type, ok
}

// Set declares or updates v with val. It panics when the value does not match
// the variable type or when the name is already bound to another type.
func (s *Store) Set(v Variable, val types.Value) {
	if val.Type() != v.Type {
		panic(fmt.Sprintf("symbols: value of type %s stored in %s", val.Type(), v))
	}
	if old, ok := s.entries[v.Name]; ok && old.Var.Type != v.Type {
		panic(fmt.Sprintf("symbols: %s redeclared as %s", old.Var, v.Type))
	}
	s.entries[v.Name] = Binding{Var: v, Value: val}
}

// Delete removes name and reports whether it was present.
func (s *Store) Delete(name string) bool {
	_, ok := s.entries[name]
	delete(s.entries, name)
	return ok
}

func (s *Store) Len() int {
	return len(s.entries)
}

// Names returns all variable names in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Bindings returns all entries sorted by name.
func (s *Store) Bindings() []Binding {
	out := make([]Binding, 0, len(s.entries))
	for _, name := range s.Names() {
		out = append(out, s.entries[name])
	}
	return out
}

// Clone returns an independent copy.
func (s *Store) Clone() *Store {
	c := NewStore()
	for name, b := range s.entries {
		c.entries[name] = b
	}
	return c
}
