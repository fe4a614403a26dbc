// Package symbol provides interned identifiers.
//
// A Table maps textual names to unique *Symbol identities. Two calls to
// Intern with the same name on the same Table return the same pointer, so
// symbols compare and hash by identity. Tables are independent: symbols
// from different tables never compare equal, which lets several
// interpreter sessions live in one process without sharing state.
package symbol

import (
	"sort"
	"sync"
)

// Symbol is an interned identifier. Compare symbols with ==.
type Symbol struct {
	id   uint32
	name string
}

// Name returns the text the symbol was interned from.
func (s *Symbol) Name() string {
	return s.name
}

// ID returns the registry slot of the symbol within its Table.
func (s *Symbol) ID() uint32 {
	return s.id
}

func (s *Symbol) String() string {
	return s.name
}

// Table is an append-only intern registry.
type Table struct {
	mu sync.RWMutex

	// byName maps text to its canonical symbol: "define" → *Symbol
	byName map[string]*Symbol

	// bySlot holds symbols in registration order; a symbol's ID is its index
	bySlot []*Symbol
}

// NewTable creates an empty symbol table.
func NewTable() *Table {
	return &Table{
		byName: make(map[string]*Symbol),
	}
}

// Intern returns the symbol for name, registering it on first use.
func (t *Table) Intern(name string) *Symbol {
	t.mu.RLock()
	sym, ok := t.byName[name]
	t.mu.RUnlock()
	if ok {
		return sym
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Another goroutine may have registered it between the two locks
	if sym, ok := t.byName[name]; ok {
		return sym
	}

	sym = &Symbol{id: uint32(len(t.bySlot)), name: name}
	t.byName[name] = sym
	t.bySlot = append(t.bySlot, sym)
	return sym
}

// Lookup returns the symbol for name without registering it.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	sym, ok := t.byName[name]
	return sym, ok
}

// Len returns the number of interned symbols.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.bySlot)
}

// Names returns all interned names, sorted.
func (t *Table) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, 0, len(t.bySlot))
	for _, sym := range t.bySlot {
		names = append(names, sym.name)
	}
	sort.Strings(names)
	return names
}
