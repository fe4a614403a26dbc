package core

import (
	"sort"

	"github.com/benbjohnson/immutable"
	"github.com/leapstack-labs/leaplisp/pkg/symbol"
)

// symbolHasher keys persistent frames by symbol identity.
type symbolHasher struct{}

func (symbolHasher) Hash(s *symbol.Symbol) uint32 {
	return s.ID()
}

func (symbolHasher) Equal(a, b *symbol.Symbol) bool {
	return a == b
}

type frame = immutable.Map[*symbol.Symbol, Value]

func emptyFrame() *frame {
	return immutable.NewMap[*symbol.Symbol, Value](symbolHasher{})
}

// Environment is one binding frame plus a link to its enclosing frame.
//
// The frame with no parent is the global frame. It is shared by reference
// by every environment derived from it. Frames are persistent maps, so a
// Snapshot shares structure with the original and later Set calls on
// either side are invisible to the other.
type Environment struct {
	bindings *frame
	parent   *Environment
}

// NewGlobal creates an empty global frame.
func NewGlobal() *Environment {
	return &Environment{bindings: emptyFrame()}
}

// NewChild creates an empty frame whose parent is e.
func NewChild(parent *Environment) *Environment {
	return &Environment{bindings: emptyFrame(), parent: parent}
}

// Set binds sym to val in this frame, replacing any previous binding.
func (e *Environment) Set(sym *symbol.Symbol, val Value) {
	e.bindings = e.bindings.Set(sym, val)
}

// Resolve walks from this frame toward the global frame and returns the
// first binding of sym.
func (e *Environment) Resolve(sym *symbol.Symbol) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.bindings.Get(sym); ok {
			return v, true
		}
	}
	return nil, false
}

// Lookup is Resolve with an ErrUnresolvedName failure.
func (e *Environment) Lookup(sym *symbol.Symbol) (Value, error) {
	if v, ok := e.Resolve(sym); ok {
		return v, nil
	}
	return nil, Errorf(ErrUnresolvedName, "name '%s' is undefined", sym.Name())
}

// Parent returns the enclosing frame, or nil for the global frame.
func (e *Environment) Parent() *Environment {
	return e.parent
}

// IsGlobal reports whether e is the global frame.
func (e *Environment) IsGlobal() bool {
	return e.parent == nil
}

// Global returns the global frame at the root of the chain.
func (e *Environment) Global() *Environment {
	env := e
	for env.parent != nil {
		env = env.parent
	}
	return env
}

// Snapshot copies every non-global frame of the chain and splices the
// copies onto the same shared global frame. Copying a frame is O(1).
func (e *Environment) Snapshot() *Environment {
	if e.parent == nil {
		return e
	}
	return &Environment{bindings: e.bindings, parent: e.parent.Snapshot()}
}

// Depth returns the number of frames between e and the global frame.
func (e *Environment) Depth() int {
	n := 0
	for env := e; env.parent != nil; env = env.parent {
		n++
	}
	return n
}

// Len returns the number of bindings in this frame only.
func (e *Environment) Len() int {
	return e.bindings.Len()
}

// Symbols returns the symbols bound in this frame only, sorted by name.
func (e *Environment) Symbols() []*symbol.Symbol {
	syms := make([]*symbol.Symbol, 0, e.bindings.Len())
	itr := e.bindings.Iterator()
	for !itr.Done() {
		sym, _, _ := itr.Next()
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i].Name() < syms[j].Name()
	})
	return syms
}
