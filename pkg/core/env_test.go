package core

import (
	"errors"
	"testing"

	"github.com/leapstack-labs/leaplisp/pkg/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentLookupWalksChain(t *testing.T) {
	syms := symbol.NewTable()
	x, y := syms.Intern("x"), syms.Intern("y")

	global := NewGlobal()
	global.Set(x, int64(1))
	child := NewChild(global)
	child.Set(y, int64(2))

	got, err := child.Lookup(x)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)

	got, err = child.Lookup(y)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got)

	_, err = global.Lookup(y)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnresolvedName))
	assert.Contains(t, err.Error(), "name 'y' is undefined")
}

func TestEnvironmentInnerShadowsOuter(t *testing.T) {
	syms := symbol.NewTable()
	x := syms.Intern("x")

	global := NewGlobal()
	global.Set(x, int64(1))
	child := NewChild(global)
	child.Set(x, "inner")

	got, err := child.Lookup(x)
	require.NoError(t, err)
	assert.Equal(t, "inner", got)

	got, err = global.Lookup(x)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}

func TestEnvironmentGlobal(t *testing.T) {
	global := NewGlobal()
	inner := NewChild(NewChild(global))

	assert.Same(t, global, inner.Global())
	assert.True(t, global.IsGlobal())
	assert.False(t, inner.IsGlobal())
	assert.Equal(t, 2, inner.Depth())
	assert.Equal(t, 0, global.Depth())
}

func TestSnapshotIsolatesNonGlobalFrames(t *testing.T) {
	syms := symbol.NewTable()
	a, b := syms.Intern("a"), syms.Intern("b")

	global := NewGlobal()
	outer := NewChild(global)
	outer.Set(a, int64(1))

	snap := outer.Snapshot()

	// Bindings added after the snapshot are invisible to it
	outer.Set(b, int64(2))
	_, ok := snap.Resolve(b)
	assert.False(t, ok, "later binding in enclosing frame must not leak into snapshot")

	// and writes to the snapshot are invisible to the original
	snap.Set(a, int64(100))
	got, err := outer.Lookup(a)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)

	assert.NotSame(t, outer, snap)
}

func TestSnapshotSharesGlobalFrame(t *testing.T) {
	syms := symbol.NewTable()
	g := syms.Intern("g")

	global := NewGlobal()
	snap := NewChild(global).Snapshot()

	assert.Same(t, global, snap.Global())
	assert.Same(t, global, global.Snapshot(), "snapshot of the global frame is the frame itself")

	global.Set(g, "late")
	got, err := snap.Lookup(g)
	require.NoError(t, err)
	assert.Equal(t, "late", got)
}

func TestEnvironmentSymbols(t *testing.T) {
	syms := symbol.NewTable()
	env := NewGlobal()
	env.Set(syms.Intern("cdr"), int64(0))
	env.Set(syms.Intern("car"), int64(0))
	env.Set(syms.Intern("car"), int64(1))

	names := make([]string, 0, env.Len())
	for _, s := range env.Symbols() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"car", "cdr"}, names)
}
