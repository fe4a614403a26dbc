package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplisp/internal/testutil"
)

func TestFilesReportsChanges(t *testing.T) {
	dir := t.TempDir()
	target := testutil.WriteSource(t, dir, "main.lisp", "(+ 1 2)")
	other := testutil.WriteSource(t, dir, "other.lisp", "1")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan []string, 4)
	ready := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- Files(ctx, []string{target}, Options{
			Debounce: 20 * time.Millisecond,
			Logger:   testutil.NewTestLogger(t),
			Ready:    ready,
		}, func(_ context.Context, changed []string) {
			changes <- changed
		})
	}()

	select {
	case <-ready:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not start")
	}

	// Unwatched files in the same directory are ignored
	require.NoError(t, os.WriteFile(other, []byte("2"), 0o600))
	require.NoError(t, os.WriteFile(target, []byte("(+ 1 2 3)"), 0o600))

	select {
	case changed := <-changes:
		abs, err := filepath.Abs(target)
		require.NoError(t, err)
		assert.Equal(t, []string{abs}, changed)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestFilesMissingDirectory(t *testing.T) {
	err := Files(context.Background(), []string{filepath.Join(t.TempDir(), "nope", "x.lisp")}, Options{}, func(context.Context, []string) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch")
}
