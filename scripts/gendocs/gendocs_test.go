package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readPage(t *testing.T, dir, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(b)
}

func TestGenerateCLIDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateCLIDocs(dir))

	index := readPage(t, dir, "index.md")
	assert.Contains(t, index, generatedHeader)
	assert.Contains(t, index, "[`eval`](/cli/eval)")
	assert.Contains(t, index, "[`run`](/cli/run)")
	assert.NotContains(t, index, "(/cli/help)")
	assert.Contains(t, index, "`LEAPLISP_STATE_PATH`")
	assert.Contains(t, index, "`LEAPLISP_PRELUDE`")
	assert.Contains(t, index, "`--config`")

	eval := readPage(t, dir, "eval.md")
	assert.Contains(t, eval, "leaplisp eval")
	assert.Contains(t, eval, "leaplisp eval '(+ 1 2 3)'\n")
	assert.Contains(t, eval, "[`+`](/language/builtins#functions)")
	assert.Contains(t, eval, "[`define`](/language/builtins#special-forms)")
	assert.Contains(t, eval, "[`list`](/language/builtins#functions)")
	assert.NotContains(t, eval, "[`sq`]")

	run := readPage(t, dir, "run.md")
	assert.Contains(t, run, "`-w`, `--watch`")
	assert.Contains(t, run, "# Run a program\n")
}

func TestGenerateLanguageAndConfigDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateLanguageDocs(dir))
	require.NoError(t, generateConfigDocs(dir))

	builtins := readPage(t, dir, "builtins.md")
	assert.Contains(t, builtins, "## Special Forms")
	assert.Contains(t, builtins, "## Functions")
	assert.Contains(t, builtins, "| `lambda` |")
	assert.Contains(t, builtins, "| `car` | 1 |")

	cfg := readPage(t, dir, "configuration.md")
	assert.Contains(t, cfg, "| `max_depth` | int |")
	assert.Contains(t, cfg, "`LEAPLISP_`")
}

func TestCalledNames(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"none", "leaplisp history", nil},
		{"nested", "(define sq (lambda (n) (* n n)))", []string{"define", "lambda", "n", "*"}},
		{"quoted list", "(car '(1 2))", []string{"car", "1"}},
		{"empty parens", "()", nil},
		{"string arg", `(print "hi")`, []string{"print"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calledNames(tt.in))
		})
	}
}

func TestDedent(t *testing.T) {
	in := "  # first\n  leaplisp run a.lisp\n\n    indented\n"
	assert.Equal(t, "# first\nleaplisp run a.lisp\n\n  indented", dedent(in))
	assert.Equal(t, "flat", dedent("flat"))
}

func TestMarkdownTableEscapesPipes(t *testing.T) {
	w := NewMarkdownWriter()
	w.Table([]string{"A", "B"}, [][]string{{"x|y", "z"}})
	assert.Equal(t, "| A | B |\n| --- | --- |\n| x\\|y | z |\n\n", string(w.Bytes()))

	empty := NewMarkdownWriter()
	empty.Table([]string{"A"}, nil)
	assert.Empty(t, empty.Bytes())
}
