package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/leaplisp/internal/cli/commands"
)

// generateLanguageDocs writes the special form and builtin reference.
func generateLanguageDocs(outDir string) error {
	log.Printf("Generating language docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Builtins", "Special forms and builtin functions")
	w.GeneratedMarker()

	w.Header(1, "Builtins")
	w.Paragraph("Special forms are recognised by name before any environment lookup and cannot be rebound. " +
		"Builtin functions live in the global frame and can be shadowed by `define`.")

	var forms, funcs [][]string
	for _, row := range commands.BuiltinRows() {
		if row.Kind == "special form" {
			forms = append(forms, []string{InlineCode(row.Name), row.Doc})
			continue
		}
		funcs = append(funcs, []string{InlineCode(row.Name), row.Arity, row.Doc})
	}

	w.Header(2, "Special Forms")
	w.Table([]string{"Form", "Description"}, forms)

	w.Header(2, "Functions")
	w.Table([]string{"Name", "Arity", "Description"}, funcs)

	w.Header(2, "Example")
	w.CodeBlock("lisp", `(define fact
  (lambda (n)
    (cond ((eq? n 0) 1)
          (1 (* n (fact (- n 1)))))))
(print (fact 10))`)

	filename := filepath.Join(outDir, "builtins.md")
	if err := os.WriteFile(filename, w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated builtins.md")
	return nil
}
