package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leaplisp/internal/config"
)

// ConfigField represents a configuration field definition.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Description string
}

// getConfigSchema returns the configuration schema, mirroring
// internal/config/types.go with defaults read from config.Default.
func getConfigSchema() []ConfigField {
	d := config.Default()
	return []ConfigField{
		{Name: "prompt", Type: "string", Default: d.Prompt, Description: "REPL prompt"},
		{Name: "history_file", Type: "string", Default: d.HistoryFile, Description: "REPL line history file"},
		{Name: "state_path", Type: "string", Default: d.StatePath, Description: "SQLite evaluation transcript; `:memory:` keeps it in memory"},
		{Name: "record", Type: "bool", Default: strconv.FormatBool(d.Record), Description: "Record evaluations to the transcript"},
		{Name: "max_depth", Type: "int", Default: strconv.Itoa(d.MaxDepth), Description: "Nested evaluation depth ceiling"},
		{Name: "log_level", Type: "string", Default: d.LogLevel, Description: "One of " + strings.Join(config.LogLevels, ", ")},
		{Name: "output", Type: "string", Default: d.OutputFormat, Description: "One of " + strings.Join(config.OutputFormats, ", ")},
		{Name: "prelude", Type: "[]string", Description: "Files evaluated before user input"},
		{Name: "verbose", Type: "bool", Default: strconv.FormatBool(d.Verbose), Description: "Enable debug logging"},
		{Name: "no_color", Type: "bool", Default: strconv.FormatBool(d.NoColor), Description: "Disable colored output"},
	}
}

// generateConfigDocs writes the configuration reference page.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "LeapLisp configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph(fmt.Sprintf("LeapLisp reads %s (or %s) from the working directory or the nearest parent. "+
		"Relative paths in the file resolve against the directory that holds it.",
		InlineCode(config.ConfigFileName), InlineCode(config.ConfigFileNameAlt)))

	var rows [][]string
	for _, f := range getConfigSchema() {
		defVal := f.Default
		if defVal == "" {
			defVal = "-"
		}
		rows = append(rows, []string{InlineCode(f.Name), f.Type, InlineCode(defVal), f.Description})
	}
	w.Table([]string{"Field", "Type", "Default", "Description"}, rows)

	w.Header(2, "Precedence")
	w.BulletList([]string{
		"Command-line flags",
		"Environment variables prefixed with " + InlineCode(config.EnvPrefix),
		"The configuration file",
		"Built-in defaults",
	})

	w.Header(2, "Example")
	w.CodeBlock("yaml", `prompt: "lisp> "
max_depth: 5000
output: text
prelude:
  - lib/prelude.lisp`)

	filename := filepath.Join(outDir, "configuration.md")
	if err := os.WriteFile(filename, w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated configuration.md")
	return nil
}
