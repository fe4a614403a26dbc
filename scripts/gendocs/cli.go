package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/leaplisp/internal/cli"
	"github.com/leapstack-labs/leaplisp/internal/cli/commands"
	"github.com/leapstack-labs/leaplisp/internal/config"
)

// builtinsPage is the site path of the page written by generateLanguageDocs.
const builtinsPage = "/language/builtins"

// generateCLIDocs writes index.md plus one page per visible command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	cmds := documentedCommands(root)

	pages := map[string][]byte{"index.md": cliIndex(root, cmds)}
	for _, cmd := range cmds {
		pages[cmd.Name()+".md"] = commandPage(cmd)
	}

	for name, body := range pages {
		if err := os.WriteFile(filepath.Join(outDir, name), body, 0600); err != nil {
			return err
		}
		log.Printf("  Generated %s", name)
	}
	return nil
}

// documentedCommands returns the root's visible commands sorted by name.
func documentedCommands(root *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.Hidden || !cmd.IsAvailableCommand() || cmd.Name() == "help" {
			continue
		}
		out = append(out, cmd)
	}
	slices.SortFunc(out, func(a, b *cobra.Command) int { return strings.Compare(a.Name(), b.Name()) })
	return out
}

func cliIndex(root *cobra.Command, cmds []*cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for LeapLisp")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph(root.Long)
	w.CodeBlock("bash", "leaplisp <command> [options]")

	w.Header(2, "Commands")
	rows := make([][]string, 0, len(cmds))
	for _, cmd := range cmds {
		rows = append(rows, []string{
			fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name()),
			cleanDescription(cmd.Short),
		})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	w.Table(flagHeaders, flagRows(root.PersistentFlags()))

	w.Header(2, "Environment Variables")
	w.Paragraph("Every configuration field can be set from the environment. " +
		"List fields take comma separated values. Flags given on the command line win.")
	var env [][]string
	for _, f := range getConfigSchema() {
		env = append(env, []string{InlineCode(envName(f.Name)), f.Description})
	}
	w.Table([]string{"Variable", "Description"}, env)

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "Success"},
		{InlineCode("1"), "Evaluation, configuration or I/O error (details on stderr)"},
	})

	return w.Bytes()
}

func commandPage(cmd *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cleanDescription(cmd.Short))
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	if cmd.Long != "" {
		w.Paragraph(cmd.Long)
	} else {
		w.Paragraph(cmd.Short)
	}

	w.Header(2, "Usage")
	w.CodeBlock("bash", cmd.UseLine())

	if len(cmd.Aliases) > 0 {
		w.Paragraph("Aliases: " + strings.Join(mapInline(cmd.Aliases), ", "))
	}

	if cmd.HasAvailableSubCommands() {
		w.Header(2, "Subcommands")
		var rows [][]string
		for _, sub := range cmd.Commands() {
			if sub.IsAvailableCommand() {
				rows = append(rows, []string{InlineCode(sub.Name()), cleanDescription(sub.Short)})
			}
		}
		w.Table([]string{"Subcommand", "Description"}, rows)
	}

	if cmd.HasAvailableLocalFlags() {
		w.Header(2, "Options")
		w.Table(flagHeaders, flagRows(cmd.LocalFlags()))
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", dedent(cmd.Example))

		if used := builtinLinks(cmd.Example); len(used) > 0 {
			w.Paragraph("Forms used above:")
			w.BulletList(used)
		}
	}

	if cmd.HasParent() {
		w.Paragraph(fmt.Sprintf("Global options are listed in the [CLI reference](/cli/). Builtins are described in [%s](%s).",
			"Builtins", builtinsPage))
	}

	return w.Bytes()
}

var flagHeaders = []string{"Option", "Default", "Description"}

func flagRows(flags *pflag.FlagSet) [][]string {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		opt := InlineCode("--" + f.Name)
		if f.Shorthand != "" {
			opt = InlineCode("-"+f.Shorthand) + ", " + opt
		}
		def := "-"
		if f.DefValue != "" && f.DefValue != "[]" {
			def = InlineCode(f.DefValue)
		}
		rows = append(rows, []string{opt, def, cleanDescription(f.Usage)})
	})
	return rows
}

// builtinLinks lists, in first-use order, the builtins called in example
// text as links into the builtins page.
func builtinLinks(example string) []string {
	kinds := make(map[string]string)
	for _, row := range commands.BuiltinRows() {
		kinds[row.Name] = row.Kind
	}

	var links []string
	seen := make(map[string]bool)
	for _, name := range calledNames(example) {
		kind, ok := kinds[name]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		anchor := "functions"
		if kind == "special form" {
			anchor = "special-forms"
		}
		links = append(links, fmt.Sprintf("[%s](%s#%s)", InlineCode(name), builtinsPage, anchor))
	}
	return links
}

// calledNames returns the word that follows each open paren in s.
func calledNames(s string) []string {
	var names []string
	for i := 0; i < len(s); i++ {
		if s[i] != '(' {
			continue
		}
		j := i + 1
		for j < len(s) && !strings.ContainsRune(" \t\n()'\"", rune(s[j])) {
			j++
		}
		if j > i+1 {
			names = append(names, s[i+1:j])
		}
	}
	return names
}

func envName(field string) string {
	return config.EnvPrefix + strings.ToUpper(field)
}

func mapInline(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = InlineCode(s)
	}
	return out
}

// dedent strips the indentation shared by every non-blank line.
func dedent(text string) string {
	lines := strings.Split(strings.Trim(text, "\n"), "\n")
	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	for i, line := range lines {
		if len(line) >= indent && indent > 0 {
			lines[i] = line[indent:]
		}
	}
	return strings.Join(lines, "\n")
}
