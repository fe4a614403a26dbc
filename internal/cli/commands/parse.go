package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaplisp/internal/cli/output"
	"github.com/leapstack-labs/leaplisp/pkg/core"
	"github.com/leapstack-labs/leaplisp/pkg/parser"
	"github.com/leapstack-labs/leaplisp/pkg/symbol"
)

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [source]",
		Short: "Show the expressions of a program without evaluating them",
		Long: `Parse source text and print each top-level expression.

Text output prints one expression per line in its readable form, with
quote shorthand expanded. JSON and YAML output give the full tree.`,
		Example: `  leaplisp parse "(define x '(1 2))"
  leaplisp parse --output yaml < prog.lisp`,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readArgsOrStdin(cmd, args)
			if err != nil {
				return err
			}
			return runParse(cmd, src)
		},
	}
}

func runParse(cmd *cobra.Command, src string) error {
	r := NewCommandContext(cmd).Renderer

	forms, err := parser.Parse(src, symbol.NewTable())
	if err != nil {
		return err
	}

	nodes := make([]output.Node, len(forms))
	for i, f := range forms {
		nodes[i] = output.NodeOf(f)
	}
	if ok, err := r.Encode(nodes); ok {
		return err
	}

	for _, f := range forms {
		r.Println(core.Repr(f))
	}
	return nil
}
