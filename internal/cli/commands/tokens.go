package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaplisp/pkg/token"
)

// tokenOutput is the structured form of one token.
type tokenOutput struct {
	Type    string `json:"type" yaml:"type"`
	Literal string `json:"literal" yaml:"literal"`
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
}

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [source]",
		Short: "Show the tokens of a program",
		Long: `Split source text into tokens and list them with their positions.

With no argument the source is read from standard input.`,
		Example: `  leaplisp tokens "(car '(1 2))"
  leaplisp tokens --output json < prog.lisp`,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readArgsOrStdin(cmd, args)
			if err != nil {
				return err
			}
			return runTokens(cmd, src)
		},
	}
}

func runTokens(cmd *cobra.Command, src string) error {
	r := NewCommandContext(cmd).Renderer
	toks := token.Scan(src)

	rows := make([]tokenOutput, len(toks))
	for i, tok := range toks {
		rows[i] = tokenOutput{
			Type:    tok.Type.String(),
			Literal: tok.Literal,
			Line:    tok.Pos.Line,
			Column:  tok.Pos.Column,
		}
	}
	if ok, err := r.Encode(rows); ok {
		return err
	}

	if len(rows) == 0 {
		r.Muted("(no tokens)")
		return nil
	}

	t := r.NewTable()
	t.AppendHeader(table.Row{"#", "Type", "Literal", "Position"})
	for i, tok := range toks {
		t.AppendRow(table.Row{i + 1, tok.Type.String(), tok.Literal, tok.Pos.String()})
	}
	t.Render()
	return nil
}
