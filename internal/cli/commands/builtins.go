package commands

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaplisp/pkg/builtins"
	"github.com/leapstack-labs/leaplisp/pkg/eval"
	"github.com/leapstack-labs/leaplisp/pkg/symbol"
)

// keywordDocs describes the special forms.
var keywordDocs = map[string]string{
	"begin":  "evaluate expressions in order, return the last",
	"cond":   "evaluate the expression of the first true test",
	"define": "bind a name in the current frame",
	"lambda": "create a closure over the current frame",
	"quote":  "return an expression unevaluated",
}

// BuiltinInfo describes one special form or builtin function.
type BuiltinInfo struct {
	Name  string `json:"name" yaml:"name"`
	Kind  string `json:"kind" yaml:"kind"`
	Arity string `json:"arity" yaml:"arity"`
	Doc   string `json:"doc" yaml:"doc"`
}

// NewBuiltinsCommand creates the builtins command.
func NewBuiltinsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "builtins",
		Short: "List special forms and builtin functions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuiltins(cmd)
		},
	}
}

// BuiltinRows lists the special forms followed by the builtin functions.
func BuiltinRows() []BuiltinInfo {
	var rows []BuiltinInfo
	for _, kw := range eval.New(symbol.NewTable(), eval.Options{}).Keywords() {
		rows = append(rows, BuiltinInfo{Name: kw, Kind: "special form", Arity: "-", Doc: keywordDocs[kw]})
	}
	for _, d := range builtins.Defs() {
		arity := strconv.Itoa(d.Arity)
		if d.Arity == builtins.Variadic {
			arity = "any"
		}
		rows = append(rows, BuiltinInfo{Name: d.Name, Kind: "builtin", Arity: arity, Doc: d.Doc})
	}
	return rows
}

func runBuiltins(cmd *cobra.Command) error {
	r := NewCommandContext(cmd).Renderer
	rows := BuiltinRows()

	if ok, err := r.Encode(rows); ok {
		return err
	}

	t := r.NewTable()
	t.AppendHeader(table.Row{"Name", "Kind", "Arity", "Description"})
	for _, row := range rows {
		t.AppendRow(table.Row{r.Styles().Bold.Render(row.Name), row.Kind, row.Arity, row.Doc})
	}
	t.Render()
	return nil
}
