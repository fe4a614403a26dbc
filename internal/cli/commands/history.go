package commands

import (
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaplisp/internal/cli/output"
	"github.com/leapstack-labs/leaplisp/internal/state"
)

// DefaultHistoryLimit is the number of evaluations history shows.
const DefaultHistoryLimit = 20

// maxInputWidth truncates long inputs in the history table.
const maxInputWidth = 48

// historyOutput is the structured form of one recorded evaluation.
type historyOutput struct {
	ID      int64     `json:"id" yaml:"id"`
	Session string    `json:"session" yaml:"session"`
	Source  string    `json:"source" yaml:"source"`
	Input   string    `json:"input" yaml:"input"`
	Result  string    `json:"result,omitempty" yaml:"result,omitempty"`
	Error   string    `json:"error,omitempty" yaml:"error,omitempty"`
	At      time.Time `json:"at" yaml:"at"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently recorded evaluations",
		Long: `Show evaluations recorded in the state database, newest first.

Recording is controlled by the record setting (or --no-record).`,
		Example: `  leaplisp history
  leaplisp history --limit 100 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", DefaultHistoryLimit, "Maximum entries to show (0 for all)")
	return cmd
}

func runHistory(cmd *cobra.Command, limit int) error {
	ctx := commandCtx(cmd)
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	store, err := cc.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	evals, err := store.ListEvaluations(ctx, limit)
	if err != nil {
		return err
	}

	rows := make([]historyOutput, len(evals))
	for i, e := range evals {
		rows[i] = toHistoryOutput(e)
	}
	if ok, err := r.Encode(rows); ok {
		return err
	}

	if !cc.Cfg.Record {
		r.Warning("recording is disabled; new evaluations are not stored")
	}
	if len(rows) == 0 {
		r.Muted("No evaluations recorded")
		return nil
	}

	styles := r.Styles()
	r.Header(1, "Evaluation History")
	t := r.NewTable()
	t.AppendHeader(table.Row{"ID", "Time", "Source", "Input", "Result"})
	for _, e := range evals {
		result := e.Result
		if e.Failed() {
			result = styles.Error.Render(e.Error)
		}
		t.AppendRow(table.Row{
			e.ID,
			e.CreatedAt.Local().Format(time.DateTime),
			e.Source,
			truncate(oneLine(e.Input), maxInputWidth),
			result,
		})
	}
	t.Render()
	r.Muted(output.FormatKeyValue("Transcript", cc.Cfg.StatePath))
	return nil
}

func toHistoryOutput(e *state.Evaluation) historyOutput {
	return historyOutput{
		ID:      e.ID,
		Session: e.SessionID,
		Source:  e.Source,
		Input:   e.Input,
		Result:  e.Result,
		Error:   e.Error,
		At:      e.CreatedAt,
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
