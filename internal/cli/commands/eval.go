package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaplisp/pkg/core"
)

// NewEvalCommand creates the eval command.
func NewEvalCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <expr>",
		Short: "Evaluate an expression and print its value",
		Long: `Evaluate the forms given on the command line in a fresh session and
print the value of the last one.

Arguments are joined with spaces, so quoting the whole program is optional.`,
		Example: `  leaplisp eval '(+ 1 2 3)'
  leaplisp eval '(define sq (lambda (n) (* n n))) (sq 12)'
  leaplisp eval --output json '(list 1 "two" (quote three))'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, strings.Join(args, " "))
		},
	}
	return cmd
}

func runEval(cmd *cobra.Command, src string) error {
	ctx := commandCtx(cmd)
	cc := NewCommandContext(cmd)

	sess, err := cc.NewSession(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	rec, cleanup := cc.OpenRecorder(ctx, "eval")
	defer cleanup()

	v, err := sess.EvalString(src)
	rec.Record(ctx, src, reprOrEmpty(v, err), err)
	if err != nil {
		return err
	}
	return cc.Renderer.Value(src, v)
}

func reprOrEmpty(v core.Value, err error) string {
	if err != nil {
		return ""
	}
	return core.Repr(v)
}
