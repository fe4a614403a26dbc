package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/leapstack-labs/leaplisp/internal/watch"
	"github.com/leapstack-labs/leaplisp/pkg/core"
)

// RunOptions holds options for the run command.
type RunOptions struct {
	Watch bool
	Print bool
}

// stdinSource names programs read from standard input.
const stdinSource = "<stdin>"

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run [file...]",
		Short: "Evaluate program files",
		Long: `Evaluate one or more program files in order, in a single session.

With no files, the program is read from standard input. With --watch the
files are evaluated again in a fresh session whenever one of them changes.`,
		Example: `  # Run a program
  leaplisp run fib.lisp

  # Run a library and then a program that uses it
  leaplisp run lib.lisp main.lisp

  # Read the program from a pipe
  echo '(print (+ 1 2))' | leaplisp run

  # Re-run on every save and print the final value
  leaplisp run --watch --print main.lisp`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-run when a file changes")
	cmd.Flags().BoolVarP(&opts.Print, "print", "p", false, "Print the value of the last form")

	return cmd
}

func runRun(cmd *cobra.Command, files []string, opts *RunOptions) error {
	ctx := commandCtx(cmd)
	cc := NewCommandContext(cmd)

	if len(files) == 0 {
		if opts.Watch {
			return errors.New("--watch needs at least one file")
		}
		src, err := readStdin(cmd.InOrStdin())
		if err != nil {
			return err
		}
		return cc.runSource(ctx, cmd.OutOrStdout(), src, opts.Print)
	}

	err := cc.runFiles(ctx, cmd.OutOrStdout(), files, opts.Print)
	if !opts.Watch {
		return err
	}
	if err != nil {
		cc.Renderer.Error(err)
	}

	cc.Renderer.Muted(fmt.Sprintf("Watching %s (Ctrl+C to stop)", strings.Join(files, ", ")))
	return watch.Files(ctx, files, watch.Options{Logger: cc.Logger}, func(ctx context.Context, changed []string) {
		names := make([]string, len(changed))
		for i, c := range changed {
			names[i] = filepath.Base(c)
		}
		cc.Logger.Debug("re-running after change", "files", changed)
		cc.Renderer.Muted(fmt.Sprintf("Changed: %s", strings.Join(names, ", ")))
		if err := cc.runFiles(ctx, cmd.OutOrStdout(), files, opts.Print); err != nil {
			cc.Renderer.Error(err)
			return
		}
		cc.Renderer.Success("Done")
	})
}

// runFiles evaluates files in order in one fresh session and records
// them under one transcript session.
func (cc *CommandContext) runFiles(ctx context.Context, out io.Writer, files []string, printResult bool) error {
	sess, err := cc.NewSession(out)
	if err != nil {
		return err
	}

	// One transcript session per interpreter session, one entry per file
	rec, cleanup := cc.OpenRecorder(ctx, strings.Join(files, " "))
	defer cleanup()

	var last core.Value = core.Nil()
	for _, path := range files {
		last, err = sess.EvalFile(path)
		rec.Record(ctx, path, reprOrEmpty(last, err), err)
		if err != nil {
			return err
		}
	}

	if printResult {
		return cc.Renderer.Value("", last)
	}
	return nil
}

func (cc *CommandContext) runSource(ctx context.Context, out io.Writer, src string, printResult bool) error {
	sess, err := cc.NewSession(out)
	if err != nil {
		return err
	}

	rec, cleanup := cc.OpenRecorder(ctx, stdinSource)
	defer cleanup()

	v, err := sess.EvalString(src)
	rec.Record(ctx, src, reprOrEmpty(v, err), err)
	if err != nil {
		return err
	}
	if printResult {
		return cc.Renderer.Value("", v)
	}
	return nil
}

// readStdin reads a whole program from in, refusing an interactive
// terminal.
func readStdin(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", errors.New("no input: pass a file or pipe a program on stdin (use 'leaplisp repl' for interactive use)")
	}
	b, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(b), nil
}

// readArgsOrStdin joins args, or reads stdin when there are none.
func readArgsOrStdin(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	return readStdin(cmd.InOrStdin())
}
