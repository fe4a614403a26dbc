package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/chzyer/readline"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/leapstack-labs/leaplisp/internal/cli/output"
	"github.com/leapstack-labs/leaplisp/internal/state"
	"github.com/leapstack-labs/leaplisp/pkg/core"
	"github.com/leapstack-labs/leaplisp/pkg/interp"
)

// continuationPrompt is shown while a form is still open.
const continuationPrompt = "   ...> "

// dotCommands are handled by the REPL itself.
var dotCommands = []string{".builtins", ".clear", ".env", ".exit", ".help", ".quit"}

// lineReader is the part of *readline.Instance the REPL loop uses.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Long: `Start an interactive read-eval-print loop.

A form may span several lines; the prompt changes until its lists are
closed. Errors are printed and the session continues. Definitions persist
for the life of the session. Type .help for REPL commands.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd)
		},
	}
}

func runREPL(cmd *cobra.Command) error {
	ctx := commandCtx(cmd)
	cc := NewCommandContext(cmd)

	sess, err := cc.NewSession(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	rec, cleanup := cc.OpenRecorder(ctx, "repl")
	defer cleanup()

	rd, err := cc.newLineReader(cmd, sess)
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rd.Close() }()

	if cc.Renderer.IsTTY() {
		r := cc.Renderer
		r.Println(r.Styles().Bold.Render("leaplisp REPL"))
		r.Muted("Type .help for commands, .quit to exit")
		r.Println()
	}

	loop := &replLoop{
		reader:   rd,
		renderer: cc.Renderer,
		session:  sess,
		recorder: rec,
		prompt:   cc.Cfg.Prompt,
	}
	return loop.run(ctx)
}

// newLineReader uses readline on a terminal and a plain line scanner
// otherwise, so piped input works.
func (cc *CommandContext) newLineReader(cmd *cobra.Command, sess *interp.Session) (lineReader, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		historyFile := cc.Cfg.HistoryFile
		if historyFile != "" {
			if err := os.MkdirAll(filepath.Dir(historyFile), 0750); err != nil {
				cc.Logger.Warn("history disabled", "path", historyFile, "error", err)
				historyFile = ""
			}
		}

		return readline.NewEx(&readline.Config{
			Prompt:          cc.Cfg.Prompt,
			HistoryFile:     historyFile,
			AutoComplete:    newNameCompleter(sess.Names),
			InterruptPrompt: "^C",
			EOFPrompt:       ".quit",
			Stdout:          cmd.OutOrStdout(),
			Stderr:          cmd.ErrOrStderr(),
		})
	}
	return newScanReader(in), nil
}

// maxLineSize bounds one line of piped REPL input.
const maxLineSize = 16 << 20

// scanReader reads lines from a non-interactive input.
type scanReader struct {
	scanner *bufio.Scanner
}

func newScanReader(in io.Reader) *scanReader {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
	return &scanReader{scanner: scanner}
}

func (s *scanReader) Readline() (string, error) {
	if s.scanner.Scan() {
		return s.scanner.Text(), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (s *scanReader) SetPrompt(string) {}

func (s *scanReader) Close() error { return nil }

// replLoop reads forms, evaluates them and prints the results.
type replLoop struct {
	reader   lineReader
	renderer *output.Renderer
	session  *interp.Session
	recorder *state.Recorder
	prompt   string
}

func (l *replLoop) run(ctx context.Context) error {
	var buf strings.Builder
	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := l.reader.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buf.Reset()
			l.reader.SetPrompt(l.prompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(line)
		if buf.Len() == 0 {
			if trimmed == "" {
				continue
			}
			// Handle dot-commands; other input such as ".5" is evaluated
			if isDotCommand(trimmed) {
				if quit := l.handleDotCommand(trimmed); quit {
					return nil
				}
				continue
			}
		}

		// Accumulate lines until every list is closed
		buf.WriteString(line)
		buf.WriteString("\n")
		if interp.Incomplete(buf.String()) {
			l.reader.SetPrompt(continuationPrompt)
			continue
		}
		l.reader.SetPrompt(l.prompt)

		src := strings.TrimSpace(buf.String())
		buf.Reset()
		l.evaluate(ctx, src)
	}
}

func (l *replLoop) evaluate(ctx context.Context, src string) {
	v, err := l.session.EvalString(src)
	l.recorder.Record(ctx, src, reprOrEmpty(v, err), err)
	if err != nil {
		l.renderer.Error(err)
		return
	}
	if err := l.renderer.Value(src, v); err != nil {
		l.renderer.Error(err)
	}
}

// isDotCommand reports whether line is a REPL command: a dot followed by
// a letter.
func isDotCommand(line string) bool {
	return len(line) >= 2 && line[0] == '.' && unicode.IsLetter(rune(line[1]))
}

// handleDotCommand runs a REPL command and reports whether to quit.
func (l *replLoop) handleDotCommand(line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	r := l.renderer

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(r.Out())

	case ".env":
		l.printEnv()

	case ".builtins":
		t := r.NewTable()
		t.AppendHeader(table.Row{"Name", "Kind", "Arity", "Description"})
		for _, row := range BuiltinRows() {
			t.AppendRow(table.Row{row.Name, row.Kind, row.Arity, row.Doc})
		}
		t.Render()

	case ".clear":
		if r.IsTTY() {
			r.Printf("\033[H\033[2J")
		}

	default:
		_, _ = fmt.Fprintf(r.ErrOut(), "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

// printEnv lists the global names defined by the user, hiding untouched
// builtins.
func (l *replLoop) printEnv() {
	r := l.renderer
	global := l.session.Global()

	t := r.NewTable()
	t.AppendHeader(table.Row{"Name", "Kind", "Value"})
	n := 0
	for _, sym := range global.Symbols() {
		v, _ := global.Resolve(sym)
		if b, ok := v.(*core.Builtin); ok && b.Name == sym.Name() {
			continue
		}
		t.AppendRow(table.Row{sym.Name(), core.KindOf(v).String(), truncate(core.Repr(v), maxInputWidth)})
		n++
	}
	if n == 0 {
		r.Muted("(no definitions)")
		return
	}
	t.Render()
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .env            List names defined in this session
  .builtins       List special forms and builtins
  .clear          Clear the screen
  .quit / .exit   Exit the REPL

Tips:
  - A form can span several lines; input runs once every list is closed
  - Use arrow keys to navigate history
  - Tab completes builtin and defined names
`
	_, _ = fmt.Fprintln(w, help)
}

// nameCompleter completes the symbol under the cursor from the session's
// current names.
type nameCompleter struct {
	names func() []string
}

func newNameCompleter(names func() []string) *nameCompleter {
	return &nameCompleter{names: names}
}

// Do implements readline.AutoCompleter.
func (c *nameCompleter) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 && !isWordBreak(line[start-1]) {
		start--
	}
	prefix := string(line[start:pos])

	candidates := c.names()
	if start == 0 && strings.HasPrefix(prefix, ".") {
		candidates = dotCommands
	}

	var out [][]rune
	for _, name := range candidates {
		if strings.HasPrefix(name, prefix) && name != prefix {
			out = append(out, []rune(name[len(prefix):]))
		}
	}
	return out, len([]rune(prefix))
}

func isWordBreak(r rune) bool {
	switch r {
	case '(', ')', '\'', ' ', '\t', '\n':
		return true
	}
	return false
}
