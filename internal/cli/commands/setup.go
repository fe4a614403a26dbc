// Package commands implements the leaplisp subcommands.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaplisp/internal/cli/output"
	"github.com/leapstack-labs/leaplisp/internal/config"
	"github.com/leapstack-labs/leaplisp/internal/state"
	"github.com/leapstack-labs/leaplisp/pkg/interp"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext builds a CommandContext from the command's context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	ctx := commandCtx(cmd)
	cfg := config.GetConfig(ctx)
	logger := config.GetLogger(ctx)

	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
	if cfg.NoColor || termenv.EnvNoColor() {
		r.DisableColor()
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

func commandCtx(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// NewSession creates an interpreter session writing print output to out
// and evaluates the configured prelude files into it.
func (cc *CommandContext) NewSession(out io.Writer) (*interp.Session, error) {
	sess := interp.NewSession(interp.Options{
		Out:      out,
		MaxDepth: cc.Cfg.MaxDepth,
		Logger:   cc.Logger,
	})

	for _, path := range cc.Cfg.Prelude {
		if _, err := sess.EvalFile(path); err != nil {
			return nil, fmt.Errorf("prelude: %w", err)
		}
		cc.Logger.Debug("loaded prelude", "path", path)
	}
	return sess, nil
}

// OpenStore opens and migrates the state database.
func (cc *CommandContext) OpenStore(ctx context.Context) (*state.SQLiteStore, error) {
	store := state.NewSQLiteStore(cc.Logger)
	if err := store.Open(cc.Cfg.StatePath); err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// OpenRecorder starts a transcript session for source. It returns a nil
// recorder when recording is disabled or the store cannot be opened; the
// cleanup function is always safe to call.
func (cc *CommandContext) OpenRecorder(ctx context.Context, source string) (*state.Recorder, func()) {
	noop := func() {}
	if !cc.Cfg.Record {
		return nil, noop
	}

	store, err := cc.OpenStore(ctx)
	if err != nil {
		cc.Logger.Warn("transcript disabled", "state_path", cc.Cfg.StatePath, "error", err)
		return nil, noop
	}

	rec, err := state.NewRecorder(ctx, store, source, cc.Logger)
	if err != nil {
		cc.Logger.Warn("transcript disabled", "state_path", cc.Cfg.StatePath, "error", err)
		_ = store.Close()
		return nil, noop
	}
	return rec, func() { _ = store.Close() }
}
