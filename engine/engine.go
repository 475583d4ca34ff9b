// Package engine assembles a ready-to-use runtime Context: the otto-backed
// parser, the regexp2 RegExp engine, the built-in object graph and a slog
// logger at the configured level.
package engine

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/example/jscore/builtins"
	"github.com/example/jscore/runtime"
	"github.com/example/jscore/syntax"
)

// Engine is one initialized JS world.
type Engine struct {
	ctx *runtime.Context
	log *slog.Logger
}

// Option adjusts how New builds the engine.
type Option func(*options)

type options struct {
	out    io.Writer
	interp runtime.Interpreter
}

// WithLogOutput sends log records to w instead of stderr.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithInterpreter attaches the evaluator that runs scripts and code
// functions.
func WithInterpreter(i runtime.Interpreter) Option {
	return func(o *options) { o.interp = i }
}

// New creates a Context for cfg and installs the built-ins.
func New(cfg runtime.Config, opts ...Option) (*Engine, error) {
	o := options{out: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	log := slog.New(slog.NewTextHandler(o.out, &slog.HandlerOptions{Level: level}))

	ctxOpts := []runtime.Option{
		runtime.WithLogger(log),
		runtime.WithParser(syntax.Parser{}),
		runtime.WithRegExpEngine(builtins.RegExpEngine{}),
		runtime.WithInitializer(builtins.Initialize),
	}
	if o.interp != nil {
		ctxOpts = append(ctxOpts, runtime.WithInterpreter(o.interp))
	}
	ctx, err := runtime.NewContext(cfg, ctxOpts...)
	if err != nil {
		return nil, fmt.Errorf("engine: create context: %w", err)
	}
	log.Debug("engine configured", "locale", ctx.Locale().String(), "chain_limit", cfg.PrototypeChainLimit, "strict", cfg.Strict)
	return &Engine{ctx: ctx, log: log}, nil
}

func (e *Engine) Context() *runtime.Context { return e.ctx }
func (e *Engine) Logger() *slog.Logger      { return e.log }

// RunString compiles src and runs it as a global script. The returned
// error is also kept as the context's pending error.
func (e *Engine) RunString(name, src string) (runtime.Value, error) {
	s, err := e.ctx.Compile(name, src)
	if err != nil {
		return runtime.Undefined, err
	}
	if err := e.ctx.Run(s); err != nil {
		return runtime.Undefined, err
	}
	return e.ctx.Completion(), nil
}

// RunFile reads and runs the script at path.
func (e *Engine) RunFile(path string) (runtime.Value, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return runtime.Undefined, fmt.Errorf("engine: read script: %w", err)
	}
	return e.RunString(path, string(src))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelWarn, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("engine: log level %q: %w", s, err)
	}
	return level, nil
}
