package runtime

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeLiteral struct {
	name   string
	params []string
	src    string
	strict bool
}

func (l *fakeLiteral) Name() string     { return l.name }
func (l *fakeLiteral) Params() []string { return l.params }
func (l *fakeLiteral) Source() string   { return l.src }
func (l *fakeLiteral) Strict() bool     { return l.strict }

// fakeInterpreter runs Go closures in place of parsed code.
type fakeInterpreter struct {
	run    func(ctx *Context, code FunctionLiteral, isEval bool) (Value, error)
	invoke func(ctx *Context, fn *JSCodeFunction, args *Arguments) (Value, error)
}

func (f *fakeInterpreter) Run(ctx *Context, code FunctionLiteral, isEval bool) (Value, error) {
	if f.run == nil {
		return Undefined, nil
	}
	return f.run(ctx, code, isEval)
}

func (f *fakeInterpreter) Invoke(ctx *Context, fn *JSCodeFunction, args *Arguments) (Value, error) {
	if f.invoke == nil {
		return Undefined, nil
	}
	return f.invoke(ctx, fn, args)
}

type fakeParser struct{}

func (fakeParser) ParseScript(name, src string) (FunctionLiteral, error) {
	return &fakeLiteral{name: name, src: src}, nil
}

func (fakeParser) ParseFunction(params, body string) (FunctionLiteral, error) {
	return &fakeLiteral{src: body}, nil
}

func newTestContext(t *testing.T, opts ...Option) *Context {
	t.Helper()
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	ctx, err := NewContext(Config{}, opts...)
	require.NoError(t, err)
	return ctx
}

// requireKind asserts that err is a *Error of the given kind.
func requireKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	require.Error(t, err)
	e, ok := err.(*Error)
	require.True(t, ok, "expected *Error, got %T", err)
	require.Equal(t, kind, e.Kind, e.Message)
}

func sym(ctx *Context, s string) Symbol { return ctx.Intern(s) }
