package builtins

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/example/jscore/runtime"
)

func newTestContext(t *testing.T, opts ...runtime.Option) *runtime.Context {
	t.Helper()
	return newConfiguredContext(t, runtime.Config{RandomSeed: 42}, opts...)
}

func newConfiguredContext(t *testing.T, cfg runtime.Config, opts ...runtime.Option) *runtime.Context {
	t.Helper()
	opts = append([]runtime.Option{
		runtime.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		runtime.WithRegExpEngine(RegExpEngine{}),
		runtime.WithInitializer(Initialize),
	}, opts...)
	ctx, err := runtime.NewContext(cfg, opts...)
	require.NoError(t, err)
	return ctx
}

// lookup resolves a dotted path such as "String.prototype.split" from the
// global object.
func lookup(t *testing.T, ctx *runtime.Context, path string) runtime.Value {
	t.Helper()
	v := runtime.NewObject(ctx.Global())
	for _, part := range strings.Split(path, ".") {
		require.True(t, v.IsObject(), "%s: %s is not an object", path, part)
		next, err := runtime.GetString(ctx, v.Object, part)
		require.NoError(t, err)
		v = next
	}
	return v
}

// invoke calls the function at path with this and args.
func invoke(t *testing.T, ctx *runtime.Context, path string, this runtime.Value, args ...runtime.Value) (runtime.Value, error) {
	t.Helper()
	return runtime.Call(ctx, lookup(t, ctx, path), this, args...)
}

// mustInvoke is invoke for calls that are expected to succeed.
func mustInvoke(t *testing.T, ctx *runtime.Context, path string, this runtime.Value, args ...runtime.Value) runtime.Value {
	t.Helper()
	v, err := invoke(t, ctx, path, this, args...)
	require.NoError(t, err)
	return v
}

func requireKind(t *testing.T, err error, kind runtime.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	var e *runtime.Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, kind, e.Kind, e.Message)
}

func str(s string) runtime.Value  { return runtime.NewString(s) }
func num(n float64) runtime.Value  { return runtime.NewNumber(n) }

func numbers(ctx *runtime.Context, ns ...float64) runtime.Value {
	vals := make([]runtime.Value, len(ns))
	for i, n := range ns {
		vals[i] = runtime.NewNumber(n)
	}
	return newArray(ctx, vals)
}

// elements reads an array-like value into a slice.
func elements(t *testing.T, ctx *runtime.Context, v runtime.Value) []runtime.Value {
	t.Helper()
	require.True(t, v.IsObject())
	n, err := lengthOf(ctx, v.Object)
	require.NoError(t, err)
	out := make([]runtime.Value, n)
	for i := range out {
		out[i], err = getIndex(ctx, v.Object, uint32(i))
		require.NoError(t, err)
	}
	return out
}

// strs renders the elements of an array-like value with ToString.
func strs(t *testing.T, ctx *runtime.Context, v runtime.Value) []string {
	t.Helper()
	var out []string
	for _, e := range elements(t, ctx, v) {
		s, err := e.ToString(ctx)
		require.NoError(t, err)
		out = append(out, s)
	}
	return out
}

func has(t *testing.T, ctx *runtime.Context, obj runtime.Object, i uint32) bool {
	t.Helper()
	ok, err := hasIndex(ctx, obj, i)
	require.NoError(t, err)
	return ok
}

func native(ctx *runtime.Context, fn runtime.NativeFunc) runtime.Value {
	return runtime.NewObject(runtime.NewNativeFunction(ctx, "", 0, fn))
}
