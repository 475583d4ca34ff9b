package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/jscore/runtime"
	"github.com/example/jscore/syntax"
)

// recorder returns a native function that reports its this value and
// arguments.
func recorder(ctx *runtime.Context, this *runtime.Value, got *[]runtime.Value) runtime.Value {
	return native(ctx, func(args *runtime.Arguments) (runtime.Value, error) {
		*this = args.This()
		*got = append([]runtime.Value(nil), args.Values()...)
		return num(float64(args.Len())), nil
	})
}

func TestFunctionCallApply(t *testing.T) {
	ctx := newTestContext(t)
	var this runtime.Value
	var got []runtime.Value
	fn := recorder(ctx, &this, &got)
	marker := newObject(t, ctx)

	n := mustInvoke(t, ctx, "Function.prototype.call", fn, marker, num(1), num(2))
	assert.Equal(t, 2.0, n.Number)
	assert.Same(t, marker.Object, this.Object)
	assert.Equal(t, []runtime.Value{num(1), num(2)}, got)

	n = mustInvoke(t, ctx, "Function.prototype.apply", fn, str("s"), numbers(ctx, 3, 4, 5))
	assert.Equal(t, 3.0, n.Number)
	assert.Equal(t, str("s"), this)
	assert.Equal(t, []runtime.Value{num(3), num(4), num(5)}, got)

	arrayLike := newObject(t, ctx, "length", num(2), "1", str("b"))
	mustInvoke(t, ctx, "Function.prototype.apply", fn, runtime.Undefined, arrayLike)
	assert.Equal(t, []runtime.Value{runtime.Undefined, str("b")}, got)

	n = mustInvoke(t, ctx, "Function.prototype.apply", fn, runtime.Undefined, runtime.Null)
	assert.Equal(t, 0.0, n.Number)

	_, err := invoke(t, ctx, "Function.prototype.apply", fn, runtime.Undefined, num(1))
	requireKind(t, err, runtime.TypeError)
	_, err = invoke(t, ctx, "Function.prototype.call", newObject(t, ctx))
	requireKind(t, err, runtime.TypeError)
}

func TestFunctionBind(t *testing.T) {
	ctx := newTestContext(t)
	var this runtime.Value
	var got []runtime.Value
	target := runtime.NewNativeFunction(ctx, "target", 3, func(args *runtime.Arguments) (runtime.Value, error) {
		this = args.This()
		got = append([]runtime.Value(nil), args.Values()...)
		return runtime.Undefined, nil
	})
	marker := newObject(t, ctx)

	bound := mustInvoke(t, ctx, "Function.prototype.bind", runtime.NewObject(target), marker, num(1))
	b, ok := bound.Object.(*runtime.JSBoundFunction)
	require.True(t, ok)
	assert.Equal(t, "bound target", b.Name())

	length, err := runtime.GetString(ctx, bound.Object, "length")
	require.NoError(t, err)
	assert.Equal(t, 2.0, length.Number)

	_, err = runtime.Call(ctx, bound, str("ignored"), num(2))
	require.NoError(t, err)
	assert.Same(t, marker.Object, this.Object)
	assert.Equal(t, []runtime.Value{num(1), num(2)}, got)

	_, err = runtime.GetString(ctx, bound.Object, "caller")
	requireKind(t, err, runtime.TypeError)
}

func TestFunctionToString(t *testing.T) {
	ctx := newTestContext(t)
	got := mustInvoke(t, ctx, "Function.prototype.toString", lookup(t, ctx, "parseInt"))
	assert.Equal(t, "function parseInt() { [native code] }", got.Str)

	_, err := invoke(t, ctx, "Function.prototype.toString", str("f"))
	requireKind(t, err, runtime.TypeError)
}

func TestFunctionPrototypeIsCallable(t *testing.T) {
	ctx := newTestContext(t)
	proto := lookup(t, ctx, "Function.prototype")
	assert.True(t, proto.IsCallable())

	v, err := runtime.Call(ctx, proto, runtime.Undefined, num(1))
	require.NoError(t, err)
	assert.True(t, v.IsUndefined())
}

func TestFunctionConstructor(t *testing.T) {
	var gotArgs []runtime.Value
	interp := &fakeInterpreter{
		invoke: func(ctx *runtime.Context, fn *runtime.JSCodeFunction, args *runtime.Arguments) (runtime.Value, error) {
			gotArgs = args.Values()
			return str("called"), nil
		},
	}
	ctx := newTestContext(t, runtime.WithParser(syntax.Parser{}), runtime.WithInterpreter(interp))

	v := mustInvoke(t, ctx, "Function", runtime.Undefined, str("a"), str("b"), str("return a + b"))
	fn, ok := v.Object.(*runtime.JSCodeFunction)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, fn.Code().Params())
	assert.Same(t, ctx.GlobalEnv(), fn.Scope())
	assert.Contains(t, mustInvoke(t, ctx, "Function.prototype.toString", v).Str, "return a + b")

	length, err := runtime.GetString(ctx, fn, "length")
	require.NoError(t, err)
	assert.Equal(t, 2.0, length.Number)

	assert.Equal(t, "called", mustInvoke(t, ctx, "Function.prototype.call", v, runtime.Undefined, num(1)).Str)
	assert.Equal(t, []runtime.Value{num(1)}, gotArgs)

	strict := mustInvoke(t, ctx, "Function", runtime.Undefined, str("'use strict'; return 1"))
	assert.True(t, strict.Object.(*runtime.JSCodeFunction).IsStrict())

	_, err = invoke(t, ctx, "Function", runtime.Undefined, str("a"), str("a"), str("'use strict'"))
	requireKind(t, err, runtime.SyntaxError)
	_, err = invoke(t, ctx, "Function", runtime.Undefined, str("return )"))
	requireKind(t, err, runtime.SyntaxError)
}

func TestFunctionConstructorWithoutParser(t *testing.T) {
	ctx := newTestContext(t)
	_, err := invoke(t, ctx, "Function", runtime.Undefined, str("return 1"))
	requireKind(t, err, runtime.SyntaxError)
}
