package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/jscore/runtime"
)

func newObject(t *testing.T, ctx *runtime.Context, kv ...any) runtime.Value {
	t.Helper()
	obj := runtime.NewJSObject(ctx)
	for i := 0; i < len(kv); i += 2 {
		require.NoError(t, runtime.PutString(ctx, obj, kv[i].(string), kv[i+1].(runtime.Value), true))
	}
	return runtime.NewObject(obj)
}

func TestObjectConstructor(t *testing.T) {
	ctx := newTestContext(t)

	v := mustInvoke(t, ctx, "Object", runtime.Undefined)
	require.True(t, v.IsObject())
	assert.Same(t, ctx.Cls("Object").Prototype, v.Object.Prototype())

	wrapped := mustInvoke(t, ctx, "Object", runtime.Undefined, str("x"))
	assert.Equal(t, "String", wrapped.Object.Class())

	obj := newObject(t, ctx)
	assert.Same(t, obj.Object, mustInvoke(t, ctx, "Object", runtime.Undefined, obj).Object)
}

func TestObjectKeysOrder(t *testing.T) {
	ctx := newTestContext(t)
	obj := newObject(t, ctx, "b", num(1), "a", num(2), "c", num(3))
	require.NoError(t, runtime.PutString(ctx, obj.Object, "a", num(4), true))
	_, err := obj.Object.DefineOwnProperty(ctx, ctx.Intern("hidden"), runtime.DataDescriptor(runtime.True, runtime.Writable), true)
	require.NoError(t, err)

	keys := mustInvoke(t, ctx, "Object.keys", runtime.Undefined, obj)
	assert.Equal(t, []string{"b", "a", "c"}, strs(t, ctx, keys))

	names := mustInvoke(t, ctx, "Object.getOwnPropertyNames", runtime.Undefined, obj)
	assert.Equal(t, []string{"b", "a", "c", "hidden"}, strs(t, ctx, names))

	_, err = invoke(t, ctx, "Object.keys", runtime.Undefined, num(1))
	requireKind(t, err, runtime.TypeError)
}

func TestObjectFreeze(t *testing.T) {
	ctx := newTestContext(t)
	obj := newObject(t, ctx, "x", num(1))

	assert.Equal(t, runtime.False, mustInvoke(t, ctx, "Object.isFrozen", runtime.Undefined, obj))
	mustInvoke(t, ctx, "Object.freeze", runtime.Undefined, obj)
	assert.Equal(t, runtime.True, mustInvoke(t, ctx, "Object.isFrozen", runtime.Undefined, obj))
	assert.Equal(t, runtime.True, mustInvoke(t, ctx, "Object.isSealed", runtime.Undefined, obj))
	assert.Equal(t, runtime.False, mustInvoke(t, ctx, "Object.isExtensible", runtime.Undefined, obj))

	requireKind(t, runtime.PutString(ctx, obj.Object, "x", num(2), true), runtime.TypeError)
	requireKind(t, runtime.PutString(ctx, obj.Object, "y", num(2), true), runtime.TypeError)
	require.NoError(t, runtime.PutString(ctx, obj.Object, "x", num(2), false))
	x, err := runtime.GetString(ctx, obj.Object, "x")
	require.NoError(t, err)
	assert.Equal(t, 1.0, x.Number)
}

func TestObjectSealKeepsWritable(t *testing.T) {
	ctx := newTestContext(t)
	obj := newObject(t, ctx, "x", num(1))
	mustInvoke(t, ctx, "Object.seal", runtime.Undefined, obj)

	require.NoError(t, runtime.PutString(ctx, obj.Object, "x", num(2), true))
	assert.Equal(t, runtime.True, mustInvoke(t, ctx, "Object.isSealed", runtime.Undefined, obj))
	assert.Equal(t, runtime.False, mustInvoke(t, ctx, "Object.isFrozen", runtime.Undefined, obj))

	_, err := obj.Object.Delete(ctx, ctx.Intern("x"), true)
	requireKind(t, err, runtime.TypeError)
}

func TestObjectPreventExtensions(t *testing.T) {
	ctx := newTestContext(t)
	obj := newObject(t, ctx, "x", num(1))

	got := mustInvoke(t, ctx, "Object.preventExtensions", runtime.Undefined, obj)
	assert.Same(t, obj.Object, got.Object)
	assert.Equal(t, runtime.False, mustInvoke(t, ctx, "Object.isExtensible", runtime.Undefined, obj))
	assert.Equal(t, runtime.False, mustInvoke(t, ctx, "Object.isSealed", runtime.Undefined, obj))

	require.NoError(t, runtime.PutString(ctx, obj.Object, "x", num(2), true))
	requireKind(t, runtime.PutString(ctx, obj.Object, "y", num(2), true), runtime.TypeError)
	ok, err := obj.Object.Delete(ctx, ctx.Intern("x"), true)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = invoke(t, ctx, "Object.preventExtensions", runtime.Undefined, num(1))
	requireKind(t, err, runtime.TypeError)
}

func TestObjectDefinePropertyAndDescriptor(t *testing.T) {
	ctx := newTestContext(t)
	obj := newObject(t, ctx)
	desc := newObject(t, ctx, "value", num(7), "enumerable", runtime.True)

	ret := mustInvoke(t, ctx, "Object.defineProperty", runtime.Undefined, obj, str("n"), desc)
	assert.Same(t, obj.Object, ret.Object)

	got := mustInvoke(t, ctx, "Object.getOwnPropertyDescriptor", runtime.Undefined, obj, str("n"))
	require.True(t, got.IsObject())
	for name, want := range map[string]runtime.Value{
		"value":        num(7),
		"writable":     runtime.False,
		"enumerable":   runtime.True,
		"configurable": runtime.False,
	} {
		v, err := runtime.GetString(ctx, got.Object, name)
		require.NoError(t, err)
		assert.Equal(t, want, v, name)
	}

	missing := mustInvoke(t, ctx, "Object.getOwnPropertyDescriptor", runtime.Undefined, obj, str("none"))
	assert.True(t, missing.IsUndefined())

	_, err := invoke(t, ctx, "Object.defineProperty", runtime.Undefined, obj, str("n"), newObject(t, ctx, "value", num(8)))
	requireKind(t, err, runtime.TypeError)

	_, err = invoke(t, ctx, "Object.defineProperty", runtime.Undefined, obj, str("m"), num(1))
	requireKind(t, err, runtime.TypeError)
}

func TestObjectDefinePropertiesValidatesFirst(t *testing.T) {
	ctx := newTestContext(t)
	obj := newObject(t, ctx)
	getter := native(ctx, func(*runtime.Arguments) (runtime.Value, error) { return num(1), nil })
	props := newObject(t, ctx,
		"a", newObject(t, ctx, "value", num(1)),
		"b", newObject(t, ctx, "get", getter, "value", num(2)),
	)

	_, err := invoke(t, ctx, "Object.defineProperties", runtime.Undefined, obj, props)
	requireKind(t, err, runtime.TypeError)
	assert.False(t, runtime.HasOwnProperty(ctx, obj.Object, ctx.Intern("a")))
}

func TestObjectCreate(t *testing.T) {
	ctx := newTestContext(t)
	proto := newObject(t, ctx, "greeting", str("hi"))
	props := newObject(t, ctx, "own", newObject(t, ctx, "value", num(1), "enumerable", runtime.True))

	v := mustInvoke(t, ctx, "Object.create", runtime.Undefined, proto, props)
	assert.Same(t, proto.Object, v.Object.Prototype())
	g, err := runtime.GetString(ctx, v.Object, "greeting")
	require.NoError(t, err)
	assert.Equal(t, "hi", g.Str)
	assert.Equal(t, []string{"own"}, strs(t, ctx, mustInvoke(t, ctx, "Object.keys", runtime.Undefined, v)))

	bare := mustInvoke(t, ctx, "Object.create", runtime.Undefined, runtime.Null)
	assert.Nil(t, bare.Object.Prototype())
	assert.True(t, mustInvoke(t, ctx, "Object.getPrototypeOf", runtime.Undefined, bare).IsNull())

	_, err = invoke(t, ctx, "Object.create", runtime.Undefined, num(1))
	requireKind(t, err, runtime.TypeError)
}

func TestObjectPrototypeMethods(t *testing.T) {
	ctx := newTestContext(t)
	proto := newObject(t, ctx, "inherited", num(1))
	obj := mustInvoke(t, ctx, "Object.create", runtime.Undefined, proto)
	require.NoError(t, runtime.PutString(ctx, obj.Object, "own", num(2), true))

	assert.Equal(t, runtime.True, mustInvoke(t, ctx, "Object.prototype.hasOwnProperty", obj, str("own")))
	assert.Equal(t, runtime.False, mustInvoke(t, ctx, "Object.prototype.hasOwnProperty", obj, str("inherited")))
	assert.Equal(t, runtime.True, mustInvoke(t, ctx, "Object.prototype.isPrototypeOf", proto, obj))
	assert.Equal(t, runtime.False, mustInvoke(t, ctx, "Object.prototype.isPrototypeOf", obj, proto))
	assert.Equal(t, runtime.False, mustInvoke(t, ctx, "Object.prototype.isPrototypeOf", proto, num(1)))
	assert.Equal(t, runtime.True, mustInvoke(t, ctx, "Object.prototype.propertyIsEnumerable", obj, str("own")))
	assert.Equal(t, runtime.False, mustInvoke(t, ctx, "Object.prototype.propertyIsEnumerable", obj, str("inherited")))

	_, err := invoke(t, ctx, "Object.prototype.hasOwnProperty", runtime.Null, str("x"))
	requireKind(t, err, runtime.TypeError)
}

func TestObjectPrototypeToString(t *testing.T) {
	ctx := newTestContext(t)
	tests := []struct {
		this runtime.Value
		want string
	}{
		{runtime.Undefined, "[object Undefined]"},
		{runtime.Null, "[object Null]"},
		{num(1), "[object Number]"},
		{str("s"), "[object String]"},
		{runtime.True, "[object Boolean]"},
		{numbers(ctx, 1), "[object Array]"},
		{lookup(t, ctx, "Math"), "[object Math]"},
		{lookup(t, ctx, "parseInt"), "[object Function]"},
		{runtime.NewObject(ctx.Global()), "[object global]"},
	}
	for _, tt := range tests {
		got := mustInvoke(t, ctx, "Object.prototype.toString", tt.this)
		assert.Equal(t, tt.want, got.Str)
	}

	assert.Equal(t, "[object Object]", mustInvoke(t, ctx, "Object.prototype.toLocaleString", newObject(t, ctx)).Str)
}
