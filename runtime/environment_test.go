package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclEnvBindings(t *testing.T) {
	ctx := newTestContext(t)
	env := NewDeclEnv(nil)
	a, b := sym(ctx, "a"), sym(ctx, "b")

	require.NoError(t, env.CreateMutableBinding(ctx, a, false))
	require.NoError(t, env.CreateMutableBinding(ctx, b, true))
	requireKind(t, env.CreateMutableBinding(ctx, a, false), TypeError)

	require.NoError(t, env.SetMutableBinding(ctx, a, NewNumber(1), true))
	v, err := env.GetBindingValue(ctx, a, true)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v.Number)

	assert.False(t, env.DeleteBinding(ctx, a))
	assert.True(t, env.DeleteBinding(ctx, b))
	assert.True(t, env.DeleteBinding(ctx, sym(ctx, "missing")))
	assert.Equal(t, []Symbol{a}, env.Names())
	assert.True(t, env.ImplicitThisValue().IsUndefined())

	requireKind(t, env.SetMutableBinding(ctx, b, True, false), ReferenceError)
}

func TestDeclEnvImmutableBindings(t *testing.T) {
	ctx := newTestContext(t)
	env := NewDeclEnv(nil)
	c := sym(ctx, "c")
	require.NoError(t, env.CreateImmutableBinding(ctx, c))

	v, err := env.GetBindingValue(ctx, c, false)
	require.NoError(t, err)
	assert.True(t, v.IsUndefined())
	_, err = env.GetBindingValue(ctx, c, true)
	requireKind(t, err, ReferenceError)

	require.NoError(t, env.InitializeImmutableBinding(ctx, c, NewString("k")))
	requireKind(t, env.InitializeImmutableBinding(ctx, c, NewString("again")), TypeError)
	requireKind(t, env.SetMutableBinding(ctx, c, NewString("x"), false), TypeError)

	v, err = env.GetBindingValue(ctx, c, true)
	require.NoError(t, err)
	assert.Equal(t, "k", v.Str)
}

func TestObjectEnv(t *testing.T) {
	ctx := newTestContext(t)
	obj := NewJSObject(ctx)
	env := NewObjectEnv(nil, obj, false)
	x := sym(ctx, "x")

	require.NoError(t, env.CreateMutableBinding(ctx, x, true))
	desc := obj.GetOwnProperty(ctx, x)
	assert.Equal(t, Writable|Enumerable|Configurable, desc.Attrs())

	require.NoError(t, env.SetMutableBinding(ctx, x, NewNumber(3), true))
	v, err := env.GetBindingValue(ctx, x, true)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v.Number)

	v, err = env.GetBindingValue(ctx, sym(ctx, "nope"), false)
	require.NoError(t, err)
	assert.True(t, v.IsUndefined())
	_, err = env.GetBindingValue(ctx, sym(ctx, "nope"), true)
	requireKind(t, err, ReferenceError)

	assert.True(t, env.ImplicitThisValue().IsUndefined())
	assert.Same(t, ctx.Global(), ctx.GlobalEnv().ImplicitThisValue().Object)

	assert.True(t, env.DeleteBinding(ctx, x))
	has, err := env.HasBinding(ctx, x)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestGetIdentifierReference(t *testing.T) {
	ctx := newTestContext(t)
	outer := NewDeclEnv(ctx.GlobalEnv())
	inner := NewDeclEnv(outer)
	x, y := sym(ctx, "x"), sym(ctx, "y")
	require.NoError(t, outer.CreateMutableBinding(ctx, x, false))
	require.NoError(t, PutString(ctx, ctx.Global(), "y", True, true))

	ref, err := GetIdentifierReference(ctx, inner, x)
	require.NoError(t, err)
	assert.Same(t, outer, ref)
	ref, err = GetIdentifierReference(ctx, inner, y)
	require.NoError(t, err)
	assert.Same(t, ctx.GlobalEnv(), ref)
	ref, err = GetIdentifierReference(ctx, inner, sym(ctx, "z"))
	require.NoError(t, err)
	assert.Nil(t, ref)
}
