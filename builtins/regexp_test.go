package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/jscore/runtime"
)

func newRegExp(t *testing.T, ctx *runtime.Context, pattern, flags string) runtime.Value {
	t.Helper()
	v, err := runtime.Construct(ctx, lookup(t, ctx, "RegExp"), str(pattern), str(flags))
	require.NoError(t, err)
	return v
}

func TestRegExpEngineMatchAt(t *testing.T) {
	m, err := RegExpEngine{}.Compile(`(a)|(b)`, runtime.RegExpFlags{})
	require.NoError(t, err)
	assert.Equal(t, 2, m.Groups())

	got, err := m.MatchAt(runtime.ToUnits("xxb"), 0)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, -1, -1, 2, 3}, got)

	got, err = m.MatchAt(runtime.ToUnits("a"), 1)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = RegExpEngine{}.Compile(`(`, runtime.RegExpFlags{})
	var rtErr *runtime.Error
	require.ErrorAs(t, err, &rtErr)
	assert.Equal(t, runtime.SyntaxError, rtErr.Kind)
}

func TestRegExpEngineUTF16Offsets(t *testing.T) {
	m, err := RegExpEngine{}.Compile(`b`, runtime.RegExpFlags{})
	require.NoError(t, err)

	input := runtime.ToUnits("\U0001F600b\U0001F600b")
	got, err := m.MatchAt(input, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, got)

	got, err = m.MatchAt(input, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 6}, got)
}

func TestRegExpEngineFlags(t *testing.T) {
	m, err := RegExpEngine{}.Compile(`^b`, runtime.RegExpFlags{IgnoreCase: true, Multiline: true})
	require.NoError(t, err)
	got, err := m.MatchAt(runtime.ToUnits("a\nB"), 0)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, got)
}

func TestRegExpConstructor(t *testing.T) {
	ctx := newTestContext(t)
	re := newRegExp(t, ctx, "a+", "gi")

	for name, want := range map[string]runtime.Value{
		"source":     str("a+"),
		"global":     runtime.True,
		"ignoreCase": runtime.True,
		"multiline":  runtime.False,
		"lastIndex":  runtime.Zero,
	} {
		v, err := runtime.GetString(ctx, re.Object, name)
		require.NoError(t, err)
		assert.Equal(t, want, v, name)
	}
	assert.Equal(t, "/a+/gi", mustInvoke(t, ctx, "RegExp.prototype.toString", re).Str)
	assert.Same(t, ctx.Cls("RegExp").Prototype, re.Object.Prototype())

	assert.Same(t, re.Object, mustInvoke(t, ctx, "RegExp", runtime.Undefined, re).Object)
	copied, err := runtime.Construct(ctx, lookup(t, ctx, "RegExp"), re)
	require.NoError(t, err)
	assert.NotSame(t, re.Object, copied.Object)
	assert.Equal(t, "/a+/gi", mustInvoke(t, ctx, "RegExp.prototype.toString", copied).Str)

	_, err = invoke(t, ctx, "RegExp", runtime.Undefined, re, str("m"))
	requireKind(t, err, runtime.TypeError)
	_, err = invoke(t, ctx, "RegExp", runtime.Undefined, str("a"), str("gg"))
	requireKind(t, err, runtime.SyntaxError)
	_, err = invoke(t, ctx, "RegExp", runtime.Undefined, str("["))
	requireKind(t, err, runtime.SyntaxError)

	empty := mustInvoke(t, ctx, "RegExp", runtime.Undefined)
	assert.Equal(t, "/(?:)/", mustInvoke(t, ctx, "RegExp.prototype.toString", empty).Str)
}

func TestRegExpExec(t *testing.T) {
	ctx := newTestContext(t)
	re := newRegExp(t, ctx, `(\d+)-(x)?`, "")

	m := mustInvoke(t, ctx, "RegExp.prototype.exec", re, str("ab12-cd"))
	require.True(t, m.IsObject())
	got := elements(t, ctx, m)
	require.Len(t, got, 3)
	assert.Equal(t, "12-", got[0].Str)
	assert.Equal(t, "12", got[1].Str)
	assert.True(t, got[2].IsUndefined())

	index, err := runtime.GetString(ctx, m.Object, "index")
	require.NoError(t, err)
	assert.Equal(t, 2.0, index.Number)
	input, err := runtime.GetString(ctx, m.Object, "input")
	require.NoError(t, err)
	assert.Equal(t, "ab12-cd", input.Str)

	assert.True(t, mustInvoke(t, ctx, "RegExp.prototype.exec", re, str("none")).IsNull())

	_, err = invoke(t, ctx, "RegExp.prototype.exec", newObject(t, ctx), str("x"))
	requireKind(t, err, runtime.TypeError)
}

func TestRegExpGlobalLastIndex(t *testing.T) {
	ctx := newTestContext(t)
	re := newRegExp(t, ctx, "o", "g")
	lastIndex := func() float64 {
		v, err := runtime.GetString(ctx, re.Object, "lastIndex")
		require.NoError(t, err)
		return v.Number
	}

	assert.Equal(t, runtime.True, mustInvoke(t, ctx, "RegExp.prototype.test", re, str("foo")))
	assert.Equal(t, 2.0, lastIndex())
	assert.Equal(t, runtime.True, mustInvoke(t, ctx, "RegExp.prototype.test", re, str("foo")))
	assert.Equal(t, 3.0, lastIndex())
	assert.Equal(t, runtime.False, mustInvoke(t, ctx, "RegExp.prototype.test", re, str("foo")))
	assert.Equal(t, 0.0, lastIndex())

	require.NoError(t, runtime.PutString(ctx, re.Object, "lastIndex", num(10), true))
	assert.True(t, mustInvoke(t, ctx, "RegExp.prototype.exec", re, str("foo")).IsNull())
	assert.Equal(t, 0.0, lastIndex())
}

func TestRegExpNonGlobalIgnoresLastIndex(t *testing.T) {
	ctx := newTestContext(t)
	re := newRegExp(t, ctx, "o", "")
	require.NoError(t, runtime.PutString(ctx, re.Object, "lastIndex", num(2), true))

	m := mustInvoke(t, ctx, "RegExp.prototype.exec", re, str("foo"))
	index, err := runtime.GetString(ctx, m.Object, "index")
	require.NoError(t, err)
	assert.Equal(t, 1.0, index.Number)

	li, err := runtime.GetString(ctx, re.Object, "lastIndex")
	require.NoError(t, err)
	assert.Equal(t, 2.0, li.Number)
}

func TestRegExpExecUTF16Index(t *testing.T) {
	ctx := newTestContext(t)
	re := newRegExp(t, ctx, "b", "g")

	m := mustInvoke(t, ctx, "RegExp.prototype.exec", re, str("\U0001F600b"))
	index, err := runtime.GetString(ctx, m.Object, "index")
	require.NoError(t, err)
	assert.Equal(t, 2.0, index.Number)
	li, err := runtime.GetString(ctx, re.Object, "lastIndex")
	require.NoError(t, err)
	assert.Equal(t, 3.0, li.Number)
}
