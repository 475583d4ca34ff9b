package runtime

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolTable(t *testing.T) {
	st := NewSymbolTable()
	a := st.Intern("a")
	assert.Equal(t, a, st.Intern("a"))
	assert.NotEqual(t, a, st.Intern("b"))
	assert.Equal(t, "b", st.Text(st.Intern("b")))
	_, ok := st.Lookup("c")
	assert.False(t, ok)
	assert.Equal(t, 2, st.Len())
}

func TestArrayIndex(t *testing.T) {
	for _, s := range []string{"0", "7", "4294967294"} {
		_, ok := arrayIndex(s)
		assert.True(t, ok, s)
	}
	for _, s := range []string{"", "01", "-1", "1.0", "4294967295", "a"} {
		_, ok := arrayIndex(s)
		assert.False(t, ok, s)
	}
}

func TestSameValue(t *testing.T) {
	negZero := NewNumber(math.Copysign(0, -1))
	assert.True(t, SameValue(NaN, NaN))
	assert.False(t, SameValue(Zero, negZero))
	assert.True(t, StrictEquals(Zero, negZero))
	assert.False(t, StrictEquals(NaN, NaN))
	assert.False(t, SameValue(NewString("1"), NewNumber(1)))
}

func TestAbstractEquals(t *testing.T) {
	ctx := newTestContext(t)
	tests := []struct {
		a, b Value
		want bool
	}{
		{Null, Undefined, true},
		{NewString("1"), NewNumber(1), true},
		{True, NewNumber(1), true},
		{NewString(""), False, true},
		{Null, Zero, false},
		{NaN, NaN, false},
	}
	for _, tt := range tests {
		got, err := AbstractEquals(ctx, tt.a, tt.b)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%v == %v", tt.a, tt.b)
	}
}

func TestValueConversions(t *testing.T) {
	ctx := newTestContext(t)
	assert.False(t, NaN.ToBoolean())
	assert.True(t, NewString("0").ToBoolean())

	s, err := NewNumber(-0.5).ToString(ctx)
	require.NoError(t, err)
	assert.Equal(t, "-0.5", s)

	_, err = Undefined.ToObject(ctx)
	requireKind(t, err, TypeError)

	obj, err := NewString("ab").ToObject(ctx)
	require.NoError(t, err)
	v, err := obj.Get(ctx, ctx.IndexSymbol(1))
	require.NoError(t, err)
	assert.Equal(t, "b", v.Str)
	assert.Equal(t, "String", obj.Class())

	name, err := NewNumber(2).ToSymbol(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2", ctx.Text(name))
	name, err = NewNumber(1.5).ToSymbol(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1.5", ctx.Text(name))
}

func TestStringObjectProperties(t *testing.T) {
	ctx := newTestContext(t)
	s := NewStringObject(ctx, "hi")
	require.NoError(t, PutString(ctx, s, "extra", True, true))

	var keys []string
	for _, k := range s.OwnKeys(ctx) {
		keys = append(keys, ctx.Text(k))
	}
	assert.Equal(t, []string{"0", "1", "length", "extra"}, keys)

	desc := s.GetOwnProperty(ctx, ctx.IndexSymbol(0))
	assert.Equal(t, Enumerable, desc.Attrs())
	requireKind(t, Put(ctx, s, ctx.IndexSymbol(0), NewString("x"), true), TypeError)
	assert.True(t, s.GetOwnProperty(ctx, ctx.IndexSymbol(2)).IsEmpty())
}

func TestStringUnitsRoundTrip(t *testing.T) {
	for _, units := range [][]uint16{
		{0xD800},
		{0xDFFF, 'x'},
		{'a', 0xDE00, 0xD83D, 'b'},
		{0xD83D, 0xDE00},
		{0xD55C},
		{},
	} {
		assert.Equal(t, units, ToUnits(FromUnits(units)), "%x", units)
	}

	assert.Equal(t, "\U0001F600", FromUnits([]uint16{0xD83D, 0xDE00}))
	assert.Equal(t, "\ud55c", NewString("\ud55c").Str)
	assert.Equal(t, []uint16{0xFFFD, 'a'}, ToUnits("\xffa"))

	halves := NewString(UnitString(0xD83D) + UnitString(0xDE00))
	assert.Equal(t, "\U0001F600", halves.Str)
	assert.True(t, StrictEquals(halves, NewString("\U0001F600")))
}

func TestStringObjectLoneSurrogate(t *testing.T) {
	ctx := newTestContext(t)
	s := NewStringObject(ctx, FromUnits([]uint16{0xD800, 'b'}))

	length, err := GetString(ctx, s, "length")
	require.NoError(t, err)
	assert.Equal(t, 2.0, length.Number)

	first := s.GetOwnProperty(ctx, ctx.IndexSymbol(0))
	assert.Equal(t, []uint16{0xD800}, ToUnits(first.Value.Str))
}
