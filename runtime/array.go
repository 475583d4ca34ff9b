package runtime

import (
	"slices"
)

// JSArray is an Array object. Its length property is always one more than
// the largest own index property (ES5 15.4).
type JSArray struct {
	JSObject
}

// NewJSArray creates an empty array with the given length.
func NewJSArray(ctx *Context, length uint32) *JSArray {
	a := &JSArray{}
	a.init(a, "Array", ctx.classPrototype(ctx.Names.Array))
	a.putOwn(ctx.Names.Length, DataDescriptor(NewNumber(float64(length)), Writable))
	return a
}

// NewJSArrayFrom creates a dense array holding vals.
func NewJSArrayFrom(ctx *Context, vals []Value) *JSArray {
	a := NewJSArray(ctx, uint32(len(vals)))
	for i, v := range vals {
		a.putOwn(ctx.IndexSymbol(uint32(i)), DataDescriptor(v, Writable|Enumerable|Configurable))
	}
	return a
}

// Length returns the current value of the length property.
func (a *JSArray) Length(ctx *Context) uint32 {
	return uint32(a.props[ctx.Names.Length].Value.Number)
}

// DefineOwnProperty implements ES5 15.4.5.1. When shrinking length hits a
// non-deletable element, length stops just above that element and the
// definition is rejected.
func (a *JSArray) DefineOwnProperty(ctx *Context, name Symbol, desc PropertyDescriptor, throw bool) (bool, error) {
	oldLenDesc := a.props[ctx.Names.Length]
	oldLen := uint32(oldLenDesc.Value.Number)

	if name == ctx.Names.Length {
		return a.defineLength(ctx, desc, oldLenDesc, oldLen, throw)
	}
	idx, ok := arrayIndex(ctx.Text(name))
	if !ok {
		return a.JSObject.DefineOwnProperty(ctx, name, desc, throw)
	}
	if idx >= oldLen && !oldLenDesc.IsWritable() {
		return reject(throw, "cannot add element %d, array length is not writable", idx)
	}
	defined, err := a.JSObject.DefineOwnProperty(ctx, name, desc, false)
	if err != nil {
		return false, err
	}
	if !defined {
		return reject(throw, "cannot redefine property: %d", idx)
	}
	if idx >= oldLen {
		oldLenDesc.Value = NewNumber(float64(idx) + 1)
		a.putOwn(ctx.Names.Length, oldLenDesc)
	}
	return true, nil
}

func (a *JSArray) defineLength(ctx *Context, desc PropertyDescriptor, oldLenDesc PropertyDescriptor, oldLen uint32, throw bool) (bool, error) {
	if !desc.HasValue() {
		return a.JSObject.DefineOwnProperty(ctx, ctx.Names.Length, desc, throw)
	}
	num, err := desc.Value.ToNumber(ctx)
	if err != nil {
		return false, err
	}
	newLen := DoubleToUint32(num)
	if float64(newLen) != num {
		return false, NewRangeError("invalid array length")
	}
	newLenDesc := desc
	newLenDesc.Value = NewNumber(float64(newLen))
	if newLen >= oldLen {
		return a.JSObject.DefineOwnProperty(ctx, ctx.Names.Length, newLenDesc, throw)
	}
	if !oldLenDesc.IsWritable() {
		return reject(throw, "cannot assign to read only property length")
	}
	newWritable := !newLenDesc.HasWritable() || newLenDesc.IsWritable()
	if !newWritable {
		// other elements may fail to delete; keep length writable until done
		newLenDesc.SetWritable(true)
	}
	ok, err := a.JSObject.DefineOwnProperty(ctx, ctx.Names.Length, newLenDesc, throw)
	if err != nil || !ok {
		return ok, err
	}
	for _, idx := range a.indicesBetween(ctx, newLen, oldLen) {
		deleted, err := a.Delete(ctx, ctx.IndexSymbol(idx), false)
		if err != nil {
			return false, err
		}
		if !deleted {
			newLenDesc.Value = NewNumber(float64(idx) + 1)
			if !newWritable {
				newLenDesc.SetWritable(false)
			}
			if _, err := a.JSObject.DefineOwnProperty(ctx, ctx.Names.Length, newLenDesc, false); err != nil {
				return false, err
			}
			return reject(throw, "cannot delete array element %d", idx)
		}
	}
	if !newWritable {
		var readonly PropertyDescriptor
		readonly.SetWritable(false)
		if _, err := a.JSObject.DefineOwnProperty(ctx, ctx.Names.Length, readonly, false); err != nil {
			return false, err
		}
	}
	return true, nil
}

// indicesBetween returns the own index properties in [from, to), largest
// first.
func (a *JSArray) indicesBetween(ctx *Context, from, to uint32) []uint32 {
	var out []uint32
	for _, k := range a.keys {
		if idx, ok := arrayIndex(ctx.Text(k)); ok && idx >= from && idx < to {
			out = append(out, idx)
		}
	}
	slices.Sort(out)
	slices.Reverse(out)
	return out
}
