package runtime

import (
	"math"
)

// ToPrimitive implements ES5 9.1.
func (v Value) ToPrimitive(ctx *Context, hint Hint) (Value, error) {
	if v.Type != TypeObject {
		return v, nil
	}
	return DefaultValue(ctx, v.Object, hint)
}

// ToNumber implements ES5 9.3.
func (v Value) ToNumber(ctx *Context) (float64, error) {
	switch v.Type {
	case TypeUndefined:
		return math.NaN(), nil
	case TypeNull:
		return 0, nil
	case TypeBoolean:
		if v.Bool {
			return 1, nil
		}
		return 0, nil
	case TypeNumber:
		return v.Number, nil
	case TypeString:
		return StringToNumber(v.Str), nil
	}
	prim, err := v.ToPrimitive(ctx, HintNumber)
	if err != nil {
		return math.NaN(), err
	}
	return prim.ToNumber(ctx)
}

// ToString implements ES5 9.8.
func (v Value) ToString(ctx *Context) (string, error) {
	if v.Type != TypeObject {
		return v.String(), nil
	}
	prim, err := v.ToPrimitive(ctx, HintString)
	if err != nil {
		return "", err
	}
	return prim.String(), nil
}

// ToObject implements ES5 9.9.
func (v Value) ToObject(ctx *Context) (Object, error) {
	switch v.Type {
	case TypeUndefined, TypeNull:
		return nil, NewTypeError("cannot convert %s to object", v.String())
	case TypeBoolean:
		return NewBooleanObject(ctx, v.Bool), nil
	case TypeNumber:
		return NewNumberObject(ctx, v.Number), nil
	case TypeString:
		return NewStringObject(ctx, v.Str), nil
	}
	return v.Object, nil
}

// ToInteger implements ES5 9.4.
func (v Value) ToInteger(ctx *Context) (float64, error) {
	n, err := v.ToNumber(ctx)
	return DoubleToInteger(n), err
}

// ToInt32 implements ES5 9.5.
func (v Value) ToInt32(ctx *Context) (int32, error) {
	n, err := v.ToNumber(ctx)
	return DoubleToInt32(n), err
}

// ToUint32 implements ES5 9.6.
func (v Value) ToUint32(ctx *Context) (uint32, error) {
	n, err := v.ToNumber(ctx)
	return DoubleToUint32(n), err
}

// ToUint16 implements ES5 9.7.
func (v Value) ToUint16(ctx *Context) (uint16, error) {
	n, err := v.ToNumber(ctx)
	return DoubleToUint16(n), err
}

// ToSymbol converts v to a property name.
func (v Value) ToSymbol(ctx *Context) (Symbol, error) {
	if v.Type == TypeNumber {
		if idx := uint32(v.Number); float64(idx) == v.Number && idx != math.MaxUint32 {
			return ctx.IndexSymbol(idx), nil
		}
	}
	s, err := v.ToString(ctx)
	if err != nil {
		return 0, err
	}
	return ctx.Intern(s), nil
}

// AbstractEquals implements == comparison (ES5 11.9.3).
func AbstractEquals(ctx *Context, a, b Value) (bool, error) {
	if a.Type == b.Type {
		return StrictEquals(a, b), nil
	}
	switch {
	case a.IsNullish() && b.IsNullish():
		return true, nil
	case a.Type == TypeNumber && b.Type == TypeString:
		return a.Number == StringToNumber(b.Str), nil
	case a.Type == TypeString && b.Type == TypeNumber:
		return StringToNumber(a.Str) == b.Number, nil
	case a.Type == TypeBoolean:
		n, _ := a.ToNumber(ctx)
		return AbstractEquals(ctx, NewNumber(n), b)
	case b.Type == TypeBoolean:
		n, _ := b.ToNumber(ctx)
		return AbstractEquals(ctx, a, NewNumber(n))
	case (a.Type == TypeNumber || a.Type == TypeString) && b.Type == TypeObject:
		prim, err := b.ToPrimitive(ctx, HintNone)
		if err != nil {
			return false, err
		}
		return AbstractEquals(ctx, a, prim)
	case a.Type == TypeObject && (b.Type == TypeNumber || b.Type == TypeString):
		prim, err := a.ToPrimitive(ctx, HintNone)
		if err != nil {
			return false, err
		}
		return AbstractEquals(ctx, prim, b)
	}
	return false, nil
}

// ToPropertyDescriptor implements ES5 8.10.5.
func ToPropertyDescriptor(ctx *Context, v Value) (PropertyDescriptor, error) {
	var desc PropertyDescriptor
	if !v.IsObject() {
		return desc, NewTypeError("property description must be an object: %s", v.String())
	}
	obj := v.Object
	field := func(name string) (Value, bool, error) {
		sym := ctx.Intern(name)
		if has, err := HasProperty(ctx, obj, sym); err != nil || !has {
			return Undefined, false, err
		}
		val, err := obj.Get(ctx, sym)
		return val, err == nil, err
	}

	if val, ok, err := field("enumerable"); err != nil {
		return desc, err
	} else if ok {
		desc.SetEnumerable(val.ToBoolean())
	}
	if val, ok, err := field("configurable"); err != nil {
		return desc, err
	} else if ok {
		desc.SetConfigurable(val.ToBoolean())
	}
	if val, ok, err := field("value"); err != nil {
		return desc, err
	} else if ok {
		desc.SetValue(val)
	}
	if val, ok, err := field("writable"); err != nil {
		return desc, err
	} else if ok {
		desc.SetWritable(val.ToBoolean())
	}
	if val, ok, err := field("get"); err != nil {
		return desc, err
	} else if ok {
		if !val.IsUndefined() && !val.IsCallable() {
			return desc, NewTypeError("getter must be a function: %s", val.String())
		}
		desc.SetGetter(val)
	}
	if val, ok, err := field("set"); err != nil {
		return desc, err
	} else if ok {
		if !val.IsUndefined() && !val.IsCallable() {
			return desc, NewTypeError("setter must be a function: %s", val.String())
		}
		desc.SetSetter(val)
	}
	if desc.IsAccessorDescriptor() && desc.IsDataDescriptor() {
		return desc, NewTypeError("invalid property descriptor, cannot both specify accessors and a value or writable attribute")
	}
	return desc, nil
}

// FromPropertyDescriptor implements ES5 8.10.4.
func FromPropertyDescriptor(ctx *Context, desc PropertyDescriptor) Value {
	if desc.IsEmpty() {
		return Undefined
	}
	obj := NewJSObject(ctx)
	set := func(name string, v Value) {
		obj.putOwn(ctx.Intern(name), DataDescriptor(v, Writable|Enumerable|Configurable))
	}
	if desc.IsDataDescriptor() {
		set("value", desc.Value)
		set("writable", NewBool(desc.IsWritable()))
	} else {
		set("get", desc.Getter)
		set("set", desc.Setter)
	}
	set("enumerable", NewBool(desc.IsEnumerable()))
	set("configurable", NewBool(desc.IsConfigurable()))
	return NewObject(obj)
}
