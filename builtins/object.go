package builtins

import (
	"github.com/example/jscore/runtime"
)

func createObjectConstructor(ctx *runtime.Context, proto *runtime.JSObject) *runtime.JSNativeFunction {
	ctor := newConstructor(ctx, "Object", 1, proto, objectConstructorCall)

	setMethod(ctx, ctor, "getPrototypeOf", 1, objectGetPrototypeOf)
	setMethod(ctx, ctor, "getOwnPropertyDescriptor", 2, objectGetOwnPropertyDescriptor)
	setMethod(ctx, ctor, "getOwnPropertyNames", 1, objectGetOwnPropertyNames)
	setMethod(ctx, ctor, "create", 2, objectCreate)
	setMethod(ctx, ctor, "defineProperty", 3, objectDefineProperty)
	setMethod(ctx, ctor, "defineProperties", 2, objectDefineProperties)
	setMethod(ctx, ctor, "seal", 1, objectSeal)
	setMethod(ctx, ctor, "freeze", 1, objectFreeze)
	setMethod(ctx, ctor, "preventExtensions", 1, objectPreventExtensions)
	setMethod(ctx, ctor, "isSealed", 1, objectIsSealed)
	setMethod(ctx, ctor, "isFrozen", 1, objectIsFrozen)
	setMethod(ctx, ctor, "isExtensible", 1, objectIsExtensible)
	setMethod(ctx, ctor, "keys", 1, objectKeys)

	setMethod(ctx, proto, "toString", 0, objectProtoToString)
	setMethod(ctx, proto, "toLocaleString", 0, objectProtoToLocaleString)
	setMethod(ctx, proto, "valueOf", 0, objectProtoValueOf)
	setMethod(ctx, proto, "hasOwnProperty", 1, objectProtoHasOwnProperty)
	setMethod(ctx, proto, "isPrototypeOf", 1, objectProtoIsPrototypeOf)
	setMethod(ctx, proto, "propertyIsEnumerable", 1, objectProtoPropertyIsEnumerable)
	return ctor
}

func objectConstructorCall(args *runtime.Arguments) (runtime.Value, error) {
	ctx := args.Ctx()
	v := args.At(0)
	if v.IsNullish() {
		return runtime.NewObject(runtime.NewJSObject(ctx)), nil
	}
	obj, err := v.ToObject(ctx)
	if err != nil {
		return runtime.Undefined, err
	}
	return runtime.NewObject(obj), nil
}

func objectGetPrototypeOf(args *runtime.Arguments) (runtime.Value, error) {
	obj, err := objectArg(args, 0, "Object.getPrototypeOf")
	if err != nil {
		return runtime.Undefined, err
	}
	return runtime.NewObject(obj.Prototype()), nil
}

func objectGetOwnPropertyDescriptor(args *runtime.Arguments) (runtime.Value, error) {
	ctx := args.Ctx()
	obj, err := objectArg(args, 0, "Object.getOwnPropertyDescriptor")
	if err != nil {
		return runtime.Undefined, err
	}
	name, err := args.At(1).ToSymbol(ctx)
	if err != nil {
		return runtime.Undefined, err
	}
	return runtime.FromPropertyDescriptor(ctx, obj.GetOwnProperty(ctx, name)), nil
}

func objectGetOwnPropertyNames(args *runtime.Arguments) (runtime.Value, error) {
	ctx := args.Ctx()
	obj, err := objectArg(args, 0, "Object.getOwnPropertyNames")
	if err != nil {
		return runtime.Undefined, err
	}
	keys := obj.OwnKeys(ctx)
	names := make([]runtime.Value, len(keys))
	for i, k := range keys {
		names[i] = runtime.NewString(ctx.Text(k))
	}
	return newArray(ctx, names), nil
}

func objectCreate(args *runtime.Arguments) (runtime.Value, error) {
	ctx := args.Ctx()
	protoVal := args.At(0)
	if !protoVal.IsObject() && !protoVal.IsNull() {
		return runtime.Undefined, runtime.NewTypeError("Object.create requires Object or null argument")
	}
	obj := runtime.NewJSObject(ctx)
	obj.SetPrototype(protoVal.Object)
	if props := args.At(1); !props.IsUndefined() {
		if err := defineProperties(ctx, obj, props); err != nil {
			return runtime.Undefined, err
		}
	}
	return runtime.NewObject(obj), nil
}

func objectDefineProperty(args *runtime.Arguments) (runtime.Value, error) {
	ctx := args.Ctx()
	obj, err := objectArg(args, 0, "Object.defineProperty")
	if err != nil {
		return runtime.Undefined, err
	}
	name, err := args.At(1).ToSymbol(ctx)
	if err != nil {
		return runtime.Undefined, err
	}
	desc, err := runtime.ToPropertyDescriptor(ctx, args.At(2))
	if err != nil {
		return runtime.Undefined, err
	}
	if _, err := obj.DefineOwnProperty(ctx, name, desc, true); err != nil {
		return runtime.Undefined, err
	}
	return args.At(0), nil
}

func objectDefineProperties(args *runtime.Arguments) (runtime.Value, error) {
	obj, err := objectArg(args, 0, "Object.defineProperties")
	if err != nil {
		return runtime.Undefined, err
	}
	if err := defineProperties(args.Ctx(), obj, args.At(1)); err != nil {
		return runtime.Undefined, err
	}
	return args.At(0), nil
}

// defineProperties implements ES5 15.2.3.7: every descriptor is converted
// before any property is defined.
func defineProperties(ctx *runtime.Context, obj runtime.Object, propsVal runtime.Value) error {
	props, err := propsVal.ToObject(ctx)
	if err != nil {
		return err
	}
	type pending struct {
		name runtime.Symbol
		desc runtime.PropertyDescriptor
	}
	var list []pending
	for _, k := range props.OwnKeys(ctx) {
		own := props.GetOwnProperty(ctx, k)
		if own.IsEmpty() || !own.IsEnumerable() {
			continue
		}
		descObj, err := props.Get(ctx, k)
		if err != nil {
			return err
		}
		desc, err := runtime.ToPropertyDescriptor(ctx, descObj)
		if err != nil {
			return err
		}
		list = append(list, pending{k, desc})
	}
	for _, p := range list {
		if _, err := obj.DefineOwnProperty(ctx, p.name, p.desc, true); err != nil {
			return err
		}
	}
	return nil
}

// restrict makes every own property non-configurable and, when freeze is
// set, every data property read-only. The key list is taken up front.
func restrict(args *runtime.Arguments, fn string, freeze bool) (runtime.Value, error) {
	ctx := args.Ctx()
	obj, err := objectArg(args, 0, fn)
	if err != nil {
		return runtime.Undefined, err
	}
	for _, k := range obj.OwnKeys(ctx) {
		own := obj.GetOwnProperty(ctx, k)
		if own.IsEmpty() {
			continue
		}
		var desc runtime.PropertyDescriptor
		desc.SetConfigurable(false)
		if freeze && own.IsDataDescriptor() {
			desc.SetWritable(false)
		}
		if _, err := obj.DefineOwnProperty(ctx, k, desc, true); err != nil {
			return runtime.Undefined, err
		}
	}
	obj.PreventExtensions()
	return args.At(0), nil
}

func objectSeal(args *runtime.Arguments) (runtime.Value, error) {
	return restrict(args, "Object.seal", false)
}

func objectFreeze(args *runtime.Arguments) (runtime.Value, error) {
	return restrict(args, "Object.freeze", true)
}

func objectPreventExtensions(args *runtime.Arguments) (runtime.Value, error) {
	obj, err := objectArg(args, 0, "Object.preventExtensions")
	if err != nil {
		return runtime.Undefined, err
	}
	obj.PreventExtensions()
	return args.At(0), nil
}

// isRestricted reports whether no own property is configurable (and, for
// frozen, no data property is writable) and the object is not extensible.
func isRestricted(args *runtime.Arguments, fn string, frozen bool) (runtime.Value, error) {
	ctx := args.Ctx()
	obj, err := objectArg(args, 0, fn)
	if err != nil {
		return runtime.Undefined, err
	}
	for _, k := range obj.OwnKeys(ctx) {
		own := obj.GetOwnProperty(ctx, k)
		if own.IsConfigurable() {
			return runtime.False, nil
		}
		if frozen && own.IsDataDescriptor() && own.IsWritable() {
			return runtime.False, nil
		}
	}
	return runtime.NewBool(!obj.IsExtensible()), nil
}

func objectIsSealed(args *runtime.Arguments) (runtime.Value, error) {
	return isRestricted(args, "Object.isSealed", false)
}

func objectIsFrozen(args *runtime.Arguments) (runtime.Value, error) {
	return isRestricted(args, "Object.isFrozen", true)
}

func objectIsExtensible(args *runtime.Arguments) (runtime.Value, error) {
	obj, err := objectArg(args, 0, "Object.isExtensible")
	if err != nil {
		return runtime.Undefined, err
	}
	return runtime.NewBool(obj.IsExtensible()), nil
}

func objectKeys(args *runtime.Arguments) (runtime.Value, error) {
	ctx := args.Ctx()
	obj, err := objectArg(args, 0, "Object.keys")
	if err != nil {
		return runtime.Undefined, err
	}
	var names []runtime.Value
	for _, k := range obj.OwnKeys(ctx) {
		if obj.GetOwnProperty(ctx, k).IsEnumerable() {
			names = append(names, runtime.NewString(ctx.Text(k)))
		}
	}
	return newArray(ctx, names), nil
}

// objectProtoToString implements ES5.1 15.2.4.2.
func objectProtoToString(args *runtime.Arguments) (runtime.Value, error) {
	this := args.This()
	switch {
	case this.IsUndefined():
		return runtime.NewString("[object Undefined]"), nil
	case this.IsNull():
		return runtime.NewString("[object Null]"), nil
	}
	obj, err := this.ToObject(args.Ctx())
	if err != nil {
		return runtime.Undefined, err
	}
	return runtime.NewString("[object " + obj.Class() + "]"), nil
}

func objectProtoToLocaleString(args *runtime.Arguments) (runtime.Value, error) {
	ctx := args.Ctx()
	obj, err := thisObject(args)
	if err != nil {
		return runtime.Undefined, err
	}
	fn, err := obj.Get(ctx, ctx.Names.ToString)
	if err != nil {
		return runtime.Undefined, err
	}
	return runtime.Call(ctx, fn, args.This())
}

func objectProtoValueOf(args *runtime.Arguments) (runtime.Value, error) {
	obj, err := thisObject(args)
	if err != nil {
		return runtime.Undefined, err
	}
	return runtime.NewObject(obj), nil
}

func objectProtoHasOwnProperty(args *runtime.Arguments) (runtime.Value, error) {
	ctx := args.Ctx()
	name, err := args.At(0).ToSymbol(ctx)
	if err != nil {
		return runtime.Undefined, err
	}
	obj, err := thisObject(args)
	if err != nil {
		return runtime.Undefined, err
	}
	return runtime.NewBool(runtime.HasOwnProperty(ctx, obj, name)), nil
}

func objectProtoIsPrototypeOf(args *runtime.Arguments) (runtime.Value, error) {
	v := args.At(0)
	if !v.IsObject() {
		return runtime.False, nil
	}
	obj, err := thisObject(args)
	if err != nil {
		return runtime.Undefined, err
	}
	found, err := runtime.IsPrototypeOf(args.Ctx(), obj, v.Object)
	if err != nil {
		return runtime.Undefined, err
	}
	return runtime.NewBool(found), nil
}

func objectProtoPropertyIsEnumerable(args *runtime.Arguments) (runtime.Value, error) {
	ctx := args.Ctx()
	name, err := args.At(0).ToSymbol(ctx)
	if err != nil {
		return runtime.Undefined, err
	}
	obj, err := thisObject(args)
	if err != nil {
		return runtime.Undefined, err
	}
	return runtime.NewBool(obj.GetOwnProperty(ctx, name).IsEnumerable()), nil
}
