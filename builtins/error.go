package builtins

import (
	"github.com/example/jscore/runtime"
)

var errorSubtypes = []runtime.ErrorKind{
	runtime.EvalError,
	runtime.RangeError,
	runtime.ReferenceError,
	runtime.SyntaxError,
	runtime.TypeError,
	runtime.URIError,
}

func newErrorPrototype(ctx *runtime.Context, kind runtime.ErrorKind, parent runtime.Object) *runtime.JSObject {
	proto := runtime.NewPlainJSObject()
	proto.SetClass("Error")
	proto.SetPrototype(parent)
	mustDefine(ctx, proto, "name", runtime.NewString(kind.String()), runtime.Writable|runtime.Configurable)
	mustDefine(ctx, proto, "message", runtime.NewString(""), runtime.Writable|runtime.Configurable)
	return proto
}

// createErrorConstructors builds Error and its six native subtypes. Each
// subtype prototype inherits from Error.prototype.
func createErrorConstructors(ctx *runtime.Context, objProto runtime.Object) []*runtime.JSNativeFunction {
	errProto := newErrorPrototype(ctx, runtime.GenericError, objProto)
	ctors := []*runtime.JSNativeFunction{
		newConstructor(ctx, "Error", 1, errProto, errorConstructor(runtime.GenericError)),
	}
	setMethod(ctx, errProto, "toString", 0, errorToString)

	for _, kind := range errorSubtypes {
		proto := newErrorPrototype(ctx, kind, errProto)
		ctors = append(ctors, newConstructor(ctx, kind.String(), 1, proto, errorConstructor(kind)))
	}
	return ctors
}

// errorConstructor returns the call and construct behavior shared by
// Error(message) and new Error(message).
func errorConstructor(kind runtime.ErrorKind) runtime.NativeFunc {
	return func(args *runtime.Arguments) (runtime.Value, error) {
		ctx := args.Ctx()
		e := runtime.NewErrorObject(ctx, kind, "")
		if msg := args.At(0); !msg.IsUndefined() {
			s, err := msg.ToString(ctx)
			if err != nil {
				return runtime.Undefined, err
			}
			if err := define(ctx, e, "message", runtime.NewString(s), runtime.Writable|runtime.Configurable); err != nil {
				return runtime.Undefined, err
			}
		}
		return runtime.NewObject(e), nil
	}
}

// errorToString implements ES5 15.11.4.4.
func errorToString(args *runtime.Arguments) (runtime.Value, error) {
	ctx := args.Ctx()
	this := args.This()
	if !this.IsObject() {
		return runtime.Undefined, runtime.NewTypeError("Error.prototype.toString called on non-object")
	}
	field := func(name, fallback string) (string, error) {
		v, err := runtime.GetString(ctx, this.Object, name)
		if err != nil || v.IsUndefined() {
			return fallback, err
		}
		return v.ToString(ctx)
	}
	name, err := field("name", "Error")
	if err != nil {
		return runtime.Undefined, err
	}
	msg, err := field("message", "")
	if err != nil {
		return runtime.Undefined, err
	}
	switch {
	case name == "":
		return runtime.NewString(msg), nil
	case msg == "":
		return runtime.NewString(name), nil
	}
	return runtime.NewString(name + ": " + msg), nil
}
