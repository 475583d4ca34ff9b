package builtins

import (
	"github.com/example/jscore/runtime"
)

func createBooleanConstructor(ctx *runtime.Context, proto *runtime.JSBooleanObject) *runtime.JSNativeFunction {
	ctor := newConstructor(ctx, "Boolean", 1, proto, booleanConstructorCall)

	setMethod(ctx, proto, "toString", 0, booleanToString)
	setMethod(ctx, proto, "valueOf", 0, booleanValueOf)
	return ctor
}

func booleanConstructorCall(args *runtime.Arguments) (runtime.Value, error) {
	b := args.At(0).ToBoolean()
	if args.IsConstructorCalled() {
		return runtime.NewObject(runtime.NewBooleanObject(args.Ctx(), b)), nil
	}
	return runtime.NewBool(b), nil
}

func thisBooleanValue(args *runtime.Arguments, method string) (bool, error) {
	this := args.This()
	if this.IsBoolean() {
		return this.Bool, nil
	}
	if this.IsObject() {
		if b, ok := this.Object.(*runtime.JSBooleanObject); ok {
			return b.PrimitiveValue(), nil
		}
	}
	return false, runtime.NewTypeError("Boolean.prototype.%s is not generic function", method)
}

func booleanToString(args *runtime.Arguments) (runtime.Value, error) {
	b, err := thisBooleanValue(args, "toString")
	if err != nil {
		return runtime.Undefined, err
	}
	if b {
		return runtime.NewString("true"), nil
	}
	return runtime.NewString("false"), nil
}

func booleanValueOf(args *runtime.Arguments) (runtime.Value, error) {
	b, err := thisBooleanValue(args, "valueOf")
	if err != nil {
		return runtime.Undefined, err
	}
	return runtime.NewBool(b), nil
}
