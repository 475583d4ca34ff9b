package builtins

import (
	"fmt"
	"math"

	"github.com/example/jscore/runtime"
)

// define creates or redefines an own data property, failing with a
// TypeError when obj rejects the definition.
func define(ctx *runtime.Context, obj runtime.Object, name string, val runtime.Value, attrs int) error {
	_, err := obj.DefineOwnProperty(ctx, ctx.Intern(name), runtime.DataDescriptor(val, attrs), true)
	return err
}

// bootstrapError carries a rejected definition out of the built-in graph
// construction; Initialize recovers it and returns it.
type bootstrapError struct {
	name string
	err  error
}

func (e bootstrapError) Error() string {
	return fmt.Sprintf("builtins: define %s: %v", e.name, e.err)
}

func (e bootstrapError) Unwrap() error { return e.err }

// mustDefine is define for objects of the built-in graph while Initialize
// runs.
func mustDefine(ctx *runtime.Context, obj runtime.Object, name string, val runtime.Value, attrs int) {
	if err := define(ctx, obj, name, val, attrs); err != nil {
		panic(bootstrapError{name: name, err: err})
	}
}

// setMethod installs a writable, configurable, non-enumerable native
// function under name.
func setMethod(ctx *runtime.Context, obj runtime.Object, name string, length int, fn runtime.NativeFunc) *runtime.JSNativeFunction {
	f := runtime.NewNativeFunction(ctx, name, length, fn)
	mustDefine(ctx, obj, name, runtime.NewObject(f), runtime.Writable|runtime.Configurable)
	return f
}

func setConstant(ctx *runtime.Context, obj runtime.Object, name string, val runtime.Value) {
	mustDefine(ctx, obj, name, val, runtime.None)
}

// newConstructor creates a native constructor, links it with proto in both
// directions and registers the pair as a built-in class.
func newConstructor(ctx *runtime.Context, name string, length int, proto runtime.Object, fn runtime.NativeFunc) *runtime.JSNativeFunction {
	ctor := runtime.NewNativeFunction(ctx, name, length, fn)
	mustDefine(ctx, ctor, "prototype", runtime.NewObject(proto), runtime.None)
	mustDefine(ctx, proto, "constructor", runtime.NewObject(ctor), runtime.Writable|runtime.Configurable)
	ctx.RegisterClass(name, ctor, proto)
	return ctor
}

// thisObject applies ToObject to the this value.
func thisObject(args *runtime.Arguments) (runtime.Object, error) {
	return args.This().ToObject(args.Ctx())
}

// objectArg returns argument i when it is an object; fn names the caller
// in the TypeError otherwise.
func objectArg(args *runtime.Arguments, i int, fn string) (runtime.Object, error) {
	v := args.At(i)
	if !v.IsObject() {
		return nil, runtime.NewTypeError("%s requires Object argument", fn)
	}
	return v.Object, nil
}

// callbackArg returns argument i when it is callable.
func callbackArg(args *runtime.Arguments, i int, fn string) (runtime.Callable, error) {
	c, ok := args.At(i).Callable()
	if !ok {
		return nil, runtime.NewTypeError("%s: %s is not a function", fn, args.At(i).String())
	}
	return c, nil
}

func lengthOf(ctx *runtime.Context, obj runtime.Object) (uint32, error) {
	v, err := obj.Get(ctx, ctx.Names.Length)
	if err != nil {
		return 0, err
	}
	return v.ToUint32(ctx)
}

func getIndex(ctx *runtime.Context, obj runtime.Object, i uint32) (runtime.Value, error) {
	return obj.Get(ctx, ctx.IndexSymbol(i))
}

func putIndex(ctx *runtime.Context, obj runtime.Object, i uint32, v runtime.Value) error {
	return runtime.Put(ctx, obj, ctx.IndexSymbol(i), v, true)
}

func hasIndex(ctx *runtime.Context, obj runtime.Object, i uint32) (bool, error) {
	return runtime.HasProperty(ctx, obj, ctx.IndexSymbol(i))
}

// element reads index i, reporting holes as not present.
func element(ctx *runtime.Context, obj runtime.Object, i uint32) (runtime.Value, bool, error) {
	present, err := hasIndex(ctx, obj, i)
	if err != nil || !present {
		return runtime.Undefined, false, err
	}
	v, err := getIndex(ctx, obj, i)
	return v, err == nil, err
}

func setLength(ctx *runtime.Context, obj runtime.Object, n float64) error {
	return runtime.Put(ctx, obj, ctx.Names.Length, runtime.NewNumber(n), true)
}

// relativeIndex clamps a relative position the way slice and splice
// interpret their start and end arguments.
func relativeIndex(rel, length float64) float64 {
	if rel < 0 {
		return math.Max(length+rel, 0)
	}
	return math.Min(rel, length)
}

func integerArg(args *runtime.Arguments, i int) (float64, error) {
	return args.At(i).ToInteger(args.Ctx())
}

func stringArg(args *runtime.Arguments, i int) (string, error) {
	return args.At(i).ToString(args.Ctx())
}

// newArray creates an Array from vals.
func newArray(ctx *runtime.Context, vals []runtime.Value) runtime.Value {
	return runtime.NewObject(runtime.NewJSArrayFrom(ctx, vals))
}
