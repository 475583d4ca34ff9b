package builtins

import (
	"strings"

	"github.com/example/jscore/runtime"
)

func createFunctionConstructor(ctx *runtime.Context, proto *runtime.JSNativeFunction) *runtime.JSNativeFunction {
	ctor := newConstructor(ctx, "Function", 1, proto, functionConstructorCall)

	setMethod(ctx, proto, "toString", 0, functionToString)
	setMethod(ctx, proto, "call", 1, functionCall)
	setMethod(ctx, proto, "apply", 2, functionApply)
	setMethod(ctx, proto, "bind", 1, functionBind)
	return ctor
}

func functionPrototypeCall(args *runtime.Arguments) (runtime.Value, error) {
	return runtime.Undefined, nil
}

// functionConstructorCall implements ES5 15.3.2.1: the leading arguments
// are parameter names, the last one is the body. The new function is
// scoped to the global environment.
func functionConstructorCall(args *runtime.Arguments) (runtime.Value, error) {
	ctx := args.Ctx()
	var params []string
	body := ""
	for i := 0; i < args.Len(); i++ {
		s, err := stringArg(args, i)
		if err != nil {
			return runtime.Undefined, err
		}
		if i == args.Len()-1 {
			body = s
		} else {
			params = append(params, s)
		}
	}
	parser := ctx.Parser()
	if parser == nil {
		return runtime.Undefined, runtime.NewSyntaxError("no parser configured")
	}
	lit, err := parser.ParseFunction(strings.Join(params, ","), body)
	if err != nil {
		return runtime.Undefined, err
	}
	return runtime.NewObject(runtime.NewCodeFunction(ctx, lit, ctx.GlobalEnv())), nil
}

func thisFunction(args *runtime.Arguments, method string) (runtime.Callable, error) {
	fn, ok := args.This().Callable()
	if !ok {
		return nil, runtime.NewTypeError("Function.prototype.%s is not generic", method)
	}
	return fn, nil
}

func functionToString(args *runtime.Arguments) (runtime.Value, error) {
	fn, err := thisFunction(args, "toString")
	if err != nil {
		return runtime.Undefined, err
	}
	if code, ok := fn.(*runtime.JSCodeFunction); ok {
		if src := code.Code().Source(); src != "" {
			return runtime.NewString(src), nil
		}
	}
	return runtime.NewString("function " + fn.Name() + "() { [native code] }"), nil
}

func functionCall(args *runtime.Arguments) (runtime.Value, error) {
	fn, err := thisFunction(args, "call")
	if err != nil {
		return runtime.Undefined, err
	}
	var rest []runtime.Value
	if args.Len() > 1 {
		rest = args.Values()[1:]
	}
	return fn.Call(runtime.NewCallArguments(args.Ctx(), args.At(0), rest))
}

func functionApply(args *runtime.Arguments) (runtime.Value, error) {
	ctx := args.Ctx()
	fn, err := thisFunction(args, "apply")
	if err != nil {
		return runtime.Undefined, err
	}
	argArray := args.At(1)
	if argArray.IsNullish() {
		return fn.Call(runtime.NewCallArguments(ctx, args.At(0), nil))
	}
	if !argArray.IsObject() {
		return runtime.Undefined, runtime.NewTypeError("Function.prototype.apply requires array-like arguments")
	}
	n, err := lengthOf(ctx, argArray.Object)
	if err != nil {
		return runtime.Undefined, err
	}
	list := make([]runtime.Value, 0, n)
	for i := uint32(0); i < n; i++ {
		v, err := getIndex(ctx, argArray.Object, i)
		if err != nil {
			return runtime.Undefined, err
		}
		list = append(list, v)
	}
	return fn.Call(runtime.NewCallArguments(ctx, args.At(0), list))
}

func functionBind(args *runtime.Arguments) (runtime.Value, error) {
	fn, err := thisFunction(args, "bind")
	if err != nil {
		return runtime.Undefined, err
	}
	var bound []runtime.Value
	if args.Len() > 1 {
		bound = append(bound, args.Values()[1:]...)
	}
	f, err := runtime.NewBoundFunction(args.Ctx(), fn, args.At(0), bound)
	if err != nil {
		return runtime.Undefined, err
	}
	return runtime.NewObject(f), nil
}
