// Package builtins builds the ES5 built-in object graph of a runtime
// Context: the constructors, their prototypes, Math and the global
// functions.
package builtins

import (
	"errors"

	"github.com/example/jscore/runtime"
)

// ErrInitialized is returned when Initialize runs twice on one Context.
var ErrInitialized = errors.New("builtins: context already initialized")

// Initialize installs the built-in graph into ctx. It is meant to be
// passed to runtime.WithInitializer.
func Initialize(ctx *runtime.Context) (err error) {
	if _, ok := ctx.LookupClass("Object"); ok {
		return ErrInitialized
	}
	defer func() {
		if r := recover(); r != nil {
			be, ok := r.(bootstrapError)
			if !ok {
				panic(r)
			}
			err = be
		}
	}()
	global := ctx.Global()
	ctors := func(name string) runtime.Object {
		return ctx.Cls(name).Constructor
	}

	// 1. Object and Function are intertwined: every native function needs
	// Function.prototype, which itself inherits from Object.prototype.
	objProto := runtime.NewPlainJSObject()
	funcProto := runtime.NewPlainNativeFunction(ctx, "", 0, functionPrototypeCall)
	funcProto.SetPrototype(objProto)
	ctx.RegisterClass("Object", nil, objProto)
	ctx.RegisterClass("Function", nil, funcProto)
	createObjectConstructor(ctx, objProto)
	createFunctionConstructor(ctx, funcProto)

	// 2. Array
	arrayProto := runtime.NewJSArray(ctx, 0)
	arrayProto.SetPrototype(objProto)
	createArrayConstructor(ctx, arrayProto)

	// 3. String, Boolean and Number prototypes hold the wrapped zero value
	stringProto := runtime.NewStringObject(ctx, "")
	stringProto.SetPrototype(objProto)
	createStringConstructor(ctx, stringProto)

	boolProto := runtime.NewBooleanObject(ctx, false)
	boolProto.SetPrototype(objProto)
	createBooleanConstructor(ctx, boolProto)

	numProto := runtime.NewNumberObject(ctx, 0)
	numProto.SetPrototype(objProto)
	createNumberConstructor(ctx, numProto)

	// 4. Error and its subtypes
	errorCtors := createErrorConstructors(ctx, objProto)

	// 5. RegExp
	regexpProto := runtime.NewJSObject(ctx)
	regexpProto.SetClass("RegExp")
	createRegExpConstructor(ctx, regexpProto)

	// 6. Global object
	global.SetPrototype(objProto)
	global.SetClass("global")
	for _, name := range []string{"Object", "Function", "Array", "String", "Boolean", "Number", "RegExp"} {
		mustDefine(ctx, global, name, runtime.NewObject(ctors(name)), runtime.Writable|runtime.Configurable)
	}
	for _, ctor := range errorCtors {
		mustDefine(ctx, global, ctor.Name(), runtime.NewObject(ctor), runtime.Writable|runtime.Configurable)
	}
	mustDefine(ctx, global, "Math", runtime.NewObject(createMathObject(ctx)), runtime.Writable|runtime.Configurable)
	defineGlobals(ctx, global)

	// 7. Arguments objects inherit from Object.prototype
	ctx.RegisterClass("Arguments", nil, objProto)

	// 8. The strict mode poison pill
	ctx.ThrowTypeError()

	ctx.Logger().Debug("builtins installed", "globals", len(global.OwnKeys(ctx)))
	return nil
}
