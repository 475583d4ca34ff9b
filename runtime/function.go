package runtime

// Callable is implemented by every function object.
type Callable interface {
	Object
	Call(args *Arguments) (Value, error)
	Construct(args *Arguments) (Value, error)
	HasInstance(ctx *Context, v Value) (bool, error)
	IsStrict() bool
	Name() string
}

// Arguments is the view a function receives for one invocation: the this
// value, the actual arguments and whether it was called as a constructor.
type Arguments struct {
	ctx          *Context
	this         Value
	args         []Value
	constructing bool
}

func NewCallArguments(ctx *Context, this Value, args []Value) *Arguments {
	return &Arguments{ctx: ctx, this: this, args: args}
}

func (a *Arguments) Ctx() *Context             { return a.ctx }
func (a *Arguments) This() Value               { return a.this }
func (a *Arguments) Len() int                  { return len(a.args) }
func (a *Arguments) Values() []Value           { return a.args }
func (a *Arguments) IsConstructorCalled() bool { return a.constructing }

// At returns the i-th argument or undefined when it was not passed.
func (a *Arguments) At(i int) Value {
	if i < 0 || i >= len(a.args) {
		return Undefined
	}
	return a.args[i]
}

// NativeFunc is the Go signature of a built-in function.
type NativeFunc func(args *Arguments) (Value, error)

// JSNativeFunction is a function object backed by Go code.
type JSNativeFunction struct {
	JSObject
	name string
	fn   NativeFunc
	// ctor, when set, handles [[Construct]]; otherwise fn is called with
	// IsConstructorCalled reporting true.
	ctor NativeFunc
}

// NewNativeFunction creates a native function inheriting from
// Function.prototype with a non-writable, non-enumerable,
// non-configurable length.
func NewNativeFunction(ctx *Context, name string, length int, fn NativeFunc) *JSNativeFunction {
	f := NewPlainNativeFunction(ctx, name, length, fn)
	f.proto = ctx.classPrototype(ctx.Names.Function)
	return f
}

// NewPlainNativeFunction is NewNativeFunction without a prototype. It is
// used while bootstrapping, before Function.prototype exists.
func NewPlainNativeFunction(ctx *Context, name string, length int, fn NativeFunc) *JSNativeFunction {
	f := &JSNativeFunction{name: name, fn: fn}
	f.init(f, "Function", nil)
	f.putOwn(ctx.Names.Length, DataDescriptor(NewNumber(float64(length)), None))
	return f
}

// SetConstructor installs a dedicated [[Construct]] behavior.
func (f *JSNativeFunction) SetConstructor(fn NativeFunc) { f.ctor = fn }

func (f *JSNativeFunction) Name() string   { return f.name }
func (f *JSNativeFunction) IsStrict() bool { return false }

func (f *JSNativeFunction) Call(args *Arguments) (Value, error) {
	return f.fn(args)
}

func (f *JSNativeFunction) Construct(args *Arguments) (Value, error) {
	call := *args
	call.constructing = true
	if f.ctor != nil {
		return f.ctor(&call)
	}
	return f.fn(&call)
}

func (f *JSNativeFunction) HasInstance(ctx *Context, v Value) (bool, error) {
	return ordinaryHasInstance(ctx, f, v)
}

// ordinaryHasInstance implements ES5 15.3.5.3.
func ordinaryHasInstance(ctx *Context, fn Object, v Value) (bool, error) {
	if !v.IsObject() {
		return false, nil
	}
	proto, err := fn.Get(ctx, ctx.Names.Prototype)
	if err != nil {
		return false, err
	}
	if !proto.IsObject() {
		return false, NewTypeError("function has non-object prototype in instanceof check")
	}
	return IsPrototypeOf(ctx, proto.Object, v.Object)
}

// FunctionLiteral is the parsed form of a function or script body that the
// interpreter executes. The runtime only needs its shape.
type FunctionLiteral interface {
	Name() string
	Params() []string
	Source() string
	Strict() bool
}

// JSCodeFunction is a function defined by script code. Calls are delegated
// to the context's Interpreter.
type JSCodeFunction struct {
	JSObject
	code   FunctionLiteral
	scope  JSEnv
	params []Symbol
}

// NewCodeFunction creates a function object as in ES5 13.2: its length is
// the parameter count and it gets a fresh prototype object whose
// constructor points back at it. Strict functions get poisoned caller and
// arguments accessors.
func NewCodeFunction(ctx *Context, code FunctionLiteral, scope JSEnv) *JSCodeFunction {
	f := &JSCodeFunction{code: code, scope: scope}
	f.init(f, "Function", ctx.classPrototype(ctx.Names.Function))
	for _, p := range code.Params() {
		f.params = append(f.params, ctx.Intern(p))
	}
	f.putOwn(ctx.Names.Length, DataDescriptor(NewNumber(float64(len(f.params))), None))

	proto := NewJSObject(ctx)
	proto.putOwn(ctx.Names.Constructor, DataDescriptor(NewObject(f), Writable|Configurable))
	f.putOwn(ctx.Names.Prototype, DataDescriptor(NewObject(proto), Writable))

	if code.Strict() {
		thrower := NewObject(ctx.ThrowTypeError())
		poison := AccessorDescriptor(thrower, thrower, None)
		f.putOwn(ctx.Names.Caller, poison)
		f.putOwn(ctx.Names.Arguments, poison)
	}
	return f
}

func (f *JSCodeFunction) Name() string          { return f.code.Name() }
func (f *JSCodeFunction) IsStrict() bool        { return f.code.Strict() }
func (f *JSCodeFunction) Code() FunctionLiteral { return f.code }
func (f *JSCodeFunction) Scope() JSEnv          { return f.scope }
func (f *JSCodeFunction) Params() []Symbol      { return f.params }

func (f *JSCodeFunction) Call(args *Arguments) (Value, error) {
	ctx := args.ctx
	if ctx.interp == nil {
		return Undefined, NewTypeError("no interpreter attached to call %s", f.describeName())
	}
	return ctx.interp.Invoke(ctx, f, args)
}

// Construct implements ES5 13.2.2.
func (f *JSCodeFunction) Construct(args *Arguments) (Value, error) {
	ctx := args.ctx
	protoVal, err := f.Get(ctx, ctx.Names.Prototype)
	if err != nil {
		return Undefined, err
	}
	obj := NewJSObject(ctx)
	if protoVal.IsObject() {
		obj.proto = protoVal.Object
	}
	call := &Arguments{ctx: ctx, this: NewObject(obj), args: args.args, constructing: true}
	res, err := f.Call(call)
	if err != nil {
		return Undefined, err
	}
	if res.IsObject() {
		return res, nil
	}
	return NewObject(obj), nil
}

func (f *JSCodeFunction) HasInstance(ctx *Context, v Value) (bool, error) {
	return ordinaryHasInstance(ctx, f, v)
}

func (f *JSCodeFunction) describeName() string {
	if n := f.code.Name(); n != "" {
		return n
	}
	return "anonymous function"
}

// Get implements the ES5 15.3.5.4 restriction on reading a strict
// function through a non-strict function's caller property.
func (f *JSCodeFunction) Get(ctx *Context, name Symbol) (Value, error) {
	v, err := f.JSObject.Get(ctx, name)
	if err != nil {
		return v, err
	}
	if name == ctx.Names.Caller {
		if fn, ok := v.Callable(); ok && fn.IsStrict() {
			return Undefined, NewTypeError("access to strict function \"caller\" not allowed")
		}
	}
	return v, nil
}

// ThisBinding computes the this value for entering f's code (ES5 10.4.3).
func (f *JSCodeFunction) ThisBinding(ctx *Context, this Value) (Value, error) {
	if f.IsStrict() {
		return this, nil
	}
	if this.IsNullish() {
		return NewObject(ctx.Global()), nil
	}
	obj, err := this.ToObject(ctx)
	if err != nil {
		return Undefined, err
	}
	return NewObject(obj), nil
}

// Instantiate creates the function environment for one call and performs
// the parameter and arguments-object parts of declaration binding
// instantiation (ES5 10.5 steps 4 and 7). Function and variable
// declarations are left to the interpreter.
func (f *JSCodeFunction) Instantiate(args *Arguments) (*JSDeclEnv, error) {
	ctx := args.ctx
	env := NewDeclEnv(f.scope)
	strict := f.IsStrict()
	for i, p := range f.params {
		if _, ok := env.bindings[p]; !ok {
			if err := env.CreateMutableBinding(ctx, p, false); err != nil {
				return nil, err
			}
		}
		if err := env.SetMutableBinding(ctx, p, args.At(i), strict); err != nil {
			return nil, err
		}
	}
	if _, ok := env.bindings[ctx.Names.Arguments]; ok {
		return env, nil
	}
	argsObj := NewJSArguments(ctx, f, env, args.args, f.params, strict)
	if strict {
		if err := env.CreateImmutableBinding(ctx, ctx.Names.Arguments); err != nil {
			return nil, err
		}
		return env, env.InitializeImmutableBinding(ctx, ctx.Names.Arguments, NewObject(argsObj))
	}
	if err := env.CreateMutableBinding(ctx, ctx.Names.Arguments, false); err != nil {
		return nil, err
	}
	return env, env.SetMutableBinding(ctx, ctx.Names.Arguments, NewObject(argsObj), false)
}

// JSBoundFunction is the result of Function.prototype.bind (ES5 15.3.4.5).
type JSBoundFunction struct {
	JSObject
	target    Callable
	boundThis Value
	boundArgs []Value
}

func NewBoundFunction(ctx *Context, target Callable, this Value, args []Value) (*JSBoundFunction, error) {
	f := &JSBoundFunction{target: target, boundThis: this, boundArgs: args}
	f.init(f, "Function", ctx.classPrototype(ctx.Names.Function))

	length := 0.0
	if target.Class() == "Function" {
		l, err := target.Get(ctx, ctx.Names.Length)
		if err != nil {
			return nil, err
		}
		if l.IsNumber() {
			length = l.Number - float64(len(args))
			if length < 0 {
				length = 0
			}
		}
	}
	f.putOwn(ctx.Names.Length, DataDescriptor(NewNumber(length), None))
	thrower := NewObject(ctx.ThrowTypeError())
	poison := AccessorDescriptor(thrower, thrower, None)
	f.putOwn(ctx.Names.Caller, poison)
	f.putOwn(ctx.Names.Arguments, poison)
	return f, nil
}

func (f *JSBoundFunction) Name() string     { return "bound " + f.target.Name() }
func (f *JSBoundFunction) IsStrict() bool   { return f.target.IsStrict() }
func (f *JSBoundFunction) Target() Callable { return f.target }

func (f *JSBoundFunction) joined(args []Value) []Value {
	all := make([]Value, 0, len(f.boundArgs)+len(args))
	all = append(all, f.boundArgs...)
	return append(all, args...)
}

func (f *JSBoundFunction) Call(args *Arguments) (Value, error) {
	return f.target.Call(NewCallArguments(args.ctx, f.boundThis, f.joined(args.args)))
}

func (f *JSBoundFunction) Construct(args *Arguments) (Value, error) {
	return f.target.Construct(NewCallArguments(args.ctx, Undefined, f.joined(args.args)))
}

func (f *JSBoundFunction) HasInstance(ctx *Context, v Value) (bool, error) {
	return f.target.HasInstance(ctx, v)
}

// Call invokes fn with the given this value, failing with a TypeError when
// fn is not callable.
func Call(ctx *Context, fn Value, this Value, args ...Value) (Value, error) {
	callable, ok := fn.Callable()
	if !ok {
		return Undefined, NewTypeError("%s is not a function", fn.String())
	}
	return callable.Call(NewCallArguments(ctx, this, args))
}

// Construct invokes fn as a constructor.
func Construct(ctx *Context, fn Value, args ...Value) (Value, error) {
	callable, ok := fn.Callable()
	if !ok {
		return Undefined, NewTypeError("%s is not a constructor", fn.String())
	}
	return callable.Construct(NewCallArguments(ctx, Undefined, args))
}
