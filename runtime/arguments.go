package runtime

// JSArguments is the arguments object of a function call (ES5 10.6). In
// non-strict functions the index properties below the formal parameter
// count alias the parameter bindings of the call's environment until they
// are deleted, redefined as accessors or made non-writable.
type JSArguments struct {
	JSObject
	env *JSDeclEnv
	// mapped relates an index property to the parameter it aliases.
	mapped map[Symbol]Symbol
}

// NewJSArguments builds the arguments object for a call of callee with
// the actual values args, whose formal parameters are params and whose
// bindings live in env.
func NewJSArguments(ctx *Context, callee Callable, env *JSDeclEnv, args []Value, params []Symbol, strict bool) *JSArguments {
	a := &JSArguments{env: env, mapped: make(map[Symbol]Symbol)}
	a.init(a, "Arguments", ctx.classPrototype(ctx.Names.Object))
	a.putOwn(ctx.Names.Length, DataDescriptor(NewNumber(float64(len(args))), Writable|Configurable))

	for i, v := range args {
		a.putOwn(ctx.IndexSymbol(uint32(i)), DataDescriptor(v, Writable|Enumerable|Configurable))
	}
	if !strict {
		// walk from the last index so a repeated parameter name aliases
		// its last occurrence only
		seen := make(map[Symbol]bool)
		for i := min(len(args), len(params)) - 1; i >= 0; i-- {
			name := params[i]
			if seen[name] {
				continue
			}
			seen[name] = true
			a.mapped[ctx.IndexSymbol(uint32(i))] = name
		}
	}

	if strict {
		thrower := NewObject(ctx.ThrowTypeError())
		poison := AccessorDescriptor(thrower, thrower, None)
		a.putOwn(ctx.Names.Caller, poison)
		a.putOwn(ctx.Names.Callee, poison)
	} else {
		a.putOwn(ctx.Names.Callee, DataDescriptor(NewObject(callee), Writable|Configurable))
	}
	return a
}

// IsMapped reports whether the index property name still aliases a
// parameter binding.
func (a *JSArguments) IsMapped(name Symbol) bool {
	_, ok := a.mapped[name]
	return ok
}

func (a *JSArguments) Get(ctx *Context, name Symbol) (Value, error) {
	if param, ok := a.mapped[name]; ok {
		v, _ := a.env.Binding(param)
		return v, nil
	}
	v, err := a.JSObject.Get(ctx, name)
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

func (a *JSArguments) GetOwnProperty(ctx *Context, name Symbol) PropertyDescriptor {
	desc := a.JSObject.GetOwnProperty(ctx, name)
	if desc.IsEmpty() {
		return desc
	}
	if param, ok := a.mapped[name]; ok {
		v, _ := a.env.Binding(param)
		desc.Value = v
	}
	return desc
}

func (a *JSArguments) DefineOwnProperty(ctx *Context, name Symbol, desc PropertyDescriptor, throw bool) (bool, error) {
	allowed, err := a.JSObject.DefineOwnProperty(ctx, name, desc, false)
	if err != nil {
		return false, err
	}
	if !allowed {
		return reject(throw, "cannot redefine property: %s", ctx.Text(name))
	}
	param, ok := a.mapped[name]
	if !ok {
		return true, nil
	}
	if desc.IsAccessorDescriptor() {
		delete(a.mapped, name)
		return true, nil
	}
	if desc.HasValue() {
		if err := a.env.SetMutableBinding(ctx, param, desc.Value, throw); err != nil {
			return false, err
		}
	}
	if desc.HasWritable() && !desc.IsWritable() {
		delete(a.mapped, name)
	}
	return true, nil
}

func (a *JSArguments) Delete(ctx *Context, name Symbol, throw bool) (bool, error) {
	ok, err := a.JSObject.Delete(ctx, name, throw)
	if err != nil || !ok {
		return ok, err
	}
	delete(a.mapped, name)
	return true, nil
}
