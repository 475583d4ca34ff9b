package runtime

// JSEnv is an environment record (ES5 10.2.1). Environments form a chain
// through Outer; name resolution walks it with GetIdentifierReference.
type JSEnv interface {
	HasBinding(ctx *Context, name Symbol) (bool, error)
	DeleteBinding(ctx *Context, name Symbol) bool
	CreateMutableBinding(ctx *Context, name Symbol, deletable bool) error
	SetMutableBinding(ctx *Context, name Symbol, v Value, strict bool) error
	GetBindingValue(ctx *Context, name Symbol, strict bool) (Value, error)
	ImplicitThisValue() Value
	Outer() JSEnv
}

// binding flags for declarative records
const (
	immutableInitialized = 1 << iota
	immutableUninitialized
	mutable
	deletable
)

type binding struct {
	flags int
	value Value
}

// JSDeclEnv is a declarative environment record. Bindings keep their
// creation order so debuggers and tests can enumerate them stably.
type JSDeclEnv struct {
	outer    JSEnv
	bindings map[Symbol]*binding
	order    []Symbol
}

func NewDeclEnv(outer JSEnv) *JSDeclEnv {
	return &JSDeclEnv{outer: outer, bindings: make(map[Symbol]*binding)}
}

func (e *JSDeclEnv) Outer() JSEnv { return e.outer }

func (e *JSDeclEnv) HasBinding(ctx *Context, name Symbol) (bool, error) {
	_, ok := e.bindings[name]
	return ok, nil
}

// DeleteBinding removes a deletable binding. Missing bindings count as
// deleted.
func (e *JSDeclEnv) DeleteBinding(ctx *Context, name Symbol) bool {
	b, ok := e.bindings[name]
	if !ok {
		return true
	}
	if b.flags&deletable == 0 {
		return false
	}
	delete(e.bindings, name)
	for i, n := range e.order {
		if n == name {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	return true
}

func (e *JSDeclEnv) add(ctx *Context, name Symbol, flags int) error {
	if _, ok := e.bindings[name]; ok {
		return NewTypeError("binding %s already exists", ctx.Text(name))
	}
	e.bindings[name] = &binding{flags: flags}
	e.order = append(e.order, name)
	return nil
}

func (e *JSDeclEnv) CreateMutableBinding(ctx *Context, name Symbol, del bool) error {
	flags := mutable
	if del {
		flags |= deletable
	}
	return e.add(ctx, name, flags)
}

func (e *JSDeclEnv) SetMutableBinding(ctx *Context, name Symbol, v Value, strict bool) error {
	b, ok := e.bindings[name]
	if !ok {
		return NewReferenceError("%s is not defined", ctx.Text(name))
	}
	if b.flags&mutable == 0 {
		return NewTypeError("mutating immutable binding not allowed")
	}
	b.value = v
	return nil
}

func (e *JSDeclEnv) GetBindingValue(ctx *Context, name Symbol, strict bool) (Value, error) {
	b, ok := e.bindings[name]
	if !ok {
		return Undefined, NewReferenceError("%s is not defined", ctx.Text(name))
	}
	if b.flags&immutableUninitialized != 0 {
		if strict {
			return Undefined, NewReferenceError("uninitialized value access not allowed in strict code")
		}
		return Undefined, nil
	}
	return b.value, nil
}

func (e *JSDeclEnv) ImplicitThisValue() Value { return Undefined }

func (e *JSDeclEnv) CreateImmutableBinding(ctx *Context, name Symbol) error {
	return e.add(ctx, name, immutableUninitialized)
}

// InitializeImmutableBinding sets the value of an uninitialized immutable
// binding exactly once.
func (e *JSDeclEnv) InitializeImmutableBinding(ctx *Context, name Symbol, v Value) error {
	b, ok := e.bindings[name]
	if !ok || b.flags&immutableUninitialized == 0 {
		return NewTypeError("binding %s is not an uninitialized immutable binding", ctx.Text(name))
	}
	b.flags = immutableInitialized
	b.value = v
	return nil
}

// Binding reads a binding without strictness checks. Mapped arguments
// objects use it to alias parameters.
func (e *JSDeclEnv) Binding(name Symbol) (Value, bool) {
	b, ok := e.bindings[name]
	if !ok {
		return Undefined, false
	}
	return b.value, true
}

// Names returns the bound names in creation order.
func (e *JSDeclEnv) Names() []Symbol {
	names := make([]Symbol, len(e.order))
	copy(names, e.order)
	return names
}

// JSObjectEnv is an object environment record: its bindings are the
// properties of a binding object (the global object, or a with target).
type JSObjectEnv struct {
	outer       JSEnv
	object      Object
	provideThis bool
}

func NewObjectEnv(outer JSEnv, obj Object, provideThis bool) *JSObjectEnv {
	return &JSObjectEnv{outer: outer, object: obj, provideThis: provideThis}
}

func (e *JSObjectEnv) Outer() JSEnv           { return e.outer }
func (e *JSObjectEnv) BindingObject() Object { return e.object }

func (e *JSObjectEnv) HasBinding(ctx *Context, name Symbol) (bool, error) {
	return HasProperty(ctx, e.object, name)
}

func (e *JSObjectEnv) DeleteBinding(ctx *Context, name Symbol) bool {
	ok, _ := e.object.Delete(ctx, name, false)
	return ok
}

func (e *JSObjectEnv) CreateMutableBinding(ctx *Context, name Symbol, del bool) error {
	attrs := Writable | Enumerable
	if del {
		attrs |= Configurable
	}
	_, err := e.object.DefineOwnProperty(ctx, name, DataDescriptor(Undefined, attrs), true)
	return err
}

func (e *JSObjectEnv) SetMutableBinding(ctx *Context, name Symbol, v Value, strict bool) error {
	return Put(ctx, e.object, name, v, strict)
}

func (e *JSObjectEnv) GetBindingValue(ctx *Context, name Symbol, strict bool) (Value, error) {
	has, err := HasProperty(ctx, e.object, name)
	if err != nil {
		return Undefined, err
	}
	if !has {
		if strict {
			return Undefined, NewReferenceError("%s is not defined", ctx.Text(name))
		}
		return Undefined, nil
	}
	return e.object.Get(ctx, name)
}

func (e *JSObjectEnv) ImplicitThisValue() Value {
	if e.provideThis {
		return NewObject(e.object)
	}
	return Undefined
}

// GetIdentifierReference returns the innermost environment in the chain
// starting at env that binds name, or nil when the name is unresolvable.
func GetIdentifierReference(ctx *Context, env JSEnv, name Symbol) (JSEnv, error) {
	for ; env != nil; env = env.Outer() {
		has, err := env.HasBinding(ctx, name)
		if err != nil {
			return nil, err
		}
		if has {
			return env, nil
		}
	}
	return nil, nil
}
