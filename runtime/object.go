package runtime

// Object is implemented by every heap object kind. The generic ES5 8.12
// algorithms (GetProperty, Put, CanPut, HasProperty, DefaultValue) are
// package functions over this interface, so kind-specific overrides of
// GetOwnProperty, Get, DefineOwnProperty and Delete are always honored.
type Object interface {
	base() *JSObject

	Class() string
	Prototype() Object
	SetPrototype(proto Object)
	IsExtensible() bool
	PreventExtensions()

	GetOwnProperty(ctx *Context, name Symbol) PropertyDescriptor
	Get(ctx *Context, name Symbol) (Value, error)
	DefineOwnProperty(ctx *Context, name Symbol, desc PropertyDescriptor, throw bool) (bool, error)
	Delete(ctx *Context, name Symbol, throw bool) (bool, error)
	// OwnKeys returns a snapshot of the own property names in insertion
	// order; callers may mutate the object while iterating it.
	OwnKeys(ctx *Context) []Symbol
}

// JSObject is the ordinary object: an insertion-ordered property table, a
// shared prototype reference, a class tag and the extensible flag.
// Specialized kinds embed it and override individual internal methods.
type JSObject struct {
	class      string
	proto      Object
	extensible bool
	props      map[Symbol]PropertyDescriptor
	keys       []Symbol

	// self is the outermost object embedding this JSObject; internal
	// methods dispatch through it.
	self Object
}

func (o *JSObject) init(self Object, class string, proto Object) {
	o.class = class
	o.proto = proto
	o.extensible = true
	o.props = make(map[Symbol]PropertyDescriptor)
	o.self = self
}

// NewPlainJSObject creates an Object-class object with no prototype.
func NewPlainJSObject() *JSObject {
	o := &JSObject{}
	o.init(o, "Object", nil)
	return o
}

// NewJSObject creates an ordinary object inheriting from Object.prototype.
func NewJSObject(ctx *Context) *JSObject {
	o := NewPlainJSObject()
	o.proto = ctx.classPrototype(ctx.Names.Object)
	return o
}

func (o *JSObject) base() *JSObject { return o }

func (o *JSObject) Class() string { return o.class }

// SetClass retags the object; used for the global object and
// Object.prototype whose class differs from their factory's.
func (o *JSObject) SetClass(class string) { o.class = class }

func (o *JSObject) Prototype() Object     { return o.proto }
func (o *JSObject) SetPrototype(p Object) { o.proto = p }
func (o *JSObject) IsExtensible() bool    { return o.extensible }
func (o *JSObject) PreventExtensions()    { o.extensible = false }

// GetOwnProperty implements ES5 8.12.1. The zero descriptor means absent.
func (o *JSObject) GetOwnProperty(ctx *Context, name Symbol) PropertyDescriptor {
	return o.props[name]
}

// Get implements ES5 8.12.3.
func (o *JSObject) Get(ctx *Context, name Symbol) (Value, error) {
	desc, err := GetProperty(ctx, o.self, name)
	if err != nil {
		return Undefined, err
	}
	return getValue(ctx, o.self, desc)
}

func getValue(ctx *Context, this Object, desc PropertyDescriptor) (Value, error) {
	if desc.IsEmpty() {
		return Undefined, nil
	}
	if desc.IsDataDescriptor() {
		return desc.Value, nil
	}
	getter, ok := desc.Getter.Callable()
	if !ok {
		return Undefined, nil
	}
	return getter.Call(NewCallArguments(ctx, NewObject(this), nil))
}

// DefineOwnProperty implements ES5 8.12.9.
func (o *JSObject) DefineOwnProperty(ctx *Context, name Symbol, desc PropertyDescriptor, throw bool) (bool, error) {
	current := o.self.GetOwnProperty(ctx, name)
	if current.IsEmpty() {
		if !o.extensible {
			return reject(throw, "cannot define property %s, object is not extensible", ctx.Text(name))
		}
		o.putOwn(name, desc.complete())
		return true, nil
	}
	if desc.IsEmpty() || desc.equivalent(current) {
		return true, nil
	}
	if !current.IsConfigurable() {
		if desc.IsConfigurable() {
			return reject(throw, "cannot redefine property: %s", ctx.Text(name))
		}
		if desc.HasEnumerable() && desc.IsEnumerable() != current.IsEnumerable() {
			return reject(throw, "cannot redefine property: %s", ctx.Text(name))
		}
	}
	switch {
	case desc.IsGenericDescriptor():
	case current.IsDataDescriptor() != desc.IsDataDescriptor():
		if !current.IsConfigurable() {
			return reject(throw, "cannot redefine property: %s", ctx.Text(name))
		}
	case current.IsDataDescriptor():
		if !current.IsConfigurable() && !current.IsWritable() {
			if desc.HasWritable() && desc.IsWritable() {
				return reject(throw, "cannot redefine property: %s", ctx.Text(name))
			}
			if desc.HasValue() && !SameValue(desc.Value, current.Value) {
				return reject(throw, "cannot assign to read only property %s", ctx.Text(name))
			}
		}
	default:
		if !current.IsConfigurable() {
			if desc.HasSetter() && !SameValue(desc.Setter, current.Setter) {
				return reject(throw, "cannot redefine property: %s", ctx.Text(name))
			}
			if desc.HasGetter() && !SameValue(desc.Getter, current.Getter) {
				return reject(throw, "cannot redefine property: %s", ctx.Text(name))
			}
		}
	}
	o.putOwn(name, desc.merge(current))
	return true, nil
}

// Delete implements ES5 8.12.7.
func (o *JSObject) Delete(ctx *Context, name Symbol, throw bool) (bool, error) {
	desc := o.self.GetOwnProperty(ctx, name)
	if desc.IsEmpty() {
		return true, nil
	}
	if !desc.IsConfigurable() {
		return reject(throw, "cannot delete property %s", ctx.Text(name))
	}
	o.removeOwn(name)
	return true, nil
}

func (o *JSObject) OwnKeys(ctx *Context) []Symbol {
	keys := make([]Symbol, len(o.keys))
	copy(keys, o.keys)
	return keys
}

func (o *JSObject) putOwn(name Symbol, desc PropertyDescriptor) {
	if _, ok := o.props[name]; !ok {
		o.keys = append(o.keys, name)
	}
	o.props[name] = desc
}

func (o *JSObject) removeOwn(name Symbol) {
	if _, ok := o.props[name]; !ok {
		return
	}
	delete(o.props, name)
	for i, k := range o.keys {
		if k == name {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

func reject(throw bool, format string, args ...any) (bool, error) {
	if throw {
		return false, NewTypeError(format, args...)
	}
	return false, nil
}

// walkPrototypes calls fn for obj and each object on its prototype chain
// until fn returns true. A chain longer than the configured limit is
// reported as a RangeError; the engine does not prevent cycles created by
// callers, this only stops the walk.
func walkPrototypes(ctx *Context, obj Object, fn func(Object) bool) error {
	limit := ctx.cfg.PrototypeChainLimit
	for depth := 0; obj != nil; depth++ {
		if depth > limit {
			return NewRangeError("prototype chain too deep")
		}
		if fn(obj) {
			return nil
		}
		obj = obj.Prototype()
	}
	return nil
}

// GetProperty implements ES5 8.12.2.
func GetProperty(ctx *Context, obj Object, name Symbol) (PropertyDescriptor, error) {
	var found PropertyDescriptor
	err := walkPrototypes(ctx, obj, func(o Object) bool {
		found = o.GetOwnProperty(ctx, name)
		return !found.IsEmpty()
	})
	return found, err
}

// HasProperty implements ES5 8.12.6. It fails only when the prototype
// chain is too deep.
func HasProperty(ctx *Context, obj Object, name Symbol) (bool, error) {
	desc, err := GetProperty(ctx, obj, name)
	if err != nil {
		return false, err
	}
	return !desc.IsEmpty(), nil
}

// HasOwnProperty reports whether obj has an own property name.
func HasOwnProperty(ctx *Context, obj Object, name Symbol) bool {
	return !obj.GetOwnProperty(ctx, name).IsEmpty()
}

// CanPut implements ES5 8.12.4.
func CanPut(ctx *Context, obj Object, name Symbol) (bool, error) {
	own := obj.GetOwnProperty(ctx, name)
	if !own.IsEmpty() {
		if own.IsAccessorDescriptor() {
			return !own.Setter.IsUndefined(), nil
		}
		return own.IsWritable(), nil
	}
	proto := obj.Prototype()
	if proto == nil {
		return obj.IsExtensible(), nil
	}
	inherited, err := GetProperty(ctx, proto, name)
	if err != nil {
		return false, err
	}
	if inherited.IsEmpty() {
		return obj.IsExtensible(), nil
	}
	if inherited.IsAccessorDescriptor() {
		return !inherited.Setter.IsUndefined(), nil
	}
	if !obj.IsExtensible() {
		return false, nil
	}
	return inherited.IsWritable(), nil
}

// Put implements ES5 8.12.5.
func Put(ctx *Context, obj Object, name Symbol, v Value, throw bool) error {
	ok, err := CanPut(ctx, obj, name)
	if err != nil {
		return err
	}
	if !ok {
		if throw {
			return NewTypeError("cannot assign to read only property %s", ctx.Text(name))
		}
		return nil
	}
	own := obj.GetOwnProperty(ctx, name)
	if own.IsDataDescriptor() {
		var desc PropertyDescriptor
		desc.SetValue(v)
		_, err := obj.DefineOwnProperty(ctx, name, desc, throw)
		return err
	}
	desc, err := GetProperty(ctx, obj, name)
	if err != nil {
		return err
	}
	if desc.IsAccessorDescriptor() {
		setter, ok := desc.Setter.Callable()
		if !ok {
			return nil
		}
		_, err := setter.Call(NewCallArguments(ctx, NewObject(obj), []Value{v}))
		return err
	}
	_, err = obj.DefineOwnProperty(ctx, name, DataDescriptor(v, Writable|Enumerable|Configurable), throw)
	return err
}

// Hint selects the preferred type for DefaultValue.
type Hint int

const (
	HintNone Hint = iota
	HintString
	HintNumber
)

// DefaultValue implements ES5 8.12.8.
func DefaultValue(ctx *Context, obj Object, hint Hint) (Value, error) {
	order := [2]Symbol{ctx.Names.ValueOf, ctx.Names.ToString}
	if hint == HintString {
		order = [2]Symbol{ctx.Names.ToString, ctx.Names.ValueOf}
	}
	for _, name := range order {
		fn, err := obj.Get(ctx, name)
		if err != nil {
			return Undefined, err
		}
		callable, ok := fn.Callable()
		if !ok {
			continue
		}
		res, err := callable.Call(NewCallArguments(ctx, NewObject(obj), nil))
		if err != nil {
			return Undefined, err
		}
		if res.IsPrimitive() {
			return res, nil
		}
	}
	return Undefined, NewTypeError("cannot convert object to primitive value")
}

// IsPrototypeOf reports whether proto appears on obj's prototype chain.
func IsPrototypeOf(ctx *Context, proto, obj Object) (bool, error) {
	found := false
	start := obj.Prototype()
	err := walkPrototypes(ctx, start, func(o Object) bool {
		found = o == proto
		return found
	})
	return found, err
}

// GetString is Get with a string name, for host and built-in code.
func GetString(ctx *Context, obj Object, name string) (Value, error) {
	return obj.Get(ctx, ctx.Intern(name))
}

// PutString is Put with a string name.
func PutString(ctx *Context, obj Object, name string, v Value, throw bool) error {
	return Put(ctx, obj, ctx.Intern(name), v, throw)
}
