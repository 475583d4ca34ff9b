package runtime

// JSStringObject wraps a string primitive. Its length and index
// properties are derived from the UTF-16 code units of the primitive.
type JSStringObject struct {
	JSObject
	value string
	units []uint16
}

func NewStringObject(ctx *Context, s string) *JSStringObject {
	s = canonicalString(s)
	o := &JSStringObject{value: s, units: ToUnits(s)}
	o.init(o, "String", ctx.classPrototype(ctx.Names.String))
	o.putOwn(ctx.Names.Length, DataDescriptor(NewNumber(float64(len(o.units))), None))
	return o
}

func (o *JSStringObject) PrimitiveValue() string { return o.value }

// GetOwnProperty implements ES5 15.5.5.2.
func (o *JSStringObject) GetOwnProperty(ctx *Context, name Symbol) PropertyDescriptor {
	if desc := o.JSObject.GetOwnProperty(ctx, name); !desc.IsEmpty() {
		return desc
	}
	idx, ok := arrayIndex(ctx.Text(name))
	if !ok || int64(idx) >= int64(len(o.units)) {
		return PropertyDescriptor{}
	}
	return DataDescriptor(NewString(UnitString(o.units[idx])), Enumerable)
}

func (o *JSStringObject) OwnKeys(ctx *Context) []Symbol {
	keys := make([]Symbol, 0, len(o.units)+len(o.keys))
	for i := range o.units {
		keys = append(keys, ctx.IndexSymbol(uint32(i)))
	}
	for _, k := range o.keys {
		if idx, ok := arrayIndex(ctx.Text(k)); ok && int(idx) < len(o.units) {
			continue
		}
		keys = append(keys, k)
	}
	return keys
}

// JSNumberObject wraps a number primitive.
type JSNumberObject struct {
	JSObject
	value float64
}

func NewNumberObject(ctx *Context, n float64) *JSNumberObject {
	o := &JSNumberObject{value: n}
	o.init(o, "Number", ctx.classPrototype(ctx.Names.Number))
	return o
}

func (o *JSNumberObject) PrimitiveValue() float64 { return o.value }

// JSBooleanObject wraps a boolean primitive.
type JSBooleanObject struct {
	JSObject
	value bool
}

func NewBooleanObject(ctx *Context, b bool) *JSBooleanObject {
	o := &JSBooleanObject{value: b}
	o.init(o, "Boolean", ctx.classPrototype(ctx.Names.Boolean))
	return o
}

func (o *JSBooleanObject) PrimitiveValue() bool { return o.value }

// JSErrorObject is an instance of Error or one of its native subtypes.
type JSErrorObject struct {
	JSObject
	kind ErrorKind
	ctx  *Context
}

// NewErrorObject creates an error of the given kind inheriting from the
// matching registered prototype. An empty message leaves the inherited
// message in place.
func NewErrorObject(ctx *Context, kind ErrorKind, message string) *JSErrorObject {
	if kind == Throw {
		kind = GenericError
	}
	e := &JSErrorObject{kind: kind, ctx: ctx}
	e.init(e, "Error", ctx.classPrototype(ctx.Intern(kind.String())))
	if message != "" {
		e.putOwn(ctx.Intern("message"), DataDescriptor(NewString(message), Writable|Configurable))
	}
	return e
}

func (e *JSErrorObject) Kind() ErrorKind { return e.kind }

// describe renders "name: message" from own or inherited string data
// properties. Accessors are not run.
func (e *JSErrorObject) describe() string {
	name := e.dataString("name", e.kind.String())
	message := e.dataString("message", "")
	switch {
	case message == "":
		return name
	case name == "":
		return message
	}
	return name + ": " + message
}

func (e *JSErrorObject) dataString(field, fallback string) string {
	sym, ok := e.ctx.symbols.Lookup(field)
	if !ok {
		return fallback
	}
	desc, err := GetProperty(e.ctx, e, sym)
	if err != nil || !desc.IsDataDescriptor() || !desc.Value.IsString() {
		return fallback
	}
	return desc.Value.Str
}
