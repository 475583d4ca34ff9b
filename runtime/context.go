package runtime

import (
	"errors"
	"log/slog"
	"math/rand"
	"os"
	"strconv"

	"golang.org/x/text/language"
)

// WellKnown holds the Symbols the runtime itself refers to. They are
// interned when the Context is created.
type WellKnown struct {
	Length      Symbol
	Eval        Symbol
	Arguments   Symbol
	Caller      Symbol
	Callee      Symbol
	ToString    Symbol
	ValueOf     Symbol
	Prototype   Symbol
	Constructor Symbol

	Object   Symbol
	Function Symbol
	Array    Symbol
	String   Symbol
	Boolean  Symbol
	Number   Symbol
	RegExp   Symbol
}

// Class is a registered built-in: its constructor and prototype object.
type Class struct {
	Name        string
	Constructor Callable
	Prototype   Object
}

// Context owns one JS world: the symbol table, the global object and its
// environment, the built-in class registry, the current environments and
// script, the pending error and the random source. A Context is not safe
// for concurrent use.
type Context struct {
	Names WellKnown

	cfg     Config
	log     *slog.Logger
	locale  language.Tag
	symbols *SymbolTable

	global    *JSObject
	globalEnv *JSObjectEnv
	lexEnv    JSEnv
	varEnv    JSEnv
	strict    bool

	classes map[Symbol]Class
	thrower *JSNativeFunction

	interp  Interpreter
	parser  Parser
	regexps RegExpEngine
	init    func(*Context) error

	rand       *rand.Rand
	current    *Script
	err        error
	completion Value
}

// Option configures a Context at construction.
type Option func(*Context)

func WithLogger(l *slog.Logger) Option {
	return func(c *Context) { c.log = l }
}

func WithInterpreter(i Interpreter) Option {
	return func(c *Context) { c.interp = i }
}

func WithParser(p Parser) Option {
	return func(c *Context) { c.parser = p }
}

func WithRegExpEngine(e RegExpEngine) Option {
	return func(c *Context) { c.regexps = e }
}

// WithInitializer installs the function that populates the global object.
// It runs once, at the end of NewContext.
func WithInitializer(fn func(*Context) error) Option {
	return func(c *Context) { c.init = fn }
}

// randomWarmup is the number of draws discarded after seeding.
const randomWarmup = 20

func NewContext(cfg Config, opts ...Option) (*Context, error) {
	cfg = cfg.withDefaults()
	c := &Context{
		cfg:     cfg,
		symbols: NewSymbolTable(),
		classes: make(map[Symbol]Class),
		strict:  cfg.Strict,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		c.log.Warn("unknown locale, using English", "locale", cfg.Locale, "error", err)
		tag = language.English
	}
	c.locale = tag

	c.Names = WellKnown{
		Length:      c.Intern("length"),
		Eval:        c.Intern("eval"),
		Arguments:   c.Intern("arguments"),
		Caller:      c.Intern("caller"),
		Callee:      c.Intern("callee"),
		ToString:    c.Intern("toString"),
		ValueOf:     c.Intern("valueOf"),
		Prototype:   c.Intern("prototype"),
		Constructor: c.Intern("constructor"),
		Object:      c.Intern("Object"),
		Function:    c.Intern("Function"),
		Array:       c.Intern("Array"),
		String:      c.Intern("String"),
		Boolean:     c.Intern("Boolean"),
		Number:      c.Intern("Number"),
		RegExp:      c.Intern("RegExp"),
	}

	c.global = NewPlainJSObject()
	c.globalEnv = NewObjectEnv(nil, c.global, true)
	c.lexEnv = c.globalEnv
	c.varEnv = c.globalEnv

	c.rand = rand.New(rand.NewSource(cfg.RandomSeed))
	for i := 0; i < randomWarmup; i++ {
		c.rand.Float64()
	}

	if c.init != nil {
		if err := c.init(c); err != nil {
			return nil, err
		}
		c.log.Debug("context initialized", "classes", len(c.classes), "symbols", c.symbols.Len())
	}
	return c, nil
}

func (c *Context) Config() Config           { return c.cfg }
func (c *Context) Logger() *slog.Logger     { return c.log }
func (c *Context) Locale() language.Tag     { return c.locale }
func (c *Context) Symbols() *SymbolTable    { return c.symbols }
func (c *Context) Interpreter() Interpreter { return c.interp }
func (c *Context) Parser() Parser           { return c.parser }

func (c *Context) Intern(s string) Symbol { return c.symbols.Intern(s) }
func (c *Context) Text(sym Symbol) string { return c.symbols.Text(sym) }

// IndexSymbol returns the Symbol for the canonical text of an array index.
func (c *Context) IndexSymbol(i uint32) Symbol {
	return c.symbols.Intern(strconv.FormatUint(uint64(i), 10))
}

// Global returns the global object.
func (c *Context) Global() *JSObject { return c.global }

// GlobalEnv returns the root environment, an object environment over the
// global object that provides it as the implicit this value.
func (c *Context) GlobalEnv() *JSObjectEnv { return c.globalEnv }

func (c *Context) LexicalEnv() JSEnv        { return c.lexEnv }
func (c *Context) VariableEnv() JSEnv       { return c.varEnv }
func (c *Context) SetLexicalEnv(env JSEnv)  { c.lexEnv = env }
func (c *Context) SetVariableEnv(env JSEnv) { c.varEnv = env }

// IsStrict reports whether the running code is strict.
func (c *Context) IsStrict() bool   { return c.strict }
func (c *Context) SetStrict(s bool) { c.strict = s }

// RegisterClass records a built-in class under name. Registering a name
// twice replaces the earlier entry.
func (c *Context) RegisterClass(name string, ctor Callable, proto Object) {
	c.classes[c.Intern(name)] = Class{Name: name, Constructor: ctor, Prototype: proto}
}

// Cls returns the registered class name; the zero Class when absent.
func (c *Context) Cls(name string) Class {
	cls, _ := c.LookupClass(name)
	return cls
}

func (c *Context) LookupClass(name string) (Class, bool) {
	sym, ok := c.symbols.Lookup(name)
	if !ok {
		return Class{}, false
	}
	cls, ok := c.classes[sym]
	return cls, ok
}

func (c *Context) classPrototype(name Symbol) Object {
	cls, ok := c.classes[name]
	if !ok {
		return nil
	}
	return cls.Prototype
}

// ThrowTypeError returns the shared function object of ES5 13.2.3 that
// poisons caller, callee and arguments accessors.
func (c *Context) ThrowTypeError() *JSNativeFunction {
	if c.thrower == nil {
		c.thrower = NewNativeFunction(c, "ThrowTypeError", 0, func(*Arguments) (Value, error) {
			return Undefined, NewTypeError("'caller', 'callee', and 'arguments' properties may not be accessed in strict mode")
		})
		c.thrower.PreventExtensions()
	}
	return c.thrower
}

// Random returns the next pseudo-random number in [0, 1).
func (c *Context) Random() float64 {
	return c.rand.Float64()
}

// CurrentScript returns the script being run, or nil.
func (c *Context) CurrentScript() *Script { return c.current }

func (c *Context) enterScript(s *Script) func() {
	prev := c.current
	c.current = s
	return func() { c.current = prev }
}

// Compile parses src into a global Script.
func (c *Context) Compile(name, src string) (*Script, error) {
	if c.parser == nil {
		return nil, NewSyntaxError("no parser configured")
	}
	fn, err := c.parser.ParseScript(name, src)
	if err != nil {
		return nil, err
	}
	return &Script{Name: name, Kind: GlobalScript, Function: fn}, nil
}

// Run executes s with s as the current script, restoring the previous
// current script however execution ends. The outcome is returned and kept
// as the pending error until ClearError or the next Run.
func (c *Context) Run(s *Script) error {
	c.log.Debug("run script", "name", s.Name, "kind", s.Kind)
	v, err := c.exec(s)
	c.completion = v
	c.err = err
	if err != nil {
		c.log.Debug("script failed", "name", s.Name, "error", err)
	}
	return err
}

// Eval runs an eval script as indirect eval does (ES5 10.4.2 step 1): in
// the global environment, returning its completion value. Unlike Run it
// leaves the pending error untouched.
func (c *Context) Eval(s *Script) (Value, error) {
	lex, vars := c.lexEnv, c.varEnv
	defer func() { c.lexEnv, c.varEnv = lex, vars }()
	c.lexEnv, c.varEnv = c.globalEnv, c.globalEnv
	return c.exec(s)
}

// exec runs s strict when the script or the configuration asks for it,
// restoring the previous strictness afterwards.
func (c *Context) exec(s *Script) (Value, error) {
	defer c.enterScript(s)()
	strict := c.strict
	defer func() { c.strict = strict }()
	c.strict = c.cfg.Strict || (s.Function != nil && s.Function.Strict())
	if c.interp == nil {
		return Undefined, NewTypeError("no interpreter configured")
	}
	return c.interp.Run(c, s.Function, s.Kind == EvalScript)
}

// Completion returns the completion value of the last Run.
func (c *Context) Completion() Value { return c.completion }

func (c *Context) HasError() bool { return c.err != nil }

// Err returns the pending error of the last Run.
func (c *Context) Err() error { return c.err }

func (c *Context) ClearError() { c.err = nil }

// ErrorVal returns the pending error as a JS value: the thrown value for
// script throws, otherwise a new Error object of the matching subtype.
// It is undefined when no error is pending.
func (c *Context) ErrorVal() Value {
	if c.err == nil {
		return Undefined
	}
	return c.ErrorValue(c.err)
}

// ErrorValue converts any error returned by a runtime operation into the
// JS value a catch clause would observe.
func (c *Context) ErrorValue(err error) Value {
	var e *Error
	if errors.As(err, &e) {
		if e.Kind == Throw {
			return e.Value
		}
		return NewObject(NewErrorObject(c, e.Kind, e.Message))
	}
	return NewObject(NewErrorObject(c, GenericError, err.Error()))
}
