package runtime

import (
	"strings"
)

// Matcher is a compiled regular expression. Positions are UTF-16 code unit
// offsets into input.
type Matcher interface {
	// MatchAt finds the first match at or after start. It returns the
	// start/end pairs of the whole match and each capture group, with -1
	// for groups that did not participate, or nil when there is no match.
	MatchAt(input []uint16, start int) ([]int, error)
	// Groups is the number of capture groups, not counting the match.
	Groups() int
}

// RegExpFlags are the parsed flags of a regular expression literal.
type RegExpFlags struct {
	Global     bool
	IgnoreCase bool
	Multiline  bool
}

func (f RegExpFlags) String() string {
	var b strings.Builder
	if f.Global {
		b.WriteByte('g')
	}
	if f.IgnoreCase {
		b.WriteByte('i')
	}
	if f.Multiline {
		b.WriteByte('m')
	}
	return b.String()
}

// ParseRegExpFlags validates a flags string; repeated or unknown flags are
// a SyntaxError.
func ParseRegExpFlags(s string) (RegExpFlags, error) {
	var f RegExpFlags
	for _, c := range s {
		var flag *bool
		switch c {
		case 'g':
			flag = &f.Global
		case 'i':
			flag = &f.IgnoreCase
		case 'm':
			flag = &f.Multiline
		default:
			return f, NewSyntaxError("invalid regular expression flags '%s'", s)
		}
		if *flag {
			return f, NewSyntaxError("invalid regular expression flags '%s'", s)
		}
		*flag = true
	}
	return f, nil
}

// RegExpEngine compiles pattern source into Matchers.
type RegExpEngine interface {
	Compile(pattern string, flags RegExpFlags) (Matcher, error)
}

// JSRegExp is a RegExp instance (ES5 15.10.7).
type JSRegExp struct {
	JSObject
	source  string
	flags   RegExpFlags
	matcher Matcher
}

// NewJSRegExp compiles pattern with the context's RegExpEngine.
func NewJSRegExp(ctx *Context, pattern string, flags string) (*JSRegExp, error) {
	f, err := ParseRegExpFlags(flags)
	if err != nil {
		return nil, err
	}
	if ctx.regexps == nil {
		return nil, NewSyntaxError("no regular expression engine configured")
	}
	m, err := ctx.regexps.Compile(pattern, f)
	if err != nil {
		return nil, err
	}
	if pattern == "" {
		pattern = "(?:)"
	}
	r := &JSRegExp{source: pattern, flags: f, matcher: m}
	r.init(r, "RegExp", ctx.classPrototype(ctx.Names.RegExp))
	r.putOwn(ctx.Intern("source"), DataDescriptor(NewString(pattern), None))
	r.putOwn(ctx.Intern("global"), DataDescriptor(NewBool(f.Global), None))
	r.putOwn(ctx.Intern("ignoreCase"), DataDescriptor(NewBool(f.IgnoreCase), None))
	r.putOwn(ctx.Intern("multiline"), DataDescriptor(NewBool(f.Multiline), None))
	r.putOwn(ctx.Intern("lastIndex"), DataDescriptor(Zero, Writable))
	return r, nil
}

func (r *JSRegExp) Source() string     { return r.source }
func (r *JSRegExp) Flags() RegExpFlags { return r.flags }
func (r *JSRegExp) Matcher() Matcher   { return r.matcher }

// String renders the regular expression as a literal.
func (r *JSRegExp) String() string {
	return "/" + r.source + "/" + r.flags.String()
}
