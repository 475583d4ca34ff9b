package builtins

import (
	"slices"
	"unicode"
	"unicode/utf16"

	"github.com/dlclark/regexp2"

	"github.com/example/jscore/runtime"
)

// RegExpEngine compiles ECMAScript patterns with regexp2.
type RegExpEngine struct{}

func (RegExpEngine) Compile(pattern string, flags runtime.RegExpFlags) (runtime.Matcher, error) {
	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	if flags.IgnoreCase {
		opts |= regexp2.IgnoreCase
	}
	if flags.Multiline {
		opts |= regexp2.Multiline
	}
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, runtime.NewSyntaxError("invalid regular expression /%s/: %v", pattern, err)
	}
	return &matcher{re: re}, nil
}

type matcher struct {
	re *regexp2.Regexp
}

func (m *matcher) Groups() int { return len(m.re.GetGroupNumbers()) - 1 }

// MatchAt runs the expression over the runes of input. Surrogate pairs
// decode to one rune; lone surrogates stay as a rune of their own value.
func (m *matcher) MatchAt(input []uint16, start int) ([]int, error) {
	if start > len(input) {
		return nil, nil
	}
	runes := make([]rune, 0, len(input))
	offsets := make([]int, 1, len(input)+1)
	for i := 0; i < len(input); {
		r, n := rune(input[i]), 1
		if utf16.IsSurrogate(r) && i+1 < len(input) {
			if pair := utf16.DecodeRune(r, rune(input[i+1])); pair != unicode.ReplacementChar {
				r, n = pair, 2
			}
		}
		runes = append(runes, r)
		i += n
		offsets = append(offsets, i)
	}
	from, _ := slices.BinarySearch(offsets, start)
	match, err := m.re.FindRunesMatchStartingAt(runes, from)
	if err != nil {
		return nil, runtime.NewError(runtime.GenericError, "regular expression match failed: %v", err)
	}
	if match == nil {
		return nil, nil
	}
	groups := match.Groups()
	pos := make([]int, 0, 2*len(groups))
	for _, g := range groups {
		if len(g.Captures) == 0 {
			pos = append(pos, -1, -1)
			continue
		}
		pos = append(pos, offsets[g.Index], offsets[g.Index+g.Length])
	}
	return pos, nil
}

func createRegExpConstructor(ctx *runtime.Context, proto *runtime.JSObject) *runtime.JSNativeFunction {
	ctor := newConstructor(ctx, "RegExp", 2, proto, regexpConstructorCall)

	setMethod(ctx, proto, "exec", 1, regexpExec)
	setMethod(ctx, proto, "test", 1, regexpTest)
	setMethod(ctx, proto, "toString", 0, regexpToString)
	return ctor
}

// regexpConstructorCall implements ES5 15.10.3 and 15.10.4.
func regexpConstructorCall(args *runtime.Arguments) (runtime.Value, error) {
	ctx := args.Ctx()
	pattern, flags := args.At(0), args.At(1)
	if pattern.IsObject() {
		if re, ok := pattern.Object.(*runtime.JSRegExp); ok {
			if !flags.IsUndefined() {
				return runtime.Undefined, runtime.NewTypeError("cannot supply flags when constructing one RegExp from another")
			}
			if !args.IsConstructorCalled() {
				return pattern, nil
			}
			r, err := runtime.NewJSRegExp(ctx, re.Source(), re.Flags().String())
			if err != nil {
				return runtime.Undefined, err
			}
			return runtime.NewObject(r), nil
		}
	}
	var p, f string
	var err error
	if !pattern.IsUndefined() {
		if p, err = pattern.ToString(ctx); err != nil {
			return runtime.Undefined, err
		}
	}
	if !flags.IsUndefined() {
		if f, err = flags.ToString(ctx); err != nil {
			return runtime.Undefined, err
		}
	}
	r, err := runtime.NewJSRegExp(ctx, p, f)
	if err != nil {
		return runtime.Undefined, err
	}
	return runtime.NewObject(r), nil
}

func thisRegExp(args *runtime.Arguments, method string) (*runtime.JSRegExp, error) {
	if this := args.This(); this.IsObject() {
		if re, ok := this.Object.(*runtime.JSRegExp); ok {
			return re, nil
		}
	}
	return nil, runtime.NewTypeError("RegExp.prototype.%s is not generic function", method)
}

// execRegExp implements ES5 15.10.6.2, returning null on no match.
func execRegExp(args *runtime.Arguments, method string) (runtime.Value, error) {
	ctx := args.Ctx()
	re, err := thisRegExp(args, method)
	if err != nil {
		return runtime.Undefined, err
	}
	s, err := stringArg(args, 0)
	if err != nil {
		return runtime.Undefined, err
	}
	units := runtime.ToUnits(s)
	lastIndex, err := runtime.GetString(ctx, re, "lastIndex")
	if err != nil {
		return runtime.Undefined, err
	}
	i, err := lastIndex.ToInteger(ctx)
	if err != nil {
		return runtime.Undefined, err
	}
	global := re.Flags().Global
	if !global {
		i = 0
	}
	var m []int
	if i >= 0 && i <= float64(len(units)) {
		if m, err = re.Matcher().MatchAt(units, int(i)); err != nil {
			return runtime.Undefined, err
		}
	}
	if m == nil {
		if err := runtime.PutString(ctx, re, "lastIndex", runtime.Zero, true); err != nil {
			return runtime.Undefined, err
		}
		return runtime.Null, nil
	}
	if global {
		if err := runtime.PutString(ctx, re, "lastIndex", runtime.NewNumber(float64(m[1])), true); err != nil {
			return runtime.Undefined, err
		}
	}
	vals := make([]runtime.Value, len(m)/2)
	for g := range vals {
		if m[2*g] < 0 {
			vals[g] = runtime.Undefined
			continue
		}
		vals[g] = runtime.NewString(runtime.FromUnits(units[m[2*g]:m[2*g+1]]))
	}
	a := runtime.NewJSArrayFrom(ctx, vals)
	all := runtime.Writable | runtime.Enumerable | runtime.Configurable
	if err := define(ctx, a, "index", runtime.NewNumber(float64(m[0])), all); err != nil {
		return runtime.Undefined, err
	}
	if err := define(ctx, a, "input", runtime.NewString(s), all); err != nil {
		return runtime.Undefined, err
	}
	return runtime.NewObject(a), nil
}

func regexpExec(args *runtime.Arguments) (runtime.Value, error) {
	return execRegExp(args, "exec")
}

func regexpTest(args *runtime.Arguments) (runtime.Value, error) {
	v, err := execRegExp(args, "test")
	if err != nil {
		return runtime.Undefined, err
	}
	return runtime.NewBool(!v.IsNull()), nil
}

func regexpToString(args *runtime.Arguments) (runtime.Value, error) {
	re, err := thisRegExp(args, "toString")
	if err != nil {
		return runtime.Undefined, err
	}
	return runtime.NewString(re.String()), nil
}
