package builtins

import (
	"math"
	"strconv"
	"strings"

	"github.com/example/jscore/runtime"
)

// defineGlobals installs the global value properties and functions. The
// values are read-only; the functions are writable and configurable.
func defineGlobals(ctx *runtime.Context, global runtime.Object) {
	setConstant(ctx, global, "NaN", runtime.NaN)
	setConstant(ctx, global, "Infinity", runtime.PosInf)
	setConstant(ctx, global, "undefined", runtime.Undefined)

	setMethod(ctx, global, "eval", 1, globalEval)
	setMethod(ctx, global, "parseInt", 2, globalParseInt)
	setMethod(ctx, global, "parseFloat", 1, globalParseFloat)
	setMethod(ctx, global, "isNaN", 1, globalIsNaN)
	setMethod(ctx, global, "isFinite", 1, globalIsFinite)
}

// globalEval is indirect eval (ES5 15.1.2.1): the source runs as an eval
// script in the global environment.
func globalEval(args *runtime.Arguments) (runtime.Value, error) {
	ctx := args.Ctx()
	src := args.At(0)
	if !src.IsString() {
		return src, nil
	}
	parser := ctx.Parser()
	if parser == nil {
		return runtime.Undefined, runtime.NewSyntaxError("no parser configured")
	}
	fn, err := parser.ParseScript("eval", src.Str)
	if err != nil {
		return runtime.Undefined, err
	}
	return ctx.Eval(&runtime.Script{Name: "eval", Kind: runtime.EvalScript, Function: fn})
}

func digitValue(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	}
	return 36
}

// globalParseInt implements ES5 15.1.2.2.
func globalParseInt(args *runtime.Arguments) (runtime.Value, error) {
	s, err := stringArg(args, 0)
	if err != nil {
		return runtime.Undefined, err
	}
	r, err := args.At(1).ToInt32(args.Ctx())
	if err != nil {
		return runtime.Undefined, err
	}
	s = strings.TrimLeftFunc(s, runtime.IsWhiteSpace)
	sign := 1.0
	if s != "" && (s[0] == '-' || s[0] == '+') {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}
	radix := int(r)
	stripPrefix := true
	if radix != 0 {
		if radix < 2 || radix > 36 {
			return runtime.NaN, nil
		}
		stripPrefix = radix == 16
	} else {
		radix = 10
	}
	if stripPrefix && len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
		radix = 16
	}
	end := strings.IndexFunc(s, func(c rune) bool { return digitValue(c) >= radix })
	if end < 0 {
		end = len(s)
	}
	if end == 0 {
		return runtime.NaN, nil
	}
	digits := s[:end]
	if radix == 10 {
		// decimal digits are rounded correctly rather than accumulated
		n, err := strconv.ParseFloat(digits, 64)
		if err == nil || n != 0 {
			return runtime.NewNumber(sign * n), nil
		}
	}
	n := 0.0
	for _, c := range digits {
		n = n*float64(radix) + float64(digitValue(c))
	}
	return runtime.NewNumber(sign * n), nil
}

// decimalPrefix returns the length of the longest prefix of s that is a
// StrDecimalLiteral.
func decimalPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		return i + len("Infinity")
	}
	digits := 0
	for i < len(s) && isDecimalDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDecimalDigit(s[j]) {
			j++
			frac++
		}
		if digits+frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDecimalDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func isDecimalDigit(c byte) bool { return c >= '0' && c <= '9' }

// globalParseFloat implements ES5 15.1.2.3.
func globalParseFloat(args *runtime.Arguments) (runtime.Value, error) {
	s, err := stringArg(args, 0)
	if err != nil {
		return runtime.Undefined, err
	}
	s = strings.TrimLeftFunc(s, runtime.IsWhiteSpace)
	n := decimalPrefix(s)
	if n == 0 {
		return runtime.NaN, nil
	}
	return runtime.NewNumber(runtime.StringToNumber(s[:n])), nil
}

func globalIsNaN(args *runtime.Arguments) (runtime.Value, error) {
	n, err := args.At(0).ToNumber(args.Ctx())
	if err != nil {
		return runtime.Undefined, err
	}
	return runtime.NewBool(math.IsNaN(n)), nil
}

func globalIsFinite(args *runtime.Arguments) (runtime.Value, error) {
	n, err := args.At(0).ToNumber(args.Ctx())
	if err != nil {
		return runtime.Undefined, err
	}
	return runtime.NewBool(!math.IsNaN(n) && !math.IsInf(n, 0)), nil
}
