package builtins

import (
	"math"
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/example/jscore/runtime"
)

func createStringConstructor(ctx *runtime.Context, proto *runtime.JSStringObject) *runtime.JSNativeFunction {
	ctor := newConstructor(ctx, "String", 1, proto, stringConstructorCall)
	setMethod(ctx, ctor, "fromCharCode", 1, stringFromCharCode)

	setMethod(ctx, proto, "toString", 0, stringToString)
	setMethod(ctx, proto, "valueOf", 0, stringValueOf)
	setMethod(ctx, proto, "charAt", 1, stringCharAt)
	setMethod(ctx, proto, "charCodeAt", 1, stringCharCodeAt)
	setMethod(ctx, proto, "concat", 1, stringConcat)
	setMethod(ctx, proto, "indexOf", 1, stringIndexOf)
	setMethod(ctx, proto, "lastIndexOf", 1, stringLastIndexOf)
	setMethod(ctx, proto, "localeCompare", 1, stringLocaleCompare)
	setMethod(ctx, proto, "slice", 2, stringSlice)
	setMethod(ctx, proto, "substring", 2, stringSubstring)
	setMethod(ctx, proto, "split", 2, stringSplit)
	setMethod(ctx, proto, "toLowerCase", 0, stringToLowerCase)
	setMethod(ctx, proto, "toLocaleLowerCase", 0, stringToLocaleLowerCase)
	setMethod(ctx, proto, "toUpperCase", 0, stringToUpperCase)
	setMethod(ctx, proto, "toLocaleUpperCase", 0, stringToLocaleUpperCase)
	setMethod(ctx, proto, "trim", 0, stringTrim)
	return ctor
}

func stringConstructorCall(args *runtime.Arguments) (runtime.Value, error) {
	s := ""
	if args.Len() > 0 {
		var err error
		if s, err = stringArg(args, 0); err != nil {
			return runtime.Undefined, err
		}
	}
	if args.IsConstructorCalled() {
		return runtime.NewObject(runtime.NewStringObject(args.Ctx(), s)), nil
	}
	return runtime.NewString(s), nil
}

func stringFromCharCode(args *runtime.Arguments) (runtime.Value, error) {
	units := make([]uint16, args.Len())
	for i := range units {
		u, err := args.At(i).ToUint16(args.Ctx())
		if err != nil {
			return runtime.Undefined, err
		}
		units[i] = u
	}
	return runtime.NewString(runtime.FromUnits(units)), nil
}

// thisStringValue unwraps a string primitive or String object; other this
// values are rejected since toString and valueOf are not generic.
func thisStringValue(args *runtime.Arguments, method string) (runtime.Value, error) {
	this := args.This()
	if this.IsString() {
		return this, nil
	}
	if this.IsObject() {
		if s, ok := this.Object.(*runtime.JSStringObject); ok {
			return runtime.NewString(s.PrimitiveValue()), nil
		}
	}
	return runtime.Undefined, runtime.NewTypeError("String.prototype.%s is not generic function", method)
}

func stringToString(args *runtime.Arguments) (runtime.Value, error) {
	return thisStringValue(args, "toString")
}

func stringValueOf(args *runtime.Arguments) (runtime.Value, error) {
	return thisStringValue(args, "valueOf")
}

// thisString applies CheckObjectCoercible and ToString to the this value.
func thisString(args *runtime.Arguments, method string) (string, error) {
	this := args.This()
	if this.IsNullish() {
		return "", runtime.NewTypeError("String.prototype.%s called on null or undefined", method)
	}
	return this.ToString(args.Ctx())
}

func thisUnits(args *runtime.Arguments, method string) ([]uint16, error) {
	s, err := thisString(args, method)
	if err != nil {
		return nil, err
	}
	return runtime.ToUnits(s), nil
}

func stringCharAt(args *runtime.Arguments) (runtime.Value, error) {
	units, err := thisUnits(args, "charAt")
	if err != nil {
		return runtime.Undefined, err
	}
	pos, err := integerArg(args, 0)
	if err != nil {
		return runtime.Undefined, err
	}
	if pos < 0 || pos >= float64(len(units)) {
		return runtime.NewString(""), nil
	}
	return runtime.NewString(runtime.UnitString(units[int(pos)])), nil
}

func stringCharCodeAt(args *runtime.Arguments) (runtime.Value, error) {
	units, err := thisUnits(args, "charCodeAt")
	if err != nil {
		return runtime.Undefined, err
	}
	pos, err := integerArg(args, 0)
	if err != nil {
		return runtime.Undefined, err
	}
	if pos < 0 || pos >= float64(len(units)) {
		return runtime.NaN, nil
	}
	return runtime.NewNumber(float64(units[int(pos)])), nil
}

func stringConcat(args *runtime.Arguments) (runtime.Value, error) {
	s, err := thisString(args, "concat")
	if err != nil {
		return runtime.Undefined, err
	}
	for i := 0; i < args.Len(); i++ {
		next, err := stringArg(args, i)
		if err != nil {
			return runtime.Undefined, err
		}
		s += next
	}
	return runtime.NewString(s), nil
}

func indexUnits(hay, needle []uint16, from int) int {
	for i := from; i+len(needle) <= len(hay); i++ {
		if slices.Equal(hay[i:i+len(needle)], needle) {
			return i
		}
	}
	return -1
}

func stringIndexOf(args *runtime.Arguments) (runtime.Value, error) {
	units, err := thisUnits(args, "indexOf")
	if err != nil {
		return runtime.Undefined, err
	}
	search, err := stringArg(args, 0)
	if err != nil {
		return runtime.Undefined, err
	}
	pos, err := integerArg(args, 1)
	if err != nil {
		return runtime.Undefined, err
	}
	start := int(math.Min(math.Max(pos, 0), float64(len(units))))
	return runtime.NewNumber(float64(indexUnits(units, runtime.ToUnits(search), start))), nil
}

func stringLastIndexOf(args *runtime.Arguments) (runtime.Value, error) {
	units, err := thisUnits(args, "lastIndexOf")
	if err != nil {
		return runtime.Undefined, err
	}
	search, err := stringArg(args, 0)
	if err != nil {
		return runtime.Undefined, err
	}
	numPos, err := args.At(1).ToNumber(args.Ctx())
	if err != nil {
		return runtime.Undefined, err
	}
	pos := math.Inf(1)
	if !math.IsNaN(numPos) {
		pos = runtime.DoubleToInteger(numPos)
	}
	needle := runtime.ToUnits(search)
	start := int(math.Min(math.Max(pos, 0), float64(len(units))))
	for i := min(start, len(units)-len(needle)); i >= 0; i-- {
		if slices.Equal(units[i:i+len(needle)], needle) {
			return runtime.NewNumber(float64(i)), nil
		}
	}
	return runtime.NewNumber(-1), nil
}

func stringLocaleCompare(args *runtime.Arguments) (runtime.Value, error) {
	s, err := thisString(args, "localeCompare")
	if err != nil {
		return runtime.Undefined, err
	}
	that, err := stringArg(args, 0)
	if err != nil {
		return runtime.Undefined, err
	}
	c := collate.New(args.Ctx().Locale())
	return runtime.NewNumber(float64(c.CompareString(s, that))), nil
}

func stringSlice(args *runtime.Arguments) (runtime.Value, error) {
	units, err := thisUnits(args, "slice")
	if err != nil {
		return runtime.Undefined, err
	}
	length := float64(len(units))
	start, err := integerArg(args, 0)
	if err != nil {
		return runtime.Undefined, err
	}
	end := length
	if !args.At(1).IsUndefined() {
		if end, err = integerArg(args, 1); err != nil {
			return runtime.Undefined, err
		}
	}
	from, to := relativeIndex(start, length), relativeIndex(end, length)
	if from >= to {
		return runtime.NewString(""), nil
	}
	return runtime.NewString(runtime.FromUnits(units[int(from):int(to)])), nil
}

func stringSubstring(args *runtime.Arguments) (runtime.Value, error) {
	units, err := thisUnits(args, "substring")
	if err != nil {
		return runtime.Undefined, err
	}
	length := float64(len(units))
	start, err := integerArg(args, 0)
	if err != nil {
		return runtime.Undefined, err
	}
	end := length
	if !args.At(1).IsUndefined() {
		if end, err = integerArg(args, 1); err != nil {
			return runtime.Undefined, err
		}
	}
	finalStart := math.Min(math.Max(start, 0), length)
	finalEnd := math.Min(math.Max(end, 0), length)
	from, to := math.Min(finalStart, finalEnd), math.Max(finalStart, finalEnd)
	return runtime.NewString(runtime.FromUnits(units[int(from):int(to)])), nil
}

// stringSplit implements ES5 15.5.4.14 for string and RegExp separators.
func stringSplit(args *runtime.Arguments) (runtime.Value, error) {
	ctx := args.Ctx()
	s, err := thisString(args, "split")
	if err != nil {
		return runtime.Undefined, err
	}
	limit := uint32(math.MaxUint32)
	if !args.At(1).IsUndefined() {
		if limit, err = args.At(1).ToUint32(ctx); err != nil {
			return runtime.Undefined, err
		}
	}
	sepVal := args.At(0)
	var re *runtime.JSRegExp
	var sep []uint16
	if sepVal.IsObject() {
		re, _ = sepVal.Object.(*runtime.JSRegExp)
	}
	if re == nil && !sepVal.IsUndefined() {
		str, err := sepVal.ToString(ctx)
		if err != nil {
			return runtime.Undefined, err
		}
		sep = runtime.ToUnits(str)
	}
	if limit == 0 {
		return newArray(ctx, nil), nil
	}
	if sepVal.IsUndefined() {
		return newArray(ctx, []runtime.Value{runtime.NewString(s)}), nil
	}

	units := runtime.ToUnits(s)
	// splitMatch reports the end of a separator match at q and any
	// captures, or -1.
	splitMatch := func(q int) (int, []runtime.Value, error) {
		if re == nil {
			if q+len(sep) <= len(units) && slices.Equal(units[q:q+len(sep)], sep) {
				return q + len(sep), nil, nil
			}
			return -1, nil, nil
		}
		m, err := re.Matcher().MatchAt(units, q)
		if err != nil || m == nil || m[0] != q {
			return -1, nil, err
		}
		var caps []runtime.Value
		for g := 1; g <= re.Matcher().Groups(); g++ {
			if m[2*g] < 0 {
				caps = append(caps, runtime.Undefined)
				continue
			}
			caps = append(caps, runtime.NewString(runtime.FromUnits(units[m[2*g]:m[2*g+1]])))
		}
		return m[1], caps, nil
	}

	var parts []runtime.Value
	if len(units) == 0 {
		e, _, err := splitMatch(0)
		if err != nil {
			return runtime.Undefined, err
		}
		if e < 0 {
			parts = append(parts, runtime.NewString(s))
		}
		return newArray(ctx, parts), nil
	}
	p := 0
	for q := p; q < len(units); {
		e, caps, err := splitMatch(q)
		if err != nil {
			return runtime.Undefined, err
		}
		if e < 0 || e == p {
			q++
			continue
		}
		parts = append(parts, runtime.NewString(runtime.FromUnits(units[p:q])))
		if uint32(len(parts)) == limit {
			return newArray(ctx, parts), nil
		}
		for _, c := range caps {
			parts = append(parts, c)
			if uint32(len(parts)) == limit {
				return newArray(ctx, parts), nil
			}
		}
		p = e
		q = p
	}
	parts = append(parts, runtime.NewString(runtime.FromUnits(units[p:])))
	return newArray(ctx, parts), nil
}

func mapCase(args *runtime.Arguments, method string, caser cases.Caser) (runtime.Value, error) {
	s, err := thisString(args, method)
	if err != nil {
		return runtime.Undefined, err
	}
	return runtime.NewString(caser.String(s)), nil
}

func stringToLowerCase(args *runtime.Arguments) (runtime.Value, error) {
	return mapCase(args, "toLowerCase", cases.Lower(language.Und))
}

func stringToUpperCase(args *runtime.Arguments) (runtime.Value, error) {
	return mapCase(args, "toUpperCase", cases.Upper(language.Und))
}

func stringToLocaleLowerCase(args *runtime.Arguments) (runtime.Value, error) {
	return mapCase(args, "toLocaleLowerCase", cases.Lower(args.Ctx().Locale()))
}

func stringToLocaleUpperCase(args *runtime.Arguments) (runtime.Value, error) {
	return mapCase(args, "toLocaleUpperCase", cases.Upper(args.Ctx().Locale()))
}

func stringTrim(args *runtime.Arguments) (runtime.Value, error) {
	s, err := thisString(args, "trim")
	if err != nil {
		return runtime.Undefined, err
	}
	return runtime.NewString(runtime.TrimWhiteSpace(s)), nil
}
