package builtins

import (
	"math"
	"math/big"

	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/example/jscore/runtime"
)

func createNumberConstructor(ctx *runtime.Context, proto *runtime.JSNumberObject) *runtime.JSNativeFunction {
	ctor := newConstructor(ctx, "Number", 1, proto, numberConstructorCall)

	setConstant(ctx, ctor, "MAX_VALUE", runtime.NewNumber(math.MaxFloat64))
	setConstant(ctx, ctor, "MIN_VALUE", runtime.NewNumber(math.SmallestNonzeroFloat64))
	setConstant(ctx, ctor, "NaN", runtime.NaN)
	setConstant(ctx, ctor, "NEGATIVE_INFINITY", runtime.NegInf)
	setConstant(ctx, ctor, "POSITIVE_INFINITY", runtime.PosInf)

	setMethod(ctx, proto, "toString", 1, numberToString)
	setMethod(ctx, proto, "toLocaleString", 0, numberToLocaleString)
	setMethod(ctx, proto, "valueOf", 0, numberValueOf)
	setMethod(ctx, proto, "toFixed", 1, numberToFixed)
	return ctor
}

func numberConstructorCall(args *runtime.Arguments) (runtime.Value, error) {
	n := 0.0
	if args.Len() > 0 {
		var err error
		if n, err = args.At(0).ToNumber(args.Ctx()); err != nil {
			return runtime.Undefined, err
		}
	}
	if args.IsConstructorCalled() {
		return runtime.NewObject(runtime.NewNumberObject(args.Ctx(), n)), nil
	}
	return runtime.NewNumber(n), nil
}

func thisNumberValue(args *runtime.Arguments, method string) (float64, error) {
	this := args.This()
	if this.IsNumber() {
		return this.Number, nil
	}
	if this.IsObject() {
		if n, ok := this.Object.(*runtime.JSNumberObject); ok {
			return n.PrimitiveValue(), nil
		}
	}
	return 0, runtime.NewTypeError("Number.prototype.%s is not generic function", method)
}

func numberToString(args *runtime.Arguments) (runtime.Value, error) {
	n, err := thisNumberValue(args, "toString")
	if err != nil {
		return runtime.Undefined, err
	}
	radix := 10.0
	if !args.At(0).IsUndefined() {
		if radix, err = integerArg(args, 0); err != nil {
			return runtime.Undefined, err
		}
	}
	if radix < 2 || radix > 36 {
		return runtime.Undefined, runtime.NewRangeError("illegal radix")
	}
	if radix == 10 {
		return runtime.NewString(runtime.NumberToString(n)), nil
	}
	return runtime.NewString(runtime.NumberToStringRadix(n, int(radix))), nil
}

func numberToLocaleString(args *runtime.Arguments) (runtime.Value, error) {
	n, err := thisNumberValue(args, "toLocaleString")
	if err != nil {
		return runtime.Undefined, err
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return runtime.NewString(runtime.NumberToString(n)), nil
	}
	p := message.NewPrinter(args.Ctx().Locale())
	return runtime.NewString(p.Sprintf("%v", number.Decimal(n))), nil
}

func numberValueOf(args *runtime.Arguments) (runtime.Value, error) {
	n, err := thisNumberValue(args, "valueOf")
	if err != nil {
		return runtime.Undefined, err
	}
	return runtime.NewNumber(n), nil
}

// numberToFixed implements ES5 15.7.4.5.
func numberToFixed(args *runtime.Arguments) (runtime.Value, error) {
	n, err := thisNumberValue(args, "toFixed")
	if err != nil {
		return runtime.Undefined, err
	}
	digits, err := integerArg(args, 0)
	if err != nil {
		return runtime.Undefined, err
	}
	if digits < 0 || digits > 20 {
		return runtime.Undefined, runtime.NewRangeError("toFixed() digits argument must be between 0 and 20")
	}
	if math.IsNaN(n) || math.Abs(n) >= 1e21 {
		return runtime.NewString(runtime.NumberToString(n)), nil
	}
	// halves round away from zero
	return runtime.NewString(new(big.Rat).SetFloat64(n).FloatString(int(digits))), nil
}
