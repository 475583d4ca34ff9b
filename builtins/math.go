package builtins

import (
	"math"

	"github.com/example/jscore/runtime"
)

func createMathObject(ctx *runtime.Context) *runtime.JSObject {
	m := runtime.NewJSObject(ctx)
	m.SetClass("Math")

	setConstant(ctx, m, "E", runtime.NewNumber(math.E))
	setConstant(ctx, m, "LN10", runtime.NewNumber(math.Ln10))
	setConstant(ctx, m, "LN2", runtime.NewNumber(math.Ln2))
	setConstant(ctx, m, "LOG2E", runtime.NewNumber(math.Log2E))
	setConstant(ctx, m, "LOG10E", runtime.NewNumber(math.Log10E))
	setConstant(ctx, m, "PI", runtime.NewNumber(math.Pi))
	setConstant(ctx, m, "SQRT1_2", runtime.NewNumber(1/math.Sqrt2))
	setConstant(ctx, m, "SQRT2", runtime.NewNumber(math.Sqrt2))

	setMethod(ctx, m, "abs", 1, mathUnary(math.Abs))
	setMethod(ctx, m, "acos", 1, mathUnary(math.Acos))
	setMethod(ctx, m, "asin", 1, mathUnary(math.Asin))
	setMethod(ctx, m, "atan", 1, mathUnary(math.Atan))
	setMethod(ctx, m, "atan2", 2, mathBinary(math.Atan2))
	setMethod(ctx, m, "ceil", 1, mathUnary(math.Ceil))
	setMethod(ctx, m, "cos", 1, mathUnary(math.Cos))
	setMethod(ctx, m, "exp", 1, mathUnary(math.Exp))
	setMethod(ctx, m, "floor", 1, mathUnary(math.Floor))
	setMethod(ctx, m, "log", 1, mathUnary(math.Log))
	setMethod(ctx, m, "max", 2, mathMax)
	setMethod(ctx, m, "min", 2, mathMin)
	setMethod(ctx, m, "pow", 2, mathBinary(mathPow))
	setMethod(ctx, m, "random", 0, mathRandom)
	setMethod(ctx, m, "round", 1, mathUnary(mathRound))
	setMethod(ctx, m, "sin", 1, mathUnary(math.Sin))
	setMethod(ctx, m, "sqrt", 1, mathUnary(math.Sqrt))
	setMethod(ctx, m, "tan", 1, mathUnary(math.Tan))
	return m
}

func mathUnary(fn func(float64) float64) runtime.NativeFunc {
	return func(args *runtime.Arguments) (runtime.Value, error) {
		x, err := args.At(0).ToNumber(args.Ctx())
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.NewNumber(fn(x)), nil
	}
}

func mathBinary(fn func(float64, float64) float64) runtime.NativeFunc {
	return func(args *runtime.Arguments) (runtime.Value, error) {
		x, err := args.At(0).ToNumber(args.Ctx())
		if err != nil {
			return runtime.Undefined, err
		}
		y, err := args.At(1).ToNumber(args.Ctx())
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.NewNumber(fn(x, y)), nil
	}
}

// mathExtreme folds every argument after converting all of them;
// any NaN makes the result NaN.
func mathExtreme(args *runtime.Arguments, init float64, better func(x, cur float64) bool) (runtime.Value, error) {
	result := init
	nan := false
	for _, v := range args.Values() {
		x, err := v.ToNumber(args.Ctx())
		if err != nil {
			return runtime.Undefined, err
		}
		switch {
		case math.IsNaN(x):
			nan = true
		case better(x, result):
			result = x
		}
	}
	if nan {
		return runtime.NaN, nil
	}
	return runtime.NewNumber(result), nil
}

func mathMax(args *runtime.Arguments) (runtime.Value, error) {
	return mathExtreme(args, math.Inf(-1), func(x, cur float64) bool {
		return x > cur || (x == 0 && cur == 0 && !math.Signbit(x))
	})
}

func mathMin(args *runtime.Arguments) (runtime.Value, error) {
	return mathExtreme(args, math.Inf(1), func(x, cur float64) bool {
		return x < cur || (x == 0 && cur == 0 && math.Signbit(x))
	})
}

// mathPow differs from math.Pow where ES5 15.8.2.13 yields NaN for a base
// of magnitude one raised to an infinite or NaN exponent.
func mathPow(x, y float64) float64 {
	if math.IsNaN(y) || (math.IsInf(y, 0) && math.Abs(x) == 1) {
		return math.NaN()
	}
	return math.Pow(x, y)
}

// mathRound rounds half up, keeping negative zero for inputs in [-0.5, -0].
func mathRound(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	if x < 0 && x >= -0.5 {
		return math.Copysign(0, -1)
	}
	return math.Floor(x + 0.5)
}

func mathRandom(args *runtime.Arguments) (runtime.Value, error) {
	return runtime.NewNumber(args.Ctx().Random()), nil
}
