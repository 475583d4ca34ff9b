package builtins

import (
	"math"
	"slices"
	"strings"

	"github.com/example/jscore/runtime"
)

func createArrayConstructor(ctx *runtime.Context, proto *runtime.JSArray) *runtime.JSNativeFunction {
	ctor := newConstructor(ctx, "Array", 1, proto, arrayConstructorCall)
	setMethod(ctx, ctor, "isArray", 1, arrayIsArray)

	setMethod(ctx, proto, "toString", 0, arrayProtoToString)
	setMethod(ctx, proto, "join", 1, arrayProtoJoin)
	setMethod(ctx, proto, "push", 1, arrayProtoPush)
	setMethod(ctx, proto, "pop", 0, arrayProtoPop)
	setMethod(ctx, proto, "shift", 0, arrayProtoShift)
	setMethod(ctx, proto, "unshift", 1, arrayProtoUnshift)
	setMethod(ctx, proto, "slice", 2, arrayProtoSlice)
	setMethod(ctx, proto, "splice", 2, arrayProtoSplice)
	setMethod(ctx, proto, "concat", 1, arrayProtoConcat)
	setMethod(ctx, proto, "reverse", 0, arrayProtoReverse)
	setMethod(ctx, proto, "indexOf", 1, arrayProtoIndexOf)
	setMethod(ctx, proto, "lastIndexOf", 1, arrayProtoLastIndexOf)
	setMethod(ctx, proto, "forEach", 1, arrayProtoForEach)
	setMethod(ctx, proto, "map", 1, arrayProtoMap)
	setMethod(ctx, proto, "filter", 1, arrayProtoFilter)
	setMethod(ctx, proto, "some", 1, arrayProtoSome)
	setMethod(ctx, proto, "every", 1, arrayProtoEvery)
	setMethod(ctx, proto, "reduce", 1, arrayProtoReduce)
	setMethod(ctx, proto, "sort", 1, arrayProtoSort)
	return ctor
}

// arrayConstructorCall implements ES5 15.4.1 and 15.4.2; calling and
// constructing behave the same.
func arrayConstructorCall(args *runtime.Arguments) (runtime.Value, error) {
	ctx := args.Ctx()
	if args.Len() == 1 && args.At(0).IsNumber() {
		n := args.At(0).Number
		length := runtime.DoubleToUint32(n)
		if float64(length) != n {
			return runtime.Undefined, runtime.NewRangeError("invalid array length")
		}
		return runtime.NewObject(runtime.NewJSArray(ctx, length)), nil
	}
	return newArray(ctx, slices.Clone(args.Values())), nil
}

func arrayIsArray(args *runtime.Arguments) (runtime.Value, error) {
	v := args.At(0)
	return runtime.NewBool(v.IsObject() && v.Object.Class() == "Array"), nil
}

func arrayProtoToString(args *runtime.Arguments) (runtime.Value, error) {
	ctx := args.Ctx()
	obj, err := thisObject(args)
	if err != nil {
		return runtime.Undefined, err
	}
	join, err := runtime.GetString(ctx, obj, "join")
	if err != nil {
		return runtime.Undefined, err
	}
	if !join.IsCallable() {
		return runtime.NewString("[object " + obj.Class() + "]"), nil
	}
	return runtime.Call(ctx, join, runtime.NewObject(obj))
}

func arrayProtoJoin(args *runtime.Arguments) (runtime.Value, error) {
	ctx := args.Ctx()
	obj, err := thisObject(args)
	if err != nil {
		return runtime.Undefined, err
	}
	n, err := lengthOf(ctx, obj)
	if err != nil {
		return runtime.Undefined, err
	}
	sep := ","
	if !args.At(0).IsUndefined() {
		if sep, err = stringArg(args, 0); err != nil {
			return runtime.Undefined, err
		}
	}
	var b strings.Builder
	for i := uint32(0); i < n; i++ {
		if i > 0 {
			b.WriteString(sep)
		}
		v, err := getIndex(ctx, obj, i)
		if err != nil {
			return runtime.Undefined, err
		}
		if v.IsNullish() {
			continue
		}
		s, err := v.ToString(ctx)
		if err != nil {
			return runtime.Undefined, err
		}
		b.WriteString(s)
	}
	return runtime.NewString(b.String()), nil
}

func arrayProtoPush(args *runtime.Arguments) (runtime.Value, error) {
	ctx := args.Ctx()
	obj, err := thisObject(args)
	if err != nil {
		return runtime.Undefined, err
	}
	n, err := lengthOf(ctx, obj)
	if err != nil {
		return runtime.Undefined, err
	}
	length := float64(n)
	for _, v := range args.Values() {
		if err := runtime.Put(ctx, obj, ctx.Intern(runtime.NumberToString(length)), v, true); err != nil {
			return runtime.Undefined, err
		}
		length++
	}
	if err := setLength(ctx, obj, length); err != nil {
		return runtime.Undefined, err
	}
	return runtime.NewNumber(length), nil
}

func arrayProtoPop(args *runtime.Arguments) (runtime.Value, error) {
	ctx := args.Ctx()
	obj, err := thisObject(args)
	if err != nil {
		return runtime.Undefined, err
	}
	n, err := lengthOf(ctx, obj)
	if err != nil {
		return runtime.Undefined, err
	}
	if n == 0 {
		return runtime.Undefined, setLength(ctx, obj, 0)
	}
	last, err := getIndex(ctx, obj, n-1)
	if err != nil {
		return runtime.Undefined, err
	}
	if _, err := obj.Delete(ctx, ctx.IndexSymbol(n-1), true); err != nil {
		return runtime.Undefined, err
	}
	return last, setLength(ctx, obj, float64(n-1))
}

// move copies element from to element to, deleting to when from is a hole.
func move(ctx *runtime.Context, obj runtime.Object, from, to uint32) error {
	v, present, err := element(ctx, obj, from)
	if err != nil {
		return err
	}
	if !present {
		_, err := obj.Delete(ctx, ctx.IndexSymbol(to), true)
		return err
	}
	return putIndex(ctx, obj, to, v)
}

func arrayProtoShift(args *runtime.Arguments) (runtime.Value, error) {
	ctx := args.Ctx()
	obj, err := thisObject(args)
	if err != nil {
		return runtime.Undefined, err
	}
	n, err := lengthOf(ctx, obj)
	if err != nil {
		return runtime.Undefined, err
	}
	if n == 0 {
		return runtime.Undefined, setLength(ctx, obj, 0)
	}
	first, err := getIndex(ctx, obj, 0)
	if err != nil {
		return runtime.Undefined, err
	}
	for k := uint32(1); k < n; k++ {
		if err := move(ctx, obj, k, k-1); err != nil {
			return runtime.Undefined, err
		}
	}
	if _, err := obj.Delete(ctx, ctx.IndexSymbol(n-1), true); err != nil {
		return runtime.Undefined, err
	}
	return first, setLength(ctx, obj, float64(n-1))
}

func arrayProtoUnshift(args *runtime.Arguments) (runtime.Value, error) {
	ctx := args.Ctx()
	obj, err := thisObject(args)
	if err != nil {
		return runtime.Undefined, err
	}
	n, err := lengthOf(ctx, obj)
	if err != nil {
		return runtime.Undefined, err
	}
	count := uint32(args.Len())
	for k := n; k > 0; k-- {
		if err := move(ctx, obj, k-1, k+count-1); err != nil {
			return runtime.Undefined, err
		}
	}
	for j, v := range args.Values() {
		if err := putIndex(ctx, obj, uint32(j), v); err != nil {
			return runtime.Undefined, err
		}
	}
	length := float64(n) + float64(count)
	return runtime.NewNumber(length), setLength(ctx, obj, length)
}

func arrayProtoSlice(args *runtime.Arguments) (runtime.Value, error) {
	ctx := args.Ctx()
	obj, err := thisObject(args)
	if err != nil {
		return runtime.Undefined, err
	}
	n, err := lengthOf(ctx, obj)
	if err != nil {
		return runtime.Undefined, err
	}
	length := float64(n)
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
	k, final := relativeIndex(start, length), relativeIndex(end, length)
	out := runtime.NewJSArray(ctx, 0)
	var i uint32
	for ; k < final; k++ {
		v, present, err := element(ctx, obj, uint32(k))
		if err != nil {
			return runtime.Undefined, err
		}
		if present {
			if err := defineIndex(ctx, out, i, v); err != nil {
				return runtime.Undefined, err
			}
		}
		i++
	}
	if err := setLength(ctx, out, float64(i)); err != nil {
		return runtime.Undefined, err
	}
	return runtime.NewObject(out), nil
}

func defineIndex(ctx *runtime.Context, arr runtime.Object, i uint32, v runtime.Value) error {
	desc := runtime.DataDescriptor(v, runtime.Writable|runtime.Enumerable|runtime.Configurable)
	_, err := arr.DefineOwnProperty(ctx, ctx.IndexSymbol(i), desc, false)
	return err
}

func arrayProtoSplice(args *runtime.Arguments) (runtime.Value, error) {
	ctx := args.Ctx()
	obj, err := thisObject(args)
	if err != nil {
		return runtime.Undefined, err
	}
	n, err := lengthOf(ctx, obj)
	if err != nil {
		return runtime.Undefined, err
	}
	length := float64(n)
	rel, err := integerArg(args, 0)
	if err != nil {
		return runtime.Undefined, err
	}
	start := relativeIndex(rel, length)
	// a lone start removes through the end, as browsers do
	var deleteCount float64
	switch {
	case args.Len() == 1:
		deleteCount = length - start
	case args.Len() > 1:
		dc, err := integerArg(args, 1)
		if err != nil {
			return runtime.Undefined, err
		}
		deleteCount = math.Min(math.Max(dc, 0), length-start)
	}

	removed := runtime.NewJSArray(ctx, 0)
	for k := 0.0; k < deleteCount; k++ {
		v, present, err := element(ctx, obj, uint32(start+k))
		if err != nil {
			return runtime.Undefined, err
		}
		if present {
			if err := defineIndex(ctx, removed, uint32(k), v); err != nil {
				return runtime.Undefined, err
			}
		}
	}
	if err := setLength(ctx, removed, deleteCount); err != nil {
		return runtime.Undefined, err
	}

	var items []runtime.Value
	if args.Len() > 2 {
		items = args.Values()[2:]
	}
	itemCount := float64(len(items))
	switch {
	case itemCount < deleteCount:
		for k := start; k < length-deleteCount; k++ {
			if err := move(ctx, obj, uint32(k+deleteCount), uint32(k+itemCount)); err != nil {
				return runtime.Undefined, err
			}
		}
		for k := length; k > length-deleteCount+itemCount; k-- {
			if _, err := obj.Delete(ctx, ctx.IndexSymbol(uint32(k-1)), true); err != nil {
				return runtime.Undefined, err
			}
		}
	case itemCount > deleteCount:
		for k := length - deleteCount; k > start; k-- {
			if err := move(ctx, obj, uint32(k+deleteCount-1), uint32(k+itemCount-1)); err != nil {
				return runtime.Undefined, err
			}
		}
	}
	for i, v := range items {
		if err := putIndex(ctx, obj, uint32(start)+uint32(i), v); err != nil {
			return runtime.Undefined, err
		}
	}
	if err := setLength(ctx, obj, length-deleteCount+itemCount); err != nil {
		return runtime.Undefined, err
	}
	return runtime.NewObject(removed), nil
}

func arrayProtoConcat(args *runtime.Arguments) (runtime.Value, error) {
	ctx := args.Ctx()
	obj, err := thisObject(args)
	if err != nil {
		return runtime.Undefined, err
	}
	out := runtime.NewJSArray(ctx, 0)
	var n uint32
	items := append([]runtime.Value{runtime.NewObject(obj)}, args.Values()...)
	for _, item := range items {
		if !item.IsObject() || item.Object.Class() != "Array" {
			if err := defineIndex(ctx, out, n, item); err != nil {
				return runtime.Undefined, err
			}
			n++
			continue
		}
		length, err := lengthOf(ctx, item.Object)
		if err != nil {
			return runtime.Undefined, err
		}
		for k := uint32(0); k < length; k++ {
			v, present, err := element(ctx, item.Object, k)
			if err != nil {
				return runtime.Undefined, err
			}
			if present {
				if err := defineIndex(ctx, out, n, v); err != nil {
					return runtime.Undefined, err
				}
			}
			n++
		}
	}
	if err := setLength(ctx, out, float64(n)); err != nil {
		return runtime.Undefined, err
	}
	return runtime.NewObject(out), nil
}

func arrayProtoReverse(args *runtime.Arguments) (runtime.Value, error) {
	ctx := args.Ctx()
	obj, err := thisObject(args)
	if err != nil {
		return runtime.Undefined, err
	}
	n, err := lengthOf(ctx, obj)
	if err != nil {
		return runtime.Undefined, err
	}
	for lower := uint32(0); lower < n/2; lower++ {
		upper := n - lower - 1
		lowerVal, lowerExists, err := element(ctx, obj, lower)
		if err != nil {
			return runtime.Undefined, err
		}
		upperVal, upperExists, err := element(ctx, obj, upper)
		if err != nil {
			return runtime.Undefined, err
		}
		if err := place(ctx, obj, lower, upperVal, upperExists); err != nil {
			return runtime.Undefined, err
		}
		if err := place(ctx, obj, upper, lowerVal, lowerExists); err != nil {
			return runtime.Undefined, err
		}
	}
	return runtime.NewObject(obj), nil
}

// place stores v at index i when present is set, otherwise deletes i.
func place(ctx *runtime.Context, obj runtime.Object, i uint32, v runtime.Value, present bool) error {
	if present {
		return putIndex(ctx, obj, i, v)
	}
	_, err := obj.Delete(ctx, ctx.IndexSymbol(i), true)
	return err
}

func arrayProtoIndexOf(args *runtime.Arguments) (runtime.Value, error) {
	ctx := args.Ctx()
	obj, err := thisObject(args)
	if err != nil {
		return runtime.Undefined, err
	}
	n, err := lengthOf(ctx, obj)
	if err != nil {
		return runtime.Undefined, err
	}
	length := float64(n)
	if length == 0 {
		return runtime.NewNumber(-1), nil
	}
	from, err := integerArg(args, 1)
	if err != nil {
		return runtime.Undefined, err
	}
	if from >= length {
		return runtime.NewNumber(-1), nil
	}
	if from < 0 {
		from = math.Max(length+from, 0)
	}
	for k := from; k < length; k++ {
		v, present, err := element(ctx, obj, uint32(k))
		if err != nil {
			return runtime.Undefined, err
		}
		if !present {
			continue
		}
		if runtime.StrictEquals(v, args.At(0)) {
			return runtime.NewNumber(k), nil
		}
	}
	return runtime.NewNumber(-1), nil
}

func arrayProtoLastIndexOf(args *runtime.Arguments) (runtime.Value, error) {
	ctx := args.Ctx()
	obj, err := thisObject(args)
	if err != nil {
		return runtime.Undefined, err
	}
	n, err := lengthOf(ctx, obj)
	if err != nil {
		return runtime.Undefined, err
	}
	length := float64(n)
	if length == 0 {
		return runtime.NewNumber(-1), nil
	}
	from := length - 1
	if args.Len() > 1 {
		if from, err = integerArg(args, 1); err != nil {
			return runtime.Undefined, err
		}
		if from >= 0 {
			from = math.Min(from, length-1)
		} else {
			from = length + from
		}
	}
	for k := from; k >= 0; k-- {
		v, present, err := element(ctx, obj, uint32(k))
		if err != nil {
			return runtime.Undefined, err
		}
		if !present {
			continue
		}
		if runtime.StrictEquals(v, args.At(0)) {
			return runtime.NewNumber(k), nil
		}
	}
	return runtime.NewNumber(-1), nil
}

// iterate calls visit(value, index) for every present element below the
// length read at entry, stopping when visit returns false.
func iterate(args *runtime.Arguments, method string, visit func(fn runtime.Callable, obj runtime.Object, v runtime.Value, k uint32) (bool, error)) (runtime.Object, uint32, error) {
	ctx := args.Ctx()
	obj, err := thisObject(args)
	if err != nil {
		return nil, 0, err
	}
	n, err := lengthOf(ctx, obj)
	if err != nil {
		return nil, 0, err
	}
	fn, err := callbackArg(args, 0, "Array.prototype."+method)
	if err != nil {
		return nil, 0, err
	}
	for k := uint32(0); k < n; k++ {
		v, present, err := element(ctx, obj, k)
		if err != nil {
			return nil, 0, err
		}
		if !present {
			continue
		}
		more, err := visit(fn, obj, v, k)
		if err != nil {
			return nil, 0, err
		}
		if !more {
			break
		}
	}
	return obj, n, nil
}

func callback(args *runtime.Arguments, fn runtime.Callable, obj runtime.Object, v runtime.Value, k uint32) (runtime.Value, error) {
	return fn.Call(runtime.NewCallArguments(args.Ctx(), args.At(1), []runtime.Value{v, runtime.NewNumber(float64(k)), runtime.NewObject(obj)}))
}

func arrayProtoForEach(args *runtime.Arguments) (runtime.Value, error) {
	_, _, err := iterate(args, "forEach", func(fn runtime.Callable, obj runtime.Object, v runtime.Value, k uint32) (bool, error) {
		_, err := callback(args, fn, obj, v, k)
		return true, err
	})
	return runtime.Undefined, err
}

func arrayProtoMap(args *runtime.Arguments) (runtime.Value, error) {
	ctx := args.Ctx()
	out := runtime.NewJSArray(ctx, 0)
	_, n, err := iterate(args, "map", func(fn runtime.Callable, obj runtime.Object, v runtime.Value, k uint32) (bool, error) {
		res, err := callback(args, fn, obj, v, k)
		if err != nil {
			return false, err
		}
		return true, defineIndex(ctx, out, k, res)
	})
	if err != nil {
		return runtime.Undefined, err
	}
	if err := setLength(ctx, out, float64(n)); err != nil {
		return runtime.Undefined, err
	}
	return runtime.NewObject(out), nil
}

func arrayProtoFilter(args *runtime.Arguments) (runtime.Value, error) {
	ctx := args.Ctx()
	var kept []runtime.Value
	_, _, err := iterate(args, "filter", func(fn runtime.Callable, obj runtime.Object, v runtime.Value, k uint32) (bool, error) {
		res, err := callback(args, fn, obj, v, k)
		if err != nil {
			return false, err
		}
		if res.ToBoolean() {
			kept = append(kept, v)
		}
		return true, nil
	})
	if err != nil {
		return runtime.Undefined, err
	}
	return newArray(ctx, kept), nil
}

func arrayProtoSome(args *runtime.Arguments) (runtime.Value, error) {
	found := false
	_, _, err := iterate(args, "some", func(fn runtime.Callable, obj runtime.Object, v runtime.Value, k uint32) (bool, error) {
		res, err := callback(args, fn, obj, v, k)
		if err != nil {
			return false, err
		}
		found = res.ToBoolean()
		return !found, nil
	})
	if err != nil {
		return runtime.Undefined, err
	}
	return runtime.NewBool(found), nil
}

func arrayProtoEvery(args *runtime.Arguments) (runtime.Value, error) {
	all := true
	_, _, err := iterate(args, "every", func(fn runtime.Callable, obj runtime.Object, v runtime.Value, k uint32) (bool, error) {
		res, err := callback(args, fn, obj, v, k)
		if err != nil {
			return false, err
		}
		all = res.ToBoolean()
		return all, nil
	})
	if err != nil {
		return runtime.Undefined, err
	}
	return runtime.NewBool(all), nil
}

func arrayProtoReduce(args *runtime.Arguments) (runtime.Value, error) {
	ctx := args.Ctx()
	acc := args.At(1)
	started := args.Len() > 1
	_, _, err := iterate(args, "reduce", func(fn runtime.Callable, obj runtime.Object, v runtime.Value, k uint32) (bool, error) {
		if !started {
			acc, started = v, true
			return true, nil
		}
		res, err := fn.Call(runtime.NewCallArguments(ctx, runtime.Undefined, []runtime.Value{acc, v, runtime.NewNumber(float64(k)), runtime.NewObject(obj)}))
		if err != nil {
			return false, err
		}
		acc = res
		return true, nil
	})
	if err != nil {
		return runtime.Undefined, err
	}
	if !started {
		return runtime.Undefined, runtime.NewTypeError("reduce of empty array with no initial value")
	}
	return acc, nil
}

// arrayProtoSort sorts present elements stably; undefined values sort
// after all others and holes are moved to the end.
func arrayProtoSort(args *runtime.Arguments) (runtime.Value, error) {
	ctx := args.Ctx()
	obj, err := thisObject(args)
	if err != nil {
		return runtime.Undefined, err
	}
	n, err := lengthOf(ctx, obj)
	if err != nil {
		return runtime.Undefined, err
	}
	comparefn := args.At(0)
	if !comparefn.IsUndefined() && !comparefn.IsCallable() {
		return runtime.Undefined, runtime.NewTypeError("Array.prototype.sort: comparator must be a function")
	}
	var vals []runtime.Value
	undefs := 0
	for k := uint32(0); k < n; k++ {
		v, present, err := element(ctx, obj, k)
		if err != nil {
			return runtime.Undefined, err
		}
		if !present {
			continue
		}
		if v.IsUndefined() {
			undefs++
			continue
		}
		vals = append(vals, v)
	}

	var sortErr error
	slices.SortStableFunc(vals, func(x, y runtime.Value) int {
		if sortErr != nil {
			return 0
		}
		c, err := compareElements(ctx, comparefn, x, y)
		if err != nil {
			sortErr = err
		}
		return c
	})
	if sortErr != nil {
		return runtime.Undefined, sortErr
	}

	var k uint32
	for _, v := range vals {
		if err := putIndex(ctx, obj, k, v); err != nil {
			return runtime.Undefined, err
		}
		k++
	}
	for ; undefs > 0; undefs-- {
		if err := putIndex(ctx, obj, k, runtime.Undefined); err != nil {
			return runtime.Undefined, err
		}
		k++
	}
	for ; k < n; k++ {
		if _, err := obj.Delete(ctx, ctx.IndexSymbol(k), true); err != nil {
			return runtime.Undefined, err
		}
	}
	return runtime.NewObject(obj), nil
}

func compareElements(ctx *runtime.Context, comparefn, x, y runtime.Value) (int, error) {
	if !comparefn.IsUndefined() {
		res, err := runtime.Call(ctx, comparefn, runtime.Undefined, x, y)
		if err != nil {
			return 0, err
		}
		n, err := res.ToNumber(ctx)
		if err != nil {
			return 0, err
		}
		switch {
		case n < 0:
			return -1, nil
		case n > 0:
			return 1, nil
		}
		return 0, nil
	}
	xs, err := x.ToString(ctx)
	if err != nil {
		return 0, err
	}
	ys, err := y.ToString(ctx)
	if err != nil {
		return 0, err
	}
	return slices.Compare(runtime.ToUnits(xs), runtime.ToUnits(ys)), nil
}
