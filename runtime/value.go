package runtime

import (
	"math"
)

// ValueType represents the type of a JavaScript value.
type ValueType int

const (
	TypeUndefined ValueType = iota
	TypeNull
	TypeBoolean
	TypeNumber
	TypeString
	TypeObject
)

func (t ValueType) String() string {
	switch t {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "object" // typeof null === "object" in JS
	case TypeBoolean:
		return "boolean"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value represents a JavaScript value. The zero Value is undefined.
type Value struct {
	Type   ValueType
	Bool   bool
	Number float64
	// Str holds code units as generalized UTF-8; see ToUnits.
	Str    string
	Object Object
}

var (
	Undefined = Value{}
	Null      = Value{Type: TypeNull}
	True      = Value{Type: TypeBoolean, Bool: true}
	False     = Value{Type: TypeBoolean, Bool: false}
	NaN       = Value{Type: TypeNumber, Number: math.NaN()}
	PosInf    = Value{Type: TypeNumber, Number: math.Inf(1)}
	NegInf    = Value{Type: TypeNumber, Number: math.Inf(-1)}
	Zero      = Value{Type: TypeNumber, Number: 0}
)

func NewNumber(n float64) Value {
	return Value{Type: TypeNumber, Number: n}
}

// NewString makes a string value. s is in the generalized UTF-8 form
// described in units.go.
func NewString(s string) Value {
	return Value{Type: TypeString, Str: canonicalString(s)}
}

func NewBool(b bool) Value {
	if b {
		return True
	}
	return False
}

// NewObject wraps obj; a nil obj yields null.
func NewObject(obj Object) Value {
	if obj == nil {
		return Null
	}
	return Value{Type: TypeObject, Object: obj}
}

func (v Value) IsUndefined() bool { return v.Type == TypeUndefined }
func (v Value) IsNull() bool      { return v.Type == TypeNull }
func (v Value) IsNullish() bool   { return v.Type == TypeUndefined || v.Type == TypeNull }
func (v Value) IsBoolean() bool   { return v.Type == TypeBoolean }
func (v Value) IsNumber() bool    { return v.Type == TypeNumber }
func (v Value) IsString() bool    { return v.Type == TypeString }
func (v Value) IsObject() bool    { return v.Type == TypeObject }
func (v Value) IsPrimitive() bool { return v.Type != TypeObject }

// IsCallable reports whether v is an object with a [[Call]] method.
func (v Value) IsCallable() bool {
	_, ok := v.Callable()
	return ok
}

// Callable returns the function object held by v.
func (v Value) Callable() (Callable, bool) {
	if v.Type != TypeObject {
		return nil, false
	}
	fn, ok := v.Object.(Callable)
	return fn, ok
}

// ToBoolean implements the ECMAScript ToBoolean abstract operation.
func (v Value) ToBoolean() bool {
	switch v.Type {
	case TypeUndefined, TypeNull:
		return false
	case TypeBoolean:
		return v.Bool
	case TypeNumber:
		return v.Number != 0 && !math.IsNaN(v.Number)
	case TypeString:
		return len(v.Str) > 0
	case TypeObject:
		return true
	default:
		return false
	}
}

// String renders primitives as ToString does and objects by class, without
// calling back into script code. It is meant for diagnostics.
func (v Value) String() string {
	switch v.Type {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "null"
	case TypeBoolean:
		if v.Bool {
			return "true"
		}
		return "false"
	case TypeNumber:
		return NumberToString(v.Number)
	case TypeString:
		return v.Str
	case TypeObject:
		if e, ok := v.Object.(*JSErrorObject); ok {
			return e.describe()
		}
		return "[object " + v.Object.Class() + "]"
	default:
		return "undefined"
	}
}

// SameValue implements the ES5 9.12 SameValue algorithm.
func SameValue(a, b Value) bool {
	if a.Type != b.Type {
		return false
	}
	if a.Type == TypeNumber {
		if math.IsNaN(a.Number) && math.IsNaN(b.Number) {
			return true
		}
		if a.Number == 0 && b.Number == 0 {
			return math.Signbit(a.Number) == math.Signbit(b.Number)
		}
		return a.Number == b.Number
	}
	return StrictEquals(a, b)
}

// StrictEquals implements === comparison.
func StrictEquals(a, b Value) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case TypeUndefined, TypeNull:
		return true
	case TypeBoolean:
		return a.Bool == b.Bool
	case TypeNumber:
		return a.Number == b.Number
	case TypeString:
		return a.Str == b.Str
	case TypeObject:
		return a.Object == b.Object
	default:
		return false
	}
}
