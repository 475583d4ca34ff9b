package runtime

// Attribute flags accepted by DataDescriptor and AccessorDescriptor.
const (
	None         = 0
	Writable     = 1 << 0
	Enumerable   = 1 << 1
	Configurable = 1 << 2
)

// presence bits; a field whose bit is clear is "absent".
const (
	hasValue = 1 << iota
	hasGetter
	hasSetter
	hasWritable
	hasEnumerable
	hasConfigurable
)

// PropertyDescriptor is the ES5 Property Descriptor specification type.
// Every field may be individually absent, which is how partial updates
// (Object.defineProperty) are expressed. The zero PropertyDescriptor is the
// empty descriptor returned for missing own properties.
type PropertyDescriptor struct {
	Value  Value
	Getter Value // undefined or a callable
	Setter Value

	attrs   int
	present int
}

// DataDescriptor returns a fully populated data descriptor.
func DataDescriptor(v Value, attrs int) PropertyDescriptor {
	return PropertyDescriptor{
		Value:   v,
		attrs:   attrs & (Writable | Enumerable | Configurable),
		present: hasValue | hasWritable | hasEnumerable | hasConfigurable,
	}
}

// AccessorDescriptor returns a fully populated accessor descriptor. Pass
// Undefined for a missing getter or setter.
func AccessorDescriptor(getter, setter Value, attrs int) PropertyDescriptor {
	return PropertyDescriptor{
		Getter:  getter,
		Setter:  setter,
		attrs:   attrs & (Enumerable | Configurable),
		present: hasGetter | hasSetter | hasEnumerable | hasConfigurable,
	}
}

func (d PropertyDescriptor) IsEmpty() bool { return d.present == 0 }

func (d PropertyDescriptor) IsDataDescriptor() bool {
	return d.present&(hasValue|hasWritable) != 0
}

func (d PropertyDescriptor) IsAccessorDescriptor() bool {
	return d.present&(hasGetter|hasSetter) != 0
}

func (d PropertyDescriptor) IsGenericDescriptor() bool {
	return !d.IsEmpty() && !d.IsDataDescriptor() && !d.IsAccessorDescriptor()
}

func (d PropertyDescriptor) HasValue() bool        { return d.present&hasValue != 0 }
func (d PropertyDescriptor) HasGetter() bool       { return d.present&hasGetter != 0 }
func (d PropertyDescriptor) HasSetter() bool       { return d.present&hasSetter != 0 }
func (d PropertyDescriptor) HasWritable() bool     { return d.present&hasWritable != 0 }
func (d PropertyDescriptor) HasEnumerable() bool   { return d.present&hasEnumerable != 0 }
func (d PropertyDescriptor) HasConfigurable() bool { return d.present&hasConfigurable != 0 }

// IsWritable reports the Writable attribute; absent reads as false.
func (d PropertyDescriptor) IsWritable() bool     { return d.attrs&Writable != 0 }
func (d PropertyDescriptor) IsEnumerable() bool   { return d.attrs&Enumerable != 0 }
func (d PropertyDescriptor) IsConfigurable() bool { return d.attrs&Configurable != 0 }

// Attrs returns the attribute bits that are present and set.
func (d PropertyDescriptor) Attrs() int { return d.attrs }

func (d *PropertyDescriptor) SetValue(v Value) {
	d.Value = v
	d.present |= hasValue
}

func (d *PropertyDescriptor) SetGetter(v Value) {
	d.Getter = v
	d.present |= hasGetter
}

func (d *PropertyDescriptor) SetSetter(v Value) {
	d.Setter = v
	d.present |= hasSetter
}

func (d *PropertyDescriptor) SetWritable(b bool) {
	d.setAttr(Writable, hasWritable, b)
}

func (d *PropertyDescriptor) SetEnumerable(b bool) {
	d.setAttr(Enumerable, hasEnumerable, b)
}

func (d *PropertyDescriptor) SetConfigurable(b bool) {
	d.setAttr(Configurable, hasConfigurable, b)
}

func (d *PropertyDescriptor) setAttr(bit, presence int, b bool) {
	d.present |= presence
	if b {
		d.attrs |= bit
	} else {
		d.attrs &^= bit
	}
}

// equivalent reports whether every field present in d is present in cur
// with the same value (ES5 8.12.9 step 6).
func (d PropertyDescriptor) equivalent(cur PropertyDescriptor) bool {
	if d.present&^cur.present != 0 {
		return false
	}
	if d.HasValue() && !SameValue(d.Value, cur.Value) {
		return false
	}
	if d.HasGetter() && !SameValue(d.Getter, cur.Getter) {
		return false
	}
	if d.HasSetter() && !SameValue(d.Setter, cur.Setter) {
		return false
	}
	mask := 0
	if d.HasWritable() {
		mask |= Writable
	}
	if d.HasEnumerable() {
		mask |= Enumerable
	}
	if d.HasConfigurable() {
		mask |= Configurable
	}
	return d.attrs&mask == cur.attrs&mask
}

// merge applies the present fields of d onto cur, converting between data
// and accessor shapes when d asks for the other kind (ES5 8.12.9 steps 9-12).
func (d PropertyDescriptor) merge(cur PropertyDescriptor) PropertyDescriptor {
	res := cur
	if cur.IsDataDescriptor() && d.IsAccessorDescriptor() {
		res = AccessorDescriptor(Undefined, Undefined, cur.attrs&(Enumerable|Configurable))
	} else if cur.IsAccessorDescriptor() && d.IsDataDescriptor() {
		res = DataDescriptor(Undefined, cur.attrs&(Enumerable|Configurable))
	}
	if d.HasValue() {
		res.Value = d.Value
	}
	if d.HasGetter() {
		res.Getter = d.Getter
	}
	if d.HasSetter() {
		res.Setter = d.Setter
	}
	if d.HasWritable() && res.IsDataDescriptor() {
		res.SetWritable(d.IsWritable())
	}
	if d.HasEnumerable() {
		res.SetEnumerable(d.IsEnumerable())
	}
	if d.HasConfigurable() {
		res.SetConfigurable(d.IsConfigurable())
	}
	return res
}

// complete fills absent fields with their defaults for a newly created
// property (ES5 8.12.9 step 4).
func (d PropertyDescriptor) complete() PropertyDescriptor {
	if d.IsAccessorDescriptor() {
		res := AccessorDescriptor(Undefined, Undefined, d.attrs)
		if d.HasGetter() {
			res.Getter = d.Getter
		}
		if d.HasSetter() {
			res.Setter = d.Setter
		}
		return res
	}
	res := DataDescriptor(Undefined, d.attrs)
	if d.HasValue() {
		res.Value = d.Value
	}
	return res
}
