// Package value implements the tagged Value union the VM operates on,
// the heap object model backing interned strings, and the object registry
// and intern table the VM owns for their lifetime.
package value

import "fmt"

// Kind tags which variant a Value currently holds.
type Kind byte

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindObject
)

// Value is a small tagged union over Nil, Bool, Number, and Object.
// Copying a Value copies the tag and inline payload; for the Object
// variant, it copies the handle, never the referent.
type Value struct {
	kind    Kind
	boolean bool
	number  float64
	object  *Object
}

// Nil is the singular nil value.
var Nil = Value{kind: KindNil}

// Bool wraps a boolean into a Value.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// Number wraps a float64 into a Value.
func Number(n float64) Value { return Value{kind: KindNumber, number: n} }

// Obj wraps a heap object handle into a Value.
func Obj(o *Object) Value { return Value{kind: KindObject, object: o} }

func (v Value) IsNil() bool    { return v.kind == KindNil }
func (v Value) IsBool() bool   { return v.kind == KindBool }
func (v Value) IsNumber() bool { return v.kind == KindNumber }
func (v Value) IsObject() bool { return v.kind == KindObject }

func (v Value) IsString() bool {
	return v.kind == KindObject && v.object.Type == ObjString
}

func (v Value) AsBool() bool      { return v.boolean }
func (v Value) AsNumber() float64 { return v.number }
func (v Value) AsObject() *Object { return v.object }

// AsString returns the underlying StringObject. Callers must check
// IsString first; this panics otherwise, matching the AS_STRING cast
// discipline of the original object model.
func (v Value) AsString() *StringObject {
	if v.object.Type != ObjString {
		panic("value: AsString on a non-string object")
	}
	return &v.object.Str
}

// IsFalsey reports whether v is Nil or Bool(false); every other value,
// including 0 and "", is truthy.
func (v Value) IsFalsey() bool {
	return v.IsNil() || (v.IsBool() && !v.AsBool())
}

// Equal implements values_equal: false across differing tags, bitwise ==
// on numbers (so NaN != NaN), boolean equality, true for Nil, and
// content equality for strings (pointer equality suffices once interned,
// but this does not assume interning on its own).
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNil:
		return true
	case KindBool:
		return a.boolean == b.boolean
	case KindNumber:
		return a.number == b.number
	case KindObject:
		if a.object == b.object {
			return true
		}
		if a.IsString() && b.IsString() {
			as, bs := a.AsString(), b.AsString()
			return as.Chars == bs.Chars
		}
		return false
	default:
		panic(fmt.Sprintf("value: unreachable kind %d", a.kind))
	}
}

// String renders a Value the way `print` and the disassembler do: nil,
// true/false, %g for numbers, and raw string contents.
func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.boolean {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.number)
	case KindObject:
		return v.object.String()
	default:
		panic(fmt.Sprintf("value: unreachable kind %d", v.kind))
	}
}

func formatNumber(n float64) string {
	return fmt.Sprintf("%g", n)
}
