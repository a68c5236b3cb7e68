// Package value models runtime values seen by compiled code as an explicit
// tagged variant. Every value is tagged where it enters the system (object
// construction, host interop, deserialization) so the cast engine never has
// to probe a value's structure.
package value

import (
	"fmt"
	"strconv"

	"castlink/internal/types"
)

// Kind identifies the representation of a Value.
type Kind uint8

const (
	// KindUndefined is the zero Value; the host's "no value".
	KindUndefined Kind = iota
	// KindNull is the null reference.
	KindNull
	// KindObject is an instance created by a compiled constructor.
	KindObject
	// KindArray is a compiled-language array in host array representation.
	KindArray
	// KindString is a native host string.
	KindString
	// KindForeign is any host value with no compiled class attached.
	KindForeign
)

// String returns a human-readable name for the value kind.
func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindForeign:
		return "foreign"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Value is a runtime value.
type Value struct {
	Kind Kind
	Obj  *Object // KindObject
	Arr  *Array  // KindArray
	Str  string  // KindString
	Host any     // KindForeign
}

var (
	// Undefined is the zero value.
	Undefined = Value{}
	// Null is the null reference.
	Null = Value{Kind: KindNull}
)

// String wraps a native string.
func String(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// Foreign wraps a host value produced outside the compiled program.
func Foreign(host any) Value {
	return Value{Kind: KindForeign, Host: host}
}

// FromObject wraps obj; a nil object is Null.
func FromObject(obj *Object) Value {
	if obj == nil {
		return Null
	}
	return Value{Kind: KindObject, Obj: obj}
}

// FromArray wraps arr; a nil array is Null.
func FromArray(arr *Array) Value {
	if arr == nil {
		return Null
	}
	return Value{Kind: KindArray, Arr: arr}
}

// FromHost tags an arbitrary host value at the interop boundary. Go strings
// become native strings, runtime objects and arrays keep their tags, nil
// becomes Null and everything else is foreign.
func FromHost(host any) Value {
	switch h := host.(type) {
	case nil:
		return Null
	case Value:
		return h
	case string:
		return String(h)
	case *Object:
		return FromObject(h)
	case *Array:
		return FromArray(h)
	default:
		return Foreign(host)
	}
}

// IsNull reports whether v is null or undefined.
//
// Do not use this as a truthiness test on strings: the empty string is not null.
func (v Value) IsNull() bool {
	return v.Kind == KindUndefined || v.Kind == KindNull
}

// IsNotNull is the negation of IsNull.
func (v Value) IsNotNull() bool {
	return !v.IsNull()
}

// MaskUndefined folds undefined into null.
func MaskUndefined(v Value) Value {
	if v.Kind == KindUndefined {
		return Null
	}
	return v
}

// IsArray reports whether v uses the host array representation.
func (v Value) IsArray() bool {
	return v.Kind == KindArray
}

// Castable returns the castable map attached to v through its class, or nil
// when v carries no class metadata (strings, foreign values, null).
func (v Value) Castable() *types.CastableTypeMap {
	switch v.Kind {
	case KindObject:
		if v.Obj != nil && v.Obj.class != nil {
			return v.Obj.class.Castable
		}
	case KindArray:
		if v.Arr != nil && v.Arr.class != nil {
			return v.Arr.class.Castable
		}
	}
	return nil
}

func (v Value) String() string {
	switch v.Kind {
	case KindUndefined, KindNull:
		return v.Kind.String()
	case KindObject:
		return v.Obj.String()
	case KindArray:
		return v.Arr.String()
	case KindString:
		return strconv.Quote(v.Str)
	case KindForeign:
		return fmt.Sprintf("foreign(%v)", v.Host)
	default:
		return v.Kind.String()
	}
}
