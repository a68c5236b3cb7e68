package value

import (
	"fmt"
	"strings"

	"castlink/internal/types"
)

// Marker is the type-marker sentinel of one compiled unit. Every object
// constructed by the unit points at the unit's marker; objects built by a
// different unit carry a different marker and are foreign to this one.
type Marker struct {
	name string
}

// NewMarker creates the sentinel for a compiled unit.
func NewMarker(name string) *Marker {
	return &Marker{name: name}
}

// Name returns the unit name the marker was created for.
func (m *Marker) Name() string {
	if m == nil {
		return ""
	}
	return m.name
}

func (m *Marker) String() string {
	return fmt.Sprintf("unit(%s)", m.Name())
}

// New constructs an instance of class tagged with this unit's marker.
func (m *Marker) New(class *types.Class) *Object {
	return &Object{class: class, marker: m}
}

// Object is an instance of a compiled class. Its class and marker are fixed at
// construction; only Fields may change.
type Object struct {
	class  *types.Class
	marker *Marker
	Fields map[string]Value
}

// Class returns the descriptor of the object's class.
func (o *Object) Class() *types.Class {
	if o == nil {
		return nil
	}
	return o.class
}

// Marker returns the sentinel of the unit that constructed the object.
func (o *Object) Marker() *Marker {
	if o == nil {
		return nil
	}
	return o.marker
}

func (o *Object) String() string {
	if o == nil {
		return "null"
	}
	return fmt.Sprintf("%s@%p", o.class, o)
}

// NewArray constructs an array of class (an array type, or nil for an untyped
// host array) holding elems. Arrays carry no unit marker.
func NewArray(class *types.Class, elems ...Value) *Array {
	return &Array{class: class, Elems: elems}
}

// Array is a compiled-language array. Arrays share the host array
// representation and therefore carry no type marker, but they may carry an
// array class with its own castable map.
type Array struct {
	class *types.Class
	Elems []Value
}

// Class returns the array type descriptor, or nil for an untyped host array.
func (a *Array) Class() *types.Class {
	if a == nil {
		return nil
	}
	return a.class
}

// Len returns the number of elements.
func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	return len(a.Elems)
}

func (a *Array) String() string {
	if a == nil {
		return "null"
	}
	parts := make([]string, len(a.Elems))
	for i, e := range a.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
