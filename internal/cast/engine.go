// Package cast implements checked casts and instance tests for compiled code.
//
// All operations are pure functions of the operand's nullness, its category
// and the castable tables of the registry. None of them mutate state, so an
// Engine may be shared by any number of goroutines once bootstrap is done.
package cast

import (
	"castlink/internal/registry"
	"castlink/internal/trace"
	"castlink/internal/types"
	"castlink/internal/value"
)

// Operator names used in CastError.Op.
const (
	OpDynamicCast         = "dynamicCast"
	OpDynamicCastAllowJso = "dynamicCastAllowJso"
	OpDynamicCastJso      = "dynamicCastJso"
	OpCastUnlessNull      = "throwClassCastExceptionUnlessNull"
)

// Engine evaluates casts against one registry.
type Engine struct {
	reg    *registry.Registry
	unit   *value.Marker
	tracer trace.Tracer
}

// New creates an engine over reg.
func New(reg *registry.Registry) *Engine {
	return &Engine{reg: reg, unit: reg.Unit(), tracer: trace.Nop}
}

// WithTracer returns a copy of the engine that reports failed casts to t.
func (en *Engine) WithTracer(t trace.Tracer) *Engine {
	if t == nil {
		t = trace.Nop
	}
	cp := *en
	cp.tracer = t
	return &cp
}

// Registry returns the registry the engine reads.
func (en *Engine) Registry() *registry.Registry {
	return en.reg
}

// CanCast reports whether v can be cast to dst. Values carrying a class
// (objects and typed arrays) are checked against the class's castable map,
// native strings against the shared string table. Everything else fails.
//
// Typed arrays and objects of another unit are foreign to this unit, yet
// they still answer through the castable map they carry.
func (en *Engine) CanCast(v value.Value, dst types.TypeID) bool {
	if m := v.Castable(); m != nil {
		return m.Has(dst)
	}
	if value.IsNativeString(v) {
		return en.reg.StringCastMap().Has(dst)
	}
	return false
}

// CanCastClass reports whether instances of src can be cast to dst. Unknown
// classes are never castable.
func (en *Engine) CanCastClass(src, dst types.TypeID) bool {
	proto, ok := en.reg.Prototype(src)
	if !ok {
		return false
	}
	if _, ok := en.reg.Class(dst); !ok {
		return false
	}
	return en.CanCast(value.FromObject(proto), dst)
}

// DynamicCast returns v if it is null or castable to dst.
func (en *Engine) DynamicCast(v value.Value, dst types.TypeID) (value.Value, *CastError) {
	if v.IsNotNull() && !en.CanCast(v, dst) {
		return value.Value{}, en.fail(FailNotCastable, OpDynamicCast, v, dst)
	}
	return v, nil
}

// DynamicCastAllowJso is DynamicCast that lets foreign values through
// unchecked: they carry no metadata that could contradict the cast.
func (en *Engine) DynamicCastAllowJso(v value.Value, dst types.TypeID) (value.Value, *CastError) {
	if v.IsNotNull() && !value.IsJavaScriptObject(v, en.unit) && !en.CanCast(v, dst) {
		return value.Value{}, en.fail(FailNotCastable, OpDynamicCastAllowJso, v, dst)
	}
	return v, nil
}

// DynamicCastJso returns v unless it belongs to the compiled object model.
func (en *Engine) DynamicCastJso(v value.Value) (value.Value, *CastError) {
	if v.IsNotNull() && value.IsJavaObject(v, en.unit) {
		return value.Value{}, en.fail(FailNotForeign, OpDynamicCastJso, v, types.NoTypeID)
	}
	return v, nil
}

// ThrowClassCastExceptionUnlessNull checks a cast the compiler proved can only
// succeed for null.
func (en *Engine) ThrowClassCastExceptionUnlessNull(v value.Value) (value.Value, *CastError) {
	if v.IsNotNull() {
		return value.Value{}, en.fail(FailStaticallyFalse, OpCastUnlessNull, v, types.NoTypeID)
	}
	return v, nil
}

// InstanceOf reports whether v is non-null and castable to dst.
func (en *Engine) InstanceOf(v value.Value, dst types.TypeID) bool {
	return v.IsNotNull() && en.CanCast(v, dst)
}

// InstanceOfJso reports whether v is a non-null foreign value.
func (en *Engine) InstanceOfJso(v value.Value) bool {
	return v.IsNotNull() && value.IsJavaScriptObject(v, en.unit)
}

// InstanceOfOrJso reports whether v is non-null and either foreign or
// castable to dst.
func (en *Engine) InstanceOfOrJso(v value.Value, dst types.TypeID) bool {
	return v.IsNotNull() && (value.IsJavaScriptObject(v, en.unit) || en.CanCast(v, dst))
}

// IsJavaObject reports whether v is a regular object of this unit or a string.
func (en *Engine) IsJavaObject(v value.Value) bool {
	return value.IsJavaObject(v, en.unit)
}

// IsJavaScriptObject reports whether v is foreign to this unit.
func (en *Engine) IsJavaScriptObject(v value.Value) bool {
	return value.IsJavaScriptObject(v, en.unit)
}

// IsJavaScriptObjectOrString reports whether v is foreign or a native string.
func (en *Engine) IsJavaScriptObjectOrString(v value.Value) bool {
	return value.IsJavaScriptObjectOrString(v, en.unit)
}

// Classify returns the category of v for this unit.
func (en *Engine) Classify(v value.Value) value.Category {
	return value.Classify(v, en.unit)
}
