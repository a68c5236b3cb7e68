package cast

import (
	"reflect"
	"unicode/utf16"

	"castlink/internal/trace"
	"castlink/internal/value"
)

// CharToString returns the one-character string for a UTF-16 code unit. A
// lone surrogate has no UTF-8 encoding and yields U+FFFD.
func CharToString(c uint16) string {
	if utf16.IsSurrogate(rune(c)) {
		return string(rune(0xFFFD))
	}
	return string(rune(c))
}

// JSEquals compares a and b with host-level == semantics, bypassing any
// equals method of the object model: null equals undefined, strings compare
// by content, objects and arrays by identity, and foreign values by host
// equality when their dynamic type is comparable.
func JSEquals(a, b value.Value) bool {
	if a.IsNull() || b.IsNull() {
		return a.IsNull() && b.IsNull()
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case value.KindObject:
		return a.Obj == b.Obj
	case value.KindArray:
		return a.Arr == b.Arr
	case value.KindString:
		return a.Str == b.Str
	case value.KindForeign:
		return hostEquals(a.Host, b.Host)
	default:
		return false
	}
}

// JSNotEquals is the negation of JSEquals.
func JSNotEquals(a, b value.Value) bool {
	return !JSEquals(a, b)
}

// hostEquals never panics. A comparable struct or array type can still hold
// an incomparable dynamic value in an interface field; such values are
// unequal.
func hostEquals(a, b any) (eq bool) {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

func (en *Engine) traceFailure(e *CastError) {
	if !en.tracer.Enabled() || !en.tracer.Level().ShouldEmit(trace.ScopeCast) {
		return
	}
	en.tracer.Emit(&trace.Event{
		Kind:   trace.KindPoint,
		Scope:  trace.ScopeCast,
		Name:   e.Op,
		Detail: e.Code.String(),
		Extra: map[string]string{
			"category": e.Category.String(),
			"target":   e.Target.String(),
			"value":    e.Value.String(),
		},
	})
}
