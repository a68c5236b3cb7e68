package registry

import (
	"castlink/internal/types"
)

// SetStringCastMap assigns the table of TypeIDs native strings can be cast to.
//
// The table is intentionally not initialised when the registry is created:
// the bootstrap assigns it after every class it mentions has an id. It can be
// assigned at most once, and only before the first StringCastMap call.
func (r *Registry) SetStringCastMap(m *types.CastableTypeMap) error {
	if m == nil {
		m = types.EmptyCastableTypeMap
	}
	if !r.stringCasts.CompareAndSwap(nil, m) {
		return ErrStringTableSet
	}
	return nil
}

// StringCastMap returns the string cast table. The first call seals the
// table; if no table was assigned yet, strings are castable to nothing.
func (r *Registry) StringCastMap() *types.CastableTypeMap {
	if m := r.stringCasts.Load(); m != nil {
		return m
	}
	r.stringCasts.CompareAndSwap(nil, types.EmptyCastableTypeMap)
	return r.stringCasts.Load()
}
