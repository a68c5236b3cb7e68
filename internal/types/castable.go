package types

import (
	"math/bits"
	"strings"
)

// CastableTypeMap is the fixed set of TypeIDs a class can be cast to: the
// class itself, its superclasses and every implemented interface.
//
// A map is built once by NewCastableTypeMap and then shared by pointer between
// the class descriptor and every instance. It has no mutating methods.
type CastableTypeMap struct {
	words []uint64
	count int
}

// EmptyCastableTypeMap contains no ids.
var EmptyCastableTypeMap = &CastableTypeMap{}

// NewCastableTypeMap builds a map holding ids. Invalid ids (NoTypeID and ids
// above MaxTypeID) are ignored; callers validate them first.
func NewCastableTypeMap(ids ...TypeID) *CastableTypeMap {
	var hi TypeID
	for _, id := range ids {
		if id.Valid() {
			hi = max(hi, id)
		}
	}
	if hi == NoTypeID {
		return EmptyCastableTypeMap
	}
	m := &CastableTypeMap{words: make([]uint64, hi/64+1)}
	for _, id := range ids {
		if !id.Valid() {
			continue
		}
		w, b := id/64, id%64
		if m.words[w]&(1<<b) == 0 {
			m.words[w] |= 1 << b
			m.count++
		}
	}
	return m
}

// Has reports whether id is castable.
func (m *CastableTypeMap) Has(id TypeID) bool {
	if m == nil || id == NoTypeID {
		return false
	}
	w := int(id / 64)
	if w >= len(m.words) {
		return false
	}
	return m.words[w]&(1<<(id%64)) != 0
}

// Len returns the number of ids in the map.
func (m *CastableTypeMap) Len() int {
	if m == nil {
		return 0
	}
	return m.count
}

// IDs returns the ids in ascending order.
func (m *CastableTypeMap) IDs() []TypeID {
	if m == nil {
		return nil
	}
	out := make([]TypeID, 0, m.count)
	for w, word := range m.words {
		for word != 0 {
			b := bits.TrailingZeros64(word)
			out = append(out, TypeID(w*64+b)) //nolint:gosec // G115: bounded by the original TypeID range.
			word &= word - 1
		}
	}
	return out
}

// Union returns a new map holding the ids of m and every other map.
func (m *CastableTypeMap) Union(others ...*CastableTypeMap) *CastableTypeMap {
	ids := m.IDs()
	for _, o := range others {
		ids = append(ids, o.IDs()...)
	}
	return NewCastableTypeMap(ids...)
}

func (m *CastableTypeMap) String() string {
	ids := m.IDs()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
