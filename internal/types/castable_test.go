package types

import (
	"slices"
	"testing"
)

func TestCastableTypeMapMembership(t *testing.T) {
	m := NewCastableTypeMap(3, 64, 1, 3, NoTypeID, 130)
	for _, id := range []TypeID{1, 3, 64, 130} {
		if !m.Has(id) {
			t.Fatalf("expected %s in %s", id, m)
		}
	}
	for _, id := range []TypeID{NoTypeID, 2, 63, 65, 129, 131, 10_000} {
		if m.Has(id) {
			t.Fatalf("unexpected %s in %s", id, m)
		}
	}
	if m.Len() != 4 {
		t.Fatalf("expected 4 ids, got %d", m.Len())
	}
	if got, want := m.IDs(), []TypeID{1, 3, 64, 130}; !slices.Equal(got, want) {
		t.Fatalf("IDs() = %v, want %v", got, want)
	}
}

func TestCastableTypeMapEmpty(t *testing.T) {
	var nilMap *CastableTypeMap
	for _, m := range []*CastableTypeMap{nilMap, EmptyCastableTypeMap, NewCastableTypeMap(), NewCastableTypeMap(NoTypeID)} {
		if m.Has(1) || m.Len() != 0 || len(m.IDs()) != 0 {
			t.Fatalf("expected empty map, got %s", m)
		}
	}
}

func TestCastableTypeMapIgnoresIDsAboveBound(t *testing.T) {
	m := NewCastableTypeMap(1, MaxTypeID+1, 4_000_000_000)
	if m.Len() != 1 || !m.Has(1) || m.Has(4_000_000_000) {
		t.Fatalf("unexpected map %s", m)
	}
	if len(m.words) != 1 {
		t.Fatalf("map sized by an out-of-range id: %d words", len(m.words))
	}
}

func TestTypeIDValid(t *testing.T) {
	for id, want := range map[TypeID]bool{NoTypeID: false, 1: true, MaxTypeID: true, MaxTypeID + 1: false, 4_000_000_000: false} {
		if id.Valid() != want {
			t.Fatalf("%s.Valid() = %v, want %v", id, !want, want)
		}
	}
}

func TestCastableTypeMapUnion(t *testing.T) {
	a := NewCastableTypeMap(1, 2)
	b := NewCastableTypeMap(2, 200)
	u := a.Union(b, nil)
	if got, want := u.IDs(), []TypeID{1, 2, 200}; !slices.Equal(got, want) {
		t.Fatalf("Union IDs() = %v, want %v", got, want)
	}
	if a.Has(200) {
		t.Fatalf("union must not modify its receiver")
	}
}

func TestNewClassIsReflexive(t *testing.T) {
	c := NewClass(7, "Dog", KindClass, 1, 4)
	for _, id := range []TypeID{7, 1, 4} {
		if !c.CanCastTo(id) {
			t.Fatalf("%s should be castable to %s", c, id)
		}
	}
	if c.CanCastTo(5) {
		t.Fatalf("%s should not be castable to type#5", c)
	}
	var nilClass *Class
	if nilClass.CanCastTo(7) {
		t.Fatalf("nil class is castable to nothing")
	}
}

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{"": KindClass, "class": KindClass, "interface": KindInterface, "array": KindArray}
	for in, want := range cases {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Fatalf("ParseKind(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseKind("struct"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}
