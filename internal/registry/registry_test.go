package registry

import (
	"errors"
	"testing"

	"castlink/internal/types"
	"castlink/internal/value"
)

func TestRegisterAndLookup(t *testing.T) {
	unit := value.NewMarker("app")
	reg := New(unit)
	obj, err := reg.Define("java.lang.Object", 1, types.KindClass)
	if err != nil {
		t.Fatalf("define Object: %v", err)
	}
	if _, err := reg.Define("Animal", 2, types.KindClass, 1); err != nil {
		t.Fatalf("define Animal: %v", err)
	}

	if c, ok := reg.Class(1); !ok || c != obj {
		t.Fatalf("Class(1) = %v, %v", c, ok)
	}
	proto, ok := reg.Prototype(2)
	if !ok || proto.Class().ID != 2 || proto.Marker() != unit {
		t.Fatalf("Prototype(2) = %v, %v", proto, ok)
	}
	if _, ok := reg.Prototype(3); ok {
		t.Fatalf("unexpected prototype for unregistered id")
	}
	if _, ok := reg.Class(types.NoTypeID); ok {
		t.Fatalf("NoTypeID must never resolve")
	}
	if reg.Len() != 2 || len(reg.Classes()) != 2 {
		t.Fatalf("expected 2 classes, got %d", reg.Len())
	}
}

func TestClassByNameNormalizes(t *testing.T) {
	reg := New(value.NewMarker("app"))
	if _, err := reg.Define("Caf\u00e9", 1, types.KindClass); err != nil {
		t.Fatalf("define: %v", err)
	}
	// "e" + combining acute accent (U+0301).
	c, ok := reg.ClassByName("Cafe\u0301")
	if !ok || c.ID != 1 {
		t.Fatalf("ClassByName with decomposed name = %v, %v", c, ok)
	}
}

func TestRegisterClassRejects(t *testing.T) {
	unit := value.NewMarker("app")
	reg := New(unit)
	if _, err := reg.Define("A", 1, types.KindClass); err != nil {
		t.Fatalf("define A: %v", err)
	}

	cases := []struct {
		name  string
		id    types.TypeID
		proto *value.Object
		want  error
	}{
		{"no type id", types.NoTypeID, unit.New(types.NewClass(0, "Z", types.KindClass)), ErrInvalidTypeID},
		{"duplicate id", 1, unit.New(types.NewClass(1, "B", types.KindClass)), ErrDuplicateClass},
		{"duplicate name", 2, unit.New(types.NewClass(2, "A", types.KindClass)), ErrDuplicateName},
		{"other unit", 3, value.NewMarker("other").New(types.NewClass(3, "C", types.KindClass)), ErrForeignPrototype},
		{"id mismatch", 4, unit.New(types.NewClass(5, "D", types.KindClass)), ErrPrototypeMismatch},
		{"nil prototype", 6, nil, ErrPrototypeMismatch},
		{"id above bound", types.MaxTypeID + 1, unit.New(types.NewClass(types.MaxTypeID+1, "E", types.KindClass)), ErrInvalidTypeID},
	}
	for _, tc := range cases {
		if err := reg.RegisterClass(tc.id, tc.proto); !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestSealRejectsRegistration(t *testing.T) {
	reg := New(value.NewMarker("app"))
	reg.Seal()
	if !reg.Sealed() {
		t.Fatalf("expected sealed registry")
	}
	if _, err := reg.Define("A", 1, types.KindClass); !errors.Is(err, ErrSealed) {
		t.Fatalf("expected ErrSealed, got %v", err)
	}
}

func TestStringCastMapSingleAssignment(t *testing.T) {
	reg := New(value.NewMarker("app"))
	m := types.NewCastableTypeMap(1, 9)
	if err := reg.SetStringCastMap(m); err != nil {
		t.Fatalf("first assignment: %v", err)
	}
	if err := reg.SetStringCastMap(types.NewCastableTypeMap(2)); !errors.Is(err, ErrStringTableSet) {
		t.Fatalf("second assignment: got %v, want ErrStringTableSet", err)
	}
	if got := reg.StringCastMap(); got != m || !got.Has(9) {
		t.Fatalf("StringCastMap() = %s, want %s", got, m)
	}
}

func TestStringCastMapLazyDefaultSeals(t *testing.T) {
	reg := New(value.NewMarker("app"))
	if got := reg.StringCastMap(); got.Len() != 0 {
		t.Fatalf("unassigned table must be empty, got %s", got)
	}
	if err := reg.SetStringCastMap(types.NewCastableTypeMap(1)); !errors.Is(err, ErrStringTableSet) {
		t.Fatalf("assignment after first use: got %v, want ErrStringTableSet", err)
	}
}

func TestDefineRejectsIDsAboveBound(t *testing.T) {
	reg := New(value.NewMarker("app"))
	if _, err := reg.Define("Big", 4_000_000_000, types.KindClass); !errors.Is(err, ErrInvalidTypeID) {
		t.Fatalf("huge id: got %v, want ErrInvalidTypeID", err)
	}
	if _, err := reg.Define("Child", 2, types.KindClass, 4_000_000_000); !errors.Is(err, ErrInvalidTypeID) {
		t.Fatalf("huge ancestor: got %v, want ErrInvalidTypeID", err)
	}
	if reg.Len() != 0 || len(reg.classes) != 1 {
		t.Fatalf("rejected classes must not grow the table (len %d)", len(reg.classes))
	}
}
