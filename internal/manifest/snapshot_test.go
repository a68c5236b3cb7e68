package manifest

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"castlink/internal/registry"
	"castlink/internal/types"
)

func TestSnapshotRestoresLinkedTable(t *testing.T) {
	reg := linkZoo(t)
	path := filepath.Join(t.TempDir(), "zoo"+SnapshotExt)
	if err := WriteSnapshot(path, TakeSnapshot(reg)); err != nil {
		t.Fatalf("write: %v", err)
	}

	restored, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	if restored.Unit() == reg.Unit() {
		t.Fatalf("restored registry must describe a fresh unit")
	}
	if restored.Unit().Name() != "zoo" || restored.Len() != reg.Len() || !restored.Sealed() {
		t.Fatalf("restored registry: unit %q, %d classes", restored.Unit().Name(), restored.Len())
	}
	for _, c := range reg.Classes() {
		got, ok := restored.Class(c.ID)
		if !ok || got.Name != c.Name || got.Kind != c.Kind || !slices.Equal(got.Castable.IDs(), c.Castable.IDs()) {
			t.Fatalf("class %s not restored: %+v", c, got)
		}
		if _, ok := restored.Prototype(c.ID); !ok {
			t.Fatalf("class %s has no prototype after restore", c)
		}
	}
	if !slices.Equal(restored.StringCastMap().IDs(), reg.StringCastMap().IDs()) {
		t.Fatalf("string table not restored")
	}
}

func TestSnapshotSchemaMismatch(t *testing.T) {
	snap := TakeSnapshot(linkZoo(t))
	snap.Schema++
	if _, err := snap.Restore(context.Background()); !errors.Is(err, ErrSnapshotSchema) {
		t.Fatalf("expected ErrSnapshotSchema, got %v", err)
	}
}

func TestReadSnapshotMissingFile(t *testing.T) {
	if _, err := ReadSnapshot(filepath.Join(t.TempDir(), "absent.mp")); err == nil {
		t.Fatalf("expected error for missing snapshot")
	}
}

func TestRestoreKeepsClassesReflexive(t *testing.T) {
	snap := &Snapshot{
		Schema:  snapshotSchemaVersion,
		Unit:    "edited",
		Classes: []SnapshotClass{{ID: 1, Name: "Object", Kind: uint8(types.KindClass)}, {ID: 2, Name: "Dog", Kind: uint8(types.KindClass), Castable: []uint32{1}}},
	}
	reg, err := snap.Restore(context.Background())
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	for _, c := range reg.Classes() {
		if !c.CanCastTo(c.ID) {
			t.Fatalf("restored %s is not castable to itself", c)
		}
	}
	dog, _ := reg.Class(2)
	if !dog.CanCastTo(1) {
		t.Fatalf("restored Dog lost its ancestor")
	}
}

func TestRestoreRejectsIDsAboveBound(t *testing.T) {
	cases := map[string]*Snapshot{
		"class id": {Classes: []SnapshotClass{{ID: 4_000_000_000, Name: "Big"}}},
		"castable": {Classes: []SnapshotClass{{ID: 1, Name: "A", Castable: []uint32{4_000_000_000}}}},
		"strings":  {Strings: []uint32{4_000_000_000}},
	}
	for name, snap := range cases {
		snap.Schema = snapshotSchemaVersion
		snap.Unit = "u"
		if _, err := snap.Restore(context.Background()); !errors.Is(err, registry.ErrInvalidTypeID) {
			t.Fatalf("%s: got %v, want ErrInvalidTypeID", name, err)
		}
	}
}
