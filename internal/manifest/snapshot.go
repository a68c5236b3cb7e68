package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"castlink/internal/registry"
	"castlink/internal/trace"
	"castlink/internal/types"
	"castlink/internal/value"
)

// Current schema version - increment when Snapshot format changes
const snapshotSchemaVersion uint16 = 1

var ErrSnapshotSchema = errors.New("snapshot schema mismatch")

// Snapshot is the linked class table in a form that can be stored and loaded
// without re-resolving the manifest.
type Snapshot struct {
	Schema  uint16
	Unit    string
	Classes []SnapshotClass
	Strings []uint32
}

// SnapshotClass is one linked class with its complete castable set.
type SnapshotClass struct {
	ID       uint32
	Name     string
	Kind     uint8
	Castable []uint32
}

// TakeSnapshot captures the classes and string table of reg.
func TakeSnapshot(reg *registry.Registry) *Snapshot {
	snap := &Snapshot{
		Schema: snapshotSchemaVersion,
		Unit:   reg.Unit().Name(),
	}
	for _, c := range reg.Classes() {
		snap.Classes = append(snap.Classes, SnapshotClass{
			ID:       uint32(c.ID),
			Name:     c.Name,
			Kind:     uint8(c.Kind),
			Castable: idsToRaw(c.Castable.IDs()),
		})
	}
	snap.Strings = idsToRaw(reg.StringCastMap().IDs())
	return snap
}

// Restore builds a sealed registry for a fresh unit from snap.
func (snap *Snapshot) Restore(ctx context.Context) (*registry.Registry, error) {
	if snap.Schema != snapshotSchemaVersion {
		return nil, fmt.Errorf("schema %d, want %d: %w", snap.Schema, snapshotSchemaVersion, ErrSnapshotSchema)
	}
	_, span := trace.Start(ctx, trace.ScopeLink, "restore")
	defer span.End(snap.Unit)

	reg := registry.New(value.NewMarker(snap.Unit))
	for _, c := range snap.Classes {
		id := types.TypeID(c.ID)
		castable := rawToIDs(c.Castable)
		if err := registry.CheckIDs(append([]types.TypeID{id}, castable...)...); err != nil {
			return nil, fmt.Errorf("class %q: %w", c.Name, err)
		}
		// NewClass keeps the map reflexive even if the snapshot omits id.
		class := types.NewClass(id, c.Name, types.Kind(c.Kind), castable...)
		if err := reg.RegisterClass(id, reg.Unit().New(class)); err != nil {
			return nil, fmt.Errorf("class %q: %w", c.Name, err)
		}
	}
	strs := rawToIDs(snap.Strings)
	if err := registry.CheckIDs(strs...); err != nil {
		return nil, fmt.Errorf("[strings]: %w", err)
	}
	if err := reg.SetStringCastMap(types.NewCastableTypeMap(strs...)); err != nil {
		return nil, err
	}
	reg.Seal()
	return reg, nil
}

// WriteSnapshot encodes snap to path, replacing any existing file atomically.
func WriteSnapshot(path string, snap *Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// Already renamed on success.
		_ = os.Remove(f.Name()) //nolint:errcheck
	}()

	if err := msgpack.NewEncoder(f).Encode(snap); err != nil {
		_ = f.Close() //nolint:errcheck
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// ReadSnapshot decodes the snapshot stored at path.
func ReadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var snap Snapshot
	if err := msgpack.NewDecoder(f).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &snap, nil
}

func idsToRaw(ids []types.TypeID) []uint32 {
	out := make([]uint32, len(ids))
	for i, id := range ids {
		out[i] = uint32(id)
	}
	return out
}

func rawToIDs(raw []uint32) []types.TypeID {
	out := make([]types.TypeID, len(raw))
	for i, r := range raw {
		out[i] = types.TypeID(r)
	}
	return out
}
