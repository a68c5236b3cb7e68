package manifest

import (
	"context"
	"path/filepath"

	"castlink/internal/registry"
)

// SnapshotExt marks files holding an encoded Snapshot instead of TOML.
const SnapshotExt = ".mp"

// Open links the manifest or restores the snapshot at path, picking the
// format from the file extension.
func Open(ctx context.Context, path string) (*registry.Registry, error) {
	if filepath.Ext(path) == SnapshotExt {
		snap, err := ReadSnapshot(path)
		if err != nil {
			return nil, err
		}
		return snap.Restore(ctx)
	}
	m, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Link(ctx, m)
}
