// Package manifest loads the link manifest emitted by the code generator: the
// class table of one compiled unit with each class's TypeID and ancestors, and
// the table of types native strings satisfy. Linking a manifest populates and
// seals a registry.
package manifest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is the decoded form of a link manifest.
type Manifest struct {
	Path    string        `toml:"-"`
	Unit    UnitConfig    `toml:"unit"`
	Classes []ClassConfig `toml:"class"`
	Strings StringsConfig `toml:"strings"`

	hasStrings bool
}

// UnitConfig names the compiled unit.
type UnitConfig struct {
	Name string `toml:"name"`
}

// ClassConfig describes one class or interface.
//
// ID may be omitted; such classes get ids after the highest explicit one, in
// declaration order. Castable lists extra names beyond the closure of Super
// and Implements.
type ClassConfig struct {
	Name       string   `toml:"name"`
	ID         int64    `toml:"id"`
	Kind       string   `toml:"kind"`
	Super      string   `toml:"super"`
	Implements []string `toml:"implements"`
	Castable   []string `toml:"castable"`
}

// StringsConfig lists the types a native string can be cast to.
type StringsConfig struct {
	Castable []string `toml:"castable"`
}

var ErrInvalidManifest = errors.New("invalid manifest")

// LoadFile decodes and validates the manifest at path.
func LoadFile(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	m.Path = path
	if err := m.validate(meta); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &m, nil
}

// Parse decodes and validates a manifest held in memory.
func Parse(data string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.Decode(data, &m)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if err := m.validate(meta); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate(meta toml.MetaData) error {
	if !meta.IsDefined("unit") {
		return fmt.Errorf("missing [unit]: %w", ErrInvalidManifest)
	}
	if !meta.IsDefined("unit", "name") || strings.TrimSpace(m.Unit.Name) == "" {
		return fmt.Errorf("missing [unit].name: %w", ErrInvalidManifest)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q: %w", undecoded[0].String(), ErrInvalidManifest)
	}
	m.hasStrings = meta.IsDefined("strings")
	seen := make(map[string]int, len(m.Classes))
	for i, c := range m.Classes {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return fmt.Errorf("[[class]] #%d: missing name: %w", i+1, ErrInvalidManifest)
		}
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("[[class]] #%d: %q already declared by #%d: %w", i+1, name, prev+1, ErrInvalidManifest)
		}
		seen[name] = i
		if c.ID < 0 {
			return fmt.Errorf("class %q: negative id %d: %w", name, c.ID, ErrInvalidManifest)
		}
		m.Classes[i].Name = name
	}
	return nil
}
