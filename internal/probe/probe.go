// Package probe runs cast scenarios described in TOML files against a linked
// class table. It backs `castlink check` and doubles as an executable
// description of the cast semantics.
package probe

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// File is the decoded form of a probe file.
type File struct {
	Path     string `toml:"-"`
	Manifest string `toml:"manifest"`
	Cases    []Case `toml:"case"`
}

// Case is one scenario: apply Op to Value (and Target) and compare with Expect.
//
// Value syntax: null, undefined, string:<text>, new:<class>, alien:<class>,
// array, array:<class>, foreign:<text>, class:<class>.
// Expect is "ok" or "fail" for checked casts and "true" or "false" for tests.
type Case struct {
	Name   string `toml:"name"`
	Op     string `toml:"op"`
	Value  string `toml:"value"`
	Target string `toml:"target"`
	Expect string `toml:"expect"`
}

var ErrInvalidProbe = errors.New("invalid probe file")

// LoadFile decodes the probe file at path. A relative manifest path is taken
// relative to the probe file.
func LoadFile(path string) (*File, error) {
	var f File
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	f.Path = path
	if !meta.IsDefined("manifest") || strings.TrimSpace(f.Manifest) == "" {
		return nil, fmt.Errorf("%s: missing manifest: %w", path, ErrInvalidProbe)
	}
	if !filepath.IsAbs(f.Manifest) {
		f.Manifest = filepath.Join(filepath.Dir(path), f.Manifest)
	}
	for i, c := range f.Cases {
		if _, ok := ops[c.Op]; !ok {
			return nil, fmt.Errorf("%s: case #%d: unknown op %q: %w", path, i+1, c.Op, ErrInvalidProbe)
		}
		switch c.Expect {
		case "ok", "fail", "true", "false":
		default:
			return nil, fmt.Errorf("%s: case #%d: expect must be ok|fail|true|false, got %q: %w", path, i+1, c.Expect, ErrInvalidProbe)
		}
		if c.Name == "" {
			f.Cases[i].Name = fmt.Sprintf("%s %s %s", c.Op, c.Value, c.Target)
		}
	}
	return &f, nil
}
