// Package registry holds the class descriptors of one compiled unit and the
// prototype instance of each class.
//
// A registry is populated once by the bootstrap code emitted by the code
// generator and is read-only afterwards. Lookups take no locks and must not
// race with registration.
package registry

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"

	"castlink/internal/types"
	"castlink/internal/value"
)

var (
	ErrInvalidTypeID     = errors.New("invalid type id")
	ErrDuplicateClass    = errors.New("class already registered")
	ErrDuplicateName     = errors.New("class name already registered")
	ErrForeignPrototype  = errors.New("prototype belongs to another unit")
	ErrPrototypeMismatch = errors.New("prototype class does not match type id")
	ErrSealed            = errors.New("registry is sealed")
	ErrStringTableSet    = errors.New("string cast table already assigned")
)

// Registry maps TypeIDs to class descriptors and prototypes.
type Registry struct {
	unit *value.Marker

	mu         sync.Mutex
	sealed     atomic.Bool
	classes    []*types.Class
	prototypes []*value.Object
	byName     map[string]types.TypeID

	stringCasts atomic.Pointer[types.CastableTypeMap]
}

// New creates an empty registry for unit.
func New(unit *value.Marker) *Registry {
	return &Registry{
		unit:       unit,
		classes:    make([]*types.Class, 1, 64), // reserve 0 as invalid sentinel
		prototypes: make([]*value.Object, 1, 64),
		byName:     make(map[string]types.TypeID, 64),
	}
}

// Unit returns the marker of the unit this registry describes.
func (r *Registry) Unit() *value.Marker {
	return r.unit
}

// RegisterClass associates id with the prototype instance of its class. Ids
// must be in 1..types.MaxTypeID.
func (r *Registry) RegisterClass(id types.TypeID, prototype *value.Object) error {
	if !id.Valid() {
		return fmt.Errorf("%s: %w", id, ErrInvalidTypeID)
	}
	if prototype == nil || prototype.Class() == nil {
		return fmt.Errorf("%s: nil prototype: %w", id, ErrPrototypeMismatch)
	}
	if prototype.Marker() != r.unit {
		return fmt.Errorf("%s: %w", id, ErrForeignPrototype)
	}
	class := prototype.Class()
	if class.ID != id {
		return fmt.Errorf("%s: prototype is %s: %w", id, class.ID, ErrPrototypeMismatch)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed.Load() {
		return ErrSealed
	}
	if _, ok := r.lookup(id); ok {
		return fmt.Errorf("%s: %w", id, ErrDuplicateClass)
	}
	name := normalizeName(class.Name)
	if name != "" {
		if other, ok := r.byName[name]; ok {
			return fmt.Errorf("%q (%s, %s): %w", class.Name, other, id, ErrDuplicateName)
		}
	}
	r.grow(id)
	r.classes[id] = class
	r.prototypes[id] = prototype
	if name != "" {
		r.byName[name] = id
	}
	return nil
}

// Define builds a class descriptor whose castable map holds id and ancestors,
// constructs its prototype and registers it.
func (r *Registry) Define(name string, id types.TypeID, kind types.Kind, ancestors ...types.TypeID) (*types.Class, error) {
	if err := CheckIDs(append([]types.TypeID{id}, ancestors...)...); err != nil {
		return nil, err
	}
	class := types.NewClass(id, name, kind, ancestors...)
	if err := r.RegisterClass(id, r.unit.New(class)); err != nil {
		return nil, err
	}
	return class, nil
}

// Seal rejects any further registration.
func (r *Registry) Seal() {
	r.sealed.Store(true)
}

// Sealed reports whether Seal was called.
func (r *Registry) Sealed() bool {
	return r.sealed.Load()
}

// Class returns the descriptor registered for id.
func (r *Registry) Class(id types.TypeID) (*types.Class, bool) {
	return r.lookup(id)
}

// Prototype returns the representative instance registered for id.
func (r *Registry) Prototype(id types.TypeID) (*value.Object, bool) {
	if id == types.NoTypeID || int(id) >= len(r.prototypes) {
		return nil, false
	}
	p := r.prototypes[id]
	return p, p != nil
}

// ClassByName finds a class by its source name.
func (r *Registry) ClassByName(name string) (*types.Class, bool) {
	id, ok := r.byName[normalizeName(name)]
	if !ok {
		return nil, false
	}
	return r.lookup(id)
}

// Classes returns every registered descriptor in TypeID order.
func (r *Registry) Classes() []*types.Class {
	out := make([]*types.Class, 0, len(r.byName))
	for _, c := range r.classes {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the number of registered classes.
func (r *Registry) Len() int {
	n := 0
	for _, c := range r.classes {
		if c != nil {
			n++
		}
	}
	return n
}

func (r *Registry) lookup(id types.TypeID) (*types.Class, bool) {
	if id == types.NoTypeID || int(id) >= len(r.classes) {
		return nil, false
	}
	c := r.classes[id]
	return c, c != nil
}

func (r *Registry) grow(id types.TypeID) {
	need, err := safecast.Conv[int](uint32(id))
	if err != nil {
		panic(fmt.Errorf("type id overflow: %w", err))
	}
	need++
	for len(r.classes) < need {
		r.classes = append(r.classes, nil)
		r.prototypes = append(r.prototypes, nil)
	}
}

// CheckIDs returns ErrInvalidTypeID for the first id outside 1..types.MaxTypeID.
func CheckIDs(ids ...types.TypeID) error {
	for _, id := range ids {
		if !id.Valid() {
			return fmt.Errorf("%s (max %d): %w", id, uint32(types.MaxTypeID), ErrInvalidTypeID)
		}
	}
	return nil
}

func normalizeName(name string) string {
	return norm.NFC.String(name)
}
