package manifest

import (
	"context"
	"fmt"
	"strconv"

	"fortio.org/safecast"

	"castlink/internal/registry"
	"castlink/internal/trace"
	"castlink/internal/types"
	"castlink/internal/value"
)

type visitState uint8

const (
	unvisited visitState = iota
	visiting
	done
)

type linker struct {
	m       *Manifest
	byName  map[string]int
	ids     []types.TypeID
	kinds   []types.Kind
	state   []visitState
	closure [][]types.TypeID
}

// Link registers every class of m in a new registry for a fresh unit, assigns
// the string cast table and seals the registry.
func Link(ctx context.Context, m *Manifest) (*registry.Registry, error) {
	ctx, span := trace.Start(ctx, trace.ScopeLink, "link")
	defer span.End(m.Unit.Name)

	l := &linker{
		m:       m,
		byName:  make(map[string]int, len(m.Classes)),
		ids:     make([]types.TypeID, len(m.Classes)),
		kinds:   make([]types.Kind, len(m.Classes)),
		state:   make([]visitState, len(m.Classes)),
		closure: make([][]types.TypeID, len(m.Classes)),
	}
	for i, c := range m.Classes {
		l.byName[c.Name] = i
		kind, err := types.ParseKind(c.Kind)
		if err != nil {
			return nil, fmt.Errorf("class %q: %w", c.Name, err)
		}
		l.kinds[i] = kind
	}
	if err := l.assignIDs(); err != nil {
		return nil, err
	}
	for i := range m.Classes {
		if _, err := l.ancestors(i); err != nil {
			return nil, err
		}
	}

	reg := registry.New(value.NewMarker(m.Unit.Name))
	for i, c := range m.Classes {
		extra, err := l.resolve(c.Name, c.Castable)
		if err != nil {
			return nil, err
		}
		ancestors := append(append([]types.TypeID(nil), l.closure[i]...), extra...)
		if _, err := reg.Define(c.Name, l.ids[i], l.kinds[i], ancestors...); err != nil {
			return nil, fmt.Errorf("class %q: %w", c.Name, err)
		}
		trace.Point(ctx, trace.ScopeClass, c.Name, l.ids[i].String(),
			map[string]string{"castable": strconv.Itoa(len(ancestors) + 1)})
	}

	if m.hasStrings {
		ids, err := l.resolve("[strings]", m.Strings.Castable)
		if err != nil {
			return nil, err
		}
		if err := reg.SetStringCastMap(types.NewCastableTypeMap(ids...)); err != nil {
			return nil, err
		}
	}
	reg.Seal()
	span.WithExtra("classes", strconv.Itoa(reg.Len()))
	return reg, nil
}

func (l *linker) assignIDs() error {
	used := make(map[types.TypeID]string, len(l.m.Classes))
	var hi types.TypeID
	for i, c := range l.m.Classes {
		if c.ID == 0 {
			continue
		}
		raw, err := safecast.Conv[uint32](c.ID)
		if err != nil {
			return fmt.Errorf("class %q: id %d: %w", c.Name, c.ID, err)
		}
		id := types.TypeID(raw)
		if err := registry.CheckIDs(id); err != nil {
			return fmt.Errorf("class %q: %w", c.Name, err)
		}
		if other, ok := used[id]; ok {
			return fmt.Errorf("class %q: %s already used by %q: %w", c.Name, id, other, ErrInvalidManifest)
		}
		used[id] = c.Name
		l.ids[i] = id
		hi = max(hi, id)
	}
	for i := range l.m.Classes {
		if l.ids[i] != types.NoTypeID {
			continue
		}
		hi++
		if err := registry.CheckIDs(hi); err != nil {
			return fmt.Errorf("class %q: id space exhausted: %w", l.m.Classes[i].Name, err)
		}
		l.ids[i] = hi
	}
	return nil
}

// ancestors returns the transitive closure of super and implemented types of
// class i, excluding i itself.
func (l *linker) ancestors(i int) ([]types.TypeID, error) {
	switch l.state[i] {
	case done:
		return l.closure[i], nil
	case visiting:
		return nil, fmt.Errorf("class %q: inheritance cycle: %w", l.m.Classes[i].Name, ErrInvalidManifest)
	}
	l.state[i] = visiting
	c := l.m.Classes[i]
	parents := c.Implements
	if c.Super != "" {
		parents = append([]string{c.Super}, parents...)
	}
	seen := make(map[types.TypeID]struct{})
	var out []types.TypeID
	add := func(id types.TypeID) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	for _, name := range parents {
		j, ok := l.byName[name]
		if !ok {
			return nil, fmt.Errorf("class %q: unknown ancestor %q: %w", c.Name, name, ErrInvalidManifest)
		}
		add(l.ids[j])
		up, err := l.ancestors(j)
		if err != nil {
			return nil, err
		}
		for _, id := range up {
			add(id)
		}
	}
	l.closure[i] = out
	l.state[i] = done
	return out, nil
}

func (l *linker) resolve(owner string, names []string) ([]types.TypeID, error) {
	ids := make([]types.TypeID, 0, len(names))
	for _, name := range names {
		j, ok := l.byName[name]
		if !ok {
			return nil, fmt.Errorf("%s: unknown castable type %q: %w", owner, name, ErrInvalidManifest)
		}
		ids = append(ids, l.ids[j])
	}
	return ids, nil
}
