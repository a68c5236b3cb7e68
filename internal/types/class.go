package types

// Class describes one class or interface of the compiled unit. Descriptors are
// created during registration and never change afterwards.
type Class struct {
	ID       TypeID
	Name     string
	Kind     Kind
	Castable *CastableTypeMap
}

// NewClass builds a descriptor whose castable map contains id plus ancestors.
func NewClass(id TypeID, name string, kind Kind, ancestors ...TypeID) *Class {
	ids := make([]TypeID, 0, len(ancestors)+1)
	ids = append(ids, id)
	ids = append(ids, ancestors...)
	return &Class{
		ID:       id,
		Name:     name,
		Kind:     kind,
		Castable: NewCastableTypeMap(ids...),
	}
}

// CanCastTo reports whether instances of c satisfy dst.
func (c *Class) CanCastTo(dst TypeID) bool {
	return c != nil && c.Castable.Has(dst)
}

func (c *Class) String() string {
	if c == nil {
		return "<nil class>"
	}
	if c.Name == "" {
		return c.ID.String()
	}
	return c.Name
}
