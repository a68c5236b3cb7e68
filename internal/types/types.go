package types

import "fmt"

// TypeID uniquely identifies a class or interface inside a compiled unit.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// MaxTypeID is the largest id a unit may use. Class tables and castable maps
// are dense in the id, so ids must stay small.
const MaxTypeID TypeID = 1 << 20

// Valid reports whether id names a type: neither NoTypeID nor above MaxTypeID.
func (id TypeID) Valid() bool {
	return id != NoTypeID && id <= MaxTypeID
}

// String renders the id as "type#N".
func (id TypeID) String() string {
	if id == NoTypeID {
		return "type#none"
	}
	return fmt.Sprintf("type#%d", uint32(id))
}

// Kind distinguishes classes from interfaces. It is informational only: the
// cast engine treats every TypeID the same way.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindClass
	KindInterface
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindClass:
		return "class"
	case KindInterface:
		return "interface"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// ParseKind converts a manifest spelling into a Kind. The empty string means class.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "", "class":
		return KindClass, nil
	case "interface":
		return KindInterface, nil
	case "array":
		return KindArray, nil
	default:
		return KindInvalid, fmt.Errorf("invalid type kind: %q (expected: class|interface|array)", s)
	}
}
