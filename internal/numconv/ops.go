package numconv

import (
	"fmt"
	"strings"
)

// Op names one conversion.
type Op uint8

const (
	OpInvalid Op = iota
	OpNarrowInt
	OpNarrowShort
	OpNarrowChar
	OpNarrowByte
	OpRoundInt
	OpRoundShort
	OpRoundChar
	OpRoundByte
)

var opNames = [...]string{
	OpInvalid:     "invalid",
	OpNarrowInt:   "narrow_int",
	OpNarrowShort: "narrow_short",
	OpNarrowChar:  "narrow_char",
	OpNarrowByte:  "narrow_byte",
	OpRoundInt:    "round_int",
	OpRoundShort:  "round_short",
	OpRoundChar:   "round_char",
	OpRoundByte:   "round_byte",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", op)
}

// ParseOp accepts "narrow_int", "narrow-int" or "narrowInt" spellings.
func ParseOp(s string) (Op, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(s))
	for i, name := range opNames {
		if i == int(OpInvalid) {
			continue
		}
		if strings.ReplaceAll(name, "_", "") == key {
			return Op(i), nil //nolint:gosec // G115: index of a short fixed table.
		}
	}
	return OpInvalid, fmt.Errorf("unknown conversion %q", s)
}

// Ops lists every conversion in declaration order.
func Ops() []Op {
	return []Op{
		OpNarrowInt, OpNarrowShort, OpNarrowChar, OpNarrowByte,
		OpRoundInt, OpRoundShort, OpRoundChar, OpRoundByte,
	}
}

// Apply runs op on x and widens the result to int64.
func Apply(op Op, x float64) (int64, error) {
	switch op {
	case OpNarrowInt:
		return int64(NarrowInt(x)), nil
	case OpNarrowShort:
		return int64(NarrowShort(x)), nil
	case OpNarrowChar:
		return int64(NarrowChar(x)), nil
	case OpNarrowByte:
		return int64(NarrowByte(x)), nil
	case OpRoundInt:
		return int64(RoundInt(x)), nil
	case OpRoundShort:
		return int64(RoundShort(x)), nil
	case OpRoundChar:
		return int64(RoundChar(x)), nil
	case OpRoundByte:
		return int64(RoundByte(x)), nil
	default:
		return 0, fmt.Errorf("unknown conversion %s", op)
	}
}
