package cast

import (
	"errors"
	"fmt"

	"castlink/internal/types"
	"castlink/internal/value"
)

// ErrCastFailure matches every *CastError via errors.Is.
var ErrCastFailure = errors.New("class cast failure")

// FailureCode identifies why a checked cast failed.
type FailureCode int

// Stable failure codes - do not change values.
const (
	FailNotCastable     FailureCode = 2001 // CC2001: value is not an instance of the target
	FailNotForeign      FailureCode = 2002 // CC2002: compiled value cast to a foreign-only type
	FailStaticallyFalse FailureCode = 2003 // CC2003: non-null operand of a cast proven to fail
)

// String returns the code as "CC2001" format.
func (c FailureCode) String() string {
	return fmt.Sprintf("CC%d", c)
}

// CastError is the single error kind raised by checked casts.
type CastError struct {
	Code     FailureCode
	Op       string
	Target   types.TypeID // NoTypeID for casts without a destination id
	Category value.Category
	Value    value.Value
}

// Error implements the error interface.
func (e *CastError) Error() string {
	if e.Target == types.NoTypeID {
		return fmt.Sprintf("class cast %s: %s: %s value %s", e.Code, e.Op, e.Category, e.Value)
	}
	return fmt.Sprintf("class cast %s: %s: %s value %s is not %s", e.Code, e.Op, e.Category, e.Value, e.Target)
}

// Is reports whether target is ErrCastFailure.
func (e *CastError) Is(target error) bool {
	return target == ErrCastFailure
}

func (en *Engine) fail(code FailureCode, op string, v value.Value, target types.TypeID) *CastError {
	e := &CastError{
		Code:     code,
		Op:       op,
		Target:   target,
		Category: value.Classify(v, en.unit),
		Value:    v,
	}
	en.traceFailure(e)
	return e
}
