// Package numconv implements the narrowing conversions from double to the
// integral types byte, short, char and int.
//
// The Narrow* family truncates toward zero and keeps the low bits with
// two's-complement wraparound. The Round* family saturates into the int range
// first and only then narrows, which is what the source language's cast
// operators require for floating operands.
package numconv

import "math"

const two32 = 1 << 32

// NarrowInt truncates x toward zero and keeps the low 32 bits. NaN and the
// infinities become 0.
func NarrowInt(x float64) int32 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	t := math.Trunc(x)
	if t >= math.MinInt64 && t < math.MaxInt64 {
		return int32(int64(t)) //nolint:gosec // G115: intentional wraparound to the low 32 bits.
	}
	// math.Mod is exact, so the remainder is the true low 32 bits.
	m := math.Mod(t, two32)
	if m < 0 {
		m += two32
	}
	return int32(uint32(m)) //nolint:gosec // G115: intentional bit-pattern reinterpretation.
}

// NarrowShort narrows x to a sign-extended 16-bit value.
func NarrowShort(x float64) int16 {
	return int16(NarrowInt(x)) //nolint:gosec // G115: intentional truncation to 16 bits.
}

// NarrowChar narrows x to an unsigned 16-bit code unit.
func NarrowChar(x float64) uint16 {
	return uint16(NarrowInt(x)) //nolint:gosec // G115: intentional truncation to 16 bits.
}

// NarrowByte narrows x to a sign-extended 8-bit value.
func NarrowByte(x float64) int8 {
	return int8(NarrowInt(x)) //nolint:gosec // G115: intentional truncation to 8 bits.
}

// RoundInt clamps x into the int32 range and truncates toward zero. NaN is 0.
func RoundInt(x float64) int32 {
	if math.IsNaN(x) {
		return 0
	}
	x = math.Max(math.Min(x, math.MaxInt32), math.MinInt32)
	return int32(x) // in range after clamping
}

// RoundByte saturates x to int, then narrows to byte.
func RoundByte(x float64) int8 {
	return NarrowByte(float64(RoundInt(x)))
}

// RoundShort saturates x to int, then narrows to short.
func RoundShort(x float64) int16 {
	return NarrowShort(float64(RoundInt(x)))
}

// RoundChar saturates x to int, then narrows to char.
func RoundChar(x float64) uint16 {
	return NarrowChar(float64(RoundInt(x)))
}
