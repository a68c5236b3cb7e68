package numconv

import (
	"math"
	"testing"
)

var nan = math.NaN()

func TestNarrowInt(t *testing.T) {
	cases := []struct {
		in   float64
		want int32
	}{
		{0, 0},
		{math.Copysign(0, -1), 0},
		{1.9, 1},
		{-1.9, -1},
		{2147483647, 2147483647},
		{2147483648.0, -2147483648},
		{-2147483649.0, 2147483647},
		{4294967296.0, 0},
		{4294967297.5, 1},
		{-4294967297.5, -1},
		{1e10, 1410065408},
		{1e20, 1661992960},
		{-1e20, -1661992960},
		{9.3e18, -81657856},
		{nan, 0},
		{math.Inf(1), 0},
		{math.Inf(-1), 0},
		{math.MaxFloat64, 0},
	}
	for _, tc := range cases {
		if got := NarrowInt(tc.in); got != tc.want {
			t.Fatalf("NarrowInt(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestNarrowSmallTypes(t *testing.T) {
	cases := []struct {
		in        float64
		wantShort int16
		wantChar  uint16
		wantByte  int8
	}{
		{300, 300, 300, 44},
		{130.7, 130, 130, -126},
		{-1, -1, 0xFFFF, -1},
		{65535, -1, 65535, -1},
		{65536, 0, 0, 0},
		{32768, -32768, 32768, 0},
		{-129.9, -129, 65407, 127},
		{-5, -5, 65531, -5},
		{-65536.5, 0, 0, 0},
		{2147483648.0, 0, 0, 0},
		{nan, 0, 0, 0},
	}
	for _, tc := range cases {
		if got := NarrowShort(tc.in); got != tc.wantShort {
			t.Fatalf("NarrowShort(%v) = %d, want %d", tc.in, got, tc.wantShort)
		}
		if got := NarrowChar(tc.in); got != tc.wantChar {
			t.Fatalf("NarrowChar(%v) = %d, want %d", tc.in, got, tc.wantChar)
		}
		if got := NarrowByte(tc.in); got != tc.wantByte {
			t.Fatalf("NarrowByte(%v) = %d, want %d", tc.in, got, tc.wantByte)
		}
	}
}

func TestRoundInt(t *testing.T) {
	cases := []struct {
		in   float64
		want int32
	}{
		{1e20, math.MaxInt32},
		{-1e20, math.MinInt32},
		{2147483648.0, math.MaxInt32},
		{-2147483649.0, math.MinInt32},
		{math.Inf(1), math.MaxInt32},
		{math.Inf(-1), math.MinInt32},
		{nan, 0},
		{130.7, 130},
		{-130.7, -130},
		{0.999, 0},
	}
	for _, tc := range cases {
		if got := RoundInt(tc.in); got != tc.want {
			t.Fatalf("RoundInt(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestRoundSaturatesBeforeNarrowing(t *testing.T) {
	if got := RoundByte(130.7); got != -126 {
		t.Fatalf("RoundByte(130.7) = %d, want -126", got)
	}
	if got, want := RoundByte(130.7), NarrowByte(float64(RoundInt(130.7))); got != want {
		t.Fatalf("RoundByte(130.7) = %d, want NarrowByte(RoundInt) = %d", got, want)
	}

	// 1e20 narrows directly to the low bits of the huge value, but rounds via
	// MaxInt32 (0x7FFFFFFF) first.
	cases := []struct {
		in        float64
		wantByte  int8
		wantShort int16
		wantChar  uint16
	}{
		{1e20, -1, -1, 0xFFFF},
		{-1e20, 0, 0, 0},
		{nan, 0, 0, 0},
		{70000.5, 112, 4464, 4464},
		{-5, -5, -5, 65531},
		{-70000.5, -112, -4464, 61072},
	}
	for _, tc := range cases {
		if got := RoundByte(tc.in); got != tc.wantByte {
			t.Fatalf("RoundByte(%v) = %d, want %d", tc.in, got, tc.wantByte)
		}
		if got := RoundShort(tc.in); got != tc.wantShort {
			t.Fatalf("RoundShort(%v) = %d, want %d", tc.in, got, tc.wantShort)
		}
		if got := RoundChar(tc.in); got != tc.wantChar {
			t.Fatalf("RoundChar(%v) = %d, want %d", tc.in, got, tc.wantChar)
		}
	}
	if NarrowByte(1e20) == RoundByte(1e20) {
		t.Fatalf("narrowing and rounding must differ for 1e20")
	}
}

func TestParseOpAndApply(t *testing.T) {
	for _, spelling := range []string{"narrow_byte", "narrow-byte", "narrowByte", "NARROW_BYTE"} {
		op, err := ParseOp(spelling)
		if err != nil || op != OpNarrowByte {
			t.Fatalf("ParseOp(%q) = %v, %v", spelling, op, err)
		}
	}
	if _, err := ParseOp("widen_long"); err == nil {
		t.Fatalf("expected error for unknown op")
	}
	for _, op := range Ops() {
		if _, err := Apply(op, 1.5); err != nil {
			t.Fatalf("Apply(%s): %v", op, err)
		}
	}
	if got, _ := Apply(OpRoundChar, -5); got != 65531 {
		t.Fatalf("Apply(round_char, -5) = %d, want 65531", got)
	}
	if _, err := Apply(OpInvalid, 1); err == nil {
		t.Fatalf("expected error for invalid op")
	}
}
