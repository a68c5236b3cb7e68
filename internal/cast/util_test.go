package cast

import (
	"testing"

	"castlink/internal/types"
	"castlink/internal/value"
)

func TestCharToString(t *testing.T) {
	cases := []struct {
		in   uint16
		want string
	}{
		{'A', "A"},
		{0, "\x00"},
		{0x00E9, "\u00e9"},
		{0x4E2D, "\u4e2d"},
		{0xFFFF, "\uffff"},
		{0xD800, "\ufffd"},
		{0xDFFF, "\ufffd"},
	}
	for _, tc := range cases {
		if got := CharToString(tc.in); got != tc.want {
			t.Fatalf("CharToString(%#x) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// hostBox is comparable as a type, but not when X holds a slice or map.
type hostBox struct{ X any }

func TestJSEquals(t *testing.T) {
	unit := value.NewMarker("app")
	class := types.NewClass(1, "Object", types.KindClass)
	o1 := value.FromObject(unit.New(class))
	o2 := value.FromObject(unit.New(class))
	arr := value.FromArray(value.NewArray(nil))
	ptr := &struct{ n int }{1}

	cases := []struct {
		name string
		a, b value.Value
		want bool
	}{
		{"same object", o1, o1, true},
		{"distinct objects", o1, o2, false},
		{"same array", arr, arr, true},
		{"distinct arrays", arr, value.FromArray(value.NewArray(nil)), false},
		{"equal strings", value.String("ab"), value.String("ab"), true},
		{"different strings", value.String("ab"), value.String("ba"), false},
		{"null undefined", value.Null, value.Undefined, true},
		{"null null", value.Null, value.Null, true},
		{"null string", value.Null, value.String(""), false},
		{"string vs foreign", value.String("1"), value.Foreign("1"), false},
		{"foreign ints", value.Foreign(1), value.Foreign(1), true},
		{"foreign int vs int64", value.Foreign(1), value.Foreign(int64(1)), false},
		{"foreign pointer", value.Foreign(ptr), value.Foreign(ptr), true},
		{"foreign slices", value.Foreign([]int{1}), value.Foreign([]int{1}), false},
		{"foreign nil", value.Foreign(nil), value.Foreign(nil), true},
		{"foreign boxes", value.Foreign(hostBox{X: 1}), value.Foreign(hostBox{X: 1}), true},
		{"foreign boxes holding slices", value.Foreign(hostBox{X: []int{1}}), value.Foreign(hostBox{X: []int{1}}), false},
		{"foreign arrays holding maps", value.Foreign([1]any{map[int]int{}}), value.Foreign([1]any{map[int]int{}}), false},
		{"object vs foreign", o1, value.Foreign(1), false},
	}
	for _, tc := range cases {
		if got := JSEquals(tc.a, tc.b); got != tc.want {
			t.Fatalf("%s: JSEquals = %v, want %v", tc.name, got, tc.want)
		}
		if got := JSNotEquals(tc.a, tc.b); got == tc.want {
			t.Fatalf("%s: JSNotEquals = %v, want %v", tc.name, got, !tc.want)
		}
	}
}
