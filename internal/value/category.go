package value

import "fmt"

// Category is the object category of a non-null value as seen by one unit.
type Category uint8

const (
	// CategoryNone is reported for null and undefined.
	CategoryNone Category = iota
	// CategoryRegular is an object constructed by the observing unit.
	CategoryRegular
	// CategoryString is a native string.
	CategoryString
	// CategoryForeign is everything else: host values, arrays and objects of
	// other units.
	CategoryForeign
)

func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryRegular:
		return "regular"
	case CategoryString:
		return "string"
	case CategoryForeign:
		return "foreign"
	default:
		return fmt.Sprintf("Category(%d)", c)
	}
}

// Classify places v into exactly one category relative to unit.
func Classify(v Value, unit *Marker) Category {
	switch {
	case v.IsNull():
		return CategoryNone
	case IsRegularObject(v, unit):
		return CategoryRegular
	case IsNativeString(v):
		return CategoryString
	default:
		return CategoryForeign
	}
}

// IsRegularObject reports whether v is an object carrying unit's type marker.
// Arrays never qualify even though they are legitimate compiled values.
func IsRegularObject(v Value, unit *Marker) bool {
	return v.Kind == KindObject && v.Obj != nil && unit != nil && v.Obj.marker == unit
}

// IsNativeString reports whether v is a native string.
func IsNativeString(v Value) bool {
	return v.Kind == KindString
}

// IsJavaObject reports whether v belongs to the compiled object model of unit.
func IsJavaObject(v Value, unit *Marker) bool {
	return IsRegularObject(v, unit) || IsNativeString(v)
}

// IsJavaScriptObject reports whether v is foreign to unit.
func IsJavaScriptObject(v Value, unit *Marker) bool {
	return !IsRegularObject(v, unit) && !IsNativeString(v)
}

// IsJavaScriptObjectOrString reports whether v is foreign or a native string.
func IsJavaScriptObjectOrString(v Value, unit *Marker) bool {
	return !IsRegularObject(v, unit)
}
