package shallow

import "reflect"

// Kind is the classification of a record value.
type Kind int

const (
	// Simple values are kept by SimpleKeys: booleans, numbers and strings,
	// including named types over them.
	Simple Kind = iota
	// Callable values are functions.
	Callable
	// Composite values aggregate other values: maps, slices, arrays,
	// structs, pointers and channels. Untyped nil is composite too.
	Composite
)

// String returns the lower-case name of k.
func (k Kind) String() string {
	switch k {
	case Simple:
		return "simple"
	case Callable:
		return "callable"
	case Composite:
		return "composite"
	default:
		return "unknown"
	}
}

// Classify reports the Kind of v.
//
// A nil interface is classified as Composite, matching the way JavaScript tags
// null as an object. Callers wanting null fields in their snapshot must carry
// them as a simple sentinel instead.
func Classify(v any) Kind {
	if v == nil {
		return Composite
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Func:
		return Callable
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return Simple
	default:
		return Composite
	}
}

// IsFn reports whether v is a function.
func IsFn(v any) bool { return Classify(v) == Callable }

// IsObj reports whether v is composite. IsObj(nil) is true.
func IsObj(v any) bool { return Classify(v) == Composite }
