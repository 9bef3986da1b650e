package bento

import "encoding/json"

// PropType describes one schema field: its default value, a clone operation
// producing an independent value, and a copy operation transferring a value
// onto an existing destination.
//
// Clone must never alias mutable state with its source, with one exception:
// the Object type preserves references on both clone and copy. Callers must
// not assume value semantics for Object fields.
type PropType struct {
	// Name identifies the type in schemas ("number", "json", ...).
	Name string
	// Default is the value a freshly reset field receives (via Clone).
	Default any
	// Clone returns an independent copy of v.
	Clone func(v any) any
	// Copy transfers src onto dst and returns the resulting value. For
	// value kinds it simply returns src. Array reuses dst's backing store
	// when possible; JSON replaces dst outright with a deep clone.
	Copy func(src, dst any) any
}

// valid reports whether the prop type carries complete metadata.
func (self *PropType) valid() bool {
	return self != nil && self.Clone != nil && self.Copy != nil
}

func cloneValue(v any) any     { return v }
func copyValue(src, _ any) any { return src }

func cloneArray(v any) any {
	src, ok := v.([]any)
	if !ok {
		return v
	}
	out := make([]any, len(src))
	copy(out, src)
	return out
}

// copyArray rebuilds dst element-wise from src, keeping dst's backing store
// when its capacity allows.
func copyArray(src, dst any) any {
	s, ok := src.([]any)
	if !ok {
		return src
	}
	d, ok := dst.([]any)
	if !ok {
		d = make([]any, 0, len(s))
	}
	d = d[:0]
	return append(d, s...)
}

// cloneJSON deep-clones v through a serialize/deserialize round trip.
func cloneJSON(v any) any {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func copyJSON(src, _ any) any { return cloneJSON(src) }

// Built-in prop types. Number normalizes to float64, matching what schema
// files and JSON decoding produce.
var (
	Number  = &PropType{Name: "number", Default: float64(0), Clone: cloneValue, Copy: copyValue}
	Boolean = &PropType{Name: "boolean", Default: false, Clone: cloneValue, Copy: copyValue}
	String  = &PropType{Name: "string", Default: "", Clone: cloneValue, Copy: copyValue}
	// Object preserves references on clone and copy. See PropType doc.
	Object = &PropType{Name: "object", Default: nil, Clone: cloneValue, Copy: copyValue}
	Array  = &PropType{Name: "array", Default: []any{}, Clone: cloneArray, Copy: copyArray}
	JSON   = &PropType{Name: "json", Default: nil, Clone: cloneJSON, Copy: copyJSON}
)

// builtinPropTypes resolves schema type names to their prop types.
var builtinPropTypes = map[string]*PropType{
	Number.Name:  Number,
	Boolean.Name: Boolean,
	String.Name:  String,
	Object.Name:  Object,
	Array.Name:   Array,
	JSON.Name:    JSON,
}

// PropTypeByName returns the built-in prop type registered under name.
func PropTypeByName(name string) (*PropType, bool) {
	pt, ok := builtinPropTypes[name]
	return pt, ok
}
