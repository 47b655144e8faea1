// Package value defines Grove's runtime value representation: a tagged
// union covering every kind of value a script can produce or hold.
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind tags which variant a Value holds.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
	KindVec3
	KindArray
	KindTable
	KindObject
)

// Vec3 is a 3-component float vector, Grove's one builtin compound
// numeric type.
type Vec3 struct {
	X, Y, Z float64
}

// Value is Grove's tagged-union runtime value. Only the field matching
// Kind is meaningful; the others are zero.
type Value struct {
	Kind   Kind
	Bool   bool
	Number float64
	Str    string
	Vec3   Vec3
	Array  []Value
	Table  map[string]Value
	Object uint64
}

// Nil is the shared nil value.
var Nil = Value{Kind: KindNil}

// Bool constructs a boolean value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Number constructs a numeric value.
func Number(n float64) Value { return Value{Kind: KindNumber, Number: n} }

// String constructs a string value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// MakeVec3 constructs a vec3 value.
func MakeVec3(x, y, z float64) Value { return Value{Kind: KindVec3, Vec3: Vec3{x, y, z}} }

// MakeArray constructs an array value.
func MakeArray(elems []Value) Value { return Value{Kind: KindArray, Array: elems} }

// MakeTable constructs a table value.
func MakeTable(fields map[string]Value) Value { return Value{Kind: KindTable, Table: fields} }

// MakeObject constructs an opaque host-object handle.
func MakeObject(handle uint64) Value { return Value{Kind: KindObject, Object: handle} }

// IsTruthy reports Grove's truthiness rule: everything is truthy except
// Nil and the boolean false.
func (v Value) IsTruthy() bool {
	switch v.Kind {
	case KindNil:
		return false
	case KindBool:
		return v.Bool
	default:
		return true
	}
}

// TypeName returns the lowercase type name used in error messages.
func (v Value) TypeName() string {
	switch v.Kind {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindVec3:
		return "vec3"
	case KindArray:
		return "array"
	case KindTable:
		return "table"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// AsNumber returns the numeric payload and whether v is a Number.
func (v Value) AsNumber() (float64, bool) {
	if v.Kind != KindNumber {
		return 0, false
	}
	return v.Number, true
}

// AsString returns the string payload and whether v is a String.
func (v Value) AsString() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	return v.Str, true
}

// AsBool returns the boolean payload and whether v is a Bool.
func (v Value) AsBool() (bool, bool) {
	if v.Kind != KindBool {
		return false, false
	}
	return v.Bool, true
}

// String renders v the way script-visible concatenation and log output
// do. Numbers that are integral and finite print without a decimal point;
// everything else uses Go's default float formatting.
func (v Value) String() string {
	switch v.Kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindNumber:
		if v.Number == math.Trunc(v.Number) && !math.IsInf(v.Number, 0) && !math.IsNaN(v.Number) {
			return strconv.FormatInt(int64(v.Number), 10)
		}
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	case KindString:
		return v.Str
	case KindVec3:
		return fmt.Sprintf("vec3(%s, %s, %s)", Number(v.Vec3.X), Number(v.Vec3.Y), Number(v.Vec3.Z))
	case KindArray:
		parts := make([]string, len(v.Array))
		for i, e := range v.Array {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindTable:
		parts := make([]string, 0, len(v.Table))
		for k, val := range v.Table {
			parts = append(parts, fmt.Sprintf("%s = %s", k, val.String()))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindObject:
		return fmt.Sprintf("<object:%d>", v.Object)
	default:
		return "<unknown>"
	}
}

// Equal implements Grove's `==` semantics: only same-variant values ever
// compare equal, Array and Table never compare equal (even to themselves),
// and Number equality is IEEE-754 bitwise (so NaN != NaN).
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNil:
		return true
	case KindBool:
		return a.Bool == b.Bool
	case KindNumber:
		return a.Number == b.Number
	case KindString:
		return a.Str == b.Str
	case KindVec3:
		return a.Vec3 == b.Vec3
	case KindArray, KindTable:
		return false
	case KindObject:
		return a.Object == b.Object
	default:
		return false
	}
}
