// Package value implements the Lua-shaped value tree that the wire codec
// produces on decode and consumes on encode: nil, booleans, 32-bit
// integers, 64-bit floats, UTF-8 strings, and tables with a hybrid
// array+hash layout (see Table).
//
// This is the stable interface between the codec core and any domain
// model (blueprints, behaviours, instructions, ...); the codec never
// interprets the contents of a String or the field names of a Table.
package value

import "math"

// Type discriminates the variants of Value.
type Type int

const (
	TypeNil Type = iota
	TypeBool
	TypeInt
	TypeFloat
	TypeString
	TypeTable
)

func (t Type) String() string {
	switch t {
	case TypeNil:
		return "nil"
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeTable:
		return "table"
	default:
		return "invalid"
	}
}

// Value is a tagged union of the scalar and table shapes the codec
// understands. The zero Value is Nil.
type Value struct {
	typ   Type
	b     bool
	i     int32
	f     float64
	s     string
	table *Table
}

// Nil is the nil Value.
var Nil = Value{}

// Bool wraps a boolean as a Value.
func Bool(b bool) Value { return Value{typ: TypeBool, b: b} }

// Int wraps a 32-bit integer as a Value.
func Int(i int32) Value { return Value{typ: TypeInt, i: i} }

// Float wraps a 64-bit float as a Value.
func Float(f float64) Value { return Value{typ: TypeFloat, f: f} }

// String wraps a UTF-8 string as a Value.
func String(s string) Value { return Value{typ: TypeString, s: s} }

// FromTable wraps a *Table as a Value.
func FromTable(t *Table) Value {
	if t == nil {
		return Nil
	}
	return Value{typ: TypeTable, table: t}
}

// Type reports the variant held by v.
func (v Value) Type() Type { return v.typ }

// IsNil reports whether v is the Nil variant.
func (v Value) IsNil() bool { return v.typ == TypeNil }

// Bool returns the bool payload of v and whether v is a Bool.
func (v Value) Bool() (bool, bool) { return v.b, v.typ == TypeBool }

// Int returns the int32 payload of v and whether v is an Int.
func (v Value) Int() (int32, bool) { return v.i, v.typ == TypeInt }

// Float returns the float64 payload of v and whether v is a Float.
func (v Value) Float() (float64, bool) { return v.f, v.typ == TypeFloat }

// Str returns the string payload of v and whether v is a String.
func (v Value) Str() (string, bool) { return v.s, v.typ == TypeString }

// Table returns the *Table payload of v and whether v is a Table.
func (v Value) Table() (*Table, bool) { return v.table, v.typ == TypeTable }

// Equal reports whether v and other are structurally equal: same variant,
// same scalar payload (NaN float payloads compare equal to each other,
// matching the game's float equality for round-trip purposes), or
// deeply-equal tables including dead slots and array holes.
func (v Value) Equal(other Value) bool {
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case TypeNil:
		return true
	case TypeBool:
		return v.b == other.b
	case TypeInt:
		return v.i == other.i
	case TypeFloat:
		if math.IsNaN(v.f) && math.IsNaN(other.f) {
			return true
		}
		return v.f == other.f
	case TypeString:
		return v.s == other.s
	case TypeTable:
		return v.table.Equal(other.table)
	default:
		return false
	}
}
