package value

// KeyType discriminates the two variants of Key.
type KeyType int

const (
	KeyTypeInt KeyType = iota
	KeyTypeString
)

// Key is a restricted Value usable as a table assoc key: an int32 index
// or a UTF-8 string name.
type Key struct {
	typ KeyType
	i   int32
	s   string
}

// KeyInt builds an integer key.
func KeyInt(i int32) Key { return Key{typ: KeyTypeInt, i: i} }

// KeyString builds a string key.
func KeyString(s string) Key { return Key{typ: KeyTypeString, s: s} }

// Type reports which variant k holds.
func (k Key) Type() KeyType { return k.typ }

// Int returns the int32 payload of k and whether k is a KeyTypeInt.
func (k Key) Int() (int32, bool) { return k.i, k.typ == KeyTypeInt }

// Str returns the string payload of k and whether k is a KeyTypeString.
func (k Key) Str() (string, bool) { return k.s, k.typ == KeyTypeString }

// Equal reports whether k and other denote the same key.
func (k Key) Equal(other Key) bool {
	if k.typ != other.typ {
		return false
	}
	switch k.typ {
	case KeyTypeInt:
		return k.i == other.i
	case KeyTypeString:
		return k.s == other.s
	default:
		return false
	}
}

// AsValue widens k into the corresponding Value.
func (k Key) AsValue() Value {
	switch k.typ {
	case KeyTypeInt:
		return Int(k.i)
	case KeyTypeString:
		return String(k.s)
	default:
		return Nil
	}
}

// mainPosition computes h(k, loglen) per the table engine's hash rules
// (hash.go), masking the result to the table's assoc size.
func (k Key) mainPosition(loglen uint) uint32 {
	switch k.typ {
	case KeyTypeInt:
		return intTableHash(k.i, loglen)
	case KeyTypeString:
		return strTableHash(k.s) & mask(loglen)
	default:
		panic("value: invalid key type")
	}
}
