// Package intbase implements the bounded small-integer arithmetic that
// underlies the base-62 transport alphabet and the base-31 length prefix
// (see frame.Encode / frame.Decode).
//
// Digit31 and Digit62 are values restricted to [0,31) and [0,62)
// respectively; the restriction is enforced at construction time so that
// every other function in the package can assume it holds.
package intbase

import (
	"fmt"
	"math"
)

// Digit31 is an integer in the range [0, 31).
type Digit31 uint8

// Digit62 is an integer in the range [0, 62).
type Digit62 uint8

// NewDigit31 validates value and wraps it as a Digit31.
func NewDigit31(value uint8) (Digit31, error) {
	if value >= 31 {
		return 0, fmt.Errorf("intbase: %d is out of range for base 31", value)
	}
	return Digit31(value), nil
}

// NewDigit62 validates value and wraps it as a Digit62.
func NewDigit62(value uint8) (Digit62, error) {
	if value >= 62 {
		return 0, fmt.Errorf("intbase: %d is out of range for base 62", value)
	}
	return Digit62(value), nil
}

// DivRem31 splits n into (n/31, n%31).
func DivRem31(n uint32) (uint32, Digit31) {
	return n / 31, Digit31(n % 31)
}

// DivRem62 splits n into (n/62, n%62).
func DivRem62(n uint32) (uint32, Digit62) {
	return n / 62, Digit62(n % 62)
}

// Digits31 is ceil(log_31(2^32)), the number of base-31 digits needed to
// represent any uint32.
const Digits31 = 7

// Digits62 is ceil(log_62(2^32)), the number of base-62 digits needed to
// represent any uint32.
const Digits62 = 6

// BEDecompose31 decomposes value into Digits31 big-endian base-31 digits,
// along with the count of leading zero digits.
func BEDecompose31(value uint32) (leadingZeros int, digits [Digits31]Digit31) {
	index := Digits31
	for value > 0 {
		index--
		var d Digit31
		value, d = DivRem31(value)
		digits[index] = d
	}
	return index, digits
}

// BEDecompose62 decomposes value into Digits62 big-endian base-62 digits,
// along with the count of leading zero digits.
func BEDecompose62(value uint32) (leadingZeros int, digits [Digits62]Digit62) {
	index := Digits62
	for value > 0 {
		index--
		var d Digit62
		value, d = DivRem62(value)
		digits[index] = d
	}
	return index, digits
}

// BECompose31 folds big-endian base-31 digits back into a uint32. It
// returns an error if the value would overflow uint32.
func BECompose31(digits []Digit31) (uint32, error) {
	var result uint32
	for _, d := range digits {
		next := uint64(result)*31 + uint64(d)
		if next > math.MaxUint32 {
			return 0, fmt.Errorf("intbase: base-31 digit sequence overflows uint32")
		}
		result = uint32(next)
	}
	return result, nil
}

// BECompose62 folds big-endian base-62 digits back into a uint32. It
// returns an error if the value would overflow uint32.
func BECompose62(digits []Digit62) (uint32, error) {
	var result uint32
	for _, d := range digits {
		next := uint64(result)*62 + uint64(d)
		if next > math.MaxUint32 {
			return 0, fmt.Errorf("intbase: base-62 digit sequence overflows uint32")
		}
		result = uint32(next)
	}
	return result, nil
}

// EncodeBase62 maps a Digit62 to its ASCII representation:
// 0-9 -> '0'-'9', 10-35 -> 'A'-'Z', 36-61 -> 'a'-'z'.
func EncodeBase62(d Digit62) byte {
	switch {
	case d <= 9:
		return '0' + byte(d)
	case d <= 35:
		return 'A' + byte(d) - 10
	default:
		return 'a' + byte(d) - 36
	}
}

// DecodeBase62 inverts EncodeBase62.
func DecodeBase62(b byte) (Digit62, error) {
	switch {
	case b >= '0' && b <= '9':
		return Digit62(b - '0'), nil
	case b >= 'A' && b <= 'Z':
		return Digit62(b-'A') + 10, nil
	case b >= 'a' && b <= 'z':
		return Digit62(b-'a') + 36, nil
	default:
		return 0, fmt.Errorf("intbase: byte %q is not a base-62 digit", b)
	}
}

// Widen reinterprets a base-31 digit as the identical base-62 digit
// (values 0..30).
func (d Digit31) Widen() Digit62 {
	return Digit62(d)
}

// WidenBiased reinterprets a base-31 digit offset by 31 (values 31..61).
// This is the bias applied to the final digit of a length prefix so that
// the decoder can recognize where the prefix ends (see frame package).
func (d Digit31) WidenBiased() Digit62 {
	return Digit62(d) + 31
}

// Narrow splits a base-62 digit back into a base-31 digit plus a flag
// telling whether the WidenBiased encoding (true) or the plain Widen
// encoding (false) produced it.
func (d Digit62) Narrow() (digit Digit31, biased bool) {
	if d < 31 {
		return Digit31(d), false
	}
	return Digit31(d - 31), true
}
