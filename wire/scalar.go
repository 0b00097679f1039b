package wire

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"
)

// encodeNil appends the nil tag.
func encodeNil(dst []byte) []byte {
	return append(dst, tagNil)
}

// encodeBool appends the false/true tag.
func encodeBool(dst []byte, b bool) []byte {
	if b {
		return append(dst, tagTrue)
	}
	return append(dst, tagFalse)
}

// encodeInt appends value using the shortest applicable form: a signed
// fixint byte for -32..127, then the smallest of uint8/uint16/uint32
// for larger positive values and int8/int16/int32 for smaller negative
// ones.
func encodeInt(dst []byte, value int32) []byte {
	switch {
	case value >= -0x20 && value <= 0x7F:
		return append(dst, byte(int8(value)))
	case value >= 0x80 && value <= 0xFF:
		return append(dst, tagUint8, byte(value))
	case value >= 0x0100 && value <= 0xFFFF:
		dst = append(dst, tagUint16)
		return appendUint16(dst, uint16(value))
	case value >= 0x00010000 && value <= 0x7FFFFFFF:
		dst = append(dst, tagUint32)
		return appendUint32(dst, uint32(value))
	case value >= -0x80 && value <= -0x21:
		return append(dst, tagInt8, byte(int8(value)))
	case value >= -0x8000 && value <= -0x0081:
		dst = append(dst, tagInt16)
		return appendUint16(dst, uint16(int16(value)))
	default: // -0x80000000 ..= -0x8001
		dst = append(dst, tagInt32)
		return appendUint32(dst, uint32(value))
	}
}

// encodeFloat appends value as a float64 tag and its 8 little-endian
// bytes.
func encodeFloat(dst []byte, value float64) []byte {
	dst = append(dst, tagFloat64)
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(value))
	return append(dst, buf[:]...)
}

// encodeString appends value using the shortest applicable form:
// fixstr for 0..31 bytes, str8 for 32..255, str16 for 256..65535.
// Longer strings are a dump error.
func encodeString(dst []byte, value string) ([]byte, error) {
	n := len(value)
	switch {
	case n <= fixStrMaxLen:
		dst = append(dst, tagFixStrMin|byte(n))
	case n <= 0xFF:
		dst = append(dst, tagStr8, byte(n))
	case n <= 0xFFFF:
		dst = append(dst, tagStr16)
		dst = appendUint16(dst, uint16(n))
	default:
		return nil, fmt.Errorf("wire: string of %d bytes exceeds the 0xFFFF limit", n)
	}
	return append(dst, value...), nil
}

func appendUint16(dst []byte, v uint16) []byte {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return append(dst, buf[:]...)
}

func appendUint32(dst []byte, v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return append(dst, buf[:]...)
}

func decodeBool(head byte) (bool, error) {
	switch head {
	case tagFalse:
		return false, nil
	case tagTrue:
		return true, nil
	default:
		return false, fmt.Errorf("wire: byte %#x is not a boolean tag", head)
	}
}

func decodeInt(r *reader, head byte) (int32, error) {
	switch {
	case head <= tagPosFixIntMax || head >= tagNegFixIntMin:
		return int32(int8(head)), nil
	case head == tagUint8:
		b, err := r.readByte()
		if err != nil {
			return 0, err
		}
		return int32(b), nil
	case head == tagUint16:
		s, err := r.readSlice(2)
		if err != nil {
			return 0, err
		}
		return int32(binary.LittleEndian.Uint16(s)), nil
	case head == tagUint32 || head == tagInt32:
		s, err := r.readSlice(4)
		if err != nil {
			return 0, err
		}
		return int32(binary.LittleEndian.Uint32(s)), nil
	case head == tagInt8:
		b, err := r.readByte()
		if err != nil {
			return 0, err
		}
		return int32(int8(b)), nil
	case head == tagInt16:
		s, err := r.readSlice(2)
		if err != nil {
			return 0, err
		}
		return int32(int16(binary.LittleEndian.Uint16(s))), nil
	default:
		return 0, fmt.Errorf("wire: byte %#x is not an integer tag", head)
	}
}

func decodeFloat(r *reader, head byte) (float64, error) {
	if head != tagFloat64 {
		return 0, fmt.Errorf("wire: byte %#x is not a float tag", head)
	}
	s, err := r.readSlice(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(s)), nil
}

func decodeString(r *reader, head byte) (string, error) {
	var n int
	switch {
	case head >= tagFixStrMin && head <= tagFixStrMax:
		n = int(head & fixStrMaxLen)
	case head == tagStr8:
		b, err := r.readByte()
		if err != nil {
			return "", err
		}
		n = int(b)
	case head == tagStr16:
		s, err := r.readSlice(2)
		if err != nil {
			return "", err
		}
		n = int(binary.LittleEndian.Uint16(s))
	default:
		return "", fmt.Errorf("wire: byte %#x is not a string tag", head)
	}
	s, err := r.readSlice(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(s) {
		return "", fmt.Errorf("wire: string contains invalid UTF-8")
	}
	return string(s), nil
}
