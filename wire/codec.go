package wire

import (
	"fmt"

	"github.com/tifv/desynced-exchange/value"
)

// EncodeValue appends the binary-value encoding of v to dst.
func EncodeValue(dst []byte, v value.Value) ([]byte, error) {
	switch v.Type() {
	case value.TypeNil:
		return encodeNil(dst), nil
	case value.TypeBool:
		b, _ := v.Bool()
		return encodeBool(dst, b), nil
	case value.TypeInt:
		i, _ := v.Int()
		return encodeInt(dst, i), nil
	case value.TypeFloat:
		f, _ := v.Float()
		return encodeFloat(dst, f), nil
	case value.TypeString:
		s, _ := v.Str()
		return encodeString(dst, s)
	case value.TypeTable:
		t, _ := v.Table()
		return encodeTable(dst, t)
	default:
		return nil, fmt.Errorf("wire: value of unknown type %v", v.Type())
	}
}

// Encode is the entry point for a whole binary-value stream: it
// encodes v as the single top-level value of a fresh byte slice (the
// counterpart of Decode).
func Encode(v value.Value) ([]byte, error) {
	return EncodeValue(nil, v)
}

// DecodeValue reads one value from r, dispatching on its first byte.
func DecodeValue(r *reader) (value.Value, error) {
	head, err := r.readByte()
	if err != nil {
		return value.Nil, err
	}
	switch {
	case head == tagNil:
		return value.Nil, nil
	case head == tagFalse || head == tagTrue:
		b, err := decodeBool(head)
		return value.Bool(b), err
	case head == tagDeadKey:
		return value.Nil, fmt.Errorf("wire: unexpected dead-key marker in value position")
	case head <= tagPosFixIntMax || head >= tagNegFixIntMin ||
		head == tagUint8 || head == tagUint16 || head == tagUint32 ||
		head == tagInt8 || head == tagInt16 || head == tagInt32:
		i, err := decodeInt(r, head)
		return value.Int(i), err
	case head == tagFloat64:
		f, err := decodeFloat(r, head)
		return value.Float(f), err
	case (head >= tagFixStrMin && head <= tagFixStrMax) ||
		head == tagStr8 || head == tagStr16:
		s, err := decodeString(r, head)
		return value.String(s), err
	case (head >= tagArrayTableMin && head <= tagArrayTableMax) ||
		head == tagArray16 || head == tagArray32 ||
		(head >= tagHybridTableMin && head <= tagHybridTableMax) ||
		head == tagHybridEx:
		t, err := decodeTable(r, head)
		if err != nil {
			return value.Nil, err
		}
		return value.FromTable(t), nil
	default:
		return value.Nil, fmt.Errorf("wire: unrecognized byte tag %#x", head)
	}
}

// Decode reads exactly one value from the whole of data, failing if
// any bytes are left unconsumed (the binary value stream always
// contains exactly one top-level value, per the frame codec's payload
// contract).
func Decode(data []byte) (value.Value, error) {
	r := newReader(data)
	v, err := DecodeValue(r)
	if err != nil {
		return value.Nil, err
	}
	if r.remaining() != 0 {
		return value.Nil, fmt.Errorf("wire: %d unexpected trailing bytes", r.remaining())
	}
	return v, nil
}
