package wire

import (
	"fmt"

	"github.com/tifv/desynced-exchange/ints"
	"github.com/tifv/desynced-exchange/value"
)

// header is the decoded/to-be-encoded shape of a table, independent of
// its contents (§4.4.1).
type header struct {
	arrayLen      uint32
	assocLogLen   int // -1 means no assoc part
	assocLastFree uint32
}

const maxSmallHeaderSize = 0x001FFFFF // inclusive bound for the compact header forms

func encodeHeader(dst []byte, h header) ([]byte, error) {
	if h.assocLogLen < 0 {
		switch {
		case h.arrayLen <= fixArrayMaxLen:
			return append(dst, tagArrayTableMin|byte(h.arrayLen)), nil
		case h.arrayLen <= 0xFFFF:
			dst = append(dst, tagArray16)
			return appendUint16(dst, uint16(h.arrayLen)), nil
		default:
			dst = append(dst, tagArray32)
			return appendUint32(dst, h.arrayLen), nil
		}
	}

	logsize := h.assocLogLen
	if h.arrayLen > maxSmallHeaderSize || logsize > value.MaxAssocLogLen {
		return nil, fmt.Errorf("wire: unsupported table size (array_len=%d, assoc_loglen=%d)", h.arrayLen, logsize)
	}
	hasArray := h.arrayLen > 0
	if logsize <= 7 {
		b := tagHybridTableMin | byte(logsize<<1)
		if hasArray {
			b |= 0x01
		}
		dst = append(dst, b)
		if hasArray {
			dst = writeUint(dst, h.arrayLen)
		}
		return writeUint(dst, h.assocLastFree), nil
	}
	dst = append(dst, tagHybridEx)
	b := byte(logsize << 1)
	if hasArray {
		b |= 0x01
	}
	dst = append(dst, b, 0x00)
	if hasArray {
		dst = writeUint(dst, h.arrayLen)
	}
	return writeUint(dst, h.assocLastFree), nil
}

func decodeHeader(r *reader, head byte) (header, error) {
	switch {
	case head >= tagArrayTableMin && head <= tagArrayTableMax:
		return header{arrayLen: uint32(head & fixArrayMaxLen), assocLogLen: -1}, nil
	case head == tagArray16:
		s, err := r.readSlice(2)
		if err != nil {
			return header{}, err
		}
		return header{arrayLen: uint32(leUint16(s)), assocLogLen: -1}, nil
	case head == tagArray32:
		s, err := r.readSlice(4)
		if err != nil {
			return header{}, err
		}
		return header{arrayLen: leUint32(s), assocLogLen: -1}, nil
	case head >= tagHybridTableMin && head <= tagHybridTableMax:
		hasArray := head&0x01 != 0
		var arrayLen uint32
		if hasArray {
			var err error
			arrayLen, err = readUint(r)
			if err != nil {
				return header{}, err
			}
		}
		logsize := int((head & 0x0F) >> 1)
		lastFree, err := readUint(r)
		if err != nil {
			return header{}, err
		}
		return header{arrayLen: arrayLen, assocLogLen: logsize, assocLastFree: lastFree}, nil
	case head == tagHybridEx:
		b, err := r.readByte()
		if err != nil {
			return header{}, err
		}
		hasArray := b&0x01 != 0
		logsize := int(b >> 1)
		reserved, err := r.readByte()
		if err != nil {
			return header{}, err
		}
		if reserved != 0x00 {
			return header{}, fmt.Errorf("wire: non-zero reserved byte %#x in extended table header", reserved)
		}
		var arrayLen uint32
		if hasArray {
			arrayLen, err = readUint(r)
			if err != nil {
				return header{}, err
			}
		}
		lastFree, err := readUint(r)
		if err != nil {
			return header{}, err
		}
		return header{arrayLen: arrayLen, assocLogLen: logsize, assocLastFree: lastFree}, nil
	default:
		return header{}, fmt.Errorf("wire: byte %#x is not a table header tag", head)
	}
}

func leUint16(b []byte) uint16 { return uint16(b[0]) | uint16(b[1])<<8 }
func leUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// encodeTable appends a full table: header, then the array-first,
// 8-item-masked-run body.
func encodeTable(dst []byte, t *value.Table) ([]byte, error) {
	h := header{arrayLen: uint32(t.ArrayLen()), assocLogLen: -1}
	if loglen, ok := t.AssocLogLen(); ok {
		h.assocLogLen = int(loglen)
		h.assocLastFree = t.LastFree
	}
	dst, err := encodeHeader(dst, h)
	if err != nil {
		return nil, err
	}

	total := len(t.Array) + len(t.Assoc)
	for base := 0; base < total; base += 8 {
		runLen := ints.Min(total-base, 8)
		maskPos := len(dst)
		dst = append(dst, 0)
		mask := []byte{0}
		for i := 0; i < runLen; i++ {
			idx := base + i
			var absent bool
			var payloadErr error
			dst, absent, payloadErr = encodeItem(dst, t, idx)
			if payloadErr != nil {
				return nil, payloadErr
			}
			if absent {
				ints.SetBit(mask, i)
			}
		}
		dst[maskPos] = mask[0]
	}
	return dst, nil
}

// encodeItem encodes the item at flat index idx (array items first,
// then assoc slots in storage order) and reports whether it was absent
// (a hole or a Free slot, contributing nothing but the mask bit).
func encodeItem(dst []byte, t *value.Table, idx int) ([]byte, bool, error) {
	if idx < len(t.Array) {
		v := t.Array[idx]
		if v.IsNil() {
			return dst, true, nil
		}
		dst, err := EncodeValue(dst, v)
		return dst, false, err
	}
	slot := t.Assoc[idx-len(t.Array)]
	switch slot.Kind {
	case value.SlotFree:
		return dst, true, nil
	case value.SlotDead:
		dst = encodeNil(dst)
		dst = append(dst, tagDeadKey)
		dst = writeLink(dst, slot.Link)
		return dst, false, nil
	case value.SlotLive:
		dst, err := EncodeValue(dst, slot.Value)
		if err != nil {
			return dst, false, err
		}
		dst, err = encodeKey(dst, slot.Key)
		if err != nil {
			return dst, false, err
		}
		dst = writeLink(dst, slot.Link)
		return dst, false, nil
	default:
		return dst, false, fmt.Errorf("wire: invalid slot kind")
	}
}

func encodeKey(dst []byte, k value.Key) ([]byte, error) {
	if i, ok := k.Int(); ok {
		return encodeInt(dst, i), nil
	}
	s, _ := k.Str()
	return encodeString(dst, s)
}

func decodeKey(r *reader, head byte) (value.Key, error) {
	switch {
	case head <= tagPosFixIntMax || head >= tagNegFixIntMin ||
		head == tagUint8 || head == tagUint16 || head == tagUint32 ||
		head == tagInt8 || head == tagInt16 || head == tagInt32:
		i, err := decodeInt(r, head)
		if err != nil {
			return value.Key{}, err
		}
		return value.KeyInt(i), nil
	case (head >= tagFixStrMin && head <= tagFixStrMax) ||
		head == tagStr8 || head == tagStr16:
		s, err := decodeString(r, head)
		if err != nil {
			return value.Key{}, err
		}
		return value.KeyString(s), nil
	default:
		return value.Key{}, fmt.Errorf("wire: byte %#x is not a valid key tag", head)
	}
}

// decodeTable reads a full table: header, safety-checks its declared
// sizes against the remaining input, then the body.
func decodeTable(r *reader, head byte) (*value.Table, error) {
	h, err := decodeHeader(r, head)
	if err != nil {
		return nil, err
	}
	if h.assocLogLen > value.MaxAssocLogLen {
		return nil, fmt.Errorf("wire: assoc loglen %d exceeds MAX_ASSOC_LOGLEN", h.assocLogLen)
	}

	// Every item, array or assoc, costs the body at least one mask bit,
	// i.e. at most 8 items per remaining byte. Both parts draw from the
	// same shared budget so that a small input can't force an
	// unbounded allocation by declaring a huge assoc part with no
	// array, or vice versa (mirrors the reference loader's combined
	// max_array_len/iexp2(assoc_loglen) budget).
	budget := uint64(r.remaining()) * 8
	if uint64(h.arrayLen) > budget {
		return nil, fmt.Errorf("wire: declared array length %d too large for remaining input", h.arrayLen)
	}
	budget -= uint64(h.arrayLen)

	var assocLen int
	if h.assocLogLen >= 0 {
		assocLen = 1 << uint(h.assocLogLen)
	}
	if uint64(assocLen) > budget {
		return nil, fmt.Errorf("wire: assoc part of 2^%d slots too large for remaining input", h.assocLogLen)
	}

	t := &value.Table{Array: make([]value.Value, h.arrayLen)}
	if h.assocLogLen >= 0 {
		t.Assoc = make([]value.AssocSlot, assocLen)
		t.LastFree = h.assocLastFree
	}

	total := int(h.arrayLen) + assocLen
	for base := 0; base < total; base += 8 {
		runLen := ints.Min(total-base, 8)
		maskByte, err := r.readByte()
		if err != nil {
			return nil, err
		}
		mask := []byte{maskByte}
		for i := 0; i < runLen; i++ {
			idx := base + i
			absent := ints.TestBit(mask, i)
			if err := decodeItem(r, t, idx, int(h.arrayLen), absent); err != nil {
				return nil, err
			}
		}
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func decodeItem(r *reader, t *value.Table, idx, arrayLen int, absent bool) error {
	if idx < arrayLen {
		if absent {
			t.Array[idx] = value.Nil
			return nil
		}
		v, err := DecodeValue(r)
		if err != nil {
			return err
		}
		t.Array[idx] = v
		return nil
	}
	assocIdx := idx - arrayLen
	if absent {
		t.Assoc[assocIdx] = value.AssocSlot{Kind: value.SlotFree}
		return nil
	}
	val, err := DecodeValue(r)
	if err != nil {
		return err
	}
	head, err := r.readByte()
	if err != nil {
		return err
	}
	if head == tagDeadKey {
		if !val.IsNil() {
			return fmt.Errorf("wire: a dead-key entry should correspond to a nil value")
		}
		link, err := readLink(r)
		if err != nil {
			return err
		}
		t.Assoc[assocIdx] = value.AssocSlot{Kind: value.SlotDead, Link: link}
		return nil
	}
	key, err := decodeKey(r, head)
	if err != nil {
		return err
	}
	link, err := readLink(r)
	if err != nil {
		return err
	}
	t.Assoc[assocIdx] = value.AssocSlot{Kind: value.SlotLive, Key: key, Value: val, Link: link}
	return nil
}
