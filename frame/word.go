package frame

import (
	"encoding/binary"
	"fmt"

	"github.com/tifv/desynced-exchange/intbase"
)

// encodeWords streams data through the base-62 word encoder: complete
// 4-byte little-endian words become 6 base-62 digits each, and a trailing
// partial word of 1/2/3 bytes becomes 2/3/5 digits. It also returns the
// wrapping uint32 sum of every word value (full or partial) encoded.
func encodeWords(data []byte) (digits []byte, checksum uint32) {
	digits = make([]byte, 0, (len(data)/4+1)*6)
	for len(data) >= 4 {
		word := binary.LittleEndian.Uint32(data[:4])
		digits = appendWordDigits(digits, word, 6)
		checksum += word
		data = data[4:]
	}
	if len(data) > 0 {
		var buf [4]byte
		copy(buf[:], data)
		word := binary.LittleEndian.Uint32(buf[:])
		encodedLen := map[int]int{1: 2, 2: 3, 3: 5}[len(data)]
		digits = appendWordDigits(digits, word, encodedLen)
		checksum += word
	}
	return digits, checksum
}

func appendWordDigits(dst []byte, word uint32, encodedLen int) []byte {
	_, ds := intbase.BEDecompose62(word)
	start := intbase.Digits62 - encodedLen
	for i := start; i < intbase.Digits62; i++ {
		dst = append(dst, intbase.EncodeBase62(ds[i]))
	}
	return dst
}

// decodeWords inverts encodeWords: it consumes a stream of base-62 digits
// (the frame's "middle" region, with the length prefix and checksum digit
// already stripped) six at a time, with the final group allowed to be of
// length 2, 3 or 5 for a partial trailing word. It returns the decoded
// bytes and the same wrapping checksum that encodeWords computes.
func decodeWords(digits []byte) (data []byte, checksum uint32, err error) {
	data = make([]byte, 0, len(digits)/6*4+4)
	for len(digits) > 0 {
		n := len(digits)
		if n > 6 {
			n = 6
		}
		if n < 6 && n != 2 && n != 3 && n != 5 {
			return nil, 0, fmt.Errorf("frame: trailing group of %d digits is not a valid word encoding", n)
		}
		group := digits[:n]
		digits = digits[n:]

		ds := make([]intbase.Digit62, n)
		for i, b := range group {
			d, err := intbase.DecodeBase62(b)
			if err != nil {
				return nil, 0, fmt.Errorf("frame: %w", err)
			}
			ds[i] = d
		}
		word, err := intbase.BECompose62(ds)
		if err != nil {
			return nil, 0, fmt.Errorf("frame: word overflows uint32: %w", err)
		}

		nbytes := map[int]int{2: 1, 3: 2, 5: 3, 6: 4}[n]
		max := uint64(1) << (8 * uint(nbytes))
		if uint64(word) >= max {
			return nil, 0, fmt.Errorf("frame: decoded word %d exceeds %d-byte bound", word, nbytes)
		}

		checksum += word
		var wb [4]byte
		binary.LittleEndian.PutUint32(wb[:], word)
		data = append(data, wb[:nbytes]...)
	}
	return data, checksum, nil
}
