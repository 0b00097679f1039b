// Package frame implements the outer transport envelope of a Desynced
// exchange string: a three-letter tag, a self-delimiting base-31 length
// prefix, a base-62 word stream carrying an optional zlib-compressed
// payload, and a trailing checksum digit.
//
// The payload bytes that frame.Decode hands back (and that frame.Encode
// consumes) are the binary value stream produced by the wire package.
// Frame never looks inside them.
package frame

import (
	"fmt"

	"github.com/tifv/desynced-exchange/compress"
	"github.com/tifv/desynced-exchange/intbase"
)

// The two tags a conforming exchange string may start with.
const (
	TagBlueprint = "DSB"
	TagBehavior  = "DSC"
)

// Encode wraps raw in the frame envelope, choosing tag (TagBlueprint or
// TagBehavior). It deflates raw and uses whichever of the compressed or
// raw form is shorter.
func Encode(tag string, raw []byte) (string, error) {
	if tag != TagBlueprint && tag != TagBehavior {
		return "", fmt.Errorf("frame: unknown tag %q", tag)
	}

	zipped := compress.Deflate(raw)
	var body []byte
	var length uint32
	if len(zipped) < len(raw) {
		body, length = zipped, uint32(len(raw))
	} else {
		body, length = raw, 0
	}

	out := make([]byte, 0, len(tag)+intbase.Digits31+len(body)*2+1)
	out = append(out, tag...)
	out = append(out, encodeLengthPrefix(length)...)

	digits, checksum := encodeWords(body)
	out = append(out, digits...)

	_, rem := intbase.DivRem62(checksum)
	out = append(out, intbase.EncodeBase62(rem))

	return string(out), nil
}

// Decode unwraps a frame, returning the tag and the raw (decompressed)
// payload bytes.
func Decode(s string) (tag string, raw []byte, err error) {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7F {
			return "", nil, fmt.Errorf("frame: input contains a non-ASCII byte at offset %d", i)
		}
	}
	if len(s) < 3 {
		return "", nil, fmt.Errorf("frame: input shorter than the tag")
	}
	tag = s[:3]
	if tag != TagBlueprint && tag != TagBehavior {
		return "", nil, fmt.Errorf("frame: unrecognized tag %q", tag)
	}

	rest := []byte(s[3:])
	length, n, err := decodeLengthPrefix(rest)
	if err != nil {
		return "", nil, err
	}
	rest = rest[n:]

	if len(rest) == 0 {
		return "", nil, fmt.Errorf("frame: missing checksum digit")
	}
	encodedChecksum, err := intbase.DecodeBase62(rest[len(rest)-1])
	if err != nil {
		return "", nil, fmt.Errorf("frame: checksum digit: %w", err)
	}
	middle := rest[:len(rest)-1]

	body, checksum, err := decodeWords(middle)
	if err != nil {
		return "", nil, err
	}
	if _, rem := intbase.DivRem62(checksum); rem != encodedChecksum {
		return "", nil, fmt.Errorf("frame: checksum mismatch")
	}

	if length == 0 {
		return tag, body, nil
	}
	inflated, err := compress.Inflate(body)
	if err != nil {
		return "", nil, fmt.Errorf("frame: %w", err)
	}
	if uint32(len(inflated)) != length {
		return "", nil, fmt.Errorf("frame: inflated length %d does not match declared length %d", len(inflated), length)
	}
	return tag, inflated, nil
}

// encodeLengthPrefix renders length as a self-delimiting base-31 number:
// every digit except the last is emitted in 0..30, and the last digit is
// biased into 31..61 so the decoder recognizes the end of the prefix.
func encodeLengthPrefix(length uint32) []byte {
	leadingZeros, digits := intbase.BEDecompose31(length)
	out := make([]byte, 0, intbase.Digits31-leadingZeros)
	for i := leadingZeros; i < intbase.Digits31-1; i++ {
		out = append(out, intbase.EncodeBase62(digits[i].Widen()))
	}
	out = append(out, intbase.EncodeBase62(digits[intbase.Digits31-1].WidenBiased()))
	return out
}

// decodeLengthPrefix reads a base-31 length prefix from the front of s,
// returning the decoded length and the number of bytes consumed.
func decodeLengthPrefix(s []byte) (length uint32, consumed int, err error) {
	var digits [intbase.Digits31]intbase.Digit31
	n := 0
	for {
		if n >= intbase.Digits31 {
			return 0, 0, fmt.Errorf("frame: length prefix longer than %d digits", intbase.Digits31)
		}
		if len(s) == 0 {
			return 0, 0, fmt.Errorf("frame: truncated length prefix")
		}
		d62, err := intbase.DecodeBase62(s[0])
		if err != nil {
			return 0, 0, fmt.Errorf("frame: length prefix: %w", err)
		}
		s = s[1:]
		n++
		d31, biased := d62.Narrow()
		digits[n-1] = d31
		if biased {
			length, err := intbase.BECompose31(digits[:n])
			if err != nil {
				return 0, 0, fmt.Errorf("frame: length prefix overflows: %w", err)
			}
			return length, n, nil
		}
	}
}
