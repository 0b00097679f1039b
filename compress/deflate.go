// Package compress wraps the standard zlib/deflate container used by the
// frame layer (see frame.Encode / frame.Decode) behind the klauspost/compress
// implementation, which is a drop-in, faster replacement for compress/zlib.
package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Deflate compresses src with the best available compression level and
// returns the zlib-wrapped result. The exact compression ratio is not part
// of the wire contract: any conforming zlib stream that a decoder can
// inflate back to src is acceptable.
func Deflate(src []byte) []byte {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		// BestCompression is always a valid level for zlib.
		panic(err)
	}
	if _, err := w.Write(src); err != nil {
		panic(err)
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// Inflate decompresses a zlib-wrapped deflate stream produced by Deflate
// (or by the game client).
func Inflate(src []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("compress: zlib: %w", err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("compress: zlib: %w", err)
	}
	return out, nil
}
