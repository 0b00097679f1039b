package compress

import (
	"bytes"
	"strings"
	"testing"
)

func TestDeflateInflateRoundTrip(t *testing.T) {
	cases := [][]byte{
		nil,
		[]byte("x"),
		[]byte(strings.Repeat("desynced", 200)),
	}
	for _, src := range cases {
		zipped := Deflate(src)
		got, err := Inflate(zipped)
		if err != nil {
			t.Fatalf("Inflate: %v", err)
		}
		if !bytes.Equal(got, src) {
			t.Errorf("round-trip mismatch: got %x, want %x", got, src)
		}
	}
}

func TestInflateRejectsGarbage(t *testing.T) {
	if _, err := Inflate([]byte("not a zlib stream")); err == nil {
		t.Error("expected error for garbage input")
	}
}
