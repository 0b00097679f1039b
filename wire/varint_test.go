package wire

import "testing"

func TestVaruintRoundTrip(t *testing.T) {
	cases := []uint32{0, 1, 0x7F, 0x80, 0x3FFF, 0x4000, 0x1FFFFF}
	for _, c := range cases {
		buf := writeUint(nil, c)
		got, err := readUint(newReader(buf))
		if err != nil {
			t.Fatalf("readUint(%d): %v", c, err)
		}
		if got != c {
			t.Errorf("round-trip %d -> %x -> %d", c, buf, got)
		}
	}
}

func TestVaruintSingleByteForSmallValues(t *testing.T) {
	buf := writeUint(nil, 5)
	if len(buf) != 1 || buf[0] != (5<<1) {
		t.Errorf("writeUint(5) = %x, want single byte 0x0A", buf)
	}
}

func TestVaruintRejectsOverlongEncoding(t *testing.T) {
	// Four continuation bytes: exceeds the 21-bit bound.
	buf := []byte{0x01, 0x01, 0x01, 0x01, 0x00}
	if _, err := readUint(newReader(buf)); err == nil {
		t.Error("expected an overlong varuint to be rejected")
	}
}

func TestVarlinkRoundTrip(t *testing.T) {
	cases := []int32{0, 1, -1, 63, -63, 127, -127, 1 << 19, -(1 << 19)}
	for _, c := range cases {
		buf := writeLink(nil, c)
		got, err := readLink(newReader(buf))
		if err != nil {
			t.Fatalf("readLink(%d): %v", c, err)
		}
		if got != c {
			t.Errorf("round-trip %d -> %x -> %d", c, buf, got)
		}
	}
}

func TestVarlinkZeroIsSingleZeroByte(t *testing.T) {
	buf := writeLink(nil, 0)
	if len(buf) != 1 || buf[0] != 0x00 {
		t.Errorf("writeLink(0) = %x, want [0x00]", buf)
	}
}
