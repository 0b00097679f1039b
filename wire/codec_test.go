package wire

import (
	"testing"

	"github.com/tifv/desynced-exchange/value"
)

func encodeDecodeRoundTrip(t *testing.T, v value.Value) value.Value {
	t.Helper()
	buf, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode(%+v): %v", v, err)
	}
	got, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode(%x): %v", buf, err)
	}
	return got
}

func TestCodecRoundTripScalars(t *testing.T) {
	cases := []value.Value{
		value.Nil,
		value.Bool(true),
		value.Bool(false),
		value.Int(0),
		value.Int(-1),
		value.Int(1 << 20),
		value.Float(3.5),
		value.String(""),
		value.String("hello, desynced"),
	}
	for _, v := range cases {
		got := encodeDecodeRoundTrip(t, v)
		if !got.Equal(v) {
			t.Errorf("round-trip %+v -> %+v", v, got)
		}
	}
}

func TestCodecRoundTripNestedTable(t *testing.T) {
	inner := value.NewTable()
	inner.Array = []value.Value{value.Int(1), value.Int(2)}
	outer := value.NewTable()
	outer.Array = []value.Value{value.FromTable(inner), value.String("leaf")}

	v := value.FromTable(outer)
	got := encodeDecodeRoundTrip(t, v)
	if !got.Equal(v) {
		t.Errorf("nested round-trip mismatch")
	}
}

func TestCodecRejectsDeadKeyMarkerAsValue(t *testing.T) {
	buf := []byte{tagDeadKey}
	if _, err := Decode(buf); err == nil {
		t.Error("expected the dead-key marker to be rejected in value position")
	}
}

func TestCodecRejectsTrailingBytes(t *testing.T) {
	buf, _ := Encode(value.Int(1))
	buf = append(buf, 0x00)
	if _, err := Decode(buf); err == nil {
		t.Error("expected trailing bytes after a single value to be rejected")
	}
}

func TestCodecEmptyBehaviourTable(t *testing.T) {
	// The empty-table encoding used throughout the example corpus:
	// a single 0x90 byte, decoding to a table with no entries.
	v, err := Decode([]byte{tagArrayTableMin})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	tbl, ok := v.Table()
	if !ok {
		t.Fatalf("expected a table value, got %v", v.Type())
	}
	if tbl.ArrayLen() != 0 {
		t.Errorf("ArrayLen() = %d, want 0", tbl.ArrayLen())
	}
	if _, ok := tbl.AssocLogLen(); ok {
		t.Errorf("expected no assoc part")
	}
}

func TestCodecRejectsGarbageInput(t *testing.T) {
	if _, err := Decode([]byte("asdf")); err == nil {
		t.Error("expected garbage input to be rejected")
	}
}
