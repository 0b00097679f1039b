package value

import "testing"

func TestValueEqual(t *testing.T) {
	cases := []struct {
		a, b  Value
		equal bool
	}{
		{Nil, Nil, true},
		{Nil, Int(0), false},
		{Bool(true), Bool(true), true},
		{Bool(true), Bool(false), false},
		{Int(42), Int(42), true},
		{Int(42), Int(-42), false},
		{Float(1.5), Float(1.5), true},
		{String("a"), String("a"), true},
		{String("a"), String("b"), false},
		{Int(1), Float(1), false},
	}
	for _, c := range cases {
		if got := c.a.Equal(c.b); got != c.equal {
			t.Errorf("(%v).Equal(%v) = %v, want %v", c.a, c.b, got, c.equal)
		}
	}
}

func TestValueAccessors(t *testing.T) {
	if _, ok := Int(5).Bool(); ok {
		t.Error("Int should not report as Bool")
	}
	if i, ok := Int(5).Int(); !ok || i != 5 {
		t.Errorf("Int accessor = %d, %v", i, ok)
	}
	if s, ok := String("hi").Str(); !ok || s != "hi" {
		t.Errorf("Str accessor = %q, %v", s, ok)
	}
	tbl := NewTable()
	v := FromTable(tbl)
	if got, ok := v.Table(); !ok || got != tbl {
		t.Error("Table accessor round-trip failed")
	}
	if !FromTable(nil).IsNil() {
		t.Error("FromTable(nil) should be Nil")
	}
}

func TestKeyEqualAndWiden(t *testing.T) {
	if !KeyInt(3).Equal(KeyInt(3)) {
		t.Error("equal int keys should compare equal")
	}
	if KeyInt(3).Equal(KeyString("3")) {
		t.Error("an int key and a string key must never compare equal")
	}
	if !KeyInt(3).AsValue().Equal(Int(3)) {
		t.Error("KeyInt.AsValue should widen to Int")
	}
	if !KeyString("f").AsValue().Equal(String("f")) {
		t.Error("KeyString.AsValue should widen to String")
	}
}
