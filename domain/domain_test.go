package domain

import (
	"testing"

	"github.com/tifv/desynced-exchange/exchange"
	"github.com/tifv/desynced-exchange/value"
)

func TestInstructionRoundTripWithFallthroughNext(t *testing.T) {
	ins := Instruction{
		Operation: "move",
		Args:      []value.Value{value.Int(1), value.String("target")},
		Next:      JumpNext,
		Extra:     map[string]value.Value{"cmt": value.String("go")},
	}
	v, err := ins.DumpValue()
	if err != nil {
		t.Fatalf("DumpValue: %v", err)
	}
	var got Instruction
	if err := got.LoadValue(v); err != nil {
		t.Fatalf("LoadValue: %v", err)
	}
	if got.Operation != ins.Operation {
		t.Errorf("Operation = %q, want %q", got.Operation, ins.Operation)
	}
	if !got.Next.IsNext() {
		t.Errorf("Next = %+v, want JumpNext", got.Next)
	}
	if len(got.Args) != 2 || !got.Args[0].Equal(ins.Args[0]) || !got.Args[1].Equal(ins.Args[1]) {
		t.Errorf("Args = %+v, want %+v", got.Args, ins.Args)
	}
	if !got.Extra["cmt"].Equal(value.String("go")) {
		t.Errorf("Extra[cmt] = %+v", got.Extra["cmt"])
	}

	// DumpValue must have emitted a dead "next" slot, not omitted it.
	tbl, _ := v.Table()
	_, live := tbl.Lookup(value.KeyString("next"))
	if live {
		t.Errorf("expected \"next\" to be a dead slot, not a live one")
	}
	foundDead := false
	if _, hasAssoc := tbl.AssocLogLen(); hasAssoc {
		for _, slot := range tbl.Assoc {
			if slot.Kind == value.SlotDead {
				foundDead = true
			}
		}
	}
	if !foundDead {
		t.Errorf("expected a dead slot somewhere in the assoc part")
	}
}

func TestInstructionRoundTripWithJumpAndReturn(t *testing.T) {
	cases := []Jump{JumpTo(3), JumpReturn}
	for _, next := range cases {
		ins := Instruction{Operation: "test", Next: next}
		v, err := ins.DumpValue()
		if err != nil {
			t.Fatalf("DumpValue: %v", err)
		}
		var got Instruction
		if err := got.LoadValue(v); err != nil {
			t.Fatalf("LoadValue: %v", err)
		}
		if got.Next != next {
			t.Errorf("Next = %+v, want %+v", got.Next, next)
		}
	}
}

func TestBehaviorRoundTripThroughExchange(t *testing.T) {
	beh := Behavior{Instructions: []Instruction{
		{Operation: "move", Args: []value.Value{value.Int(1)}, Next: JumpNext},
		{Operation: "wait", Next: JumpReturn},
	}}
	s, err := exchange.DumpFrom(exchange.KindBehavior, beh)
	if err != nil {
		t.Fatalf("DumpFrom: %v", err)
	}
	if s[:3] != "DSC" {
		t.Fatalf("tag = %q, want DSC", s[:3])
	}

	var got Behavior
	kind, err := exchange.LoadInto(s, &got)
	if err != nil {
		t.Fatalf("LoadInto: %v", err)
	}
	if kind != exchange.KindBehavior {
		t.Errorf("kind = %v, want KindBehavior", kind)
	}
	if len(got.Instructions) != 2 {
		t.Fatalf("len(Instructions) = %d, want 2", len(got.Instructions))
	}
	if got.Instructions[0].Operation != "move" || !got.Instructions[0].Next.IsNext() {
		t.Errorf("Instructions[0] = %+v", got.Instructions[0])
	}
	if idx, ok := got.Instructions[1].Next.Index(); ok || got.Instructions[1].Next == JumpNext {
		t.Errorf("Instructions[1].Next = %+v (idx=%d)", got.Instructions[1].Next, idx)
	}
}

func TestEmptyBehaviorRoundTrip(t *testing.T) {
	beh := Behavior{}
	s, err := exchange.DumpFrom(exchange.KindBehavior, beh)
	if err != nil {
		t.Fatalf("DumpFrom: %v", err)
	}
	var got Behavior
	if _, err := exchange.LoadInto(s, &got); err != nil {
		t.Fatalf("LoadInto: %v", err)
	}
	if len(got.Instructions) != 0 {
		t.Errorf("Instructions = %+v, want empty", got.Instructions)
	}
}
