package domain

import (
	"fmt"

	"github.com/tifv/desynced-exchange/value"
)

// Behavior is a program: a flat, 1-based-indexed list of instructions.
// A Jump targets an index into this list; Return and Next need no
// target.
type Behavior struct {
	Instructions []Instruction
}

func (beh Behavior) DumpValue() (value.Value, error) {
	array := make([]value.Value, len(beh.Instructions))
	for i, ins := range beh.Instructions {
		v, err := ins.DumpValue()
		if err != nil {
			return value.Nil, fmt.Errorf("domain: instruction %d: %w", i+1, err)
		}
		array[i] = v
	}
	tbl := value.NewTable()
	tbl.Array = array
	return value.FromTable(tbl), nil
}

func (beh *Behavior) LoadValue(v value.Value) error {
	tbl, ok := v.Table()
	if !ok {
		return fmt.Errorf("domain: behavior should be represented by a table value")
	}
	instructions := make([]Instruction, tbl.ArrayLen())
	for i := range instructions {
		if err := instructions[i].LoadValue(tbl.Get(i + 1)); err != nil {
			return fmt.Errorf("domain: instruction %d: %w", i+1, err)
		}
	}
	beh.Instructions = instructions
	return nil
}
