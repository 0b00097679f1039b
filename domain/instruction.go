package domain

import (
	"fmt"
	"sort"

	"github.com/tifv/desynced-exchange/value"
)

// Instruction is one step of a behavior program: an operation name, its
// argument operands, and a jump target. Extra is any additional named
// field the game attaches (e.g. "cmt", "sub") that this sample domain
// does not otherwise model; it is preserved round-trip.
type Instruction struct {
	Operation string
	Args      []value.Value
	Next      Jump
	Extra     map[string]value.Value
}

// DumpValue builds the table the way the game's own instructions are
// shaped: the array part holds the operand list, and the assoc part
// holds "op", "next" (when present) and any extra fields. The "next"
// key is the one place this domain layer ever reaches for the explicit
// dead-key extension point: a JumpNext instruction still gets a dead
// "next" slot, matching the quirk the reference game relies on.
func (ins Instruction) DumpValue() (value.Value, error) {
	names := make([]string, 0, len(ins.Extra))
	for name := range ins.Extra {
		names = append(names, name)
	}
	sort.Strings(names)

	count := 1 // "op"
	count++    // "next" (live or dead)
	count += len(names)
	loglen := ceilLog2(count)

	b := value.NewTableBuilder(len(ins.Args), loglen, true)
	b.SetArray(ins.Args)
	b.Insert(value.KeyString("op"), value.String(ins.Operation))

	if ins.Next.IsNext() {
		b.InsertDead(value.KeyString("next"))
	} else {
		b.Insert(value.KeyString("next"), ins.Next.asValue())
	}

	for _, name := range names {
		b.Insert(value.KeyString(name), ins.Extra[name])
	}

	return value.FromTable(b.Build()), nil
}

// LoadValue consumes a table the way InstructionBuilder::build_from
// does: "op" and "next" are pulled out by name, everything else in the
// array part becomes an operand, and any remaining named key is kept
// verbatim in Extra.
func (ins *Instruction) LoadValue(v value.Value) error {
	tbl, ok := v.Table()
	if !ok {
		return fmt.Errorf("domain: instruction should be represented by a table value")
	}

	args := make([]value.Value, tbl.ArrayLen())
	for i := range args {
		args[i] = tbl.Get(i + 1)
	}

	op, ok := tbl.Lookup(value.KeyString("op"))
	if !ok {
		return fmt.Errorf("domain: instruction is missing its \"op\" field")
	}
	opName, ok := op.Str()
	if !ok {
		return fmt.Errorf("domain: instruction \"op\" field should be a string")
	}

	next := JumpNext
	if nextVal, ok := tbl.Lookup(value.KeyString("next")); ok {
		j, err := jumpFromValue(nextVal)
		if err != nil {
			return err
		}
		next = j
	}

	extra := make(map[string]value.Value)
	loglen, hasAssoc := tbl.AssocLogLen()
	if hasAssoc {
		for _, slot := range tbl.Assoc[:1<<loglen] {
			if slot.Kind != value.SlotLive {
				continue
			}
			name, isStr := slot.Key.Str()
			if !isStr || name == "op" || name == "next" {
				continue
			}
			extra[name] = slot.Value
		}
	}

	ins.Operation = opName
	ins.Args = args
	ins.Next = next
	ins.Extra = extra
	return nil
}

func ceilLog2(n int) uint {
	var loglen uint
	for (1 << loglen) < n {
		loglen++
	}
	return loglen
}
