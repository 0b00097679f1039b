// Package domain is a sample collaborator of the exchange/value/wire
// codec: a small slice of the Desynced behavior model (instructions and
// their jump targets) that demonstrates the Dumper/Loader extension
// points without the codec ever knowing a field name like "op" or
// "next".
package domain

import (
	"fmt"

	"github.com/tifv/desynced-exchange/value"
)

// Jump is an instruction's control-transfer target: fall through to the
// next instruction, return from the behavior, or jump to a 1-based
// instruction index.
type Jump struct {
	kind  jumpKind
	index int32
}

type jumpKind int

const (
	jumpNext jumpKind = iota
	jumpReturn
	jumpTo
)

var (
	JumpNext   = Jump{kind: jumpNext}
	JumpReturn = Jump{kind: jumpReturn}
)

// JumpTo targets the 1-based instruction at index.
func JumpTo(index int32) Jump {
	if index <= 0 {
		panic("domain: jump index must be positive")
	}
	return Jump{kind: jumpTo, index: index}
}

func (j Jump) IsNext() bool { return j.kind == jumpNext }

// Index reports the jump target, if any.
func (j Jump) Index() (int32, bool) {
	return j.index, j.kind == jumpTo
}

// jumpFromValue decodes the "next" field's value per operand.rs's Jump
// conversion: false means Return, a positive integer means Jump(n), and
// anything else is rejected.
func jumpFromValue(v value.Value) (Jump, error) {
	if v.Type() == value.TypeBool {
		b, _ := v.Bool()
		if !b {
			return JumpReturn, nil
		}
		return Jump{}, fmt.Errorf("domain: jump reference true is not valid")
	}
	if v.Type() == value.TypeInt {
		i, _ := v.Int()
		if i > 0 {
			return JumpTo(i), nil
		}
	}
	return Jump{}, fmt.Errorf("domain: jump reference should be false or a positive integer")
}

// asValue is the inverse of jumpFromValue for JumpReturn/JumpTo; JumpNext
// has no value representation (its field is simply absent).
func (j Jump) asValue() value.Value {
	switch j.kind {
	case jumpTo:
		return value.Int(j.index)
	case jumpReturn:
		return value.Bool(false)
	default:
		panic("domain: JumpNext has no value representation")
	}
}
