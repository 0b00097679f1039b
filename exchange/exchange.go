// Package exchange ties the frame and wire layers together into the two
// entry points a caller needs: Load, to turn a pasted blueprint/behavior
// string into a Value tree, and Dump, to turn one back into a string.
package exchange

import (
	"fmt"

	"github.com/tifv/desynced-exchange/frame"
	"github.com/tifv/desynced-exchange/value"
	"github.com/tifv/desynced-exchange/wire"
)

// Kind distinguishes the two exchange string families. They share the
// same binary value codec; only the three-letter tag differs.
type Kind int

const (
	KindBlueprint Kind = iota
	KindBehavior
)

func (k Kind) tag() string {
	if k == KindBehavior {
		return frame.TagBehavior
	}
	return frame.TagBlueprint
}

func kindOfTag(tag string) (Kind, error) {
	switch tag {
	case frame.TagBlueprint:
		return KindBlueprint, nil
	case frame.TagBehavior:
		return KindBehavior, nil
	default:
		return 0, fmt.Errorf("unrecognized tag %q", tag)
	}
}

// Exchange is a decoded blueprint or behavior string paired with its
// payload tree. Payload is Nil for an exchange string with no body.
type Exchange struct {
	Kind    Kind
	Payload value.Value
}

// LoadError wraps any failure encountered while decoding an exchange
// string: bad framing, a malformed binary value stream, or a broken
// table invariant.
type LoadError struct {
	reason string
}

func (e *LoadError) Error() string { return "exchange: load: " + e.reason }

func newLoadError(format string, args ...any) *LoadError {
	return &LoadError{reason: fmt.Sprintf(format, args...)}
}

// DumpError wraps any failure encountered while encoding a Value tree
// back into an exchange string.
type DumpError struct {
	reason string
}

func (e *DumpError) Error() string { return "exchange: dump: " + e.reason }

func newDumpError(format string, args ...any) *DumpError {
	return &DumpError{reason: fmt.Sprintf(format, args...)}
}

// Load decodes a pasted exchange string into its tag-qualified payload
// tree. Framing errors (bad tag, checksum mismatch, zlib failure) and
// binary-codec errors (bad byte tag, broken table invariant) are both
// reported as a *LoadError.
func Load(s string) (Exchange, error) {
	tag, raw, err := frame.Decode(s)
	if err != nil {
		return Exchange{}, newLoadError("%s", err)
	}
	kind, err := kindOfTag(tag)
	if err != nil {
		return Exchange{}, newLoadError("%s", err)
	}
	if len(raw) == 0 {
		return Exchange{Kind: kind, Payload: value.Nil}, nil
	}
	v, err := wire.Decode(raw)
	if err != nil {
		return Exchange{}, newLoadError("%s", err)
	}
	return Exchange{Kind: kind, Payload: v}, nil
}

// Dump encodes an Exchange back into a pasteable string.
func Dump(ex Exchange) (string, error) {
	var raw []byte
	if !ex.Payload.IsNil() {
		var err error
		raw, err = wire.Encode(ex.Payload)
		if err != nil {
			return "", newDumpError("%s", err)
		}
	}
	s, err := frame.Encode(ex.Kind.tag(), raw)
	if err != nil {
		return "", newDumpError("%s", err)
	}
	return s, nil
}
