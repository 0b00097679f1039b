package exchange

import "github.com/tifv/desynced-exchange/value"

// Dumper is implemented by a domain type that can contribute itself to
// the binary value codec. It is the extension point a caller uses
// instead of constructing a value.Value by hand: Exchange.Payload only
// ever holds a value.Value, but DumpFrom lets a domain tree produce one
// on the fly.
type Dumper interface {
	DumpValue() (value.Value, error)
}

// Loader is implemented by a domain type that can populate itself from a
// decoded value.Value, the mirror image of Dumper.
type Loader interface {
	LoadValue(v value.Value) error
}

// KeyDumper and KeyLoader are the restricted counterparts of
// Dumper/Loader for table keys, which the binary codec limits to
// integers and strings (see value.Key).
type KeyDumper interface {
	DumpKey() (value.Key, error)
}

type KeyLoader interface {
	LoadKey(k value.Key) error
}

// LoadInto decodes s and hands the resulting payload to dst, which
// consumes it through the Loader extension point. It is a convenience
// wrapper over Load for callers that keep their own domain types rather
// than working with value.Value directly.
func LoadInto(s string, dst Loader) (Kind, error) {
	ex, err := Load(s)
	if err != nil {
		return 0, err
	}
	if err := dst.LoadValue(ex.Payload); err != nil {
		return 0, newLoadError("%s", err)
	}
	return ex.Kind, nil
}

// DumpFrom builds the payload through the Dumper extension point and
// encodes the result as a kind-tagged exchange string.
func DumpFrom(kind Kind, src Dumper) (string, error) {
	v, err := src.DumpValue()
	if err != nil {
		return "", newDumpError("%s", err)
	}
	return Dump(Exchange{Kind: kind, Payload: v})
}
