// Package lower implements the pure lower: Type -> JSON value engine
// that turns a parsed AST into an ordered JSON Schema draft-07
// document.
package lower

import (
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Fragment is an ordered JSON Schema node: a JSON object whose key
// order is the order its keywords were emitted during lowering, not
// map iteration order.
type Fragment = orderedmap.OrderedMap[string, any]

func newFragment() *Fragment {
	return orderedmap.New[string, any]()
}

// Marshal serializes a lowered document preserving emission order.
// Plain json.Marshal on a map would reorder or (with Deterministic)
// alphabetize keys, throwing away the key-order stability callers rely on.
func Marshal(f *Fragment) ([]byte, error) {
	return json.Marshal(orderedValue{f})
}

// MarshalIndent serializes a lowered document with the given
// indentation string applied at every nesting level, for callers (the
// CLI's `--format json-pretty`) that want human-readable output while
// still preserving emission order.
func MarshalIndent(f *Fragment, indent string) ([]byte, error) {
	return json.Marshal(orderedValue{f}, jsontext.WithIndent(indent))
}

type orderedValue struct {
	f *Fragment
}

func (ov orderedValue) MarshalJSONTo(enc *jsontext.Encoder, opts json.Options) error {
	return marshalOrdered(enc, opts, ov.f)
}

func marshalOrdered(enc *jsontext.Encoder, opts json.Options, f *Fragment) error {
	if f == nil {
		return enc.WriteToken(jsontext.Null)
	}
	if err := enc.WriteToken(jsontext.ObjectStart); err != nil {
		return err
	}
	for pair := f.Oldest(); pair != nil; pair = pair.Next() {
		if err := enc.WriteToken(jsontext.String(pair.Key)); err != nil {
			return err
		}
		if err := marshalValue(enc, opts, pair.Value); err != nil {
			return err
		}
	}
	return enc.WriteToken(jsontext.ObjectEnd)
}

func marshalValue(enc *jsontext.Encoder, opts json.Options, v any) error {
	switch tv := v.(type) {
	case *Fragment:
		return marshalOrdered(enc, opts, tv)
	case []any:
		if err := enc.WriteToken(jsontext.ArrayStart); err != nil {
			return err
		}
		for _, item := range tv {
			if err := marshalValue(enc, opts, item); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.ArrayEnd)
	default:
		return json.MarshalEncode(enc, v, opts)
	}
}
