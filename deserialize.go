package shallow

import (
	"fmt"

	json "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Deserialize decodes a serialized form back into a Document. Entry order
// follows the input. Numbers decode as float64, nested objects as Document
// and arrays as Array. Input that is not a JSON object yields
// ErrTypeMismatch.
func Deserialize(s string) (Document, error) {
	var v any
	if err := json.Unmarshal([]byte(s), &v, json.WithUnmarshalers(Unmarshalers())); err != nil {
		return nil, err
	}
	d, ok := v.(Document)
	if !ok {
		return nil, typeMismatch(v)
	}
	return d, nil
}

// Unmarshalers returns the set of unmarshalers allowing decoding into:
//   - any/interface{} -> objects as Document, arrays as Array
//   - *Document       -> direct ordered object decoding
//   - *Array          -> direct array decoding
//
// Primitive JSON values are left to the default decoding.
func Unmarshalers() *json.Unmarshalers {
	return json.JoinUnmarshalers(
		unmarshalValue(),
		unmarshalDocument(),
		unmarshalArray(),
	)
}

func unmarshalValue() *json.Unmarshalers {
	return json.UnmarshalFromFunc(func(dec *jsontext.Decoder, v *any) error {
		switch dec.PeekKind() {
		case '{':
			d, err := decodeObject(dec)
			if err != nil {
				return err
			}
			*v = d
			return nil
		case '[':
			a, err := decodeArray(dec)
			if err != nil {
				return err
			}
			*v = a
			return nil
		default:
			return json.SkipFunc
		}
	})
}

func unmarshalDocument() *json.Unmarshalers {
	return json.UnmarshalFromFunc(func(dec *jsontext.Decoder, v *Document) error {
		if dec.PeekKind() != '{' {
			return json.SkipFunc
		}
		d, err := decodeObject(dec)
		if err != nil {
			return err
		}
		*v = d
		return nil
	})
}

func unmarshalArray() *json.Unmarshalers {
	return json.UnmarshalFromFunc(func(dec *jsontext.Decoder, v *Array) error {
		if dec.PeekKind() != '[' {
			return json.SkipFunc
		}
		a, err := decodeArray(dec)
		if err != nil {
			return err
		}
		*v = a
		return nil
	})
}

// decodeObject decodes a JSON object into a Document. Nested values are
// decoded with the unmarshalers carried by dec.
func decodeObject(dec *jsontext.Decoder) (Document, error) {
	if _, err := dec.ReadToken(); err != nil { // '{'
		return nil, fmt.Errorf("read object open: %w", err)
	}
	d := Document{}
	for dec.PeekKind() != '}' {
		var k string
		if err := json.UnmarshalDecode(dec, &k); err != nil {
			return nil, fmt.Errorf("read object key: %w", err)
		}
		var v any
		if err := json.UnmarshalDecode(dec, &v); err != nil {
			return nil, fmt.Errorf("read value for key %q: %w", k, err)
		}
		d = append(d, Entry{Key: k, Value: v})
	}
	if _, err := dec.ReadToken(); err != nil { // '}'
		return nil, fmt.Errorf("read object close: %w", err)
	}
	return d, nil
}

func decodeArray(dec *jsontext.Decoder) (Array, error) {
	if _, err := dec.ReadToken(); err != nil { // '['
		return nil, fmt.Errorf("read array open: %w", err)
	}
	a := Array{}
	for dec.PeekKind() != ']' {
		var elem any
		if err := json.UnmarshalDecode(dec, &elem); err != nil {
			return nil, fmt.Errorf("read array element: %w", err)
		}
		a = append(a, elem)
	}
	if _, err := dec.ReadToken(); err != nil { // ']'
		return nil, fmt.Errorf("read array close: %w", err)
	}
	return a, nil
}
