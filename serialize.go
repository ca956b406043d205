package shallow

import (
	"bytes"
	"fmt"
	"io"

	json "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Serialize returns the JSON object holding the simple fields of obj, as
// selected by SimpleKeys. Keys keep their enumeration order:
//
//	Serialize(map[string]any{"a": 1, "b": "x", "c": func() {}}) // {"a":1,"b":"x"}
//
// A non-record obj yields ErrTypeMismatch. A simple value the encoder cannot
// represent yields an *EncodingError.
func Serialize(obj any) (string, error) {
	b, err := serialize(obj)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Encode writes the serialized form of obj to w. The options are handed to
// the underlying jsontext encoder, e.g. jsontext.Multiline(true) or
// jsontext.EscapeForHTML(true). A json.WithMarshalers option replaces
// StdMarshalers. Nothing is written if encoding fails.
func Encode(w io.Writer, obj any, opts ...json.Options) error {
	b, err := serialize(obj, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func serialize(obj any, opts ...json.Options) ([]byte, error) {
	d, err := SimpleKeys(obj)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	opts = append([]json.Options{json.WithMarshalers(StdMarshalers())}, opts...)
	enc := jsontext.NewEncoder(&buf, opts...)
	if err := encodeDocument(enc, d); err != nil {
		return nil, err
	}
	// the encoder terminates top-level values with a newline
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Marshalers returns JSON marshalers encoding Document values as objects
// with their entry order preserved, for use with json.WithMarshalers when a
// Document is nested in a larger value. StdMarshalers is included.
func Marshalers() *json.Marshalers {
	return json.JoinMarshalers(
		json.MarshalToFunc(encodeDocument),
		StdMarshalers(),
	)
}

func encodeDocument(enc *jsontext.Encoder, d Document) error {
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return fmt.Errorf("write object open: %w", err)
	}
	for _, e := range d {
		if err := enc.WriteToken(jsontext.String(e.Key)); err != nil {
			return &EncodingError{Key: e.Key, Err: err}
		}
		if err := json.MarshalEncode(enc, e.Value); err != nil {
			return &EncodingError{Key: e.Key, Err: err}
		}
	}
	if err := enc.WriteToken(jsontext.EndObject); err != nil {
		return fmt.Errorf("write object close: %w", err)
	}
	return nil
}
