package shallow

import (
	"time"

	json "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// StdMarshalers returns encoders for standard library types that are simple
// by kind but have no default JSON representation:
//
//	time.Duration -> "1h30m0s" (time.Duration.String)
//
// They are always applied by Serialize and Encode.
func StdMarshalers() *json.Marshalers {
	return json.JoinMarshalers(
		json.MarshalToFunc(marshalDuration),
	)
}

// ParseDuration reads back a duration written by StdMarshalers.
func ParseDuration(v any) (time.Duration, error) {
	s, ok := v.(string)
	if !ok {
		return 0, typeMismatch(v)
	}
	return time.ParseDuration(s)
}

func marshalDuration(enc *jsontext.Encoder, d time.Duration) error {
	return enc.WriteToken(jsontext.String(d.String()))
}
