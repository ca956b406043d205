package shallow

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	json "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingMarshaler string

func (failingMarshaler) MarshalJSON() ([]byte, error) { return nil, errors.New("boom") }

func TestSerialize(t *testing.T) {
	t.Run("drops functions and nested objects", func(t *testing.T) {
		s, err := Serialize(map[string]any{
			"a": 1,
			"b": "x",
			"c": func() {},
			"d": map[string]any{"nested": 1},
		})
		require.NoError(t, err)
		require.Equal(t, `{"a":1,"b":"x"}`, s)
	})

	t.Run("document order preserved", func(t *testing.T) {
		s, err := Serialize(Document{
			{Key: "z", Value: true},
			{Key: "list", Value: Array{1, 2}},
			{Key: "a", Value: 2.5},
			{Key: "n", Value: nil},
		})
		require.NoError(t, err)
		require.Equal(t, `{"z":true,"a":2.5}`, s)
	})

	t.Run("empty record", func(t *testing.T) {
		s, err := Serialize(Document{})
		require.NoError(t, err)
		require.Equal(t, `{}`, s)
	})

	t.Run("strings are escaped", func(t *testing.T) {
		s, err := Serialize(Document{{Key: "q\"k", Value: "line\nbreak"}})
		require.NoError(t, err)
		require.Equal(t, `{"q\"k":"line\nbreak"}`, s)
	})

	t.Run("struct", func(t *testing.T) {
		s, err := Serialize(account{ID: 3, Name: "bo", Email: "bo@example.com", Tags: []string{"x"}})
		require.NoError(t, err)
		require.Equal(t, `{"id":3,"Name":"bo","email":"bo@example.com","-":""}`, s)
	})

	t.Run("named primitive types", func(t *testing.T) {
		s, err := Serialize(Document{{Key: "t", Value: celsius(-4)}, {Key: "l", Value: label("hot")}})
		require.NoError(t, err)
		require.Equal(t, `{"t":-4,"l":"hot"}`, s)
	})

	t.Run("non record returns type mismatch", func(t *testing.T) {
		_, err := Serialize("plain")
		require.ErrorIs(t, err, ErrTypeMismatch)
	})
}

func TestSerialize_encodingErrors(t *testing.T) {
	tests := []struct {
		name string
		obj  Document
		key  string
	}{
		{"complex number", Document{{Key: "ok", Value: 1}, {Key: "c", Value: complex(1, 2)}}, "c"},
		{"nan", Document{{Key: "f", Value: math.NaN()}}, "f"},
		{"infinity", Document{{Key: "f", Value: math.Inf(1)}}, "f"},
		{"invalid utf-8 value", Document{{Key: "s", Value: "\xff"}}, "s"},
		{"invalid utf-8 key", Document{{Key: "\xff", Value: 1}}, "\xff"},
		{"duplicate key", Document{{Key: "a", Value: 1}, {Key: "a", Value: 2}}, "a"},
		{"failing marshaler", Document{{Key: "m", Value: failingMarshaler("x")}}, "m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Serialize(tt.obj)
			require.Error(t, err)
			require.Empty(t, s)
			require.ErrorIs(t, err, ErrEncoding)

			var encErr *EncodingError
			require.ErrorAs(t, err, &encErr)
			assert.Equal(t, tt.key, encErr.Key)
			assert.Contains(t, encErr.Error(), "encode value for key")
		})
	}
}

func TestSerialize_roundTrip(t *testing.T) {
	records := []any{
		Document{},
		Document{
			{Key: "a", Value: float64(1)},
			{Key: "b", Value: "x"},
			{Key: "c", Value: func() {}},
			{Key: "d", Value: Document{{Key: "nested", Value: float64(1)}}},
		},
		map[string]any{"t": true, "f": false, "s": "ü ✓", "n": -0.25, "nil": nil},
		struct {
			Name  string
			Score float64 `json:"score"`
			Items []string
		}{Name: "q", Score: 9.5},
	}
	for _, obj := range records {
		want, err := SimpleKeys(obj)
		require.NoError(t, err)

		s, err := Serialize(obj)
		require.NoError(t, err)

		got, err := Deserialize(s)
		require.NoError(t, err)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("round trip of %s mismatch (-want +got):\n%s", s, diff)
		}
	}
}

func TestSerialize_numbersDecodeAsFloat64(t *testing.T) {
	obj := Document{{Key: "count", Value: 3}, {Key: "big", Value: int64(1) << 40}, {Key: "small", Value: uint8(9)}}

	s, err := Serialize(obj)
	require.NoError(t, err)
	require.Equal(t, `{"count":3,"big":1099511627776,"small":9}`, s)

	got, err := Deserialize(s)
	require.NoError(t, err)
	require.Equal(t, obj.Keys(), got.Keys())
	// integer kinds are not preserved, only their numeric value
	for i, e := range got {
		f, ok := e.Value.(float64)
		require.True(t, ok, "key %q decoded as %T", e.Key, e.Value)
		require.EqualValues(t, obj[i].Value, f)
	}
}

func TestEncode(t *testing.T) {
	obj := Document{{Key: "html", Value: "<b>"}, {Key: "f", Value: func() {}}}

	t.Run("matches serialize", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, obj))
		s, err := Serialize(obj)
		require.NoError(t, err)
		require.Equal(t, s, buf.String())
		require.Equal(t, `{"html":"<b>"}`, s)
	})

	t.Run("encoder options are applied", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, obj, jsontext.EscapeForHTML(true)))
		require.Equal(t, `{"html":"\u003cb\u003e"}`, buf.String())
	})

	t.Run("multiline output decodes to the same record", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, obj, jsontext.Multiline(true)))
		require.True(t, strings.Contains(buf.String(), "\n"))
		got, err := Deserialize(buf.String())
		require.NoError(t, err)
		require.Equal(t, Document{{Key: "html", Value: "<b>"}}, got)
	})

	t.Run("nothing written on failure", func(t *testing.T) {
		var buf bytes.Buffer
		err := Encode(&buf, Document{{Key: "a", Value: 1}, {Key: "c", Value: complex64(1)}})
		require.ErrorIs(t, err, ErrEncoding)
		require.Zero(t, buf.Len())
	})
}

func TestMarshalers(t *testing.T) {
	t.Run("nested document keeps order", func(t *testing.T) {
		payload := map[string]any{
			"snapshot": Document{{Key: "z", Value: 1}, {Key: "a", Value: 2}},
		}
		b, err := json.Marshal(payload, json.WithMarshalers(Marshalers()))
		require.NoError(t, err)
		require.Equal(t, `{"snapshot":{"z":1,"a":2}}`, string(b))
	})

	t.Run("encoding error surfaces", func(t *testing.T) {
		_, err := json.Marshal(Document{{Key: "c", Value: complex(0, 1)}}, json.WithMarshalers(Marshalers()))
		require.ErrorIs(t, err, ErrEncoding)
	})
}
