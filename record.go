package shallow

import (
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Document represents a record, defined as an ordered collection of key-value
// pairs. Each entry in the document is represented by an Entry.
type Document []Entry

// Array represents an array, defined as a slice of values of any type.
type Array []any

// Entry represents a single entry in a document. It consists of a string key
// and an associated value of any type.
type Entry struct {
	Key   string
	Value any
}

// Keys returns the document keys in order.
func (d Document) Keys() []string {
	keys := make([]string, len(d))
	for i, e := range d {
		keys[i] = e.Key
	}
	return keys
}

// Get returns the value of the first entry with key k.
func (d Document) Get(k string) (any, bool) {
	for _, e := range d {
		if e.Key == k {
			return e.Value, true
		}
	}
	return nil, false
}

// Map returns the document as a map. Later duplicate keys win.
func (d Document) Map() map[string]any {
	m := make(map[string]any, len(d))
	for _, e := range d {
		m[e.Key] = e.Value
	}
	return m
}

// asDocument enumerates the own fields of a record value:
//   - Document and *Document as-is
//   - maps with string-kind keys, in sorted key order
//   - structs and pointers to structs, exported fields in declaration order
//     named after their json tag when present
//
// Unexported struct fields are never enumerated. Any other value, nil
// included, is rejected with ErrTypeMismatch.
func asDocument(obj any) (Document, error) {
	switch v := obj.(type) {
	case nil:
		return nil, typeMismatch(obj)
	case Document:
		return v, nil
	case *Document:
		if v == nil {
			return nil, typeMismatch(obj)
		}
		return *v, nil
	case map[string]any:
		return mapDocument(reflect.ValueOf(v)), nil
	}

	rv := reflect.ValueOf(obj)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, typeMismatch(obj)
		}
		rv = rv.Elem()
	}
	switch {
	case rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String:
		return mapDocument(rv), nil
	case rv.Kind() == reflect.Struct:
		return structDocument(rv), nil
	default:
		return nil, typeMismatch(obj)
	}
}

func mapDocument(rv reflect.Value) Document {
	keys := rv.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		return strings.Compare(a.String(), b.String())
	})
	d := make(Document, 0, len(keys))
	for _, k := range keys {
		d = append(d, Entry{Key: k.String(), Value: rv.MapIndex(k).Interface()})
	}
	return d
}

func structDocument(rv reflect.Value) Document {
	typ := rv.Type()
	d := make(Document, 0, typ.NumField())
	for i := range typ.NumField() {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		name, ok := fieldName(f)
		if !ok {
			continue
		}
		d = append(d, Entry{Key: name, Value: rv.Field(i).Interface()})
	}
	return d
}

// fieldName returns the record key for a struct field, honouring the json
// tag. A tag of exactly "-" hides the field. Names may be single-quoted to
// hold commas or quotes, e.g. `json:"'a,b'"`. A malformed quoted name falls
// back to the field name.
func fieldName(f reflect.StructField) (string, bool) {
	tag, ok := f.Tag.Lookup("json")
	if !ok {
		return f.Name, true
	}
	if tag == "-" {
		return "", false
	}
	if strings.HasPrefix(tag, "'") {
		name, ok := quotedName(tag)
		if !ok || name == "" {
			return f.Name, true
		}
		return name, true
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name, true
	}
	return name, true
}

// quotedName unquotes the leading single-quoted name of a tag using Go
// string escapes.
func quotedName(tag string) (string, bool) {
	var b strings.Builder
	b.WriteByte('"')
	for i := 1; i < len(tag); i++ {
		switch c := tag[i]; c {
		case '\\':
			if i+1 == len(tag) {
				return "", false
			}
			i++
			if tag[i] != '\'' {
				b.WriteByte(c)
			}
			b.WriteByte(tag[i])
		case '"':
			b.WriteString(`\"`)
		case '\'':
			b.WriteByte('"')
			name, err := strconv.Unquote(b.String())
			return name, err == nil
		default:
			b.WriteByte(c)
		}
	}
	return "", false
}
